package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/printmoa-backend/config"
	"github.com/ikkim/printmoa-backend/internal/app/controller"
	"github.com/ikkim/printmoa-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	variationController *controller.VariationController
	quoteController     *controller.QuoteController
	flashSaleController *controller.FlashSaleController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	variationController *controller.VariationController,
	quoteController *controller.QuoteController,
	flashSaleController *controller.FlashSaleController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		variationController: variationController,
		quoteController:     quoteController,
		flashSaleController: flashSaleController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PRINTMOA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/register",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.authController.Register,
			)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		products := v1.Group("/products")
		{
			// Storefront reads and quoting are public.
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.GET("/:id/variations", r.variationController.GetDocument)
			products.POST("/:id/quote", r.quoteController.Quote)
			products.GET("/:id/quote/defaults", r.quoteController.GetDefaultSelection)

			staff := products.Group("")
			staff.Use(
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("editor", "admin"),
			)
			{
				staff.POST("", r.productController.CreateProduct)
				staff.PUT("/:id", r.productController.UpdateProduct)

				// Variation document editor
				staff.PUT("/:id/variations", r.variationController.ReplaceDocument)
				staff.POST("/:id/variations/reset", r.variationController.ResetDocument)
				staff.POST("/:id/variations/validate", r.variationController.ValidateDocument)
				staff.GET("/:id/variations/export", r.variationController.ExportPriceMatrix)

				staff.POST("/:id/variations/panels", r.variationController.AddPanel)
				staff.PATCH("/:id/variations/panels/:panelId", r.variationController.UpdatePanel)
				staff.DELETE("/:id/variations/panels/:panelId", r.variationController.RemovePanel)

				staff.POST("/:id/variations/panels/:panelId/attributes", r.variationController.AddAttribute)
				staff.PATCH("/:id/variations/panels/:panelId/attributes/:attributeId", r.variationController.UpdateAttributeField)
				staff.DELETE("/:id/variations/panels/:panelId/attributes/:attributeId", r.variationController.RemoveAttribute)
				staff.PUT("/:id/variations/panels/:panelId/attributes/:attributeId/default", r.variationController.SetDefaultAttribute)
				staff.PUT("/:id/variations/panels/:panelId/attributes/:attributeId/logic", r.variationController.SetAttributeLogic)
				staff.PUT("/:id/variations/panels/:panelId/attributes/:attributeId/prices/:quantityAttributeId", r.variationController.SetQuantityPrice)
			}

			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
		}

		flashSales := v1.Group("/flash-sales")
		flashSales.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("admin"),
		)
		{
			flashSales.GET("", r.flashSaleController.ListFlashSales)
			flashSales.POST("", r.flashSaleController.CreateFlashSale)
			flashSales.DELETE("/:id", r.flashSaleController.DeleteFlashSale)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
