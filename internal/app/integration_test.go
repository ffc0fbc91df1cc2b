package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printmoa-backend/internal/app/controller"
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	"github.com/ikkim/printmoa-backend/internal/db"
	"github.com/ikkim/printmoa-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Router *gin.Engine
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)

	gen := variation.NewSequenceGenerator("id")
	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	productService := service.NewProductService(productRepo, gen)
	variationService := service.NewVariationService(productRepo, gen, nil)
	quoteService := service.NewQuoteService(productRepo, nil)
	exportService := service.NewExportService(productRepo)

	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	variationController := controller.NewVariationController(variationService, exportService)
	quoteController := controller.NewQuoteController(quoteService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		// Open in tests; production puts register behind the admin role.
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	products := router.Group("/api/v1/products")
	{
		products.GET("/:id", productController.GetProductByID)
		products.GET("/:id/variations", variationController.GetDocument)
		products.POST("/:id/quote", quoteController.Quote)

		staff := products.Group("")
		staff.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole("editor", "admin"))
		{
			staff.POST("", productController.CreateProduct)
			staff.POST("/:id/variations/panels/:panelId/attributes", variationController.AddAttribute)
			staff.PATCH("/:id/variations/panels/:panelId", variationController.UpdatePanel)
			staff.PATCH("/:id/variations/panels/:panelId/attributes/:attributeId", variationController.UpdateAttributeField)
			staff.PUT("/:id/variations/panels/:panelId/attributes/:attributeId/default", variationController.SetDefaultAttribute)
		}
	}

	return &TestServer{Router: router}
}

func (s *TestServer) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Full back-office flow: register, create a product, configure its options
// through the editor endpoints, then price a selection as the storefront.
func TestConfigureAndQuoteFlow(t *testing.T) {
	server := setupIntegrationTest(t)

	// Register an editor and grab the access token.
	w := server.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "editor@printmoa.kr",
		"password": "password123",
		"name":     "Editor",
		"role":     "editor",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	token := registered.Tokens.AccessToken
	require.NotEmpty(t, token)

	// Create a product; it starts with the four starter panels.
	w = server.do(t, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":       "Business Card",
		"category":   "business-card",
		"base_price": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	productID := created.Product.ID
	require.Len(t, created.Product.Variations, 4)

	quantityPanel := created.Product.Variations[0]
	paperPanel := created.Product.Variations[2]

	// Quantity panel: one break, 15% discount mode.
	w = server.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/products/%d/variations/panels/%s", productID, quantityPanel.ID),
		token, map[string]interface{}{"pricing_mode": "percentage"})
	require.Equal(t, http.StatusOK, w.Code)

	qtyAttrID := addAttribute(t, server, token, productID, quantityPanel.ID)
	setField(t, server, token, productID, quantityPanel.ID, qtyAttrID, "name", "500")
	setField(t, server, token, productID, quantityPanel.ID, qtyAttrID, "price", 15)

	// Paper panel: premium stock with a fixed surcharge.
	paperAttrID := addAttribute(t, server, token, productID, paperPanel.ID)
	setField(t, server, token, productID, paperPanel.ID, paperAttrID, "name", "Premium Matte")
	setField(t, server, token, productID, paperPanel.ID, paperAttrID, "price", 12.5)

	w = server.do(t, http.MethodPut,
		fmt.Sprintf("/api/v1/products/%d/variations/panels/%s/attributes/%s/default", productID, paperPanel.ID, paperAttrID),
		token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Storefront quote, no auth: 100 - 15% + 12.50.
	w = server.do(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/quote", productID), "", map[string]interface{}{
		"selection": map[string]string{
			quantityPanel.ID: qtyAttrID,
			paperPanel.ID:    paperAttrID,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var quoted struct {
		Quote service.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quoted))
	assert.Equal(t, 97.5, quoted.Quote.Total)

	// Editor endpoints reject unauthenticated callers.
	w = server.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/products/%d/variations/panels/%s", productID, paperPanel.ID),
		"", map[string]interface{}{"name": "Paper"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func addAttribute(t *testing.T, server *TestServer, token string, productID uint, panelID string) string {
	t.Helper()

	w := server.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/products/%d/variations/panels/%s/attributes", productID, panelID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		AttributeID string `json:"attribute_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AttributeID)
	return response.AttributeID
}

func setField(t *testing.T, server *TestServer, token string, productID uint, panelID, attributeID, field string, value interface{}) {
	t.Helper()

	w := server.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/products/%d/variations/panels/%s/attributes/%s", productID, panelID, attributeID),
		token, map[string]interface{}{"field": field, "value": value})
	require.Equal(t, http.StatusOK, w.Code)
}
