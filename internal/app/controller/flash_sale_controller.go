package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	apperrors "github.com/ikkim/printmoa-backend/internal/errors"
	"github.com/ikkim/printmoa-backend/internal/middleware"
)

type FlashSaleController struct {
	flashSaleService service.FlashSaleService
}

func NewFlashSaleController(flashSaleService service.FlashSaleService) *FlashSaleController {
	return &FlashSaleController{
		flashSaleService: flashSaleService,
	}
}

type CreateFlashSaleRequest struct {
	ProductID uint      `json:"product_id" binding:"required"`
	SalePrice float64   `json:"sale_price" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required"`
}

// CreateFlashSale schedules a sale window for a product (Admin only)
// POST /api/v1/flash-sales
func (ctrl *FlashSaleController) CreateFlashSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateFlashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	sale := &model.FlashSale{
		ProductID: req.ProductID,
		SalePrice: req.SalePrice,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}

	if err := ctrl.flashSaleService.CreateFlashSale(sale); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "product not found")
		case errors.Is(err, service.ErrFlashSaleInvalidPrice):
			apperrors.BadRequest(c, apperrors.FlashSaleInvalidPrice, "sale price must be positive")
		case errors.Is(err, service.ErrFlashSaleInvalidWindow):
			apperrors.BadRequest(c, apperrors.FlashSaleInvalidWindow, "sale window must end after it starts")
		default:
			log.Error("Failed to create flash sale", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.InternalError(c, "failed to create flash sale")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"flash_sale": sale,
	})
}

// ListFlashSales returns all flash sales
// GET /api/v1/flash-sales
func (ctrl *FlashSaleController) ListFlashSales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sales, err := ctrl.flashSaleService.ListFlashSales()
	if err != nil {
		log.Error("Failed to fetch flash sales", err, nil)
		apperrors.InternalError(c, "failed to fetch flash sales")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flash_sales": sales,
		"count":       len(sales),
	})
}

// DeleteFlashSale cancels a sale; an applied sale releases the product price
// DELETE /api/v1/flash-sales/:id
func (ctrl *FlashSaleController) DeleteFlashSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.flashSaleService.DeleteFlashSale(id); err != nil {
		if errors.Is(err, service.ErrFlashSaleNotFound) {
			apperrors.NotFound(c, apperrors.FlashSaleNotFound, "flash sale not found")
			return
		}
		log.Error("Failed to delete flash sale", err, map[string]interface{}{
			"flash_sale_id": id,
		})
		apperrors.InternalError(c, "failed to delete flash sale")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "flash sale deleted",
	})
}
