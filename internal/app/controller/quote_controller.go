package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	apperrors "github.com/ikkim/printmoa-backend/internal/errors"
	"github.com/ikkim/printmoa-backend/internal/middleware"
)

type QuoteController struct {
	quoteService service.QuoteService
}

func NewQuoteController(quoteService service.QuoteService) *QuoteController {
	return &QuoteController{
		quoteService: quoteService,
	}
}

type QuoteRequest struct {
	Selection model.Selection `json:"selection" binding:"required"`
}

// Quote prices one selection against a product
// POST /api/v1/products/:id/quote
func (ctrl *QuoteController) Quote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.PricingInvalidSelection, "selection is required")
		return
	}

	quote, err := ctrl.quoteService.Quote(c.Request.Context(), productID, req.Selection)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "product not found")
			return
		}
		log.Error("Failed to compute quote", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "failed to compute quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": quote,
	})
}

// GetDefaultSelection returns the selection implied by panel defaults
// GET /api/v1/products/:id/quote/defaults
func (ctrl *QuoteController) GetDefaultSelection(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sel, err := ctrl.quoteService.DefaultSelection(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selection": sel,
	})
}
