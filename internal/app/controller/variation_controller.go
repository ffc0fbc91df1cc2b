package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	apperrors "github.com/ikkim/printmoa-backend/internal/errors"
	"github.com/ikkim/printmoa-backend/internal/middleware"
)

// VariationController exposes the variation document editor. Every mutation
// returns the full updated document so the editor can re-render from it.
type VariationController struct {
	variationService service.VariationService
	exportService    service.ExportService
}

func NewVariationController(variationService service.VariationService, exportService service.ExportService) *VariationController {
	return &VariationController{
		variationService: variationService,
		exportService:    exportService,
	}
}

// respondVariationError maps service/engine errors onto HTTP responses.
func respondVariationError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	var docErr *service.DocumentValidationError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "product not found")
	case errors.Is(err, variation.ErrPanelNotFound):
		apperrors.NotFound(c, apperrors.VariationPanelNotFound, "variation panel not found")
	case errors.Is(err, variation.ErrAttributeNotFound):
		apperrors.NotFound(c, apperrors.VariationAttributeNotFound, "variation attribute not found")
	case errors.Is(err, variation.ErrInvalidPriceMode):
		apperrors.BadRequest(c, apperrors.VariationInvalidPriceMode, "price mode must be fixed or percentage")
	case errors.Is(err, variation.ErrNegativePrice), errors.Is(err, variation.ErrPercentageRange):
		apperrors.BadRequest(c, apperrors.VariationPriceOutOfRange, err.Error())
	case errors.Is(err, variation.ErrUnknownField):
		apperrors.BadRequest(c, apperrors.VariationUnknownField, "unknown attribute field")
	case errors.As(err, &docErr):
		apperrors.RespondWithDocumentErrors(c, docErr.Fields)
	default:
		log.Error("Variation operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

func respondDocument(c *gin.Context, doc model.VariationDocument) {
	c.JSON(http.StatusOK, gin.H{
		"variations": doc,
	})
}

// GetDocument returns the product's variation document
// GET /api/v1/products/:id/variations
func (ctrl *VariationController) GetDocument(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := ctrl.variationService.GetDocument(productID)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// ReplaceDocument replaces the whole document after commit validation
// PUT /api/v1/products/:id/variations
func (ctrl *VariationController) ReplaceDocument(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Variations model.VariationDocument `json:"variations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	doc, err := ctrl.variationService.ReplaceDocument(productID, req.Variations)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// ResetDocument reseeds the starter panel set
// POST /api/v1/products/:id/variations/reset
func (ctrl *VariationController) ResetDocument(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := ctrl.variationService.ResetDocument(productID)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// ValidateDocument reports commit-time validation failures without saving
// POST /api/v1/products/:id/variations/validate
func (ctrl *VariationController) ValidateDocument(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fieldErrs, err := ctrl.variationService.Validate(productID)
	if err != nil {
		respondVariationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  len(fieldErrs) == 0,
		"fields": fieldErrs,
	})
}

// AddPanel appends a new panel
// POST /api/v1/products/:id/variations/panels
func (ctrl *VariationController) AddPanel(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string          `json:"name" binding:"required"`
		Type model.PanelType `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	doc, panelID, err := ctrl.variationService.AddPanel(productID, req.Name, req.Type)
	if err != nil {
		respondVariationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"panel_id":   panelID,
		"variations": doc,
	})
}

// RemovePanel deletes a panel
// DELETE /api/v1/products/:id/variations/panels/:panelId
func (ctrl *VariationController) RemovePanel(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := ctrl.variationService.RemovePanel(productID, c.Param("panelId"))
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// UpdatePanel updates panel settings: name, enabled, pricing mode,
// quantity dependency, conditional logic. Only present fields are applied,
// and all of them commit in a single save.
// PATCH /api/v1/products/:id/variations/panels/:panelId
func (ctrl *VariationController) UpdatePanel(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	panelID := c.Param("panelId")

	var req struct {
		Name             *string                 `json:"name"`
		Enabled          *bool                   `json:"enabled"`
		PricingMode      *model.PriceMode        `json:"pricing_mode"`
		DependOnQuantity *bool                   `json:"depend_on_quantity"`
		ConditionalLogic *model.ConditionalLogic `json:"conditional_logic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	doc, err := ctrl.variationService.UpdatePanel(productID, panelID, service.PanelChanges{
		Name:             req.Name,
		Enabled:          req.Enabled,
		PricingMode:      req.PricingMode,
		DependOnQuantity: req.DependOnQuantity,
		ConditionalLogic: req.ConditionalLogic,
	})
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// AddAttribute appends an empty attribute to a panel
// POST /api/v1/products/:id/variations/panels/:panelId/attributes
func (ctrl *VariationController) AddAttribute(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, attributeID, err := ctrl.variationService.AddAttribute(productID, c.Param("panelId"))
	if err != nil {
		respondVariationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"attribute_id": attributeID,
		"variations":   doc,
	})
}

// RemoveAttribute deletes an attribute
// DELETE /api/v1/products/:id/variations/panels/:panelId/attributes/:attributeId
func (ctrl *VariationController) RemoveAttribute(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := ctrl.variationService.RemoveAttribute(productID, c.Param("panelId"), c.Param("attributeId"))
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// SetDefaultAttribute marks an attribute as the panel default
// PUT /api/v1/products/:id/variations/panels/:panelId/attributes/:attributeId/default
func (ctrl *VariationController) SetDefaultAttribute(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := ctrl.variationService.SetDefaultAttribute(productID, c.Param("panelId"), c.Param("attributeId"))
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// UpdateAttributeField sets one editable attribute field
// PATCH /api/v1/products/:id/variations/panels/:panelId/attributes/:attributeId
func (ctrl *VariationController) UpdateAttributeField(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Field string `json:"field" binding:"required"`
		Value any    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	doc, err := ctrl.variationService.UpdateAttributeField(
		productID, c.Param("panelId"), c.Param("attributeId"), req.Field, req.Value,
	)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// SetQuantityPrice sets one per-quantity-break price entry
// PUT /api/v1/products/:id/variations/panels/:panelId/attributes/:attributeId/prices/:quantityAttributeId
func (ctrl *VariationController) SetQuantityPrice(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	doc, err := ctrl.variationService.SetQuantityPrice(
		productID, c.Param("panelId"), c.Param("attributeId"), c.Param("quantityAttributeId"), req.Amount,
	)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// SetAttributeLogic attaches or clears conditional logic on an attribute
// PUT /api/v1/products/:id/variations/panels/:panelId/attributes/:attributeId/logic
func (ctrl *VariationController) SetAttributeLogic(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ConditionalLogic *model.ConditionalLogic `json:"conditional_logic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	doc, err := ctrl.variationService.SetAttributeLogic(
		productID, c.Param("panelId"), c.Param("attributeId"), req.ConditionalLogic,
	)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	respondDocument(c, doc)
}

// ExportPriceMatrix streams the price matrix as an XLSX attachment
// GET /api/v1/products/:id/variations/export
func (ctrl *VariationController) ExportPriceMatrix(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	f, filename, err := ctrl.exportService.ExportPriceMatrix(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "product not found")
			return
		}
		log.Error("Failed to export price matrix", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ExportFailed, "failed to export price matrix")
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream price matrix", err, nil)
	}
}
