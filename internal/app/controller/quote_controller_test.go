package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	"github.com/ikkim/printmoa-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQuoteControllerTest(t *testing.T) (*gin.Engine, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	product := &model.Product{
		Name:      "Flyer",
		Category:  model.CategoryFlyer,
		BasePrice: 100,
		Status:    model.StatusPublished,
		Variations: model.VariationDocument{
			{
				ID:           "panel-qty",
				Name:         "Quantity",
				Type:         model.PanelQuantity,
				Enabled:      true,
				DiscountType: model.PriceModePercentage,
				Attributes: []model.Attribute{
					{ID: "qty-100", Name: "100", IsDefault: true},
					{ID: "qty-500", Name: "500", Price: 15},
				},
			},
			{
				ID:        "panel-paper",
				Name:      "Paper Type",
				Type:      model.PanelPaperType,
				Enabled:   true,
				PriceType: model.PriceModeFixed,
				Attributes: []model.Attribute{
					{ID: "paper-plain", Name: "Plain", IsDefault: true},
					{ID: "paper-premium", Name: "Premium", Price: 12.5},
				},
			},
		},
	}
	require.NoError(t, productRepo.Create(product))

	quoteService := service.NewQuoteService(productRepo, nil)
	controller := NewQuoteController(quoteService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/products/:id/quote", controller.Quote)
	router.GET("/products/:id/quote/defaults", controller.GetDefaultSelection)

	return router, product.ID
}

func TestQuoteController_Quote(t *testing.T) {
	router, productID := setupQuoteControllerTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"selection": map[string]string{
			"panel-qty":   "qty-500",
			"panel-paper": "paper-premium",
		},
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/%d/quote", productID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Quote service.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// 100 - 15% quantity discount + 12.50 paper surcharge
	assert.Equal(t, 100.0, response.Quote.BasePrice)
	assert.Equal(t, 97.5, response.Quote.Total)
	assert.Len(t, response.Quote.Contributions, 2)
}

func TestQuoteController_Quote_MissingSelection(t *testing.T) {
	router, productID := setupQuoteControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/%d/quote", productID), bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PRICING_INVALID_SELECTION")
}

func TestQuoteController_Quote_ProductNotFound(t *testing.T) {
	router, _ := setupQuoteControllerTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"selection": map[string]string{},
	})
	req := httptest.NewRequest(http.MethodPost, "/products/9999/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestQuoteController_GetDefaultSelection(t *testing.T) {
	router, productID := setupQuoteControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d/quote/defaults", productID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Selection model.Selection `json:"selection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, model.Selection{
		"panel-qty":   "qty-100",
		"panel-paper": "paper-plain",
	}, response.Selection)
}
