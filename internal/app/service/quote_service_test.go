package service

import (
	"context"
	"testing"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quoteTestDocument: a quantity panel with a fixed discount and a paper panel
// with a fixed surcharge on the premium attribute.
func quoteTestDocument() model.VariationDocument {
	return model.VariationDocument{
		{
			ID:           "panel-qty",
			Name:         "Quantity",
			Type:         model.PanelQuantity,
			Enabled:      true,
			DiscountType: model.PriceModeFixed,
			Attributes: []model.Attribute{
				{ID: "qty-100", Name: "100", IsDefault: true},
				{ID: "qty-500", Name: "500", Price: 5},
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
	}
}

func setupQuoteServiceTest(t *testing.T) (QuoteService, repository.ProductRepository, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	product := &model.Product{
		Name:       "Business Card",
		Category:   model.CategoryBusinessCard,
		BasePrice:  100,
		Status:     model.StatusPublished,
		Variations: quoteTestDocument(),
	}
	require.NoError(t, productRepo.Create(product))

	return NewQuoteService(productRepo, nil), productRepo, product.ID
}

func TestQuoteService_Quote(t *testing.T) {
	quoteService, _, productID := setupQuoteServiceTest(t)

	sel := model.Selection{
		"panel-qty":   "qty-500",
		"panel-paper": "paper-premium",
	}

	quote, err := quoteService.Quote(context.Background(), productID, sel)
	require.NoError(t, err)

	assert.Equal(t, productID, quote.ProductID)
	assert.Equal(t, 100.0, quote.BasePrice)
	// 100 - 5 quantity discount + 12.50 paper surcharge
	assert.Equal(t, 107.5, quote.Total)
	assert.Len(t, quote.Contributions, 2)
}

func TestQuoteService_Quote_UsesSalePrice(t *testing.T) {
	quoteService, productRepo, productID := setupQuoteServiceTest(t)

	salePrice := 80.0
	require.NoError(t, productRepo.UpdateSalePrice(productID, &salePrice))

	quote, err := quoteService.Quote(context.Background(), productID, model.Selection{
		"panel-qty":   "qty-100",
		"panel-paper": "paper-plain",
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, quote.BasePrice)
	assert.Equal(t, 80.0, quote.Total)
}

func TestQuoteService_Quote_ProductNotFound(t *testing.T) {
	quoteService, _, _ := setupQuoteServiceTest(t)

	_, err := quoteService.Quote(context.Background(), 9999, model.Selection{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestQuoteService_DefaultSelection(t *testing.T) {
	quoteService, _, productID := setupQuoteServiceTest(t)

	sel, err := quoteService.DefaultSelection(productID)
	require.NoError(t, err)

	assert.Equal(t, model.Selection{
		"panel-qty":   "qty-100",
		"panel-paper": "paper-plain",
	}, sel)
}
