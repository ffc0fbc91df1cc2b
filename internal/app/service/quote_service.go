package service

import (
	"context"
	"math"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	"github.com/ikkim/printmoa-backend/pkg/logger"
)

// Quote is the priced result of one selection against a product.
type Quote struct {
	ProductID     uint                     `json:"product_id"`
	BasePrice     float64                  `json:"base_price"` // effective unit price, sale-aware
	Total         float64                  `json:"total"`
	Contributions []variation.Contribution `json:"contributions"`
}

// QuoteService prices selections for the cart/order consumer. The engine
// does the arithmetic; this layer supplies the base price and owns caching.
type QuoteService interface {
	Quote(ctx context.Context, productID uint, sel model.Selection) (*Quote, error)
	// DefaultSelection returns the selection implied by each active panel's
	// default attribute, for pre-filling a configuration UI.
	DefaultSelection(productID uint) (model.Selection, error)
}

type quoteService struct {
	productRepo repository.ProductRepository
	cache       *QuoteCache
}

// NewQuoteService wires quote computation. cache may be nil to disable
// quote caching.
func NewQuoteService(productRepo repository.ProductRepository, cache *QuoteCache) QuoteService {
	return &quoteService{
		productRepo: productRepo,
		cache:       cache,
	}
}

func (s *quoteService) Quote(ctx context.Context, productID uint, sel model.Selection) (*Quote, error) {
	if cached, ok := s.cache.Get(ctx, productID, sel); ok {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	base := product.EffectivePrice()
	total, contributions := variation.ResolvePrice(base, sel, product.Variations)

	quote := &Quote{
		ProductID:     productID,
		BasePrice:     base,
		Total:         roundMoney(total),
		Contributions: contributions,
	}

	s.cache.Set(ctx, productID, sel, quote)

	logger.Debug("Quote computed", map[string]interface{}{
		"product_id": productID,
		"base_price": quote.BasePrice,
		"total":      quote.Total,
	})
	return quote, nil
}

func (s *quoteService) DefaultSelection(productID uint) (model.Selection, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	sel := make(model.Selection)
	for _, p := range product.Variations {
		if !p.Enabled {
			continue
		}
		// A panel may legitimately have no default; the caller must then
		// pick explicitly.
		if attr, ok := p.DefaultAttribute(); ok {
			sel[p.ID] = attr.ID
		}
	}
	return sel, nil
}

// roundMoney rounds to 2 decimals at the service boundary only; the engine
// works with raw float arithmetic.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
