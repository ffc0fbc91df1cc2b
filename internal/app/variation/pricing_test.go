package variation

import (
	"testing"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDocument builds a representative print product document:
// quantity breaks 100/500, paper sizes A4/Letter, paper types, finishing.
func testDocument() model.VariationDocument {
	return model.VariationDocument{
		{
			ID: "panel-qty", Name: "Quantity", Type: model.PanelQuantity,
			Enabled: true, DiscountType: model.PriceModeFixed,
			Attributes: []model.Attribute{
				{ID: "qty-100", Name: "100", IsDefault: true},
				{ID: "qty-500", Name: "500", Price: 10},
			},
		},
		{
			ID: "panel-size", Name: "Paper Size", Type: model.PanelPaperSize,
			Enabled: true, PriceType: model.PriceModeFixed,
			Attributes: []model.Attribute{
				{ID: "size-a4", Name: "A4", IsDefault: true},
				{ID: "size-letter", Name: "Letter", Price: 2},
			},
		},
		{
			ID: "panel-paper", Name: "Paper Type", Type: model.PanelPaperType,
			Enabled: true, PriceType: model.PriceModeFixed,
			Attributes: []model.Attribute{
				{ID: "paper-plain", Name: "Plain", IsDefault: true},
				{ID: "paper-premium", Name: "Premium", Price: 12.5},
			},
		},
		{
			ID: "panel-finish", Name: "Finishing", Type: model.PanelFinishing,
			Enabled: true, PriceType: model.PriceModeFixed, DependOnQuantity: true,
			Attributes: []model.Attribute{
				{ID: "finish-none", Name: "None", IsDefault: true},
				{ID: "finish-coating", Name: "Coating", Prices: map[string]float64{
					"qty-100": 5.00,
					"qty-500": 3.00,
				}},
			},
		},
	}
}

func TestResolvePrice_FixedSurcharge(t *testing.T) {
	doc := testDocument()

	// Base $100, premium paper adds a fixed $12.50.
	sel := model.Selection{"panel-paper": "paper-premium"}
	total, contributions := ResolvePrice(100.00, sel, doc)

	assert.Equal(t, 112.50, total)
	require.Len(t, contributions, 1)
	assert.Equal(t, "panel-paper", contributions[0].PanelID)
	assert.Equal(t, 12.50, contributions[0].Delta)
}

func TestResolvePrice_QuantityPercentageDiscount(t *testing.T) {
	doc := testDocument()
	doc[0].DiscountType = model.PriceModePercentage
	doc[0].Attributes[1].Price = 15 // 15% off at 500 copies

	sel := model.Selection{"panel-qty": "qty-500"}
	total := ComputeTotal(100.00, sel, doc)

	assert.Equal(t, 85.00, total)
}

func TestResolvePrice_QuantityDependentAttributePrice(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name     string
		quantity string
		want     float64
	}{
		{
			name:     "Configured break contributes its entry",
			quantity: "qty-100",
			want:     105.00,
		},
		{
			name:     "Cheaper break",
			quantity: "qty-500",
			want:     103.00,
		},
		{
			name:     "Unconfigured break contributes zero",
			quantity: "qty-1000",
			want:     100.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := model.Selection{
				"panel-qty":    tt.quantity,
				"panel-finish": "finish-coating",
			}
			assert.Equal(t, tt.want, ComputeTotal(100.00, sel, doc))
		})
	}
}

func TestResolvePrice_ConditionalExclusion(t *testing.T) {
	doc := testDocument()

	// Coating only available for A4.
	doc[3].Attributes[1].ConditionalLogic = &model.ConditionalLogic{
		Enabled:  true,
		Operator: model.CombineAll,
		Rules: []model.ConditionalRule{
			{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIs},
		},
	}
	doc[3].DependOnQuantity = false
	doc[3].Attributes[1].Price = 5

	// Letter selected: the coating stays nominally selected but must not count.
	sel := model.Selection{
		"panel-size":   "size-letter",
		"panel-finish": "finish-coating",
	}
	assert.Equal(t, 102.00, ComputeTotal(100.00, sel, doc))

	// A4 selected: coating applies.
	sel["panel-size"] = "size-a4"
	assert.Equal(t, 105.00, ComputeTotal(100.00, sel, doc))
}

func TestResolvePrice_DisabledPanelExcluded(t *testing.T) {
	doc := testDocument()
	doc[2].Enabled = false

	sel := model.Selection{"panel-paper": "paper-premium"}
	assert.Equal(t, 100.00, ComputeTotal(100.00, sel, doc))
}

func TestResolvePrice_NeverNegative(t *testing.T) {
	doc := testDocument()
	doc[0].Attributes[1].Price = 500 // fixed discount far beyond the base

	sel := model.Selection{"panel-qty": "qty-500"}
	total := ComputeTotal(20.00, sel, doc)

	assert.GreaterOrEqual(t, total, 0.0)
	assert.Equal(t, 0.0, total)
}

func TestResolvePrice_StaleRuleReferenceDoesNotPanic(t *testing.T) {
	doc := testDocument()

	// Panel logic pointing at an attribute that was deleted.
	doc[2].ConditionalLogic = &model.ConditionalLogic{
		Enabled:  true,
		Operator: model.CombineAll,
		Rules: []model.ConditionalRule{
			{VariationID: "panel-size", AttributeID: "size-b5", Operator: model.RuleIs},
		},
	}

	sel := model.Selection{"panel-paper": "paper-premium"}
	require.NotPanics(t, func() {
		// Rule misses degrade to "panel inactive", never to an error.
		assert.Equal(t, 100.00, ComputeTotal(100.00, sel, doc))
	})
}

func TestResolvePrice_PercentageSurcharge(t *testing.T) {
	doc := testDocument()
	doc[2].PriceType = model.PriceModePercentage
	doc[2].Attributes[1].Price = 20

	sel := model.Selection{"panel-paper": "paper-premium"}
	assert.Equal(t, 120.00, ComputeTotal(100.00, sel, doc))
}

func TestResolvePrice_QuantityKeyIgnoredWhenQuantityInactive(t *testing.T) {
	doc := testDocument()
	doc[0].Enabled = false

	// Quantity panel disabled: the coating's break map has no active key,
	// so the quantity-dependent attribute contributes nothing.
	sel := model.Selection{
		"panel-qty":    "qty-100",
		"panel-finish": "finish-coating",
	}
	assert.Equal(t, 100.00, ComputeTotal(100.00, sel, doc))
}

func TestResolvePrice_Pure(t *testing.T) {
	doc := testDocument()
	sel := model.Selection{
		"panel-qty":    "qty-100",
		"panel-paper":  "paper-premium",
		"panel-finish": "finish-coating",
	}

	first := ComputeTotal(100.00, sel, doc)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ComputeTotal(100.00, sel, doc))
	}
}
