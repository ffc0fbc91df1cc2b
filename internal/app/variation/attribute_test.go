package variation

import (
	"testing"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countDefaults(p model.VariationPanel) int {
	n := 0
	for _, a := range p.Attributes {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAddAttribute(t *testing.T) {
	gen := NewSequenceGenerator("attr")
	panel := model.VariationPanel{ID: "p1", Name: "Paper Size", Type: model.PanelPaperSize, Enabled: true}

	next, id := AddAttribute(panel, gen)

	assert.Equal(t, "attr-1", id)
	require.Len(t, next.Attributes, 1)
	assert.Empty(t, next.Attributes[0].Name)
	assert.False(t, next.Attributes[0].IsDefault)
	assert.Zero(t, next.Attributes[0].Price)

	// Original panel untouched.
	assert.Empty(t, panel.Attributes)
}

func TestSetDefaultAttribute_SingleDefaultInvariant(t *testing.T) {
	gen := NewSequenceGenerator("attr")
	panel := model.VariationPanel{ID: "p1", Name: "Paper Size", Type: model.PanelPaperSize, Enabled: true}

	var ids []string
	for i := 0; i < 3; i++ {
		var id string
		panel, id = AddAttribute(panel, gen)
		ids = append(ids, id)
	}

	// Any sequence of setDefault calls leaves exactly one default.
	for _, id := range []string{ids[0], ids[2], ids[1], ids[1], ids[0]} {
		var err error
		panel, err = SetDefaultAttribute(panel, id)
		require.NoError(t, err)

		assert.Equal(t, 1, countDefaults(panel))
		attr, ok := panel.FindAttribute(id)
		require.True(t, ok)
		assert.True(t, attr.IsDefault)
	}

	_, err := SetDefaultAttribute(panel, "missing")
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestRemoveAttribute(t *testing.T) {
	gen := NewSequenceGenerator("attr")
	panel := model.VariationPanel{ID: "p1", Name: "Paper Size", Type: model.PanelPaperSize, Enabled: true}

	panel, first := AddAttribute(panel, gen)
	panel, second := AddAttribute(panel, gen)

	var err error
	panel, err = SetDefaultAttribute(panel, first)
	require.NoError(t, err)

	// Removing the default leaves the panel with zero defaults; nothing is
	// auto-promoted.
	panel, err = RemoveAttribute(panel, first)
	require.NoError(t, err)
	require.Len(t, panel.Attributes, 1)
	assert.Equal(t, second, panel.Attributes[0].ID)
	assert.Equal(t, 0, countDefaults(panel))

	_, err = RemoveAttribute(panel, first)
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestUpdateAttributeField(t *testing.T) {
	gen := NewSequenceGenerator("attr")

	newPanel := func(mode model.PriceMode) (model.VariationPanel, string) {
		p := model.VariationPanel{ID: "p1", Name: "Paper Type", Type: model.PanelPaperType, Enabled: true, PriceType: mode}
		return AddAttribute(p, gen)
	}

	t.Run("sets name and description", func(t *testing.T) {
		panel, id := newPanel(model.PriceModeFixed)
		panel, err := UpdateAttributeField(panel, id, FieldName, "Premium Matte")
		require.NoError(t, err)
		panel, err = UpdateAttributeField(panel, id, FieldDescription, "250gsm")
		require.NoError(t, err)

		attr, _ := panel.FindAttribute(id)
		assert.Equal(t, "Premium Matte", attr.Name)
		assert.Equal(t, "250gsm", attr.Description)
	})

	t.Run("fixed mode rejects negative prices", func(t *testing.T) {
		panel, id := newPanel(model.PriceModeFixed)
		_, err := UpdateAttributeField(panel, id, FieldPrice, -1.0)
		assert.ErrorIs(t, err, ErrNegativePrice)

		panel, err = UpdateAttributeField(panel, id, FieldPrice, 12.5)
		require.NoError(t, err)
		attr, _ := panel.FindAttribute(id)
		assert.Equal(t, 12.5, attr.Price)
	})

	t.Run("percentage mode bounds prices to [0, 100]", func(t *testing.T) {
		panel, id := newPanel(model.PriceModePercentage)
		_, err := UpdateAttributeField(panel, id, FieldPrice, 101.0)
		assert.ErrorIs(t, err, ErrPercentageRange)
		_, err = UpdateAttributeField(panel, id, FieldPrice, -0.5)
		assert.ErrorIs(t, err, ErrNegativePrice)

		_, err = UpdateAttributeField(panel, id, FieldPrice, 100.0)
		assert.NoError(t, err)
	})

	t.Run("rejected values never enter the panel", func(t *testing.T) {
		panel, id := newPanel(model.PriceModeFixed)
		panel, err := UpdateAttributeField(panel, id, FieldPrice, 5.0)
		require.NoError(t, err)

		_, err = UpdateAttributeField(panel, id, FieldPrice, -3.0)
		require.Error(t, err)

		attr, _ := panel.FindAttribute(id)
		assert.Equal(t, 5.0, attr.Price)
	})

	t.Run("unknown field", func(t *testing.T) {
		panel, id := newPanel(model.PriceModeFixed)
		_, err := UpdateAttributeField(panel, id, "stockQuantity", 3)
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("design settings pass through opaquely", func(t *testing.T) {
		panel, id := newPanel(model.PriceModeFixed)
		raw := []byte(`{"productWidth":90,"productHeight":50}`)
		panel, err := UpdateAttributeField(panel, id, FieldDesignSettings, raw)
		require.NoError(t, err)

		attr, _ := panel.FindAttribute(id)
		assert.JSONEq(t, string(raw), string(attr.DesignSettings))
	})
}

func TestSetQuantityPrice(t *testing.T) {
	gen := NewSequenceGenerator("attr")
	panel := model.VariationPanel{
		ID: "p1", Name: "Finishing", Type: model.PanelFinishing,
		Enabled: true, PriceType: model.PriceModeFixed, DependOnQuantity: true,
	}
	panel, id := AddAttribute(panel, gen)

	panel, err := SetQuantityPrice(panel, id, "qty-100", 5.00)
	require.NoError(t, err)
	panel, err = SetQuantityPrice(panel, id, "qty-500", 3.00)
	require.NoError(t, err)

	attr, _ := panel.FindAttribute(id)
	assert.Equal(t, map[string]float64{"qty-100": 5.00, "qty-500": 3.00}, attr.Prices)

	_, err = SetQuantityPrice(panel, id, "qty-100", -1)
	assert.ErrorIs(t, err, ErrNegativePrice)

	panel, err = RemoveQuantityPrice(panel, id, "qty-100")
	require.NoError(t, err)
	attr, _ = panel.FindAttribute(id)
	assert.NotContains(t, attr.Prices, "qty-100")
}
