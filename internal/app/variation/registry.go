// Package variation implements the product option configuration and pricing
// engine: a document of ordered panels, each holding selectable attributes
// with fixed or percentage prices, optionally keyed by quantity break, and
// conditional rules that gate panels and attributes on selections elsewhere.
//
// All update functions are pure: they deep-copy the input and return the
// updated document or panel, so invariants are enforced at a single call site
// and callers never observe intermediate states.
package variation

import (
	"errors"

	"github.com/ikkim/printmoa-backend/internal/app/model"
)

var (
	ErrPanelNotFound     = errors.New("variation panel not found")
	ErrAttributeNotFound = errors.New("variation attribute not found")
	ErrInvalidPriceMode  = errors.New("invalid price mode")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrPercentageRange   = errors.New("percentage must be between 0 and 100")
	ErrUnknownField      = errors.New("unknown attribute field")
)

// NewStarterDocument seeds the fixed starter panel set every product begins
// with: quantity, paper-size, paper-type and finishing, all enabled, all in
// fixed pricing mode, with no attributes yet.
func NewStarterDocument(gen IDGenerator) model.VariationDocument {
	starter := []struct {
		name string
		typ  model.PanelType
	}{
		{"Quantity", model.PanelQuantity},
		{"Paper Size", model.PanelPaperSize},
		{"Paper Type", model.PanelPaperType},
		{"Finishing", model.PanelFinishing},
	}

	doc := make(model.VariationDocument, 0, len(starter))
	for _, s := range starter {
		panel := model.VariationPanel{
			ID:         gen.NewID(),
			Name:       s.name,
			Type:       s.typ,
			Enabled:    true,
			Attributes: []model.Attribute{},
		}
		if s.typ == model.PanelQuantity {
			panel.DiscountType = model.PriceModeFixed
		} else {
			panel.PriceType = model.PriceModeFixed
		}
		doc = append(doc, panel)
	}
	return doc
}

// FindPanel returns the panel with the given id.
func FindPanel(doc model.VariationDocument, panelID string) (model.VariationPanel, bool) {
	for _, p := range doc {
		if p.ID == panelID {
			return p, true
		}
	}
	return model.VariationPanel{}, false
}

// FindPanelByType returns the first panel of the given type. Used to locate
// the quantity panel when resolving quantity-dependent prices.
func FindPanelByType(doc model.VariationDocument, typ model.PanelType) (model.VariationPanel, bool) {
	for _, p := range doc {
		if p.Type == typ {
			return p, true
		}
	}
	return model.VariationPanel{}, false
}

// FindAttribute resolves a (panel id, attribute id) pair against the document.
func FindAttribute(doc model.VariationDocument, panelID, attributeID string) (model.Attribute, bool) {
	p, ok := FindPanel(doc, panelID)
	if !ok {
		return model.Attribute{}, false
	}
	return p.FindAttribute(attributeID)
}

func panelIndex(doc model.VariationDocument, panelID string) int {
	for i, p := range doc {
		if p.ID == panelID {
			return i
		}
	}
	return -1
}

// updatePanel clones the document and applies fn to the target panel copy.
func updatePanel(doc model.VariationDocument, panelID string, fn func(*model.VariationPanel) error) (model.VariationDocument, error) {
	i := panelIndex(doc, panelID)
	if i < 0 {
		return nil, ErrPanelNotFound
	}
	next := doc.Clone()
	if err := fn(&next[i]); err != nil {
		return nil, err
	}
	return next, nil
}

// AddPanel appends a new attribute panel after the starter set. The panel's
// type is fixed at creation; there is deliberately no operation to change it,
// since dependent rules and price-matrix keys would be invalidated.
func AddPanel(doc model.VariationDocument, gen IDGenerator, name string, typ model.PanelType) (model.VariationDocument, string) {
	next := doc.Clone()
	panel := model.VariationPanel{
		ID:         gen.NewID(),
		Name:       name,
		Type:       typ,
		Enabled:    true,
		Attributes: []model.Attribute{},
	}
	if typ == model.PanelQuantity {
		panel.DiscountType = model.PriceModeFixed
	} else {
		panel.PriceType = model.PriceModeFixed
	}
	next = append(next, panel)
	return next, panel.ID
}

// RemovePanel deletes a panel. Rules elsewhere that reference it are left in
// place and resolve as unsatisfied from then on.
func RemovePanel(doc model.VariationDocument, panelID string) (model.VariationDocument, error) {
	i := panelIndex(doc, panelID)
	if i < 0 {
		return nil, ErrPanelNotFound
	}
	next := doc.Clone()
	next = append(next[:i], next[i+1:]...)
	return next, nil
}

// SetPricingMode changes how a panel's stored amounts are applied: the
// quantity panel's DiscountType or an attribute panel's PriceType. Existing
// price data is never migrated or dropped by a mode change.
func SetPricingMode(doc model.VariationDocument, panelID string, mode model.PriceMode) (model.VariationDocument, error) {
	if mode != model.PriceModeFixed && mode != model.PriceModePercentage {
		return nil, ErrInvalidPriceMode
	}
	return updatePanel(doc, panelID, func(p *model.VariationPanel) error {
		if p.Type == model.PanelQuantity {
			p.DiscountType = mode
		} else {
			p.PriceType = mode
		}
		return nil
	})
}

// SetDependOnQuantity toggles per-quantity-break pricing for an attribute
// panel. Both the scalar Price and the Prices map survive the toggle intact,
// so switching back and forth is lossless.
func SetDependOnQuantity(doc model.VariationDocument, panelID string, depend bool) (model.VariationDocument, error) {
	return updatePanel(doc, panelID, func(p *model.VariationPanel) error {
		p.DependOnQuantity = depend
		return nil
	})
}

// SetEnabled enables or disables a panel. Disabled panels are excluded from
// price resolution and their attributes cannot satisfy "is" rules.
func SetEnabled(doc model.VariationDocument, panelID string, enabled bool) (model.VariationDocument, error) {
	return updatePanel(doc, panelID, func(p *model.VariationPanel) error {
		p.Enabled = enabled
		return nil
	})
}

// SetPanelName renames a panel.
func SetPanelName(doc model.VariationDocument, panelID, name string) (model.VariationDocument, error) {
	return updatePanel(doc, panelID, func(p *model.VariationPanel) error {
		p.Name = name
		return nil
	})
}

// SetPanelLogic attaches or clears the conditional logic gating the panel.
func SetPanelLogic(doc model.VariationDocument, panelID string, logic *model.ConditionalLogic) (model.VariationDocument, error) {
	return updatePanel(doc, panelID, func(p *model.VariationPanel) error {
		p.ConditionalLogic = logic.Clone()
		return nil
	})
}
