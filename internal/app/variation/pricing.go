package variation

import "github.com/ikkim/printmoa-backend/internal/app/model"

// Contribution is the signed delta one selected attribute adds to the base
// price. Quantity panel contributions are discounts (negative), attribute
// panel contributions are surcharges (positive).
type Contribution struct {
	PanelID     string  `json:"panel_id"`
	PanelName   string  `json:"panel_name"`
	AttributeID string  `json:"attribute_id"`
	Delta       float64 `json:"delta"`
}

// AttributeDelta resolves the price contribution of one selected attribute.
//
// For a quantity-dependent attribute panel the amount comes from the
// attribute's per-break price map keyed by the selected quantity attribute;
// a missing entry contributes 0 (the break simply has not been configured
// yet). Otherwise the scalar price applies. Fixed amounts are taken as-is,
// percentage amounts are resolved against the base price. The quantity
// panel's own value acts as a discount and is negated.
func AttributeDelta(p model.VariationPanel, attr model.Attribute, basePrice float64, selectedQuantityID string) float64 {
	var amount float64
	if p.Type != model.PanelQuantity && p.DependOnQuantity {
		amount = attr.Prices[selectedQuantityID]
	} else {
		amount = attr.Price
	}

	delta := amount
	if p.PricingMode() == model.PriceModePercentage {
		delta = basePrice * amount / 100
	}
	if p.Type == model.PanelQuantity {
		delta = -delta
	}
	return delta
}

// ResolvePrice computes the final price for a selection and reports the
// per-attribute contributions that made it up.
//
// Selections only count when their panel is enabled and active under its
// conditional logic, the attribute exists, and the attribute itself is
// active; everything else is filtered out, including attributes left
// "selected" by stale editor state. The total never goes below zero even if
// discounts exceed the base price.
//
// The function is pure: it reads nothing but its arguments.
func ResolvePrice(basePrice float64, sel model.Selection, doc model.VariationDocument) (float64, []Contribution) {
	quantityID := activeQuantitySelection(sel, doc)

	total := basePrice
	var contributions []Contribution
	for _, p := range doc {
		attrID, ok := sel[p.ID]
		if !ok || attrID == "" {
			continue
		}
		if !p.Enabled || !LogicActive(p.ConditionalLogic, sel, doc) {
			continue
		}
		attr, ok := p.FindAttribute(attrID)
		if !ok {
			continue
		}
		if !LogicActive(attr.ConditionalLogic, sel, doc) {
			continue
		}

		delta := AttributeDelta(p, attr, basePrice, quantityID)
		total += delta
		contributions = append(contributions, Contribution{
			PanelID:     p.ID,
			PanelName:   p.Name,
			AttributeID: attr.ID,
			Delta:       delta,
		})
	}

	if total < 0 {
		total = 0
	}
	return total, contributions
}

// ComputeTotal is ResolvePrice without the breakdown.
func ComputeTotal(basePrice float64, sel model.Selection, doc model.VariationDocument) float64 {
	total, _ := ResolvePrice(basePrice, sel, doc)
	return total
}

// activeQuantitySelection returns the selected quantity attribute id used as
// the key into quantity-dependent price maps, or "" when the quantity panel
// is missing, disabled, inactive, or the selection does not name one of its
// attributes.
func activeQuantitySelection(sel model.Selection, doc model.VariationDocument) string {
	qp, ok := FindPanelByType(doc, model.PanelQuantity)
	if !ok || !qp.Enabled || !LogicActive(qp.ConditionalLogic, sel, doc) {
		return ""
	}
	attrID := sel[qp.ID]
	attr, ok := qp.FindAttribute(attrID)
	if !ok || !LogicActive(attr.ConditionalLogic, sel, doc) {
		return ""
	}
	return attr.ID
}
