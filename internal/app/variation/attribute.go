package variation

import (
	"encoding/json"

	"github.com/ikkim/printmoa-backend/internal/app/model"
)

// Attribute field names accepted by UpdateAttributeField. The editor sends
// generic field/value pairs; anything not listed here is rejected.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldPrice          = "price"
	FieldSwatchType     = "swatchType"
	FieldSwatchImage    = "swatchImage"
	FieldDesignSettings = "designSettings"
)

func attributeIndex(p model.VariationPanel, attributeID string) int {
	for i, a := range p.Attributes {
		if a.ID == attributeID {
			return i
		}
	}
	return -1
}

// AddAttribute appends a fresh attribute to the panel: empty name, not
// default, zero price. Returns the updated panel and the new attribute id.
// This operation never fails.
func AddAttribute(p model.VariationPanel, gen IDGenerator) (model.VariationPanel, string) {
	next := p.Clone()
	attr := model.Attribute{
		ID:    gen.NewID(),
		Price: 0,
	}
	next.Attributes = append(next.Attributes, attr)
	return next, attr.ID
}

// SetDefaultAttribute marks the target attribute as the panel default and
// clears the flag on every sibling in the same update, so the panel never
// holds two defaults, not even transiently.
func SetDefaultAttribute(p model.VariationPanel, attributeID string) (model.VariationPanel, error) {
	if attributeIndex(p, attributeID) < 0 {
		return model.VariationPanel{}, ErrAttributeNotFound
	}
	next := p.Clone()
	for i := range next.Attributes {
		next.Attributes[i].IsDefault = next.Attributes[i].ID == attributeID
	}
	return next, nil
}

// RemoveAttribute deletes the attribute by id. If the removed attribute was
// the default, no replacement is promoted; a panel with zero defaults is
// valid. Rules referencing the removed attribute stay in place and resolve
// as unsatisfied.
func RemoveAttribute(p model.VariationPanel, attributeID string) (model.VariationPanel, error) {
	i := attributeIndex(p, attributeID)
	if i < 0 {
		return model.VariationPanel{}, ErrAttributeNotFound
	}
	next := p.Clone()
	next.Attributes = append(next.Attributes[:i], next.Attributes[i+1:]...)
	return next, nil
}

// SetAttributeLogic attaches or clears conditional logic on one attribute.
func SetAttributeLogic(p model.VariationPanel, attributeID string, logic *model.ConditionalLogic) (model.VariationPanel, error) {
	i := attributeIndex(p, attributeID)
	if i < 0 {
		return model.VariationPanel{}, ErrAttributeNotFound
	}
	next := p.Clone()
	next.Attributes[i].ConditionalLogic = logic.Clone()
	return next, nil
}

// UpdateAttributeField sets one editable field of an attribute. Price values
// are checked against the panel's pricing mode before they enter the stored
// document: fixed amounts must be >= 0, percentages must be in [0, 100].
func UpdateAttributeField(p model.VariationPanel, attributeID, field string, value any) (model.VariationPanel, error) {
	i := attributeIndex(p, attributeID)
	if i < 0 {
		return model.VariationPanel{}, ErrAttributeNotFound
	}

	next := p.Clone()
	attr := &next.Attributes[i]

	switch field {
	case FieldName:
		s, ok := value.(string)
		if !ok {
			return model.VariationPanel{}, ErrUnknownField
		}
		attr.Name = s
	case FieldDescription:
		s, ok := value.(string)
		if !ok {
			return model.VariationPanel{}, ErrUnknownField
		}
		attr.Description = s
	case FieldPrice:
		amount, ok := toFloat(value)
		if !ok {
			return model.VariationPanel{}, ErrUnknownField
		}
		if err := checkAmount(p.PricingMode(), amount); err != nil {
			return model.VariationPanel{}, err
		}
		attr.Price = amount
	case FieldSwatchType:
		s, ok := value.(string)
		if !ok {
			return model.VariationPanel{}, ErrUnknownField
		}
		attr.SwatchType = s
	case FieldSwatchImage:
		s, ok := value.(string)
		if !ok {
			return model.VariationPanel{}, ErrUnknownField
		}
		attr.SwatchImage = s
	case FieldDesignSettings:
		raw, err := toRawJSON(value)
		if err != nil {
			return model.VariationPanel{}, ErrUnknownField
		}
		attr.DesignSettings = raw
	default:
		return model.VariationPanel{}, ErrUnknownField
	}

	return next, nil
}

// SetQuantityPrice sets one entry of the attribute's per-quantity-break price
// map, keyed by a quantity panel attribute id. The same mode bounds apply as
// for the scalar price.
func SetQuantityPrice(p model.VariationPanel, attributeID, quantityAttributeID string, amount float64) (model.VariationPanel, error) {
	i := attributeIndex(p, attributeID)
	if i < 0 {
		return model.VariationPanel{}, ErrAttributeNotFound
	}
	if err := checkAmount(p.PricingMode(), amount); err != nil {
		return model.VariationPanel{}, err
	}
	next := p.Clone()
	attr := &next.Attributes[i]
	if attr.Prices == nil {
		attr.Prices = make(map[string]float64)
	}
	attr.Prices[quantityAttributeID] = amount
	return next, nil
}

// RemoveQuantityPrice drops one per-break price entry.
func RemoveQuantityPrice(p model.VariationPanel, attributeID, quantityAttributeID string) (model.VariationPanel, error) {
	i := attributeIndex(p, attributeID)
	if i < 0 {
		return model.VariationPanel{}, ErrAttributeNotFound
	}
	next := p.Clone()
	delete(next.Attributes[i].Prices, quantityAttributeID)
	return next, nil
}

func checkAmount(mode model.PriceMode, amount float64) error {
	if amount < 0 {
		return ErrNegativePrice
	}
	if mode == model.PriceModePercentage && amount > 100 {
		return ErrPercentageRange
	}
	return nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toRawJSON(value any) (json.RawMessage, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return append(json.RawMessage(nil), v...), nil
	case []byte:
		return append(json.RawMessage(nil), v...), nil
	default:
		return json.Marshal(v)
	}
}
