package variation

import (
	"fmt"

	"github.com/ikkim/printmoa-backend/internal/app/model"
)

// FieldErrors maps a document field path to a human-readable problem.
// Empty map means the document is valid.
type FieldErrors map[string]string

// ValidateDocument checks the commit-time invariants of a variation document.
//
// The engine tolerates transient states during editing (empty names while
// typing, zero defaults after a removal), so mutation operations only reject
// out-of-range prices. Everything else is checked here, at the boundary where
// the caller serializes or submits the document.
func ValidateDocument(doc model.VariationDocument) FieldErrors {
	errs := make(FieldErrors)

	seenPanelIDs := make(map[string]bool)
	for pi, p := range doc {
		panelPath := fmt.Sprintf("panels[%d]", pi)

		if p.ID == "" {
			errs[panelPath+".id"] = "panel id is required"
		} else if seenPanelIDs[p.ID] {
			errs[panelPath+".id"] = "panel id must be unique"
		}
		seenPanelIDs[p.ID] = true

		if p.Name == "" {
			errs[panelPath+".name"] = "panel name is required"
		}

		mode := p.PricingMode()
		if mode != model.PriceModeFixed && mode != model.PriceModePercentage {
			errs[panelPath+".priceType"] = "price mode must be fixed or percentage"
		}

		seenAttrIDs := make(map[string]bool)
		defaults := 0
		for ai, a := range p.Attributes {
			attrPath := fmt.Sprintf("%s.attributes[%d]", panelPath, ai)

			if a.ID == "" {
				errs[attrPath+".id"] = "attribute id is required"
			} else if seenAttrIDs[a.ID] {
				errs[attrPath+".id"] = "attribute id must be unique within its panel"
			}
			seenAttrIDs[a.ID] = true

			if a.Name == "" {
				errs[attrPath+".name"] = "attribute name is required"
			}
			if a.IsDefault {
				defaults++
			}

			if err := checkAmount(mode, a.Price); err != nil {
				errs[attrPath+".price"] = err.Error()
			}
			for quantityID, amount := range a.Prices {
				if err := checkAmount(mode, amount); err != nil {
					errs[fmt.Sprintf("%s.prices[%s]", attrPath, quantityID)] = err.Error()
				}
			}
		}

		if defaults > 1 {
			errs[panelPath+".attributes"] = "at most one attribute may be the default"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
