package variation

import "github.com/ikkim/printmoa-backend/internal/app/model"

// RuleSatisfied evaluates one conditional rule against the live selection.
//
// A rule referencing a panel or attribute that no longer exists in the
// document is permanently unsatisfied, for either operator. Removing an
// attribute that rules depend on silently deactivates the dependents instead
// of blocking the removal or failing price computation. A disabled panel is
// treated the same as a removed one: its attributes cannot satisfy any rule.
func RuleSatisfied(rule model.ConditionalRule, sel model.Selection, doc model.VariationDocument) bool {
	p, ok := FindPanel(doc, rule.VariationID)
	if !ok || !p.Enabled {
		return false
	}
	if _, ok := p.FindAttribute(rule.AttributeID); !ok {
		return false
	}
	selected := sel.Selected(rule.VariationID, rule.AttributeID)
	return selected == (rule.Operator == model.RuleIs)
}

// LogicActive reports whether a panel or attribute gated by the given logic
// block is currently active. A nil or disabled block is always active.
// "all" combines rules with AND and is vacuously true for an empty list;
// "any" combines with OR and is vacuously false.
func LogicActive(logic *model.ConditionalLogic, sel model.Selection, doc model.VariationDocument) bool {
	if logic == nil || !logic.Enabled {
		return true
	}

	switch logic.Operator {
	case model.CombineAny:
		for _, rule := range logic.Rules {
			if RuleSatisfied(rule, sel, doc) {
				return true
			}
		}
		return false
	default: // all
		for _, rule := range logic.Rules {
			if !RuleSatisfied(rule, sel, doc) {
				return false
			}
		}
		return true
	}
}
