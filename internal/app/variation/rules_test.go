package variation

import (
	"testing"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSatisfied(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name string
		rule model.ConditionalRule
		sel  model.Selection
		want bool
	}{
		{
			name: "is matches selected attribute",
			rule: model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIs},
			sel:  model.Selection{"panel-size": "size-a4"},
			want: true,
		},
		{
			name: "is fails when another attribute is selected",
			rule: model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIs},
			sel:  model.Selection{"panel-size": "size-letter"},
			want: false,
		},
		{
			name: "is fails when nothing is selected in the panel",
			rule: model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIs},
			sel:  model.Selection{},
			want: false,
		},
		{
			name: "is_not inverts",
			rule: model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIsNot},
			sel:  model.Selection{"panel-size": "size-letter"},
			want: true,
		},
		{
			name: "deleted attribute is permanently unsatisfied for is",
			rule: model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-b5", Operator: model.RuleIs},
			sel:  model.Selection{"panel-size": "size-b5"},
			want: false,
		},
		{
			name: "deleted attribute is permanently unsatisfied even for is_not",
			rule: model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-b5", Operator: model.RuleIsNot},
			sel:  model.Selection{},
			want: false,
		},
		{
			name: "deleted panel is permanently unsatisfied",
			rule: model.ConditionalRule{VariationID: "panel-gone", AttributeID: "size-a4", Operator: model.RuleIs},
			sel:  model.Selection{"panel-gone": "size-a4"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleSatisfied(tt.rule, tt.sel, doc))
		})
	}
}

// Disabling a panel takes its attributes out of rule evaluation entirely,
// just like removing it would.
func TestRuleSatisfied_DisabledPanel(t *testing.T) {
	doc, err := SetEnabled(testDocument(), "panel-size", false)
	require.NoError(t, err)

	ruleIs := model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIs}
	ruleIsNot := model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIsNot}
	sel := model.Selection{"panel-size": "size-a4"}

	assert.False(t, RuleSatisfied(ruleIs, sel, doc))
	assert.False(t, RuleSatisfied(ruleIsNot, sel, doc))
	assert.False(t, RuleSatisfied(ruleIsNot, model.Selection{}, doc))

	// Re-enabling restores normal evaluation.
	doc, err = SetEnabled(doc, "panel-size", true)
	require.NoError(t, err)
	assert.True(t, RuleSatisfied(ruleIs, sel, doc))
}

func TestLogicActive(t *testing.T) {
	doc := testDocument()

	ruleA4 := model.ConditionalRule{VariationID: "panel-size", AttributeID: "size-a4", Operator: model.RuleIs}
	rulePremium := model.ConditionalRule{VariationID: "panel-paper", AttributeID: "paper-premium", Operator: model.RuleIs}

	tests := []struct {
		name  string
		logic *model.ConditionalLogic
		sel   model.Selection
		want  bool
	}{
		{
			name:  "nil logic is always active",
			logic: nil,
			sel:   model.Selection{},
			want:  true,
		},
		{
			name:  "disabled logic is always active",
			logic: &model.ConditionalLogic{Enabled: false, Operator: model.CombineAll, Rules: []model.ConditionalRule{ruleA4}},
			sel:   model.Selection{},
			want:  true,
		},
		{
			name:  "all with empty rules is vacuously active",
			logic: &model.ConditionalLogic{Enabled: true, Operator: model.CombineAll},
			sel:   model.Selection{},
			want:  true,
		},
		{
			name:  "any with empty rules is vacuously inactive",
			logic: &model.ConditionalLogic{Enabled: true, Operator: model.CombineAny},
			sel:   model.Selection{},
			want:  false,
		},
		{
			name:  "all requires every rule",
			logic: &model.ConditionalLogic{Enabled: true, Operator: model.CombineAll, Rules: []model.ConditionalRule{ruleA4, rulePremium}},
			sel:   model.Selection{"panel-size": "size-a4"},
			want:  false,
		},
		{
			name:  "all satisfied",
			logic: &model.ConditionalLogic{Enabled: true, Operator: model.CombineAll, Rules: []model.ConditionalRule{ruleA4, rulePremium}},
			sel:   model.Selection{"panel-size": "size-a4", "panel-paper": "paper-premium"},
			want:  true,
		},
		{
			name:  "any needs one rule",
			logic: &model.ConditionalLogic{Enabled: true, Operator: model.CombineAny, Rules: []model.ConditionalRule{ruleA4, rulePremium}},
			sel:   model.Selection{"panel-paper": "paper-premium"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogicActive(tt.logic, tt.sel, doc))
		})
	}
}
