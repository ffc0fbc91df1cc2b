package model

import "encoding/json"

// PanelType 패널 유형 — quantity 패널만 할인 동작이 다르고 나머지는 일반 속성 패널
type PanelType string

const (
	PanelQuantity  PanelType = "quantity"   // 수량(부수) 패널
	PanelPaperSize PanelType = "paper-size" // 용지 규격 패널
	PanelPaperType PanelType = "paper-type" // 용지 종류 패널
	PanelFinishing PanelType = "finishing"  // 후가공 패널
)

// PriceMode 가격 적용 방식
type PriceMode string

const (
	PriceModeFixed      PriceMode = "fixed"      // 고정 금액
	PriceModePercentage PriceMode = "percentage" // 기준가 대비 퍼센트
)

// RuleOperator 조건 규칙 비교 연산자
type RuleOperator string

const (
	RuleIs    RuleOperator = "is"     // 해당 속성이 선택된 경우 충족
	RuleIsNot RuleOperator = "is_not" // 해당 속성이 선택되지 않은 경우 충족
)

// RuleCombinator 규칙 목록 결합 방식
type RuleCombinator string

const (
	CombineAll RuleCombinator = "all" // 모든 규칙 충족 (AND)
	CombineAny RuleCombinator = "any" // 하나 이상 충족 (OR)
)

// ConditionalRule 다른 패널의 선택 상태를 참조하는 단일 규칙.
// 속성 id는 패널 내에서만 유일하므로 참조는 항상 (패널 id, 속성 id) 쌍이다.
type ConditionalRule struct {
	VariationID string       `json:"variationId"` // 참조 대상 패널 id
	AttributeID string       `json:"attributeId"` // 참조 대상 속성 id
	Operator    RuleOperator `json:"operator"`    // is / is_not
}

// ConditionalLogic 패널 또는 속성의 노출 여부를 제어하는 규칙 블록.
// Enabled가 false면 항상 노출 상태로 평가된다.
type ConditionalLogic struct {
	Enabled  bool              `json:"enabled"`
	Operator RuleCombinator    `json:"operator"`
	Rules    []ConditionalRule `json:"rules"`
}

// Attribute 패널 내 선택 가능한 옵션 하나.
// quantity 패널에서는 Name이 수량 숫자 문자열("100" 등)을 담는다.
type Attribute struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"isDefault"`

	// Price는 소유 패널이 수량 비의존일 때, Prices는 DependOnQuantity가 켜진 패널에서
	// 수량 속성 id → 금액 매핑으로 사용된다. 모드 전환 시 둘 다 보존된다.
	Price  float64            `json:"price"`
	Prices map[string]float64 `json:"prices,omitempty"`

	SwatchType  string `json:"swatchType,omitempty"`  // 표시 전용
	SwatchImage string `json:"swatchImage,omitempty"` // 표시 전용

	// DesignSettings 에디터 캔버스 용 지오메트리 블록. 엔진은 해석하지 않고 그대로 보존한다.
	DesignSettings json.RawMessage `json:"designSettings,omitempty"`

	ConditionalLogic *ConditionalLogic `json:"conditionalLogic,omitempty"`
}

// VariationPanel 상품 구성 옵션 그룹. Attributes 순서가 곧 표시 순서다.
type VariationPanel struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    PanelType `json:"type"` // 생성 후 변경 불가
	Enabled bool      `json:"enabled"`

	DiscountType     PriceMode `json:"discountType,omitempty"` // quantity 패널 전용
	PriceType        PriceMode `json:"priceType,omitempty"`    // 일반 속성 패널 전용
	DependOnQuantity bool      `json:"dependOnQuantity"`       // 속성별 수량 구간 가격 사용 여부

	Attributes       []Attribute       `json:"attributes"`
	ConditionalLogic *ConditionalLogic `json:"conditionalLogic,omitempty"`
}

// VariationDocument 상품 하나에 저장/전송되는 패널 문서 전체.
// 패널과 중첩 속성이 통째로 직렬화되며 속성은 패널 밖의 독립 수명을 갖지 않는다.
type VariationDocument []VariationPanel

// Selection 패널 id → 선택된 속성 id. 견적 계산의 입력이 된다.
type Selection map[string]string

// Selected reports whether the given (panel, attribute) pair is in the selection.
func (s Selection) Selected(panelID, attributeID string) bool {
	return s[panelID] == attributeID && attributeID != ""
}

// Clone returns a deep copy so engine updates never alias stored state.
func (l *ConditionalLogic) Clone() *ConditionalLogic {
	if l == nil {
		return nil
	}
	cp := *l
	cp.Rules = make([]ConditionalRule, len(l.Rules))
	copy(cp.Rules, l.Rules)
	return &cp
}

// Clone returns a deep copy of the attribute.
func (a Attribute) Clone() Attribute {
	cp := a
	if a.Prices != nil {
		cp.Prices = make(map[string]float64, len(a.Prices))
		for k, v := range a.Prices {
			cp.Prices[k] = v
		}
	}
	if a.DesignSettings != nil {
		cp.DesignSettings = append(json.RawMessage(nil), a.DesignSettings...)
	}
	cp.ConditionalLogic = a.ConditionalLogic.Clone()
	return cp
}

// Clone returns a deep copy of the panel including all attributes.
func (p VariationPanel) Clone() VariationPanel {
	cp := p
	cp.Attributes = make([]Attribute, len(p.Attributes))
	for i, a := range p.Attributes {
		cp.Attributes[i] = a.Clone()
	}
	cp.ConditionalLogic = p.ConditionalLogic.Clone()
	return cp
}

// Clone returns a deep copy of the whole document.
func (d VariationDocument) Clone() VariationDocument {
	cp := make(VariationDocument, len(d))
	for i, p := range d {
		cp[i] = p.Clone()
	}
	return cp
}

// FindAttribute returns the attribute with the given id within this panel.
func (p VariationPanel) FindAttribute(attributeID string) (Attribute, bool) {
	for _, a := range p.Attributes {
		if a.ID == attributeID {
			return a, true
		}
	}
	return Attribute{}, false
}

// DefaultAttribute returns the attribute currently marked as default, if any.
func (p VariationPanel) DefaultAttribute() (Attribute, bool) {
	for _, a := range p.Attributes {
		if a.IsDefault {
			return a, true
		}
	}
	return Attribute{}, false
}

// PricingMode returns the mode that applies to this panel's stored amounts:
// DiscountType for the quantity panel, PriceType for attribute panels.
// An unset mode defaults to fixed.
func (p VariationPanel) PricingMode() PriceMode {
	var mode PriceMode
	if p.Type == PanelQuantity {
		mode = p.DiscountType
	} else {
		mode = p.PriceType
	}
	if mode == "" {
		mode = PriceModeFixed
	}
	return mode
}
