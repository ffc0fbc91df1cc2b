package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryBusinessCard ProductCategory = "business-card" // 명함
	CategoryFlyer        ProductCategory = "flyer"         // 전단지
	CategoryBooklet      ProductCategory = "booklet"       // 책자
	CategorySticker      ProductCategory = "sticker"       // 스티커
	CategoryBanner       ProductCategory = "banner"        // 현수막
)

type ProductStatus string

const (
	StatusDraft     ProductStatus = "draft"     // 작성 중
	StatusPublished ProductStatus = "published" // 판매 중
	StatusArchived  ProductStatus = "archived"  // 판매 종료
)

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ProductCategory `gorm:"type:varchar(50)" json:"category"`
	Status      ProductStatus   `gorm:"type:varchar(20);default:'draft'" json:"status"`
	BasePrice   float64         `gorm:"not null" json:"base_price"` // 기본 단가
	SalePrice   *float64        `json:"sale_price,omitempty"`       // 특가 (플래시 세일 적용 시)
	ImageURL    string          `json:"image_url"`

	// Variations 패널 문서 전체가 JSON 컬럼으로 통째로 저장된다
	Variations VariationDocument `gorm:"serializer:json" json:"variations"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice 견적 계산의 기준 단가. 특가가 설정되어 있으면 특가를 쓴다.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice > 0 {
		return *p.SalePrice
	}
	return p.BasePrice
}
