package model

import (
	"time"

	"gorm.io/gorm"
)

// FlashSale 상품 특가 기간. 스케줄러가 기간을 확인해 상품 SalePrice를 적용/해제한다.
type FlashSale struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"` // 대상 상품 ID
	SalePrice float64        `gorm:"not null" json:"sale_price"`       // 특가 단가
	StartsAt  time.Time      `gorm:"not null" json:"starts_at"`        // 시작 시각
	EndsAt    time.Time      `gorm:"not null" json:"ends_at"`          // 종료 시각
	Applied   bool           `gorm:"default:false" json:"applied"`     // 상품에 반영 여부
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"` // 대상 상품 정보
}

func (FlashSale) TableName() string {
	return "flash_sales"
}

// Covers reports whether the sale window contains the given instant.
func (f *FlashSale) Covers(now time.Time) bool {
	return !now.Before(f.StartsAt) && now.Before(f.EndsAt)
}
