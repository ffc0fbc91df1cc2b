package repository

import (
	"time"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"gorm.io/gorm"
)

type FlashSaleRepository interface {
	Create(sale *model.FlashSale) error
	FindAll() ([]model.FlashSale, error)
	FindByID(id uint) (*model.FlashSale, error)
	FindPending(now time.Time) ([]model.FlashSale, error)
	FindExpired(now time.Time) ([]model.FlashSale, error)
	Update(sale *model.FlashSale) error
	Delete(id uint) error
}

type flashSaleRepository struct {
	db *gorm.DB
}

func NewFlashSaleRepository(db *gorm.DB) FlashSaleRepository {
	return &flashSaleRepository{db: db}
}

func (r *flashSaleRepository) Create(sale *model.FlashSale) error {
	return r.db.Create(sale).Error
}

func (r *flashSaleRepository) FindAll() ([]model.FlashSale, error) {
	var sales []model.FlashSale
	if err := r.db.Order("starts_at DESC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *flashSaleRepository) FindByID(id uint) (*model.FlashSale, error) {
	var sale model.FlashSale
	if err := r.db.First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindPending returns sales whose window covers now but are not applied yet.
func (r *flashSaleRepository) FindPending(now time.Time) ([]model.FlashSale, error) {
	var sales []model.FlashSale
	err := r.db.
		Where("applied = ? AND starts_at <= ? AND ends_at > ?", false, now, now).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// FindExpired returns applied sales whose window has ended.
func (r *flashSaleRepository) FindExpired(now time.Time) ([]model.FlashSale, error) {
	var sales []model.FlashSale
	err := r.db.
		Where("applied = ? AND ends_at <= ?", true, now).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *flashSaleRepository) Update(sale *model.FlashSale) error {
	return r.db.Save(sale).Error
}

func (r *flashSaleRepository) Delete(id uint) error {
	return r.db.Delete(&model.FlashSale{}, id).Error
}
