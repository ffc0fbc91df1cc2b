package service

import (
	"errors"
	"time"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFlashSaleNotFound      = errors.New("flash sale not found")
	ErrFlashSaleInvalidWindow = errors.New("flash sale window is invalid")
	ErrFlashSaleInvalidPrice  = errors.New("flash sale price must be positive")
)

type FlashSaleService interface {
	CreateFlashSale(sale *model.FlashSale) error
	ListFlashSales() ([]model.FlashSale, error)
	DeleteFlashSale(id uint) error
	// ApplyWindows applies sales whose window has opened and rolls back
	// sales whose window has closed. Called by the scheduler.
	ApplyWindows(now time.Time) error
}

type flashSaleService struct {
	saleRepo    repository.FlashSaleRepository
	productRepo repository.ProductRepository
	quoteCache  *QuoteCache
}

func NewFlashSaleService(
	saleRepo repository.FlashSaleRepository,
	productRepo repository.ProductRepository,
	quoteCache *QuoteCache,
) FlashSaleService {
	return &flashSaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		quoteCache:  quoteCache,
	}
}

func (s *flashSaleService) CreateFlashSale(sale *model.FlashSale) error {
	if sale.SalePrice <= 0 {
		return ErrFlashSaleInvalidPrice
	}
	if !sale.EndsAt.After(sale.StartsAt) {
		return ErrFlashSaleInvalidWindow
	}
	if _, err := s.productRepo.FindByID(sale.ProductID); err != nil {
		return mapNotFound(err)
	}

	if err := s.saleRepo.Create(sale); err != nil {
		logger.Error("Failed to create flash sale", err, map[string]interface{}{
			"product_id": sale.ProductID,
		})
		return err
	}

	logger.Info("Flash sale created", map[string]interface{}{
		"flash_sale_id": sale.ID,
		"product_id":    sale.ProductID,
		"sale_price":    sale.SalePrice,
		"starts_at":     sale.StartsAt,
		"ends_at":       sale.EndsAt,
	})

	// A window that is already open takes effect now instead of waiting for
	// the next scheduler sweep.
	if sale.Covers(time.Now()) {
		return s.applySale(sale)
	}
	return nil
}

func (s *flashSaleService) ListFlashSales() ([]model.FlashSale, error) {
	return s.saleRepo.FindAll()
}

func (s *flashSaleService) DeleteFlashSale(id uint) error {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlashSaleNotFound
		}
		return err
	}

	// An applied sale must release the product price on deletion.
	if sale.Applied {
		if err := s.clearSale(sale); err != nil {
			return err
		}
	}
	return s.saleRepo.Delete(id)
}

func (s *flashSaleService) ApplyWindows(now time.Time) error {
	pending, err := s.saleRepo.FindPending(now)
	if err != nil {
		return err
	}
	for i := range pending {
		if err := s.applySale(&pending[i]); err != nil {
			return err
		}
	}

	expired, err := s.saleRepo.FindExpired(now)
	if err != nil {
		return err
	}
	for i := range expired {
		if err := s.clearSale(&expired[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *flashSaleService) applySale(sale *model.FlashSale) error {
	if err := s.productRepo.UpdateSalePrice(sale.ProductID, &sale.SalePrice); err != nil {
		logger.Error("Failed to apply flash sale price", err, map[string]interface{}{
			"flash_sale_id": sale.ID,
			"product_id":    sale.ProductID,
		})
		return err
	}
	sale.Applied = true
	if err := s.saleRepo.Update(sale); err != nil {
		return err
	}
	s.quoteCache.InvalidateProduct(sale.ProductID)
	logger.Info("Flash sale applied", map[string]interface{}{
		"flash_sale_id": sale.ID,
		"product_id":    sale.ProductID,
		"sale_price":    sale.SalePrice,
	})
	return nil
}

func (s *flashSaleService) clearSale(sale *model.FlashSale) error {
	if err := s.productRepo.UpdateSalePrice(sale.ProductID, nil); err != nil {
		logger.Error("Failed to clear flash sale price", err, map[string]interface{}{
			"flash_sale_id": sale.ID,
			"product_id":    sale.ProductID,
		})
		return err
	}
	sale.Applied = false
	if err := s.saleRepo.Update(sale); err != nil {
		return err
	}
	s.quoteCache.InvalidateProduct(sale.ProductID)
	logger.Info("Flash sale ended", map[string]interface{}{
		"flash_sale_id": sale.ID,
		"product_id":    sale.ProductID,
	})
	return nil
}
