package service

import (
	"errors"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidBasePrice = errors.New("base price must not be negative")
)

type ProductListOptions struct {
	Category *model.ProductCategory
	Status   *model.ProductStatus
	Search   string
	Limit    int
	Offset   int
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	idGen       variation.IDGenerator
}

func NewProductService(productRepo repository.ProductRepository, idGen ...variation.IDGenerator) ProductService {
	gen := variation.IDGenerator(nil)
	if len(idGen) > 0 {
		gen = idGen[0]
	}
	if gen == nil {
		gen = variation.NewUUIDGenerator()
	}
	return &productService{
		productRepo: productRepo,
		idGen:       gen,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category": opts.Category,
		"status":   opts.Status,
		"search":   opts.Search,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})

	return s.productRepo.FindAll(repository.ProductFilter{
		Category: opts.Category,
		Status:   opts.Status,
		Search:   opts.Search,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	})
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to get product", err, map[string]interface{}{"product_id": id})
		return nil, err
	}
	return product, nil
}

// CreateProduct stores a new product. Every product starts with the fixed
// starter panel set so the editor always has something to configure.
func (s *productService) CreateProduct(product *model.Product) error {
	if product.BasePrice < 0 {
		return ErrInvalidBasePrice
	}
	if product.Status == "" {
		product.Status = model.StatusDraft
	}
	if len(product.Variations) == 0 {
		product.Variations = variation.NewStarterDocument(s.idGen)
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	if product.BasePrice < 0 {
		return ErrInvalidBasePrice
	}

	existing, err := s.GetProductByID(product.ID)
	if err != nil {
		return err
	}

	// The variation document has its own editing surface; a product update
	// never touches it.
	product.Variations = existing.Variations

	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}
