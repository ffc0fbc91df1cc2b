package service

import (
	"fmt"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a product's price matrix as an XLSX workbook so shop
// staff can review and share option pricing outside the editor.
type ExportService interface {
	ExportPriceMatrix(productID uint) (*excelize.File, string, error)
}

type exportService struct {
	productRepo repository.ProductRepository
}

func NewExportService(productRepo repository.ProductRepository) ExportService {
	return &exportService{productRepo: productRepo}
}

const priceMatrixSheet = "Price Matrix"

// ExportPriceMatrix writes one row per attribute. Quantity-dependent panels
// get a column per quantity break; breaks with no configured price are left
// blank, matching their zero contribution at quote time.
func (s *exportService) ExportPriceMatrix(productID uint) (*excelize.File, string, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, "", mapNotFound(err)
	}

	doc := product.Variations
	quantityPanel, hasQuantity := variation.FindPanelByType(doc, model.PanelQuantity)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", priceMatrixSheet)

	headers := []string{"Panel", "Attribute", "Default", "Mode"}
	if hasQuantity {
		for _, q := range quantityPanel.Attributes {
			headers = append(headers, "Qty "+q.Name)
		}
	}
	headers = append(headers, "Price")

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(priceMatrixSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	row := 2
	for _, p := range doc {
		for _, a := range p.Attributes {
			values := []interface{}{p.Name, a.Name, a.IsDefault, string(p.PricingMode())}

			if hasQuantity {
				for _, q := range quantityPanel.Attributes {
					if p.Type != model.PanelQuantity && p.DependOnQuantity {
						if amount, ok := a.Prices[q.ID]; ok {
							values = append(values, amount)
							continue
						}
					}
					values = append(values, nil)
				}
			}

			if p.Type == model.PanelQuantity || !p.DependOnQuantity {
				values = append(values, a.Price)
			} else {
				values = append(values, nil)
			}

			for col, v := range values {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, "", err
				}
				if err := f.SetCellValue(priceMatrixSheet, cell, v); err != nil {
					return nil, "", err
				}
			}
			row++
		}
	}

	filename := fmt.Sprintf("price-matrix-%d.xlsx", product.ID)

	logger.Info("Price matrix exported", map[string]interface{}{
		"product_id": productID,
		"rows":       row - 2,
	})
	return f, filename, nil
}
