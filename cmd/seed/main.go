package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ikkim/printmoa-backend/config"
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	"github.com/ikkim/printmoa-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// 상품 카탈로그 XLSX 가져오기
// 컬럼: 상품명 | 설명 | 카테고리 | 상태 | 기본가격 | 이미지 URL
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	// Creating through the service seeds each product's starter panel set.
	productService := service.NewProductService(productRepo)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range products {
		if err := productService.CreateProduct(&products[i]); err != nil {
			fmt.Printf("Failed to import %q: %v\n", products[i].Name, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 5 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		category := strings.TrimSpace(row[2])
		status := strings.TrimSpace(row[3])
		basePriceStr := strings.TrimSpace(row[4])
		imageURL := ""
		if len(row) > 5 {
			imageURL = strings.TrimSpace(row[5])
		}

		if name == "" || category == "" {
			skippedCount++
			continue
		}
		if !isValidCategory(category) {
			fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, category)
			skippedCount++
			continue
		}

		basePrice, err := strconv.ParseFloat(basePriceStr, 64)
		if err != nil || basePrice < 0 {
			skippedCount++
			continue
		}

		if status == "" {
			status = string(model.StatusDraft)
		}

		// 중복 제거 (상품명+카테고리 기준)
		key := name + "|" + category
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		products = append(products, model.Product{
			Name:        name,
			Description: description,
			Category:    model.ProductCategory(category),
			Status:      model.ProductStatus(status),
			BasePrice:   basePrice,
			ImageURL:    imageURL,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

// isValidCategory는 카테고리 값이 유효한지 검증합니다
func isValidCategory(category string) bool {
	switch model.ProductCategory(category) {
	case model.CategoryBusinessCard, model.CategoryFlyer, model.CategoryBooklet,
		model.CategorySticker, model.CategoryBanner:
		return true
	}
	return false
}
