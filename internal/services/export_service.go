package services

import (
	"fmt"
	"io"

	"butik/internal/repositories"

	"github.com/tealeg/xlsx"
)

// ExportService renders the catalog as a spreadsheet.
type ExportService struct {
	productRepo repositories.ProductRepository
}

// NewExportService creates a new ExportService.
func NewExportService(productRepo repositories.ProductRepository) *ExportService {
	return &ExportService{productRepo: productRepo}
}

var productExportHeaders = []string{
	"ID", "Name", "Slug", "Description", "Price", "OriginalPrice", "CategoryID",
	"ImageURL", "Sizes", "Colors", "Stock", "InStock", "Featured", "NewArrival",
	"CreatedAt", "UpdatedAt",
}

// WriteProductsXLSX writes every product as one row of a "Products" sheet.
func (s *ExportService) WriteProductsXLSX(w io.Writer) error {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range productExportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price.StringFixed(2))

		originalPrice := ""
		if p.OriginalPrice.Valid {
			originalPrice = p.OriginalPrice.Decimal.StringFixed(2)
		}
		row.AddCell().SetValue(originalPrice)

		categoryID := ""
		if p.CategoryID != nil {
			categoryID = *p.CategoryID
		}
		row.AddCell().SetValue(categoryID)

		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.Sizes)
		row.AddCell().SetValue(p.Colors)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetBool(p.InStock)
		row.AddCell().SetBool(p.Featured)
		row.AddCell().SetBool(p.NewArrival)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
