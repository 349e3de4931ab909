package usecase

import (
	"fmt"
	"log"
	"strings"

	"github.com/sallamerger/backend/internal/domain"
)

// ExtractConfig holds configuration for the brand extractor
type ExtractConfig struct {
	ProductColumn      string
	EnableDebugLogging bool
}

// BrandExtractor filters table rows down to the products of selected brands
type BrandExtractor struct {
	productColumn      string
	enableDebugLogging bool
}

// NewBrandExtractor creates a new brand extractor with the given configuration
func NewBrandExtractor(config ExtractConfig) *BrandExtractor {
	column := config.ProductColumn
	if column == "" {
		column = domain.DefaultProductColumn
	}

	return &BrandExtractor{
		productColumn:      column,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Extract keeps the rows whose product text contains at least one of brands.
// Row order and all columns are preserved. Zero retained rows, including an
// empty brand list, is ErrNoMatches.
func (e *BrandExtractor) Extract(table *domain.Table, column string, brands []string) (*domain.ExtractionResult, error) {
	if table == nil {
		return nil, domain.ErrInvalidRequest
	}
	if column == "" {
		column = e.productColumn
	}

	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrColumnNotFound, column)
	}

	// No brands selected retains nothing
	if len(brands) == 0 {
		return nil, domain.ErrNoMatches
	}

	filtered := &domain.Table{
		Header: append([]string(nil), table.Header...),
	}
	for _, row := range table.Rows {
		if containsBrand(row[idx], brands) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}

	if e.enableDebugLogging {
		log.Printf("[EXTRACT] column %q: %d/%d rows match %d brands",
			table.Header[idx], len(filtered.Rows), len(table.Rows), len(brands))
	}

	if len(filtered.Rows) == 0 {
		return nil, domain.ErrNoMatches
	}

	return &domain.ExtractionResult{
		Success:       true,
		FilteredCount: len(filtered.Rows),
		TotalCount:    len(table.Rows),
		Table:         filtered,
	}, nil
}

// containsBrand checks the product text for any brand, first as-is then case-insensitively.
// Both checks run for every brand since callers may send brands in any case.
func containsBrand(cell domain.Cell, brands []string) bool {
	if cell.IsNull() {
		return false
	}

	product := cell.String()
	productLower := strings.ToLower(product)
	for _, brand := range brands {
		if strings.Contains(product, brand) || strings.Contains(productLower, strings.ToLower(brand)) {
			return true
		}
	}
	return false
}
