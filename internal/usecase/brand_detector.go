package usecase

import (
	"fmt"
	"log"
	"sort"

	"github.com/sallamerger/backend/internal/domain"
)

// DetectConfig holds configuration for the brand detector
type DetectConfig struct {
	ProductColumn      string
	MinFrequency       int
	MaxCandidates      int
	FallbackCandidates int
	TokensPerProduct   int
	EnableDebugLogging bool
}

// BrandDetector infers brand vocabulary from the leading words of product names
type BrandDetector struct {
	productColumn      string
	minFrequency       int
	maxCandidates      int
	fallbackCandidates int
	tokensPerProduct   int
	enableDebugLogging bool
}

// NewBrandDetector creates a new brand detector with the given configuration
func NewBrandDetector(config DetectConfig) *BrandDetector {
	column := config.ProductColumn
	if column == "" {
		column = domain.DefaultProductColumn
	}

	minFrequency := config.MinFrequency
	if minFrequency <= 0 {
		minFrequency = 2 // A brand has to repeat at least once
	}

	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 50
	}

	fallback := config.FallbackCandidates
	if fallback <= 0 {
		fallback = 10
	}

	perProduct := config.TokensPerProduct
	if perProduct <= 0 {
		perProduct = 3 // Brands usually appear at the beginning of a listing
	}

	return &BrandDetector{
		productColumn:      column,
		minFrequency:       minFrequency,
		maxCandidates:      maxCandidates,
		fallbackCandidates: fallback,
		tokensPerProduct:   perProduct,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Detect ranks candidate brand tokens found in the product column of table.
// An empty column name or non-positive minFrequency selects the configured default.
func (d *BrandDetector) Detect(table *domain.Table, column string, minFrequency int) (*domain.DetectionResult, error) {
	if table == nil {
		return nil, domain.ErrInvalidRequest
	}
	if column == "" {
		column = d.productColumn
	}
	if minFrequency <= 0 {
		minFrequency = d.minFrequency
	}

	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrColumnNotFound, column)
	}

	var products []string
	for _, cell := range table.Column(idx) {
		if cell.IsNull() {
			continue
		}
		products = append(products, cell.String())
	}
	if len(products) == 0 {
		return nil, domain.ErrNoProducts
	}

	counter := newTokenCounter()
	for _, product := range products {
		for _, token := range leadingTokens(product, d.tokensPerProduct) {
			counter.add(token)
		}
	}

	ranked := counter.mostCommon(d.maxCandidates)
	brands := make([]domain.BrandCandidate, 0, len(ranked))
	for _, candidate := range ranked {
		if candidate.Count >= minFrequency {
			brands = append(brands, candidate)
		}
	}

	if len(brands) == 0 {
		// Nothing repeats often enough: suggest the most common words instead
		brands = counter.mostCommon(d.fallbackCandidates)
		if d.enableDebugLogging {
			log.Printf("[DETECT] no token reaches frequency %d, falling back to top %d", minFrequency, len(brands))
		}
	}

	if d.enableDebugLogging {
		log.Printf("[DETECT] column %q: %d products, %d distinct tokens, %d candidates",
			table.Header[idx], len(products), counter.len(), len(brands))
	}

	return &domain.DetectionResult{
		Success:       true,
		Brands:        brands,
		ProductColumn: table.Header[idx],
		TotalProducts: len(products),
	}, nil
}

// tokenCounter counts tokens and remembers the order they were first seen in
type tokenCounter struct {
	counts map[string]int
	order  []string
}

func newTokenCounter() *tokenCounter {
	return &tokenCounter{counts: make(map[string]int)}
}

func (c *tokenCounter) add(token string) {
	if _, seen := c.counts[token]; !seen {
		c.order = append(c.order, token)
	}
	c.counts[token]++
}

func (c *tokenCounter) len() int {
	return len(c.order)
}

// mostCommon returns up to n tokens by descending count; ties keep first-seen order
func (c *tokenCounter) mostCommon(n int) []domain.BrandCandidate {
	candidates := make([]domain.BrandCandidate, len(c.order))
	for i, token := range c.order {
		candidates[i] = domain.BrandCandidate{Name: token, Count: c.counts[token]}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Count > candidates[j].Count
	})

	if n >= 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
