package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sallamerger/backend/internal/domain"
)

// ListingServiceConfig holds configuration for the listing service
type ListingServiceConfig struct {
	ProductColumn      string
	MinFrequency       int
	MaxCandidates      int
	FallbackCandidates int
	TokensPerProduct   int
	HeaderMinCells     int
	OutputTTL          time.Duration
	EnableDebugLogging bool
}

// ListingService runs the clean, detect and extract flows over workbook bytes
type ListingService struct {
	reader     domain.WorkbookReader
	writer     domain.WorkbookWriter
	store      domain.FileStore
	normalizer *TableNormalizer
	detector   *BrandDetector
	extractor  *BrandExtractor
	outputTTL  time.Duration
	debug      bool
}

// NewListingService creates a new listing service with dependencies.
// store may be nil when outputs are written by the caller (e.g. the CLI).
func NewListingService(
	reader domain.WorkbookReader,
	writer domain.WorkbookWriter,
	store domain.FileStore,
	config ListingServiceConfig,
) *ListingService {
	outputTTL := config.OutputTTL
	if outputTTL == 0 {
		outputTTL = time.Hour // Default 1 hour
	}

	return &ListingService{
		reader: reader,
		writer: writer,
		store:  store,
		normalizer: NewTableNormalizer(NormalizerConfig{
			HeaderMinCells:     config.HeaderMinCells,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		detector: NewBrandDetector(DetectConfig{
			ProductColumn:      config.ProductColumn,
			MinFrequency:       config.MinFrequency,
			MaxCandidates:      config.MaxCandidates,
			FallbackCandidates: config.FallbackCandidates,
			TokensPerProduct:   config.TokensPerProduct,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		extractor: NewBrandExtractor(ExtractConfig{
			ProductColumn:      config.ProductColumn,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		outputTTL: outputTTL,
		debug:     config.EnableDebugLogging,
	}
}

// CleanResult is a normalized listing and its xlsx encoding
type CleanResult struct {
	Table     *domain.Table
	HeaderRow int
	Workbook  []byte
}

// DetectRequest selects the product column and frequency threshold for detection
type DetectRequest struct {
	ProductColumn string `form:"product_column" json:"product_column"`
	MinFrequency  int    `form:"min_frequency" json:"min_frequency"`
}

// ExtractRequest selects the product column and the brands to keep
type ExtractRequest struct {
	ProductColumn string   `json:"product_column"`
	Brands        []string `json:"brands"`
}

// Clean normalizes the first sheet of a raw workbook.
// Flow: read grid -> find header -> drop blank rows/columns -> clean cells -> write xlsx
func (s *ListingService) Clean(ctx context.Context, data []byte) (*CleanResult, error) {
	grid, err := s.readGrid(ctx, data)
	if err != nil {
		return nil, err
	}

	normalized, err := s.normalizer.Normalize(grid)
	if err != nil {
		return nil, err
	}

	workbook, err := s.encode(ctx, normalized.Table)
	if err != nil {
		return nil, err
	}

	log.Printf("[LISTING] cleaned workbook: header at row %d, %d rows x %d columns",
		normalized.HeaderRow, len(normalized.Table.Rows), len(normalized.Table.Header))

	return &CleanResult{
		Table:     normalized.Table,
		HeaderRow: normalized.HeaderRow,
		Workbook:  workbook,
	}, nil
}

// DetectBrands suggests brands found in a cleaned workbook (first row is the header)
func (s *ListingService) DetectBrands(ctx context.Context, data []byte, request DetectRequest) (*domain.DetectionResult, error) {
	table, err := s.readTable(ctx, data)
	if err != nil {
		return nil, err
	}

	result, err := s.detector.Detect(table, request.ProductColumn, request.MinFrequency)
	if err != nil {
		return nil, err
	}

	log.Printf("[LISTING] detected %d brand candidates in %d products", len(result.Brands), result.TotalProducts)
	return result, nil
}

// ExtractBrands filters a cleaned workbook to the selected brands and encodes the result
func (s *ListingService) ExtractBrands(ctx context.Context, data []byte, request ExtractRequest) (*domain.ExtractionResult, []byte, error) {
	table, err := s.readTable(ctx, data)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.extractor.Extract(table, request.ProductColumn, request.Brands)
	if err != nil {
		return nil, nil, err
	}

	workbook, err := s.encode(ctx, result.Table)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[LISTING] extracted %d of %d rows for %d brands", result.FilteredCount, result.TotalCount, len(request.Brands))
	return result, workbook, nil
}

// SaveOutput keeps a produced workbook for later download and returns its id
func (s *ListingService) SaveOutput(ctx context.Context, name string, workbook []byte) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("%w: no output store configured", domain.ErrUnexpectedFailure)
	}
	return s.store.Put(ctx, name, workbook, s.outputTTL)
}

// GetOutput returns a previously saved workbook
func (s *ListingService) GetOutput(ctx context.Context, id string) (*domain.StoredFile, error) {
	if s.store == nil {
		return nil, domain.ErrOutputNotFound
	}
	return s.store.Get(ctx, id)
}

// readGrid reads the first sheet, mapping reader failures onto ErrFileUnreadable
func (s *ListingService) readGrid(ctx context.Context, data []byte) (domain.Grid, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrEmptyInput)
	}

	grid, err := s.reader.ReadFirstSheet(ctx, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, domain.ErrFileUnreadable) || errors.Is(err, domain.ErrEmptyInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}

	if s.debug {
		log.Printf("[LISTING] read %d rows from first sheet", len(grid))
	}
	return grid, nil
}

// readTable reads the first sheet using its first row as the header
func (s *ListingService) readTable(ctx context.Context, data []byte) (*domain.Table, error) {
	grid, err := s.readGrid(ctx, data)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return domain.NewTableFromGrid(grid), nil
}

// encode writes table as xlsx bytes
func (s *ListingService) encode(ctx context.Context, table *domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.writer.WriteTable(ctx, &buf, table); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedFailure, err)
	}
	return buf.Bytes(), nil
}
