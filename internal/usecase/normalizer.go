package usecase

import (
	"fmt"
	"log"
	"strings"

	"github.com/sallamerger/backend/internal/domain"
)

// lineBreakReplacer turns each CR and LF into a single space
var lineBreakReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// NormalizerConfig holds configuration for the table normalizer
type NormalizerConfig struct {
	HeaderMinCells     int
	EnableDebugLogging bool
}

// TableNormalizer turns a raw sheet grid into a clean rectangular table
type TableNormalizer struct {
	headerMinCells     int
	enableDebugLogging bool
}

// NewTableNormalizer creates a new normalizer with the given configuration
func NewTableNormalizer(config NormalizerConfig) *TableNormalizer {
	minCells := config.HeaderMinCells
	if minCells <= 0 {
		minCells = 3 // Default: a header has at least 3 populated cells
	}

	return &TableNormalizer{
		headerMinCells:     minCells,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// NormalizeResult is a normalized table plus where its header was found
type NormalizeResult struct {
	Table     *domain.Table
	HeaderRow int
}

// Normalize finds the header row of grid and returns the cleaned table.
// Flow: detect header -> normalize header -> drop blank rows -> drop blank columns -> clean cells
func (n *TableNormalizer) Normalize(grid domain.Grid) (result *NormalizeResult, err error) {
	if len(grid) == 0 {
		return nil, domain.ErrEmptyInput
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", domain.ErrUnexpectedFailure, r)
		}
	}()

	width := gridWidth(grid)
	headerRow := n.findHeaderRow(grid)

	header := make([]string, width)
	for i, cell := range domain.FitRow(grid[headerRow], width) {
		header[i] = normalizeHeaderName(cell.String())
	}

	// Body: everything after the header row, minus rows blank across all columns
	var rows [][]domain.Cell
	for _, row := range grid[headerRow+1:] {
		fitted := domain.FitRow(row, width)
		if isBlankRow(fitted) {
			continue
		}
		rows = append(rows, fitted)
	}

	// Columns blank in every retained row are dropped, header included
	keep := make([]int, 0, width)
	for col := 0; col < width; col++ {
		if !isBlankColumn(rows, col) {
			keep = append(keep, col)
		}
	}

	table := &domain.Table{
		Header: make([]string, len(keep)),
		Rows:   make([][]domain.Cell, len(rows)),
	}
	for i, col := range keep {
		table.Header[i] = header[col]
	}
	for r, row := range rows {
		cleaned := make([]domain.Cell, len(keep))
		for i, col := range keep {
			cleaned[i] = cleanCell(row[col])
		}
		table.Rows[r] = cleaned
	}

	if n.enableDebugLogging {
		log.Printf("[NORMALIZE] header row %d, %d/%d rows kept, %d/%d columns kept",
			headerRow, len(rows), len(grid)-headerRow-1, len(keep), width)
	}

	return &NormalizeResult{Table: table, HeaderRow: headerRow}, nil
}

// findHeaderRow returns the first row with at least headerMinCells non-blank cells.
// Falls back to row 0 so that every grid gets a header.
func (n *TableNormalizer) findHeaderRow(grid domain.Grid) int {
	for i, row := range grid {
		filled := 0
		for _, cell := range row {
			if !cell.IsBlank() {
				filled++
			}
		}
		if filled >= n.headerMinCells {
			return i
		}
	}

	if n.enableDebugLogging {
		log.Printf("[NORMALIZE] no row has %d populated cells, using row 0 as header", n.headerMinCells)
	}
	return 0
}

// normalizeHeaderName collapses internal whitespace and trims the name.
// Any Unicode space counts, including NBSP and vertical tab.
func normalizeHeaderName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// cleanCell trims text cells and flattens line breaks; other kinds pass through
func cleanCell(cell domain.Cell) domain.Cell {
	if cell.Kind != domain.CellText {
		return cell
	}
	return domain.TextCell(lineBreakReplacer.Replace(strings.TrimSpace(cell.Text)))
}

func gridWidth(grid domain.Grid) int {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func isBlankRow(row []domain.Cell) bool {
	for _, cell := range row {
		if !cell.IsBlank() {
			return false
		}
	}
	return true
}

func isBlankColumn(rows [][]domain.Cell, col int) bool {
	for _, row := range rows {
		if !row[col].IsBlank() {
			return false
		}
	}
	return true
}
