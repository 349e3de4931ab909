package spreadsheet

import (
	"context"
	"fmt"
	"io"

	"github.com/sallamerger/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the single sheet written by Writer
const DefaultSheetName = "Sheet1"

// Writer writes tables as single-sheet xlsx workbooks
type Writer struct {
	sheetName string
}

// NewWriter creates a new workbook writer
func NewWriter() *Writer {
	return &Writer{sheetName: DefaultSheetName}
}

// WriteTable writes the header on row 1 followed by the table rows
func (w *Writer) WriteTable(ctx context.Context, dst io.Writer, table *domain.Table) error {
	if table == nil {
		return domain.ErrInvalidRequest
	}

	f := excelize.NewFile()
	defer f.Close()

	for c, name := range table.Header {
		axis, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(w.sheetName, axis, name); err != nil {
			return fmt.Errorf("failed to write header %s: %w", axis, err)
		}
	}

	for r, row := range table.Rows {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for c, cell := range row {
			value, ok := cellValue(cell)
			if !ok {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(w.sheetName, axis, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", axis, err)
			}
		}
	}

	if err := f.Write(dst); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}
