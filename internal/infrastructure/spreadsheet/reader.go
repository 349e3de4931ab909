package spreadsheet

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sallamerger/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Reader reads xlsx workbooks with excelize
type Reader struct {
	debug bool
}

// NewReader creates a new workbook reader
func NewReader() *Reader {
	return &Reader{}
}

// SetDebug enables or disables per-read timing logs
func (r *Reader) SetDebug(debug bool) {
	r.debug = debug
}

// ReadFirstSheet reads the first worksheet as a headerless grid.
// Rows are padded with null cells to the widest row so the grid is rectangular.
func (r *Reader) ReadFirstSheet(ctx context.Context, src io.Reader) (domain.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrFileUnreadable)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", domain.ErrFileUnreadable, sheet, err)
	}

	dates, err := newDateResolver(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	grid := make(domain.Grid, len(rows))
	for i, row := range rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cells := make([]domain.Cell, width)
		for j, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
			}
			cellType, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s: %v", domain.ErrFileUnreadable, axis, err)
			}
			cell := MapCell(raw, cellType)
			if cell.Kind == domain.CellNumber {
				if cell, err = dates.resolve(axis, cell); err != nil {
					return nil, fmt.Errorf("%w: cell %s: %v", domain.ErrFileUnreadable, axis, err)
				}
			}
			cells[j] = cell
		}
		grid[i] = cells
	}

	if r.debug {
		log.Printf("[XLSX] read sheet %q (%d rows x %d columns) in %s", sheet, len(rows), width, time.Since(start))
	}

	return grid, nil
}

// dateResolver turns numeric cells with a date format into date cells
type dateResolver struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateResolver(f *excelize.File, sheet string) (*dateResolver, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	return &dateResolver{
		f:        f,
		sheet:    sheet,
		date1904: props.Date1904 != nil && *props.Date1904,
		styles:   make(map[int]bool),
	}, nil
}

func (d *dateResolver) resolve(axis string, cell domain.Cell) (domain.Cell, error) {
	styleID, err := d.f.GetCellStyle(d.sheet, axis)
	if err != nil {
		return cell, err
	}
	if styleID == 0 {
		return cell, nil
	}

	isDate, ok := d.styles[styleID]
	if !ok {
		style, err := d.f.GetStyle(styleID)
		if err != nil {
			return cell, err
		}
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
		d.styles[styleID] = isDate
	}
	if !isDate {
		return cell, nil
	}

	t, err := excelize.ExcelDateToTime(cell.Number, d.date1904)
	if err != nil {
		// Negative serials have no date; keep the number
		return cell, nil
	}
	return domain.DateCell(t), nil
}
