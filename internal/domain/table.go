package domain

import (
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the type of value held by a Cell
type CellKind int

const (
	CellNull CellKind = iota
	CellText
	CellNumber
	CellBool
	CellDate
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Cell is a single spreadsheet value
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

// NullCell returns an empty cell
func NullCell() Cell { return Cell{Kind: CellNull} }

// TextCell returns a text cell
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell returns a numeric cell
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

// BoolCell returns a boolean cell
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// DateCell returns a date or date-time cell
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// IsNull reports whether the cell holds no value at all
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// IsBlank reports whether the cell is null or whitespace-only text
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellNull:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// String coerces the cell to text.
// Numbers use the shortest exact representation, so 100 prints as "100" and 12.5 as "12.5".
// Dates print as 2006-01-02, with the time of day appended when it is not midnight.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format(dateLayout)
		}
		return c.Time.Format(dateTimeLayout)
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value (nil, string, float64 or bool).
// Dates return their String form so JSON previews read like the sheet.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Number
	case CellBool:
		return c.Bool
	case CellDate:
		return c.String()
	default:
		return nil
	}
}

// Grid is a headerless sequence of rows as read from a sheet
type Grid [][]Cell

// Table is a grid with a header row.
// Every row holds exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]Cell
}

// NewTableFromGrid uses the first grid row verbatim as the header.
// Remaining rows are padded with null cells or truncated to the header width.
func NewTableFromGrid(grid Grid) *Table {
	if len(grid) == 0 {
		return &Table{}
	}

	header := make([]string, len(grid[0]))
	for i, cell := range grid[0] {
		header[i] = cell.String()
	}

	rows := make([][]Cell, 0, len(grid)-1)
	for _, row := range grid[1:] {
		rows = append(rows, FitRow(row, len(header)))
	}

	return &Table{Header: header, Rows: rows}
}

// FitRow pads or truncates a row to width cells
func FitRow(row []Cell, width int) []Cell {
	fitted := make([]Cell, width)
	copy(fitted, row)
	return fitted
}

// ColumnIndex returns the index of the first column whose name contains substr, or -1.
// The match is case-sensitive; duplicate names resolve to the first occurrence.
func (t *Table) ColumnIndex(substr string) int {
	for i, name := range t.Header {
		if strings.Contains(name, substr) {
			return i
		}
	}
	return -1
}

// Column returns the cells of column idx in row order
func (t *Table) Column(idx int) []Cell {
	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row[idx])
	}
	return cells
}

// Preview returns a copy of the table limited to the first n rows
func (t *Table) Preview(n int) *Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	rows := make([][]Cell, n)
	for i := 0; i < n; i++ {
		rows[i] = append([]Cell(nil), t.Rows[i]...)
	}
	return &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   rows,
	}
}

// Records returns the rows as plain Go values, suitable for JSON encoding
func (t *Table) Records() [][]interface{} {
	records := make([][]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell.Value()
		}
		records[i] = values
	}
	return records
}
