package spreadsheet

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sallamerger/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTable_RoundTrip(t *testing.T) {
	table := &domain.Table{
		Header: []string{"ID", "المنتج", "Price"},
		Rows: [][]domain.Cell{
			{domain.TextCell("A1"), domain.TextCell("Nike Air Max"), domain.NumberCell(100)},
			{domain.TextCell("A2"), domain.NullCell(), domain.NumberCell(12.75)},
			{domain.TextCell("007"), domain.TextCell("سامسونج Galaxy"), domain.BoolCell(false)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteTable(context.Background(), &buf, table))

	grid, err := NewReader().ReadFirstSheet(context.Background(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	got := domain.NewTableFromGrid(grid)
	assert.Equal(t, table.Header, got.Header)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestWriteTable_KeepsDateFormat(t *testing.T) {
	listed := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	table := &domain.Table{
		Header: []string{"المنتج", "Listed", "Updated"},
		Rows: [][]domain.Cell{
			{domain.TextCell("Nike Air Max"), domain.DateCell(listed), domain.DateCell(updated)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteTable(context.Background(), &buf, table))
	data := buf.Bytes()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	for _, axis := range []string{"B2", "C2"} {
		styleID, err := f.GetCellStyle(DefaultSheetName, axis)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		assert.True(t, isDateNumFmt(style.NumFmt, style.CustomNumFmt), "%s should carry a date format", axis)
	}

	grid, err := NewReader().ReadFirstSheet(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	got := domain.NewTableFromGrid(grid)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "2024-03-15", got.Rows[0][1].String())
	assert.Equal(t, "2024-03-15 09:30:00", got.Rows[0][2].String())
}

func TestWriteTable_SingleSheet(t *testing.T) {
	table := &domain.Table{Header: []string{"المنتج"}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteTable(context.Background(), &buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	value, err := f.GetCellValue(DefaultSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "المنتج", value)
}

func TestWriteTable_NilTable(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter().WriteTable(context.Background(), &buf, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Zero(t, buf.Len())
}
