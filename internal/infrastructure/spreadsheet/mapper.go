package spreadsheet

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sallamerger/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// isoDateLayouts are the forms an ISO 8601 date cell (t="d") may take
var isoDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// MapCell converts a raw cell value and its stored type to a domain cell.
// Untyped cells hold numbers in xlsx; anything that does not parse stays text.
// Date serials stay numbers here; the reader converts them once it knows the cell's format.
func MapCell(raw string, cellType excelize.CellType) domain.Cell {
	if raw == "" {
		return domain.NullCell()
	}

	switch cellType {
	case excelize.CellTypeBool:
		return domain.BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return domain.DateCell(t)
			}
		}
		fallthrough
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return domain.NumberCell(n)
		}
		return domain.TextCell(raw)
	default:
		return domain.TextCell(raw)
	}
}

// isDateNumFmt reports whether a number format displays dates or times.
// Built-in ids cover the default and locale date formats; custom codes are scanned for date tokens.
func isDateNumFmt(numFmt int, custom *string) bool {
	if custom != nil {
		return isDateFormatCode(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 22,
		numFmt >= 27 && numFmt <= 36,
		numFmt >= 45 && numFmt <= 47,
		numFmt >= 50 && numFmt <= 58:
		return true
	default:
		return false
	}
}

// isDateFormatCode looks for y, m, d, h or s outside quoted text, escapes and [..] sections.
// Only the first section of the code is considered.
func isDateFormatCode(code string) bool {
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\' || r == '_' || r == '*':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == ';':
			return false
		default:
			switch unicode.ToLower(r) {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// cellValue converts a domain cell to the value excelize should store.
// Null cells return ok=false and are left unset.
func cellValue(cell domain.Cell) (value interface{}, ok bool) {
	switch cell.Kind {
	case domain.CellText:
		return cell.Text, true
	case domain.CellNumber:
		return cell.Number, true
	case domain.CellBool:
		return cell.Bool, true
	case domain.CellDate:
		return cell.Time, true
	default:
		return nil, false
	}
}
