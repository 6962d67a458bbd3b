// Package export writes result tables to the delivery formats: CSV for
// spreadsheets, styled XLSX for the operations workbook and fixed-width PRN
// for the ERP load.
package export

import (
	"strconv"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
)

// CellString renders a cell value for text-based sinks. Missing values and
// nil amounts render as the empty string; floats keep their shortest exact
// representation.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *float64:
		if x == nil {
			return ""
		}
		return strconv.FormatFloat(*x, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	}
	return ""
}

func rowStrings(t *assemble.Table, r assemble.Row) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = CellString(r[col])
	}
	return out
}
