package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/common"
)

// LoadWidths is the field-width vector of the ERP load file. Every line is
// the sum of the widths; fields are left-justified, truncated to their
// width, numerics rendered with exactly two decimals.
var LoadWidths = []int{
	10, 25, 6, 6, 6, 16, 16, 2, 5, 16, 3, 2,
	30, 6, 3, 3, 8, 3, 6, 4, 16, 16, 3, 6,
}

// WritePRN writes the table as fixed-width text with CRLF endings. The
// first len(widths) columns are emitted in table order; a table with fewer
// columns pads the remaining fields with blanks.
func WritePRN(t *assemble.Table, path string, widths []int) error {
	if len(widths) == 0 {
		widths = LoadWidths
	}

	var b strings.Builder
	for _, r := range t.Rows {
		for i, width := range widths {
			val := ""
			if i < len(t.Columns) {
				val = prnValue(r[t.Columns[i]])
			}
			b.WriteString(pad(val, width))
		}
		b.WriteString("\r\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return common.NewAppError(common.CodeInternal,
			fmt.Sprintf("writing %s", path), err)
	}
	return nil
}

// prnValue renders amounts with two decimals, round half up.
func prnValue(v any) string {
	switch x := v.(type) {
	case *float64:
		if x == nil {
			return ""
		}
		return decimal.NewFromFloat(*x).StringFixed(2)
	case float64:
		return decimal.NewFromFloat(x).StringFixed(2)
	}
	return CellString(v)
}

// pad left-justifies to the field width, truncating overlong values. Widths
// count characters, not bytes, so accented values never split mid-rune.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
