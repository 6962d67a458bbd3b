package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ThiagoElux01/Comex-app/constants"
)

var amountJunkRe = regexp.MustCompile(`[A-Za-z$\-]`)

// Amount parses a raw monetary string into a float, or nil when the cleaned
// string is not a number. Letters, currency symbols and hyphens are stripped
// first; then the thousands and decimal separators are disambiguated by the
// position of the last comma versus the last period — whichever occurs later
// is the decimal separator.
//
//	"12,345.67" -> 12345.67
//	"1.234,56"  -> 1234.56
//	"350,00"    -> 350.00
func Amount(raw string) *float64 {
	val := strings.TrimSpace(amountJunkRe.ReplaceAllString(raw, ""))
	if val == "" {
		return nil
	}

	comma := strings.LastIndex(val, ",")
	dot := strings.LastIndex(val, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma < dot {
			val = strings.ReplaceAll(val, ",", "")
		} else {
			val = strings.ReplaceAll(val, ".", "")
			val = strings.ReplaceAll(val, ",", ".")
		}
	case comma >= 0:
		val = strings.ReplaceAll(val, ",", ".")
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

var nonNumericRe = regexp.MustCompile(`[^0-9,.]`)

// CleanNumeric keeps only digits and separators, the first cleanup step for
// amounts ripped out of whole invoice lines.
func CleanNumeric(raw string) string {
	return nonNumericRe.ReplaceAllString(raw, "")
}

// SignedAmount parses ledger-export numbers where a trailing minus denotes a
// negative value: "12,345.67-" -> -12345.67. Commas are thousands
// separators. Returns nil when the string is not a number.
func SignedAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	neg := strings.HasSuffix(s, "-")
	s = strings.TrimSuffix(s, "-")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if neg {
		f = -f
	}
	return &f
}

// NegateIfCreditNote forces the amount negative for credit notes. Operating
// on the absolute value makes the pass idempotent.
func NegateIfCreditNote(v *float64, docType string) *float64 {
	if v == nil || !constants.IsCreditNote(docType) {
		return v
	}
	n := -math.Abs(*v)
	return &n
}
