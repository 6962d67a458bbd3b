package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ThiagoElux01/Comex-app/constants"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAccents removes combining marks, so "Dólares" compares as "Dolares".
func FoldAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

var dolaresRe = regexp.MustCompile(`(DOLARES.*)`)

// currencySubs maps known currency-name variants to canonical codes. Order
// matters: more specific variants come before the bare substrings they
// contain.
var currencySubs = []struct{ variant, code string }{
	{"DOLARES AMERICANOS (US$)", constants.CurrencyUSD},
	{"DOLARES AMERICANOS", constants.CurrencyUSD},
	{"DOLAR AMERICANO", constants.CurrencyUSD},
	{"CTA CTE BBVA - USD", constants.CurrencyUSD},
	{"DOLARES", constants.CurrencyUSD},
	{"USD", constants.CurrencyUSD},
	{"US$", constants.CurrencyUSD},
	{"SOLES (S/)", constants.CurrencyPEN},
	{"SOLES", constants.CurrencyPEN},
	{"PEN", constants.CurrencyPEN},
	{"S/", constants.CurrencyPEN},
}

var titleCaser = cases.Title(language.Und)

// TitleCase lowercases then title-cases a raw value, the presentation form
// used for currency names that stay unrecognized.
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// Currency canonicalizes a raw currency string to USD or PEN. Unmatched
// input is returned title-cased, untouched otherwise; the pass-through is
// the documented fallback, not an error.
func Currency(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	val := strings.ToUpper(FoldAccents(raw))
	if m := dolaresRe.FindString(val); m != "" {
		val = strings.TrimSpace(m)
	}
	for _, sub := range currencySubs {
		if strings.Contains(val, sub.variant) {
			return sub.code
		}
	}
	return titleCaser.String(strings.ToLower(strings.TrimSpace(raw)))
}
