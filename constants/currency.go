package constants

// Canonical currency codes produced by the normalization layer.
const (
	CurrencyUSD = "USD"
	CurrencyPEN = "PEN"
)

// Scala numeric currency codes used by the accounting load.
const (
	CodeUSD = "01"
	CodePEN = "00"
)

// Payables accounts keyed by numeric currency code.
const (
	AccountUSD = "421202"
	AccountPEN = "421201"
)

// CurrencyCode maps a canonical currency to its Scala numeric code.
// Anything outside the closed USD/PEN set maps to "".
func CurrencyCode(currency string) string {
	switch currency {
	case CurrencyUSD:
		return CodeUSD
	case CurrencyPEN:
		return CodePEN
	}
	return ""
}

// AccountForCode maps a numeric currency code to the payables account.
func AccountForCode(code string) string {
	switch code {
	case CodeUSD:
		return AccountUSD
	case CodePEN:
		return AccountPEN
	}
	return ""
}
