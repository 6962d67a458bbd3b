package vendors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
)

// Iscala codes for the international-supplier (Externos) cohort.
const (
	CodeSEI    = "SEI"
	CodeSGE    = "SGE"
	CodeCLH    = "CLH"
	Code5BE    = "5BE"
	CodeUS1239 = "US1239"
	Code5WY    = "5WY"
	Code5DL    = "5DL"
	CodeBRR    = "BRR"
	Code5DU    = "5DU"
	CodeNingbo = "NINGBO HUA"
	CodeSnowky = "SNOWKY"
	Code7DQ    = "7DQ"
	Code5JU    = "5JU"
	Code7JR    = "7JR"
)

// ExternosRegistry lists the known international suppliers, most specific
// first. "Electrolux Intressenter AB" and "Electrolux S.E.A. Pte" must
// precede the broader Electrolux names they would otherwise shadow.
func ExternosRegistry() *Registry {
	return NewRegistry([]Vendor{
		{Name: "Electrolux Intressenter AB", Code: CodeSEI},
		{Name: "Electrolux S.E.A. Pte", Code: CodeSGE},
		{Name: "ELECTROLUX DE CHILE", Code: CodeCLH},
		{Name: "HOMA APPLIANCES CO", Code: Code5BE},
		{Name: "ELECTROLUX HOME PRODUCTS", Code: CodeUS1239},
		{Name: "MIDEA ELECTRIC TRADING", Code: Code5WY},
		{Name: "NINGBO XINLE HOUSEHOLD APPLIANCES CO", Code: Code5DL},
		{Name: "ELECTROLUX DO BRASIL", Code: CodeBRR},
		{Name: "GUANGDONG GALANZ", Code: Code5DU},
		{Name: "NINGBO HUACAI ELECTRIC APPLIANCES CO", Code: CodeNingbo},
		{Name: "Hefei Snowky Electric", Code: CodeSnowky},
		{Name: "Trade Air System", Code: Code7DQ},
		{Name: "JIANGMEN JINHUAN", Code: Code5JU},
		{Name: "FOSHAN SHUNDE MIDEA", Code: Code7JR},
	})
}

// --- invoice number ---

var externosFacturaRules = map[string]FieldRule{
	CodeSEI: R(
		Step{Kind: StepAnchorOffset, Anchor: "CREDIT NOTE DATE", Offset: -2, DigitsOnly: true},
		Step{Kind: StepAnchorOffset, Anchor: "INVOICE DATE", Offset: -2},
		Step{Kind: StepAnchorOffset, Anchor: "DOCUMENT DATE:", Offset: -1},
	),
	CodeSGE: R(
		Step{Kind: StepAnchorOffset, Anchor: "Credit Note Date", Offset: -2, DigitsOnly: true},
		Step{Kind: StepAnchorOffset, Anchor: "Invoice Date", Offset: -2},
	),
	CodeSnowky: R(
		Step{Kind: StepAnchorOffset, Anchor: "INVOICE NO.", Offset: 1},
	),
	Code5BE: R(
		Step{Kind: StepAnchorSplit, Anchor: "INVOICE NO."},
	),
	CodeUS1239: R(
		Step{Kind: StepAnchorRegex, Anchor: "RUC:", Offset: 2, Pattern: `\bEH\d{8}\b`},
		Step{Kind: StepAnchorOffset, Anchor: "INVOICE AND PACKING LIST", Offset: 1},
		Step{Kind: StepAnchorOffset, Anchor: "ELECTROLUX HOME PRODUCTS INTERNATIONAL", Offset: -1},
	),
	CodeCLH: R(
		Step{Kind: StepAnchorOffset, Anchor: "ELECTRONIC EXPORT INVOICE", Offset: 2},
		Step{Kind: StepAnchorOffset, Anchor: "NOTA DE CRÉDITO", Offset: 5},
	),
	Code5JU: R(
		Step{Kind: StepAnchorOffset, Anchor: "Invoice #.:", Offset: 1},
		Step{Kind: StepAnchorSplit, Anchor: "CN No.:"},
	),
	Code5WY: R(
		Step{Kind: StepScanRegex, Pattern: `^.*(?:MDOK|MDR).*$`},
	),
	Code7JR: R(
		Step{Kind: StepScanRegex, Pattern: `(MD.*)`},
	),
	Code5DL: R(
		Step{Kind: StepAnchorOffset, Anchor: "Invoice No.", Offset: 3},
	),
	CodeBRR: R(
		Step{Kind: StepAnchorSplit, Anchor: "FACTURA COMERCIAL", Offset: 1},
		Step{Kind: StepAnchorSplit, Anchor: "CREDIT NOTE", Offset: 1},
	),
	Code5DU: R(
		Step{Kind: StepAnchorSplit, Anchor: "INV. NO:"},
	),
	CodeNingbo: R(
		Step{Kind: StepAnchorSplit, Anchor: "INVOICE NO"},
		Step{Kind: StepAnchorOffset, Anchor: "CREDIT NOTE", Offset: 6},
	),
}

// ExternosFactura extracts the raw invoice / credit-note number for the
// given supplier code. Unknown codes yield "".
func ExternosFactura(code string, lines []string) string {
	if code == Code7DQ {
		// Trade Air System spreads the document number over three places:
		// the line under "Customer Number", the fifth line and the first.
		customer := ""
		if idx := findAnchor(lines, "Customer Number"); idx >= 0 {
			customer = strings.TrimSpace(lineAt(lines, idx+1))
		}
		joined := strings.TrimSpace(fmt.Sprintf("%s %s %s",
			customer,
			strings.TrimSpace(lineAt(lines, 4)),
			strings.TrimSpace(lineAt(lines, 0))))
		return joined
	}
	rule, ok := externosFacturaRules[code]
	if !ok {
		return ""
	}
	return rule.Eval(lines)
}

var facturaPrefixRe = regexp.MustCompile(`\b(Nº|NO|N°|Nº\.|N°\.|Nº:|NO:)\b`)
var facturaPunct = strings.NewReplacer(":", "", "：", "", ".", "", ",", "", " ", "")

// CleanFactura uppercases a raw document number and strips numbering
// prefixes and punctuation, leaving the bare identifier.
func CleanFactura(raw string) string {
	s := strings.ToUpper(raw)
	s = facturaPrefixRe.ReplaceAllString(s, "")
	return strings.TrimSpace(facturaPunct.Replace(s))
}

// --- document type ---

// creditNoteMarkers holds the per-supplier credit-note marker searched in
// the whole document. Suppliers absent from this map use a fixed-line read.
var creditNoteMarkers = map[string]string{
	Code5BE:    constants.DocCreditNote,
	Code5DL:    constants.DocCreditNote,
	Code5DU:    constants.DocCreditNote,
	Code5JU:    constants.DocCreditNote,
	Code5WY:    constants.DocCreditNote,
	Code7DQ:    constants.DocCreditNote,
	Code7JR:    constants.DocCreditNote,
	CodeBRR:    constants.DocCreditNote,
	CodeNingbo: constants.DocCreditNote,
	CodeSnowky: constants.DocCreditNote,
	CodeCLH:    "NOTA DE CRÉDITO",
	CodeUS1239: "REF CLAIM",
}

// ExternosDocType classifies the document as INVOICE or CREDIT NOTE.
// SEI and SGE print the type on the first line; every other supplier is
// classified by the presence of its credit-note marker, with INVOICE as the
// default. Unknown codes yield "".
func ExternosDocType(code string, lines []string) string {
	switch code {
	case CodeSEI:
		return strings.ToUpper(strings.TrimSpace(lineAt(lines, 0)))
	case CodeSGE:
		return strings.TrimSpace(lineAt(lines, 0))
	}
	marker, ok := creditNoteMarkers[code]
	if !ok {
		return ""
	}
	if containsLine(lines, marker) {
		return constants.DocCreditNote
	}
	return constants.DocInvoice
}

// --- issue date ---

var (
	dottedDateLayouts = []string{"02.01.2006", "2006.01.02"}

	fiveBELayouts = []string{
		"2-Jan-06", "2/Jan/06",
		"2-Jan-2006", "2/Jan/2006",
		"02/01/2006", "02-01-2006",
		"02/01/06", "02-01-06",
		"2006-01-02", "2006/01/02",
	}
	fiveBEFragmentPatterns = []string{
		`\b\d{4}-\d{2}-\d{2}\b`,
		`\b\d{4}/\d{2}/\d{2}\b`,
		`\b\d{1,2}/\d{1,2}/\d{2,4}\b`,
		`\b\d{1,2}-\d{1,2}-\d{2,4}\b`,
		`\b\d{1,2}/[A-Za-z]{3}/\d{2,4}\b`,
		`\b\d{1,2}-[A-Za-z]{3}-\d{2,4}\b`,
	}

	us1239DateRe  = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2})\b`)
	clhDateRe     = regexp.MustCompile(`\d{1,2} de [a-zçñ]{3,15} de \d{4}`)
	numericSlash4 = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	monthDash2Re  = regexp.MustCompile(`\b\d{1,2}-[A-Za-zçÇñÑ]{3,9}-\d{2}\b`)
	wyDateRe      = regexp.MustCompile(`\b\d{1,2}/[A-Za-z]{3}/\d{4}\b|\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	jrDateRe      = regexp.MustCompile(`\b\d{1,2}/[A-Za-z]{3}/\d{4}\b|\b\d{1,2}/\d{1,2}/\d{4}\b`)
	brrMonthRe    = regexp.MustCompile(`\b\d{1,2}/[A-Za-zñÑ]{3,15}/\d{4}\b`)
	duDateRe      = regexp.MustCompile(`\b([A-Za-z]{3,4})\.(\d{1,2}),(\d{4})\b`)
	isoDateRe     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	longTextualRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s*,?\s*(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})\b`)
	sgeDottedRe   = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`)
)

// ExternosIssueDate extracts and canonicalizes the issue date for the given
// supplier code. Each supplier has its own anchor logic and candidate layout
// list; all failures degrade to "".
func ExternosIssueDate(code string, lines []string) string {
	switch code {
	case CodeSEI:
		for _, anchor := range []string{"INVOICE DATE", "CREDIT NOTE DATE", "DOCUMENT DATE:"} {
			if idx := findAnchor(lines, anchor); idx >= 0 {
				if d := normalize.Date(lineAt(lines, idx+1), dottedDateLayouts); d != "" {
					return d
				}
			}
		}

	case CodeSnowky:
		if idx := findAnchor(lines, "DATE:"); idx >= 0 {
			return normalize.Date(lineAt(lines, idx+1), dottedDateLayouts)
		}

	case Code5BE:
		return fiveBEDate(lines)

	case CodeUS1239:
		return us1239Date(lines)

	case CodeCLH:
		for _, line := range lines {
			if m := clhDateRe.FindString(strings.ToLower(line)); m != "" {
				return normalize.Date(m, []string{"2 de Jan de 2006"})
			}
		}

	case Code7DQ:
		for _, line := range lines {
			if m := numericSlash4.FindString(line); m != "" {
				return normalize.Date(m, []string{"02/01/2006"})
			}
		}

	case Code5JU:
		return fiveJUDate(lines)

	case Code5WY:
		for _, line := range lines {
			if m := wyDateRe.FindString(line); m != "" {
				return normalize.Date(m, []string{"2006-01-02", "2/Jan/2006", "2/1/2006"})
			}
		}

	case Code7JR:
		for _, line := range lines {
			if m := jrDateRe.FindString(line); m != "" {
				return normalize.Date(m, []string{"2/Jan/2006", "2/1/2006"})
			}
		}

	case Code5DL:
		for _, line := range lines {
			if m := monthDash2Re.FindString(line); m != "" {
				return normalize.Date(m, []string{"2-Jan-06"})
			}
		}

	case CodeBRR:
		if containsLine(lines, constants.DocCreditNote) {
			for _, line := range lines {
				if m := numericSlash4.FindString(line); m != "" {
					return normalize.Date(m, []string{"02/01/2006"})
				}
			}
			return ""
		}
		if idx := findAnchor(lines, "FECHA"); idx >= 0 {
			if m := brrMonthRe.FindString(lineAt(lines, idx+1)); m != "" {
				return normalize.Date(m, []string{"2/Jan/2006", "2/January/2006"})
			}
		}

	case Code5DU:
		if idx := findAnchor(lines, "DATE:"); idx >= 0 {
			if m := duDateRe.FindStringSubmatch(lineAt(lines, idx)); m != nil {
				// "Jan.5,2024" -> "5-Jan-2024"
				rebuilt := fmt.Sprintf("%s-%s-%s", m[2], m[1], m[3])
				return normalize.Date(rebuilt, []string{"2-Jan-2006"})
			}
		}

	case CodeNingbo:
		for _, line := range lines {
			if m := isoDateRe.FindString(line); m != "" {
				return normalize.Date(m, []string{"2006-01-02"})
			}
			if m := longTextualRe.FindStringSubmatch(line); m != nil {
				rebuilt := fmt.Sprintf("%s %s %s", m[1], m[2], m[3])
				return normalize.Date(rebuilt, []string{"2 January 2006"})
			}
		}

	case CodeSGE:
		for _, anchor := range []string{"INVOICE DATE", "CREDIT NOTE DATE"} {
			if idx := findAnchor(lines, anchor); idx >= 0 {
				if m := sgeDottedRe.FindString(lineAt(lines, idx+1)); m != "" {
					return normalize.Date(m, []string{"02.01.2006"})
				}
			}
		}
	}
	return ""
}

var dateSplitRe = regexp.MustCompile(`(?i)DATE\s*:?`)

// fiveBEDate accepts the date on the "DATE" line itself or the line below,
// trying the full candidate layout list, then regex-isolated fragments, and
// finally a whole-document scan.
func fiveBEDate(lines []string) string {
	tryParse := func(s string) string {
		if s == "" {
			return ""
		}
		if d := normalize.Date(s, fiveBELayouts); d != "" {
			return d
		}
		for _, pat := range fiveBEFragmentPatterns {
			if m := regexp.MustCompile(pat).FindString(s); m != "" {
				if d := normalize.Date(m, fiveBELayouts); d != "" {
					return d
				}
			}
		}
		return ""
	}

	for i, line := range lines {
		if !strings.Contains(strings.ToUpper(line), "DATE") {
			continue
		}
		parts := dateSplitRe.Split(line, 2)
		same := ""
		if len(parts) > 1 {
			same = strings.TrimSpace(parts[1])
		}
		next := ""
		if same == "" {
			next = strings.TrimSpace(lineAt(lines, i+1))
		}
		for _, cand := range []string{same, next} {
			if d := tryParse(cand); d != "" {
				return d
			}
		}
	}
	// Last resort: first parseable date anywhere in the document.
	for _, line := range lines {
		if d := tryParse(strings.TrimSpace(line)); d != "" {
			return d
		}
	}
	return ""
}

// us1239Date reads US-format M/D/YY dates. Claim documents take the first
// date anywhere; invoices prefer the supplier-name line, falling back to
// the first date found.
func us1239Date(lines []string) string {
	parse := func(line string) string {
		if m := us1239DateRe.FindStringSubmatch(line); m != nil {
			return normalize.Date(m[1], []string{"1/2/06"})
		}
		return ""
	}
	if containsLine(lines, "REF CLAIM") {
		for _, line := range lines {
			if d := parse(line); d != "" {
				return d
			}
		}
		return ""
	}
	for _, line := range lines {
		if strings.Contains(strings.ToUpper(line), "ELECTROLUX HOME PRODUCTS") {
			if d := parse(line); d != "" {
				return d
			}
		}
	}
	for _, line := range lines {
		if d := parse(line); d != "" {
			return d
		}
	}
	return ""
}

// fiveJUDate distinguishes credit notes ("CN NO" present, date after
// "DATE:") from invoices (date on the line above "DESCRIPTION").
func fiveJUDate(lines []string) string {
	if containsLine(lines, "CN NO") {
		for _, line := range lines {
			up := strings.ToUpper(line)
			if !strings.Contains(up, "DATE:") {
				continue
			}
			parts := strings.SplitN(up, "DATE:", 2)
			if len(parts) < 2 {
				continue
			}
			raw := strings.TrimSpace(parts[1])
			raw = strings.ReplaceAll(raw, "/", "-")
			return normalize.Date(raw, []string{"2-Jan-2006", "02-01-2006"})
		}
		return ""
	}
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), "DESCRIPTION") && i > 0 {
			if m := monthDash2Re.FindString(lines[i-1]); m != "" {
				return normalize.Date(m, []string{"2-Jan-06"})
			}
		}
	}
	return ""
}

// --- amount ---

var externosAmountRules = map[string]FieldRule{
	CodeSEI: R(
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL AMOUNT(U.S DOLLAR)", Offset: 1},
		Step{Kind: StepAnchorOffset, Anchor: "Total Net in Doc. Currency", Offset: 1},
	),
	CodeSGE: R(
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL AMOUNT(U.S DOLLAR)", Offset: 1},
	),
	Code5BE: R(
		Step{Kind: StepAnchorOffset, Anchor: "SHIPPING MARKS:", Offset: -1},
		Step{Kind: StepAnchorOffset, Anchor: "HOMA APPLIANCES CO", Offset: -2},
	),
	Code5JU: R(
		Step{Kind: StepAnchorOffset, Anchor: "REMARKS:", Offset: -1},
		Step{Kind: StepAnchorOffset, Anchor: "CREDIT NOTE", Offset: -4},
	),
	Code5DL: R(
		Step{Kind: StepAnchorOffset, Anchor: "COMMERCIAL INVOICE", Offset: -2},
	),
	Code5DU: R(
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL:", Offset: -2},
	),
	Code5WY: R(
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL", Offset: 2},
	),
	Code7DQ: R(
		Step{Kind: StepAnchorOffset, Anchor: "PAYMENT CONDITIONS :", Offset: -2},
	),
	Code7JR: R(
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL AMOUNT:", Offset: 2},
		Step{Kind: StepAnchorOffset, Anchor: "REMARK:", Offset: -1},
	),
	CodeBRR: R(
		Step{Kind: StepAnchorOffset, Anchor: "COSTOS INTERNOS", Offset: 4},
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL IN FAVOUR", Offset: 2},
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL FOB", Offset: 1},
	),
	CodeCLH: R(
		Step{Kind: StepAnchorOffset, Anchor: "TOTAL FOB", Offset: 1},
	),
	CodeNingbo: R(
		Step{Kind: StepAnchorOffset, Anchor: "PAYMENT TERM", Offset: -1},
		Step{Kind: StepAnchorOffset, Anchor: "AMOUNT IN WORDS", Offset: -2},
		Step{Kind: StepAnchorOffset, Anchor: "AMOUNT IN WORDS", Offset: -1},
	),
}

var lastNumberRe = regexp.MustCompile(`\d[\d.,]*`)

// ExternosAmount extracts the raw total amount text for the given supplier.
func ExternosAmount(code string, lines []string) string {
	switch code {
	case CodeSnowky:
		// Total sits a few lines above the descriptions header, on the
		// first line mentioning US$.
		if idx := findAnchor(lines, "QUANTITIES & DESCRIPTIONS"); idx >= 0 {
			for offset := 1; offset <= 10; offset++ {
				line := strings.TrimSpace(lineAt(lines, idx-offset))
				if strings.Contains(strings.ToUpper(line), "US$") {
					return line
				}
			}
		}
		return ""
	case CodeUS1239:
		for _, line := range lines {
			up := strings.ToUpper(line)
			if strings.Contains(up, "GRAND TOTAL USA $") ||
				strings.Contains(up, "TOTALS") ||
				strings.Contains(up, "TOTAL VALUE") {
				nums := lastNumberRe.FindAllString(line, -1)
				if len(nums) > 0 {
					return nums[len(nums)-1]
				}
			}
		}
		return ""
	}
	rule, ok := externosAmountRules[code]
	if !ok {
		return ""
	}
	return rule.Eval(lines)
}
