package vendors

import (
	"regexp"
	"strings"

	"github.com/ThiagoElux01/Comex-app/internal/normalize"
)

// Local-supplier (Adicionales) documents carry a Peruvian RUC tax number
// instead of a printed supplier name. Identity is the RUC; the shipping
// lines (Evergreen, MSC, Wan Hai) are the exception and are recognized by
// name because their invoices omit a usable RUC anchor.

// UndesiredRUC is Electrolux's own tax number. Documents carrying it are
// self-issued copies and their RUC is blanked so downstream joins skip them.
const UndesiredRUC = "20100073308"

// Shipping-line provider identities.
const (
	ProviderEvergreen = "EVERGREEN"
	ProviderMSC       = "MSC"
	ProviderWanHai    = "WAN HAI"
)

var rucPatterns = []*regexp.Regexp{
	regexp.MustCompile(`R\.U\.C.*?(\d{11})`),
	regexp.MustCompile(`RUC:\s*(\d{11})`),
	regexp.MustCompile(`RUC N°\s*(\d{11})`),
}

// ExtractRUC finds the 11-digit supplier tax number, trying the printed
// variants in order of frequency.
func ExtractRUC(text string) string {
	for _, re := range rucPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// adicionalesFacturaPatterns are ordered longest-series-first so a
// nine-digit serial is never truncated by the shorter fallbacks.
var adicionalesFacturaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`F\d{3}[-\s]*\d{9}`),
	regexp.MustCompile(`F\d{3}[-\s]*\d{8}`),
	regexp.MustCompile(`F\d{3}[-\s]*\d{5,7}`),
	regexp.MustCompile(`F\d{2}[-\s]*\d{5,7}`),
	regexp.MustCompile(`INV-[A-Z]+-\d{8}`),
	regexp.MustCompile(`Número de Invoice\(Invoice No\.\)\s*:\s*([A-Z]{4}\d{9})`),
	regexp.MustCompile(`\bPECLLP\d{9}\b`),
	regexp.MustCompile(`F\d{3}[-\s]*\d{4}`),
}

// AdicionalesFactura extracts the electronic-invoice number (F###-series
// and the carrier-specific formats), with inner whitespace removed.
func AdicionalesFactura(text string) string {
	for _, re := range adicionalesFacturaPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			g := m[0]
			if len(m) > 1 && m[1] != "" {
				g = m[1]
			}
			return strings.TrimSpace(strings.ReplaceAll(g, " ", ""))
		}
	}
	return ""
}

// ProveedorIscala derives the accounting supplier identity: shipping lines
// by printed name, everyone else from the RUC with the leading pair and the
// check digit dropped.
func ProveedorIscala(text, ruc string) string {
	switch {
	case strings.Contains(text, "EVERGREEN LINE"):
		return ProviderEvergreen
	case strings.Contains(text, "MSC Mediterranean Shipping Company S.A."):
		return ProviderMSC
	case strings.Contains(text, "WANHAI"):
		return ProviderWanHai
	case len(ruc) > 3:
		return ruc[2 : len(ruc)-1]
	}
	return ""
}

// --- issue date ---

var (
	emisionInlineRe  = regexp.MustCompile(`(?i)F\.?\s*DE\s+EMISI[ÓO]N\s*[:\-]?\s*(\d{4}[-/]\d{2}[-/]\d{2})`)
	isoAfterColonRe  = regexp.MustCompile(`[:\-]?\s*(\d{4}[-/]\d{2}[-/]\d{2})`)
	dayFirstInlineRe = regexp.MustCompile(`FECHA DE EMISI[ÓO]N[:\s]*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`)
	dayFirstLeadRe   = regexp.MustCompile(`^\d{2}[-/]\d{2}[-/]\d{4}`)
	isoLeadRe        = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}`)
	anyDateRe        = regexp.MustCompile(`\d{2}[-/]\d{2}[-/]\d{4}|\d{4}[-/]\d{2}[-/]\d{2}`)
	dayFirstAnyRe    = regexp.MustCompile(`\d{2}[-/]\d{2}[-/]\d{4}`)
	slashDateRe      = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	dashMonthLeadRe  = regexp.MustCompile(`^\d{2}-[A-Z][a-z]{2}-\d{4}`)
	issueDateTailRe  = regexp.MustCompile(`FECHA EMISI[ÓO]N\(ISSUE DATE\)\s*[:\-]?\s*(\d{4}[-/]\d{2}[-/]\d{2})`)

	adicionalesDateLayouts = []string{
		"02-01-2006", "02/01/2006", "2006/01/02", "2006-01-02",
		"2-Jan-2006", "2-January-2006",
	}
)

// AdicionalesIssueDate locates the emission date across the layout zoo of
// the local suppliers and returns it canonicalized as DD/MM/YYYY. Anchors
// are tried per line, in decreasing reliability; the raw hit is returned
// unchanged when no candidate layout parses it.
func AdicionalesIssueDate(lines []string) string {
	raw := adicionalesRawDate(lines)
	if raw == "" {
		return ""
	}
	if d := normalize.Date(raw, adicionalesDateLayouts); d != "" {
		return d
	}
	return raw
}

func adicionalesRawDate(lines []string) string {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		up := strings.ToUpper(trimmed)

		if m := emisionInlineRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}

		// "F. DE" / "EMISIÓN" stacked over two lines, date on the second.
		if up == "F. DE" && i+1 < len(lines) {
			if m := isoAfterColonRe.FindStringSubmatch(strings.TrimSpace(lines[i+1])); m != nil {
				return m[1]
			}
		}

		if strings.Contains(up, "FECHA DE EMISIÓN") || strings.Contains(up, "FECHA DE EMISION") {
			if m := dayFirstInlineRe.FindStringSubmatch(up); m != nil {
				return m[1]
			}
			if i > 0 {
				prev := strings.TrimSpace(lines[i-1])
				if dayFirstLeadRe.MatchString(prev) || isoLeadRe.MatchString(prev) {
					return prev
				}
			}
		}

		if up == "FECHA" && i+2 < len(lines) &&
			strings.ToUpper(strings.TrimSpace(lines[i+1])) == "EMISIÓN" {
			if m := dayFirstAnyRe.FindString(strings.TrimSpace(lines[i+2])); m != "" {
				return m
			}
		}

		if strings.Contains(up, "R.U.C. N°") && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if isoLeadRe.MatchString(next) {
				return next
			}
		}

		if strings.Contains(up, "DOLARES AMERICANOS") && i >= 2 {
			cand := strings.TrimSpace(lines[i-2])
			if dayFirstLeadRe.MatchString(cand) {
				return cand
			}
		}

		if (up == "FECHA DE EMISIÓN" || up == "FECHA DE EMISION") && i > 0 {
			prev := strings.TrimSpace(lines[i-1])
			if isoLeadRe.MatchString(prev) {
				return prev
			}
		}

		if strings.Contains(up, "FECHA EMISIÓN:") || strings.Contains(up, "FECHA DE EMISIÓN:") {
			if i > 0 {
				if m := anyDateRe.FindString(strings.TrimSpace(lines[i-1])); m != "" {
					return m
				}
			}
		}

		if strings.Contains(up, "FECHA DE EMISIÓN") || strings.Contains(up, "FECHA DE EMISION") {
			for offset := 1; offset <= 16 && i+offset < len(lines); offset++ {
				cand := strings.TrimSpace(lines[i+offset])
				if isoLeadRe.MatchString(cand) {
					return cand
				}
			}
		}
	}

	// Date printed above a bare "FECHA" label.
	for i := 1; i < len(lines); i++ {
		up := strings.ToUpper(strings.TrimSpace(lines[i]))
		if up == "FECHA:" || up == "FECHA" {
			if m := slashDateRe.FindString(strings.TrimSpace(lines[i-1])); m != "" {
				return m
			}
		}
	}

	// Three lines under the FACTURA title, dd-Mon-yyyy.
	for i := 0; i+3 < len(lines); i++ {
		if strings.Contains(strings.ToUpper(strings.TrimSpace(lines[i])), "FACTURA") {
			if m := dashMonthLeadRe.FindString(strings.TrimSpace(lines[i+3])); m != "" {
				return m
			}
		}
	}

	if m := issueDateTailRe.FindStringSubmatch(strings.ToUpper(strings.Join(lines, "\n"))); m != nil {
		return m[1]
	}
	return ""
}

// --- currency ---

var (
	monedaKeywords  = []string{"MONEDA", "CURRENCY", "TIPO DE CAMBIO", "WAN HAI", "GRAN TOTAL:"}
	currencyMarkers = []string{"DÓLAR", "DOLAR", "USD", "US DÓLARES", "SOLES", "PEN", "EUROS", "EUR"}
	monedaInlineRe  = regexp.MustCompile(`(MONEDA|CURRENCY)\s*[:\-]?\s*([A-Z\s]+)`)
)

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// AdicionalesMoneda scans for a currency declaration near one of the known
// keyword lines, checking the keyword line itself and a window of five
// lines either side. The raw hit is returned title-cased; canonicalization
// to USD/PEN happens in normalize.Currency.
func AdicionalesMoneda(lines []string) string {
	for i, line := range lines {
		up := strings.ToUpper(line)
		if !containsAny(up, monedaKeywords) {
			continue
		}
		if m := monedaInlineRe.FindStringSubmatch(up); m != nil {
			cand := strings.TrimSpace(m[2])
			if containsAny(cand, currencyMarkers) {
				return titleCase(cand)
			}
		}
		for j := -5; j <= 5; j++ {
			if j == 0 {
				continue
			}
			idx := i + j
			if idx < 0 || idx >= len(lines) {
				continue
			}
			cand := strings.ToUpper(strings.TrimSpace(lines[idx]))
			if containsAny(cand, currencyMarkers) {
				return titleCase(cand)
			}
		}
	}
	return ""
}

func titleCase(s string) string {
	return normalize.TitleCase(s)
}

// --- taxable amount (Op. Gravada) ---

type amountAnchor struct {
	anchor string
	offset int
}

// opGravadaAnchors encodes where each supplier prints its taxable total
// relative to a stable marker line. Offsets are negative when the amount
// sits above the marker. These positions track each supplier's fixed
// invoice template.
var opGravadaAnchors = map[string]amountAnchor{
	"10001013":        {"SON:", -8},
	"25981421":        {"SON:", -10},
	"34528608":        {"Total Gravado", 1},
	"60342509":        {"Total Valor de Venta - Operaciones Gravadas:", 1},
	"25206207":        {"OP. INAFECTA", -1},
	"51346238":        {"OP. GRAVADAS:", -2},
	"60037433":        {"SON:", 8},
	"10001021":        {"OP. GRAVADAS:", -2},
	"51092775":        {"Operación gravada", -1},
	"34764689":        {"Son: ", 1},
	ProviderWanHai:    {"Son:", -2},
	ProviderMSC:       {"SON:", -5},
	"61092558":        {"Total Valor de Venta - Operaciones Gravadas:", 1},
	"54308388":        {"Total Valor de Venta - Operaciones Gravadas:", 1},
}

// AdicionalesOpGravada extracts the raw taxable-amount text for a supplier.
// Supplier 25206207's credit notes use a distinct template and are handled
// before the invoice anchor; Evergreen prints the amount inline on the
// total line.
func AdicionalesOpGravada(prov, docType string, lines []string) string {
	up := strings.ToUpper(docType)
	if prov == "25206207" && up == "NOTA DE CRÉDITO" {
		if idx := findAnchorExact(lines, "OP. GRAVADA"); idx >= 7 {
			return strings.TrimSpace(lines[idx-7])
		}
	}
	if prov == ProviderEvergreen {
		for _, line := range lines {
			if strings.Contains(line, "Total Amount(Monto total): ") {
				return strings.TrimSpace(line)
			}
		}
		return ""
	}
	a, ok := opGravadaAnchors[prov]
	if !ok {
		return ""
	}
	if idx := findAnchorExact(lines, a.anchor); idx >= 0 {
		target := idx + a.offset
		if target >= 0 && target < len(lines) {
			return strings.TrimSpace(lines[target])
		}
	}
	return ""
}

// findAnchorExact matches the anchor case-sensitively; the supplier
// templates distinguish "SON:" from "Son:".
func findAnchorExact(lines []string, anchor string) int {
	for i, line := range lines {
		if strings.Contains(line, anchor) {
			return i
		}
	}
	return -1
}

// --- document type ---

// fixedTipoDocLines maps suppliers whose document-type caption sits on a
// fixed line of the first page.
var fixedTipoDocLines = map[string]int{
	"10001013":     2,
	"34528608":     7,
	"25981421":     2,
	"60342509":     2,
	"60037433":     4,
	"51092775":     10,
	"34764689":     0,
	ProviderWanHai: 0,
	ProviderMSC:    0,
	"61092558":     2,
	"54308388":     6,
}

// AdicionalesTipoDoc reads the raw document-type caption for a supplier.
// Suppliers printing the caption near the second "FECHA EMISIÓN" marker get
// a positional search; the rest read a fixed line.
func AdicionalesTipoDoc(prov string, lines []string) string {
	switch prov {
	case "25206207":
		if len(lines) >= 4 && strings.Contains(strings.ToUpper(lines[3]), "FACTURA") {
			return strings.TrimSpace(lines[3])
		}
		if len(lines) >= 6 {
			return strings.TrimSpace(lines[5])
		}
		return ""

	case "51346238":
		idx := nthFechaEmision(lines)
		if idx < 0 {
			return ""
		}
		switch {
		case idx >= 2:
			return strings.TrimSpace(lines[idx-2])
		case idx > 0:
			return strings.TrimSpace(lines[idx-1])
		}
		return strings.TrimSpace(lines[idx])

	case "10001021":
		idx := nthFechaEmision(lines)
		if idx < 0 {
			return ""
		}
		for _, off := range []int{3, 2, 1, 0} {
			if idx-off >= 0 {
				return strings.TrimSpace(lines[idx-off])
			}
		}
		return ""

	case ProviderEvergreen:
		for i, line := range lines {
			up := strings.ToUpper(line)
			if (strings.Contains(up, "FECHA EMISION") || strings.Contains(up, "FECHA EMISIÓN")) && i >= 1 {
				return strings.TrimSpace(lines[i-1])
			}
		}
		return ""
	}

	if lineNo, ok := fixedTipoDocLines[prov]; ok && lineNo < len(lines) {
		return strings.TrimSpace(lines[lineNo])
	}
	return ""
}

// nthFechaEmision returns the index of the second "FECHA EMISIÓN" marker,
// or the first when only one exists (page headers repeat the caption).
func nthFechaEmision(lines []string) int {
	var idxs []int
	for i, line := range lines {
		up := strings.ToUpper(line)
		if strings.Contains(up, "FECHA EMISION") || strings.Contains(up, "FECHA EMISIÓN") {
			idxs = append(idxs, i)
		}
	}
	switch {
	case len(idxs) >= 2:
		return idxs[1]
	case len(idxs) == 1:
		return idxs[0]
	}
	return -1
}

// --- credit-note number override ---

var notaCreditoCleaner = strings.NewReplacer("Nro", "", "N°", "", ".", "", " ", "")

func cleanNotaCredito(v string) string {
	return strings.TrimSpace(notaCreditoCleaner.Replace(v))
}

// AdicionalesCreditNoteFactura replaces the invoice-series number with the
// credit-note number for the suppliers that print them in different places.
// For every other document the current value is returned, run through the
// same cleanup.
func AdicionalesCreditNoteFactura(prov, docType, current string, lines []string) string {
	if strings.ToUpper(strings.TrimSpace(docType)) == "NOTA DE CRÉDITO" {
		switch prov {
		case "10001013":
			if len(lines) > 1 {
				return cleanNotaCredito(lines[1])
			}
		case "25206207":
			if len(lines) > 0 {
				return cleanNotaCredito(lines[0])
			}
		case "10001021":
			for i, line := range lines {
				if strings.Contains(strings.ToUpper(line), "NOTA DE CREDITO") && i > 0 {
					return cleanNotaCredito(lines[i-1])
				}
			}
		case "61092558":
			if len(lines) > 2 {
				return cleanNotaCredito(lines[1])
			}
		}
	}
	return cleanNotaCredito(current)
}
