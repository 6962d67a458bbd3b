package refdata

import (
	"strings"

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/assemble"
)

// Column names shared by the flows that reconcile against reference data.
const (
	ColTasa       = "Tasa"
	ColCodMoneda  = "Cod. Moneda"
	ColSourceFile = "source_file"
	ColPEC        = "pec"
	colRefName    = "name"
	colFactura    = "Factura"
)

// ApplyRates joins the day's selling rate into the Tasa column by emission
// date. Local-currency rows (Cod. Moneda 00) are forced to Tasa 1
// afterwards, overriding whatever the join produced. A nil rate table still
// applies the local-currency override.
func ApplyRates(t *assemble.Table, dateCol string, rates *RateTable) {
	for _, row := range t.Rows {
		if rate := rates.Lookup(row.String(dateCol)); rate != nil {
			row[ColTasa] = rate
		}
		if row.String(ColCodMoneda) == constants.CodePEN {
			one := 1.0
			row[ColTasa] = &one
		}
	}
	ensureColumn(t, ColTasa)
}

// AttachPEC copies the PEC number from the reference list into the results,
// matching reference names against source filenames in both containment
// directions.
func AttachPEC(t *assemble.Table, ref *assemble.Table) {
	if ref == nil || len(ref.Rows) == 0 {
		return
	}
	assemble.MergeByFilename(t, ColSourceFile, ColPEC, ref, colRefName, ColPEC)
}

// Gap-fill pairs: flow output column on the left, reference columns on the
// right in preference order. Reference headers arrive snake_cased with the
// variants the export is known to use (see reference.go).
var fillPairs = []struct {
	Col string
	Ref []string
}{
	{"Proveedor Iscala", []string{"proveedor"}},
	{colFactura, []string{"numero_de_documento", "numero_documento", "factura"}},
	{"Tipo Doc", []string{"tipo_de_documento", "tipo_documento"}},
	{"Fecha de Emisión", []string{
		"fecha_de_emision_del_documento",
		"fecha_de_emisipn_del_documento",
		"fecha_emision_documento",
		"fecha",
	}},
	{"Moneda", []string{"moneda"}},
	{"Amount", []string{"importe_documento", "importe_del_documento", "importe"}},
	{"Op. Gravada", []string{"importe_documento", "importe_del_documento", "importe"}},
}

// refInvoiceColumns hold the reference side's document number, when present.
var refInvoiceColumns = []string{"numero_de_documento", "numero_documento", "factura"}

// FillFromReference plugs empty result cells from the reference list after
// extraction and typing. Result rows match a reference row by normalized
// document number when both sides carry one, otherwise by bidirectional
// filename containment against the reference Name column. Extracted values
// always win; only absent or empty cells are filled, and only for columns
// the flow already emits.
func FillFromReference(t *assemble.Table, ref *assemble.Table, fileCol string) {
	if ref == nil || len(ref.Rows) == 0 {
		return
	}

	emitted := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		emitted[c] = true
	}

	byInvoice := make(map[string]assemble.Row, len(ref.Rows))
	byName := make([]refEntry, 0, len(ref.Rows))
	for _, r := range ref.Rows {
		for _, c := range refInvoiceColumns {
			if k := invoiceKey(r.String(c)); k != "" {
				if _, dup := byInvoice[k]; !dup {
					byInvoice[k] = r
				}
				break
			}
		}
		if n := strings.ToLower(strings.TrimSpace(r.String(colRefName))); n != "" {
			byName = append(byName, refEntry{name: n, row: r})
		}
	}

	// Reference values are projected under the flow's own column names, so
	// the coalesce below can never overwrite extracted data.
	filled := assemble.New(fileCol)
	for _, row := range t.Rows {
		file := strings.TrimSpace(row.String(fileCol))
		if file == "" {
			continue
		}

		var src assemble.Row
		if k := invoiceKey(row.String(colFactura)); k != "" {
			src = byInvoice[k]
		}
		if src == nil {
			lower := strings.ToLower(file)
			for _, e := range byName {
				if strings.Contains(lower, e.name) || strings.Contains(e.name, lower) {
					src = e.row
					break
				}
			}
		}
		if src == nil {
			continue
		}

		proj := assemble.Row{fileCol: row.String(fileCol)}
		for _, p := range fillPairs {
			if !emitted[p.Col] {
				continue
			}
			for _, rc := range p.Ref {
				if v, ok := src[rc]; ok && !assemble.IsEmptyCell(v) {
					proj[p.Col] = v
					break
				}
			}
		}
		if len(proj) > 1 {
			filled.Append(proj)
		}
	}
	assemble.CoalesceFill(t, filled, fileCol)
}

type refEntry struct {
	name string
	row  assemble.Row
}

// invoiceKey normalizes a document number for exact matching: uppercase
// alphanumerics only.
func invoiceKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ensureColumn(t *assemble.Table, name string) {
	for _, c := range t.Columns {
		if c == name {
			return
		}
	}
	t.Columns = append(t.Columns, name)
}
