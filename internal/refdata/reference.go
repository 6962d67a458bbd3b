package refdata

import (
	"strings"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
)

// The reference list arrives as a spreadsheet export with hand-typed
// headers and cells. Loading normalizes headers to snake_case, repairs the
// amount and date columns and trims the supplier names, so the join logic
// downstream never sees the raw formatting.

var importeColumns = map[string]bool{
	"importe_documento":     true,
	"importe_del_documento": true,
	"importe":               true,
}

var fechaColumns = map[string]bool{
	"fecha_de_emision_del_documento": true,
	"fecha_emision_documento":        true,
	"fecha":                          true,
	"fecha_de_emisipn_del_documento": true, // typo present in the source export
}

// NormalizeHeader converts a spreadsheet header to the snake_case key used
// by the join columns.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return strings.ToLower(h)
}

// LoadReference reads the document reference sheet into a table keyed by
// normalized snake_case columns.
func LoadReference(path, sheet string) (*assemble.Table, error) {
	records, err := readTabular(path, sheet)
	if err != nil {
		return nil, err
	}
	t := assemble.New()
	if len(records) == 0 {
		return t, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}

	for _, rec := range records[1:] {
		row := assemble.Row{}
		for i, h := range headers {
			if h == "" {
				continue
			}
			val := ""
			if i < len(rec) {
				val = rec[i]
			}
			switch {
			case importeColumns[h]:
				row[h] = cleanImporte(val)
			case fechaColumns[h]:
				row[h] = normalize.FixDate(val)
			case h == "proveedor":
				row[h] = supplierName(val)
			default:
				row[h] = strings.TrimSpace(val)
			}
		}
		t.Append(row)
	}
	return t, nil
}

// cleanImporte parses a hand-typed amount cell, preserving an explicit
// leading minus that the generic cleaner strips.
func cleanImporte(raw string) *float64 {
	s := strings.TrimSpace(normalize.CleanInvisible(raw))
	neg := strings.HasPrefix(s, "-")
	v := normalize.Amount(s)
	if v != nil && neg {
		n := -*v
		return &n
	}
	return v
}

// supplierName keeps the text before the first dash; the export suffixes
// supplier names with their tax id.
func supplierName(raw string) string {
	name, _, _ := strings.Cut(raw, "-")
	return strings.TrimSpace(name)
}
