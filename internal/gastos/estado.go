// Package gastos parses the fixed-layout ledger reports feeding the expense
// workbook: currently the "Listado de Saldos" account-balance listing.
package gastos

import (
	"math"
	"regexp"
	"strings"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
)

// Output columns of the balance listing.
const (
	ColCTA         = "CTA"
	ColDescripcion = "Descripción"
	ColSalOB       = "Sal OB"
	ColSaldoOB     = "Saldo OB"
	ColPeriodo     = "Período"
	ColSaldoCB     = "Saldo CB"
)

var estadoColumns = []string{
	ColCTA, ColDescripcion, ColSalOB, ColSaldoOB, ColPeriodo, ColSaldoCB,
}

// Ledger numbers: thousands commas, two decimals, optional trailing minus.
const numPattern = `(-?\d[\d,]*\.\d{2}-?)`

var tailRe = regexp.MustCompile(
	`\s*` + numPattern + `\s+` + numPattern + `\s+` + numPattern + `\s+` + numPattern + `\s*$`)

// ParseEstadoCuenta reads a "Listado de Saldos" text report into a table of
// account rows. Data starts after the "CTA Descripción" header; separator
// lines and the report's own header/footer lines are skipped. Each data row
// ends in four signed numbers; everything left of them is account code
// (first token) plus description.
func ParseEstadoCuenta(text string) *assemble.Table {
	t := assemble.New(estadoColumns...)
	lines := strings.Split(text, "\n")

	start := 0
	for i, ln := range lines {
		if strings.Contains(ln, "CTA") && strings.Contains(ln, "Descripción") {
			start = i + 1
			break
		}
	}

	for _, ln := range lines[start:] {
		raw := strings.TrimRight(ln, " \t\r")
		if raw == "" {
			continue
		}
		if isSeparator(raw) || strings.Contains(raw, "Scala") || strings.Contains(raw, "Electrolux") {
			continue
		}

		loc := tailRe.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}
		left := strings.TrimRight(raw[:loc[0]], " ")
		if left == "" {
			continue
		}

		cta, descr := splitAccount(left)
		m := tailRe.FindStringSubmatch(raw)
		t.Append(assemble.Row{
			ColCTA:         cta,
			ColDescripcion: descr,
			ColSalOB:       normalize.SignedAmount(m[1]),
			ColSaldoOB:     normalize.SignedAmount(m[2]),
			ColPeriodo:     normalize.SignedAmount(m[3]),
			ColSaldoCB:     normalize.SignedAmount(m[4]),
		})
	}
	return t
}

// AppendTotals closes the listing with a blank spacer row followed by a
// TOTAL row summing the four numeric columns, rounded to two decimals. An
// empty table is left untouched.
func AppendTotals(t *assemble.Table) {
	if t == nil || len(t.Rows) == 0 {
		return
	}

	blank := assemble.Row{}
	totals := assemble.Row{}
	for _, col := range t.Columns {
		blank[col] = ""
		totals[col] = ""
	}
	totals[ColDescripcion] = "TOTAL"

	for _, col := range []string{ColSalOB, ColSaldoOB, ColPeriodo, ColSaldoCB} {
		sum := 0.0
		for _, r := range t.Rows {
			if v := r.Float(col); v != nil {
				sum += *v
			}
		}
		sum = math.Round(sum*100) / 100
		s := sum
		totals[col] = &s
	}

	t.Append(blank)
	t.Append(totals)
}

// isSeparator reports whether the line is made of a single ruling character.
func isSeparator(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	first := s[0]
	if first != '=' && first != '-' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// splitAccount takes the account code as the first whitespace token and the
// description as everything after it.
func splitAccount(left string) (cta, descr string) {
	fields := strings.Fields(left)
	if len(fields) == 0 {
		return "", strings.TrimSpace(left)
	}
	cta = fields[0]
	idx := strings.Index(left, cta)
	descr = strings.TrimSpace(left[idx+len(cta):])
	return cta, descr
}
