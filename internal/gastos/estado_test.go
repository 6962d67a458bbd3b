package gastos

import (
	"strings"
	"testing"
)

const sampleEstado = `Electrolux del Perú S.A.                     Listado de Saldos
Scala 6.1
==================================================================
CTA        Descripción                 Sal OB      Saldo OB    Período     Saldo CB
------------------------------------------------------------------
421202     Facturas por pagar USD      1,000.00    2,345.67-   10.00       3,345.67
421201     Facturas por pagar PEN      0.00        500.00      0.00        500.00-
==================================================================
Electrolux del Perú S.A.    página 2
`

func TestParseEstadoCuenta(t *testing.T) {
	tbl := ParseEstadoCuenta(sampleEstado)
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}

	r := tbl.Rows[0]
	if got := r.String(ColCTA); got != "421202" {
		t.Errorf("CTA = %q", got)
	}
	if got := r.String(ColDescripcion); got != "Facturas por pagar USD" {
		t.Errorf("Descripción = %q", got)
	}
	if got := r.Float(ColSalOB); got == nil || *got != 1000.00 {
		t.Errorf("Sal OB = %v, want 1000", got)
	}
	// Trailing minus means negative.
	if got := r.Float(ColSaldoOB); got == nil || *got != -2345.67 {
		t.Errorf("Saldo OB = %v, want -2345.67", got)
	}
	if got := r.Float(ColPeriodo); got == nil || *got != 10.00 {
		t.Errorf("Período = %v, want 10", got)
	}

	r = tbl.Rows[1]
	if got := r.Float(ColSaldoCB); got == nil || *got != -500.00 {
		t.Errorf("Saldo CB = %v, want -500", got)
	}
}

func TestParseEstadoCuentaColumnsOrder(t *testing.T) {
	tbl := ParseEstadoCuenta(sampleEstado)
	want := []string{ColCTA, ColDescripcion, ColSalOB, ColSaldoOB, ColPeriodo, ColSaldoCB}
	if len(tbl.Columns) != len(want) {
		t.Fatalf("Columns = %v", tbl.Columns)
	}
	for i := range want {
		if tbl.Columns[i] != want[i] {
			t.Fatalf("Columns = %v, want %v", tbl.Columns, want)
		}
	}
}

func TestAppendTotals(t *testing.T) {
	tbl := ParseEstadoCuenta(sampleEstado)
	AppendTotals(tbl)

	if len(tbl.Rows) != 4 {
		t.Fatalf("rows = %d, want 2 data + blank + TOTAL", len(tbl.Rows))
	}

	blank := tbl.Rows[2]
	if blank.String(ColCTA) != "" || blank.String(ColDescripcion) != "" || blank.Float(ColSalOB) != nil {
		t.Errorf("spacer row not blank: %+v", blank)
	}

	total := tbl.Rows[3]
	if got := total.String(ColDescripcion); got != "TOTAL" {
		t.Fatalf("Descripción = %q, want TOTAL", got)
	}
	if got := total.String(ColCTA); got != "" {
		t.Errorf("TOTAL row CTA = %q, want empty", got)
	}
	if got := total.Float(ColSalOB); got == nil || *got != 1000.00 {
		t.Errorf("Sal OB total = %v, want 1000", got)
	}
	if got := total.Float(ColSaldoOB); got == nil || *got != -1845.67 {
		t.Errorf("Saldo OB total = %v, want -1845.67", got)
	}
	if got := total.Float(ColPeriodo); got == nil || *got != 10.00 {
		t.Errorf("Período total = %v, want 10", got)
	}
	if got := total.Float(ColSaldoCB); got == nil || *got != 2845.67 {
		t.Errorf("Saldo CB total = %v, want 2845.67", got)
	}
}

func TestAppendTotalsEmptyTable(t *testing.T) {
	tbl := ParseEstadoCuenta("")
	AppendTotals(tbl)
	if len(tbl.Rows) != 0 {
		t.Errorf("rows = %d, want 0 (no totals for an empty listing)", len(tbl.Rows))
	}
	AppendTotals(nil)
}

func TestParseEstadoCuentaEmpty(t *testing.T) {
	tbl := ParseEstadoCuenta("")
	if len(tbl.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(tbl.Rows))
	}
}

func TestIsSeparator(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"==========", true},
		{"----------", true},
		{"--=-", false},
		{"421202 text", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isSeparator(tt.in); got != tt.want {
			t.Errorf("isSeparator(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitAccount(t *testing.T) {
	cta, descr := splitAccount("421202     Facturas por pagar")
	if cta != "421202" || descr != "Facturas por pagar" {
		t.Errorf("splitAccount = %q, %q", cta, descr)
	}
}

func TestParseEstadoCuentaSkipsNonDataLines(t *testing.T) {
	text := strings.Join([]string{
		"CTA  Descripción",
		"some narrative line without numbers",
		"421202 Cuenta 1.00 2.00 3.00 4.00",
	}, "\n")
	tbl := ParseEstadoCuenta(text)
	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tbl.Rows))
	}
}
