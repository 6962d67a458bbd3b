package pipeline

import (
	"context"
	"testing"

	"github.com/ThiagoElux01/Comex-app/internal/extract"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
)

func spanRow(spans ...string) extract.SpanRow {
	return extract.SpanRow{Spans: spans}
}

func TestPercepcionesFlow(t *testing.T) {
	fake := &fakeExtractor{spans: []extract.SpanRow{
		spanRow("SUNAT"),
		spanRow("NUMERO DE LIQUIDACIÓN", "241234567890-25"),
		spanRow("C.D.A.", "241 - 1234567"),
		spanRow("DE FECHA : 01/05/2024"),
		spanRow("SUNAT PERCEPCION IGV"),
		spanRow("1,234.56"),
	}}
	s := newTestSession(fake)

	tbl := s.Percepciones(context.Background(), []ingest.Document{docOf("liq.pdf", "pdf-bytes")})
	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tbl.Rows))
	}
	row := tbl.Rows[0]

	// The declaration-period suffix is stripped from the liquidation number.
	if got := row.String("No_Liquidacion"); got != "241234567890" {
		t.Errorf("liquidation = %q", got)
	}
	if got := row.String("CDA"); got != "241-1234567" {
		t.Errorf("cda = %q", got)
	}
	// Date renders as ddmmyy, slashes removed.
	if got := row.String("Fecha"); got != "010524" {
		t.Errorf("fecha = %q, want 010524", got)
	}
	if got := row.Float("Monto"); got == nil || *got != 1234.56 {
		t.Errorf("monto = %v, want 1234.56", got)
	}
	if got := row.String("COD PROVEEDOR"); got != "13131295" {
		t.Errorf("cod proveedor = %q", got)
	}
	if got := row.String("COD MONEDA"); got != "00" {
		t.Errorf("cod moneda = %q", got)
	}
	if got := row[ColTasa]; got != 1.00 {
		t.Errorf("tasa = %v, want 1", got)
	}
	if got := row[ColAuthCode]; got != "54" {
		t.Errorf("auth = %v, want 54", got)
	}
	if got := row.String(ColCuenta); got != "421201" {
		t.Errorf("cuenta = %q", got)
	}
}

func TestPercepcionesFlowUnreadable(t *testing.T) {
	s := newTestSession(&fakeExtractor{spans: nil})
	tbl := s.Percepciones(context.Background(), []ingest.Document{docOf("bad.pdf", "x")})
	row := tbl.Rows[0]
	if got := row.String(ColError); got != "Can't read the file" {
		t.Errorf("error = %q", got)
	}
}

func TestParseMonto(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"1,234.56", 1234.56, true},
		{"350.00", 350.00, true},
		{"350", 350, true},
		{"", 0, false},
		{"12AB", 0, false},
	}
	for _, tt := range tests {
		got := parseMonto(tt.raw)
		if tt.ok {
			if got == nil || *got != tt.want {
				t.Errorf("parseMonto(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			continue
		}
		if got != nil {
			t.Errorf("parseMonto(%q) = %v, want nil", tt.raw, *got)
		}
	}
}

func TestReshapeCDA(t *testing.T) {
	tests := []struct{ in, want string }{
		{"241 x 1234567", "241-1234567"},
		{"24.1234567", "24-1234567"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := reshapeCDA(tt.in); got != tt.want {
			t.Errorf("reshapeCDA(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractNoLiquidacionColonVariant(t *testing.T) {
	row := spanRow("NÚMERO DE LIQUIDACIÓN : 241234567890-26")
	if got := extractNoLiquidacion(row); got != "241234567890-26" {
		t.Errorf("extractNoLiquidacion = %q", got)
	}
}

func TestExtractCDAFallsBackToNextRow(t *testing.T) {
	row := spanRow("C.D.A.")
	next := spanRow("241 - 1234567")
	if got := extractCDA(row, &next); got != "241-1234567" {
		t.Errorf("extractCDA = %q", got)
	}
}
