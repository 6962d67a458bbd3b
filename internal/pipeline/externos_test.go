package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
)

const seiInvoiceText = `INVOICE
6591041566
Electrolux Intressenter AB
INVOICE DATE
2024.05.01
TOTAL AMOUNT(U.S DOLLAR)
1,234.56`

func TestExternosFlow(t *testing.T) {
	s := newTestSession(&fakeExtractor{})
	s.Rates = testRates(t, map[string]float64{"01/05/2024": 3.75})

	docs := []ingest.Document{docOf("sei-invoice.pdf", seiInvoiceText)}
	tbl := s.Externos(context.Background(), docs)

	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tbl.Rows))
	}
	row := tbl.Rows[0]

	if got := row.String("Proveedor Iscala"); got != "SEI" {
		t.Errorf("supplier code = %q, want SEI", got)
	}
	if got := row.String(ColFactura); got != "6591041566" {
		t.Errorf("factura = %q", got)
	}
	if got := row.String(ColTipoDoc); got != "INVOICE" {
		t.Errorf("doc type = %q", got)
	}
	if got := row.String(ColFecha); got != "01/05/2024" {
		t.Errorf("fecha = %q", got)
	}
	if got := row.Float("Amount"); got == nil || *got != 1234.56 {
		t.Errorf("amount = %v, want 1234.56", got)
	}
	if got := row.String(ColMoneda); got != "USD" {
		t.Errorf("moneda = %q", got)
	}
	if got := row.String(ColCuenta); got != "421202" {
		t.Errorf("cuenta = %q", got)
	}
	if got := row[ColAuthCode]; got != "91" {
		t.Errorf("auth code = %v, want 91", got)
	}
	if got := row[ColTipoFac]; got != "12" {
		t.Errorf("tipo factura = %v, want 12", got)
	}
	if got := row.Float(ColTasa); got == nil || *got != 3.75 {
		t.Errorf("tasa = %v, want 3.75", got)
	}
	if got := row.String(ColError); got != "" {
		t.Errorf("error = %q, want empty", got)
	}
}

func TestExternosFlowCreditNoteNegatesAmount(t *testing.T) {
	text := strings.Join([]string{
		"CREDIT NOTE",
		"** 6591099999 **",
		"Electrolux Intressenter AB",
		"CREDIT NOTE DATE",
		"2024.05.01",
		"TOTAL AMOUNT(U.S DOLLAR)",
		"500.00",
	}, "\n")

	s := newTestSession(&fakeExtractor{})
	tbl := s.Externos(context.Background(), []ingest.Document{docOf("sei-cn.pdf", text)})

	row := tbl.Rows[0]
	if got := row.String(ColTipoDoc); got != "CREDIT NOTE" {
		t.Fatalf("doc type = %q", got)
	}
	if got := row.String(ColFactura); got != "6591099999" {
		t.Errorf("factura = %q", got)
	}
	if got := row.Float("Amount"); got == nil || *got != -500.00 {
		t.Errorf("amount = %v, want -500", got)
	}
	if got := row[ColAuthCode]; got != "97" {
		t.Errorf("auth code = %v, want 97", got)
	}
}

func TestExternosFlowUnknownSupplier(t *testing.T) {
	s := newTestSession(&fakeExtractor{})
	tbl := s.Externos(context.Background(), []ingest.Document{docOf("mystery.pdf", "no known supplier here")})

	row := tbl.Rows[0]
	if got := row.String(ColError); got != "Document can't be read" {
		t.Errorf("error = %q", got)
	}
	if got := row.String("Proveedor"); got != "" {
		t.Errorf("supplier = %q, want empty", got)
	}
}

func TestExternosFlowFillsGapsFromReference(t *testing.T) {
	ref := assemble.New("name", "proveedor", "fecha")
	ref.Append(assemble.Row{
		"name":      "mystery",
		"proveedor": "ACME-123",
		"fecha":     "01/05/2024",
	})

	s := newTestSession(&fakeExtractor{})
	s.Ref = ref
	s.Rates = testRates(t, map[string]float64{"01/05/2024": 3.75})

	tbl := s.Externos(context.Background(), []ingest.Document{
		docOf("mystery.pdf", "no known supplier here"),
	})

	row := tbl.Rows[0]
	if got := row.String("Proveedor Iscala"); got != "ACME-123" {
		t.Errorf("supplier gap not filled from reference: %q, want ACME-123", got)
	}
	if got := row.String(ColFecha); got != "01/05/2024" {
		t.Errorf("fecha gap not filled from reference: %q", got)
	}
	// The filled date participates in the rate join.
	if got := row.Float(ColTasa); got == nil || *got != 3.75 {
		t.Errorf("tasa = %v, want 3.75 from the filled date", got)
	}
}

func TestExternosFlowReferenceNeverOverwrites(t *testing.T) {
	ref := assemble.New("name", "proveedor", "fecha")
	ref.Append(assemble.Row{
		"name":      "sei-invoice",
		"proveedor": "SOMEONE ELSE",
		"fecha":     "31/12/2023",
	})

	s := newTestSession(&fakeExtractor{})
	s.Ref = ref

	tbl := s.Externos(context.Background(), []ingest.Document{
		docOf("sei-invoice.pdf", seiInvoiceText),
	})

	row := tbl.Rows[0]
	if got := row.String("Proveedor Iscala"); got != "SEI" {
		t.Errorf("extracted supplier overwritten by reference: %q, want SEI", got)
	}
	if got := row.String(ColFecha); got != "01/05/2024" {
		t.Errorf("extracted fecha overwritten by reference: %q, want 01/05/2024", got)
	}
}

func TestExternosFlowDedupBySourceFile(t *testing.T) {
	s := newTestSession(&fakeExtractor{})
	docs := []ingest.Document{
		docOf("same.pdf", seiInvoiceText),
		docOf("same.pdf", seiInvoiceText),
	}
	tbl := s.Externos(context.Background(), docs)
	if len(tbl.Rows) != 1 {
		t.Errorf("rows = %d, want 1 after dedup", len(tbl.Rows))
	}
}
