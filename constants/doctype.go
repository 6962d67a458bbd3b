package constants

import "strings"

// Document types after standardization. The externos flow classifies in
// English (INVOICE / CREDIT NOTE), the adicionales flow in Spanish
// (FACTURA / NOTA DE CRÉDITO); both mean the same two-way split.
const (
	DocInvoice        = "INVOICE"
	DocCreditNote     = "CREDIT NOTE"
	DocFactura        = "FACTURA"
	DocNotaDeCredito  = "NOTA DE CRÉDITO"
	DocNotaDeCredito2 = "NOTA DE CREDITO"
)

// Authorization codes assigned per flow and document type.
const (
	AuthExternosInvoice    = "91"
	AuthExternosCreditNote = "97"
	AuthAdicionalesInvoice = "01"
	AuthAdicionalesCredit  = "07"
	AuthPercepciones       = "54"
)

// Invoice-type codes per flow.
const (
	TipoFacturaExternos     = "12"
	TipoFacturaAdicionales  = "01"
	TipoFacturaPercepciones = "12"
)

// docTypeSubs folds the raw document-type strings seen on invoices into the
// standard set. Keys are matched exactly after trimming.
var docTypeSubs = map[string]string{
	"FACTURA ELECTRÓNICA":         DocFactura,
	"FACTURA ELECTRONICA":         DocFactura,
	"FACTURA  ELECTRÓNICA":        DocFactura,
	"ELECTRONIC INVOICE":          DocFactura,
	"INVOICE":                     DocFactura,
	"NOTA DE CRÉDITO ELECTRÓNICA": DocNotaDeCredito,
	"NOTA DE CREDITO":             DocNotaDeCredito,
	"NOTA DE CRÉDITO":             DocNotaDeCredito,
	"Factura":                     DocFactura,
}

// StandardizeDocType maps raw extracted document-type text to the standard
// FACTURA / NOTA DE CRÉDITO vocabulary, passing unknown values through.
func StandardizeDocType(raw string) string {
	if sub, ok := docTypeSubs[strings.TrimSpace(raw)]; ok {
		return sub
	}
	return raw
}

// IsCreditNote reports whether a document type (either vocabulary) denotes a
// credit note.
func IsCreditNote(docType string) bool {
	switch strings.ToUpper(strings.TrimSpace(docType)) {
	case DocCreditNote, DocNotaDeCredito, DocNotaDeCredito2:
		return true
	}
	return false
}
