package pipeline

import (
	"context"

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
	"github.com/ThiagoElux01/Comex-app/internal/refdata"
	"github.com/ThiagoElux01/Comex-app/internal/vendors"
)

const (
	colProveedor       = "Proveedor"
	colProveedorIscala = "Proveedor Iscala"
	colAmount          = "Amount"
)

var externosColumns = []string{
	ColSourceFile, ColContent, colProveedor, colProveedorIscala, ColFactura,
	ColTipoDoc, ColAuthCode, ColTipoFac, ColFecha, ColMoneda, ColCodMoneda,
	colAmount, ColTasa, ColCuenta, ColError,
}

// Externos processes the international-supplier cohort. Every document is
// billed in dollars, so the currency columns are fixed; the supplier
// identity drives all field extraction.
func (s *Session) Externos(ctx context.Context, docs []ingest.Document) *assemble.Table {
	t := assemble.New()
	total := len(docs)
	texts := s.extractTexts(ctx, docs)

	for i, doc := range docs {
		res := texts[i]
		lines := vendors.SplitLines(res.Text)

		vendor := s.Registry.Resolve(res.Text)
		code := vendor.Code

		factura := vendors.CleanFactura(vendors.ExternosFactura(code, lines))
		tipo := vendors.ExternosDocType(code, lines)
		fecha := vendors.ExternosIssueDate(code, lines)

		amount := normalize.Amount(vendors.ExternosAmount(code, lines))
		amount = normalize.NegateIfCreditNote(amount, tipo)

		row := assemble.Row{
			ColSourceFile:      doc.SourceFile,
			ColContent:         res.Text,
			colProveedor:       vendor.Name,
			colProveedorIscala: code,
			ColFactura:         factura,
			ColTipoDoc:         tipo,
			ColAuthCode:        externosAuthCode(tipo),
			ColTipoFac:         externosTipoFactura(tipo),
			ColFecha:           fecha,
			ColMoneda:          constants.CurrencyUSD,
			ColCodMoneda:       constants.CodeUSD,
			colAmount:          amount,
			ColCuenta:          constants.AccountUSD,
			ColError:           "",
		}
		if vendor.Name == "" {
			row[ColError] = errUnreadableDoc
		}
		t.Append(row)

		s.Logger.Info("externos.document.ok",
			"file", doc.SourceFile,
			"supplier", code,
			"doc_type", tipo,
			"readable", vendor.Name != "",
		)
		s.progress(i+1, total, doc.SourceFile)
	}

	refdata.FillFromReference(t, s.Ref, ColSourceFile)
	refdata.ApplyRates(t, ColFecha, s.Rates)
	refdata.AttachPEC(t, s.Ref)
	t.OrderColumns(externosColumns)
	t.DedupBy(ColSourceFile)
	return t
}

func externosAuthCode(tipo string) any {
	switch tipo {
	case constants.DocInvoice:
		return constants.AuthExternosInvoice
	case constants.DocCreditNote:
		return constants.AuthExternosCreditNote
	}
	return nil
}

func externosTipoFactura(tipo string) any {
	switch tipo {
	case constants.DocInvoice, constants.DocCreditNote:
		return constants.TipoFacturaExternos
	}
	return nil
}
