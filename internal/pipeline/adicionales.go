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
	colRUC       = "R.U.C"
	colOpGravada = "Op. Gravada"
)

var adicionalesColumns = []string{
	ColSourceFile, ColContent, colRUC, colProveedorIscala, ColFactura,
	ColTipoDoc, ColAuthCode, ColTipoFac, ColFecha, ColMoneda, ColCodMoneda,
	colOpGravada, ColTasa, ColCuenta, ColError,
}

// Adicionales processes the local-supplier cohort. Identity is the RUC tax
// number (shipping lines by name); currency, account and the taxable amount
// all vary per document.
func (s *Session) Adicionales(ctx context.Context, docs []ingest.Document) *assemble.Table {
	t := assemble.New()
	total := len(docs)
	texts := s.extractTexts(ctx, docs)

	for i, doc := range docs {
		res := texts[i]
		lines := vendors.SplitLines(res.Text)

		ruc := vendors.ExtractRUC(res.Text)
		prov := vendors.ProveedorIscala(res.Text, ruc)
		if ruc == vendors.UndesiredRUC {
			ruc = ""
		}

		factura := vendors.AdicionalesFactura(res.Text)
		fecha := vendors.AdicionalesIssueDate(lines)

		moneda := normalize.Currency(vendors.AdicionalesMoneda(lines))
		codMoneda := constants.CurrencyCode(moneda)

		tipo := constants.StandardizeDocType(vendors.AdicionalesTipoDoc(prov, lines))

		gravada := normalize.Amount(normalize.CleanNumeric(
			vendors.AdicionalesOpGravada(prov, tipo, lines)))
		gravada = normalize.NegateIfCreditNote(gravada, tipo)

		factura = vendors.AdicionalesCreditNoteFactura(prov, tipo, factura, lines)

		row := assemble.Row{
			ColSourceFile:      doc.SourceFile,
			ColContent:         res.Text,
			colRUC:             ruc,
			colProveedorIscala: prov,
			ColFactura:         factura,
			ColTipoDoc:         tipo,
			ColAuthCode:        adicionalesAuthCode(tipo),
			ColTipoFac:         adicionalesTipoFactura(tipo),
			ColFecha:           fecha,
			ColMoneda:          moneda,
			ColCodMoneda:       codMoneda,
			colOpGravada:       gravada,
			ColCuenta:          constants.AccountForCode(codMoneda),
			ColError:           "",
		}
		if prov == "" {
			row[ColError] = errUnreadableFile
		}
		t.Append(row)

		s.Logger.Info("adicionales.document.ok",
			"file", doc.SourceFile,
			"supplier", prov,
			"doc_type", tipo,
			"currency", codMoneda,
			"readable", prov != "",
		)
		s.progress(i+1, total, doc.SourceFile)
	}

	refdata.FillFromReference(t, s.Ref, ColSourceFile)
	refdata.ApplyRates(t, ColFecha, s.Rates)
	t.OrderColumns(adicionalesColumns)
	t.DedupBy(ColSourceFile)
	return t
}

func adicionalesAuthCode(tipo string) any {
	switch tipo {
	case constants.DocFactura:
		return constants.AuthAdicionalesInvoice
	case constants.DocNotaDeCredito, constants.DocNotaDeCredito2:
		return constants.AuthAdicionalesCredit
	}
	return nil
}

func adicionalesTipoFactura(tipo string) any {
	switch tipo {
	case constants.DocFactura, constants.DocNotaDeCredito, constants.DocNotaDeCredito2:
		return constants.TipoFacturaAdicionales
	}
	return nil
}
