package pipeline

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/extract"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
	"github.com/ThiagoElux01/Comex-app/internal/refdata"
)

// Percepciones columns. The flow reads the first page only: SUNAT
// liquidation receipts put each value in a separate span of the same visual
// line, so extraction works on span rows instead of plain text.
const (
	colPercSourceFile = "Source_File"
	colNoLiquidacion  = "No_Liquidacion"
	colCDA            = "CDA"
	colPercFecha      = "Fecha"
	colMonto          = "Monto"
	colCodProveedor   = "COD PROVEEDOR"
	colPercCodMoneda  = "COD MONEDA"
)

// Fixed values of the Percepciones load. SUNAT is the single counterparty.
const (
	percepcionesProveedor = "13131295"
	percepcionesTasa      = 1.00
)

var percepcionesColumns = []string{
	colPercSourceFile, colCodProveedor, colNoLiquidacion, colPercFecha,
	colCDA, colMonto, ColTasa, colPercCodMoneda, ColAuthCode, ColTipoFac,
	ColCuenta, ColError,
}

var (
	cdaMarkerRe     = regexp.MustCompile(`\bC\.?\s*D\.?\s*A\.?\b`)
	afterColonRe    = regexp.MustCompile(`:\s*(.+)$`)
	dashSpacingRe   = regexp.MustCompile(`\s*-\s*`)
	deFechaRe       = regexp.MustCompile(`DE FECHA\s*:\s*(\d{2}[/-]\d{2}[/-]\d{4})`)
	eightDigitsRe   = regexp.MustCompile(`\b(\d{8})\b`)
	cdaReshapeRe    = regexp.MustCompile(`\b(\d{2,3})\D+.*?(\d{6,})\b`)
	liqSuffixRe     = regexp.MustCompile(`(-25|-26|-24|-23|-27)\b`)
	percMontoJunkRe = regexp.MustCompile(`[^0-9.]`)
)

// fieldsOfRow holds the per-line extraction results before consolidation.
type fieldsOfRow struct {
	noLiq string
	cda   string
	fecha string
	monto string
}

// Percepciones processes SUNAT perception liquidation receipts. Values are
// collected per span row and consolidated per file, first non-empty wins.
func (s *Session) Percepciones(ctx context.Context, docs []ingest.Document) *assemble.Table {
	t := assemble.New()
	total := len(docs)

	for i, doc := range docs {
		rows := s.Spans.ExtractFirstPageSpans(ctx, doc.Data)
		fields := consolidate(extractSpanFields(rows))

		monto := parseMonto(fields.monto)
		noLiq := liqSuffixRe.ReplaceAllString(fields.noLiq, "")

		row := assemble.Row{
			colPercSourceFile: doc.SourceFile,
			colCodProveedor:   percepcionesProveedor,
			colNoLiquidacion:  noLiq,
			colPercFecha:      strings.ReplaceAll(fields.fecha, "/", ""),
			colCDA:            reshapeCDA(fields.cda),
			colMonto:          monto,
			ColTasa:           percepcionesTasa,
			colPercCodMoneda:  constants.CodePEN,
			ColAuthCode:       constants.AuthPercepciones,
			ColTipoFac:        constants.TipoFacturaPercepciones,
			ColCuenta:         constants.AccountPEN,
			ColError:          "",
		}
		if strings.TrimSpace(noLiq) == "" {
			row[ColError] = errUnreadableFile
		}
		t.Append(row)

		s.Logger.Info("percepciones.document.ok",
			"file", doc.SourceFile,
			"liquidation", noLiq,
			"readable", noLiq != "",
		)
		s.progress(i+1, total, doc.SourceFile)
	}

	refdata.FillFromReference(t, s.Ref, colPercSourceFile)
	t.OrderColumns(percepcionesColumns)
	t.DedupBy(colPercSourceFile)
	return t
}

// extractSpanFields runs the per-line rules over the first-page span rows.
func extractSpanFields(rows []extract.SpanRow) []fieldsOfRow {
	out := make([]fieldsOfRow, len(rows))
	for i, row := range rows {
		var next *extract.SpanRow
		if i+1 < len(rows) {
			next = &rows[i+1]
		}
		out[i] = fieldsOfRow{
			noLiq: extractNoLiquidacion(row),
			cda:   extractCDA(row, next),
			fecha: extractPercFecha(row),
			monto: extractMonto(row, next),
		}
	}
	return out
}

// consolidate keeps the first non-empty value of each field across the
// page's rows.
func consolidate(rows []fieldsOfRow) fieldsOfRow {
	var out fieldsOfRow
	for _, r := range rows {
		if out.noLiq == "" {
			out.noLiq = r.noLiq
		}
		if out.cda == "" {
			out.cda = r.cda
		}
		if out.fecha == "" {
			out.fecha = r.fecha
		}
		if out.monto == "" {
			out.monto = r.monto
		}
	}
	return out
}

func upperFolded(s string) string {
	return strings.ToUpper(normalize.FoldAccents(normalize.CleanInvisible(s)))
}

func extractNoLiquidacion(row extract.SpanRow) string {
	text := upperFolded(row.Text())
	if strings.Contains(text, "NUMERO DE LIQUIDACION") && strings.Contains(text, ":") {
		_, after, _ := strings.Cut(text, ":")
		return strings.TrimSpace(after)
	}
	if strings.Contains(text, "NUMERO DE LIQU") {
		return normalize.CleanInvisible(row.Col(1))
	}
	return ""
}

func extractCDA(row extract.SpanRow, next *extract.SpanRow) string {
	text := upperFolded(row.Text())
	if !cdaMarkerRe.MatchString(text) {
		return ""
	}

	tidy := func(s string) string {
		s = strings.ReplaceAll(normalize.CleanInvisible(s), " ", "")
		return dashSpacingRe.ReplaceAllString(s, "-")
	}

	// Value usually sits in an auxiliary span of the marker line.
	for n := 1; n <= 4; n++ {
		if cand := strings.TrimSpace(row.Col(n)); cand != "" {
			return tidy(cand)
		}
	}
	// Same line after the colon.
	if m := afterColonRe.FindStringSubmatch(text); m != nil {
		return tidy(m[1])
	}
	// Fallback: the line below, unless it repeats the marker.
	if next != nil {
		nxt := normalize.CleanInvisible(next.Text())
		if nxt != "" && !cdaMarkerRe.MatchString(upperFolded(nxt)) {
			return tidy(nxt)
		}
		for n := 1; n <= 3; n++ {
			if cand := strings.TrimSpace(next.Col(n)); cand != "" {
				return tidy(cand)
			}
		}
	}
	return ""
}

// extractPercFecha reads the receipt date, either spelled "DE FECHA :
// dd/mm/yyyy" in the line text or as a bare yyyymmdd in the first auxiliary
// span. Output is dd/mm/yy.
func extractPercFecha(row extract.SpanRow) string {
	text := upperFolded(row.Text())
	if m := deFechaRe.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], "-", "/")
		if dt, err := time.Parse("02/01/2006", raw); err == nil {
			return dt.Format("02/01/06")
		}
		return ""
	}
	col1 := normalize.CleanInvisible(row.Col(1))
	if m := eightDigitsRe.FindStringSubmatch(col1); m != nil {
		if dt, err := time.Parse("20060102", m[1]); err == nil {
			return dt.Format("02/01/06")
		}
	}
	return ""
}

func extractMonto(row extract.SpanRow, next *extract.SpanRow) string {
	text := upperFolded(row.Text())
	if strings.Contains(text, "SUNAT PERCEPCION IGV") && next != nil {
		return strings.TrimSpace(next.Text())
	}
	return ""
}

// parseMonto converts the raw amount to a two-decimal float; commas are
// thousands separators on these receipts.
func parseMonto(raw string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" || percMontoJunkRe.MatchString(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f = math.Round(f*100) / 100
	return &f
}

// reshapeCDA rewrites "<dd> ... <dddddd>" shapes to "dd-dddddd"; anything
// else passes through.
func reshapeCDA(v string) string {
	if m := cdaReshapeRe.FindStringSubmatch(v); m != nil {
		return m[1] + "-" + m[2]
	}
	return v
}
