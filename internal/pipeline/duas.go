package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
	"github.com/ThiagoElux01/Comex-app/internal/refdata"
	"github.com/ThiagoElux01/Comex-app/internal/vendors"
)

const (
	colDUA      = "DUA"
	colMontoCIF = "Monto CIF"
)

var duasColumns = []string{
	ColSourceFile, colDUA, ColFecha, colMontoCIF, ColMoneda, ColCodMoneda,
	ColTasa, ColCuenta, ColError,
}

var (
	// Customs declaration numbers: office, year, regime 10, serial.
	duaNumberRe   = regexp.MustCompile(`\b(\d{3}-\d{4}-10-\d{6})\b`)
	duaDateRe     = regexp.MustCompile(`\b\d{2}[/-]\d{2}[/-]\d{4}\b`)
	duaLastNumRe  = regexp.MustCompile(`\d[\d.,]*`)
	duaDateLayout = []string{"02/01/2006", "02-01-2006"}
)

// DUAS processes customs import declarations: declaration number, numbering
// date and the CIF customs value, always dollar-denominated. The rate join
// converts the CIF value for the ledger load.
func (s *Session) DUAS(ctx context.Context, docs []ingest.Document) *assemble.Table {
	t := assemble.New()
	total := len(docs)
	texts := s.extractTexts(ctx, docs)

	for i, doc := range docs {
		res := texts[i]
		lines := vendors.SplitLines(res.Text)

		dua := ""
		if m := duaNumberRe.FindStringSubmatch(res.Text); m != nil {
			dua = m[1]
		}

		row := assemble.Row{
			ColSourceFile: doc.SourceFile,
			colDUA:        dua,
			ColFecha:      duaFecha(lines),
			colMontoCIF:   duaCIF(lines),
			ColMoneda:     constants.CurrencyUSD,
			ColCodMoneda:  constants.CodeUSD,
			ColCuenta:     constants.AccountUSD,
			ColError:      "",
		}
		if dua == "" {
			row[ColError] = errUnreadableFile
		}
		t.Append(row)

		s.Logger.Info("duas.document.ok",
			"file", doc.SourceFile,
			"dua", dua,
			"readable", dua != "",
		)
		s.progress(i+1, total, doc.SourceFile)
	}

	refdata.FillFromReference(t, s.Ref, ColSourceFile)
	refdata.ApplyRates(t, ColFecha, s.Rates)
	t.OrderColumns(duasColumns)
	t.DedupBy(ColSourceFile)
	return t
}

// duaFecha prefers the date on the numbering line, falling back to the
// first day-first date anywhere in the declaration.
func duaFecha(lines []string) string {
	for _, line := range lines {
		folded := strings.ToUpper(normalize.FoldAccents(line))
		if strings.Contains(folded, "FECHA DE NUMERACION") {
			if m := duaDateRe.FindString(line); m != "" {
				return normalize.Date(strings.ReplaceAll(m, "-", "/"), duaDateLayout)
			}
		}
	}
	for _, line := range lines {
		if m := duaDateRe.FindString(line); m != "" {
			return normalize.Date(strings.ReplaceAll(m, "-", "/"), duaDateLayout)
		}
	}
	return ""
}

// duaCIF takes the last number on the first line mentioning the CIF value.
func duaCIF(lines []string) *float64 {
	for _, line := range lines {
		up := strings.ToUpper(line)
		if strings.Contains(up, "TOTAL CIF") || strings.Contains(up, "VALOR CIF") ||
			strings.Contains(up, "CIF US$") {
			nums := duaLastNumRe.FindAllString(line, -1)
			if len(nums) > 0 {
				return normalize.Amount(nums[len(nums)-1])
			}
		}
	}
	return nil
}
