// Package pipeline wires ingestion, extraction, normalization and
// reconciliation into the per-cohort document flows. Each flow turns a batch
// of ingested files into one result table, one row per source file; rows
// with extraction failures carry an Error value and are never dropped.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/async"
	"github.com/ThiagoElux01/Comex-app/internal/extract"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
	"github.com/ThiagoElux01/Comex-app/internal/refdata"
	"github.com/ThiagoElux01/Comex-app/internal/vendors"
)

// Column names shared across flows.
const (
	ColSourceFile = "source_file"
	ColContent    = "conteudo_pdf"
	ColError      = "Error"
	ColFactura    = "Factura"
	ColTipoDoc    = "Tipo Doc"
	ColAuthCode   = "Cód. de Autorización"
	ColTipoFac    = "Tipo de Factura"
	ColFecha      = "Fecha de Emisión"
	ColMoneda     = "Moneda"
	ColCodMoneda  = "Cod. Moneda"
	ColCuenta     = "Cuenta"
	ColTasa       = "Tasa"
)

// Error messages surfaced in the Error column. The two cohorts historically
// use different wordings; both are load-bearing for the people reading the
// sheets.
const (
	errUnreadableDoc  = "Document can't be read"
	errUnreadableFile = "Can't read the file"
)

// ProgressFunc receives an advisory notification after each processed file.
type ProgressFunc func(done, total int, file string)

// Session carries the shared collaborators for one processing run. Rates
// and Ref are optional; a nil table degrades the corresponding join to a
// no-op.
type Session struct {
	Logger   *slog.Logger
	Text     extract.TextExtractor
	Spans    extract.SpanExtractor
	Pool     *async.ExtractPool
	Registry *vendors.Registry
	Rates    *refdata.RateTable
	Ref      *assemble.Table
	Progress ProgressFunc
}

// NewSession builds a session around the given extractor, defaulting the
// logger and the supplier registry.
func NewSession(logger *slog.Logger, text extract.TextExtractor, spans extract.SpanExtractor) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		Logger:   logger,
		Text:     text,
		Spans:    spans,
		Registry: vendors.ExternosRegistry(),
	}
}

func (s *Session) progress(done, total int, file string) {
	if s.Progress != nil {
		s.Progress(done, total, file)
	}
}

// extractTexts runs text extraction for the whole batch, through the worker
// pool when one is configured. Results are index-aligned with docs.
func (s *Session) extractTexts(ctx context.Context, docs []ingest.Document) []extract.TextExtractionResult {
	if s.Pool != nil {
		contents := make([][]byte, len(docs))
		for i, d := range docs {
			contents[i] = d.Data
		}
		return s.Pool.ExtractAll(ctx, contents)
	}
	out := make([]extract.TextExtractionResult, len(docs))
	for i, d := range docs {
		out[i] = s.Text.Extract(ctx, d.Data)
	}
	return out
}
