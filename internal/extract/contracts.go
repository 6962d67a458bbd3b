package extract

import "context"

// Sentinel texts returned in place of document content when extraction cannot
// produce usable text. Downstream stages treat rows carrying a sentinel as
// unreadable; they are never dropped, only flagged.
const (
	SentinelImageOnly  = "[PDF baseado em imagem - sem texto extraível]"
	SentinelUnreadable = "[Erro ao abrir/ler o PDF]"
)

// TextExtractionResult is the outcome of full-document text extraction.
type TextExtractionResult struct {
	Text     string
	Pages    int
	Sentinel bool // true when Text is one of the sentinel values
}

// TextExtractor is Stage 1: file bytes -> linearized text.
//
// Implementations never fail on malformed documents: an unreadable or
// image-only PDF yields a sentinel result, not an error.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte) TextExtractionResult
}

// SpanRow is one text line from the first page, split into ordered spans.
// The first span is the line's leading text; subsequent spans are the
// horizontally separated cells of the same line.
type SpanRow struct {
	Spans []string
}

// Text returns the leading span, or "" for an empty row.
func (r SpanRow) Text() string {
	if len(r.Spans) == 0 {
		return ""
	}
	return r.Spans[0]
}

// Col returns the n-th auxiliary span (1-based, matching the Col_1.. layout
// of the span table), or "" when absent.
func (r SpanRow) Col(n int) string {
	if n < 1 || n >= len(r.Spans) {
		return ""
	}
	return r.Spans[n]
}

// SpanExtractor reads per-line text spans from the first page only. Used by
// the Percepciones flow, whose receipts place values in separate columns of
// the same visual line. A nil row slice means the page was unreadable.
type SpanExtractor interface {
	ExtractFirstPageSpans(ctx context.Context, content []byte) []SpanRow
}
