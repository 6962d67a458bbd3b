package extract

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFAdapter extracts text from PDF bytes using ledongthuc/pdf (pure Go,
// no CGO). Lines are rebuilt from row-ordered text fragments so that the
// positional vendor rules see one visual line per text line.
type PDFAdapter struct {
	logger *slog.Logger
}

var _ TextExtractor = (*PDFAdapter)(nil)
var _ SpanExtractor = (*PDFAdapter)(nil)

func NewPDFAdapter(logger *slog.Logger) *PDFAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFAdapter{logger: logger}
}

// Gap thresholds in text-space units. Fragments closer than fragmentGap are
// glued into the same span; a jump larger than spanGap starts a new span
// (a new visual column).
const (
	fragmentGap = 1.5
	spanGap     = 15.0
)

// Extract returns the concatenated text of all pages, one line per visual
// row. Malformed or image-only PDFs yield a sentinel result, never an error.
func (a *PDFAdapter) Extract(ctx context.Context, content []byte) (res TextExtractionResult) {
	// The pdf library panics on some malformed cross-reference tables;
	// a broken upload must degrade to a sentinel row, not kill the batch.
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("extract.pdf.panic", "recovered", r)
			res = TextExtractionResult{Text: SentinelUnreadable, Sentinel: true}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return TextExtractionResult{Text: SentinelUnreadable, Sentinel: true}
	}

	var sb strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			line := joinRow(row)
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return TextExtractionResult{Text: SentinelImageOnly, Pages: pages, Sentinel: true}
	}
	return TextExtractionResult{Text: text, Pages: pages}
}

// ExtractFirstPageSpans reads the first page only and splits each visual row
// into spans by horizontal gaps. Returns nil when the page is unreadable.
func (a *PDFAdapter) ExtractFirstPageSpans(ctx context.Context, content []byte) (out []SpanRow) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("extract.spans.panic", "recovered", r)
			out = nil
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil || r.NumPage() < 1 {
		return nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil
	}

	for _, row := range rows {
		spans := splitSpans(row)
		if len(spans) > 0 {
			out = append(out, SpanRow{Spans: spans})
		}
	}
	return out
}

// joinRow flattens one row into a single line string.
func joinRow(row *pdf.Row) string {
	var sb strings.Builder
	prevEnd := -1.0
	for _, word := range row.Content {
		if sb.Len() > 0 && prevEnd >= 0 && word.X-prevEnd > fragmentGap {
			sb.WriteString(" ")
		}
		sb.WriteString(word.S)
		prevEnd = word.X + word.W
	}
	return strings.TrimSpace(sb.String())
}

// splitSpans groups a row's fragments into column spans.
func splitSpans(row *pdf.Row) []string {
	var spans []string
	var cur strings.Builder
	prevEnd := -1.0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			spans = append(spans, s)
		}
		cur.Reset()
	}
	for _, word := range row.Content {
		if prevEnd >= 0 {
			gap := word.X - prevEnd
			if gap > spanGap {
				flush()
			} else if gap > fragmentGap && cur.Len() > 0 {
				cur.WriteString(" ")
			}
		}
		cur.WriteString(word.S)
		prevEnd = word.X + word.W
	}
	flush()
	return spans
}
