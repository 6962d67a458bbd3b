package normalize

import (
	"regexp"
	"strings"
	"time"
)

// CanonicalDateLayout is the output layout for every normalized date.
const CanonicalDateLayout = "02/01/2006"

// monthSubs translates Portuguese and Spanish month names (full and
// abbreviated, including the dotted variants seen on Chinese-supplier
// invoices) to the English three-letter abbreviation Go's parser accepts.
var monthSubs = []struct{ from, to string }{
	// Portuguese, full
	{"janeiro", "Jan"}, {"fevereiro", "Feb"}, {"março", "Mar"}, {"abril", "Apr"},
	{"maio", "May"}, {"junho", "Jun"}, {"julho", "Jul"}, {"agosto", "Aug"},
	{"setembro", "Sep"}, {"outubro", "Oct"}, {"novembro", "Nov"}, {"dezembro", "Dec"},
	// Spanish, full
	{"enero", "Jan"}, {"febrero", "Feb"}, {"marzo", "Mar"},
	{"mayo", "May"}, {"junio", "Jun"}, {"julio", "Jul"},
	{"septiembre", "Sep"}, {"sept", "Sep"}, {"octubre", "Oct"},
	{"noviembre", "Nov"}, {"diciembre", "Dec"},
	// Abbreviations shared or specific
	{"ene", "Jan"}, {"jan", "Jan"},
	{"fev", "Feb"}, {"feb", "Feb"},
	{"mar", "Mar"},
	{"abr", "Apr"}, {"apr", "Apr"},
	{"mai", "May"}, {"may", "May"},
	{"jun", "Jun"},
	{"jul", "Jul"},
	{"ago", "Aug"}, {"aug", "Aug"},
	{"set", "Sep"}, {"sep", "Sep"},
	{"out", "Oct"}, {"oct", "Oct"},
	{"nov", "Nov"},
	{"dez", "Dec"}, {"dic", "Dec"}, {"dec", "Dec"},
}

var monthRe = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(monthSubs))
	for _, s := range monthSubs {
		m[s.from] = regexp.MustCompile(`(?i)\b` + s.from + `\b`)
	}
	return m
}()

// TranslateMonths rewrites PT/ES month names inside s to English
// abbreviations. Longer names are substituted first so that "marzo" never
// degrades to "Marzo" via the "mar" abbreviation.
func TranslateMonths(s string) string {
	for _, sub := range monthSubs {
		s = monthRe[sub.from].ReplaceAllString(s, sub.to)
	}
	return s
}

// Date parses raw against the candidate layouts in order and returns the
// canonical DD/MM/YYYY string, or "" when no candidate matches. Month names
// are translated before parsing. Two-digit years are expanded with a fixed
// pivot: <50 becomes 20xx, >=50 becomes 19xx. Never panics.
func Date(raw string, layouts []string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = TranslateMonths(s)
	for _, layout := range layouts {
		dt, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if strings.Contains(layout, "06") && !strings.Contains(layout, "2006") {
			dt = applyYearPivot(dt)
		}
		return dt.Format(CanonicalDateLayout)
	}
	return ""
}

// applyYearPivot replaces Go's 69/68 two-digit-year split with the ledger's
// 50/49 split.
func applyYearPivot(dt time.Time) time.Time {
	yy := dt.Year() % 100
	var full int
	if yy < 50 {
		full = 2000 + yy
	} else {
		full = 1900 + yy
	}
	if full == dt.Year() {
		return dt
	}
	return time.Date(full, dt.Month(), dt.Day(), 0, 0, 0, 0, time.UTC)
}

var dateFragmentRe = regexp.MustCompile(
	`(\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4})` +
		`|(\d{1,2}\s+(?:de\s+)?[A-Za-zÁÉÍÓÚáéíóúñÑçÇâêôãõ]{3,15}\s+(?:de\s+)?\d{2,4})` +
		`|(\d{1,2}[-/][A-Za-zçÇñÑ]{3,9}[-/]\d{2,4})`)

// universalLayouts is the candidate list for dates of unknown provenance
// (reference-table cells). Day-first layouts take priority.
var universalLayouts = []string{
	"02/01/2006", "02-01-2006",
	"2006/01/02", "2006-01-02",
	"01/02/2006", "01-02-2006",
	"02/01/06", "02-01-06",
	"2 Jan 2006", "2 January 2006",
	"2 Jan 06", "2 January 06",
	"2-Jan-2006", "2-Jan-06",
	"2/Jan/2006", "2/Jan/06",
	"2 de Jan de 2006",
}

// FixDate converts an irregular date string of any of the known layouts to
// the canonical DD/MM/YYYY, returning "" when nothing parses. Invisible
// characters are stripped and a date-looking fragment is isolated first.
func FixDate(raw string) string {
	s := CleanInvisible(raw)
	if s == "" {
		return ""
	}
	if m := dateFragmentRe.FindString(s); m != "" {
		s = m
	}
	return Date(s, universalLayouts)
}

var invisibleReplacer = strings.NewReplacer("\u200b", "", "\u00a0", " ")
var spaceRe = regexp.MustCompile(`\s+`)

// CleanInvisible strips zero-width and no-break characters and collapses
// whitespace runs. Reference-table cells pasted from SharePoint carry both.
func CleanInvisible(s string) string {
	s = invisibleReplacer.Replace(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
