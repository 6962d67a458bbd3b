// Package vendors holds the vendor identity registries and the per-vendor
// field-extraction rules. Every rule evaluation is total: a missing anchor,
// an out-of-range offset or a failed regex all degrade to "", never to a
// panic or error. Supplier layouts are closed and enumerable, so rules are
// plain data wherever possible; the handful of layouts that need bespoke
// logic register a custom step instead.
package vendors

import (
	"regexp"
	"strings"
)

// StepKind selects how a Step locates its value.
type StepKind string

const (
	// StepAnchorOffset returns the line Offset positions away from the
	// first line containing Anchor.
	StepAnchorOffset StepKind = "anchor-offset"
	// StepAnchorSplit returns the text after Anchor on the anchor line
	// itself; falls back to the line below when the remainder is empty
	// and Offset is non-zero.
	StepAnchorSplit StepKind = "anchor-split"
	// StepAnchorRegex applies Pattern to the line Offset away from the
	// anchor line and returns capture group 1 (or the whole match).
	StepAnchorRegex StepKind = "anchor-regex"
	// StepFixedLine returns the line at index Line unconditionally.
	StepFixedLine StepKind = "fixed-line"
	// StepScanRegex applies Pattern to every line in order and returns
	// the first match.
	StepScanRegex StepKind = "scan-regex"
)

// Step is one attempt at extracting a field value.
type Step struct {
	Kind    StepKind
	Anchor  string // literal marker, matched case-insensitively
	Offset  int    // line offset relative to the anchor line
	Line    int    // absolute index for StepFixedLine
	Pattern string // regex for the regex kinds; group 1 wins when present

	// DigitsOnly joins all digit runs found on the target line instead of
	// returning it verbatim (used for credit-note numbers embedded in
	// decorated lines).
	DigitsOnly bool

	re *regexp.Regexp
}

// FieldRule tries its steps in priority order and returns the first
// non-empty result ("best-of-several" composition).
type FieldRule struct {
	Steps []Step
}

// R is shorthand for building a FieldRule from steps.
func R(steps ...Step) FieldRule { return FieldRule{Steps: steps} }

func (s *Step) regex() *regexp.Regexp {
	if s.re == nil && s.Pattern != "" {
		s.re = regexp.MustCompile(s.Pattern)
	}
	return s.re
}

var digitRunRe = regexp.MustCompile(`\d+`)

// Eval runs the rule over the document lines.
func (f FieldRule) Eval(lines []string) string {
	for i := range f.Steps {
		if v := f.Steps[i].eval(lines); v != "" {
			return v
		}
	}
	return ""
}

func (s *Step) eval(lines []string) string {
	switch s.Kind {
	case StepFixedLine:
		return strings.TrimSpace(lineAt(lines, s.Line))

	case StepScanRegex:
		re := s.regex()
		if re == nil {
			return ""
		}
		for _, line := range lines {
			if m := re.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(pick(m))
			}
		}
		return ""

	case StepAnchorOffset:
		idx := findAnchor(lines, s.Anchor)
		if idx < 0 {
			return ""
		}
		target := lineAt(lines, idx+s.Offset)
		if s.DigitsOnly {
			if runs := digitRunRe.FindAllString(target, -1); runs != nil {
				return strings.Join(runs, " ")
			}
		}
		return strings.TrimSpace(target)

	case StepAnchorSplit:
		idx := findAnchor(lines, s.Anchor)
		if idx < 0 {
			return ""
		}
		line := lines[idx]
		pos := strings.Index(strings.ToUpper(line), strings.ToUpper(s.Anchor))
		rest := strings.TrimSpace(line[pos+len(s.Anchor):])
		if rest == "" && s.Offset != 0 {
			rest = strings.TrimSpace(lineAt(lines, idx+s.Offset))
		}
		return rest

	case StepAnchorRegex:
		idx := findAnchor(lines, s.Anchor)
		if idx < 0 {
			return ""
		}
		re := s.regex()
		if re == nil {
			return ""
		}
		if m := re.FindStringSubmatch(lineAt(lines, idx+s.Offset)); m != nil {
			return strings.TrimSpace(pick(m))
		}
		return ""
	}
	return ""
}

func pick(m []string) string {
	if len(m) > 1 && m[1] != "" {
		return m[1]
	}
	return m[0]
}

// findAnchor returns the index of the first line containing anchor,
// case-insensitively, or -1.
func findAnchor(lines []string, anchor string) int {
	up := strings.ToUpper(anchor)
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), up) {
			return i
		}
	}
	return -1
}

// lineAt is a bounds-checked line read; out-of-range indexes yield "".
func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

// containsLine reports whether any line contains marker (case-insensitive).
func containsLine(lines []string, marker string) bool {
	return findAnchor(lines, marker) >= 0
}

// SplitLines splits document text into lines the way every rule expects.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}
