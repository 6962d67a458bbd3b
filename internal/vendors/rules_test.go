package vendors

import "testing"

func TestFieldRuleBestOf(t *testing.T) {
	lines := []string{"HEADER", "INVOICE NO: A-100", "TOTAL"}
	rule := R(
		Step{Kind: StepAnchorOffset, Anchor: "MISSING ANCHOR", Offset: 1},
		Step{Kind: StepAnchorSplit, Anchor: "INVOICE NO:"},
	)
	if got := rule.Eval(lines); got != "A-100" {
		t.Errorf("Eval = %q, want A-100", got)
	}
}

func TestStepAnchorOffset(t *testing.T) {
	lines := []string{"CN-2024-001", "decor *** 555 777 ***", "CREDIT NOTE DATE", "2024.05.01"}

	s := Step{Kind: StepAnchorOffset, Anchor: "credit note date", Offset: -2}
	if got := s.eval(lines); got != "CN-2024-001" {
		t.Errorf("eval = %q, want CN-2024-001", got)
	}

	// DigitsOnly joins digit runs on the target line.
	s = Step{Kind: StepAnchorOffset, Anchor: "CREDIT NOTE DATE", Offset: -1, DigitsOnly: true}
	if got := s.eval(lines); got != "555 777" {
		t.Errorf("eval = %q, want %q", got, "555 777")
	}

	// Out-of-range offsets degrade to "".
	s = Step{Kind: StepAnchorOffset, Anchor: "CREDIT NOTE DATE", Offset: -10}
	if got := s.eval(lines); got != "" {
		t.Errorf("eval = %q, want empty", got)
	}
}

func TestStepAnchorSplit(t *testing.T) {
	lines := []string{"INV. NO: GZ-778", "next line"}
	s := Step{Kind: StepAnchorSplit, Anchor: "INV. NO:"}
	if got := s.eval(lines); got != "GZ-778" {
		t.Errorf("eval = %q, want GZ-778", got)
	}

	// Empty remainder falls through to the offset line.
	lines = []string{"FACTURA COMERCIAL", "BR-900123"}
	s = Step{Kind: StepAnchorSplit, Anchor: "FACTURA COMERCIAL", Offset: 1}
	if got := s.eval(lines); got != "BR-900123" {
		t.Errorf("eval = %q, want BR-900123", got)
	}
}

func TestStepScanRegex(t *testing.T) {
	lines := []string{"header", "ref MDOK12345 here", "MDR9999"}
	s := Step{Kind: StepScanRegex, Pattern: `^.*(?:MDOK|MDR).*$`}
	if got := s.eval(lines); got != "ref MDOK12345 here" {
		t.Errorf("eval = %q", got)
	}

	// Group 1 wins when present.
	s = Step{Kind: StepScanRegex, Pattern: `(MD.*)`}
	if got := s.eval(lines); got != "MDOK12345 here" {
		t.Errorf("eval = %q, want MDOK12345 here", got)
	}
}

func TestStepAnchorRegex(t *testing.T) {
	lines := []string{"RUC: 20123456789", "skip", "invoice EH12345678 issued"}
	s := Step{Kind: StepAnchorRegex, Anchor: "RUC:", Offset: 2, Pattern: `\bEH\d{8}\b`}
	if got := s.eval(lines); got != "EH12345678" {
		t.Errorf("eval = %q, want EH12345678", got)
	}
}

func TestStepFixedLine(t *testing.T) {
	lines := []string{" first ", "second"}
	s := Step{Kind: StepFixedLine, Line: 0}
	if got := s.eval(lines); got != "first" {
		t.Errorf("eval = %q, want first", got)
	}
	s = Step{Kind: StepFixedLine, Line: 9}
	if got := s.eval(lines); got != "" {
		t.Errorf("eval = %q, want empty", got)
	}
}
