package vendors

import (
	"testing"

	"github.com/ThiagoElux01/Comex-app/constants"
)

func TestCleanFactura(t *testing.T) {
	tests := []struct{ in, want string }{
		{"No: 6591041566", "6591041566"},
		{"Nº 123-456", "123-456"},
		{"invoice eh12345678", "INVOICEEH12345678"},
		{" MD2024, 001. ", "MD2024001"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanFactura(tt.in); got != tt.want {
			t.Errorf("CleanFactura(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExternosFacturaSEI(t *testing.T) {
	lines := []string{
		"INVOICE",
		"6591041566",
		"something",
		"INVOICE DATE",
		"2024.05.01",
	}
	if got := ExternosFactura(CodeSEI, lines); got != "6591041566" {
		t.Errorf("ExternosFactura = %q, want 6591041566", got)
	}
}

func TestExternosFacturaSEICreditNote(t *testing.T) {
	lines := []string{
		"CREDIT NOTE",
		"* 6591099999 *",
		"decor",
		"CREDIT NOTE DATE",
		"2024.05.01",
	}
	if got := ExternosFactura(CodeSEI, lines); got != "6591099999" {
		t.Errorf("ExternosFactura = %q, want 6591099999", got)
	}
}

func TestExternosFactura7DQJoin(t *testing.T) {
	lines := []string{
		"TAS-2024",
		"Trade Air System",
		"Customer Number",
		"EL-778",
		"INV-0045",
	}
	if got := ExternosFactura(Code7DQ, lines); got != "EL-778 INV-0045 TAS-2024" {
		t.Errorf("ExternosFactura = %q", got)
	}
}

func TestExternosFacturaUnknownCode(t *testing.T) {
	if got := ExternosFactura("NOPE", []string{"a", "b"}); got != "" {
		t.Errorf("ExternosFactura = %q, want empty", got)
	}
}

func TestExternosDocType(t *testing.T) {
	if got := ExternosDocType(CodeSEI, []string{"invoice", "x"}); got != "INVOICE" {
		t.Errorf("SEI doc type = %q", got)
	}
	if got := ExternosDocType(Code5BE, []string{"COMMERCIAL INVOICE", "x"}); got != constants.DocInvoice {
		t.Errorf("5BE doc type = %q", got)
	}
	if got := ExternosDocType(Code5BE, []string{"CREDIT NOTE", "x"}); got != constants.DocCreditNote {
		t.Errorf("5BE credit note = %q", got)
	}
	if got := ExternosDocType(CodeUS1239, []string{"REF CLAIM 445", "x"}); got != constants.DocCreditNote {
		t.Errorf("US1239 claim = %q", got)
	}
	if got := ExternosDocType("NOPE", []string{"x"}); got != "" {
		t.Errorf("unknown code = %q", got)
	}
}

func TestExternosIssueDate(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		lines []string
		want  string
	}{
		{
			name: "SEI dotted under anchor",
			code: CodeSEI,
			lines: []string{
				"INVOICE", "6591041566", "INVOICE DATE", "2024.05.01",
			},
			want: "01/05/2024",
		},
		{
			name:  "CLH long Spanish form",
			code:  CodeCLH,
			lines: []string{"Santiago, 3 de marzo de 2024"},
			want:  "03/03/2024",
		},
		{
			name:  "5DL month-dash-two-digit-year",
			code:  Code5DL,
			lines: []string{"Date: 15-Dec-23"},
			want:  "15/12/2023",
		},
		{
			name:  "5DU dotted-comma rebuild",
			code:  Code5DU,
			lines: []string{"DATE: Jan.5,2024"},
			want:  "05/01/2024",
		},
		{
			name:  "Ningbo ISO",
			code:  CodeNingbo,
			lines: []string{"NINGBO HUACAI", "DATE 2024-05-01"},
			want:  "01/05/2024",
		},
		{
			name:  "Ningbo long textual",
			code:  CodeNingbo,
			lines: []string{"issued 5th, January 2024"},
			want:  "05/01/2024",
		},
		{
			name:  "US1239 claim takes first US-format date",
			code:  CodeUS1239,
			lines: []string{"REF CLAIM 1234", "processed 1/2/24 by agent"},
			want:  "02/01/2024",
		},
		{
			name:  "no date",
			code:  CodeSEI,
			lines: []string{"nothing here"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExternosIssueDate(tt.code, tt.lines); got != tt.want {
				t.Errorf("ExternosIssueDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFiveBEDate(t *testing.T) {
	// Date after the label on the same line.
	lines := []string{"HOMA APPLIANCES CO., LTD", "DATE: 5/Jan/2024"}
	if got := fiveBEDate(lines); got != "05/01/2024" {
		t.Errorf("same-line = %q", got)
	}
	// Date on the line below the label.
	lines = []string{"DATE", "2024-05-01"}
	if got := fiveBEDate(lines); got != "01/05/2024" {
		t.Errorf("next-line = %q", got)
	}
	// Whole-document fallback.
	lines = []string{"no labels", "shipped 15-01-2024 by sea"}
	if got := fiveBEDate(lines); got != "15/01/2024" {
		t.Errorf("fallback = %q", got)
	}
}

func TestExternosAmount(t *testing.T) {
	lines := []string{
		"ITEMS", "US$ 12,500.00", "filler", "QUANTITIES & DESCRIPTIONS",
	}
	if got := ExternosAmount(CodeSnowky, lines); got != "US$ 12,500.00" {
		t.Errorf("Snowky amount = %q", got)
	}

	lines = []string{"GRAND TOTAL USA $ 100 200 3,456.78"}
	if got := ExternosAmount(CodeUS1239, lines); got != "3,456.78" {
		t.Errorf("US1239 amount = %q", got)
	}

	lines = []string{"TOTAL AMOUNT(U.S DOLLAR)", "9,999.99"}
	if got := ExternosAmount(CodeSEI, lines); got != "9,999.99" {
		t.Errorf("SEI amount = %q", got)
	}

	if got := ExternosAmount("NOPE", lines); got != "" {
		t.Errorf("unknown code amount = %q", got)
	}
}
