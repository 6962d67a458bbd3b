package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/xuri/excelize/v2"
)

func TestCellString(t *testing.T) {
	v := 3.75
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{&v, "3.75"},
		{(*float64)(nil), ""},
		{2.5, "2.5"},
		{7, "7"},
		{struct{}{}, ""},
	}
	for _, tt := range tests {
		if got := CellString(tt.in); got != tt.want {
			t.Errorf("CellString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleTable() *assemble.Table {
	amt := 1234.5
	tbl := assemble.New("Factura", "Monto", "Error")
	tbl.Append(assemble.Row{"Factura": "F001-123", "Monto": &amt, "Error": ""})
	tbl.Append(assemble.Row{"Factura": "F001-124", "Monto": (*float64)(nil), "Error": "Can't read the file"})
	return tbl
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(sampleTable(), path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "Factura,Monto,Error" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "F001-123,1234.5,") {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestWritePRN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.prn")
	if err := WritePRN(sampleTable(), path, nil); err != nil {
		t.Fatalf("WritePRN: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\r\n") {
		t.Fatal("missing CRLF line ending")
	}
	lines := strings.Split(strings.TrimSuffix(content, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	lineWidth := 0
	for _, w := range LoadWidths {
		lineWidth += w
	}
	for i, line := range lines {
		if len(line) != lineWidth {
			t.Errorf("line %d width = %d, want %d", i, len(line), lineWidth)
		}
	}
	// Amounts render with exactly two decimals.
	if !strings.Contains(lines[0], "1234.50") {
		t.Errorf("line 0 = %q, want two-decimal amount", lines[0])
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Errorf("pad = %q", got)
	}
	if got := pad("abcdef", 4); got != "abcd" {
		t.Errorf("truncate = %q", got)
	}
}

func TestPadCountsRunes(t *testing.T) {
	// Accented values truncate at a rune boundary, never mid-byte.
	if got := pad("EMISIÓN", 6); got != "EMISIÓ" {
		t.Errorf("truncate = %q, want EMISIÓ", got)
	}
	got := pad("AÑO", 6)
	if got != "AÑO   " {
		t.Errorf("pad = %q, want three trailing spaces", got)
	}
	if n := utf8.RuneCountInString(got); n != 6 {
		t.Errorf("padded width = %d runes, want 6", n)
	}
}

func TestPrnValueRounding(t *testing.T) {
	v := 2.5
	if got := prnValue(&v); got != "2.50" {
		t.Errorf("prnValue = %q", got)
	}
	half := 1.25
	if got := prnValue(half); got != "1.25" {
		t.Errorf("prnValue(1.25) = %q", got)
	}
	if got := prnValue((*float64)(nil)); got != "" {
		t.Errorf("prnValue(nil) = %q", got)
	}
	if got := prnValue("F001"); got != "F001" {
		t.Errorf("prnValue(string) = %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(sampleTable(), path, ""); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != DefaultSheetName {
		t.Errorf("sheet name = %q, want %q", name, DefaultSheetName)
	}
	rows, err := f.GetRows(DefaultSheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Factura" {
		t.Errorf("header cell = %q", rows[0][0])
	}
	if rows[1][0] != "F001-123" {
		t.Errorf("first data cell = %q", rows[1][0])
	}
}
