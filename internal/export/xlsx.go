package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/common"
)

// DefaultSheetName is the worksheet the operations team expects.
const DefaultSheetName = "Dados"

// WriteXLSX writes the table as a styled workbook: colored bold header,
// thin borders, per-column width fitted to content, frozen header row and
// an autofilter over the whole range.
func WriteXLSX(t *assemble.Table, path, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return common.NewAppError(common.CodeInternal, "renaming sheet", err)
	}

	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return common.NewAppError(common.CodeInternal, "writing header", err)
		}
	}
	for rowIdx, r := range t.Rows {
		for colIdx, col := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, cellValue(r[col])); err != nil {
				return common.NewAppError(common.CodeInternal, "writing cell", err)
			}
		}
	}

	if err := styleHeader(f, sheetName, len(t.Columns)); err != nil {
		return err
	}
	autofitColumns(f, sheetName, t)

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return common.NewAppError(common.CodeInternal, "freezing header row", err)
	}

	lastCell, _ := excelize.CoordinatesToCellName(max(len(t.Columns), 1), len(t.Rows)+1)
	if err := f.AutoFilter(sheetName, "A1:"+lastCell, nil); err != nil {
		return common.NewAppError(common.CodeInternal, "setting autofilter", err)
	}

	if err := f.SaveAs(path); err != nil {
		return common.NewAppError(common.CodeInternal,
			fmt.Sprintf("saving %s", path), err)
	}
	return nil
}

// cellValue keeps numbers numeric in the workbook.
func cellValue(v any) any {
	if f, ok := v.(*float64); ok {
		if f == nil {
			return ""
		}
		return *f
	}
	if v == nil {
		return ""
	}
	return v
}

func styleHeader(f *excelize.File, sheet string, cols int) error {
	thin := []excelize.Border{
		{Type: "left", Color: "D9D9D9", Style: 1},
		{Type: "right", Color: "D9D9D9", Style: 1},
		{Type: "top", Color: "D9D9D9", Style: 1},
		{Type: "bottom", Color: "D9D9D9", Style: 1},
	}
	styleID, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F4B183"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "000000"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return common.NewAppError(common.CodeInternal, "building header style", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(max(cols, 1), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, styleID); err != nil {
		return common.NewAppError(common.CodeInternal, "styling header", err)
	}
	return nil
}

// autofitColumns sizes each column to its longest rendered value, with the
// same floor and padding the workbook always used.
func autofitColumns(f *excelize.File, sheet string, t *assemble.Table) {
	const (
		base     = 1.2
		padding  = 3
		minWidth = 8
	)
	for i, col := range t.Columns {
		maxLen := len(col)
		for _, r := range t.Rows {
			if n := len(CellString(r[col])); n > maxLen {
				maxLen = n
			}
		}
		width := float64(int(float64(maxLen)*base) + padding)
		if width < minWidth {
			width = minWidth
		}
		letter, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, letter, letter, width)
	}
}
