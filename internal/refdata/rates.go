// Package refdata loads the external reference tables joined into the
// extraction results: the daily exchange-rate sheet and the document
// reference list exported from the shared drive.
package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ThiagoElux01/Comex-app/internal/common"
	"github.com/ThiagoElux01/Comex-app/internal/normalize"
)

// RateTable maps canonical DD/MM/YYYY dates to the day's selling rate
// (Venta). A nil table is valid and resolves every lookup to no rate.
type RateTable struct {
	byDate map[string]float64
}

// Lookup returns the rate for a canonical date, or nil when the table is
// absent or has no entry for the day.
func (rt *RateTable) Lookup(date string) *float64 {
	if rt == nil || date == "" {
		return nil
	}
	if v, ok := rt.byDate[date]; ok {
		return &v
	}
	return nil
}

// Len reports the number of dated entries.
func (rt *RateTable) Len() int {
	if rt == nil {
		return 0
	}
	return len(rt.byDate)
}

// LoadRates reads an exchange-rate sheet (.xlsx or .csv) with at least the
// columns "Data" and "Venta". Header matching is case-insensitive; dates in
// any of the known layouts are canonicalized. Rows with an unparseable date
// or rate are skipped, duplicate dates keep the first value.
func LoadRates(path, sheet string) (*RateTable, error) {
	records, err := readTabular(path, sheet)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &RateTable{byDate: map[string]float64{}}, nil
	}

	dateIdx, rateIdx := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "data", "fecha":
			dateIdx = i
		case "venta":
			rateIdx = i
		}
	}
	if dateIdx < 0 || rateIdx < 0 {
		return nil, common.NewAppError(common.CodeValidation,
			fmt.Sprintf("rate sheet %s is missing the Data/Venta columns", path), nil)
	}

	byDate := make(map[string]float64, len(records)-1)
	for _, rec := range records[1:] {
		if dateIdx >= len(rec) || rateIdx >= len(rec) {
			continue
		}
		date := normalize.FixDate(rec[dateIdx])
		rate := normalize.Amount(rec[rateIdx])
		if date == "" || rate == nil {
			continue
		}
		if _, dup := byDate[date]; !dup {
			byDate[date] = *rate
		}
	}
	return &RateTable{byDate: byDate}, nil
}

// readTabular reads a spreadsheet or CSV into raw string records. XLSX
// files read the named sheet, or the first sheet when name is empty.
func readTabular(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, common.NewAppError(common.CodeInvalidInput,
				fmt.Sprintf("opening spreadsheet %s", path), err)
		}
		defer f.Close()
		if sheet == "" {
			sheet = f.GetSheetName(0)
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, common.NewAppError(common.CodeInvalidInput,
				fmt.Sprintf("reading sheet %q of %s", sheet, path), err)
		}
		return rows, nil

	case ".csv":
		fh, err := os.Open(path)
		if err != nil {
			return nil, common.NewAppError(common.CodeInvalidInput,
				fmt.Sprintf("opening %s", path), err)
		}
		defer fh.Close()
		r := csv.NewReader(fh)
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil {
			return nil, common.NewAppError(common.CodeInvalidInput,
				fmt.Sprintf("parsing %s", path), err)
		}
		return records, nil
	}
	return nil, common.NewAppError(common.CodeInvalidInput,
		fmt.Sprintf("unsupported reference file type: %s", path), nil)
}
