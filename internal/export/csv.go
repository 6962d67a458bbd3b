package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/common"
)

// WriteCSV writes the table as UTF-8 CSV with a header row.
func WriteCSV(t *assemble.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return common.NewAppError(common.CodeInternal,
			fmt.Sprintf("creating %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return common.NewAppError(common.CodeInternal,
			fmt.Sprintf("writing header of %s", path), err)
	}
	for _, r := range t.Rows {
		if err := w.Write(rowStrings(t, r)); err != nil {
			return common.NewAppError(common.CodeInternal,
				fmt.Sprintf("writing row of %s", path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return common.NewAppError(common.CodeInternal,
			fmt.Sprintf("flushing %s", path), err)
	}
	return f.Close()
}
