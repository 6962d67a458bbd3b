// Package assemble holds the tabular result model shared by every
// processing flow and the column/merge/dedup operations applied before
// export.
package assemble

import "strings"

// Row is one extracted document, keyed by output column name.
type Row map[string]any

// Table is an ordered set of rows with an explicit column order. Exports
// write columns in this order.
type Table struct {
	Columns []string
	Rows    []Row
}

// New builds an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row and registers any new columns at the end of the order.
func (t *Table) Append(r Row) {
	for col := range r {
		if !t.hasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	t.Rows = append(t.Rows, r)
}

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// String reads a cell as a string; missing and non-string cells read as "".
func (r Row) String(col string) string {
	if v, ok := r[col]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Float reads a cell as a float pointer; nil when absent or not a number.
func (r Row) Float(col string) *float64 {
	switch v := r[col].(type) {
	case *float64:
		return v
	case float64:
		return &v
	}
	return nil
}

// OrderColumns moves the desired columns that are present to the front, in
// the given order, and keeps every other column after them in its current
// relative position. Desired columns that no row carries are skipped.
func (t *Table) OrderColumns(desired []string) {
	ordered := make([]string, 0, len(t.Columns))
	inDesired := make(map[string]bool, len(desired))
	for _, col := range desired {
		if t.hasColumn(col) {
			ordered = append(ordered, col)
			inDesired[col] = true
		}
	}
	for _, col := range t.Columns {
		if !inDesired[col] {
			ordered = append(ordered, col)
		}
	}
	t.Columns = ordered
}

// DedupBy keeps the first row for each distinct key-column value. Rows with
// an empty key are all kept. Order is preserved.
func (t *Table) DedupBy(keyCol string) {
	seen := make(map[string]bool, len(t.Rows))
	out := t.Rows[:0]
	for _, r := range t.Rows {
		key := r.String(keyCol)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, r)
	}
	t.Rows = out
}

// CoalesceFill fills empty cells in dst from src where both tables carry a
// row with the same key-column value. Existing non-empty values are never
// overwritten.
func CoalesceFill(dst, src *Table, keyCol string) {
	index := make(map[string]Row, len(src.Rows))
	for _, r := range src.Rows {
		key := r.String(keyCol)
		if key != "" {
			if _, dup := index[key]; !dup {
				index[key] = r
			}
		}
	}
	for _, r := range dst.Rows {
		other, ok := index[r.String(keyCol)]
		if !ok {
			continue
		}
		for col, v := range other {
			if cur, exists := r[col]; !exists || IsEmptyCell(cur) {
				r[col] = v
			}
		}
	}
}

// IsEmptyCell reports whether a cell counts as absent for gap-filling:
// nil, a blank string or a nil float pointer.
func IsEmptyCell(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case *float64:
		return x == nil
	}
	return false
}

// MergeByFilename copies srcCol from src into dst as dstCol, matching rows
// whose filename keys contain each other (either direction,
// case-insensitive). The first match wins.
func MergeByFilename(dst *Table, dstKey, dstCol string, src *Table, srcKey, srcCol string) {
	type entry struct {
		key string
		val any
	}
	entries := make([]entry, 0, len(src.Rows))
	for _, r := range src.Rows {
		k := strings.ToLower(strings.TrimSpace(r.String(srcKey)))
		if k != "" {
			entries = append(entries, entry{key: k, val: r[srcCol]})
		}
	}
	for _, r := range dst.Rows {
		k := strings.ToLower(strings.TrimSpace(r.String(dstKey)))
		if k == "" {
			continue
		}
		for _, e := range entries {
			if strings.Contains(k, e.key) || strings.Contains(e.key, k) {
				r[dstCol] = e.val
				break
			}
		}
	}
	if !dst.hasColumn(dstCol) {
		dst.Columns = append(dst.Columns, dstCol)
	}
}
