// Package trajectory post-processes per-timestep simulator output:
// the raw timestep table, physically derived quantities, and the
// named extrema that flag flight-critical events.
package trajectory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table is a column-name-addressable view of a delimited timestep
// file. Derived columns are appended in place and the file rewritten,
// so the schema accumulates across extraction passes.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// ReadTable loads a delimited text file with a header row.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read table %s: no header row", path)
	}

	t := &Table{Columns: records[0], Rows: records[1:]}
	t.reindex()
	return t, nil
}

// WriteFile rewrites the table, header first.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Float returns the value of the named column in the given row.
func (t *Table) Float(row int, name string) (float64, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, &MissingColumnError{Column: name}
	}
	v, err := strconv.ParseFloat(t.Rows[row][i], 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %q: %w", row, name, err)
	}
	return v, nil
}

// FloatColumn returns the whole named column as floats.
func (t *Table) FloatColumn(name string) ([]float64, error) {
	out := make([]float64, len(t.Rows))
	for row := range t.Rows {
		v, err := t.Float(row, name)
		if err != nil {
			return nil, err
		}
		out[row] = v
	}
	return out, nil
}

// SetFloatColumn appends or replaces a column with the given values.
// The value count must match the row count.
func (t *Table) SetFloatColumn(name string, values []float64) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.Rows))
	}
	i, ok := t.index[name]
	if !ok {
		i = len(t.Columns)
		t.Columns = append(t.Columns, name)
		for r := range t.Rows {
			t.Rows[r] = append(t.Rows[r], "")
		}
		t.reindex()
	}
	for r := range t.Rows {
		t.Rows[r][i] = formatFloat(values[r])
	}
	return nil
}

// FilterRows keeps only the rows for which keep returns true.
func (t *Table) FilterRows(keep func(row int) bool) {
	out := t.Rows[:0]
	for r := range t.Rows {
		if keep(r) {
			out = append(out, t.Rows[r])
		}
	}
	t.Rows = out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
