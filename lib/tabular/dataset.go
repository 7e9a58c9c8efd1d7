// Package tabular holds a small column-oriented table of string cells, the
// common currency between the csv loader, the survey transforms and the
// writers.
package tabular

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrRaggedColumns = errors.New("columns have different row counts")

type Column struct {
	Name   string
	Values []string
}

// Dataset is an ordered list of named columns with the same number of
// rows. Names may repeat. Every transform returns a new Dataset, the receiver
// is never modified.
type Dataset struct {
	columns []Column
	rows    int
}

// FromColumns builds a dataset out of `columns`, every column must hold the
// same number of values.
func FromColumns(columns ...Column) (*Dataset, error) {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}
	out := make([]Column, len(columns))
	for i, c := range columns {
		if len(c.Values) != rows {
			return nil, fmt.Errorf(
				"%w: column %q has %d rows, expected %d",
				ErrRaggedColumns, c.Name, len(c.Values), rows,
			)
		}
		out[i] = Column{Name: c.Name, Values: append([]string(nil), c.Values...)}
	}
	return &Dataset{columns: out, rows: rows}, nil
}

// FromRecords builds a dataset out of a header and row-major records. Short
// records are padded with empty cells, long records are an error.
func FromRecords(header []string, records [][]string) (*Dataset, error) {
	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Values: make([]string, len(records))}
	}
	for r, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf(
				"%w: row %d has %d cells but there are only %d columns",
				ErrRaggedColumns, r, len(rec), len(header),
			)
		}
		for c, cell := range rec {
			columns[c].Values[r] = cell
		}
	}
	return &Dataset{columns: columns, rows: len(records)}, nil
}

func (d *Dataset) Rows() int {
	return d.rows
}

func (d *Dataset) Width() int {
	return len(d.columns)
}

func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns a copy of the i-th column.
func (d *Dataset) Column(i int) Column {
	c := d.columns[i]
	return Column{Name: c.Name, Values: append([]string(nil), c.Values...)}
}

// Index returns the position of the first column named exactly `name`, or -1.
func (d *Dataset) Index(name string) int {
	for i, c := range d.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns a copy of the values of the first column named exactly
// `name`.
func (d *Dataset) Lookup(name string) ([]string, bool) {
	i := d.Index(name)
	if i < 0 {
		return nil, false
	}
	return d.Column(i).Values, true
}

func (d *Dataset) Cell(row, col int) string {
	return d.columns[col].Values[row]
}

// Float parses the cell at (row, col) as a number, empty cells and cells
// that are not numbers report false.
func (d *Dataset) Float(row, col int) (float64, bool) {
	return ParseFloat(d.columns[col].Values[row])
}

// ParseFloat parses a trimmed cell as a float, an empty cell is missing.
func ParseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Record returns the cells of row `r` in column order.
func (d *Dataset) Record(r int) []string {
	rec := make([]string, len(d.columns))
	for i, c := range d.columns {
		rec[i] = c.Values[r]
	}
	return rec
}

func (d *Dataset) Clone() *Dataset {
	out, _ := FromColumns(d.columns...)
	out.rows = d.rows
	return out
}

// Select keeps the columns whose name satisfies `keep`, in their original
// order.
func (d *Dataset) Select(keep func(name string) bool) *Dataset {
	var columns []Column
	for _, c := range d.columns {
		if keep(c.Name) {
			columns = append(columns, c)
		}
	}
	out, _ := FromColumns(columns...)
	if len(columns) == 0 {
		out.rows = d.rows
	}
	return out
}

// SelectContaining keeps the columns whose name contains `substr`.
func (d *Dataset) SelectContaining(substr string) *Dataset {
	return d.Select(func(name string) bool {
		return strings.Contains(name, substr)
	})
}

// WithNames returns a copy with columns renamed positionally, `names` must
// have exactly one entry per column.
func (d *Dataset) WithNames(names []string) (*Dataset, error) {
	if len(names) != len(d.columns) {
		return nil, fmt.Errorf("got %d names for %d columns", len(names), len(d.columns))
	}
	out := d.Clone()
	for i := range out.columns {
		out.columns[i].Name = names[i]
	}
	return out, nil
}

// MapNames returns a copy with every column name passed through `fn`.
func (d *Dataset) MapNames(fn func(name string) string) *Dataset {
	out := d.Clone()
	for i := range out.columns {
		out.columns[i].Name = fn(out.columns[i].Name)
	}
	return out
}

// MapValues returns a copy with every cell passed through `fn`.
func (d *Dataset) MapValues(fn func(cell string) string) *Dataset {
	out := d.Clone()
	for _, c := range out.columns {
		for r, v := range c.Values {
			c.Values[r] = fn(v)
		}
	}
	return out
}

// Insert returns a copy with `column` placed at position `at`, a negative
// position or one past the end appends.
func (d *Dataset) Insert(at int, column Column) (*Dataset, error) {
	if len(column.Values) != d.rows && len(d.columns) > 0 {
		return nil, fmt.Errorf(
			"%w: column %q has %d rows, expected %d",
			ErrRaggedColumns, column.Name, len(column.Values), d.rows,
		)
	}
	if at < 0 || at > len(d.columns) {
		at = len(d.columns)
	}
	columns := make([]Column, 0, len(d.columns)+1)
	columns = append(columns, d.columns[:at]...)
	columns = append(columns, column)
	columns = append(columns, d.columns[at:]...)
	return FromColumns(columns...)
}

// Append is Insert at the end.
func (d *Dataset) Append(column Column) (*Dataset, error) {
	return d.Insert(-1, column)
}

// Constant builds a column holding `value` on every row of `d`.
func (d *Dataset) Constant(name, value string) Column {
	values := make([]string, d.rows)
	for i := range values {
		values[i] = value
	}
	return Column{Name: name, Values: values}
}

// DropRows returns a copy without the rows in `rows`, the remaining rows
// keep their relative order and are renumbered from zero. Indices that are
// out of range are ignored.
func (d *Dataset) DropRows(rows []int) *Dataset {
	drop := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		drop[r] = struct{}{}
	}

	columns := make([]Column, len(d.columns))
	kept := 0
	for i, c := range d.columns {
		values := make([]string, 0, d.rows)
		for r, v := range c.Values {
			if _, ok := drop[r]; ok {
				continue
			}
			values = append(values, v)
		}
		columns[i] = Column{Name: c.Name, Values: values}
		kept = len(values)
	}
	if len(columns) == 0 {
		kept = d.rows
		for r := range drop {
			if r >= 0 && r < d.rows {
				kept--
			}
		}
	}
	return &Dataset{columns: columns, rows: kept}
}

// Concat stacks datasets vertically, matching columns by name. The result
// holds the union of columns in first-seen order, cells of columns missing
// from a dataset are left empty. Repeated names are matched by occurrence.
func Concat(datasets ...*Dataset) *Dataset {
	type key struct {
		name string
		nth  int
	}

	var order []key
	seen := map[key]struct{}{}
	total := 0
	for _, d := range datasets {
		counts := map[string]int{}
		for _, c := range d.columns {
			k := key{name: c.Name, nth: counts[c.Name]}
			counts[c.Name]++
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			order = append(order, k)
		}
		total += d.rows
	}

	index := make(map[key]int, len(order))
	columns := make([]Column, len(order))
	for i, k := range order {
		index[k] = i
		columns[i] = Column{Name: k.name, Values: make([]string, total)}
	}

	offset := 0
	for _, d := range datasets {
		counts := map[string]int{}
		for _, c := range d.columns {
			k := key{name: c.Name, nth: counts[c.Name]}
			counts[c.Name]++
			copy(columns[index[k]].Values[offset:], c.Values)
		}
		offset += d.rows
	}

	return &Dataset{columns: columns, rows: total}
}

// GroupNames returns the distinct column names sorted ascending, the order
// identically named columns are grouped in.
func (d *Dataset) GroupNames() []string {
	set := map[string]struct{}{}
	for _, c := range d.columns {
		set[c.Name] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
