package frame

import (
	"fmt"
	"sort"
	"strconv"
)

// Table is an immutable collection of equally long columns with an
// optional row index. A nil index means positional labels 0..n-1.
type Table struct {
	cols   []*Column
	byName map[string]int
	rows   int
	index  *Column
}

// New builds a Table from columns. Column names must be unique and every
// column must have the same length.
func New(cols ...*Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, dup := t.byName[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d", ErrRaggedColumns, c.name, c.Len(), t.rows)
		}
		t.byName[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// MustNew is New for statically known columns. It panics on error.
func MustNew(cols ...*Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// WithIndex returns a copy of t whose rows are labelled by idx.
func (t *Table) WithIndex(idx *Column) (*Table, error) {
	if idx != nil && idx.Len() != t.rows {
		return nil, fmt.Errorf("%w: index has %d rows, expected %d", ErrRaggedColumns, idx.Len(), t.rows)
	}
	out := t.shallow()
	out.index = idx
	return out, nil
}

// Len returns the row count.
func (t *Table) Len() int { return t.rows }

// Width returns the column count.
func (t *Table) Width() int { return len(t.cols) }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return t.rows, len(t.cols) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// HasColumn reports whether a column with this name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Index returns the row index column, or nil for positional labels.
func (t *Table) Index() *Column { return t.index }

// IndexName returns the name of the row index, if any.
func (t *Table) IndexName() string {
	if t.index == nil {
		return ""
	}
	return t.index.name
}

// Label returns the display label of row i.
func (t *Table) Label(i int) string {
	if t.index == nil {
		return strconv.Itoa(i)
	}
	return t.index.values[i].String()
}

// Cell returns the value at (row, column name).
func (t *Table) Cell(row int, col string) (Value, error) {
	c, ok := t.Column(col)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrColumnNotFound, col)
	}
	if row < 0 || row >= t.rows {
		return Value{}, fmt.Errorf("row %d out of range [0, %d)", row, t.rows)
	}
	return c.values[row], nil
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for j, c := range t.cols {
		row[j] = c.values[i]
	}
	return row
}

// NumericColumns returns the names of Int and Float columns in order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.cols {
		if c.kind.Numeric() {
			out = append(out, c.name)
		}
	}
	return out
}

// CategoricalColumns returns the names of text columns in order.
func (t *Table) CategoricalColumns() []string {
	var out []string
	for _, c := range t.cols {
		if c.kind.Categorical() {
			out = append(out, c.name)
		}
	}
	return out
}

// Take returns the rows at the given positions, keeping their labels.
func (t *Table) Take(indices []int) *Table {
	out := &Table{byName: t.byName, rows: len(indices), cols: make([]*Column, len(t.cols))}
	for i, c := range t.cols {
		out.cols[i] = c.take(indices)
	}
	if t.index != nil {
		out.index = t.index.take(indices)
	} else {
		labels := make([]int64, len(indices))
		for i, idx := range indices {
			labels[i] = int64(idx)
		}
		out.index = Ints("", labels...)
	}
	return out
}

// Slice returns rows [lo, hi), clamped to the table bounds.
func (t *Table) Slice(lo, hi int) *Table {
	lo = max(0, min(lo, t.rows))
	hi = max(lo, min(hi, t.rows))
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return t.Take(idx)
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table { return t.Slice(0, n) }

// Tail returns the last n rows.
func (t *Table) Tail(n int) *Table { return t.Slice(t.rows-n, t.rows) }

// Copy returns a table with freshly allocated columns.
func (t *Table) Copy() *Table {
	out := &Table{byName: make(map[string]int, len(t.cols)), rows: t.rows}
	for i, c := range t.cols {
		out.cols = append(out.cols, &Column{name: c.name, kind: c.kind, values: c.Values()})
		out.byName[c.name] = i
	}
	if t.index != nil {
		out.index = &Column{name: t.index.name, kind: t.index.kind, values: t.index.Values()}
	}
	return out
}

// Filter returns the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	idx := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return t.Take(idx)
}

// Unique returns the distinct non-null values of a column as text,
// sorted lexicographically.
func (t *Table) Unique(name string) ([]string, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	seen := make(map[string]bool)
	var out []string
	for _, v := range c.values {
		if v.Null {
			continue
		}
		s := v.String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// MinMax returns the smallest and largest non-null value of a numeric
// column. ok is false when the column has no non-null values.
func (t *Table) MinMax(name string) (lo, hi float64, ok bool, err error) {
	c, found := t.Column(name)
	if !found {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	if !c.kind.Numeric() {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrNotNumeric, name)
	}
	for _, f := range c.Floats() {
		if !ok {
			lo, hi, ok = f, f, true
			continue
		}
		lo = min(lo, f)
		hi = max(hi, f)
	}
	return lo, hi, ok, nil
}

func (t *Table) shallow() *Table {
	return &Table{cols: t.cols, byName: t.byName, rows: t.rows, index: t.index}
}
