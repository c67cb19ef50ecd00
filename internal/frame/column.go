package frame

import (
	"fmt"
	"time"
)

// Column is a named sequence of values of one Kind.
type Column struct {
	name   string
	kind   Kind
	values []Value
}

// NewColumn builds a column. Integer values in a float column are widened;
// any other non-null value of the wrong kind is rejected.
func NewColumn(name string, kind Kind, values []Value) (*Column, error) {
	vals := make([]Value, len(values))
	for i, v := range values {
		switch {
		case v.Null:
			vals[i] = Null(kind)
		case v.Kind == kind:
			vals[i] = v
		case kind == KindFloat && v.Kind == KindInt:
			f, _ := v.Float()
			vals[i] = Float(f)
		default:
			return nil, fmt.Errorf("%w: column %q is %s, row %d is %s", ErrKindMismatch, name, kind, i, v.Kind)
		}
	}
	return &Column{name: name, kind: kind, values: vals}, nil
}

// Strings builds a text column. Empty strings stay non-null.
func Strings(name string, values ...string) *Column {
	c := &Column{name: name, kind: KindString, values: make([]Value, len(values))}
	for i, v := range values {
		c.values[i] = String(v)
	}
	return c
}

// Ints builds an integer column.
func Ints(name string, values ...int64) *Column {
	c := &Column{name: name, kind: KindInt, values: make([]Value, len(values))}
	for i, v := range values {
		c.values[i] = Int(v)
	}
	return c
}

// Floats builds a float column; NaN entries become null.
func Floats(name string, values ...float64) *Column {
	c := &Column{name: name, kind: KindFloat, values: make([]Value, len(values))}
	for i, v := range values {
		c.values[i] = Float(v)
	}
	return c
}

// Times builds a timestamp column; zero times become null.
func Times(name string, values ...time.Time) *Column {
	c := &Column{name: name, kind: KindTime, values: make([]Value, len(values))}
	for i, v := range values {
		if v.IsZero() {
			c.values[i] = Null(KindTime)
			continue
		}
		c.values[i] = Time(v)
	}
	return c
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of values.
func (c *Column) Len() int { return len(c.values) }

// Value returns the value at row i.
func (c *Column) Value(i int) Value { return c.values[i] }

// Values returns a copy of the column's values.
func (c *Column) Values() []Value {
	out := make([]Value, len(c.values))
	copy(out, c.values)
	return out
}

// NonNull counts the non-null values.
func (c *Column) NonNull() int {
	n := 0
	for _, v := range c.values {
		if !v.Null {
			n++
		}
	}
	return n
}

// Floats returns the non-null numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Rename returns a copy of the column under a new name.
func (c *Column) Rename(name string) *Column {
	return &Column{name: name, kind: c.kind, values: c.Values()}
}

func (c *Column) take(indices []int) *Column {
	vals := make([]Value, len(indices))
	for i, idx := range indices {
		vals[i] = c.values[idx]
	}
	return &Column{name: c.name, kind: c.kind, values: vals}
}
