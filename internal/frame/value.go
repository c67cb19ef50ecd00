// Package frame provides the read-only, in-memory Table that homeview's
// widgets explore. A Table is an ordered set of equally long, typed
// columns with an optional row index. Every operation that narrows or
// reshapes a Table returns a new Table; the receiver is never mutated.
package frame

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind is the scalar type shared by every value of a column.
type Kind int

const (
	// KindString holds text (the categorical kind).
	KindString Kind = iota
	// KindInt holds 64-bit integers.
	KindInt
	// KindFloat holds 64-bit floats.
	KindFloat
	// KindBool holds booleans.
	KindBool
	// KindTime holds timestamps.
	KindTime
)

// String returns the kind name used in schema reports.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Numeric reports whether values of this kind can be aggregated.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Categorical reports whether this kind is used as a grouping key.
func (k Kind) Categorical() bool {
	return k == KindString
}

// Value is a single typed cell.
type Value struct {
	Raw  any
	Kind Kind
	Null bool
}

// Int returns a non-null integer value.
func Int(v int64) Value { return Value{Raw: v, Kind: KindInt} }

// Float returns a float value; NaN is stored as null.
func Float(v float64) Value {
	if math.IsNaN(v) {
		return Null(KindFloat)
	}
	return Value{Raw: v, Kind: KindFloat}
}

// String returns a non-null text value.
func String(v string) Value { return Value{Raw: v, Kind: KindString} }

// Bool returns a non-null boolean value.
func Bool(v bool) Value { return Value{Raw: v, Kind: KindBool} }

// Time returns a non-null timestamp value.
func Time(v time.Time) Value { return Value{Raw: v, Kind: KindTime} }

// Null returns a missing value of the given kind.
func Null(k Kind) Value { return Value{Kind: k, Null: true} }

// Float returns the value as a float64 for numeric kinds.
func (v Value) Float() (float64, bool) {
	if v.Null {
		return 0, false
	}
	switch raw := v.Raw.(type) {
	case int64:
		return float64(raw), true
	case float64:
		return raw, true
	}
	return 0, false
}

// Time returns the value as a time.Time for KindTime.
func (v Value) Time() (time.Time, bool) {
	if v.Null {
		return time.Time{}, false
	}
	t, ok := v.Raw.(time.Time)
	return t, ok
}

// String formats the value for display.
func (v Value) String() string {
	if v.Null {
		switch v.Kind {
		case KindInt, KindFloat:
			return "NaN"
		case KindTime:
			return "NaT"
		default:
			return "None"
		}
	}
	switch raw := v.Raw.(type) {
	case string:
		return raw
	case int64:
		return strconv.FormatInt(raw, 10)
	case float64:
		return FormatFloat(raw)
	case bool:
		if raw {
			return "True"
		}
		return "False"
	case time.Time:
		if raw.Hour() == 0 && raw.Minute() == 0 && raw.Second() == 0 && raw.Nanosecond() == 0 {
			return raw.Format("2006-01-02")
		}
		return raw.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", raw)
	}
}

// FormatFloat renders a float with at most six decimals and no trailing
// zeros. Integral values keep one decimal so they read as floats.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(math.Round(f*1e6)/1e6, 'f', -1, 64)
}

// Compare orders two values of the same kind. Nulls sort last.
func Compare(a, b Value) int {
	switch {
	case a.Null && b.Null:
		return 0
	case a.Null:
		return 1
	case b.Null:
		return -1
	}
	if af, ok := a.Float(); ok {
		if bf, ok := b.Float(); ok {
			return cmpFloat(af, bf)
		}
	}
	if at, ok := a.Time(); ok {
		if bt, ok := b.Time(); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.Raw.(bool); ok {
		if bb, ok := b.Raw.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
