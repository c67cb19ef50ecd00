package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/jackc/pgx/v5/pgtype"
)

// Infer builds a column from text cells, choosing the first kind every
// non-empty cell parses as: int, float, bool, time, then string. Empty
// cells are null. A column with no values at all is float.
func Infer(name string, cells []string) *frame.Column {
	present := 0
	for _, c := range cells {
		if c != "" {
			present++
		}
	}
	if present == 0 {
		vals := make([]frame.Value, len(cells))
		for i := range vals {
			vals[i] = frame.Null(frame.KindFloat)
		}
		col, _ := frame.NewColumn(name, frame.KindFloat, vals)
		return col
	}

	for _, p := range parsers {
		if vals, ok := parseAll(cells, p); ok {
			col, _ := frame.NewColumn(name, p.kind, vals)
			return col
		}
	}

	vals := make([]frame.Value, len(cells))
	for i, c := range cells {
		if c == "" {
			vals[i] = frame.Null(frame.KindString)
		} else {
			vals[i] = frame.String(c)
		}
	}
	col, _ := frame.NewColumn(name, frame.KindString, vals)
	return col
}

type parser struct {
	kind  frame.Kind
	parse func(string) (frame.Value, bool)
}

var parsers = []parser{
	{frame.KindInt, func(s string) (frame.Value, bool) {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return frame.Int(n), err == nil
	}},
	{frame.KindFloat, func(s string) (frame.Value, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return frame.Float(f), err == nil
	}},
	{frame.KindBool, func(s string) (frame.Value, bool) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return frame.Bool(true), true
		case "false":
			return frame.Bool(false), true
		}
		return frame.Value{}, false
	}},
	{frame.KindTime, func(s string) (frame.Value, bool) {
		t, err := frame.ParseTime(s)
		return frame.Time(t), err == nil
	}},
}

func parseAll(cells []string, p parser) ([]frame.Value, bool) {
	vals := make([]frame.Value, len(cells))
	for i, c := range cells {
		if c == "" {
			vals[i] = frame.Null(p.kind)
			continue
		}
		v, ok := p.parse(c)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// FromValues builds a table from database rows. Column kinds follow the
// Go types of the non-null values; integer and float values mixed in one
// column widen to float, and any other mix falls back to text.
func FromValues(names []string, rows [][]any) (*frame.Table, error) {
	cols := make([]*frame.Column, len(names))
	for j, name := range names {
		vals := make([]frame.Value, len(rows))
		for i, row := range rows {
			v, err := toValue(row[j])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			vals[i] = v
		}
		col, err := frame.NewColumn(name, columnKind(vals), vals)
		if err != nil {
			col = textColumn(name, vals)
		}
		cols[j] = col
	}
	return frame.New(cols...)
}

func columnKind(vals []frame.Value) frame.Kind {
	kind, seen := frame.KindFloat, false
	for _, v := range vals {
		if v.Null {
			continue
		}
		switch {
		case !seen:
			kind, seen = v.Kind, true
		case kind == frame.KindInt && v.Kind == frame.KindFloat:
			kind = frame.KindFloat
		}
	}
	return kind
}

func textColumn(name string, vals []frame.Value) *frame.Column {
	out := make([]frame.Value, len(vals))
	for i, v := range vals {
		if v.Null {
			out[i] = frame.Null(frame.KindString)
		} else {
			out[i] = frame.String(v.String())
		}
	}
	col, _ := frame.NewColumn(name, frame.KindString, out)
	return col
}

// float64Valuer matches numeric driver types such as pgtype.Numeric.
type float64Valuer interface {
	Float64Value() (pgtype.Float8, error)
}

func toValue(v any) (frame.Value, error) {
	switch x := v.(type) {
	case nil:
		return frame.Null(frame.KindFloat), nil
	case int64:
		return frame.Int(x), nil
	case int32:
		return frame.Int(int64(x)), nil
	case int16:
		return frame.Int(int64(x)), nil
	case int8:
		return frame.Int(int64(x)), nil
	case int:
		return frame.Int(int64(x)), nil
	case uint32:
		return frame.Int(int64(x)), nil
	case float64:
		return frame.Float(x), nil
	case float32:
		return frame.Float(float64(x)), nil
	case bool:
		return frame.Bool(x), nil
	case string:
		return frame.String(x), nil
	case []byte:
		return frame.String(string(x)), nil
	case time.Time:
		return frame.Time(x), nil
	case float64Valuer:
		f, err := x.Float64Value()
		if err != nil {
			return frame.Value{}, err
		}
		if !f.Valid {
			return frame.Null(frame.KindFloat), nil
		}
		return frame.Float(f.Float64), nil
	case fmt.Stringer:
		return frame.String(x.String()), nil
	}
	return frame.String(fmt.Sprint(v)), nil
}
