package frame

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayouts are tried in order when text is parsed as a date.
var TimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01",
	"01/02/2006",
	"1/2/2006",
	"Jan-2006",
	"January 2006",
}

// ParseTime parses s with the first matching layout in TimeLayouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTimeParse, s)
}

// ParseTimeColumn returns a copy of t whose named column holds
// timestamps. Text values are parsed with ParseTime; time columns are
// returned unchanged.
func (t *Table) ParseTimeColumn(name string) (*Table, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	src := t.cols[i]
	if src.kind == KindTime {
		return t, nil
	}
	if src.kind != KindString {
		return nil, fmt.Errorf("%w: column %q is %s", ErrTimeParse, name, src.kind)
	}

	vals := make([]Value, len(src.values))
	for j, v := range src.values {
		if v.Null {
			vals[j] = Null(KindTime)
			continue
		}
		ts, err := ParseTime(v.String())
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, j, err)
		}
		vals[j] = Time(ts)
	}

	out := t.shallow()
	out.cols = make([]*Column, len(t.cols))
	copy(out.cols, t.cols)
	out.cols[i] = &Column{name: name, kind: KindTime, values: vals}
	return out, nil
}
