package widget

import (
	"strings"

	"github.com/imgajeed76/homeview/internal/frame"
)

// Rule proposes a column of a table.
type Rule func(t *frame.Table) (string, bool)

// Candidates are tried in order; the first rule that matches wins.
type Candidates []Rule

// Resolve returns the first column proposed by any rule.
func (c Candidates) Resolve(t *frame.Table) (string, bool) {
	for _, rule := range c {
		if name, ok := rule(t); ok {
			return name, true
		}
	}
	return "", false
}

// Named matches the first of names present in the table.
func Named(names ...string) Rule {
	return func(t *frame.Table) (string, bool) {
		for _, n := range names {
			if t.HasColumn(n) {
				return n, true
			}
		}
		return "", false
	}
}

// NamedNumeric is Named restricted to numeric columns.
func NamedNumeric(names ...string) Rule {
	return func(t *frame.Table) (string, bool) {
		for _, n := range names {
			if c, ok := t.Column(n); ok && c.Kind().Numeric() {
				return n, true
			}
		}
		return "", false
	}
}

// FirstNumeric matches the first numeric column.
func FirstNumeric() Rule {
	return func(t *frame.Table) (string, bool) {
		if cols := t.NumericColumns(); len(cols) > 0 {
			return cols[0], true
		}
		return "", false
	}
}

// FirstWhere matches the first column whose name satisfies pred.
func FirstWhere(pred func(name string) bool) Rule {
	return func(t *frame.Table) (string, bool) {
		for _, n := range t.ColumnNames() {
			if pred(n) {
				return n, true
			}
		}
		return "", false
	}
}

// Column candidates shared by the widgets.
var (
	regionColumn = Candidates{Named("StateName", "State")}
	valueColumn  = Candidates{NamedNumeric("HomeValue"), FirstNumeric()}
	dateColumn   = Candidates{
		Named("Date"),
		FirstWhere(func(n string) bool {
			return strings.Contains(strings.ToLower(n), "date") || n == "Month"
		}),
	}
	entityColumn = Candidates{
		Named("RegionName", "Region"),
		Named("Metro_Name", "Metro", "Name"),
	}
)
