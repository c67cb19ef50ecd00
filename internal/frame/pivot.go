package frame

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Aggregation names a reduction over a group of numeric values.
type Aggregation string

const (
	AggMean   Aggregation = "mean"
	AggMedian Aggregation = "median"
	AggSum    Aggregation = "sum"
	AggCount  Aggregation = "count"
	AggMin    Aggregation = "min"
	AggMax    Aggregation = "max"
)

// Aggregations lists the supported reductions in menu order.
var Aggregations = []Aggregation{AggMean, AggMedian, AggSum, AggCount, AggMin, AggMax}

// ParseAggregation validates an aggregation name.
func ParseAggregation(s string) (Aggregation, error) {
	for _, a := range Aggregations {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAggregation, s)
}

// Apply reduces the non-null values of a group. ok is false when the
// result is undefined (no values, for every reduction except count).
func (a Aggregation) Apply(vals []float64) (float64, bool, error) {
	if a == AggCount {
		return float64(len(vals)), true, nil
	}
	if len(vals) == 0 {
		if _, err := ParseAggregation(string(a)); err != nil {
			return 0, false, err
		}
		return 0, false, nil
	}
	switch a {
	case AggMean:
		return mean(vals), true, nil
	case AggMedian:
		s := append([]float64(nil), vals...)
		sort.Float64s(s)
		return quantile(s, 0.5), true, nil
	case AggSum:
		var sum float64
		for _, v := range vals {
			sum += v
		}
		return sum, true, nil
	case AggMin:
		m := vals[0]
		for _, v := range vals[1:] {
			m = min(m, v)
		}
		return m, true, nil
	case AggMax:
		m := vals[0]
		for _, v := range vals[1:] {
			m = max(m, v)
		}
		return m, true, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrUnknownAggregation, a)
}

// PivotSpec describes a cross-tabulation. Columns may be empty for a
// single-column result named after Values. Fill, when set, replaces
// missing (index, column) combinations.
type PivotSpec struct {
	Index   string
	Columns string
	Values  string
	Agg     Aggregation
	Fill    *float64
}

type pivotKey struct {
	row, col string
}

// Pivot groups rows by the distinct non-null values of Index (and
// Columns), reduces Values with Agg, and returns one row per index key in
// ascending order. Groups whose reduction is undefined are absent; rows
// and columns with no defined cell are dropped.
func (t *Table) Pivot(spec PivotSpec) (*Table, error) {
	if spec.Columns != "" && spec.Columns == spec.Index {
		return nil, fmt.Errorf("%w: %q", ErrIndexIsColumns, spec.Index)
	}
	if _, err := ParseAggregation(string(spec.Agg)); err != nil {
		return nil, err
	}

	idxCol, ok := t.Column(spec.Index)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, spec.Index)
	}
	valCol, ok := t.Column(spec.Values)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, spec.Values)
	}
	if !valCol.kind.Numeric() {
		return nil, fmt.Errorf("%w: cannot aggregate %q (%s) with %s", ErrNotNumeric, spec.Values, valCol.kind, spec.Agg)
	}
	var grpCol *Column
	if spec.Columns != "" {
		grpCol, ok = t.Column(spec.Columns)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, spec.Columns)
		}
	}

	groups := make(map[pivotKey][]float64)
	rowVals := make(map[string]Value)
	colVals := make(map[string]Value)
	var order []pivotKey

	for i := 0; i < t.rows; i++ {
		iv := idxCol.values[i]
		if iv.Null {
			continue
		}
		key := pivotKey{row: groupKey(iv)}
		if grpCol != nil {
			gv := grpCol.values[i]
			if gv.Null {
				continue
			}
			key.col = groupKey(gv)
			colVals[key.col] = gv
		}
		rowVals[key.row] = iv
		if _, seen := groups[key]; !seen {
			order = append(order, key)
			groups[key] = nil
		}
		if f, ok := valCol.values[i].Float(); ok {
			groups[key] = append(groups[key], f)
		}
	}

	cells := make(map[pivotKey]float64)
	liveRows := make(map[string]bool)
	liveCols := make(map[string]bool)
	for _, key := range order {
		v, defined, err := spec.Agg.Apply(groups[key])
		if err != nil {
			return nil, err
		}
		if !defined {
			continue
		}
		cells[key] = v
		liveRows[key.row] = true
		liveCols[key.col] = true
	}

	rowKeys := sortedKeys(liveRows, rowVals)
	var colKeys []string
	if grpCol != nil {
		colKeys = sortedKeys(liveCols, colVals)
	} else {
		colKeys = []string{""}
	}

	cols := make([]*Column, 0, len(colKeys))
	for _, ck := range colKeys {
		name := spec.Values
		if grpCol != nil {
			name = colVals[ck].String()
		}
		vals := make([]Value, len(rowKeys))
		for i, rk := range rowKeys {
			if v, ok := cells[pivotKey{row: rk, col: ck}]; ok {
				vals[i] = Float(v)
			} else if spec.Fill != nil {
				vals[i] = Float(*spec.Fill)
			} else {
				vals[i] = Null(KindFloat)
			}
		}
		cols = append(cols, &Column{name: name, kind: KindFloat, values: vals})
	}

	idxVals := make([]Value, len(rowKeys))
	for i, rk := range rowKeys {
		idxVals[i] = rowVals[rk]
	}

	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		out.rows = len(rowKeys)
	}
	return out.WithIndex(&Column{name: spec.Index, kind: idxCol.kind, values: idxVals})
}

// Round returns a copy with every float rounded half-to-even to the given
// number of decimals.
func (t *Table) Round(decimals int) *Table {
	scale := math.Pow(10, float64(decimals))
	out := t.Copy()
	for _, c := range out.cols {
		if c.kind != KindFloat {
			continue
		}
		for i, v := range c.values {
			if f, ok := v.Float(); ok {
				c.values[i] = Float(math.RoundToEven(f*scale) / scale)
			}
		}
	}
	return out
}

// groupKey identifies a pivot group. Times are keyed by instant, since
// their text form drops sub-seconds and the zone.
func groupKey(v Value) string {
	if t, ok := v.Time(); ok {
		return strconv.FormatInt(t.UnixNano(), 10)
	}
	return v.String()
}

func sortedKeys(live map[string]bool, vals map[string]Value) []string {
	keys := make([]string, 0, len(live))
	for k := range live {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return Compare(vals[keys[i]], vals[keys[j]]) < 0
	})
	return keys
}
