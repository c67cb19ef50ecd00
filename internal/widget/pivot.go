package widget

import (
	"errors"

	"github.com/imgajeed76/homeview/internal/frame"
)

// None is the sentinel choice for an unset index or grouping column.
const None = "(none)"

// PivotState is the Pivot Builder's view state.
type PivotState struct {
	Index   string
	Columns string
	Values  string
	Agg     frame.Aggregation
}

// Pivot builds a pivot table from chosen index, grouping and value columns.
type Pivot struct {
	base
	table   *frame.Table
	index   *Dropdown
	columns *Dropdown
	values  *Dropdown
	agg     *Dropdown
}

// NewPivot builds a Pivot Builder.
func NewPivot(t *frame.Table, opts ...Option) *Pivot {
	p := &Pivot{base: base{name: "pivot", settings: applyOptions(opts)}, table: t}
	if t == nil {
		p.fail(ProblemInvalidInput, invalidTable("home_values_pivot"))
		return p
	}

	categorical := t.CategoricalColumns()
	numeric := t.NumericColumns()
	if len(categorical) == 0 || len(numeric) == 0 {
		p.fail(ProblemMissingColumn, paragraph(ToneError,
			"Table needs both categorical and numeric columns for a pivot."))
		return p
	}

	aggs := make([]string, len(frame.Aggregations))
	for i, a := range frame.Aggregations {
		aggs[i] = string(a)
	}
	withNone := append([]string{None}, categorical...)

	p.index, _ = NewDropdown("index_col", "index_col", withNone)
	p.columns, _ = NewDropdown("columns_col", "columns_col", withNone)
	p.values, _ = NewDropdown("values_col", "values_col", numeric)
	p.agg, _ = NewDropdown("agg_func", "agg_func", aggs)
	p.bind(p.Refresh, p.index, p.columns, p.values, p.agg)
	return p
}

// IndexControl returns the index dropdown.
func (p *Pivot) IndexControl() *Dropdown { return p.index }

// ColumnsControl returns the grouping dropdown.
func (p *Pivot) ColumnsControl() *Dropdown { return p.columns }

// ValuesControl returns the value dropdown.
func (p *Pivot) ValuesControl() *Dropdown { return p.values }

// AggControl returns the aggregation dropdown.
func (p *Pivot) AggControl() *Dropdown { return p.agg }

// State returns the current view state.
func (p *Pivot) State() PivotState {
	if p.status != StatusInteractive {
		return PivotState{}
	}
	return PivotState{
		Index:   p.index.Value(),
		Columns: p.columns.Value(),
		Values:  p.values.Value(),
		Agg:     frame.Aggregation(p.agg.Value()),
	}
}

// Apply sets every non-empty field of s on its control.
func (p *Pivot) Apply(s PivotState) error {
	if p.status != StatusInteractive {
		return nil
	}
	for _, set := range []struct {
		d *Dropdown
		v string
	}{
		{p.index, s.Index},
		{p.columns, s.Columns},
		{p.values, s.Values},
		{p.agg, string(s.Agg)},
	} {
		if set.v == "" {
			continue
		}
		if err := set.d.Set(set.v); err != nil {
			return err
		}
	}
	return nil
}

// Refresh re-renders the pivot.
func (p *Pivot) Refresh() {
	if p.status != StatusInteractive {
		return
	}
	p.out.Replace(p.Render(p.table, p.State())...)
}

// Render computes the pivot for s. Failures become a red error note.
func (p *Pivot) Render(t *frame.Table, s PivotState) []Block {
	if t == nil {
		return []Block{invalidTable("home_values_pivot")}
	}
	if s.Index == None || s.Index == "" || s.Values == "" {
		return []Block{Note{
			Tone: TonePrompt,
			HTML: "<p>Choose at least <b>index</b> and <b>values</b>.</p>",
			Text: "Choose at least index and values.",
		}}
	}

	spec := frame.PivotSpec{Index: s.Index, Values: s.Values, Agg: s.Agg}
	if s.Columns != None && s.Columns != "" {
		fill := 0.0
		spec.Columns = s.Columns
		spec.Fill = &fill
	}

	pt, err := t.Pivot(spec)
	if errors.Is(err, frame.ErrIndexIsColumns) {
		return []Block{errorNote(frame.ErrIndexIsColumns.Error())}
	}
	if err != nil {
		return []Block{errorNote(err.Error())}
	}
	return []Block{
		Note{Tone: ToneInfo, HTML: "<p><b>pivot_table result:</b></p>", Text: "pivot_table result:"},
		TableBlock{Table: pt.Round(0)},
	}
}
