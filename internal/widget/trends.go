package widget

import (
	"errors"
	"fmt"
	"slices"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/plot"
)

// Chart presentation shared by every trends render.
const (
	trendsTitle     = "Home Value Over Time by Metro"
	trendsLineWidth = 2
	trendsTickAngle = 45
)

// TrendsState is the Metro Trends view state.
type TrendsState struct {
	Metros []string
}

// Trends plots a value column over time for selected entities.
type Trends struct {
	base
	table     *frame.Table
	dateCol   string
	entityCol string
	valueCol  string
	backend   plot.Backend
	metros    *SelectMultiple
}

// NewTrends builds a Metro Trends widget. The plot backend named by
// WithBackend is opened after the columns resolve; an unknown backend
// leaves the widget AwaitingInput with a missing dependency message.
func NewTrends(t *frame.Table, opts ...Option) *Trends {
	w := &Trends{base: base{name: "trends", settings: applyOptions(opts)}, table: t}
	if t == nil {
		w.fail(ProblemInvalidInput, invalidTable("home_values"))
		return w
	}

	date, okDate := dateColumn.Resolve(t)
	entity, okEntity := entityColumn.Resolve(t)
	value, okValue := valueColumn.Resolve(t)
	if !okDate || !okEntity || !okValue {
		w.fail(ProblemMissingColumn, trendsMissing())
		return w
	}
	w.dateCol, w.entityCol, w.valueCol = date, entity, value

	backend, err := plot.Open(w.settings.backend, w.settings.plotOpts)
	if err != nil {
		w.fail(ProblemMissingDependency, missingBackend(w.settings.backend, err))
		return w
	}
	w.backend = backend

	metros, _ := t.Unique(entity)
	if len(metros) > w.settings.maxEntities {
		metros = metros[:w.settings.maxEntities]
	}
	var initial []string
	if len(metros) > 0 {
		initial = metros[:1]
	}

	w.intro = "Select one or more metros to compare over time:"
	w.metros, _ = NewSelectMultiple("metro_choices", "Metros:", metros, min(w.settings.listRows, len(metros)), initial...)
	w.bind(w.Refresh, w.metros)
	return w
}

func trendsMissing() Note {
	return paragraph(ToneError,
		"Table needs Date, RegionName (or similar), and a value column (e.g. HomeValue).")
}

func missingBackend(name string, err error) Note {
	msg := fmt.Sprintf("a plotting backend is required for the metro trends widget. Install with: homeview config plot.backend <terminal|png|svg> (%q is not available)", name)
	if !errors.Is(err, plot.ErrBackendNotFound) {
		msg = fmt.Sprintf("the %q plotting backend could not be opened: %v", name, err)
	}
	return paragraph(ToneError, msg)
}

// DateColumn returns the resolved date column name.
func (w *Trends) DateColumn() string { return w.dateCol }

// EntityColumn returns the resolved entity column name.
func (w *Trends) EntityColumn() string { return w.entityCol }

// ValueColumn returns the resolved value column name.
func (w *Trends) ValueColumn() string { return w.valueCol }

// MetroControl returns the multi-select list.
func (w *Trends) MetroControl() *SelectMultiple { return w.metros }

// State returns the current view state.
func (w *Trends) State() TrendsState {
	if w.status != StatusInteractive {
		return TrendsState{}
	}
	return TrendsState{Metros: w.metros.Selected()}
}

// Apply replaces the selection.
func (w *Trends) Apply(s TrendsState) error {
	if w.status != StatusInteractive {
		return nil
	}
	return w.metros.Set(s.Metros)
}

// Refresh re-renders and draws the chart with the backend.
func (w *Trends) Refresh() {
	if w.status != StatusInteractive {
		return
	}
	blocks := w.Render(w.table, w.State())
	for i, b := range blocks {
		cb, ok := b.(ChartBlock)
		if !ok {
			continue
		}
		r, err := w.backend.Render(w.settings.ctx, cb.Chart)
		if err != nil {
			blocks[i] = errorNote(err.Error())
			continue
		}
		cb.Rendering = &r
		blocks[i] = cb
	}
	w.out.Replace(blocks...)
}

// Render builds the chart model for the selected entities.
func (w *Trends) Render(t *frame.Table, s TrendsState) []Block {
	switch {
	case t == nil:
		return []Block{invalidTable("home_values")}
	case w.status != StatusInteractive:
		return w.awaiting()
	case !hasColumns(t, w.dateCol, w.entityCol, w.valueCol):
		return []Block{trendsMissing()}
	}
	if len(s.Metros) == 0 {
		return []Block{paragraph(TonePrompt, "Select at least one metro.")}
	}

	entity, _ := t.Column(w.entityCol)
	sub := t.Filter(func(i int) bool {
		v := entity.Value(i)
		return !v.Null && slices.Contains(s.Metros, v.String())
	})
	if sub.Len() == 0 {
		return []Block{paragraph(ToneEmpty, "No data for selected metros.")}
	}

	sub, err := sub.ParseTimeColumn(w.dateCol)
	if err != nil {
		return []Block{errorNote(err.Error())}
	}
	pt, err := sub.Pivot(frame.PivotSpec{
		Index:   w.dateCol,
		Columns: w.entityCol,
		Values:  w.valueCol,
		Agg:     frame.AggMean,
	})
	if err != nil {
		return []Block{errorNote(err.Error())}
	}

	names := slices.Clone(s.Metros)
	slices.Sort(names)
	dates := pt.Index()

	var series []plot.Series
	for _, name := range names {
		col, ok := pt.Column(name)
		if !ok {
			continue
		}
		sr := plot.Series{Name: name}
		for i := 0; i < pt.Len(); i++ {
			ts, okT := dates.Value(i).Time()
			v, okV := col.Value(i).Float()
			if okT && okV {
				sr.Points = append(sr.Points, plot.Point{Time: ts, Value: v})
			}
		}
		if len(sr.Points) > 0 {
			series = append(series, sr)
		}
	}
	if len(series) == 0 {
		return []Block{paragraph(ToneEmpty, "No data for selected metros.")}
	}

	return []Block{ChartBlock{Chart: plot.Chart{
		Title:         trendsTitle,
		XLabel:        w.dateCol,
		YLabel:        w.valueCol,
		LegendTitle:   w.entityCol,
		Series:        series,
		Grid:          true,
		XTickRotation: trendsTickAngle,
		LineWidth:     trendsLineWidth,
		Width:         w.settings.chartWidth,
		Height:        w.settings.chartHeight,
	}}}
}
