package widget

import (
	"fmt"
	"slices"

	"github.com/imgajeed76/homeview/internal/frame"
)

// All is the region choice that disables the region filter.
const All = "All"

const (
	defaultBoundMin = 0
	defaultBoundMax = 1_000_000
	minSliderStep   = 10_000
)

// MarketState is the Market Filter's view state.
type MarketState struct {
	State string
	Min   int
	Max   int
}

// Market restricts rows by region and an inclusive value range.
type Market struct {
	base
	table     *frame.Table
	regionCol string
	valueCol  string
	state     *Dropdown
	minVal    *IntSlider
	maxVal    *IntSlider
}

// NewMarket builds a Market Filter.
func NewMarket(t *frame.Table, opts ...Option) *Market {
	m := &Market{base: base{name: "filter", settings: applyOptions(opts)}, table: t}
	if t == nil {
		m.fail(ProblemInvalidInput, invalidTable("latest_home_values"))
		return m
	}

	region, okRegion := regionColumn.Resolve(t)
	value, okValue := valueColumn.Resolve(t)
	if !okRegion || !okValue {
		m.fail(ProblemMissingColumn, marketMissing())
		return m
	}
	m.regionCol, m.valueCol = region, value

	// A region literally named "All" would shadow the All choice.
	states, _ := t.Unique(region)
	states = slices.DeleteFunc(states, func(s string) bool { return s == All })
	options := append([]string{All}, states...)

	lo, hi := defaultBoundMin, defaultBoundMax
	if fmin, fmax, ok, _ := t.MinMax(value); ok {
		lo, hi = int(fmin), int(fmax)
	}
	step := max(minSliderStep, (hi-lo)/50)

	m.state, _ = NewDropdown("state_choice", "state_choice", options)
	m.minVal, _ = NewIntSlider("min_val", "Min value:", lo, hi, step, lo)
	m.maxVal, _ = NewIntSlider("max_val", "Max value:", lo, hi, step, hi)
	m.bind(m.Refresh, m.state, m.minVal, m.maxVal)
	return m
}

func marketMissing() Note {
	return paragraph(ToneError,
		"Table must have a state column (StateName or State) and a value column (e.g. HomeValue).")
}

// RegionColumn returns the resolved region column name.
func (m *Market) RegionColumn() string { return m.regionCol }

// ValueColumn returns the resolved value column name.
func (m *Market) ValueColumn() string { return m.valueCol }

// StateControl returns the region dropdown.
func (m *Market) StateControl() *Dropdown { return m.state }

// MinControl returns the lower bound slider.
func (m *Market) MinControl() *IntSlider { return m.minVal }

// MaxControl returns the upper bound slider.
func (m *Market) MaxControl() *IntSlider { return m.maxVal }

// State returns the current view state.
func (m *Market) State() MarketState {
	if m.status != StatusInteractive {
		return MarketState{}
	}
	return MarketState{State: m.state.Value(), Min: m.minVal.Value(), Max: m.maxVal.Value()}
}

// Apply sets every control from s, rendering after each change.
func (m *Market) Apply(s MarketState) error {
	if m.status != StatusInteractive {
		return nil
	}
	if s.State != "" {
		if err := m.state.Set(s.State); err != nil {
			return err
		}
	}
	if err := m.minVal.Set(s.Min); err != nil {
		return err
	}
	return m.maxVal.Set(s.Max)
}

// Refresh re-renders the filtered preview.
func (m *Market) Refresh() {
	if m.status != StatusInteractive {
		return
	}
	m.out.Replace(m.Render(m.table, m.State())...)
}

// Filter returns the rows matching s. The source table is not modified.
// It returns nil when t lacks the resolved region or value column.
func (m *Market) Filter(t *frame.Table, s MarketState) *frame.Table {
	if m.status != StatusInteractive || !hasColumns(t, m.regionCol, m.valueCol) {
		return nil
	}
	region, _ := t.Column(m.regionCol)
	value, _ := t.Column(m.valueCol)
	lo, hi := float64(s.Min), float64(s.Max)

	return t.Filter(func(i int) bool {
		if s.State != All {
			r := region.Value(i)
			if r.Null || r.String() != s.State {
				return false
			}
		}
		v, ok := value.Value(i).Float()
		return ok && v >= lo && v <= hi
	})
}

// Render shows the match count and the first preview rows.
func (m *Market) Render(t *frame.Table, s MarketState) []Block {
	switch {
	case t == nil:
		return []Block{invalidTable("latest_home_values")}
	case m.status != StatusInteractive:
		return m.awaiting()
	case !hasColumns(t, m.regionCol, m.valueCol):
		return []Block{marketMissing()}
	}
	f := m.Filter(t, s)
	count := fmt.Sprintf("Showing %d of %d rows", f.Len(), t.Len())
	blocks := []Block{
		Note{Tone: ToneInfo, HTML: "<p><b>" + count + "</b></p>", Text: count},
		TableBlock{Table: f.Head(m.settings.previewRows)},
	}
	if f.Len() == 0 {
		blocks = append(blocks, paragraph(ToneEmpty, "No rows match the current filters."))
	}
	return blocks
}

// StateOptions returns the region choices, "All" first.
func (m *Market) StateOptions() []string {
	if m.state == nil {
		return nil
	}
	return m.state.Options()
}
