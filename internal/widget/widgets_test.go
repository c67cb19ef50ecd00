package widget

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/plot"
)

func noteTexts(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		if n, ok := b.(Note); ok {
			out = append(out, n.Text)
		}
	}
	return out
}

func onlyNote(t *testing.T, blocks []Block) Note {
	t.Helper()
	if len(blocks) != 1 {
		t.Fatalf("expected a single note, got %d blocks: %#v", len(blocks), blocks)
	}
	n, ok := blocks[0].(Note)
	if !ok {
		t.Fatalf("expected a Note, got %T", blocks[0])
	}
	return n
}

func tableOf(t *testing.T, blocks []Block) *frame.Table {
	t.Helper()
	for _, b := range blocks {
		if tb, ok := b.(TableBlock); ok {
			return tb.Table
		}
	}
	t.Fatalf("no table block in %#v", blocks)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────
// Data Explorer
// ─────────────────────────────────────────────────────────────────────────

func TestExplorer_NilTable(t *testing.T) {
	e := NewExplorer(nil)
	if e.Status() != StatusAwaitingInput || e.Problem().Kind != ProblemInvalidInput {
		t.Fatalf("status=%s problem=%+v", e.Status(), e.Problem())
	}
	n := onlyNote(t, e.Output().Blocks())
	if n.HTML != "<p>Please pass a valid table (e.g. <code>home_values</code>).</p>" {
		t.Fatalf("html = %q", n.HTML)
	}
	if len(e.Controls()) != 0 {
		t.Fatal("an invalid table must not render controls")
	}
}

func TestExplorer_ShapeLine(t *testing.T) {
	vals := make([]int64, 1234)
	tbl := frame.MustNew(frame.Ints("HomeValue", vals...), frame.Ints("SizeRank", vals...))
	e := NewExplorer(tbl)

	if err := e.ReportControl().Set(ReportShape.Label()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	blocks := e.Output().Blocks()
	tb, ok := blocks[0].(TextBlock)
	if !ok {
		t.Fatalf("expected TextBlock, got %T", blocks[0])
	}
	if tb.Caption != "df.shape" || tb.Body != "→ 1,234 rows × 2 columns" {
		t.Fatalf("shape block = %+v", tb)
	}
}

func TestExplorer_DefaultsToHead(t *testing.T) {
	tbl := frame.MustNew(frame.Ints("v", 1, 2, 3, 4, 5, 6, 7))
	e := NewExplorer(tbl, WithHeadRows(3))
	if e.Status() != StatusInteractive {
		t.Fatalf("status = %s", e.Status())
	}
	if e.State().Report != ReportHead {
		t.Fatalf("default report = %s", e.State().Report)
	}
	if got := tableOf(t, e.Output().Blocks()).Len(); got != 3 {
		t.Fatalf("head rows = %d, want 3", got)
	}

	tail := tableOf(t, e.Render(tbl, ExplorerState{Report: ReportTail}))
	if tail.Label(0) != "4" {
		t.Fatalf("tail starts at label %q", tail.Label(0))
	}
}

func TestExplorer_ColumnsAndDescribe(t *testing.T) {
	e := NewExplorer(frame.MustNew(frame.Strings("StateName", "CA"), frame.Strings("RegionName", "LA")))

	cols := e.Render(e.table, ExplorerState{Report: ReportColumns})
	if got := cols[0].(TextBlock).Body; got != "['StateName', 'RegionName']" {
		t.Fatalf("columns = %s", got)
	}

	desc := e.Render(e.table, ExplorerState{Report: ReportDescribe})
	if got := noteTexts(desc); len(got) != 1 || got[0] != "No numeric columns to describe." {
		t.Fatalf("describe notes = %v", got)
	}
}

func TestParseReport(t *testing.T) {
	r, err := ParseReport("info() — column types and non-null counts")
	if err != nil || r != ReportInfo {
		t.Fatalf("ParseReport label = %v, %v", r, err)
	}
	if r, _ := ParseReport("describe"); r != ReportDescribe {
		t.Fatalf("ParseReport key = %v", r)
	}
	if _, err := ParseReport("plot"); err == nil {
		t.Fatal("expected an error for an unknown report")
	}
}

// ─────────────────────────────────────────────────────────────────────────
// Market Filter
// ─────────────────────────────────────────────────────────────────────────

func TestMarket_Scenario(t *testing.T) {
	tbl := frame.MustNew(
		frame.Strings("StateName", "CA", "CA", "TX"),
		frame.Ints("HomeValue", 100, 200, 300),
	)
	m := NewMarket(tbl)
	if got := strings.Join(m.StateOptions(), ","); got != "All,CA,TX" {
		t.Fatalf("state options = %s", got)
	}
	if m.MinControl().Value() != 100 || m.MaxControl().Value() != 300 {
		t.Fatalf("sliders start at [%d, %d]", m.MinControl().Value(), m.MaxControl().Value())
	}
	if m.MinControl().StepSize() != 10000 {
		t.Fatalf("step = %d", m.MinControl().StepSize())
	}

	if err := m.StateControl().Set("CA"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	blocks := m.Output().Blocks()
	n := blocks[0].(Note)
	if n.HTML != "<p><b>Showing 2 of 3 rows</b></p>" {
		t.Fatalf("count line = %q", n.HTML)
	}
	preview := tableOf(t, blocks)
	if preview.Len() != 2 {
		t.Fatalf("preview rows = %d", preview.Len())
	}
	state, _ := preview.Column("StateName")
	for i := 0; i < preview.Len(); i++ {
		if state.Value(i).String() != "CA" {
			t.Fatalf("row %d is %s", i, state.Value(i))
		}
	}
	if tbl.Len() != 3 {
		t.Fatal("source table was modified")
	}
}

func TestMarket_MissingColumns(t *testing.T) {
	m := NewMarket(frame.MustNew(frame.Strings("RegionName", "LA")))
	if m.Status() != StatusAwaitingInput || m.Problem().Kind != ProblemMissingColumn {
		t.Fatalf("status=%s problem=%+v", m.Status(), m.Problem())
	}
	want := "Table must have a state column (StateName or State) and a value column (e.g. HomeValue)."
	if got := onlyNote(t, m.Output().Blocks()).Text; got != want {
		t.Fatalf("message = %q", got)
	}
	if len(m.Controls()) != 0 {
		t.Fatal("controls rendered for a table missing columns")
	}
}

func TestMarket_FallbackColumnsAndDefaultBounds(t *testing.T) {
	c, _ := frame.NewColumn("Price", frame.KindFloat, []frame.Value{frame.Null(frame.KindFloat)})
	m := NewMarket(frame.MustNew(frame.Strings("State", "WA"), c))

	if m.RegionColumn() != "State" || m.ValueColumn() != "Price" {
		t.Fatalf("resolved %q / %q", m.RegionColumn(), m.ValueColumn())
	}
	if m.MinControl().Min() != 0 || m.MaxControl().Max() != 1_000_000 {
		t.Fatalf("bounds = [%d, %d]", m.MinControl().Min(), m.MaxControl().Max())
	}
	if got := m.MinControl().StepSize(); got != 20000 {
		t.Fatalf("step = %d, want 1000000/50", got)
	}
	// null values never pass the range filter
	if got := noteTexts(m.Output().Blocks())[0]; got != "Showing 0 of 1 rows" {
		t.Fatalf("count = %q", got)
	}
}

func TestMarket_RangeAndIdempotence(t *testing.T) {
	tbl := frame.MustNew(
		frame.Strings("StateName", "CA", "CA", "TX", "TX"),
		frame.Ints("HomeValue", 100000, 250000, 400000, 900000),
	)
	m := NewMarket(tbl)

	cases := []struct {
		state  string
		lo, hi int
		want   int
	}{
		{All, 100000, 900000, 4},
		{All, 250000, 400000, 2},
		{"TX", 0, 500000, 1},
		{"CA", 300000, 200000, 0},
	}
	for _, tc := range cases {
		s := MarketState{State: tc.state, Min: tc.lo, Max: tc.hi}
		first := m.Render(tbl, s)
		if got := m.Filter(tbl, s).Len(); got != tc.want {
			t.Fatalf("%+v: %d rows, want %d", s, got, tc.want)
		}
		if again := m.Render(tbl, s); !reflect.DeepEqual(first, again) {
			t.Fatalf("%+v: re-render differs", s)
		}
	}
}

func TestMarket_ApplyClampsAndPreviewCap(t *testing.T) {
	vals := make([]int64, 30)
	states := make([]string, 30)
	for i := range vals {
		vals[i] = int64(i * 1000)
		states[i] = "CA"
	}
	m := NewMarket(frame.MustNew(frame.Strings("StateName", states...), frame.Ints("HomeValue", vals...)))

	if err := m.Apply(MarketState{State: All, Min: -50, Max: 1 << 30}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	s := m.State()
	if s.Min != 0 || s.Max != 29000 {
		t.Fatalf("clamped state = %+v", s)
	}
	blocks := m.Output().Blocks()
	if noteTexts(blocks)[0] != "Showing 30 of 30 rows" {
		t.Fatalf("count = %v", noteTexts(blocks))
	}
	if got := tableOf(t, blocks).Len(); got != 20 {
		t.Fatalf("preview rows = %d, want 20", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────
// Pivot Builder
// ─────────────────────────────────────────────────────────────────────────

func pivotTable() *frame.Table {
	return frame.MustNew(
		frame.Strings("StateName", "CA", "CA", "TX", "TX"),
		frame.Strings("MarketTier", "high", "mid", "mid", "mid"),
		frame.Floats("HomeValue", 100, 201, 300, 400),
	)
}

func TestPivot_PromptsUntilIndexChosen(t *testing.T) {
	p := NewPivot(pivotTable())
	if p.Status() != StatusInteractive {
		t.Fatalf("status = %s", p.Status())
	}
	n := onlyNote(t, p.Output().Blocks())
	if n.Tone != TonePrompt || n.HTML != "<p>Choose at least <b>index</b> and <b>values</b>.</p>" {
		t.Fatalf("prompt = %+v", n)
	}
}

func TestPivot_IndexOnly(t *testing.T) {
	p := NewPivot(pivotTable())
	if err := p.Apply(PivotState{Index: "StateName"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	blocks := p.Output().Blocks()
	if blocks[0].(Note).HTML != "<p><b>pivot_table result:</b></p>" {
		t.Fatalf("header = %+v", blocks[0])
	}
	pt := tableOf(t, blocks)
	if pt.Len() != 2 {
		t.Fatalf("rows = %d, want one per state", pt.Len())
	}
	col, _ := pt.Column("HomeValue")
	// mean(100, 201) = 150.5 rounds half to even
	if v, _ := col.Value(0).Float(); v != 150 {
		t.Fatalf("CA mean = %v", v)
	}
	if v, _ := col.Value(1).Float(); v != 350 {
		t.Fatalf("TX mean = %v", v)
	}
}

func TestPivot_ColumnsFillZero(t *testing.T) {
	p := NewPivot(pivotTable())
	blocks := p.Render(p.table, PivotState{Index: "StateName", Columns: "MarketTier", Values: "HomeValue", Agg: frame.AggCount})
	pt := tableOf(t, blocks)
	high, _ := pt.Column("high")
	if v, ok := high.Value(1).Float(); !ok || v != 0 {
		t.Fatalf("TX/high = %v (ok=%v), want filled 0", v, ok)
	}
	mid, _ := pt.Column("mid")
	if v, _ := mid.Value(1).Float(); v != 2 {
		t.Fatalf("TX/mid count = %v", v)
	}
}

func TestPivot_SameIndexAndColumns(t *testing.T) {
	p := NewPivot(pivotTable())
	_ = p.Apply(PivotState{Index: "StateName", Columns: "StateName"})

	n := onlyNote(t, p.Output().Blocks())
	if n.HTML != "<p style='color:red;'>Error: index and columns must be different fields</p>" {
		t.Fatalf("error note = %q", n.HTML)
	}
	if p.Status() != StatusInteractive {
		t.Fatal("a computation failure must leave the widget interactive")
	}

	_ = p.ColumnsControl().Set(None)
	if got := tableOf(t, p.Output().Blocks()).Len(); got != 2 {
		t.Fatalf("pivot after correction has %d rows", got)
	}
}

func TestPivot_MissingColumns(t *testing.T) {
	p := NewPivot(frame.MustNew(frame.Ints("HomeValue", 1)))
	want := "Table needs both categorical and numeric columns for a pivot."
	if got := onlyNote(t, p.Output().Blocks()).Text; got != want || p.Status() != StatusAwaitingInput {
		t.Fatalf("message = %q status = %s", got, p.Status())
	}
}

func TestPivot_ControlDomains(t *testing.T) {
	p := NewPivot(pivotTable())
	if got := strings.Join(p.IndexControl().Options(), ","); got != "(none),StateName,MarketTier" {
		t.Fatalf("index options = %s", got)
	}
	if got := strings.Join(p.ValuesControl().Options(), ","); got != "HomeValue" {
		t.Fatalf("values options = %s", got)
	}
	if got := strings.Join(p.AggControl().Options(), ","); got != "mean,median,sum,count,min,max" {
		t.Fatalf("agg options = %s", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────
// Metro Trends
// ─────────────────────────────────────────────────────────────────────────

func trendsTable() *frame.Table {
	return frame.MustNew(
		frame.Strings("Date", "2024-01-31", "2024-02-29", "2024-01-31", "2024-02-29", "2024-01-31"),
		frame.Strings("RegionName", "Boise, ID", "Boise, ID", "Austin, TX", "Austin, TX", "Denver, CO"),
		frame.Floats("HomeValue", 400, 410, 500, 490, 600),
	)
}

func TestTrends_DefaultSelectionAndChart(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	w := NewTrends(trendsTable(), WithBackend("terminal", plot.Options{Columns: 40, Rows: 10}))
	if w.Status() != StatusInteractive {
		t.Fatalf("status = %s problem = %+v", w.Status(), w.Problem())
	}
	if w.Intro() != "Select one or more metros to compare over time:" {
		t.Fatalf("intro = %q", w.Intro())
	}
	if got := strings.Join(w.State().Metros, ","); got != "Austin, TX" {
		t.Fatalf("default selection = %s", got)
	}

	blocks := w.Output().Blocks()
	cb, ok := blocks[0].(ChartBlock)
	if !ok {
		t.Fatalf("expected a chart, got %#v", blocks)
	}
	c := cb.Chart
	if c.Title != "Home Value Over Time by Metro" || c.XLabel != "Date" || c.YLabel != "HomeValue" || c.LegendTitle != "RegionName" {
		t.Fatalf("chart labels = %+v", c)
	}
	if !c.Grid || c.XTickRotation != 45 || c.LineWidth != 2 || c.Width != 1200 || c.Height != 600 {
		t.Fatalf("chart presentation = %+v", c)
	}
	if cb.Rendering == nil || cb.Rendering.Backend != "terminal" {
		t.Fatalf("chart was not drawn: %+v", cb.Rendering)
	}
}

func TestTrends_SeriesSortedAndChronological(t *testing.T) {
	w := NewTrends(trendsTable())
	blocks := w.Render(w.table, TrendsState{Metros: []string{"Boise, ID", "Austin, TX"}})
	c := blocks[0].(ChartBlock).Chart
	if len(c.Series) != 2 || c.Series[0].Name != "Austin, TX" || c.Series[1].Name != "Boise, ID" {
		t.Fatalf("series = %+v", c.Series)
	}
	pts := c.Series[1].Points
	if len(pts) != 2 || !pts[0].Time.Before(pts[1].Time) || pts[0].Value != 400 {
		t.Fatalf("Boise points = %+v", pts)
	}
	if !pts[0].Time.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first date = %v", pts[0].Time)
	}
}

func TestTrends_EmptySelectionPrompts(t *testing.T) {
	w := NewTrends(trendsTable())
	if err := w.MetroControl().Set(nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	n := onlyNote(t, w.Output().Blocks())
	if n.HTML != "<p>Select at least one metro.</p>" {
		t.Fatalf("prompt = %q", n.HTML)
	}
}

func TestTrends_NoData(t *testing.T) {
	w := NewTrends(trendsTable())
	n := onlyNote(t, w.Render(w.table, TrendsState{Metros: []string{"Tulsa, OK"}}))
	if n.Text != "No data for selected metros." || n.Tone != ToneEmpty {
		t.Fatalf("note = %+v", n)
	}
}

func TestTrends_MissingBackend(t *testing.T) {
	w := NewTrends(trendsTable(), WithBackend("matplotlib", plot.Options{}))
	if w.Status() != StatusAwaitingInput || w.Problem().Kind != ProblemMissingDependency {
		t.Fatalf("status=%s problem=%+v", w.Status(), w.Problem())
	}
	msg := onlyNote(t, w.Output().Blocks()).Text
	if !strings.Contains(msg, "homeview config plot.backend") || !strings.Contains(msg, "matplotlib") {
		t.Fatalf("message = %q", msg)
	}
}

func TestTrends_MissingColumns(t *testing.T) {
	w := NewTrends(frame.MustNew(frame.Strings("RegionName", "x"), frame.Ints("HomeValue", 1)))
	if w.Problem() == nil || w.Problem().Kind != ProblemMissingColumn {
		t.Fatalf("problem = %+v", w.Problem())
	}
}

func TestTrends_ColumnFallbacksAndCap(t *testing.T) {
	names := make([]string, 150)
	months := make([]string, 150)
	vals := make([]int64, 150)
	for i := range names {
		names[i] = strings.Repeat("m", 1+i/26) + string(rune('a'+i%26))
		months[i] = "2024-01"
		vals[i] = int64(i)
	}
	w := NewTrends(frame.MustNew(
		frame.Strings("Month", months...),
		frame.Strings("Metro", names...),
		frame.Ints("ZHVI", vals...),
	), WithMaxEntities(100))

	if w.DateColumn() != "Month" || w.EntityColumn() != "Metro" || w.ValueColumn() != "ZHVI" {
		t.Fatalf("resolved %q %q %q", w.DateColumn(), w.EntityColumn(), w.ValueColumn())
	}
	if got := len(w.MetroControl().Options()); got != 100 {
		t.Fatalf("options = %d, want capped at 100", got)
	}
	if w.MetroControl().Rows() != 12 {
		t.Fatalf("rows = %d", w.MetroControl().Rows())
	}
}

// ─────────────────────────────────────────────────────────────────────────
// Render on degenerate input
// ─────────────────────────────────────────────────────────────────────────

func TestRender_DegenerateTables(t *testing.T) {
	src := frame.MustNew(
		frame.Strings("StateName", "CA", "TX"),
		frame.Strings("Date", "2024-01-31", "2024-01-31"),
		frame.Strings("RegionName", "Austin, TX", "Boise, ID"),
		frame.Ints("HomeValue", 100, 200),
	)
	other := frame.MustNew(frame.Strings("City", "LA"))
	market := NewMarket(src)
	trends := NewTrends(src)
	explorer := NewExplorer(src)
	pivot := NewPivot(src)

	cases := []struct {
		name   string
		render func() []Block
		want   string
	}{
		{"explorer nil", func() []Block { return explorer.Render(nil, ExplorerState{Report: ReportShape}) },
			"Please pass a valid table (e.g. home_values)."},
		{"market nil", func() []Block { return market.Render(nil, MarketState{State: "CA"}) },
			"Please pass a valid table (e.g. latest_home_values)."},
		{"market other table", func() []Block { return market.Render(other, MarketState{State: "CA"}) },
			"Table must have a state column (StateName or State) and a value column (e.g. HomeValue)."},
		{"market awaiting", func() []Block { return NewMarket(other).Render(src, MarketState{State: "CA"}) },
			"Table must have a state column (StateName or State) and a value column (e.g. HomeValue)."},
		{"market awaiting nil", func() []Block { return NewMarket(nil).Render(src, MarketState{}) },
			"Please pass a valid table (e.g. latest_home_values)."},
		{"trends nil", func() []Block { return trends.Render(nil, TrendsState{Metros: []string{"Austin, TX"}}) },
			"Please pass a valid table (e.g. home_values)."},
		{"trends other table", func() []Block { return trends.Render(other, TrendsState{Metros: []string{"Austin, TX"}}) },
			"Table needs Date, RegionName (or similar), and a value column (e.g. HomeValue)."},
		{"trends awaiting", func() []Block { return NewTrends(other).Render(src, TrendsState{Metros: []string{"Austin, TX"}}) },
			"Table needs Date, RegionName (or similar), and a value column (e.g. HomeValue)."},
		{"pivot nil", func() []Block { return pivot.Render(nil, PivotState{Index: "StateName", Values: "HomeValue"}) },
			"Please pass a valid table (e.g. home_values_pivot)."},
	}
	for _, tc := range cases {
		n := onlyNote(t, tc.render())
		if n.Text != tc.want || n.Tone != ToneError {
			t.Fatalf("%s: note = %+v, want %q", tc.name, n, tc.want)
		}
	}

	if f := market.Filter(other, MarketState{State: All}); f != nil {
		t.Fatalf("Filter on a table without the resolved columns = %v, want nil", f)
	}
	if n := onlyNote(t, pivot.Render(other, PivotState{Index: "StateName", Values: "HomeValue"})); n.Tone != ToneError {
		t.Fatalf("pivot on other table: %+v", n)
	}
}

func TestMarket_RegionNamedAll(t *testing.T) {
	m := NewMarket(frame.MustNew(
		frame.Strings("StateName", "All", "TX"),
		frame.Ints("HomeValue", 100, 200),
	))
	if got := strings.Join(m.StateOptions(), ","); got != "All,TX" {
		t.Fatalf("options = %s, want All,TX", got)
	}
	if got := m.Filter(m.table, MarketState{State: All, Min: 0, Max: 1000}).Len(); got != 2 {
		t.Fatalf("All selects %d rows, want 2", got)
	}
}

func TestExplorer_LabelsFollowHeadRows(t *testing.T) {
	tbl := frame.MustNew(frame.Ints("HomeValue", 1, 2, 3, 4, 5, 6, 7, 8))
	e := NewExplorer(tbl, WithHeadRows(3))

	opts := e.ReportControl().Options()
	if opts[0] != "head() — first 3 rows" || opts[1] != "tail() — last 3 rows" {
		t.Fatalf("labels = %q", opts[:2])
	}
	if err := e.ReportControl().Set(e.Label(ReportTail)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := tableOf(t, e.Output().Blocks()).Len(); got != 3 {
		t.Fatalf("tail rows = %d, want 3", got)
	}
	if NewExplorer(tbl).ReportControl().Options()[0] != ReportHead.Label() {
		t.Fatal("default labels should match Report.Label")
	}
}
