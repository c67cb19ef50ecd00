package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
)

// Report is one of the Data Explorer's canned summaries.
type Report string

const (
	ReportHead     Report = "head"
	ReportTail     Report = "tail"
	ReportShape    Report = "shape"
	ReportInfo     Report = "info"
	ReportDescribe Report = "describe"
	ReportColumns  Report = "columns"
)

// Reports lists the reports in menu order.
var Reports = []Report{ReportHead, ReportTail, ReportShape, ReportInfo, ReportDescribe, ReportColumns}

var reportLabels = map[Report]string{
	ReportHead:     "head() — first 5 rows",
	ReportTail:     "tail() — last 5 rows",
	ReportShape:    "shape — (rows, columns)",
	ReportInfo:     "info() — column types and non-null counts",
	ReportDescribe: "describe() — summary statistics",
	ReportColumns:  "columns — column names",
}

var reportCaptions = map[Report]string{
	ReportHead:     "df.head()",
	ReportTail:     "df.tail()",
	ReportShape:    "df.shape",
	ReportInfo:     "df.info()",
	ReportDescribe: "df.describe()",
	ReportColumns:  "df.columns",
}

// Label returns the menu text of a report at the default preview size.
func (r Report) Label() string { return reportLabels[r] }

// LabelFor returns the menu text of a report whose head and tail previews
// show n rows.
func (r Report) LabelFor(n int) string {
	switch r {
	case ReportHead:
		return fmt.Sprintf("head() — first %d rows", n)
	case ReportTail:
		return fmt.Sprintf("tail() — last %d rows", n)
	}
	return reportLabels[r]
}

// ParseReport accepts a report key ("describe") or its menu label.
func ParseReport(s string) (Report, error) {
	for _, r := range Reports {
		if s == string(r) || s == r.Label() {
			return r, nil
		}
	}
	return "", fmt.Errorf("report %q: %w", s, ErrInvalidChoice)
}

// ReportNames returns the report keys in menu order.
func ReportNames() []string {
	names := make([]string, len(Reports))
	for i, r := range Reports {
		names[i] = string(r)
	}
	return names
}

// ExplorerState is the Data Explorer's view state.
type ExplorerState struct {
	Report Report
}

// Explorer lets the user pick one summary report of a table.
type Explorer struct {
	base
	table  *frame.Table
	report *Dropdown
}

// NewExplorer builds a Data Explorer. A nil table leaves it AwaitingInput.
func NewExplorer(t *frame.Table, opts ...Option) *Explorer {
	e := &Explorer{base: base{name: "explore", settings: applyOptions(opts)}, table: t}
	if t == nil {
		e.fail(ProblemInvalidInput, invalidTable("home_values"))
		return e
	}

	labels := make([]string, len(Reports))
	for i, r := range Reports {
		labels[i] = r.LabelFor(e.settings.headRows)
	}
	e.report, _ = NewDropdown("method", "method", labels)
	e.bind(e.Refresh, e.report)
	return e
}

// Label returns the menu text of r as this explorer shows it.
func (e *Explorer) Label(r Report) string { return r.LabelFor(e.settings.headRows) }

// ReportControl returns the report dropdown, or nil when AwaitingInput.
func (e *Explorer) ReportControl() *Dropdown { return e.report }

// State returns the current view state.
func (e *Explorer) State() ExplorerState {
	if e.report == nil {
		return ExplorerState{}
	}
	return ExplorerState{Report: Reports[e.report.Index()]}
}

// Refresh re-renders the current report.
func (e *Explorer) Refresh() {
	if e.status != StatusInteractive {
		return
	}
	e.out.Replace(e.Render(e.table, e.State())...)
}

// Render computes the blocks for one report.
func (e *Explorer) Render(t *frame.Table, s ExplorerState) []Block {
	if t == nil {
		return []Block{invalidTable("home_values")}
	}
	caption := reportCaptions[s.Report]
	n := e.settings.headRows

	switch s.Report {
	case ReportHead:
		return []Block{TableBlock{Caption: caption, Table: t.Head(n)}}
	case ReportTail:
		return []Block{TableBlock{Caption: caption, Table: t.Tail(n)}}
	case ReportShape:
		return []Block{TextBlock{Caption: caption, Body: ShapeLine(t)}}
	case ReportInfo:
		var sb strings.Builder
		if err := t.Info(&sb); err != nil {
			return []Block{errorNote(err.Error())}
		}
		return []Block{TextBlock{Caption: caption, Body: strings.TrimRight(sb.String(), "\n")}}
	case ReportDescribe:
		d, err := t.Describe()
		if errors.Is(err, frame.ErrNoNumericColumns) {
			return []Block{TextBlock{Caption: caption}, paragraph(ToneEmpty, "No numeric columns to describe.")}
		}
		if err != nil {
			return []Block{errorNote(err.Error())}
		}
		return []Block{TableBlock{Caption: caption, Table: d}}
	case ReportColumns:
		return []Block{TextBlock{Caption: caption, Body: ColumnList(t)}}
	}
	return []Block{errorNote(fmt.Sprintf("unknown report %q", s.Report))}
}

// ShapeLine formats a table's shape as "→ 1,234 rows × 5 columns".
func ShapeLine(t *frame.Table) string {
	rows, cols := t.Shape()
	return fmt.Sprintf("→ %s rows × %d columns", util.FormatInt(rows), cols)
}

// ColumnList formats the column names as a bracketed quoted list.
func ColumnList(t *frame.Table) string {
	names := t.ColumnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + strings.ReplaceAll(n, "'", `\'`) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
