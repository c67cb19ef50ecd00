package plot

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/imgajeed76/homeview/internal/ui/styles"
)

const (
	defaultColumns = 80
	defaultRows    = 18
)

func init() {
	Register("terminal", func(opts Options) (Backend, error) {
		return NewTerminal(opts), nil
	})
}

// Terminal draws braille line charts for a character terminal. Tick label
// rotation is not representable and is ignored.
type Terminal struct {
	columns int
	rows    int
}

// NewTerminal returns a terminal backend sized by opts.Columns and opts.Rows.
func NewTerminal(opts Options) *Terminal {
	t := &Terminal{columns: opts.Columns, rows: opts.Rows}
	if t.columns <= 0 {
		t.columns = defaultColumns
	}
	if t.rows <= 0 {
		t.rows = defaultRows
	}
	return t
}

func (t *Terminal) Name() string { return "terminal" }

// Render draws every series as its own styled dataset, then appends a
// legend box titled by the chart's legend title.
func (t *Terminal) Render(ctx context.Context, c Chart) (Rendering, error) {
	if err := ctx.Err(); err != nil {
		return Rendering{}, err
	}
	start, end, ok := c.TimeRange()
	if !ok {
		return Rendering{}, fmt.Errorf("chart %q has no points", c.Title)
	}
	if !end.After(start) {
		end = start.Add(24 * time.Hour)
	}
	lo, hi, _ := c.ValueRange()
	if hi <= lo {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad

	chart := tslc.New(t.columns, t.rows)
	chart.SetXStep(2)
	chart.SetYStep(2)
	chart.AxisStyle = styles.AxisStyle
	chart.LabelStyle = styles.LabelStyle
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(lo, hi)
	chart.SetViewYRange(lo, hi)
	chart.Model.XLabelFormatter = xLabelFormatter(start, end)
	chart.Model.YLabelFormatter = func(_ int, v float64) string {
		return compactNumber(v)
	}

	for i, s := range c.Series {
		chart.SetDataSetStyle(s.Name, lipgloss.NewStyle().Foreground(styles.SeriesColor(i)))
		for _, p := range s.Points {
			chart.PushDataSet(s.Name, tslc.TimePoint{Time: p.Time, Value: p.Value})
		}
	}
	chart.DrawBrailleAll()
	if c.Grid {
		drawHorizontalGridlines(&chart)
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(styles.SectionHeader(c.Title))
		sb.WriteString("\n")
	}
	if c.YLabel != "" {
		sb.WriteString(styles.MutedMsg(c.YLabel))
		sb.WriteString("\n")
	}
	sb.WriteString(chart.View())
	sb.WriteString("\n")
	if c.XLabel != "" {
		sb.WriteString(strings.Repeat(" ", max(0, t.columns/2-len(c.XLabel)/2)))
		sb.WriteString(styles.MutedMsg(c.XLabel))
		sb.WriteString("\n")
	}
	sb.WriteString(legend(c))

	return Rendering{Backend: t.Name(), Text: sb.String()}, nil
}

func legend(c Chart) string {
	var lines []string
	if c.LegendTitle != "" {
		lines = append(lines, styles.SectionHeader(c.LegendTitle))
	}
	for i, s := range c.Series {
		lines = append(lines, styles.Series(i, "━━")+" "+s.Name)
	}
	body := strings.Join(lines, "\n")
	if styles.NoColor() {
		return body + "\n"
	}
	return styles.LegendStyle.Render(body) + "\n"
}

// drawHorizontalGridlines fills empty cells on every other row of the
// graph area with a faint dashed rule.
func drawHorizontalGridlines(chart *tslc.Model) {
	origin := chart.Origin()
	topY := max(0, origin.Y-chart.GraphHeight())
	for y := origin.Y - 2; y >= topY; y -= 2 {
		for x := origin.X + 1; x < chart.Width(); x++ {
			p := canvas.Point{X: x, Y: y}
			if chart.Canvas.Cell(p).Rune != 0 {
				continue
			}
			chart.Canvas.SetRuneWithStyle(p, '┈', styles.GridStyle)
		}
	}
}

func xLabelFormatter(start, end time.Time) func(int, float64) string {
	layout := "2006-01"
	if end.Sub(start) < 62*24*time.Hour {
		layout = "01-02"
	} else if end.Sub(start) > 6*365*24*time.Hour {
		layout = "2006"
	}
	return func(_ int, v float64) string {
		return time.Unix(int64(v), 0).UTC().Format(layout)
	}
}

func compactNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return trimZero(fmt.Sprintf("%.1fM", v/1e6))
	case abs >= 1e3:
		return trimZero(fmt.Sprintf("%.1fk", v/1e3))
	default:
		return trimZero(fmt.Sprintf("%.1f", v))
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}
