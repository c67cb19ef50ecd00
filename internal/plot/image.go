package plot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/imgajeed76/homeview/internal/util"
)

const (
	defaultWidth  = 1200
	defaultHeight = 600
)

func init() {
	Register("png", func(opts Options) (Backend, error) {
		return NewImage("png", opts)
	})
	Register("svg", func(opts Options) (Backend, error) {
		return NewImage("svg", opts)
	})
}

// Image writes charts as PNG or SVG files into an output directory.
type Image struct {
	format string
	dir    string
}

// NewImage returns an image backend for format "png" or "svg".
func NewImage(format string, opts Options) (*Image, error) {
	if format != "png" && format != "svg" {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotFound, format)
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "homeview")
	}
	return &Image{format: format, dir: dir}, nil
}

func (b *Image) Name() string { return b.format }

// Render encodes c and writes it to a file named by the chart title and a
// hash of the encoded image, so an unchanged chart maps to the same path.
func (b *Image) Render(ctx context.Context, c Chart) (Rendering, error) {
	if err := ctx.Err(); err != nil {
		return Rendering{}, err
	}
	var buf bytes.Buffer
	if err := b.Encode(c, &buf); err != nil {
		return Rendering{}, err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return Rendering{}, fmt.Errorf("create chart directory: %w", err)
	}
	name := fmt.Sprintf("%s-%s.%s", slug(c.Title), util.ShortHash(buf.Bytes(), 16), b.format)
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Rendering{}, fmt.Errorf("write chart: %w", err)
	}
	return Rendering{Backend: b.format, Path: path, Text: fmt.Sprintf("chart written to %s", path)}, nil
}

// Encode renders c in the backend's format to buf.
func (b *Image) Encode(c Chart, buf *bytes.Buffer) error {
	graph, err := buildGraph(c)
	if err != nil {
		return err
	}
	provider := chart.PNG
	if b.format == "svg" {
		provider = chart.SVG
	}
	if err := graph.Render(provider, buf); err != nil {
		return fmt.Errorf("render %s chart: %w", b.format, err)
	}
	return nil
}

func buildGraph(c Chart) (*chart.Chart, error) {
	start, end, ok := c.TimeRange()
	if !ok {
		return nil, fmt.Errorf("chart %q has no points", c.Title)
	}

	lineWidth := c.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}
	series := make([]chart.Series, 0, len(c.Series))
	for i, s := range c.Series {
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = p.Time
			ys[j] = p.Value
		}
		// A single observation still needs a non-zero x span to draw.
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: lineWidth,
				StrokeColor: chart.GetDefaultColor(i),
			},
		})
	}

	layout := "2006-01"
	if end.Sub(start) < 62*24*time.Hour {
		layout = "2006-01-02"
	}
	grid := chart.Style{
		Hidden:      !c.Grid,
		StrokeColor: drawing.ColorFromHex("dddddd"),
		StrokeWidth: 1,
	}

	width, height := c.Width, c.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	graph := &chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 72}},
		XAxis: chart.XAxis{
			Name:           c.XLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat(layout),
			Style:          chart.Style{TextRotationDegrees: c.XTickRotation},
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           c.YLabel,
			GridMajorStyle: grid,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return compactNumber(f)
				}
				return ""
			},
		},
		Series: series,
	}
	if lo, hi, _ := c.ValueRange(); hi <= lo {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph), legendTitle(c.LegendTitle)}
	return graph, nil
}

// legendTitle draws the legend heading just above the legend box, which
// chart.Legend places at the top-left of the canvas.
func legendTitle(title string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		if title == "" {
			return
		}
		style := chart.Style{
			FontSize:  9,
			FontColor: drawing.ColorFromHex("333333"),
		}.InheritFrom(defaults)
		style.WriteTextOptionsToRenderer(r)
		r.Text(title, box.Left+5, box.Top-2)
	}
}

func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "chart"
	}
	return out
}
