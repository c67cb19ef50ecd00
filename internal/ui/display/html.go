package display

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/plot"
	"github.com/imgajeed76/homeview/internal/widget"
)

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
section { margin-bottom: 2em; }
table.dataframe { border-collapse: collapse; }
table.dataframe th, table.dataframe td { border: 1px solid #ddd; padding: 4px 8px; text-align: right; }
table.dataframe thead th { background: #f5f5f5; }
pre { background: #f8f8f8; padding: 8px; }
code.caption { color: #666; }
</style>
</head>
<body>
`

// HTML collects widget output into a standalone document. Charts are
// embedded as inline SVG.
type HTML struct {
	title    string
	sections []string
}

// NewHTML returns an empty document with the given title.
func NewHTML(title string) *HTML {
	return &HTML{title: title}
}

// Show appends one section holding the rendered blocks.
func (d *HTML) Show(blocks []widget.Block) error {
	var sb strings.Builder
	sb.WriteString("<section>\n")
	for _, b := range blocks {
		switch b := b.(type) {
		case widget.Note:
			sb.WriteString(b.HTML + "\n")
		case widget.TextBlock:
			writeCaption(&sb, b.Caption)
			if b.Body != "" {
				sb.WriteString("<pre>" + html.EscapeString(b.Body) + "</pre>\n")
			}
		case widget.TableBlock:
			writeCaption(&sb, b.Caption)
			if b.Table != nil {
				writeTable(&sb, b.Table)
			}
		case widget.ChartBlock:
			if err := writeChart(&sb, b); err != nil {
				return err
			}
		}
	}
	sb.WriteString("</section>\n")
	d.sections = append(d.sections, sb.String())
	return nil
}

// Len returns the number of sections collected.
func (d *HTML) Len() int { return len(d.sections) }

// WriteTo writes the complete document.
func (d *HTML) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlHead, html.EscapeString(d.title))
	for _, s := range d.sections {
		buf.WriteString(s)
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.WriteTo(w)
}

func writeCaption(sb *strings.Builder, caption string) {
	if caption != "" {
		sb.WriteString(`<p><code class="caption">` + html.EscapeString(caption) + "</code></p>\n")
	}
}

func writeTable(sb *strings.Builder, t *frame.Table) {
	cols := t.Columns()
	sb.WriteString(`<table class="dataframe">` + "\n<thead>\n<tr><th>" + html.EscapeString(t.IndexName()) + "</th>")
	for _, c := range cols {
		sb.WriteString("<th>" + html.EscapeString(c.Name()) + "</th>")
	}
	sb.WriteString("</tr>\n</thead>\n<tbody>\n")
	for i := 0; i < t.Len(); i++ {
		sb.WriteString("<tr><th>" + html.EscapeString(t.Label(i)) + "</th>")
		for _, c := range cols {
			sb.WriteString("<td>" + html.EscapeString(c.Value(i).String()) + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

func writeChart(sb *strings.Builder, b widget.ChartBlock) error {
	svg, err := plot.NewImage("svg", plot.Options{})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := svg.Encode(b.Chart, &buf); err != nil {
		// Fall back to whatever the backend drew.
		if b.Rendering != nil && b.Rendering.Text != "" {
			sb.WriteString("<pre>" + html.EscapeString(ansi.Strip(b.Rendering.Text)) + "</pre>\n")
			return nil
		}
		return fmt.Errorf("embed chart %q: %w", b.Chart.Title, err)
	}
	sb.WriteString(`<figure class="chart">` + "\n")
	sb.Write(buf.Bytes())
	sb.WriteString("\n</figure>\n")
	return nil
}
