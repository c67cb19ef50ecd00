package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/homeview/internal/frame"
)

// WriteJSON writes the rows of t as a JSON array of objects. Numbers stay
// numbers, nulls become null and the index, when named, is included.
func WriteJSON(w io.Writer, t *frame.Table) error {
	cols := t.Columns()
	idx := t.Index()
	results := make([]map[string]any, t.Len())

	for i := range results {
		obj := make(map[string]any, len(cols)+1)
		if idx != nil && t.IndexName() != "" {
			obj[t.IndexName()] = jsonValue(idx.Value(i))
		}
		for _, c := range cols {
			obj[c.Name()] = jsonValue(c.Value(i))
		}
		results[i] = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func jsonValue(v frame.Value) any {
	if v.Null {
		return nil
	}
	switch v.Kind {
	case frame.KindInt, frame.KindBool:
		return v.Raw
	case frame.KindFloat:
		f, _ := v.Float()
		return f
	default:
		return v.String()
	}
}

// WritePlain writes an aligned table for non-TTY output. Content is never
// truncated. Numeric columns are right-aligned. With footer set a row
// count follows the table.
func WritePlain(w io.Writer, g Grid, footer bool) error {
	if len(g.Columns) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	colWidths := make([]int, len(g.Columns))
	for i, name := range g.Columns {
		colWidths[i] = lipgloss.Width(name)
	}
	for _, row := range g.Rows {
		for i, val := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(val))
			}
		}
	}

	var sb strings.Builder
	writeLine := func(cells []string) {
		var line strings.Builder
		for i := range colWidths {
			if i > 0 {
				line.WriteString("  ")
			}
			var val string
			if i < len(cells) {
				val = cells[i]
			}
			if g.Numeric[i] {
				line.WriteString(padLeft(val, colWidths[i]))
			} else {
				line.WriteString(pad(val, colWidths[i]))
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	writeLine(g.Columns)
	rules := make([]string, len(colWidths))
	for i, cw := range colWidths {
		rules[i] = strings.Repeat("─", cw)
	}
	writeLine(rules)
	for _, row := range g.Rows {
		writeLine(row)
	}
	if footer {
		fmt.Fprintf(&sb, "\n(%d rows)\n", len(g.Rows))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// pad adds spaces on the right to reach the desired width.
func pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft adds spaces on the left to reach the desired width.
func padLeft(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// Truncate shortens a string to fit width, adding "..." if needed.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width > 3 {
		return string(r[:width-3]) + "..."
	}
	return string(r[:max(0, width)])
}

// PadOrTruncate pads or truncates to exact width (for the TUI browser).
func PadOrTruncate(s string, width int) string {
	if len([]rune(s)) > width {
		return Truncate(s, width)
	}
	return pad(s, width)
}

// FitRight is PadOrTruncate with right alignment.
func FitRight(s string, width int) string {
	if len([]rune(s)) > width {
		return Truncate(s, width)
	}
	return padLeft(s, width)
}
