// Package display shows widget output. Terminal writes styled text to a
// stream; HTML collects a standalone document with one section per
// widget output.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/imgajeed76/homeview/internal/ui/styles"
	"github.com/imgajeed76/homeview/internal/ui/table"
	"github.com/imgajeed76/homeview/internal/widget"
)

// Display presents rendered widget output.
type Display interface {
	Show(blocks []widget.Block) error
}

// Terminal writes blocks as text, styled unless colors are disabled.
type Terminal struct {
	w     io.Writer
	plain bool
}

// NewTerminal returns a terminal display writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Show writes one rendered view followed by a blank line.
func (d *Terminal) Show(blocks []widget.Block) error {
	_, err := io.WriteString(d.w, d.text(blocks)+"\n")
	return err
}

// Plain renders blocks as unstyled text. Chart renderings are included
// with their escape sequences stripped.
func Plain(blocks []widget.Block) string {
	d := &Terminal{plain: true}
	return d.text(blocks)
}

func (d *Terminal) style(s func(string) string, text string) string {
	if d.plain {
		return text
	}
	return s(text)
}

func (d *Terminal) text(blocks []widget.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b := b.(type) {
		case widget.Note:
			sb.WriteString(d.note(b))
			sb.WriteString("\n")

		case widget.TextBlock:
			if b.Caption != "" {
				sb.WriteString(d.style(styles.Caption, b.Caption) + "\n")
			}
			if b.Body != "" {
				sb.WriteString(b.Body + "\n")
			}

		case widget.TableBlock:
			if b.Caption != "" {
				sb.WriteString(d.style(styles.Caption, b.Caption) + "\n")
			}
			if b.Table == nil {
				continue
			}
			var buf strings.Builder
			_ = table.WritePlain(&buf, table.NewGrid(b.Table), false)
			out := buf.String()
			if !d.plain {
				out = styleHeader(out)
			}
			sb.WriteString(out)

		case widget.ChartBlock:
			sb.WriteString(d.chart(b))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (d *Terminal) note(n widget.Note) string {
	switch n.Tone {
	case widget.TonePrompt:
		return d.style(styles.PromptMsg, n.Text)
	case widget.ToneError:
		return d.style(styles.FailMsg, n.Text)
	case widget.ToneEmpty:
		return d.style(styles.EmptyMsg, n.Text)
	default:
		return d.style(styles.SectionHeader, n.Text)
	}
}

func (d *Terminal) chart(b widget.ChartBlock) string {
	r := b.Rendering
	switch {
	case r == nil:
		return fmt.Sprintf("%s (%d series, not drawn)\n", b.Chart.Title, len(b.Chart.Series))
	case r.Path != "":
		return fmt.Sprintf("%s written to %s\n", b.Chart.Title, r.Path)
	case d.plain:
		return ansi.Strip(r.Text) + "\n"
	default:
		return r.Text + "\n"
	}
}

// styleHeader colors the first line of a plain table.
func styleHeader(s string) string {
	head, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return s
	}
	return styles.Render(styles.HeaderStyle, head) + "\n" + rest
}
