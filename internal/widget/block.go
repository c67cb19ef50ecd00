package widget

import (
	"html"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/plot"
)

// Tone classifies a Note for styling.
type Tone int

const (
	ToneInfo Tone = iota
	TonePrompt
	ToneError
	ToneEmpty
)

func (t Tone) String() string {
	switch t {
	case TonePrompt:
		return "prompt"
	case ToneError:
		return "error"
	case ToneEmpty:
		return "empty"
	default:
		return "info"
	}
}

// Block is one element of a rendered view.
type Block interface {
	isBlock()
}

// Note is a short message carried as an HTML fragment with a plain-text
// twin for terminals.
type Note struct {
	Tone Tone
	HTML string
	Text string
}

// TextBlock is preformatted text, optionally preceded by a caption line.
type TextBlock struct {
	Caption string
	Body    string
}

// TableBlock displays a table.
type TableBlock struct {
	Caption string
	Table   *frame.Table
}

// ChartBlock carries a chart model and, once a backend has drawn it, the
// backend's output.
type ChartBlock struct {
	Chart     plot.Chart
	Rendering *plot.Rendering
}

func (Note) isBlock()       {}
func (TextBlock) isBlock()  {}
func (TableBlock) isBlock() {}
func (ChartBlock) isBlock() {}

// paragraph builds a Note whose HTML is text wrapped in <p>. text is
// escaped.
func paragraph(tone Tone, text string) Note {
	return Note{Tone: tone, HTML: "<p>" + html.EscapeString(text) + "</p>", Text: text}
}

// errorNote renders a computation failure in red.
func errorNote(msg string) Note {
	return Note{
		Tone: ToneError,
		HTML: "<p style='color:red;'>Error: " + html.EscapeString(msg) + "</p>",
		Text: "Error: " + msg,
	}
}
