// Package widget binds a frame.Table to controls and re-renders a view on
// every control change.
//
// Every widget follows the same shape: validate the table, derive the
// control domains from it once, bind the controls to a render function and
// render on change. Validation failures never return errors; they leave
// the widget AwaitingInput with a single explanatory Note in its Output.
//
// Rendering is split in two. Each widget's Render method is a pure function
// of (table, state) returning blocks. Refresh calls it with the current
// control values and publishes the result to the widget's Output, after
// drawing any chart with the configured plot backend.
package widget

import (
	"slices"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
)

// Status is a widget's lifecycle state. A widget leaves Constructed
// exactly once, for AwaitingInput or Interactive, and never goes back.
type Status int

const (
	StatusConstructed Status = iota
	StatusAwaitingInput
	StatusInteractive
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingInput:
		return "awaiting-input"
	case StatusInteractive:
		return "interactive"
	default:
		return "constructed"
	}
}

// ProblemKind classifies why a widget could not proceed or why a render
// shows no result.
type ProblemKind int

const (
	ProblemInvalidInput ProblemKind = iota + 1
	ProblemMissingColumn
	ProblemMissingDependency
	ProblemComputation
	ProblemEmptyResult
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemInvalidInput:
		return "invalid input"
	case ProblemMissingColumn:
		return "missing column"
	case ProblemMissingDependency:
		return "missing dependency"
	case ProblemComputation:
		return "computation failure"
	case ProblemEmptyResult:
		return "empty result"
	default:
		return "unknown"
	}
}

// Problem explains why a widget is AwaitingInput.
type Problem struct {
	Kind    ProblemKind
	Message string
}

// Widget is the common surface of the four widgets.
type Widget interface {
	Name() string
	Status() Status
	// Problem is non-nil when Status is AwaitingInput.
	Problem() *Problem
	// Intro is a line shown above the controls, or "".
	Intro() string
	Controls() []Control
	Output() *Output
	// Refresh re-renders from the current control values.
	Refresh()
}

// Output holds the current rendered view. Replace supersedes it.
type Output struct {
	blocks []Block
	ids    []string
	subs   map[string]func([]Block)
}

// Blocks returns the current view.
func (o *Output) Blocks() []Block {
	return slices.Clone(o.blocks)
}

// Replace swaps in a new view and notifies subscribers.
func (o *Output) Replace(blocks ...Block) {
	o.blocks = slices.Clone(blocks)
	for _, id := range slices.Clone(o.ids) {
		if fn, ok := o.subs[id]; ok {
			fn(o.Blocks())
		}
	}
}

// Subscribe registers fn to receive every new view.
func (o *Output) Subscribe(fn func([]Block)) string {
	if o.subs == nil {
		o.subs = make(map[string]func([]Block))
	}
	id := util.NewULID()
	o.ids = append(o.ids, id)
	o.subs[id] = fn
	return id
}

// Unsubscribe removes a subscriber.
func (o *Output) Unsubscribe(id string) bool {
	if _, ok := o.subs[id]; !ok {
		return false
	}
	delete(o.subs, id)
	o.ids = slices.DeleteFunc(o.ids, func(s string) bool { return s == id })
	return true
}

// base carries the lifecycle and output shared by every widget.
type base struct {
	name     string
	status   Status
	problem  *Problem
	notice   Note
	intro    string
	controls []Control
	out      Output
	settings settings
}

func (b *base) Name() string        { return b.name }
func (b *base) Status() Status      { return b.status }
func (b *base) Problem() *Problem   { return b.problem }
func (b *base) Intro() string       { return b.intro }
func (b *base) Output() *Output     { return &b.out }
func (b *base) Controls() []Control { return slices.Clone(b.controls) }

// fail moves the widget to AwaitingInput with note as its only output.
func (b *base) fail(kind ProblemKind, note Note) {
	if b.status != StatusConstructed {
		return
	}
	b.status = StatusAwaitingInput
	b.problem = &Problem{Kind: kind, Message: note.Text}
	b.notice = note
	b.controls = nil
	b.out.Replace(note)
}

// bind subscribes refresh to every control, moves the widget to
// Interactive and renders once.
func (b *base) bind(refresh func(), controls ...Control) {
	if b.status != StatusConstructed {
		return
	}
	b.controls = controls
	for _, c := range controls {
		c.Subscribe(func(Change) { refresh() })
	}
	b.status = StatusInteractive
	refresh()
}

// awaiting returns the note a widget was left AwaitingInput with.
func (b *base) awaiting() []Block {
	return []Block{b.notice}
}

// hasColumns reports whether t is non-nil and has every named column.
func hasColumns(t *frame.Table, names ...string) bool {
	if t == nil {
		return false
	}
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// invalidTable is the message for a nil table. example names the dataset
// the widget is usually called with.
func invalidTable(example string) Note {
	return Note{
		Tone: ToneError,
		HTML: "<p>Please pass a valid table (e.g. <code>" + example + "</code>).</p>",
		Text: "Please pass a valid table (e.g. " + example + ").",
	}
}
