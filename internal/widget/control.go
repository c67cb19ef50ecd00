package widget

import (
	"errors"
	"fmt"
	"slices"

	"github.com/imgajeed76/homeview/internal/util"
)

// ErrInvalidChoice is returned when a control is set to a value outside
// its domain.
var ErrInvalidChoice = errors.New("value is not one of the control's options")

// Change describes a control value update. Old and New hold the control's
// value type: string for Dropdown, int for IntSlider, []string for
// SelectMultiple.
type Change struct {
	Control string
	Old     any
	New     any
}

// Observer receives control changes.
type Observer func(Change)

// Control is a UI element whose value drives a widget render.
type Control interface {
	Name() string
	Description() string
	Subscribe(fn Observer) string
	Unsubscribe(id string) bool
	// Step moves the value by delta positions within the domain.
	Step(delta int) error
}

// observers keeps subscribers in registration order.
type observers struct {
	ids []string
	fns map[string]Observer
}

func (o *observers) subscribe(fn Observer) string {
	if o.fns == nil {
		o.fns = make(map[string]Observer)
	}
	id := util.NewULID()
	o.ids = append(o.ids, id)
	o.fns[id] = fn
	return id
}

func (o *observers) unsubscribe(id string) bool {
	if _, ok := o.fns[id]; !ok {
		return false
	}
	delete(o.fns, id)
	o.ids = slices.DeleteFunc(o.ids, func(s string) bool { return s == id })
	return true
}

func (o *observers) notify(c Change) {
	// Copy so an observer may unsubscribe while being notified.
	ids := slices.Clone(o.ids)
	for _, id := range ids {
		if fn, ok := o.fns[id]; ok {
			fn(c)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────
// Dropdown
// ─────────────────────────────────────────────────────────────────────────

// Dropdown selects exactly one of a fixed list of options.
type Dropdown struct {
	name    string
	desc    string
	options []string
	index   int
	obs     observers
}

// NewDropdown creates a dropdown showing the first option.
func NewDropdown(name, description string, options []string) (*Dropdown, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("dropdown %q: %w", name, ErrInvalidChoice)
	}
	return &Dropdown{name: name, desc: description, options: slices.Clone(options)}, nil
}

func (d *Dropdown) Name() string                { return d.name }
func (d *Dropdown) Description() string         { return d.desc }
func (d *Dropdown) Subscribe(fn Observer) string { return d.obs.subscribe(fn) }
func (d *Dropdown) Unsubscribe(id string) bool  { return d.obs.unsubscribe(id) }

// Options returns the option list.
func (d *Dropdown) Options() []string { return slices.Clone(d.options) }

// Value returns the selected option.
func (d *Dropdown) Value() string { return d.options[d.index] }

// Index returns the position of the selected option.
func (d *Dropdown) Index() int { return d.index }

// Set selects v. Selecting the current value still notifies.
func (d *Dropdown) Set(v string) error {
	i := slices.Index(d.options, v)
	if i < 0 {
		return fmt.Errorf("%s: %q: %w", d.name, v, ErrInvalidChoice)
	}
	return d.SetIndex(i)
}

// SetIndex selects the option at position i.
func (d *Dropdown) SetIndex(i int) error {
	if i < 0 || i >= len(d.options) {
		return fmt.Errorf("%s: index %d: %w", d.name, i, ErrInvalidChoice)
	}
	old := d.Value()
	d.index = i
	d.obs.notify(Change{Control: d.name, Old: old, New: d.Value()})
	return nil
}

// Step moves the selection, stopping at the first and last option.
func (d *Dropdown) Step(delta int) error {
	return d.SetIndex(max(0, min(len(d.options)-1, d.index+delta)))
}

// ─────────────────────────────────────────────────────────────────────────
// IntSlider
// ─────────────────────────────────────────────────────────────────────────

// IntSlider holds an integer within [min, max].
type IntSlider struct {
	name  string
	desc  string
	min   int
	max   int
	step  int
	value int
	obs   observers
}

// NewIntSlider creates a slider. value is clamped into [lo, hi]; a
// non-positive step becomes 1.
func NewIntSlider(name, description string, lo, hi, step, value int) (*IntSlider, error) {
	if hi < lo {
		return nil, fmt.Errorf("slider %q: max %d below min %d", name, hi, lo)
	}
	if step <= 0 {
		step = 1
	}
	s := &IntSlider{name: name, desc: description, min: lo, max: hi, step: step}
	s.value = s.clamp(value)
	return s, nil
}

func (s *IntSlider) Name() string                 { return s.name }
func (s *IntSlider) Description() string          { return s.desc }
func (s *IntSlider) Subscribe(fn Observer) string { return s.obs.subscribe(fn) }
func (s *IntSlider) Unsubscribe(id string) bool   { return s.obs.unsubscribe(id) }

// Min returns the lower bound.
func (s *IntSlider) Min() int { return s.min }

// Max returns the upper bound.
func (s *IntSlider) Max() int { return s.max }

// StepSize returns the increment used by Step.
func (s *IntSlider) StepSize() int { return s.step }

// Value returns the current value.
func (s *IntSlider) Value() int { return s.value }

// Set stores v clamped into [min, max] and notifies.
func (s *IntSlider) Set(v int) error {
	old := s.value
	s.value = s.clamp(v)
	s.obs.notify(Change{Control: s.name, Old: old, New: s.value})
	return nil
}

// Step moves the value by delta steps.
func (s *IntSlider) Step(delta int) error {
	return s.Set(s.value + delta*s.step)
}

func (s *IntSlider) clamp(v int) int {
	return max(s.min, min(s.max, v))
}

// ─────────────────────────────────────────────────────────────────────────
// SelectMultiple
// ─────────────────────────────────────────────────────────────────────────

// SelectMultiple selects any subset of its options. Rows is the number of
// options visible at once; the cursor marks the option Toggle acts on in
// the interactive host.
type SelectMultiple struct {
	name     string
	desc     string
	options  []string
	rows     int
	selected []bool
	cursor   int
	obs      observers
}

// NewSelectMultiple creates a list with the given options preselected.
func NewSelectMultiple(name, description string, options []string, rows int, selected ...string) (*SelectMultiple, error) {
	m := &SelectMultiple{
		name:     name,
		desc:     description,
		options:  slices.Clone(options),
		rows:     max(0, min(rows, len(options))),
		selected: make([]bool, len(options)),
	}
	for _, v := range selected {
		i := slices.Index(m.options, v)
		if i < 0 {
			return nil, fmt.Errorf("%s: %q: %w", name, v, ErrInvalidChoice)
		}
		m.selected[i] = true
	}
	return m, nil
}

func (m *SelectMultiple) Name() string                 { return m.name }
func (m *SelectMultiple) Description() string          { return m.desc }
func (m *SelectMultiple) Subscribe(fn Observer) string { return m.obs.subscribe(fn) }
func (m *SelectMultiple) Unsubscribe(id string) bool   { return m.obs.unsubscribe(id) }

// Options returns the option list.
func (m *SelectMultiple) Options() []string { return slices.Clone(m.options) }

// Rows returns the number of visible options.
func (m *SelectMultiple) Rows() int { return m.rows }

// Cursor returns the highlighted option position.
func (m *SelectMultiple) Cursor() int { return m.cursor }

// IsSelected reports whether option i is selected.
func (m *SelectMultiple) IsSelected(i int) bool {
	return i >= 0 && i < len(m.selected) && m.selected[i]
}

// Selected returns the selected options in option order.
func (m *SelectMultiple) Selected() []string {
	var out []string
	for i, ok := range m.selected {
		if ok {
			out = append(out, m.options[i])
		}
	}
	return out
}

// Set replaces the selection. Every value must be an option.
func (m *SelectMultiple) Set(values []string) error {
	next := make([]bool, len(m.options))
	for _, v := range values {
		i := slices.Index(m.options, v)
		if i < 0 {
			return fmt.Errorf("%s: %q: %w", m.name, v, ErrInvalidChoice)
		}
		next[i] = true
	}
	old := m.Selected()
	m.selected = next
	m.obs.notify(Change{Control: m.name, Old: old, New: m.Selected()})
	return nil
}

// Toggle flips the selection of one option.
func (m *SelectMultiple) Toggle(v string) error {
	i := slices.Index(m.options, v)
	if i < 0 {
		return fmt.Errorf("%s: %q: %w", m.name, v, ErrInvalidChoice)
	}
	old := m.Selected()
	m.selected[i] = !m.selected[i]
	m.obs.notify(Change{Control: m.name, Old: old, New: m.Selected()})
	return nil
}

// ToggleCursor flips the option under the cursor.
func (m *SelectMultiple) ToggleCursor() error {
	if len(m.options) == 0 {
		return nil
	}
	return m.Toggle(m.options[m.cursor])
}

// Step moves the cursor. It does not change the selection and does not
// notify.
func (m *SelectMultiple) Step(delta int) error {
	if len(m.options) == 0 {
		return nil
	}
	m.cursor = max(0, min(len(m.options)-1, m.cursor+delta))
	return nil
}

// Window returns the [lo, hi) range of options visible around the cursor.
func (m *SelectMultiple) Window() (int, int) {
	if m.rows <= 0 || m.rows >= len(m.options) {
		return 0, len(m.options)
	}
	lo := max(0, min(m.cursor-m.rows/2, len(m.options)-m.rows))
	return lo, lo + m.rows
}
