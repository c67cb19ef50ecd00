// Package tui hosts one widget in a bubbletea program: a control panel on
// the left and the widget's output in a scrolling pane on the right.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/homeview/internal/textdiff"
	"github.com/imgajeed76/homeview/internal/ui/display"
	"github.com/imgajeed76/homeview/internal/ui/styles"
	"github.com/imgajeed76/homeview/internal/util"
	"github.com/imgajeed76/homeview/internal/widget"
)

const (
	panelWidth     = 34
	sliderWidth    = 16
	statusDuration = 2 * time.Second
)

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("⇧tab", "prev control")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "decrease")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "increase")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy view")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Right, k.Toggle, k.Copy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},
		{k.Up, k.Down, k.Toggle},
		{k.PageUp, k.PageDown},
		{k.Copy, k.Help, k.Quit},
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

// view is the output state shared with the Output subscription.
type view struct {
	blocks  []widget.Block
	plain   string
	changed textdiff.Stats
	renders int
}

// Model is the bubbletea model hosting a widget.
type Model struct {
	w        widget.Widget
	controls []widget.Control
	focus    int
	out      *view
	viewport viewport.Model
	help     help.Model
	width    int
	height   int
	ready    bool

	statusMsg   string
	statusUntil time.Time
}

type statusClearMsg struct{}

// New builds the host model for w and subscribes to its output.
func New(w widget.Widget) Model {
	m := Model{
		w:        w,
		controls: w.Controls(),
		out:      &view{},
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
	m.out.set(w.Output().Blocks())
	w.Output().Subscribe(m.out.set)
	return m
}

// Run hosts w until the user quits.
func Run(w widget.Widget) error {
	_, err := tea.NewProgram(New(w), tea.WithAltScreen()).Run()
	return err
}

func (v *view) set(blocks []widget.Block) {
	plain := display.Plain(blocks)
	if v.renders > 0 {
		v.changed = textdiff.Compare(v.plain, plain)
	}
	v.blocks = blocks
	v.plain = plain
	v.renders++
}

// Plain returns the current output as unstyled text.
func (m Model) Plain() string { return m.out.plain }

// Focused returns the focused control, or nil when there are none.
func (m Model) Focused() widget.Control {
	if len(m.controls) == 0 {
		return nil
	}
	return m.controls[m.focus]
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case statusClearMsg:
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.out.renders
	var err error

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, keys.Next):
		if len(m.controls) > 0 {
			m.focus = (m.focus + 1) % len(m.controls)
		}

	case key.Matches(msg, keys.Prev):
		if len(m.controls) > 0 {
			m.focus = (m.focus - 1 + len(m.controls)) % len(m.controls)
		}

	case key.Matches(msg, keys.Left):
		err = m.step(-1)

	case key.Matches(msg, keys.Right):
		err = m.step(1)

	case key.Matches(msg, keys.Toggle):
		if sel, ok := m.Focused().(*widget.SelectMultiple); ok {
			err = sel.ToggleCursor()
		}

	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		delta := 1
		if key.Matches(msg, keys.Up) {
			delta = -1
		}
		if sel, ok := m.Focused().(*widget.SelectMultiple); ok {
			err = sel.Step(delta)
		} else if delta < 0 {
			m.viewport.ScrollUp(1)
		} else {
			m.viewport.ScrollDown(1)
		}

	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfPageUp()

	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfPageDown()

	case key.Matches(msg, keys.Copy):
		cmd := m.copyView()
		return m, cmd
	}

	var cmd tea.Cmd
	switch {
	case err != nil:
		cmd = m.setStatus(err.Error())
	case m.out.renders != before:
		m.refreshContent()
		cmd = m.setStatus(fmt.Sprintf("re-rendered: %s", m.out.changed))
	}
	return m, cmd
}

// step moves a dropdown or slider; multi-select lists ignore ←/→.
func (m Model) step(delta int) error {
	c := m.Focused()
	if c == nil {
		return nil
	}
	if _, ok := c.(*widget.SelectMultiple); ok {
		return nil
	}
	return c.Step(delta)
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func (m *Model) copyView() tea.Cmd {
	if err := clipboard.WriteAll(m.out.plain); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	lines := strings.Count(m.out.plain, "\n") + 1
	return m.setStatus(fmt.Sprintf("Copied view (%d lines)", lines))
}

// ═══════════════════════════════════════════════════════════════════════════
// Layout
// ═══════════════════════════════════════════════════════════════════════════

func (m *Model) resize() {
	m.help.Width = m.width
	footer := lipgloss.Height(m.help.View(keys)) + 1
	m.viewport.Width = max(10, m.width-panelWidth-3)
	m.viewport.Height = max(3, m.height-footer-2)
	m.refreshContent()
}

func (m *Model) refreshContent() {
	var sb strings.Builder
	_ = display.NewTerminal(&sb).Show(m.out.blocks)
	m.viewport.SetContent(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := styles.Header(m.w.Name())
	if m.w.Status() != widget.StatusInteractive {
		title += "  " + styles.MutedMsg(m.w.Status().String())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.PanelStyle.Width(panelWidth).Render(m.renderPanel()),
		" ",
		m.viewport.View(),
	)

	var footer string
	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		footer = styles.SuccessMsg(m.statusMsg)
	} else {
		footer = m.help.View(keys)
	}
	return title + "\n\n" + body + "\n" + footer
}

func (m Model) renderPanel() string {
	var sb strings.Builder
	if intro := m.w.Intro(); intro != "" {
		sb.WriteString(styles.InfoMsg(intro) + "\n\n")
	}
	if len(m.controls) == 0 {
		sb.WriteString(styles.MutedMsg("no controls"))
		return sb.String()
	}
	for i, c := range m.controls {
		focused := i == m.focus
		sb.WriteString(renderControl(c, focused))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderControl(c widget.Control, focused bool) string {
	label := c.Description()
	if focused {
		label = styles.Render(styles.FocusedStyle, styles.SymbolCursor+" "+label)
	} else {
		label = "  " + label
	}

	switch c := c.(type) {
	case *widget.Dropdown:
		return label + "\n    ‹ " + c.Value() + " ›\n"

	case *widget.IntSlider:
		return label + "\n    " + slider(c) + "\n"

	case *widget.SelectMultiple:
		var sb strings.Builder
		sb.WriteString(label + "\n")
		lo, hi := c.Window()
		opts := c.Options()
		for i := lo; i < hi; i++ {
			mark := styles.SymbolPending
			if c.IsSelected(i) {
				mark = styles.SymbolSelected
			}
			line := fmt.Sprintf("    %s %s", mark, opts[i])
			if focused && i == c.Cursor() {
				line = styles.Render(styles.SelectedStyle, line)
			}
			sb.WriteString(line + "\n")
		}
		if hi-lo < len(opts) {
			sb.WriteString(styles.MutedMsg(fmt.Sprintf("    %d of %d shown", hi-lo, len(opts))) + "\n")
		}
		return sb.String()
	}
	return label + "\n"
}

func slider(s *widget.IntSlider) string {
	filled := 0
	if span := s.Max() - s.Min(); span > 0 {
		filled = (s.Value() - s.Min()) * sliderWidth / span
	}
	return styles.Render(styles.FocusedStyle, strings.Repeat("━", filled)) +
		styles.MutedMsg(strings.Repeat("─", sliderWidth-filled)) +
		" " + util.FormatInt(s.Value())
}
