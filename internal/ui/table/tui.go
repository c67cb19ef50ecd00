package table

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/ui/styles"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	defaultColWidth = 20
	minColWidth     = 3
	statusDuration  = 2 * time.Second
)

type browseMode int

const (
	browseNormal browseMode = iota
	browseSearch
)

// What to print after the browser exits.
type exportMode int

const (
	exportNone exportMode = iota
	exportJSON
	exportRaw
	exportPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type browser struct {
	title      string
	grid       Grid
	matches    []int  // rows matching the search (nil = all rows)
	fullWidths []int  // widest cell per column
	expanded   []bool // column shows full width
	cursor     int    // selected row in the filtered view
	colCursor  int
	scrollX    int // horizontal offset in characters
	scrollY    int // first visible row
	width      int
	height     int
	ready      bool
	mode       browseMode
	search     textinput.Model
	query      string
	export     exportMode

	statusMsg   string
	statusUntil time.Time
}

type browserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Expand      key.Binding
	Search      key.Binding
	Quit        key.Binding
	YankCell    key.Binding
	YankRow     key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
}

var browserKeys = browserKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next column")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	Expand:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/default")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	YankCell:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// RunTableTUI browses t until the user quits. An export requested with
// J/R/P is written to w after the TUI exits.
func RunTableTUI(w io.Writer, title string, t *frame.Table) error {
	m := newBrowser(title, NewGrid(t))

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	fm, ok := final.(browser)
	if !ok {
		return nil
	}
	switch fm.export {
	case exportJSON:
		return WriteJSON(w, t)
	case exportRaw:
		return WriteRaw(w, fm.grid)
	case exportPlain:
		return WritePlain(w, fm.grid, true)
	}
	return nil
}

func newBrowser(title string, g Grid) browser {
	widths := make([]int, len(g.Columns))
	for i, name := range g.Columns {
		widths[i] = lipgloss.Width(name)
	}
	for _, row := range g.Rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(val))
			}
		}
	}

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 100
	ti.Width = 30

	return browser{
		title:      title,
		grid:       g,
		fullWidths: widths,
		expanded:   make([]bool, len(g.Columns)),
		search:     ti,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

type statusClearMsg struct{}

func (m browser) Init() tea.Cmd {
	return nil
}

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case statusClearMsg:
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}

	case tea.KeyMsg:
		if m.mode == browseSearch {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, browserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, browserKeys.Search):
			m.mode = browseSearch
			m.search.Focus()
			return m, textinput.Blink

		case key.Matches(msg, browserKeys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, browserKeys.Down):
			m.moveCursor(1)

		case key.Matches(msg, browserKeys.PageUp):
			m.moveCursor(-m.visibleRowCount())

		case key.Matches(msg, browserKeys.PageDown):
			m.moveCursor(m.visibleRowCount())

		case key.Matches(msg, browserKeys.Home):
			m.cursor, m.scrollY, m.scrollX = 0, 0, 0

		case key.Matches(msg, browserKeys.End):
			m.moveCursor(m.rowCount())

		case key.Matches(msg, browserKeys.Left):
			if m.colCursor > 0 {
				m.colCursor--
				m.ensureColVisible()
			}

		case key.Matches(msg, browserKeys.Right):
			if m.colCursor < len(m.grid.Columns)-1 {
				m.colCursor++
				m.ensureColVisible()
			}

		case key.Matches(msg, browserKeys.Expand):
			if m.colCursor < len(m.expanded) {
				m.expanded[m.colCursor] = !m.expanded[m.colCursor]
				m.ensureColVisible()
			}

		case key.Matches(msg, browserKeys.YankCell):
			return m, m.yankCell()

		case key.Matches(msg, browserKeys.YankRow):
			return m, m.yankRow()

		case key.Matches(msg, browserKeys.ExportJSON):
			m.export = exportJSON
			return m, tea.Quit

		case key.Matches(msg, browserKeys.ExportRaw):
			m.export = exportRaw
			return m, tea.Quit

		case key.Matches(msg, browserKeys.ExportPlain):
			m.export = exportPlain
			return m, tea.Quit
		}
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Search
// ═══════════════════════════════════════════════════════════════════════════

func (m browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = browseNormal
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.matches = nil
		m.cursor, m.scrollY = 0, 0
		return m, nil
	case tea.KeyEnter:
		m.mode = browseNormal
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.applySearch()
	return m, cmd
}

func (m *browser) applySearch() {
	query := strings.ToLower(m.query)
	m.matches = nil
	if query == "" {
		return
	}

	m.matches = []int{}
	for i, row := range m.grid.Rows {
		for _, val := range row {
			if strings.Contains(strings.ToLower(val), query) {
				m.matches = append(m.matches, i)
				break
			}
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor, m.scrollY = 0, 0
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Row / Column Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m browser) rowCount() int {
	if m.matches != nil {
		return len(m.matches)
	}
	return len(m.grid.Rows)
}

// rowAt maps a position in the filtered view to a grid row.
func (m browser) rowAt(pos int) int {
	if m.matches != nil {
		if pos < len(m.matches) {
			return m.matches[pos]
		}
		return -1
	}
	if pos < len(m.grid.Rows) {
		return pos
	}
	return -1
}

func (m *browser) moveCursor(delta int) {
	m.cursor = max(0, min(m.cursor+delta, m.rowCount()-1))
	visible := max(1, m.visibleRowCount())
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	} else if m.cursor >= m.scrollY+visible {
		m.scrollY = m.cursor - visible + 1
	}
}

func (m browser) colWidth(i int) int {
	w := m.fullWidths[i]
	if !m.expanded[i] {
		w = min(w, defaultColWidth)
	}
	return max(w, minColWidth)
}

func (m browser) colStartX(i int) int {
	x := 0
	for c := 0; c < i; c++ {
		x += m.colWidth(c) + 2
	}
	return x
}

func (m browser) totalWidth() int {
	return m.colStartX(len(m.grid.Columns))
}

func (m *browser) ensureColVisible() {
	start := m.colStartX(m.colCursor)
	end := start + m.colWidth(m.colCursor)
	viewport := m.width - 2

	if start < m.scrollX {
		m.scrollX = start
	} else if end > m.scrollX+viewport {
		m.scrollX = end - viewport
		if end-start > viewport {
			m.scrollX = start
		}
	}
	m.scrollX = max(0, min(m.scrollX, m.totalWidth()-viewport))
}

func (m browser) visibleRowCount() int {
	return max(1, m.height-5) // header (3 lines) + footer (2 lines)
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard
// ═══════════════════════════════════════════════════════════════════════════

func (m *browser) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func (m *browser) yankCell() tea.Cmd {
	r := m.rowAt(m.cursor)
	if r < 0 {
		return nil
	}
	val := m.grid.Rows[r][m.colCursor]
	if err := clipboard.WriteAll(val); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus("Copied: " + Truncate(val, 40))
}

func (m *browser) yankRow() tea.Cmd {
	r := m.rowAt(m.cursor)
	if r < 0 {
		return nil
	}
	row := m.grid.Rows[r]
	if err := clipboard.WriteAll(strings.Join(row, "\t")); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d columns)", len(row)))
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m browser) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder

	header := fmt.Sprintf("%s: %d rows, %d columns", m.title, len(m.grid.Rows), len(m.grid.Columns)-1)
	if m.matches != nil {
		header = fmt.Sprintf("%s: %d/%d rows, %d columns", m.title, len(m.matches), len(m.grid.Rows), len(m.grid.Columns)-1)
	}
	sb.WriteString(styles.Header(header))
	sb.WriteString("\n")

	switch {
	case m.mode == browseSearch:
		sb.WriteString("/" + m.search.View() + "\n")
	case m.query != "":
		sb.WriteString(styles.MutedMsg("filter: "+m.query) + "\n")
	default:
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderRows())
	sb.WriteString("\n")

	switch {
	case m.statusMsg != "" && time.Now().Before(m.statusUntil):
		sb.WriteString(styles.SuccessMsg(m.statusMsg))
	case m.mode == browseSearch:
		sb.WriteString(styles.MutedMsg("enter confirm  esc cancel"))
	default:
		sb.WriteString(styles.MutedMsg("↑↓←→ nav  enter expand  / search  y copy  J json  R raw  P table  q quit"))
	}
	return sb.String()
}

func (m browser) renderRows() string {
	if len(m.grid.Columns) == 0 {
		return "No columns"
	}

	viewport := m.width - 2
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Info)
	selectedHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	rowStyle := lipgloss.NewStyle().Background(styles.BgHighlight)
	cellStyle := lipgloss.NewStyle().Background(styles.Accent).Foreground(lipgloss.Color("#000000"))

	var head, sep strings.Builder
	for i, name := range m.grid.Columns {
		w := m.colWidth(i)
		st := headerStyle
		if i == m.colCursor {
			st = selectedHeaderStyle
		}
		head.WriteString(st.Render(m.fit(i, name, w)) + "  ")
		sep.WriteString(styles.Mute(strings.Repeat("─", w)) + "  ")
	}

	var sb strings.Builder
	sb.WriteString(applyViewport(head.String(), m.scrollX, viewport) + "\n")
	sb.WriteString(applyViewport(sep.String(), m.scrollX, viewport) + "\n")

	end := min(m.scrollY+m.visibleRowCount(), m.rowCount())
	for pos := m.scrollY; pos < end; pos++ {
		r := m.rowAt(pos)
		if r < 0 {
			continue
		}
		var line strings.Builder
		for i, val := range m.grid.Rows[r] {
			cell := m.fit(i, val, m.colWidth(i))
			switch {
			case pos == m.cursor && i == m.colCursor:
				cell = cellStyle.Render(cell)
			case pos == m.cursor:
				cell = rowStyle.Render(cell)
			case m.query != "" && strings.Contains(strings.ToLower(val), strings.ToLower(m.query)):
				cell = styles.Yellow(cell)
			case m.grid.Null[r][i]:
				cell = styles.Null(cell)
			}
			line.WriteString(cell + "  ")
		}
		sb.WriteString(applyViewport(line.String(), m.scrollX, viewport) + "\n")
	}

	var indicators []string
	if m.scrollX > 0 {
		indicators = append(indicators, "◀")
	}
	if m.scrollX+viewport < m.totalWidth() {
		indicators = append(indicators, "▶")
	}
	if m.scrollY > 0 {
		indicators = append(indicators, "▲")
	}
	if m.scrollY+m.visibleRowCount() < m.rowCount() {
		indicators = append(indicators, "▼")
	}
	if len(indicators) > 0 {
		sb.WriteString(styles.MutedMsg(strings.Join(indicators, " ")))
	}
	return sb.String()
}

func (m browser) fit(col int, s string, width int) string {
	if m.grid.Numeric[col] {
		return FitRight(s, width)
	}
	return PadOrTruncate(s, width)
}

// applyViewport returns the visual columns [startX, startX+width) of s,
// carrying ANSI style sequences across the cut.
func applyViewport(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	startX = max(0, startX)

	var out strings.Builder
	var active []string
	var esc strings.Builder
	inEscape, replayed := false, false
	visual, written := 0, 0

	runes := []rune(s)
	for i := 0; i < len(runes) && written < width; i++ {
		r := runes[i]
		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			esc.Reset()
			esc.WriteRune(r)
			continue
		}
		if inEscape {
			esc.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
				seq := esc.String()
				if r == 'm' {
					if seq == "\x1b[0m" || seq == "\x1b[m" {
						active = nil
					} else {
						active = append(active, seq)
					}
				}
				if visual >= startX {
					out.WriteString(seq)
				}
			}
			continue
		}
		if visual >= startX {
			if !replayed {
				for _, seq := range active {
					out.WriteString(seq)
				}
				replayed = true
			}
			out.WriteRune(r)
			written++
		}
		visual++
	}

	if len(active) > 0 && written > 0 {
		out.WriteString("\x1b[0m")
	}
	if written < width {
		out.WriteString(strings.Repeat(" ", width-written))
	}
	return out.String()
}
