package styles

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess  = "✓"
	SymbolPending  = "○"
	SymbolSelected = "◉"
	SymbolCursor   = "›"
)

var forceNoColor atomic.Bool

// SetNoColor disables colors regardless of the environment (--no-color).
func SetNoColor(v bool) {
	forceNoColor.Store(v)
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return forceNoColor.Load() || os.Getenv("NO_COLOR") != "" || os.Getenv("HOMEVIEW_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, simplified output
func IsAccessible() bool {
	return os.Getenv("HOMEVIEW_ACCESSIBLE") == "1" || os.Getenv("HOMEVIEW_ACCESSIBLE") == "true"
}

// Bold is the base text style for section headers.
var Bold = lipgloss.NewStyle().Bold(true)

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Notes
	PromptStyle = lipgloss.NewStyle().Foreground(ColorPrompt)
	EmptyStyle  = lipgloss.NewStyle().Foreground(ColorEmpty).Italic(true)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)

	// Tables
	HeaderStyle  = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	NullStyle    = lipgloss.NewStyle().Foreground(ColorNull)
	CaptionStyle = lipgloss.NewStyle().Foreground(TextTertiary).Italic(true)

	// Charts
	AxisStyle   = lipgloss.NewStyle().Foreground(ColorAxis)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	GridStyle   = lipgloss.NewStyle().Foreground(ColorGrid)
	LegendStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BgBorder).
			Padding(0, 1)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)
	FocusedStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	PanelStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(BgBorder).
			PaddingRight(1)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Render applies s unless colors are disabled.
func Render(s lipgloss.Style, text string) string {
	return render(s, text)
}

// Header formats a table column header
func Header(name string) string {
	return render(HeaderStyle, name)
}

// Null formats a missing cell
func Null(text string) string {
	return render(NullStyle, text)
}

// Caption formats the expression line printed above a report
func Caption(text string) string {
	return render(CaptionStyle, text)
}

// Series formats text in the color of chart series i
func Series(i int, text string) string {
	return render(lipgloss.NewStyle().Foreground(SeriesColor(i)), text)
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// PromptMsg formats a request for more input
func PromptMsg(msg string) string {
	return render(PromptStyle, msg)
}

// FailMsg formats a failed computation or invalid input note
func FailMsg(msg string) string {
	return render(FailStyle, msg)
}

// EmptyMsg formats a neutral "nothing to show" message
func EmptyMsg(msg string) string {
	return render(EmptyStyle, msg)
}

// ═══════════════════════════════════════════════════════════════════════════
// Section formatters - consistent output structure
// ═══════════════════════════════════════════════════════════════════════════

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return render(Bold, title)
}

// ═══════════════════════════════════════════════════════════════════════════
// Color functions - simple string coloring
// ═══════════════════════════════════════════════════════════════════════════

func Yellow(s string) string { return render(WarningStyle, s) }
func Mute(s string) string   { return render(MutedStyle, s) }
