package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
// Dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success
	Warning = lipgloss.Color("#F59E0B") // amber-500 - prompts, warnings
	Error   = lipgloss.Color("#EF4444") // red-500 - errors
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, numbers
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB") // gray-50 - main text
	TextSecondary = lipgloss.Color("#9CA3AF") // gray-400 - descriptions
	TextTertiary  = lipgloss.Color("#6B7280") // gray-500 - captions

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected items
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders, gridlines
)

// Semantic color aliases for clarity
var (
	// Notes
	ColorPrompt = Warning
	ColorEmpty  = Muted
	ColorFail   = Error

	// Tables
	ColorHeader = Accent
	ColorNull   = Muted

	// Charts
	ColorAxis  = BgBorder
	ColorLabel = TextSecondary
	ColorGrid  = BgHighlight
)

// SeriesColors are assigned to chart series in order.
var SeriesColors = []lipgloss.Color{
	"#3B82F6", // blue-500
	"#F59E0B", // amber-500
	"#10B981", // emerald-500
	"#EF4444", // red-500
	"#8B5CF6", // violet-500
	"#EC4899", // pink-500
	"#14B8A6", // teal-500
	"#84CC16", // lime-500
}

// SeriesColor returns the palette color for series i.
func SeriesColor(i int) lipgloss.Color {
	return SeriesColors[i%len(SeriesColors)]
}
