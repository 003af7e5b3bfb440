package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/render"
)

// Dashboard color palette - Gen Z Electric Synthwave
const (
	// Background colors (glassmorphism-inspired)
	ColorDarkBg    = lipgloss.Color("#0A0A0F") // Deep void
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	// Band colors, shared with the HTML surface
	ColorNeutral = lipgloss.Color(render.ColorNeutral)
	ColorCaution = lipgloss.Color(render.ColorCaution)
	ColorWarning = lipgloss.Color(render.ColorWarning)
	ColorAlert   = lipgloss.Color(render.ColorAlert)

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	// Accent colors - neon pink primary, cyan secondary
	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
	ColorGraph  = lipgloss.Color("#00FFFF") // Neon cyan
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	// Card styles - no background set here, each line handles its own
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1).
			MarginBottom(1)

	CoreNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	// Connection state styles
	StateConnectingStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	StateOpenStyle = lipgloss.NewStyle().
			Foreground(ColorNeutral)

	StateClosedStyle = lipgloss.NewStyle().
				Foreground(ColorAlert)
)

// Connection state glyphs
const (
	StateConnectingGlyph = "◐"
	StateOpenGlyph       = "◉"
	StateClosedGlyph     = "◌"
)

// MarkerGlyph marks the current usage at the right edge of a chart.
const MarkerGlyph = "●"

// BandColor returns the terminal color for a usage percentage.
func BandColor(usage float64) lipgloss.Color {
	return lipgloss.Color(render.UsageColor(usage))
}

// BandStyle returns a style with the band color as foreground.
func BandStyle(usage float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(BandColor(usage))
}

// StateIndicator returns the glyph and style for a connection state.
func StateIndicator(s feed.State) (string, lipgloss.Style) {
	switch s {
	case feed.StateOpen:
		return StateOpenGlyph, StateOpenStyle
	case feed.StateClosed:
		return StateClosedGlyph, StateClosedStyle
	default:
		return StateConnectingGlyph, StateConnectingStyle
	}
}

// ProgressBar renders a progress bar with the given width and percentage.
// Uses bracketless Gen Z style with band coloring.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}

	// The bar is clamped for display; the color follows the raw value.
	clamped := percent
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	filled := int(clamped / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return BandStyle(percent).Render(bar)
}
