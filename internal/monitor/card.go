package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/corewatch/internal/frame"
	"github.com/rileyhilliard/corewatch/internal/render"
)

// Card layout constants
const (
	cardGraphHeight = 3  // braille graph rows
	cardMinBarWidth = 10 // minimum graph width
	cardWidthWide   = 38
)

// cardDividerStyle creates a subtle divider line with matching background
var cardDividerStyle = lipgloss.NewStyle().
	Foreground(ColorBorder).
	Background(ColorSurfaceBg)

// renderCardDivider creates a subtle thin divider line
func renderCardDivider(width int) string {
	return cardDividerStyle.Render(strings.Repeat("─", width))
}

// renderCardLine renders a text line with proper background fill.
// Applies background to the entire line including content and padding.
func renderCardLine(content string, width int) string {
	contentWidth := lipgloss.Width(content)
	padding := ""
	if width > contentWidth {
		padding = strings.Repeat(" ", width-contentWidth)
	}
	lineStyle := lipgloss.NewStyle().Background(ColorSurfaceBg)
	return lineStyle.Render(content + padding)
}

// renderCard renders one core: name and usage label, threshold bar, and the
// braille history chart with its usage marker.
func (m Model) renderCard(r frame.CoreReading, width int) string {
	style := CardStyle.Width(width)
	innerWidth := width - 4

	var lines []string
	lines = append(lines, renderCardLine(m.renderCoreLine(r, innerWidth), innerWidth))
	lines = append(lines, renderCardLine(ProgressBar(innerWidth, r.Usage), innerWidth))
	lines = append(lines, renderCardDivider(innerWidth))

	// One column is reserved for the marker.
	graphWidth := innerWidth - 1
	if graphWidth < cardMinBarWidth {
		graphWidth = cardMinBarWidth
	}
	history := render.PadHistory(r.History, m.opts.Window)
	graph := RenderBrailleChart(history, r.Usage, graphWidth, cardGraphHeight)
	for _, gl := range strings.Split(graph, "\n") {
		lines = append(lines, renderCardLine(gl, innerWidth))
	}

	return style.Render(strings.Join(lines, "\n"))
}

// renderCoreLine renders "CPU n" on the left and the usage label on the right.
func (m Model) renderCoreLine(r frame.CoreReading, lineWidth int) string {
	name := CoreNameStyle.Render(render.CoreName(r.CoreID))
	label := BandStyle(r.Usage).Bold(true).Render(render.UsageLabel(r.Usage, m.opts.Decimals))

	padding := " "
	if gap := lineWidth - lipgloss.Width(name) - lipgloss.Width(label); gap > 0 {
		padding = strings.Repeat(" ", gap)
	}
	return name + padding + label
}
