package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/corewatch/internal/feed"
)

// headerSparkWidth is the number of frame averages drawn in the header.
const headerSparkWidth = 20

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCoreCards())

	if m.ShowFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the dashboard header with summary stats.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("corewatch")

	parts := []string{m.renderState()}
	if m.opts.Server != "" {
		parts = append(parts, m.opts.Server)
	}
	parts = append(parts,
		fmt.Sprintf("%d cores", len(m.frame)),
		humanize.Comma(m.received)+" frames",
		m.renderUpdateAge(),
	)

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	header := title + stats
	if avg := m.history.Last(headerSparkWidth); len(avg) > 0 {
		last := avg[len(avg)-1]
		header += " " + RenderCleanSparkline(avg, headerSparkWidth, BandColor(last))
	}
	return HeaderStyle.Render(header)
}

// renderState renders the connection state, with a spinner while connecting.
func (m Model) renderState() string {
	glyph, style := StateIndicator(m.state)
	if m.state == feed.StateConnecting {
		glyph = m.spinner.View()
	}
	return style.Render(glyph + " " + m.state.String())
}

// renderUpdateAge describes how long ago the last frame arrived.
func (m Model) renderUpdateAge() string {
	if m.lastUpdate.IsZero() {
		return "waiting for data"
	}
	switch age := m.SecondsSinceUpdate(); age {
	case 0:
		return "last update just now"
	case 1:
		return "last update 1s ago"
	default:
		return fmt.Sprintf("last update %ds ago", age)
	}
}

// renderCoreCards renders the grid of core cards.
func (m Model) renderCoreCards() string {
	cores := m.Cores()
	if len(cores) == 0 {
		if m.state == feed.StateOpen {
			return LabelStyle.Render("Connected, waiting for the first frame...")
		}
		return LabelStyle.Render("No data yet")
	}

	cardWidth := m.calculateCardWidth()
	cards := make([]string, 0, len(cores))
	for _, r := range cores {
		cards = append(cards, m.renderCard(r, cardWidth))
	}

	return m.layoutCards(cards, cardWidth)
}

// calculateCardWidth determines the card width based on terminal width.
func (m Model) calculateCardWidth() int {
	if m.width == 0 {
		return cardWidthWide
	}
	if m.width >= BreakpointCompact {
		return cardWidthWide
	}
	w := m.width - 4
	if w < cardMinBarWidth+5 {
		w = cardMinBarWidth + 5
	}
	return w
}

// layoutCards arranges cards in rows based on terminal width.
func (m Model) layoutCards(cards []string, cardWidth int) string {
	if len(cards) == 0 {
		return ""
	}

	cardsPerRow := 1
	if m.width > 0 {
		// Account for card margins and borders
		effectiveCardWidth := cardWidth + 3
		cardsPerRow = m.width / effectiveCardWidth
		if cardsPerRow < 1 {
			cardsPerRow = 1
		}
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		end := i + cardsPerRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r reload",
		"s sort: " + m.sortOrder.String(),
		"? help",
	}
	if m.reloads > 0 {
		hints = append(hints, fmt.Sprintf("reloads %d", m.reloads))
	}

	return FooterStyle.Render(strings.Join(hints, " | "))
}
