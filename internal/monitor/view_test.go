package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/frame"
)

func TestRenderHeader(t *testing.T) {
	m := NewModel(NewSource(), Options{Server: "http://localhost:3000"})
	header := m.renderHeader()
	assert.Contains(t, header, "corewatch")
	assert.Contains(t, header, "connecting")
	assert.Contains(t, header, "0 cores")
	assert.Contains(t, header, "waiting for data")

	m.state = feed.StateOpen
	for i := 0; i < 1234; i++ {
		m.applyFrame(sampleFrame())
	}
	header = m.renderHeader()
	assert.Contains(t, header, "open")
	assert.Contains(t, header, "2 cores")
	assert.Contains(t, header, "1,234 frames")
	assert.Contains(t, header, "last update just now")
}

func TestRenderCard(t *testing.T) {
	m := NewModel(NewSource(), Options{Window: 50, Decimals: 1})
	card := m.renderCard(frame.CoreReading{CoreID: 3, Usage: 42.5, History: []float64{10, 20, 30}}, cardWidthWide)

	assert.Contains(t, card, "CPU 3")
	assert.Contains(t, card, "42.5%")
	assert.Contains(t, card, "▰")
	assert.Equal(t, 1, strings.Count(card, MarkerGlyph))
}

func TestRenderCoreCards(t *testing.T) {
	m := NewModel(NewSource(), Options{Decimals: 1})
	assert.Contains(t, m.renderCoreCards(), "No data yet")

	m.state = feed.StateOpen
	assert.Contains(t, m.renderCoreCards(), "waiting for the first frame")

	m.applyFrame(sampleFrame())
	out := m.renderCoreCards()
	assert.Contains(t, out, "CPU 0")
	assert.Contains(t, out, "CPU 1")
	assert.Contains(t, out, "85.0%")
}

func TestCalculateCardWidth(t *testing.T) {
	m := NewModel(NewSource(), Options{})
	assert.Equal(t, cardWidthWide, m.calculateCardWidth())

	m.width = 150
	assert.Equal(t, cardWidthWide, m.calculateCardWidth())

	m.width = 60
	assert.Equal(t, 56, m.calculateCardWidth())

	m.width = 10
	assert.Equal(t, cardMinBarWidth+5, m.calculateCardWidth())
}

func TestLayoutCards(t *testing.T) {
	m := NewModel(NewSource(), Options{})
	assert.Empty(t, m.layoutCards(nil, 10))

	m.width = 30
	out := m.layoutCards([]string{"a", "b", "c"}, 10)
	assert.Equal(t, 1, strings.Count(out, "\n"), "two cards per row leaves two rows")
}

func TestRenderFooter(t *testing.T) {
	m := NewModel(NewSource(), Options{})
	footer := m.renderFooter()
	assert.Contains(t, footer, "q quit")
	assert.Contains(t, footer, "sort: feed")
	assert.NotContains(t, footer, "reloads")

	m.reset()
	assert.Contains(t, m.renderFooter(), "reloads 1")
}

func TestView_Dashboard(t *testing.T) {
	m := NewModel(NewSource(), Options{})
	m.applyFrame(sampleFrame())
	view := m.View()
	assert.Contains(t, view, "corewatch")
	assert.Contains(t, view, "CPU 1")
	assert.Contains(t, view, "q quit")
}
