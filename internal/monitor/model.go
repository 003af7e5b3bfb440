package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/frame"
	"github.com/rileyhilliard/corewatch/internal/render"
)

// Width breakpoints for card layout
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
)

// HeightMinimal is the smallest terminal height that still shows the footer.
const HeightMinimal = 24

// clockInterval drives the "last update" age in the header.
const clockInterval = time.Second

// Options configures the dashboard.
type Options struct {
	// Window is the number of chart points per core.
	Window int
	// Decimals is the precision of the usage label.
	Decimals int
	// Reload forces the feed to reload. Nil disables the key.
	Reload func()
	// Server is shown in the header.
	Server string
}

// Model is the Bubble Tea model for the per-core dashboard.
type Model struct {
	src  *Source
	opts Options

	frame      frame.Frame
	state      feed.State
	received   int64
	reloads    int
	history    *History
	lastUpdate time.Time

	spinner   spinner.Model
	width     int
	height    int
	sortOrder SortOrder
	showHelp  bool
	quitting  bool

	now func() time.Time
}

// frameMsg carries a decoded frame from the feed.
type frameMsg frame.Frame

// stateMsg carries a connection state change.
type stateMsg feed.State

// resetMsg signals a feed reload.
type resetMsg struct{}

// clockMsg refreshes time-based header text.
type clockMsg time.Time

// NewModel creates a dashboard reading from src.
func NewModel(src *Source, opts Options) Model {
	if opts.Window <= 0 {
		opts.Window = render.DefaultWindow
	}
	if opts.Decimals < 0 {
		opts.Decimals = 0
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 8,
	}
	sp.Style = lipgloss.NewStyle().Foreground(ColorTextSecondary)

	return Model{
		src:     src,
		opts:    opts,
		state:   feed.StateConnecting,
		history: NewHistory(DefaultHistorySize),
		spinner: sp,
		now:     time.Now,
	}
}

// Init starts the spinner, the clock and the feed polls.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.clockCmd(),
		m.waitForFrame(),
		m.waitForState(),
		m.waitForReset(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		m.applyFrame(frame.Frame(msg))
		return m, m.waitForFrame()

	case stateMsg:
		m.state = feed.State(msg)
		return m, m.waitForState()

	case resetMsg:
		m.reset()
		return m, m.waitForReset()

	case clockMsg:
		return m, m.clockCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

func (m *Model) applyFrame(f frame.Frame) {
	m.frame = f
	m.received++
	m.lastUpdate = m.now()
	m.history.Push(f.Average())
}

// reset clears everything derived from previous frames.
func (m *Model) reset() {
	m.frame = nil
	m.lastUpdate = time.Time{}
	m.history.Clear()
	m.reloads++
}

func (m Model) waitForFrame() tea.Cmd {
	if m.src == nil {
		return nil
	}
	frames := m.src.frames
	return func() tea.Msg {
		return frameMsg(<-frames)
	}
}

func (m Model) waitForState() tea.Cmd {
	if m.src == nil {
		return nil
	}
	states := m.src.states
	return func() tea.Msg {
		return stateMsg(<-states)
	}
}

func (m Model) waitForReset() tea.Cmd {
	if m.src == nil {
		return nil
	}
	resets := m.src.resets
	return func() tea.Msg {
		<-resets
		return resetMsg{}
	}
}

func (m Model) clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Cores returns the readings in display order.
func (m Model) Cores() []frame.CoreReading {
	return sortReadings(m.frame, m.sortOrder)
}

// State returns the last known connection state.
func (m Model) State() feed.State {
	return m.state
}

// Received returns the number of frames shown since start.
func (m Model) Received() int64 {
	return m.received
}

// SecondsSinceUpdate returns how many seconds have passed since the last frame.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}

// ShowFooter returns true if the terminal is tall enough to show the footer.
func (m Model) ShowFooter() bool {
	return m.height == 0 || m.height >= HeightMinimal
}
