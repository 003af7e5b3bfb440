package monitor

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/corewatch/internal/frame"
)

// SortOrder defines how cores are ordered in the dashboard.
type SortOrder int

const (
	// SortByFrame keeps the order the server sent.
	SortByFrame SortOrder = iota
	SortByID
	SortByUsage
)

// String returns a human-readable label for the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortByID:
		return "id"
	case SortByUsage:
		return "usage"
	default:
		return "feed"
	}
}

// Next cycles to the next sort order.
func (s SortOrder) Next() SortOrder {
	return SortOrder((int(s) + 1) % 3)
}

// sortReadings returns a copy of f in the given order.
func sortReadings(f frame.Frame, order SortOrder) []frame.CoreReading {
	out := make([]frame.CoreReading, len(f))
	copy(out, f)

	switch order {
	case SortByID:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CoreID < out[j].CoreID })
	case SortByUsage:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Usage > out[j].Usage })
	}
	return out
}

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyReload     = "r"
	KeyCycleSort  = "s"
	KeyCollapse   = "esc"
	KeyToggleHelp = "?"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyReload:
		if m.opts.Reload == nil {
			return true, nil
		}
		reload := m.opts.Reload
		return true, func() tea.Msg {
			reload()
			return nil
		}

	case KeyCycleSort:
		m.sortOrder = m.sortOrder.Next()
		return true, nil
	}

	return false, nil
}
