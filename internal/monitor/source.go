package monitor

import (
	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/frame"
)

// Source carries feed events from the session goroutine into the dashboard.
// Each channel holds at most one pending event and a newer event replaces an
// unread one, so a slow terminal never stalls the feed.
type Source struct {
	frames chan frame.Frame
	states chan feed.State
	resets chan struct{}
}

// NewSource creates an empty Source.
func NewSource() *Source {
	return &Source{
		frames: make(chan frame.Frame, 1),
		states: make(chan feed.State, 1),
		resets: make(chan struct{}, 1),
	}
}

// PublishFrame hands a frame to the dashboard, replacing any unread frame.
func (s *Source) PublishFrame(f frame.Frame) {
	publishLatest(s.frames, f)
}

// PublishState hands a connection state to the dashboard.
func (s *Source) PublishState(st feed.State) {
	publishLatest(s.states, st)
}

// PublishReset tells the dashboard the feed reloaded. Pending resets coalesce.
func (s *Source) PublishReset() {
	select {
	case s.resets <- struct{}{}:
	default:
	}
}

// publishLatest sends v without blocking, dropping a stale pending value.
// Safe with a single producer.
func publishLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
