package feed

// State is the connection state of a feed client.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stats receives feed lifecycle counts. Implementations must be safe for use
// from the session goroutine.
type Stats interface {
	FrameReceived()
	FrameDropped()
	TransportError()
	Reloaded()
	StateChanged(State)
}

type noopStats struct{}

func (noopStats) FrameReceived()     {}
func (noopStats) FrameDropped()      {}
func (noopStats) TransportError()    {}
func (noopStats) Reloaded()          {}
func (noopStats) StateChanged(State) {}
