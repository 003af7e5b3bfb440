// Package monitor implements the terminal dashboard for the realtime CPU feed.
//
// The dashboard shows one card per core with the usage label in its band
// color, a threshold progress bar and a braille chart of the core's recent
// history, plus a header with connection state and frame counts.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the latest frame, connection state and layout
//   - Update: Processes messages (keystrokes, frames, state changes, reloads)
//   - View: Renders the current state to a string for display
//
// # Message Flow
//
// The feed client runs on its own goroutine and publishes into a Source.
// The model keeps one blocking receive outstanding per Source channel and
// re-arms it after each message:
//
//  1. frameMsg replaces the displayed frame and bumps the frame count
//  2. stateMsg updates the connection indicator
//  3. resetMsg clears everything after a feed reload
//
// Source channels hold a single pending value and newer values replace
// unread ones, so a slow terminal drops intermediate frames rather than
// blocking the feed.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Reload the feed
//	s           - Cycle sort order (feed/id/usage)
//	?           - Toggle help overlay
package monitor
