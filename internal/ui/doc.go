// Package ui provides the small set of terminal helpers the one-shot CLI
// commands share: semantic colors, status symbols and a line spinner.
//
// The full-screen dashboard lives in the monitor package and has its own
// palette; this package only covers plain line-oriented output.
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Waiting for the first frame")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail() or s.Skip()
//
// The spinner clears its own line and prints the elapsed time when it
// finishes. Use DisableColors() to switch to monochrome output (for the
// --no-color flag).
package ui
