package cli

import (
	"io"
	"sync"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/frame"
	"github.com/rileyhilliard/corewatch/internal/monitor"
	"github.com/rileyhilliard/corewatch/internal/render"
)

// surface is where accepted frames are applied. Reset runs on every feed
// reload so the surface starts from a clean slate.
type surface interface {
	Apply(frame.Frame) error
	Reset() error
}

var (
	_ surface = (*render.Document)(nil)
	_ surface = (*jsonSurface)(nil)
	_ surface = (*tuiSurface)(nil)
)

// jsonSurface streams each frame as indented JSON.
type jsonSurface struct {
	mu sync.Mutex
	w  io.Writer
}

func newJSONSurface(w io.Writer) *jsonSurface {
	return &jsonSurface{w: w}
}

func (s *jsonSurface) Apply(f frame.Frame) error {
	data, err := frame.Encode(f)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput, "Can't encode frame", "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(data, '\n')); err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput, "Can't write frame to output", "")
	}
	return nil
}

// Reset is a no-op: a stream has nothing to clear.
func (s *jsonSurface) Reset() error { return nil }

// tuiSurface hands frames to the dashboard without blocking the feed.
type tuiSurface struct {
	src *monitor.Source
}

func (s *tuiSurface) Apply(f frame.Frame) error {
	s.src.PublishFrame(f)
	return nil
}

func (s *tuiSurface) Reset() error {
	s.src.PublishReset()
	return nil
}

// renderOptions maps display config onto renderer options.
func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		Window:         cfg.Window,
		Decimals:       cfg.Display.Decimals,
		ChartWidth:     float64(cfg.Display.ChartWidth),
		ChartHeight:    float64(cfg.Display.ChartHeight),
		ReferenceLines: cfg.Display.ReferenceLines,
	}
}
