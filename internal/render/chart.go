package render

import (
	"math"
	"strconv"
	"strings"
)

// DefaultWindow is the number of history points every chart spans.
const DefaultWindow = 50

// Point is a chart coordinate in SVG user units (origin top-left).
type Point struct {
	X, Y float64
}

// Chart holds the fixed geometry of a per-core history chart.
type Chart struct {
	Width  float64
	Height float64
	Window int
}

// PadHistory returns exactly window values: history left-padded with zeros
// when it is short, or its newest window values when it is long.
func PadHistory(history []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}
	out := make([]float64, window)
	if len(history) >= window {
		copy(out, history[len(history)-window:])
		return out
	}
	copy(out[window-len(history):], history)
	return out
}

// step is the horizontal distance between adjacent samples.
func (c Chart) step() float64 {
	if c.Window <= 1 {
		return 0
	}
	return c.Width / float64(c.Window-1)
}

// X returns the horizontal position of sample i (0 = oldest).
func (c Chart) X(i int) float64 {
	return float64(i) * c.step()
}

// Y maps a usage value to a vertical position: 0 is the bottom edge, 100 the top.
func (c Chart) Y(v float64) float64 {
	return c.Height - (v/100)*c.Height
}

// Points maps padded history to chart coordinates, oldest on the left.
func (c Chart) Points(history []float64) []Point {
	padded := PadHistory(history, c.Window)
	pts := make([]Point, len(padded))
	for i, v := range padded {
		pts[i] = Point{X: c.X(i), Y: c.Y(v)}
	}
	return pts
}

// Marker is the position of the current-usage dot at the rightmost sample.
func (c Chart) Marker(usage float64) Point {
	return Point{X: c.X(c.Window - 1), Y: c.Y(usage)}
}

// LinePath returns an SVG path tracing the points.
func LinePath(pts []Point) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(coord(p.X))
		b.WriteByte(' ')
		b.WriteString(coord(p.Y))
	}
	return b.String()
}

// AreaPath returns the line path closed down to the chart's bottom edge.
func (c Chart) AreaPath(pts []Point) string {
	if len(pts) == 0 {
		return ""
	}
	last := pts[len(pts)-1]
	bottom := coord(c.Height)
	return LinePath(pts) +
		" L" + coord(last.X) + " " + bottom +
		" L" + coord(pts[0].X) + " " + bottom +
		" Z"
}

// coord formats a coordinate with at most two decimals and no trailing zeros.
func coord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
