// Package render turns a metrics frame into a plain visual node tree: one
// block per core with a usage label, band colour, fill bar and an SVG history
// chart. Every call is a full recompute with no retained state.
package render

import (
	"strconv"

	"github.com/rileyhilliard/corewatch/internal/frame"
)

// Options controls formatting and chart geometry.
type Options struct {
	Window         int
	Decimals       int
	ChartWidth     float64
	ChartHeight    float64
	ReferenceLines bool
}

// DefaultOptions returns the stock rendering options.
func DefaultOptions() Options {
	return Options{
		Window:         DefaultWindow,
		Decimals:       1,
		ChartWidth:     300,
		ChartHeight:    100,
		ReferenceLines: true,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Window <= 0 {
		o.Window = d.Window
	}
	if o.Decimals < 0 {
		o.Decimals = 0
	}
	if o.ChartWidth <= 0 {
		o.ChartWidth = d.ChartWidth
	}
	if o.ChartHeight <= 0 {
		o.ChartHeight = d.ChartHeight
	}
	return o
}

// Chart returns the chart geometry these options describe.
func (o Options) Chart() Chart {
	o = o.normalized()
	return Chart{Width: o.ChartWidth, Height: o.ChartHeight, Window: o.Window}
}

// Render builds the grid for a whole frame, one block per core in frame order.
func Render(f frame.Frame, opts Options) *Node {
	opts = opts.normalized()
	grid := El("div", []Attr{A("class", "cores")})
	grid.Children = make([]*Node, 0, len(f))
	for _, r := range f {
		grid.Children = append(grid.Children, RenderCore(r, opts))
	}
	return grid
}

// RenderCore builds the visual block for a single core.
func RenderCore(r frame.CoreReading, opts Options) *Node {
	opts = opts.normalized()
	band := BandFor(r.Usage)
	color := band.Color()
	id := strconv.Itoa(r.CoreID)

	header := El("div", []Attr{A("class", "core-header")},
		TextEl("span", []Attr{A("class", "core-name")}, CoreName(r.CoreID)),
		TextEl("span", []Attr{
			A("class", "usage-label"),
			A("style", "color: "+color),
		}, UsageLabel(r.Usage, opts.Decimals)),
	)

	bar := El("div", []Attr{A("class", "bar")},
		El("div", []Attr{
			A("class", "bar-fill"),
			A("style", "width: "+BarWidth(r.Usage)+"; background: "+color),
		}),
	)

	block := El("div", []Attr{
		A("class", "core core-"+band.String()),
		A("data-core-id", id),
	}, header, bar, renderChart(r, opts, color))
	block.Key = id
	return block
}

func renderChart(r frame.CoreReading, opts Options, color string) *Node {
	c := opts.Chart()
	pts := c.Points(r.History)
	w := coord(c.Width)
	h := coord(c.Height)

	svg := El("svg", []Attr{
		A("class", "chart"),
		A("viewBox", "0 0 "+w+" "+h),
		A("width", w),
		A("height", h),
		A("preserveAspectRatio", "none"),
	})

	svg.Children = append(svg.Children, El("path", []Attr{
		A("class", "area"),
		A("d", c.AreaPath(pts)),
		A("fill", color),
		A("fill-opacity", "0.2"),
		A("stroke", "none"),
	}))

	if opts.ReferenceLines {
		for _, level := range ReferenceLevels {
			y := coord(c.Y(level))
			svg.Children = append(svg.Children, El("line", []Attr{
				A("class", "reference"),
				A("data-level", coord(level)),
				A("x1", "0"),
				A("y1", y),
				A("x2", w),
				A("y2", y),
				A("stroke", BandFor(level).Color()),
				A("stroke-opacity", "0.4"),
				A("stroke-dasharray", "4 4"),
			}))
		}
	}

	svg.Children = append(svg.Children, El("path", []Attr{
		A("class", "line"),
		A("d", LinePath(pts)),
		A("fill", "none"),
		A("stroke", color),
		A("stroke-width", "1.5"),
	}))

	m := c.Marker(r.Usage)
	svg.Children = append(svg.Children, El("circle", []Attr{
		A("class", "marker"),
		A("cx", coord(m.X)),
		A("cy", coord(m.Y)),
		A("r", "3"),
		A("fill", color),
	}))

	return svg
}

// CoreName is the display name of a core.
func CoreName(id int) string {
	return "CPU " + strconv.Itoa(id)
}

// UsageLabel formats a usage value as a fixed-decimal percentage.
func UsageLabel(usage float64, decimals int) string {
	return strconv.FormatFloat(usage, 'f', decimals, 64) + "%"
}

// BarWidth returns the CSS width of the fill bar, linear in usage.
func BarWidth(usage float64) string {
	return strconv.FormatFloat(usage, 'f', -1, 64) + "%"
}
