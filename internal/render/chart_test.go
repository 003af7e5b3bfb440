package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		window  int
		want    []float64
	}{
		{"empty", nil, 4, []float64{0, 0, 0, 0}},
		{"short", []float64{1, 2}, 4, []float64{0, 0, 1, 2}},
		{"exact", []float64{1, 2, 3, 4}, 4, []float64{1, 2, 3, 4}},
		{"long keeps newest", []float64{1, 2, 3, 4, 5, 6}, 4, []float64{3, 4, 5, 6}},
		{"zero window", []float64{1}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PadHistory(tt.history, tt.window))
		})
	}
}

func TestPadHistory_DoesNotAliasInput(t *testing.T) {
	in := []float64{1, 2, 3}
	out := PadHistory(in, 3)
	out[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestChart_Coordinates(t *testing.T) {
	c := Chart{Width: 490, Height: 100, Window: 50}

	assert.Equal(t, 0.0, c.X(0))
	assert.InDelta(t, 10.0, c.X(1), 1e-9)
	assert.InDelta(t, 490.0, c.X(49), 1e-9)

	assert.Equal(t, 100.0, c.Y(0))
	assert.Equal(t, 0.0, c.Y(100))
	assert.InDelta(t, 57.5, c.Y(42.5), 1e-9)
}

func TestChart_SingleSampleWindow(t *testing.T) {
	c := Chart{Width: 300, Height: 100, Window: 1}
	pts := c.Points([]float64{40})
	require.Len(t, pts, 1)
	assert.Equal(t, 0.0, pts[0].X)
	assert.InDelta(t, 60.0, pts[0].Y, 1e-9)

	m := c.Marker(80)
	assert.Equal(t, 0.0, m.X)
	assert.InDelta(t, 20.0, m.Y, 1e-9)
}

func TestLinePath(t *testing.T) {
	assert.Equal(t, "", LinePath(nil))
	assert.Equal(t, "M0 100", LinePath([]Point{{0, 100}}))
	assert.Equal(t, "M0 1.23 L6.12 0", LinePath([]Point{{0, 1.2345}, {6.1224489, -0.0001}}))
}

func TestChart_AreaPathEmpty(t *testing.T) {
	c := Chart{Width: 10, Height: 10, Window: 2}
	assert.Equal(t, "", c.AreaPath(nil))
}
