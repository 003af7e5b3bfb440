package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// normalizePercent maps a percentage onto 0-1. The range is fixed at 0-100
// so charts for different cores share a scale.
func normalizePercent(val float64) float64 {
	n := val / 100
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// brailleGrid plots data onto a width x height braille grid, filling each
// sample from the bottom. It returns the grid and the peak value per column.
func brailleGrid(data []float64, width, height int) ([][]rune, []float64) {
	totalDots := height * 4
	targetPoints := width * 2

	resampled := data
	if len(data) != targetPoints {
		resampled = resampleData(data, targetPoints)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}
	colMax := make([]float64, width)

	for i, val := range resampled {
		dotHeight := clampInt(int(normalizePercent(val)*float64(totalDots)+0.5), totalDots)
		charCol := i / 2
		subCol := i % 2
		if val > colMax[charCol] {
			colMax[charCol] = val
		}

		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - (dot / 4)
			subRow := 3 - (dot % 4)
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}
	return grid, colMax
}

// RenderBrailleChart renders a padded usage history as a braille area chart
// with a marker column on the right at the height of usage. Columns are
// colored by the band of their peak value.
func RenderBrailleChart(data []float64, usage float64, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	grid, colMax := brailleGrid(data, width, height)
	markerRow := MarkerRow(usage, height)

	lines := make([]string, 0, height)
	for r, row := range grid {
		var b strings.Builder
		for c, char := range row {
			style := lipgloss.NewStyle().Foreground(BandColor(colMax[c])).Background(ColorSurfaceBg)
			b.WriteString(style.Render(string(char)))
		}
		if r == markerRow {
			b.WriteString(BandStyle(usage).Background(ColorSurfaceBg).Render(MarkerGlyph))
		} else {
			b.WriteString(lipgloss.NewStyle().Background(ColorSurfaceBg).Render(" "))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// MarkerRow returns the chart row (0 = top) that holds the usage marker.
func MarkerRow(usage float64, height int) int {
	if height <= 0 {
		return 0
	}
	level := int(normalizePercent(usage) * float64(height))
	return clampInt(height-1-level, height-1)
}

// RenderCleanSparkline renders a single-row sparkline with a consistent accent color.
// Each character represents one data point using block characters (▁▂▃▄▅▆▇█).
func RenderCleanSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	resampled := data
	if len(data) > width {
		resampled = data[len(data)-width:]
	}

	var result strings.Builder
	for _, val := range resampled {
		idx := clampInt(int(normalizePercent(val)*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(result.String())
}

// resampleData resamples data to the target size.
// When downsampling (compressing), uses max-based sampling to preserve peaks/spikes.
// When upsampling (expanding), uses linear interpolation.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	// Downsampling: use max within each bucket to preserve peaks
	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			if start < 0 {
				start = 0
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	// Upsampling: linear interpolation
	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}

	return result
}
