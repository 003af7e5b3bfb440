package render

// Band is one of four fixed usage ranges that drive colour selection.
type Band int

const (
	BandNeutral Band = iota
	BandCaution
	BandWarning
	BandAlert
)

// Band thresholds. A value equal to a threshold belongs to the higher band.
const (
	CautionThreshold = 25.0
	WarningThreshold = 50.0
	AlertThreshold   = 80.0
)

// ReferenceLevels are the usage levels drawn as horizontal chart guides.
var ReferenceLevels = []float64{CautionThreshold, WarningThreshold, AlertThreshold}

// Band colours, shared by the HTML and terminal surfaces.
const (
	ColorNeutral = "#39FF14" // Neon green
	ColorCaution = "#FFCC00" // Gold
	ColorWarning = "#FF8800" // Orange
	ColorAlert   = "#FF0055" // Hot red-pink
)

// BandFor maps a usage percentage to its band. First match wins, highest first.
func BandFor(usage float64) Band {
	switch {
	case usage >= AlertThreshold:
		return BandAlert
	case usage >= WarningThreshold:
		return BandWarning
	case usage >= CautionThreshold:
		return BandCaution
	default:
		return BandNeutral
	}
}

// Color returns the hex colour for the band.
func (b Band) Color() string {
	switch b {
	case BandAlert:
		return ColorAlert
	case BandWarning:
		return ColorWarning
	case BandCaution:
		return ColorCaution
	default:
		return ColorNeutral
	}
}

// String returns the band name, also used as a CSS class suffix.
func (b Band) String() string {
	switch b {
	case BandAlert:
		return "alert"
	case BandWarning:
		return "warning"
	case BandCaution:
		return "caution"
	default:
		return "neutral"
	}
}

// UsageColor is BandFor(usage).Color().
func UsageColor(usage float64) string {
	return BandFor(usage).Color()
}
