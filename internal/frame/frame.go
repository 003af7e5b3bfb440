// Package frame defines the per-core CPU snapshot delivered by the realtime
// feed and decodes raw feed messages into it.
package frame

// CoreReading is one core's utilization at a point in time.
//
// History is supplied complete by the server on every frame, oldest sample
// first. Usage and the last History value may have been sampled at slightly
// different instants.
type CoreReading struct {
	CoreID  int       `json:"core_id"`
	Usage   float64   `json:"usage"`
	History []float64 `json:"history"`
}

// Frame is one complete snapshot of all cores, in the order the feed sent them.
type Frame []CoreReading

// Cores returns the number of readings in the frame.
func (f Frame) Cores() int {
	return len(f)
}

// Average returns the mean usage across all cores, or 0 for an empty frame.
func (f Frame) Average() float64 {
	if len(f) == 0 {
		return 0
	}
	var sum float64
	for _, r := range f {
		sum += r.Usage
	}
	return sum / float64(len(f))
}
