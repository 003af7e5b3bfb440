package monitor

import "sync"

// DefaultHistorySize is the default number of frame averages retained.
const DefaultHistorySize = 60

// History keeps a rolling record of the all-core average usage, one sample
// per accepted frame. Per-core history arrives with each frame; this one
// spans frames and backs the header sparkline.
type History struct {
	mu  sync.RWMutex
	buf *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{buf: newRingBuffer(size)}
}

// Push records one sample.
func (h *History) Push(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.push(v)
}

// Last returns up to count samples, oldest first.
func (h *History) Last(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.getLast(count)
}

// Count returns the number of stored samples.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.count
}

// Clear drops all samples.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf = newRingBuffer(h.buf.size)
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the newest value is at head-1
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}
