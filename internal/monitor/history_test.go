package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_PushAndLast(t *testing.T) {
	h := NewHistory(3)
	assert.Nil(t, h.Last(5))

	h.Push(1)
	h.Push(2)
	assert.Equal(t, []float64{1, 2}, h.Last(5))
	assert.Equal(t, []float64{2}, h.Last(1))

	h.Push(3)
	h.Push(4)
	assert.Equal(t, []float64{2, 3, 4}, h.Last(3), "oldest sample is evicted")
	assert.Equal(t, 3, h.Count())
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(2)
	h.Push(10)
	h.Clear()
	assert.Equal(t, 0, h.Count())
	assert.Nil(t, h.Last(2))

	h.Push(20)
	assert.Equal(t, []float64{20}, h.Last(2))
}

func TestNewHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Push(float64(i))
	}
	assert.Equal(t, DefaultHistorySize, h.Count())
}
