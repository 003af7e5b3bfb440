package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/frame"
)

func TestSource_LatestFrameWins(t *testing.T) {
	src := NewSource()
	src.PublishFrame(frame.Frame{{CoreID: 0, Usage: 1}})
	src.PublishFrame(frame.Frame{{CoreID: 0, Usage: 2}})

	got := <-src.frames
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Usage)
	assert.Empty(t, src.frames)
}

func TestSource_StatesAndResets(t *testing.T) {
	src := NewSource()
	src.PublishState(feed.StateConnecting)
	src.PublishState(feed.StateOpen)
	assert.Equal(t, feed.StateOpen, <-src.states)

	src.PublishReset()
	src.PublishReset()
	<-src.resets
	assert.Empty(t, src.resets, "pending resets coalesce")
}
