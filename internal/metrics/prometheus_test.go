package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/corewatch/internal/feed"
)

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()

	r.FrameReceived()
	r.FrameReceived()
	r.FrameDropped()
	r.TransportError()
	r.Reloaded()
	r.ObserveCores(8)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.FramesReceived))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FramesDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.TransportErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Reloads))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.Cores))
}

func TestRecorder_State(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, float64(feed.StateClosed), testutil.ToFloat64(r.State))

	r.StateChanged(feed.StateOpen)
	assert.Equal(t, float64(feed.StateOpen), testutil.ToFloat64(r.State))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.FrameReceived()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FramesReceived))

	n, err := testutil.GatherAndCount(a.Registry())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.FrameReceived()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "corewatch_frames_received_total 1")
}

func TestRecorder_ServeStopsWithContext(t *testing.T) {
	r := NewRecorder()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "corewatch_reloads_total")

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestRecorder_ServeBadAddress(t *testing.T) {
	err := NewRecorder().Serve(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics address")
}
