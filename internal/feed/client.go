// Package feed maintains a subscription to the realtime CPU metrics feed and
// hands each decoded frame to a handler.
//
// A session dials the feed, reads messages until the connection closes, then
// waits a fixed delay and reloads: the reload hook fires so consumers can
// start from a clean slate, and a fresh session begins. There is no in-place
// reconnect or backoff. Malformed messages are dropped one at a time and never
// end a session; transport errors are only logged.
package feed

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	cwerrors "github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/frame"
	"github.com/rileyhilliard/corewatch/internal/logger"
)

const (
	// DefaultReloadDelay is the wait between a close and the reload.
	DefaultReloadDelay = 3 * time.Second

	// DefaultHandshakeTimeout bounds the WebSocket opening handshake.
	DefaultHandshakeTimeout = 10 * time.Second

	readLimit = 4 << 20
)

// Handler receives each decoded frame. It runs on the session goroutine and
// returns before the next message is read, so frames never overlap.
type Handler func(frame.Frame)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for lifecycle events.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStats sets the receiver for lifecycle counts.
func WithStats(s Stats) Option {
	return func(c *Client) {
		if s != nil {
			c.stats = s
		}
	}
}

// WithReloadDelay overrides the delay between a close and the reload.
func WithReloadDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.reloadDelay = d
		}
	}
}

// WithReloadHook registers fn to run on every reload, before the new session dials.
func WithReloadHook(fn func()) Option {
	return func(c *Client) {
		c.onReload = fn
	}
}

// WithStateHook registers fn to run on every connection state change.
func WithStateHook(fn func(State)) Option {
	return func(c *Client) {
		c.onState = fn
	}
}

// WithDialer overrides the WebSocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// Client is a single subscription to the metrics feed.
type Client struct {
	url         string
	handler     Handler
	log         logger.Logger
	stats       Stats
	reloadDelay time.Duration
	onReload    func()
	onState     func(State)
	dialer      *websocket.Dialer
	after       func(time.Duration) <-chan time.Time

	state atomic.Int32

	mu   sync.Mutex
	conn *websocket.Conn
	// dropped is the connection Reload closed on purpose. Its read error
	// is not a transport error.
	dropped *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a client for the given WebSocket URL (see SubscriptionURL).
func NewClient(url string, handler Handler, opts ...Option) *Client {
	c := &Client{
		url:         url,
		handler:     handler,
		log:         logger.Noop(),
		stats:       noopStats{},
		reloadDelay: DefaultReloadDelay,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: DefaultHandshakeTimeout,
		},
		after: time.After,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.Store(int32(StateClosed))
	return c
}

// URL returns the subscription URL.
func (c *Client) URL() string {
	return c.url
}

// ReloadDelay returns the delay between a close and the reload.
func (c *Client) ReloadDelay() time.Duration {
	return c.reloadDelay
}

// State returns the current connection state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// Start begins the session loop in the background. Calling Start on a running
// client does nothing.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

// Stop closes the connection, cancels any pending reload and waits for the
// session loop to exit.
func (c *Client) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Run starts the client and blocks until ctx is done, then stops it.
func (c *Client) Run(ctx context.Context) error {
	c.Start(ctx)
	<-ctx.Done()
	c.Stop()
	return nil
}

// Reload closes the current connection. The session then follows the normal
// close, delay, reload path.
func (c *Client) Reload() {
	c.mu.Lock()
	conn := c.conn
	if conn != nil {
		c.dropped = conn
	}
	c.mu.Unlock()
	if conn == nil {
		return
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "reload"), deadline)
	_ = conn.Close()
}

func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		c.session(ctx)
		if ctx.Err() != nil {
			return
		}

		c.log.Info("feed closed, reloading in %s", c.reloadDelay)
		select {
		case <-ctx.Done():
			return
		case <-c.after(c.reloadDelay):
		}
		c.reload()
	}
}

// session runs one connection from dial to close.
func (c *Client) session(ctx context.Context) {
	c.setState(StateConnecting)

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if ctx.Err() == nil {
			c.onError(err)
		}
		c.onClose(err)
		return
	}
	conn.SetReadLimit(readLimit)
	c.setConn(conn)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
		c.setConn(nil)
	}()

	c.onOpen()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !c.droppedOnPurpose(conn) && ctx.Err() == nil && !isCleanClose(err) {
				c.onError(err)
			}
			c.onClose(err)
			return
		}
		c.onMessage(raw)
	}
}

func (c *Client) onOpen() {
	c.setState(StateOpen)
	c.log.Info("connected to %s", c.url)
}

// onError is observational only; closing is driven by the read loop.
func (c *Client) onError(err error) {
	c.stats.TransportError()
	c.log.Warn("transport error on %s: %v", c.url, err)
}

func (c *Client) onClose(err error) {
	c.setState(StateClosed)
	c.log.Debug("connection to %s closed: %v", c.url, err)
}

func (c *Client) onMessage(raw []byte) {
	f, err := frame.Decode(raw)
	if err != nil {
		c.stats.FrameDropped()
		c.log.Debug("dropping frame: %s", errMessage(err))
		return
	}
	c.stats.FrameReceived()
	c.deliver(f)
}

func (c *Client) deliver(f frame.Frame) {
	defer func() {
		if r := recover(); r != nil {
			c.stats.FrameDropped()
			c.log.Error("frame handler panicked: %v", r)
		}
	}()
	if c.handler != nil {
		c.handler(f)
	}
}

func (c *Client) reload() {
	c.stats.Reloaded()
	c.log.Info("reloading feed session")
	if c.onReload != nil {
		c.onReload()
	}
}

func (c *Client) setState(s State) {
	c.state.Store(int32(s))
	c.stats.StateChanged(s)
	if c.onState != nil {
		c.onState(s)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Client) droppedOnPurpose(conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped == conn
}

func isCleanClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

// errMessage returns the one-line message of a structured error.
func errMessage(err error) string {
	var cwErr *cwerrors.Error
	if errors.As(err, &cwErr) {
		return cwErr.Message
	}
	return err.Error()
}
