// Package streaming is a minimal Socket.IO client over a websocket
// transport, enough to talk to the detection backend.
package streaming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"smarttag/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
)

var (
	ErrNotConnected = errors.New("streaming: not connected")

	errServerClosed     = errors.New("streaming: server closed the transport")
	errServerDisconnect = errors.New("streaming: server disconnected the socket")
)

// Handler receives the first argument of an event.
type Handler func(data json.RawMessage)

// Callbacks report the connection lifecycle. All are optional.
type Callbacks struct {
	OnConnect      func()
	OnConnectError func(err error)
	OnDisconnect   func(err error)
}

type Client struct {
	url       string
	dialer    *websocket.Dialer
	reconnect ReconnectConfig
	callbacks Callbacks
	logger    *logger.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string][]Handler
	once     map[string][]Handler

	writeMu   sync.Mutex
	connected atomic.Bool
}

func NewClient(url string, reconnect ReconnectConfig, callbacks Callbacks, logger *logger.Logger) *Client {
	return &Client{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
		reconnect: reconnect,
		callbacks: callbacks,
		logger:    logger,
		handlers:  make(map[string][]Handler),
		once:      make(map[string][]Handler),
	}
}

// On registers h for every occurrence of event.
func (c *Client) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], h)
}

// Once registers h for the next occurrence of event only.
func (c *Client) Once(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.once[event] = append(c.once[event], h)
}

func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Emit sends event without waiting for any acknowledgement.
func (c *Client) Emit(event string, payload any) error {
	if !c.Connected() {
		return ErrNotConnected
	}

	msg, err := encodeEvent(event, payload)
	if err != nil {
		return err
	}
	return c.write(msg)
}

func (c *Client) write(msg []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("streaming: write failed: %w", err)
	}
	return nil
}

// Run connects and keeps the connection alive until ctx is cancelled or
// MaxRetries consecutive attempts have failed.
func (c *Client) Run(ctx context.Context) error {
	failures := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, readTimeout, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			failures++
			c.logger.Error("Streaming connection failed (attempt %d): %v", failures, err)
			if c.callbacks.OnConnectError != nil {
				c.callbacks.OnConnectError(err)
			}

			if failures > c.reconnect.MaxRetries {
				return fmt.Errorf("streaming: max retries exceeded (%d attempts): %w", c.reconnect.MaxRetries, err)
			}

			delay := calculateBackoff(failures, c.reconnect)
			c.logger.Warning("Retrying streaming connection in %v (%d/%d)", delay, failures, c.reconnect.MaxRetries)
			if !sleep(ctx, delay) {
				return ctx.Err()
			}
			continue
		}

		failures = 0
		c.setConn(conn)
		c.logger.Info("Connected to streaming backend %s", c.url)
		if c.callbacks.OnConnect != nil {
			c.callbacks.OnConnect()
		}

		stop := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-stop:
			}
		}()

		err = c.readLoop(conn, readTimeout)
		close(stop)
		c.setConn(nil)
		conn.Close()

		c.logger.Warning("Disconnected from streaming backend: %v", err)
		if c.callbacks.OnDisconnect != nil {
			c.callbacks.OnDisconnect(err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !sleep(ctx, c.reconnect.RetryDelay) {
			return ctx.Err()
		}
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(conn != nil)
}

// dial opens the transport and joins the default namespace.
func (c *Client) dial(ctx context.Context) (*websocket.Conn, time.Duration, error) {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("dial %s: %w", c.url, err)
	}

	open, err := c.handshake(conn)
	if err != nil {
		conn.Close()
		return nil, 0, err
	}

	conn.SetReadDeadline(time.Time{})

	var readTimeout time.Duration
	if open.PingInterval > 0 {
		readTimeout = time.Duration(open.PingInterval+open.PingTimeout) * time.Millisecond
	}
	return conn, readTimeout, nil
}

func (c *Client) handshake(conn *websocket.Conn) (openPayload, error) {
	var open openPayload

	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return open, fmt.Errorf("handshake read failed: %w", err)
	}

	p, err := decodePacket(msg)
	if err != nil {
		return open, fmt.Errorf("handshake: %w", err)
	}
	if p.Engine != engineOpen {
		return open, fmt.Errorf("handshake: expected open packet, got %q", p.Engine)
	}
	if err := json.Unmarshal(p.Data, &open); err != nil {
		return open, fmt.Errorf("handshake: invalid open payload: %w", err)
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, encodeConnect()); err != nil {
		return open, fmt.Errorf("handshake write failed: %w", err)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return open, fmt.Errorf("handshake read failed: %w", err)
		}

		p, err := decodePacket(msg)
		if err != nil {
			c.logger.Warning("Ignoring malformed packet during handshake: %v", err)
			continue
		}

		switch {
		case p.Engine == enginePing:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte{enginePong}); err != nil {
				return open, fmt.Errorf("handshake write failed: %w", err)
			}
		case p.Engine == engineClose:
			return open, errServerClosed
		case p.Engine == engineMessage && p.Socket == socketConnect:
			return open, nil
		case p.Engine == engineMessage && p.Socket == socketConnectError:
			var e errorPayload
			json.Unmarshal(p.Data, &e)
			if e.Message == "" {
				e.Message = string(p.Data)
			}
			return open, fmt.Errorf("connect rejected: %s", e.Message)
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn, readTimeout time.Duration) error {
	for {
		if readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(readTimeout))
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		p, err := decodePacket(msg)
		if err != nil {
			c.logger.Warning("Ignoring malformed packet: %v", err)
			continue
		}

		switch p.Engine {
		case enginePing:
			if err := c.write([]byte{enginePong}); err != nil {
				return err
			}
		case engineClose:
			return errServerClosed
		case engineMessage:
			switch p.Socket {
			case socketEvent:
				c.dispatch(p.Event, p.Data)
			case socketDisconnect:
				return errServerDisconnect
			}
		}
	}
}

func (c *Client) dispatch(event string, data json.RawMessage) {
	c.mu.Lock()
	handlers := append([]Handler(nil), c.handlers[event]...)
	handlers = append(handlers, c.once[event]...)
	delete(c.once, event)
	c.mu.Unlock()

	for _, h := range handlers {
		h(data)
	}
}
