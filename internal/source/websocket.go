package source

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

const closeGrace = time.Second

// WebSocketSource is the push adapter: one long-lived connection, one
// reading per inbound frame. It never sends anything but the close frame.
type WebSocketSource struct {
	url    string
	dialer *websocket.Dialer
}

// NewWebSocketSource creates a push adapter for a ws:// or wss:// url.
func NewWebSocketSource(url string) *WebSocketSource {
	return &WebSocketSource{
		url: url,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: DefaultTimeout,
		},
	}
}

// URL returns the endpoint this source listens on.
func (s *WebSocketSource) URL() string {
	return s.url
}

// Listen dials the endpoint and delivers readings until the connection
// ends or ctx is cancelled. Frames are handled one at a time: onVector
// returns before the next frame is read. A frame that fails to decode is
// passed to onDecodeErr and skipped; the connection stays open.
//
// Listen does not reconnect. It returns a TRANSPORT error when the dial
// fails or the connection drops, and ctx.Err() after cancellation.
func (s *WebSocketSource) Listen(ctx context.Context, onVector func(reading.Vector), onDecodeErr func(error)) error {
	conn, resp, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		if resp != nil {
			return errors.Transport(err, "connect to %s failed with status %d", s.url, resp.StatusCode)
		}
		return errors.Transport(err, "connect to %s failed", s.url)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Transport(err, "push channel %s closed", s.url)
		}

		v, err := reading.Decode(data)
		if err != nil {
			if onDecodeErr != nil {
				onDecodeErr(err)
			}
			continue
		}
		onVector(v)
	}
}
