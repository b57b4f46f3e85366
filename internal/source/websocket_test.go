package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

// pushServer sends each frame in order, then either holds the connection
// open until the client goes away or closes it.
func pushServer(t *testing.T, frames []string, hold bool) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		if hold {
			// Block until the client closes.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + PushPath
}

func TestWebSocketSource_DeliversInOrderAndSkipsMalformed(t *testing.T) {
	srv := pushServer(t, []string{`[1,2]`, `not json`, `{"a":1}`, `[3,4,5]`}, false)
	defer srv.Close()

	var got []reading.Vector
	var decodeErrs []error

	src := NewWebSocketSource(wsURL(srv))
	err := src.Listen(context.Background(),
		func(v reading.Vector) { got = append(got, v) },
		func(err error) { decodeErrs = append(decodeErrs, err) },
	)

	// Server closed the connection after the last frame.
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransport))

	assert.Equal(t, []reading.Vector{{1, 2}, {3, 4, 5}}, got)
	require.Len(t, decodeErrs, 2)
	for _, e := range decodeErrs {
		assert.True(t, errors.IsCode(e, errors.ErrDecode))
	}
}

func TestWebSocketSource_CancelClosesConnection(t *testing.T) {
	srv := pushServer(t, []string{`[9]`}, true)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan reading.Vector, 1)
	done := make(chan error, 1)

	go func() {
		done <- NewWebSocketSource(wsURL(srv)).Listen(ctx, func(v reading.Vector) { received <- v }, nil)
	}()

	select {
	case v := <-received:
		assert.Equal(t, reading.Vector{9}, v)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

func TestWebSocketSource_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src := NewWebSocketSource(wsURL(srv))
	assert.Equal(t, wsURL(srv), src.URL())

	err := src.Listen(context.Background(), func(reading.Vector) {
		t.Fatal("no reading expected")
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransport))
	assert.Contains(t, err.Error(), "404")
}
