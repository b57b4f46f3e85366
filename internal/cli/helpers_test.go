package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/rileyhilliard/cpubars/internal/config"
	"github.com/rileyhilliard/cpubars/internal/source"
)

// syncBuffer guards a bytes.Buffer written from the refresh goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// backend serves the pull endpoint with pullBody and streams pushFrames
// on the push endpoint, holding the socket open afterwards.
type backend struct {
	*httptest.Server
	pullStatus int
	pullBody   string
	pushFrames []string
}

func newBackend(t *testing.T, pullBody string, pushFrames ...string) *backend {
	t.Helper()
	return newBackendStatus(t, http.StatusOK, pullBody, pushFrames...)
}

func newBackendStatus(t *testing.T, status int, pullBody string, pushFrames ...string) *backend {
	t.Helper()
	b := &backend{pullStatus: status, pullBody: pullBody, pushFrames: pushFrames}

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc(source.PullPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(b.pullStatus)
		_, _ = w.Write([]byte(b.pullBody))
	})
	mux.HandleFunc(source.PushPath, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range b.pushFrames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

// testConfig returns a valid config pointed at url.
func testConfig(url string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.URL = url
	return cfg
}

func countFrames(out string) int {
	return strings.Count(out, "cpu0 ")
}
