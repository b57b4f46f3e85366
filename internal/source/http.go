package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

// maxBodyBytes bounds a pull response. A few thousand cores fit easily.
const maxBodyBytes = 1 << 20

// DefaultTimeout bounds a single pull round trip.
const DefaultTimeout = 5 * time.Second

// HTTPSource is the pull adapter: every Pull issues one GET.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a pull adapter for url. A zero timeout uses DefaultTimeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// WithClient replaces the HTTP client (tests use the httptest server's).
func (s *HTTPSource) WithClient(c *http.Client) *HTTPSource {
	s.client = c
	return s
}

// URL returns the endpoint this source pulls from.
func (s *HTTPSource) URL() string {
	return s.url
}

// Pull fetches and decodes the current reading.
// Request failures and non-2xx statuses are TRANSPORT errors; a body that
// is not a reading vector is a DECODE error.
func (s *HTTPSource) Pull(ctx context.Context) (reading.Vector, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Transport(err, "cannot build request for %s", s.url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Transport(err, "GET %s failed", s.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.Transport(fmt.Errorf("status %s", resp.Status), "GET %s returned %d", s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.Transport(err, "reading response from %s", s.url)
	}
	if len(body) > maxBodyBytes {
		return nil, errors.Decode(nil, "response from %s exceeds %d bytes", s.url, maxBodyBytes)
	}

	return reading.Decode(body)
}
