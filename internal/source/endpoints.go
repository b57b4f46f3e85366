// Package source implements the Data Source Adapters: a one-shot HTTP pull
// and a long-lived WebSocket push channel, both delivering reading.Vector.
package source

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/cpubars/internal/errors"
)

// Well-known backend paths.
const (
	PullPath = "/api/cpus"
	PushPath = "/api/realtime_cpus"
)

// Endpoints holds the absolute URLs of both data sources.
type Endpoints struct {
	Pull string
	Push string
}

// Resolve derives both endpoints from the backend base URL. The push URL
// reuses the host with the scheme upgraded (http -> ws, https -> wss).
// A ws/wss base is accepted too and downgraded for the pull URL.
func Resolve(base string) (Endpoints, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return Endpoints{}, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' is not a valid URL", base),
			"Use something like http://localhost:3000")
	}
	if u.Host == "" {
		return Endpoints{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("URL '%s' has no host", base),
			"Use something like http://localhost:3000")
	}

	var httpScheme, wsScheme string
	switch strings.ToLower(u.Scheme) {
	case "http", "ws":
		httpScheme, wsScheme = "http", "ws"
	case "https", "wss":
		httpScheme, wsScheme = "https", "wss"
	default:
		return Endpoints{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unsupported URL scheme '%s'", u.Scheme),
			"Use http:// or https://")
	}

	pull := u.ResolveReference(&url.URL{Path: PullPath})
	pull.Scheme = httpScheme
	push := u.ResolveReference(&url.URL{Path: PushPath})
	push.Scheme = wsScheme

	return Endpoints{Pull: pull.String(), Push: push.String()}, nil
}
