// Package refresh keeps the displayed view in sync with the backend.
//
// Two shapes share one contract: every successfully obtained reading is
// handed to a Sink, synchronously and in arrival order, and nothing else
// ever is. Failed attempts are logged and swallowed so the last good view
// stays on screen.
//
//   - PullLoop drives itself: Fetching -> Waiting -> Fetching ... forever,
//     waiting a fixed Interval after every attempt whether it worked or not.
//   - PushListener reacts: one Sink call per decoded inbound frame.
//
// Neither exposes a stop operation. The context passed to Run stands in for
// the host going away.
package refresh

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/cpubars/internal/clock"
	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/logger"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

// Sink receives each successfully obtained reading. Calls never overlap.
type Sink func(reading.Vector)

// Puller obtains one reading per call.
type Puller interface {
	Pull(ctx context.Context) (reading.Vector, error)
}

// Subscriber delivers readings from a persistent channel until it ends.
type Subscriber interface {
	Listen(ctx context.Context, onVector func(reading.Vector), onDecodeErr func(error)) error
}

// Mode selects how readings reach the client.
type Mode int

const (
	ModePull Mode = iota
	ModePush
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePull:
		return "pull"
	case ModePush:
		return "push"
	default:
		return "unknown"
	}
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pull", "poll":
		return ModePull, nil
	case "push", "ws", "websocket":
		return ModePush, nil
	}
	return ModePull, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown mode '%s'", s),
		"Use 'pull' (poll every second) or 'push' (websocket).")
}

// Option configures a loop.
type Option func(*loopConfig)

type loopConfig struct {
	log     logger.Logger
	clock   clock.Clock
	session *Session
}

// WithLogger sets where attempt failures are reported.
func WithLogger(l logger.Logger) Option {
	return func(c *loopConfig) { c.log = l }
}

// WithClock replaces the real clock (tests pass a fake).
func WithClock(c clock.Clock) Option {
	return func(cfg *loopConfig) { cfg.clock = c }
}

func newLoopConfig(opts []Option) loopConfig {
	cfg := loopConfig{session: &Session{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Default()
	}
	if cfg.clock == nil {
		cfg.clock = clock.Real()
	}
	return cfg
}

// deliver hands v to sink, converting a panic into an error.
func deliver(sink Sink, v reading.Vector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrRender, fmt.Sprintf("render panicked: %v", r), "")
		}
	}()
	sink(v)
	return nil
}
