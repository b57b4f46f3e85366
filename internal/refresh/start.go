package refresh

import (
	"context"
	"sync"

	"github.com/rileyhilliard/cpubars/internal/errors"
)

// Config describes which refresh mechanism to start.
type Config struct {
	Mode Mode
	// Pull is required in ModePull.
	Pull Puller
	// Push is required in ModePush.
	Push Subscriber
	Sink Sink
}

// Starter starts the refresh mechanism at most once.
type Starter struct {
	once    sync.Once
	session *Session
	err     error
}

// Start launches the loop for cfg.Mode on its own goroutine and returns
// its session. Later calls return the first call's result and start
// nothing. The loop runs until ctx is done.
func (s *Starter) Start(ctx context.Context, cfg Config, opts ...Option) (*Session, error) {
	s.once.Do(func() {
		s.session, s.err = start(ctx, cfg, opts)
	})
	return s.session, s.err
}

func start(ctx context.Context, cfg Config, opts []Option) (*Session, error) {
	if cfg.Sink == nil {
		return nil, errors.New(errors.ErrConfig, "No render target for the refresh loop", "")
	}

	switch cfg.Mode {
	case ModePull:
		if cfg.Pull == nil {
			return nil, errors.New(errors.ErrConfig, "Pull mode needs a pull source", "")
		}
		loop := NewPullLoop(cfg.Pull, cfg.Sink, opts...)
		go loop.Run(ctx)
		return loop.Session(), nil

	case ModePush:
		if cfg.Push == nil {
			return nil, errors.New(errors.ErrConfig, "Push mode needs a push source", "")
		}
		listener := NewPushListener(cfg.Push, cfg.Sink, opts...)
		go listener.Run(ctx)
		return listener.Session(), nil
	}

	return nil, errors.New(errors.ErrConfig, "Unknown refresh mode "+cfg.Mode.String(), "Use 'pull' or 'push'.")
}
