package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

// Interval is the fixed pause between the end of one pull and the start
// of the next.
const Interval = 1000 * time.Millisecond

// PullLoop is the self-driving refresh loop for pull mode.
type PullLoop struct {
	source Puller
	sink   Sink
	cfg    loopConfig
}

// NewPullLoop creates a loop that pulls from source and renders into sink.
func NewPullLoop(source Puller, sink Sink, opts ...Option) *PullLoop {
	return &PullLoop{
		source: source,
		sink:   sink,
		cfg:    newLoopConfig(opts),
	}
}

// Session returns the session this loop reports into.
func (l *PullLoop) Session() *Session {
	return l.cfg.session
}

// Run pulls immediately, then every Interval after the previous attempt
// finished, until ctx is done. A failed attempt is logged and skipped; it
// never ends the loop and never reaches the sink.
func (l *PullLoop) Run(ctx context.Context) {
	session := l.cfg.session
	session.begin(StateFetching)
	defer session.end(StateIdle)

	for {
		n := session.fetching()
		if err := l.iterate(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			failures := session.failed()
			l.cfg.log.Warn("pull attempt %d failed (%d failures so far): %s", n, failures, errors.Summary(err))
		}

		session.waiting(l.cfg.clock.Now().Add(Interval))
		select {
		case <-ctx.Done():
			return
		case <-l.cfg.clock.After(Interval):
		}
	}
}

// iterate is one Fetching step. Panics in the source or sink are turned
// into errors so nothing unwinds past the loop.
func (l *PullLoop) iterate(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pull panicked: %v", r)
		}
	}()

	v, err := l.source.Pull(ctx)
	if err != nil {
		return err
	}
	if err := deliver(l.sink, v); err != nil {
		return err
	}
	l.cfg.session.delivered(l.cfg.clock.Now())
	l.cfg.log.Debug("rendered %d cores: %s", v.Cores(), v)
	return nil
}

// Once performs a single pull and renders it on success. Used by one-shot
// commands; it shares the failure handling of the loop but returns the error.
func Once(ctx context.Context, source Puller, sink Sink) (reading.Vector, error) {
	v, err := source.Pull(ctx)
	if err != nil {
		return nil, err
	}
	if err := deliver(sink, v); err != nil {
		return nil, err
	}
	return v, nil
}
