package refresh

import (
	"context"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

// PushListener is the reactive refresh handler for push mode.
type PushListener struct {
	source Subscriber
	sink   Sink
	cfg    loopConfig
}

// NewPushListener creates a listener that renders every frame from source.
func NewPushListener(source Subscriber, sink Sink, opts ...Option) *PushListener {
	return &PushListener{
		source: source,
		sink:   sink,
		cfg:    newLoopConfig(opts),
	}
}

// Session returns the session this listener reports into.
func (l *PushListener) Session() *Session {
	return l.cfg.session
}

// Run registers the frame handler and blocks while the channel is open.
// Malformed frames are logged and skipped. When the channel drops the
// failure is logged and Run returns; there is no reconnect, and the last
// rendered view is left as is.
func (l *PushListener) Run(ctx context.Context) {
	session := l.cfg.session
	session.begin(StateListening)
	defer session.end(StateClosed)

	err := l.source.Listen(ctx, l.onVector, l.onDecodeErr)
	if err != nil && ctx.Err() == nil {
		session.failed()
		l.cfg.log.Error("push channel ended: %s", errors.Summary(err))
	}
}

func (l *PushListener) onVector(v reading.Vector) {
	n := l.cfg.session.received()
	if err := deliver(l.sink, v); err != nil {
		l.cfg.session.failed()
		l.cfg.log.Warn("frame %d not rendered: %s", n, errors.Summary(err))
		return
	}
	l.cfg.session.delivered(l.cfg.clock.Now())
	l.cfg.log.Debug("rendered %d cores: %s", v.Cores(), v)
}

func (l *PushListener) onDecodeErr(err error) {
	n := l.cfg.session.received()
	l.cfg.session.failed()
	l.cfg.log.Warn("frame %d skipped: %s", n, errors.Summary(err))
}
