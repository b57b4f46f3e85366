package refresh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/cpubars/internal/clock"
	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/logger"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

func TestPushListener_RendersEachFrameAndSkipsMalformed(t *testing.T) {
	src := &scriptedSubscriber{
		frames: []frame{
			{payload: reading.Vector{1, 2}},
			{decode: errors.Decode(nil, "payload is not a JSON array")},
			{payload: reading.Vector{3}},
		},
		err: errors.Transport(nil, "push channel closed"),
	}

	var rendered []reading.Vector
	log := logger.NewBufferLogger()

	l := NewPushListener(src, func(v reading.Vector) {
		rendered = append(rendered, v)
	}, WithLogger(log), WithClock(clock.Fake(epoch)))
	l.Run(context.Background())

	assert.Equal(t, []reading.Vector{{1, 2}, {3}}, rendered)
	assert.Equal(t, 1, log.Count("warn"), "decode error logged once")
	assert.Equal(t, 1, log.Count("error"), "channel end logged once")

	stats := l.Session().Stats()
	assert.Equal(t, 3, stats.Attempts)
	assert.Equal(t, 2, stats.Successes)
	assert.Equal(t, 2, stats.Failures)
	assert.Equal(t, StateClosed, stats.State)
	assert.False(t, stats.Active)
}

func TestPushListener_MalformedFrameKeepsView(t *testing.T) {
	src := &scriptedSubscriber{
		frames: []frame{
			{payload: reading.Vector{10, 20}},
			{decode: errors.Decode(nil, "truncated")},
		},
	}
	d := &display{}

	NewPushListener(src, d.show, WithLogger(logger.Noop())).Run(context.Background())

	current, renders := d.snapshot()
	assert.Equal(t, reading.Vector{10, 20}, current)
	assert.Equal(t, 1, renders)
}

func TestPushListener_CancelIsNotAnError(t *testing.T) {
	src := &scriptedSubscriber{frames: []frame{{payload: reading.Vector{1}}}, block: true}
	log := logger.NewBufferLogger()
	ctx, cancel := context.WithCancel(context.Background())

	l := NewPushListener(src, func(reading.Vector) { cancel() }, WithLogger(log))
	l.Run(ctx)

	assert.False(t, log.HasLevel("error"))
	assert.Equal(t, 0, l.Session().Stats().Failures)
}

func TestPushListener_SinkPanicIsContained(t *testing.T) {
	src := &scriptedSubscriber{frames: []frame{
		{payload: reading.Vector{1}},
		{payload: reading.Vector{2}},
	}}
	log := logger.NewBufferLogger()
	var last reading.Vector

	l := NewPushListener(src, func(v reading.Vector) {
		if v[0] == 1 {
			panic("boom")
		}
		last = v
	}, WithLogger(log))

	assert.NotPanics(t, func() { l.Run(context.Background()) })
	assert.Equal(t, reading.Vector{2}, last)
	assert.Equal(t, 1, log.Count("warn"))
}
