package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/cpubars/internal/clock"
	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/logger"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

func runLoop(t *testing.T, loop *PullLoop) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	return func() {
		stop()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("pull loop did not stop after cancel")
		}
	}
}

func TestPullLoop_FailureKeepsViewThenSuccessReplacesIt(t *testing.T) {
	fake := clock.Fake(epoch)
	src := &scriptedPuller{results: []pullResult{
		{v: reading.Vector{1, 2}},
		{err: errors.Transport(nil, "GET /api/cpus returned 502")},
		{v: reading.Vector{3, 4, 5}},
	}}
	d := &display{}
	log := logger.NewBufferLogger()

	loop := NewPullLoop(src, d.show, WithClock(fake), WithLogger(log))
	stop := runLoop(t, loop)
	defer stop()

	// First attempt runs immediately, then the loop waits.
	fake.WaitForTimers(1)
	current, renders := d.snapshot()
	assert.Equal(t, reading.Vector{1, 2}, current)
	assert.Equal(t, 1, renders)
	assert.Equal(t, StateWaiting, loop.Session().State())
	assert.Equal(t, epoch.Add(Interval), loop.Session().Stats().NextAttempt)

	// Failed attempt: view untouched, failure logged.
	fake.Advance(Interval)
	fake.WaitForTimers(1)
	current, renders = d.snapshot()
	assert.Equal(t, reading.Vector{1, 2}, current)
	assert.Equal(t, 1, renders)
	require.Equal(t, 1, log.Count("warn"))
	assert.Contains(t, warnings(log)[0], "TRANSPORT")

	// Next success replaces the view.
	fake.Advance(Interval)
	fake.WaitForTimers(1)
	current, renders = d.snapshot()
	assert.Equal(t, reading.Vector{3, 4, 5}, current)
	assert.Equal(t, 2, renders)

	stats := loop.Session().Stats()
	assert.Equal(t, 3, stats.Attempts)
	assert.Equal(t, 2, stats.Successes)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, epoch.Add(2*Interval), stats.LastSuccess)
	assert.True(t, stats.Active)
}

func TestPullLoop_SurvivesConsecutiveFailures(t *testing.T) {
	const failures = 7

	results := make([]pullResult, 0, failures+1)
	for i := 0; i < failures; i++ {
		if i%2 == 0 {
			results = append(results, pullResult{err: errors.Transport(nil, "connection refused")})
		} else {
			results = append(results, pullResult{err: errors.Decode(nil, "bad body")})
		}
	}
	results = append(results, pullResult{v: reading.Vector{42}})

	fake := clock.Fake(epoch)
	src := &scriptedPuller{results: results}
	d := &display{}

	loop := NewPullLoop(src, d.show, WithClock(fake), WithLogger(logger.Noop()))
	stop := runLoop(t, loop)
	defer stop()

	for i := 0; i < failures; i++ {
		fake.WaitForTimers(1)
		current, _ := d.snapshot()
		assert.Nil(t, current, "no render after failure %d", i+1)
		fake.Advance(Interval)
	}

	fake.WaitForTimers(1)
	assert.Equal(t, failures+1, src.Calls())
	current, renders := d.snapshot()
	assert.Equal(t, reading.Vector{42}, current)
	assert.Equal(t, 1, renders)
	assert.Equal(t, failures, loop.Session().Stats().Failures)
}

func TestPullLoop_WaitsFullIntervalBetweenAttempts(t *testing.T) {
	fake := clock.Fake(epoch)
	src := &scriptedPuller{results: []pullResult{{v: reading.Vector{1}}}}
	d := &display{}

	loop := NewPullLoop(src, d.show, WithClock(fake), WithLogger(logger.Noop()))
	stop := runLoop(t, loop)
	defer stop()

	fake.WaitForTimers(1)
	require.Equal(t, 1, src.Calls())

	fake.Advance(Interval - time.Millisecond)
	assert.Equal(t, 1, fake.PendingCount(), "still waiting")
	assert.Equal(t, 1, src.Calls())

	fake.Advance(time.Millisecond)
	fake.WaitForTimers(1)
	assert.Equal(t, 2, src.Calls())
}

func TestPullLoop_RecoversFromPanics(t *testing.T) {
	fake := clock.Fake(epoch)
	src := &scriptedPuller{results: []pullResult{
		{panic: "nil map write"},
		{v: reading.Vector{5}},
	}}
	d := &display{}
	log := logger.NewBufferLogger()

	loop := NewPullLoop(src, d.show, WithClock(fake), WithLogger(log))
	stop := runLoop(t, loop)
	defer stop()

	fake.WaitForTimers(1)
	require.Equal(t, 1, log.Count("warn"))
	assert.Contains(t, warnings(log)[0], "nil map write")

	fake.Advance(Interval)
	fake.WaitForTimers(1)
	current, _ := d.snapshot()
	assert.Equal(t, reading.Vector{5}, current)
}

func TestPullLoop_SinkPanicIsAFailedAttempt(t *testing.T) {
	fake := clock.Fake(epoch)
	src := &scriptedPuller{results: []pullResult{{v: reading.Vector{1}}}}
	log := logger.NewBufferLogger()
	calls := 0

	loop := NewPullLoop(src, func(reading.Vector) {
		calls++
		if calls == 1 {
			panic("mount target vanished")
		}
	}, WithClock(fake), WithLogger(log))
	stop := runLoop(t, loop)
	defer stop()

	fake.WaitForTimers(1)
	require.Equal(t, 1, log.Count("warn"))
	assert.Contains(t, warnings(log)[0], "RENDER")

	fake.Advance(Interval)
	fake.WaitForTimers(1)
	stats := loop.Session().Stats()
	assert.Equal(t, 1, stats.Successes)
	assert.Equal(t, 1, stats.Failures)
}

func TestPullLoop_CancelDuringFetchIsNotLogged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	log := logger.NewBufferLogger()
	started := make(chan struct{})

	src := pullerFunc(func(ctx context.Context) (reading.Vector, error) {
		close(started)
		<-ctx.Done()
		return nil, errors.Transport(ctx.Err(), "request cancelled")
	})

	loop := NewPullLoop(src, func(reading.Vector) { t.Fatal("sink must not be called") },
		WithClock(clock.Fake(epoch)), WithLogger(log))

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	<-started
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not return")
	}

	assert.False(t, log.HasLevel("warn"))
	stats := loop.Session().Stats()
	assert.False(t, stats.Active)
	assert.Equal(t, StateIdle, stats.State)
}

func TestOnce(t *testing.T) {
	d := &display{}

	v, err := Once(context.Background(), &scriptedPuller{results: []pullResult{{v: reading.Vector{9, 8}}}}, d.show)
	require.NoError(t, err)
	assert.Equal(t, reading.Vector{9, 8}, v)
	current, _ := d.snapshot()
	assert.Equal(t, reading.Vector{9, 8}, current)

	_, err = Once(context.Background(), &scriptedPuller{results: []pullResult{{err: errors.Decode(nil, "x")}}}, d.show)
	require.Error(t, err)
	_, renders := d.snapshot()
	assert.Equal(t, 1, renders)
}

type pullerFunc func(ctx context.Context) (reading.Vector, error)

func (f pullerFunc) Pull(ctx context.Context) (reading.Vector, error) { return f(ctx) }

func warnings(log *logger.BufferLogger) []string {
	var out []string
	for _, e := range log.Entries() {
		if e.Level == "warn" {
			out = append(out, e.Message)
		}
	}
	return out
}
