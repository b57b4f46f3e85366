package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/cpubars/internal/reading"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type pullResult struct {
	v     reading.Vector
	err   error
	panic string
}

// scriptedPuller returns results in order, repeating the last one.
type scriptedPuller struct {
	mu      sync.Mutex
	results []pullResult
	calls   int
}

func (p *scriptedPuller) Pull(ctx context.Context) (reading.Vector, error) {
	p.mu.Lock()
	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	r := p.results[i]
	p.mu.Unlock()

	if r.panic != "" {
		panic(r.panic)
	}
	return r.v, r.err
}

func (p *scriptedPuller) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// display stands in for the rendered page: it only changes on Sink calls.
type display struct {
	mu      sync.Mutex
	current reading.Vector
	renders int
}

func (d *display) show(v reading.Vector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = v
	d.renders++
}

func (d *display) snapshot() (reading.Vector, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.renders
}

type frame struct {
	payload reading.Vector
	decode  error
}

// scriptedSubscriber replays frames then ends with err.
type scriptedSubscriber struct {
	frames []frame
	err    error
	block  bool
}

func (s *scriptedSubscriber) Listen(ctx context.Context, onVector func(reading.Vector), onDecodeErr func(error)) error {
	for _, f := range s.frames {
		if f.decode != nil {
			onDecodeErr(f.decode)
			continue
		}
		onVector(f.payload)
	}
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}
