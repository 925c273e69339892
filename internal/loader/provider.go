package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"filings/internal/engine"
	"filings/internal/sheets"
)

// State is what consumers see of a background load.
type State struct {
	Engine  *engine.Engine
	Loading bool
	Err     error
}

// Ready reports whether an engine has been published.
func (s State) Ready() bool { return s.Engine != nil }

// Provider runs one load in the background and publishes its outcome. A
// failed load is final; there is no retry.
type Provider struct {
	state  atomic.Pointer[State]
	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// Start begins loading src. The returned Provider reports Loading until the
// load completes.
func Start(ctx context.Context, src sheets.Source, opts Options) *Provider {
	ctx, cancel := context.WithCancel(ctx)
	p := &Provider{cancel: cancel, done: make(chan struct{})}
	p.state.Store(&State{Loading: true})

	go func() {
		defer close(p.done)
		eng, err := Load(ctx, src, opts)
		if errors.Is(err, ErrDiscarded) {
			return
		}
		p.publish(&State{Engine: eng, Err: err})
	}()
	return p
}

// Ready returns a Provider already holding eng.
func Ready(eng *engine.Engine) *Provider {
	p := &Provider{cancel: func() {}, done: make(chan struct{})}
	p.state.Store(&State{Engine: eng})
	close(p.done)
	return p
}

func (p *Provider) publish(s *State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.state.Store(s)
}

// State returns the current load state.
func (p *Provider) State() State {
	return *p.state.Load()
}

// Done is closed when the background load has finished, whether it was
// published or discarded.
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load finishes or ctx ends, then returns the state.
func (p *Provider) Wait(ctx context.Context) (State, error) {
	select {
	case <-p.done:
		return p.State(), nil
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
}

// Close tears the consumer down. A load still in flight completes but its
// result is dropped.
func (p *Provider) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
}
