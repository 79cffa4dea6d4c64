package core

import (
	"context"
	"sync"
	"time"

	"profiledeck/modules/platform/logger"
)

// PollKind names one of the recurring background fetch loops
type PollKind string

const (
	PollLogs    PollKind = "logs"
	PollSummary PollKind = "summary"
)

// TickFunc performs one background fetch. The context is cancelled when the
// loop stops; implementations must not apply results after cancellation.
type TickFunc func(ctx context.Context) error

// Poller owns the recurring fetch loops bound to an authenticated session.
// At most one loop runs per kind. Tick errors are absorbed and counted:
// a transient network hiccup must not break the loop or reach the user.
type Poller struct {
	mu       sync.Mutex
	loops    map[PollKind]*pollLoop
	failures map[PollKind]int
}

type pollLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates an idle poller
func NewPoller() *Poller {
	return &Poller{
		loops:    make(map[PollKind]*pollLoop),
		failures: make(map[PollKind]int),
	}
}

// Start launches the loop for kind with the given period. If the loop is
// already running it is replaced, so two Start calls never leave two tickers
// behind. The swap of the map entry and the cancel of the old loop happen
// under one critical section; a concurrent Start always sees and replaces
// the current loop, never a gap it can race into.
func (p *Poller) Start(kind PollKind, interval time.Duration, tick TickFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := &pollLoop{cancel: cancel, done: make(chan struct{})}

	p.mu.Lock()
	old := p.loops[kind]
	p.loops[kind] = loop
	if old != nil {
		old.cancel()
	}
	p.mu.Unlock()

	// Drain the replaced loop before ticking so two fetches for the same
	// kind never run at once. If this loop was itself replaced or stopped
	// in the meantime, its context is already cancelled and the goroutine
	// exits on its first select.
	if old != nil {
		<-old.done
	}

	go p.run(ctx, kind, interval, tick, loop.done)
}

// Stop cancels the loop for kind. Stopping a loop that is not running is a
// no-op.
func (p *Poller) Stop(kind PollKind) {
	p.mu.Lock()
	loop, ok := p.loops[kind]
	if ok {
		delete(p.loops, kind)
	}
	p.mu.Unlock()

	if ok {
		loop.cancel()
		<-loop.done
	}
}

// StopAll cancels every running loop. Safe to call when nothing runs, so
// session teardown can invoke it unconditionally.
func (p *Poller) StopAll() {
	p.Stop(PollLogs)
	p.Stop(PollSummary)
}

// Running reports whether a loop is active for kind
func (p *Poller) Running(kind PollKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loops[kind]
	return ok
}

// Failures returns how many ticks have been absorbed for kind since the
// poller was created
func (p *Poller) Failures(kind PollKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures[kind]
}

func (p *Poller) run(ctx context.Context, kind PollKind, interval time.Duration, tick TickFunc, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tick(ctx); err != nil && ctx.Err() == nil {
				p.mu.Lock()
				p.failures[kind]++
				count := p.failures[kind]
				p.mu.Unlock()
				logger.Debug("poll %s tick failed (%d absorbed): %v", kind, count, err)
			}
		}
	}
}
