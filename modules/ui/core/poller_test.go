package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPollerRunsTicks(t *testing.T) {
	p := NewPoller()
	var ticks atomic.Int64

	p.Start(PollLogs, 10*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})
	defer p.StopAll()

	if !p.Running(PollLogs) {
		t.Fatal("loop should be running after Start")
	}

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 3 })
}

func TestPollerStop(t *testing.T) {
	p := NewPoller()
	var ticks atomic.Int64

	p.Start(PollSummary, 10*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 1 })

	p.Stop(PollSummary)
	if p.Running(PollSummary) {
		t.Fatal("loop still reported running after Stop")
	}

	// No further ticks after stop
	settled := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Errorf("ticks advanced after Stop: %d -> %d", settled, got)
	}
}

func TestPollerStopWithoutStart(t *testing.T) {
	p := NewPoller()
	p.Stop(PollLogs)
	p.StopAll()
	// No panic, no deadlock
}

func TestPollerRestartReplacesLoop(t *testing.T) {
	p := NewPoller()
	var first, second atomic.Int64

	p.Start(PollLogs, 10*time.Millisecond, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	waitFor(t, time.Second, func() bool { return first.Load() >= 1 })

	// Second Start must cancel the first loop, not stack a second ticker
	p.Start(PollLogs, 10*time.Millisecond, func(ctx context.Context) error {
		second.Add(1)
		return nil
	})
	defer p.StopAll()

	settled := first.Load()
	waitFor(t, time.Second, func() bool { return second.Load() >= 2 })
	if got := first.Load(); got != settled {
		t.Errorf("old loop kept ticking after restart: %d -> %d", settled, got)
	}
}

func TestPollerConcurrentRestartLeavesOneLoop(t *testing.T) {
	p := NewPoller()
	var ticks atomic.Int64
	release := make(chan struct{})

	// Park the first loop inside a tick so restarts overlap with it
	p.Start(PollLogs, 5*time.Millisecond, func(ctx context.Context) error {
		<-release
		return nil
	})
	time.Sleep(30 * time.Millisecond)

	// Two concurrent restarts while the old loop is still draining. Exactly
	// one replacement may survive; the other must shut down on its own.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Start(PollLogs, 5*time.Millisecond, func(ctx context.Context) error {
				ticks.Add(1)
				return nil
			})
		}()
	}
	close(release)
	wg.Wait()

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 1 })

	p.StopAll()
	if p.Running(PollLogs) {
		t.Fatal("loop reported running after StopAll")
	}

	settled := ticks.Load()
	time.Sleep(60 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Errorf("ticks advanced after StopAll: %d -> %d", settled, got)
	}
}

func TestPollerAbsorbsFailures(t *testing.T) {
	p := NewPoller()
	var ticks atomic.Int64

	p.Start(PollLogs, 10*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return errors.New("backend unavailable")
	})
	defer p.StopAll()

	// The loop must survive consecutive failures and keep counting them
	waitFor(t, time.Second, func() bool { return ticks.Load() >= 3 })
	waitFor(t, time.Second, func() bool { return p.Failures(PollLogs) >= 3 })

	if !p.Running(PollLogs) {
		t.Error("loop died on tick errors")
	}
}

func TestPollerIndependentKinds(t *testing.T) {
	p := NewPoller()
	var logTicks atomic.Int64

	p.Start(PollLogs, 10*time.Millisecond, func(ctx context.Context) error {
		logTicks.Add(1)
		return nil
	})
	p.Start(PollSummary, 10*time.Millisecond, func(ctx context.Context) error {
		return nil
	})
	defer p.StopAll()

	p.Stop(PollSummary)

	if p.Running(PollSummary) {
		t.Error("summary loop should be stopped")
	}
	if !p.Running(PollLogs) {
		t.Error("log loop should survive stopping the other kind")
	}

	waitFor(t, time.Second, func() bool { return logTicks.Load() >= 2 })
}

func TestPollerStopAllIdempotent(t *testing.T) {
	p := NewPoller()

	p.Start(PollLogs, 10*time.Millisecond, func(ctx context.Context) error { return nil })
	p.Start(PollSummary, 10*time.Millisecond, func(ctx context.Context) error { return nil })

	p.StopAll()
	p.StopAll()

	if p.Running(PollLogs) || p.Running(PollSummary) {
		t.Error("loops survived StopAll")
	}
}
