// Package poller runs fixed-interval refresh tasks with an explicit
// start/stop lifecycle instead of fire-and-forget timers.
package poller

import (
	"context"
	"sync"
	"time"
)

// Poller invokes run immediately on Start and then once per interval
// until Stop or until the parent context is cancelled.
type Poller struct {
	interval time.Duration
	run      func(context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(interval time.Duration, run func(context.Context)) *Poller {
	return &Poller{interval: interval, run: run}
}

// Start launches the loop. Starting an already running poller is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		p.run(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.run(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight run to return.
// Stopping a poller that never started is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
