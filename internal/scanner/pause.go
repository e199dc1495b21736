package scanner

import (
	"context"
	"sync"
	"time"
)

// Pauser gates workers between probes. A paused scan keeps its in-flight
// requests but dispatches no new ones until resumed.
type Pauser struct {
	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
	since  time.Time
	total  time.Duration
}

// NewPauser returns a Pauser in the running state.
func NewPauser() *Pauser {
	p := &Pauser{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Wait blocks while the scan is paused. It returns false if ctx is done,
// either before or during the pause.
func (p *Pauser) Wait(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused && ctx.Err() == nil {
		stop := context.AfterFunc(ctx, func() {
			p.mu.Lock()
			p.cond.Broadcast()
			p.mu.Unlock()
		})
		defer stop()
		for p.paused && ctx.Err() == nil {
			p.cond.Wait()
		}
	}
	return ctx.Err() == nil
}

// Toggle flips between paused and running and returns true if the scan is
// now paused.
func (p *Pauser) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.total += time.Since(p.since)
		p.paused = false
		p.cond.Broadcast()
		return false
	}
	p.paused = true
	p.since = time.Now()
	return true
}

// IsPaused returns whether the scan is currently paused.
func (p *Pauser) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// PausedDuration returns the time spent paused so far, including a pause
// that is still ongoing. A nil Pauser was never paused.
func (p *Pauser) PausedDuration() time.Duration {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.total
	if p.paused {
		d += time.Since(p.since)
	}
	return d
}
