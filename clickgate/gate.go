package clickgate

import (
	"sync"
	"time"
)

// DefaultWindow is the debounce window used if none is given.
const DefaultWindow = 250 * time.Millisecond

// Timer is a scheduled action. *time.Timer implements it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after duration d. It must not call f before returning.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Gate disambiguates single and double clicks.
type Gate struct {
	window time.Duration
	after  Scheduler
	mu     sync.Mutex
	timer  Timer  // pending single-click action, if any
	serial uint64 // identifies the pending action
}

// Option configures a gate.
type Option func(*Gate)

// WithScheduler replaces time.AfterFunc, e.g. by a manual clock in tests.
func WithScheduler(s Scheduler) Option {
	return func(g *Gate) {
		if s != nil {
			g.after = s
		}
	}
}

// New creates a gate with a debounce window. A negative window selects
// DefaultWindow. With a zero window every click is a single click.
func New(window time.Duration, opts ...Option) *Gate {
	if window < 0 {
		window = DefaultWindow
	}
	g := &Gate{window: window, after: afterFunc}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Window returns the debounce window of the gate.
func (g *Gate) Window() time.Duration {
	return g.window
}

// Click registers an activation. If a single-click action is pending, it
// is cancelled and double runs now. Otherwise single is scheduled to run
// when the window expires.
func (g *Gate) Click(single, double func()) {
	g.mu.Lock()
	if g.timer != nil {
		g.stop()
		g.mu.Unlock()
		tracer().Debugf("double click")
		if double != nil {
			double()
		}
		return
	}
	if g.window == 0 {
		g.mu.Unlock()
		if single != nil {
			single()
		}
		return
	}
	g.serial++
	serial := g.serial
	g.timer = g.after(g.window, func() {
		g.mu.Lock()
		if g.timer == nil || g.serial != serial {
			g.mu.Unlock()
			return
		}
		g.timer = nil
		g.mu.Unlock()
		tracer().Debugf("single click")
		if single != nil {
			single()
		}
	})
	g.mu.Unlock()
}

// Pending is true while a single-click action waits for its window.
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// Cancel drops a pending single-click action. It returns false if nothing
// was pending.
func (g *Gate) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer == nil {
		return false
	}
	g.stop()
	tracer().Debugf("click cancelled")
	return true
}

// stop cancels the pending action. g.mu must be held.
func (g *Gate) stop() {
	g.timer.Stop()
	g.timer = nil
	g.serial++
}
