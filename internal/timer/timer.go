package timer

import (
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is the length of one tick.
const DefaultInterval = 10 * time.Millisecond

// Ticker is the subset of *time.Ticker the Timer depends on.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func newRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

type Option func(*Timer)

func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTicker replaces the ticker factory used by Start.
func WithTicker(f func(time.Duration) Ticker) Option {
	return func(t *Timer) {
		if f != nil {
			t.newTicker = f
		}
	}
}

// run is the handle of a single Running period. Only the timer's current
// run may advance the counter; Pause and Reset drop it under the lock.
type run struct {
	stop chan struct{}
}

// Timer counts ticks of elapsed time while running. The counter is in
// hundredths of a second when the default interval is used.
type Timer struct {
	mu        sync.RWMutex
	elapsed   int64
	running   bool
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	current   *run
}

func New(opts ...Option) *Timer {
	t := &Timer{
		interval:  DefaultInterval,
		newTicker: newRealTicker,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	r := &run{stop: make(chan struct{})}
	t.running = true
	t.current = r

	go t.loop(r, t.newTicker(t.interval))
}

func (t *Timer) loop(r *run, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C():
			if !t.tick(r) {
				return
			}
		}
	}
}

// tick advances the counter on behalf of r. It reports false once r has
// been cancelled, in which case nothing is counted.
func (t *Timer) tick(r *run) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != r {
		return false
	}
	t.elapsed++
	return true
}

// Pause stops the timer and returns the count reached. The count is kept.
func (t *Timer) Pause() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancel()
	return t.elapsed
}

func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancel()
	t.elapsed = 0
}

// cancel must be called with mu held.
func (t *Timer) cancel() {
	if t.current != nil {
		close(t.current.stop)
		t.current = nil
	}
	t.running = false
}

func (t *Timer) Elapsed() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.elapsed
}

func (t *Timer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// Format renders a count of hundredths as MM:SS.HH. Minutes are not
// wrapped and simply print wider past 99.
func Format(hundredths int64) string {
	if hundredths < 0 {
		hundredths = 0
	}
	minutes := hundredths / 6000
	seconds := (hundredths % 6000) / 100
	rest := hundredths % 100
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, rest)
}
