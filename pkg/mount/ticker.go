package mount

import (
	"sync"
	"time"
)

// DefaultFrameInterval targets 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// Ticker drives a step function at a fixed interval until cancelled. The
// step runs on a single goroutine; a step that returns an error stops the
// loop.
type Ticker struct {
	interval time.Duration
	step     func(dt time.Duration) error

	mu      sync.Mutex
	cancel  chan struct{}
	done    chan struct{}
	started bool
	err     error
}

// NewTicker builds a ticker; interval <= 0 uses DefaultFrameInterval.
func NewTicker(interval time.Duration, step func(dt time.Duration) error) *Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Ticker{
		interval: interval,
		step:     step,
		cancel:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the frame loop. Starting twice is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	go t.run()
}

func (t *Ticker) run() {
	defer close(t.done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-t.cancel:
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := t.step(dt); err != nil {
				t.mu.Lock()
				t.err = err
				t.mu.Unlock()
				return
			}
		}
	}
}

// Cancel stops the loop and waits for the in-flight step to finish.
// Idempotent; cancelling an unstarted ticker just marks it stopped.
func (t *Ticker) Cancel() {
	t.mu.Lock()
	select {
	case <-t.cancel:
	default:
		close(t.cancel)
	}
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}

// Err returns the error that stopped the loop, if any.
func (t *Ticker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
