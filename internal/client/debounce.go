package client

import (
	"sync"
	"time"
)

// Debounce defaults, matching the barcode field behavior: lookups fire only
// after typing pauses, and only for inputs long enough to be a barcode.
const (
	DefaultLookupDelay  = 500 * time.Millisecond
	DefaultMinLookupLen = 8
)

// Gate debounces barcode lookups. Every new input cancels the pending
// lookup, so at most one fires per typing pause, carrying the latest input.
type Gate struct {
	delay  time.Duration
	minLen int
	action func(input string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewGate creates a debounce gate invoking action after the delay. Zero
// delay and minLen select the defaults.
func NewGate(delay time.Duration, minLen int, action func(input string)) *Gate {
	if delay <= 0 {
		delay = DefaultLookupDelay
	}
	if minLen <= 0 {
		minLen = DefaultMinLookupLen
	}
	return &Gate{delay: delay, minLen: minLen, action: action}
}

// Trigger registers a new input. Any pending lookup is cancelled; inputs
// shorter than the minimum length never schedule one.
func (g *Gate) Trigger(input string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}

	if len(input) < g.minLen {
		return
	}

	g.timer = time.AfterFunc(g.delay, func() {
		g.action(input)
	})
}

// Cancel stops the pending lookup, if any.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
