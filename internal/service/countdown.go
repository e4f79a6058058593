package service

import (
	"sync"
	"time"
)

// Countdown is a cancellable one-shot question timer. Start arms the
// countdown; Cancel is unconditional and synchronous: once it returns,
// the pending expiry can never fire, even if the underlying timer has
// already gone off. This closes the race between a user's answer and a
// timeout auto-submit.
type Countdown struct {
	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64 // incremented on every Start and Cancel; stale expiries see an old value and drop
	deadline time.Time
	active   bool
}

// NewCountdown creates an unarmed countdown.
func NewCountdown() *Countdown {
	return &Countdown{}
}

// Start arms the countdown, cancelling any previous one. fire runs on
// the timer goroutine when the countdown reaches zero without being
// cancelled.
func (c *Countdown) Start(d time.Duration, fire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.gen++
	gen := c.gen
	c.deadline = time.Now().Add(d)
	c.active = true

	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		c.active = false
		c.mu.Unlock()

		fire()
	})
}

// Cancel disarms the countdown.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.stopLocked()
}

// Remaining returns the whole seconds left before expiry, or 0 when the
// countdown is not armed.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return 0
	}
	left := time.Until(c.deadline)
	if left < 0 {
		return 0
	}
	return int(left / time.Second)
}

func (c *Countdown) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.active = false
}
