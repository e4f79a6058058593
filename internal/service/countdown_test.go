package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownFiresOnExpiry(t *testing.T) {
	cd := NewCountdown()
	fired := make(chan struct{})

	cd.Start(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("countdown never fired")
	}
}

func TestCancelPreventsFire(t *testing.T) {
	cd := NewCountdown()
	var fired atomic.Bool

	cd.Start(20*time.Millisecond, func() { fired.Store(true) })
	cd.Cancel()

	time.Sleep(80 * time.Millisecond)
	if fired.Load() {
		t.Error("countdown fired after Cancel")
	}
}

func TestCancelIsIdempotentAndSafeWhenUnarmed(t *testing.T) {
	cd := NewCountdown()
	cd.Cancel()
	cd.Cancel()

	cd.Start(10*time.Millisecond, func() {})
	cd.Cancel()
	cd.Cancel()
}

func TestRestartSupersedesPreviousCountdown(t *testing.T) {
	cd := NewCountdown()
	var first, second atomic.Bool

	cd.Start(15*time.Millisecond, func() { first.Store(true) })
	cd.Start(30*time.Millisecond, func() { second.Store(true) })

	time.Sleep(100 * time.Millisecond)
	if first.Load() {
		t.Error("superseded countdown fired")
	}
	if !second.Load() {
		t.Error("replacement countdown never fired")
	}
}

func TestRemaining(t *testing.T) {
	cd := NewCountdown()

	if got := cd.Remaining(); got != 0 {
		t.Errorf("unarmed Remaining = %d, want 0", got)
	}

	cd.Start(5*time.Second, func() {})
	if got := cd.Remaining(); got < 3 || got > 5 {
		t.Errorf("Remaining = %d, want close to 5", got)
	}

	cd.Cancel()
	if got := cd.Remaining(); got != 0 {
		t.Errorf("Remaining after Cancel = %d, want 0", got)
	}
}
