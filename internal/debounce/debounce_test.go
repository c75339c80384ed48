package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTrigger_CoalescesBurst(t *testing.T) {
	var calls int32
	d := New(30 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected a single coalesced call, got %d", got)
	}
}

func TestTrigger_ResetsDelay(t *testing.T) {
	var fired atomic.Bool
	d := New(50 * time.Millisecond)

	d.Trigger(func() { fired.Store(true) })
	time.Sleep(30 * time.Millisecond)
	d.Trigger(func() { fired.Store(true) })
	time.Sleep(30 * time.Millisecond)

	// 60ms since the first trigger but only 30ms since the second.
	if fired.Load() {
		t.Error("fired before the reset delay elapsed")
	}

	time.Sleep(50 * time.Millisecond)
	if !fired.Load() {
		t.Error("never fired")
	}
}

func TestCancel_DropsPendingCall(t *testing.T) {
	var fired atomic.Bool
	d := New(20 * time.Millisecond)

	d.Trigger(func() { fired.Store(true) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if fired.Load() {
		t.Error("cancelled call still fired")
	}
}

func TestTrigger_LatestFunctionWins(t *testing.T) {
	var winner atomic.Int32
	d := New(20 * time.Millisecond)

	d.Trigger(func() { winner.Store(1) })
	d.Trigger(func() { winner.Store(2) })

	time.Sleep(60 * time.Millisecond)
	if got := winner.Load(); got != 2 {
		t.Errorf("winner = %d, want 2", got)
	}
}
