package pkg

import (
	"testing"
	"time"
)

func TestClockFormatAndIncrement(t *testing.T) {
	cl := NewClock(10*time.Minute, 5*time.Second)
	defer cl.Stop()

	if got := cl.String(); got != "10:00" {
		t.Fatalf("fresh clock reads %q", got)
	}

	cl.Tick()
	if got := cl.String(); got != "10:05" {
		t.Fatalf("clock after increment reads %q", got)
	}
	cl.mu.Lock()
	paused := cl.Paused
	cl.mu.Unlock()
	if paused {
		t.Fatal("Tick left the clock paused")
	}

	cl.Reset()
	if got := cl.String(); got != "10:00" {
		t.Fatalf("reset clock reads %q", got)
	}
}

func TestClockNeverShowsNegative(t *testing.T) {
	cl := NewClock(time.Minute, 0)
	defer cl.Stop()
	cl.mu.Lock()
	cl.Remaining = -3 * time.Second
	cl.mu.Unlock()
	if got := cl.String(); got != "0:00" {
		t.Fatalf("flagged clock reads %q", got)
	}
}

func TestClockStopIsIdempotent(t *testing.T) {
	cl := NewClock(time.Minute, 0)
	cl.Stop()
	cl.Stop()
}
