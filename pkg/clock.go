package pkg

import (
	"fmt"
	"sync"
	"time"
)

// Clock is one side's countdown clock. It loses a second per tick while
// running and gains the increment whenever its side completes a move.
type Clock struct {
	mu        sync.Mutex
	stop      chan struct{}
	stopOnce  sync.Once
	Duration  time.Duration
	Remaining time.Duration
	Increment time.Duration
	Paused    bool
}

func NewClock(duration, increment time.Duration) *Clock {
	cl := &Clock{
		stop:      make(chan struct{}),
		Duration:  duration,
		Remaining: duration,
		Increment: increment,
		Paused:    true,
	}
	go cl.Run()
	return cl
}

func (cl *Clock) String() string {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	r := cl.Remaining
	if r < 0 {
		r = 0
	}
	return fmt.Sprintf("%d:%02d", int(r.Minutes()), int(r.Seconds())%60)
}

func (cl *Clock) Run() {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-cl.stop:
			return
		case <-tick.C:
			cl.mu.Lock()
			if !cl.Paused && cl.Remaining > 0 {
				cl.Remaining -= time.Second
			}
			cl.mu.Unlock()
		}
	}
}

// Stop ends the countdown goroutine. Safe to call more than once.
func (cl *Clock) Stop() {
	cl.stopOnce.Do(func() { close(cl.stop) })
}

// Tick credits the increment and hands the clock back to its side.
func (cl *Clock) Tick() {
	cl.mu.Lock()
	cl.Paused = false
	cl.Remaining += cl.Increment
	cl.mu.Unlock()
}

func (cl *Clock) Pause() {
	cl.mu.Lock()
	cl.Paused = true
	cl.mu.Unlock()
}

func (cl *Clock) Resume() {
	cl.mu.Lock()
	cl.Paused = false
	cl.mu.Unlock()
}

func (cl *Clock) Reset() {
	cl.mu.Lock()
	cl.Remaining = cl.Duration
	cl.Paused = true
	cl.mu.Unlock()
}
