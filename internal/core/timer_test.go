package core

import (
	"testing"
	"time"
)

func TestFixedStepWaitSleepsUntilNextTick(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept time.Duration
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }
	fs.sleep = func(d time.Duration) {
		slept += d
		clock = clock.Add(d)
	}

	// The first tick is immediately due.
	fs.Wait()
	if slept != 0 {
		t.Fatalf("expected no sleep for the first tick, slept %s", slept)
	}

	fs.Wait()
	if slept != fs.Interval() {
		t.Fatalf("expected to sleep one interval (%s), slept %s", fs.Interval(), slept)
	}
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("expected default 60 TPS interval, got %s", fs.Interval())
	}
}
