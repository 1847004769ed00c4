package detector

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestRateFirstUpdateIsZero(t *testing.T) {
	var r Rate
	bpm, published := r.Update(0, t0)
	if !published {
		t.Fatal("first update should publish")
	}
	if bpm != 0 {
		t.Fatalf("bpm = %v at zero elapsed, want 0", bpm)
	}
}

func TestRateComputation(t *testing.T) {
	var r Rate
	r.Update(0, t0)
	bpm, published := r.Update(15, t0.Add(time.Minute))
	if !published {
		t.Fatal("update after 1m should publish")
	}
	if math.Abs(bpm-15) > 1e-9 {
		t.Fatalf("bpm = %v, want 15", bpm)
	}
}

func TestRateThrottle(t *testing.T) {
	var r Rate
	r.Update(0, t0)
	r.Update(10, t0.Add(30*time.Second))

	// Inside the 400ms window: no new publication, value unchanged.
	bpm, published := r.Update(11, t0.Add(30*time.Second+100*time.Millisecond))
	if published {
		t.Fatal("published inside throttle window")
	}
	if math.Abs(bpm-20) > 1e-9 {
		t.Fatalf("throttled bpm = %v, want previous value 20", bpm)
	}

	// Past the window: recomputed.
	if _, published := r.Update(11, t0.Add(31*time.Second)); !published {
		t.Fatal("expected publication after throttle window")
	}
}
