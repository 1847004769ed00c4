package detector

import (
	"testing"
	"time"
)

var frame0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// feed pushes a sequence of EAR values spaced 33ms apart (roughly
// 30fps) and returns how many blinks were counted.
func feed(b *Blink, start time.Time, ears []float64) int {
	blinks := 0
	for i, e := range ears {
		if b.Process(e, start.Add(time.Duration(i)*33*time.Millisecond)) {
			blinks++
		}
	}
	return blinks
}

func TestBlinkScenarioFromBaseline(t *testing.T) {
	// baseline 0.30: close at 0.186, open at 0.246.
	b := NewBlink(0.30)

	seq := []float64{0.30, 0.15, 0.12, 0.28}
	checks := []struct {
		state  EyeState
		frames int
	}{
		{EyeOpen, 0},
		{EyeClosed, 1},
		{EyeClosed, 2},
		{EyeOpen, 0},
	}

	blinks := 0
	for i, e := range seq {
		if b.Process(e, frame0.Add(time.Duration(i)*33*time.Millisecond)) {
			blinks++
		}
		if b.State() != checks[i].state {
			t.Fatalf("frame %d: state = %v, want %v", i, b.State(), checks[i].state)
		}
		if b.ClosedFrames() != checks[i].frames {
			t.Fatalf("frame %d: closedFrames = %d, want %d", i, b.ClosedFrames(), checks[i].frames)
		}
	}
	if blinks != 1 {
		t.Fatalf("blinks = %d, want 1", blinks)
	}
}

func TestBlinkSingleFrameDipRejected(t *testing.T) {
	b := NewBlink(0.30)
	// One closed frame is below the dwell minimum.
	if got := feed(b, frame0, []float64{0.30, 0.12, 0.30}); got != 0 {
		t.Fatalf("blinks = %d, want 0", got)
	}
	// The dip must still have cleared CLOSED state.
	if b.State() != EyeOpen || b.ClosedFrames() != 0 {
		t.Fatalf("state = %v/%d after sub-qualifying dip, want open/0", b.State(), b.ClosedFrames())
	}
}

func TestBlinkRefractoryPeriod(t *testing.T) {
	b := NewBlink(0.30)
	// First blink counts.
	if got := feed(b, frame0, []float64{0.30, 0.12, 0.12, 0.30}); got != 1 {
		t.Fatalf("first blink: got %d, want 1", got)
	}
	// A second flutter right after (well inside 350ms) is rejected...
	if got := feed(b, frame0.Add(150*time.Millisecond), []float64{0.12, 0.12, 0.30}); got != 0 {
		t.Fatal("flutter inside refractory period was counted")
	}
	// ...but still resets state.
	if b.State() != EyeOpen || b.ClosedFrames() != 0 {
		t.Fatalf("state = %v/%d, want open/0", b.State(), b.ClosedFrames())
	}
	// After the gap has passed, blinks count again.
	if got := feed(b, frame0.Add(time.Second), []float64{0.12, 0.12, 0.30}); got != 1 {
		t.Fatalf("post-refractory blink: got %d, want 1", got)
	}
}

func TestBlinkClosedFramesMonotoneWhileClosed(t *testing.T) {
	b := NewBlink(0.30)
	b.Process(0.10, frame0)
	prev := b.ClosedFrames()
	for i := 1; i < 20; i++ {
		b.Process(0.10, frame0.Add(time.Duration(i)*33*time.Millisecond))
		if b.State() != EyeClosed {
			t.Fatalf("frame %d: left CLOSED on sub-threshold EAR", i)
		}
		if b.ClosedFrames() < prev {
			t.Fatalf("frame %d: closedFrames decreased %d -> %d", i, prev, b.ClosedFrames())
		}
		prev = b.ClosedFrames()
	}
}

func TestBlinkClosedFramesZeroWhileOpen(t *testing.T) {
	b := NewBlink(0.30)
	for i, e := range []float64{0.30, 0.28, 0.25, 0.30} {
		b.Process(e, frame0.Add(time.Duration(i)*33*time.Millisecond))
		if b.State() == EyeOpen && b.ClosedFrames() != 0 {
			t.Fatalf("frame %d: closedFrames = %d while OPEN", i, b.ClosedFrames())
		}
	}
}

func TestBlinkHysteresisHoldsBetweenThresholds(t *testing.T) {
	b := NewBlink(0.30)
	b.Process(0.12, frame0) // -> CLOSED
	// 0.20 is above close (0.186) but below open (0.246): no exit,
	// no increment.
	b.Process(0.20, frame0.Add(33*time.Millisecond))
	if b.State() != EyeClosed {
		t.Fatalf("state = %v, want closed in hysteresis band", b.State())
	}
	if b.ClosedFrames() != 1 {
		t.Fatalf("closedFrames = %d, want 1 (held)", b.ClosedFrames())
	}
}

func TestBlinkLastBlinkTimestamp(t *testing.T) {
	b := NewBlink(0.30)
	feed(b, frame0, []float64{0.30, 0.12, 0.12})
	reopenAt := frame0.Add(99 * time.Millisecond)
	if !b.Process(0.30, reopenAt) {
		t.Fatal("expected blink")
	}
	if !b.LastBlink().Equal(reopenAt) {
		t.Fatalf("lastBlink = %v, want %v", b.LastBlink(), reopenAt)
	}
}
