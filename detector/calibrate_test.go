package detector

import (
	"math"
	"testing"
	"time"
)

var calStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestCalibratorMeanOfOpenSamples(t *testing.T) {
	c := NewCalibrator(time.Second)
	samples := []float64{0.30, 0.32, 0.28, 0.31}
	for i, s := range samples {
		now := calStart.Add(time.Duration(i) * 100 * time.Millisecond)
		if done := c.Add(s, now); done {
			t.Fatalf("calibration finished early at sample %d", i)
		}
	}
	if !c.Add(0.30, calStart.Add(time.Second)) {
		t.Fatal("expected calibration to complete at window expiry")
	}

	want := (0.30 + 0.32 + 0.28 + 0.31) / 4
	if got := c.Baseline(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("baseline = %v, want %v", got, want)
	}
}

func TestCalibratorAdaptiveFloorFiltersClosedSamples(t *testing.T) {
	c := NewCalibrator(time.Second)
	// Closed-eye dips during calibration must not drag the mean down.
	c.Add(0.30, calStart)
	c.Add(0.10, calStart.Add(100*time.Millisecond)) // below 0.8*0.30
	c.Add(0.30, calStart.Add(200*time.Millisecond))
	c.Add(0.0, calStart.Add(300*time.Millisecond))
	c.Add(0.30, calStart.Add(time.Second))

	if got := c.Baseline(); math.Abs(got-0.30) > 1e-9 {
		t.Fatalf("baseline = %v, want 0.30", got)
	}
}

func TestCalibratorFallbackToRunningMax(t *testing.T) {
	// A window that expires on its second sample collects nothing
	// past the first; force the degenerate empty-set path with a
	// zero-EAR opener.
	c := NewCalibrator(50 * time.Millisecond)
	c.Add(0, calStart)
	if !c.Add(0.25, calStart.Add(60*time.Millisecond)) {
		t.Fatal("expected completion")
	}
	// Only the 0-sample was inside the window, and 0 > 0.8*0 is
	// false, so nothing qualified: baseline falls back to the max.
	if got := c.Baseline(); got != 0 {
		t.Fatalf("baseline = %v, want running max 0", got)
	}
}

func TestCalibratorOneShot(t *testing.T) {
	c := NewCalibrator(100 * time.Millisecond)
	c.Add(0.30, calStart)
	if !c.Add(0.30, calStart.Add(200*time.Millisecond)) {
		t.Fatal("expected completion")
	}
	base := c.Baseline()

	// Further samples are no-ops and never re-signal completion.
	for i := 0; i < 10; i++ {
		if c.Add(0.9, calStart.Add(time.Duration(i)*time.Second)) {
			t.Fatal("calibration completed twice")
		}
	}
	if c.Baseline() != base {
		t.Fatalf("baseline changed after completion: %v -> %v", base, c.Baseline())
	}
}

func TestCalibratorRemaining(t *testing.T) {
	c := NewCalibrator(time.Second)
	if c.Remaining(calStart) != 0 {
		t.Fatal("expected zero remaining before first sample")
	}
	c.Add(0.3, calStart)
	if got := c.Remaining(calStart.Add(400 * time.Millisecond)); got != 600*time.Millisecond {
		t.Fatalf("remaining = %v, want 600ms", got)
	}
	c.Add(0.3, calStart.Add(time.Second))
	if c.Remaining(calStart.Add(2*time.Second)) != 0 {
		t.Fatal("expected zero remaining after completion")
	}
}
