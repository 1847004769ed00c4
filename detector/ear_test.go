package detector

import (
	"math"
	"testing"

	"wink/landmark"
)

// openEye is a plausible open-eye contour: horizontal span 0.1,
// vertical openings 0.03 each -> EAR = 0.3.
func openEye() [6]landmark.Point {
	return [6]landmark.Point{
		{X: 0.0, Y: 0.5},
		{X: 0.03, Y: 0.485},
		{X: 0.07, Y: 0.485},
		{X: 0.1, Y: 0.5},
		{X: 0.07, Y: 0.515},
		{X: 0.03, Y: 0.515},
	}
}

func TestEAROpenEye(t *testing.T) {
	got := EAR(openEye())
	if math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("EAR = %v, want 0.3", got)
	}
}

func TestEARClosedEye(t *testing.T) {
	eye := openEye()
	// Lids together: vertical distances zero.
	for _, i := range []int{1, 2} {
		eye[i].Y = 0.5
	}
	for _, i := range []int{4, 5} {
		eye[i].Y = 0.5
	}
	if got := EAR(eye); got != 0 {
		t.Fatalf("EAR of closed eye = %v, want 0", got)
	}
}

func TestEARDegenerateGeometry(t *testing.T) {
	eye := openEye()
	// Corners coincide: denominator collapses. Must be 0, not NaN/Inf.
	eye[3] = eye[0]
	got := EAR(eye)
	if got != 0 {
		t.Fatalf("EAR of collapsed eye = %v, want 0", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("EAR produced non-finite value: %v", got)
	}
}

func TestEARNonNegative(t *testing.T) {
	eye := openEye()
	// Mirror the contour; distances stay distances.
	for i := range eye {
		eye[i].Y = -eye[i].Y
	}
	if got := EAR(eye); got < 0 {
		t.Fatalf("EAR = %v, want >= 0", got)
	}
}

func TestFrameEARAveragesBothEyes(t *testing.T) {
	pts := make([]landmark.Point, 400)
	left := openEye()
	for i, j := range landmark.LeftEye {
		pts[j] = left[i]
	}
	// Right eye half as open: vertical openings 0.015 -> EAR = 0.15.
	right := openEye()
	for _, i := range []int{1, 2} {
		right[i].Y = 0.4925
	}
	for _, i := range []int{4, 5} {
		right[i].Y = 0.5075
	}
	for i, j := range landmark.RightEye {
		pts[j] = right[i]
	}

	got := FrameEAR(landmark.Frame{Points: pts})
	want := (0.3 + 0.15) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("FrameEAR = %v, want %v", got, want)
	}
}

func TestDist(t *testing.T) {
	a := landmark.Point{X: 0, Y: 0}
	b := landmark.Point{X: 3, Y: 4}
	if got := Dist(a, b); got != 5 {
		t.Fatalf("Dist = %v, want 5", got)
	}
}
