// Package detector scores per-frame eye openness and turns the noisy
// score stream into discrete blink events.
package detector

import (
	"math"

	"wink/landmark"
)

// earEpsilon guards the EAR denominator; collapsed landmarks would
// otherwise push NaN/Inf into the thresholds downstream.
const earEpsilon = 1e-6

// Dist is the Euclidean distance between two landmarks.
func Dist(a, b landmark.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// EAR computes the eye aspect ratio from a six-point contour:
// (|p2-p6| + |p3-p5|) / (2*|p1-p4|). Higher means more open. Returns 0
// for degenerate geometry (zero-width eye).
func EAR(p [6]landmark.Point) float64 {
	h := 2 * Dist(p[0], p[3])
	if h < earEpsilon {
		return 0
	}
	return (Dist(p[1], p[5]) + Dist(p[2], p[4])) / h
}

// FrameEAR averages both eyes into the single per-frame score the rest
// of the pipeline consumes.
func FrameEAR(f landmark.Frame) float64 {
	left := EAR(f.Eye(landmark.LeftEye))
	right := EAR(f.Eye(landmark.RightEye))
	return (left + right) / 2
}
