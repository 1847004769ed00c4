package detector

import "time"

const (
	// DefaultCalibrationWindow is how long we sample the user's open
	// eyes before fixing the baseline.
	DefaultCalibrationWindow = 3 * time.Second

	// openFloorRatio filters "open" samples adaptively: the true open
	// EAR is unknown at first, so anything above 80% of the running
	// max counts.
	openFloorRatio = 0.8
)

// Calibrator establishes the personal open-eye EAR baseline for a
// session. It runs exactly once; after the window expires every Add is
// a no-op.
type Calibrator struct {
	window   time.Duration
	start    time.Time
	maxEAR   float64
	samples  []float64
	baseline float64
	done     bool
}

func NewCalibrator(window time.Duration) *Calibrator {
	if window <= 0 {
		window = DefaultCalibrationWindow
	}
	return &Calibrator{window: window}
}

// Add feeds one EAR sample. It returns true exactly once, on the call
// that completes calibration.
func (c *Calibrator) Add(ear float64, now time.Time) bool {
	if c.done {
		return false
	}
	if c.start.IsZero() {
		c.start = now
	}
	if now.Sub(c.start) >= c.window {
		c.finalize()
		return true
	}
	if ear > c.maxEAR {
		c.maxEAR = ear
	}
	if ear > openFloorRatio*c.maxEAR {
		c.samples = append(c.samples, ear)
	}
	return false
}

func (c *Calibrator) finalize() {
	if len(c.samples) == 0 {
		// Nothing qualified (very short window or noisy input):
		// fall back to the best we saw.
		c.baseline = c.maxEAR
	} else {
		var sum float64
		for _, s := range c.samples {
			sum += s
		}
		c.baseline = sum / float64(len(c.samples))
	}
	c.samples = nil
	c.done = true
}

func (c *Calibrator) Done() bool { return c.done }

// Baseline is the established open-eye EAR. Valid only after Done.
func (c *Calibrator) Baseline() float64 { return c.baseline }

// Remaining reports how much of the window is left, for progress
// display. Zero once done or before the first sample.
func (c *Calibrator) Remaining(now time.Time) time.Duration {
	if c.done || c.start.IsZero() {
		return 0
	}
	left := c.window - now.Sub(c.start)
	if left < 0 {
		return 0
	}
	return left
}
