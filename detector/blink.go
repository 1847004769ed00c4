package detector

import "time"

// Hysteresis thresholds are derived from the calibrated baseline. The
// gap between the two ratios keeps jitter near a single cutoff from
// flapping the state.
const (
	CloseRatio = 0.62
	OpenRatio  = 0.82

	// MinClosedFrames is the minimum closed dwell; single-frame dips
	// are noise, not blinks.
	MinClosedFrames = 2

	// MinBlinkGap is the refractory period after a counted blink.
	MinBlinkGap = 350 * time.Millisecond
)

// EyeState is the hysteresis state of the blink detector.
type EyeState int

const (
	EyeOpen EyeState = iota
	EyeClosed
)

func (s EyeState) String() string {
	if s == EyeClosed {
		return "closed"
	}
	return "open"
}

// Blink detects open→closed→open transitions in the EAR stream. One
// instance per session, created once the baseline is known.
type Blink struct {
	closeThreshold float64
	openThreshold  float64

	state        EyeState
	closedFrames int
	lastBlink    time.Time
}

func NewBlink(baseline float64) *Blink {
	return &Blink{
		closeThreshold: baseline * CloseRatio,
		openThreshold:  baseline * OpenRatio,
	}
}

// Process consumes one EAR sample and reports whether it completed a
// qualifying blink. A reopen that fails qualification (too short a
// dwell, or inside the refractory period) is absorbed silently but
// still clears the CLOSED state.
func (b *Blink) Process(ear float64, now time.Time) bool {
	switch b.state {
	case EyeOpen:
		if ear < b.closeThreshold {
			b.state = EyeClosed
			b.closedFrames = 1
		}
	case EyeClosed:
		if ear < b.closeThreshold {
			b.closedFrames++
			return false
		}
		if ear > b.openThreshold {
			qualifies := b.closedFrames >= MinClosedFrames &&
				(b.lastBlink.IsZero() || now.Sub(b.lastBlink) >= MinBlinkGap)
			b.state = EyeOpen
			b.closedFrames = 0
			if qualifies {
				b.lastBlink = now
				return true
			}
		}
		// Between the thresholds: hold state, hold count.
	}
	return false
}

func (b *Blink) State() EyeState { return b.state }

func (b *Blink) ClosedFrames() int { return b.closedFrames }

func (b *Blink) LastBlink() time.Time { return b.lastBlink }
