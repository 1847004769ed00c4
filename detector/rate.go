package detector

import "time"

// bpmUpdateEvery throttles how often the published blinks-per-minute
// figure may change. Counting is unaffected; only reporting cadence.
const bpmUpdateEvery = 400 * time.Millisecond

// Rate converts the cumulative blink count and elapsed session time
// into a blinks-per-minute figure.
type Rate struct {
	start      time.Time
	lastUpdate time.Time
	bpm        float64
}

// Update recomputes the rate if the throttle window has elapsed. The
// second return is true when a fresh value was published.
func (r *Rate) Update(blinkCount int, now time.Time) (float64, bool) {
	if r.start.IsZero() {
		r.start = now
	}
	if !r.lastUpdate.IsZero() && now.Sub(r.lastUpdate) < bpmUpdateEvery {
		return r.bpm, false
	}
	r.lastUpdate = now

	minutes := now.Sub(r.start).Minutes()
	if minutes <= 0 {
		r.bpm = 0
	} else {
		r.bpm = float64(blinkCount) / minutes
	}
	return r.bpm, true
}

func (r *Rate) BPM() float64 { return r.bpm }
