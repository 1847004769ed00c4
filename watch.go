package main

import "time"

const (
	// watchTick decouples alerting from the frame rate: alerts stay
	// timely even when frame delivery stalls.
	watchTick = 100 * time.Millisecond

	// alertRepeatEvery spaces the audible reminder while an alert is
	// sustained.
	alertRepeatEvery = 2 * time.Second

	// notifyCooldown spaces desktop notifications, independent of the
	// beep cadence.
	notifyCooldown = 5 * time.Second
)

// watcher tracks time since the last blink and decides when the
// no-blink alert and its side effects fire. Pure state machine: the
// session owns the ticker and feeds Tick with the current time.
type watcher struct {
	threshold  time.Duration
	lastBlink  time.Time
	lastBeep   time.Time
	lastNotify time.Time
	alerting   bool
}

// watchResult is what one tick decided.
type watchResult struct {
	SinceBlink time.Duration
	Alerting   bool
	Raised     bool // alert flag rose this tick
	Cleared    bool // alert dropped without a blink (threshold change)
	Beep       bool
	Notify     bool
}

// newWatcher starts the no-blink clock at now; the session calls this
// when calibration completes.
func newWatcher(threshold time.Duration, now time.Time) *watcher {
	return &watcher{threshold: threshold, lastBlink: now}
}

// Blink resets the no-blink clock and clears the alert. Safe to call
// repeatedly; a blink while already at zero keeps it at zero.
func (w *watcher) Blink(now time.Time) {
	w.lastBlink = now
	w.alerting = false
}

func (w *watcher) Tick(now time.Time) watchResult {
	since := now.Sub(w.lastBlink)
	if since < 0 {
		since = 0
	}
	res := watchResult{SinceBlink: since}

	if since < w.threshold {
		res.Cleared = w.alerting
		w.alerting = false
		return res
	}

	res.Raised = !w.alerting
	w.alerting = true
	res.Alerting = true

	if w.lastBeep.IsZero() || now.Sub(w.lastBeep) >= alertRepeatEvery {
		w.lastBeep = now
		res.Beep = true
	}
	if w.lastNotify.IsZero() || now.Sub(w.lastNotify) >= notifyCooldown {
		w.lastNotify = now
		res.Notify = true
	}
	return res
}
