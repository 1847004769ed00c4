package main

import "time"

// EventSink abstracts the display layer: the Bubble Tea TUI, the
// headless test driver, and tests all receive the same session events.
type EventSink interface {
	SessionStarted(source string)
	SessionStopped()
	CalibrationProgress(remaining time.Duration)
	CalibrationDone(baseline float64)
	Blink(count int)
	Rate(bpm float64)
	SinceBlink(seconds float64)
	Alert(active bool)
	FaceLost(lost bool)
	SessionError(msg string)
}

// nopSink discards everything (headless mode without -test).
type nopSink struct{}

func (nopSink) SessionStarted(string)                 {}
func (nopSink) SessionStopped()                       {}
func (nopSink) CalibrationProgress(time.Duration)     {}
func (nopSink) CalibrationDone(float64)               {}
func (nopSink) Blink(int)                             {}
func (nopSink) Rate(float64)                          {}
func (nopSink) SinceBlink(float64)                    {}
func (nopSink) Alert(bool)                            {}
func (nopSink) FaceLost(bool)                         {}
func (nopSink) SessionError(string)                   {}
