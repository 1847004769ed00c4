package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"wink/beep"
	"wink/detector"
	"wink/landmark"
	"wink/log"
	"wink/notify"
)

// ErrNoConsent is returned by Start before the user has agreed to
// camera-based monitoring.
var ErrNoConsent = errors.New("monitoring requires user consent (-consent)")

// faceLostFrames is how many consecutive degenerate (zero-EAR) frames
// we tolerate before flagging that the face has been lost (~1s at
// 30fps).
const faceLostFrames = 30

// SessionOptions are fixed for the lifetime of one Start/Stop cycle.
// The threshold may only be changed while stopped.
type SessionOptions struct {
	Threshold         time.Duration
	CalibrationWindow time.Duration
	Notifications     bool
	Consent           bool
}

// Session owns the monitoring lifecycle: it subscribes to the landmark
// source, fans frames into calibration and blink detection, and runs
// the alert watcher on its own ticker. The frame callback and the
// ticker run on different goroutines; one mutex serializes them.
type Session struct {
	src      landmark.Source
	sink     EventSink
	notifier notify.Notifier

	// now is swapped for a fake clock in tests.
	now func() time.Time

	mu      sync.Mutex
	opts    SessionOptions
	running bool
	lastErr string
	started time.Time

	cal        *detector.Calibrator
	blink      *detector.Blink
	rate       *detector.Rate
	blinkCount int
	alertCount int
	watch      *watcher
	zeroRun    int
	faceLost   bool

	stopCh   chan struct{}
	tickDone chan struct{}
}

func NewSession(src landmark.Source, sink EventSink, notifier notify.Notifier, opts SessionOptions) *Session {
	if sink == nil {
		sink = nopSink{}
	}
	return &Session{
		src:      src,
		sink:     sink,
		notifier: notifier,
		now:      time.Now,
		opts:     opts,
	}
}

func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Stats reports the blink count and rate of the current (or most
// recent) session.
func (s *Session) Stats() (blinks int, bpm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rate == nil {
		return s.blinkCount, 0
	}
	return s.blinkCount, s.rate.BPM()
}

// SetConsent records the user's decision. Takes effect on the next
// Start.
func (s *Session) SetConsent(granted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Consent = granted
}

// SetThreshold changes the no-blink alert threshold. Refused while a
// session is running.
func (s *Session) SetThreshold(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("cannot change threshold while running")
	}
	s.opts.Threshold = d
	return nil
}

// Start resets all per-session state and begins acquiring frames.
// Without consent it mutates nothing. A failure to open the landmark
// source tears the partial setup down and leaves running=false.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if !s.opts.Consent {
		return ErrNoConsent
	}

	s.lastErr = ""
	s.cal = detector.NewCalibrator(s.opts.CalibrationWindow)
	s.blink = nil
	s.rate = &detector.Rate{}
	s.blinkCount = 0
	s.alertCount = 0
	s.watch = nil
	s.zeroRun = 0
	s.faceLost = false
	s.started = s.now()

	s.src.SetCallback(s.onFrame)
	if err := s.src.Start(); err != nil {
		s.src.ClearCallback()
		s.lastErr = err.Error()
		s.sink.SessionError(s.lastErr)
		log.Errorf("session start: %v", err)
		return fmt.Errorf("starting landmark source: %w", err)
	}

	s.stopCh = make(chan struct{})
	s.tickDone = make(chan struct{})
	go s.watchLoop(s.stopCh, s.tickDone)

	s.running = true
	log.SessionStart(s.src.Name(), int(s.opts.Threshold/time.Second), s.opts.Notifications)
	s.sink.SessionStarted(s.src.Name())
	beep.PlayStart()
	return nil
}

// Stop tears down frame acquisition and the watcher ticker and
// silences any active alert. Idempotent; safe before the first Start.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	tickDone := s.tickDone
	blinks := s.blinkCount
	alerts := s.alertCount
	bpm := s.rate.BPM()
	duration := s.now().Sub(s.started)
	s.mu.Unlock()

	s.src.Stop()
	s.src.ClearCallback()
	<-tickDone

	s.sink.Alert(false)
	s.sink.SessionStopped()
	beep.PlayEnd()
	log.SessionEnd(blinks, bpm, duration)
	log.SessionSummary(blinks, bpm, alerts, duration)
}

// onFrame is the push callback from the landmark source. Frames with
// no face carry no landmarks and are ignored outright.
func (s *Session) onFrame(f landmark.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	if !f.HasEyes() {
		return
	}

	now := s.now()
	ear := detector.FrameEAR(f)
	s.trackFaceLost(ear)

	if !s.cal.Done() {
		if s.cal.Add(ear, now) {
			baseline := s.cal.Baseline()
			s.blink = detector.NewBlink(baseline)
			// Calibration completing resets the no-blink clock and
			// clears any alert.
			s.watch = newWatcher(s.opts.Threshold, now)
			log.Calibrated(baseline)
			s.sink.CalibrationDone(baseline)
		} else {
			s.sink.CalibrationProgress(s.cal.Remaining(now))
		}
		return
	}

	if s.blink.Process(ear, now) {
		s.blinkCount++
		wasAlerting := s.watch.alerting
		s.watch.Blink(now)
		s.sink.Blink(s.blinkCount)
		s.sink.SinceBlink(0)
		s.sink.Alert(false)
		if wasAlerting {
			log.AlertCleared()
		}
	}

	if bpm, published := s.rate.Update(s.blinkCount, now); published {
		s.sink.Rate(bpm)
	}
}

func (s *Session) trackFaceLost(ear float64) {
	if ear == 0 {
		s.zeroRun++
		if !s.faceLost && s.zeroRun >= faceLostFrames {
			s.faceLost = true
			s.sink.FaceLost(true)
			log.Warn("face lost: sustained zero EAR")
		}
		return
	}
	s.zeroRun = 0
	if s.faceLost {
		s.faceLost = false
		s.sink.FaceLost(false)
	}
}

func (s *Session) watchLoop(stop <-chan struct{}, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		s.tick()
	}
}

// tick runs one watcher step. Holding the lock through the sink calls
// guarantees nothing is published after Stop has flipped running.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.watch == nil {
		return
	}

	res := s.watch.Tick(s.now())
	s.sink.SinceBlink(res.SinceBlink.Seconds())

	if res.Raised {
		s.alertCount++
		s.sink.Alert(true)
		log.AlertRaised(res.SinceBlink.Seconds())
	}
	if res.Cleared {
		s.sink.Alert(false)
	}
	if res.Beep {
		beep.PlayAlert()
	}
	if res.Notify && s.opts.Notifications &&
		s.notifier != nil && s.notifier.Permission() == notify.PermissionGranted {
		body := fmt.Sprintf("No blink for %.0f seconds. Rest your eyes.", res.SinceBlink.Seconds())
		go s.notifier.Notify("wink", body)
	}
}
