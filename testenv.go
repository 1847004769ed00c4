package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wink/beep"
	"wink/hotkey"
	"wink/landmark"
	"wink/log"
	"wink/notify"
)

// runTestMode drives a session from a landmark script and stdin commands
// instead of a live source and real hotkeys.
func runTestMode(scriptPath string, opts SessionOptions) {
	beep.Disable()

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	frames, err := landmark.ReadScript(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	src := landmark.NewFakeSource(frames, 10*time.Millisecond)
	notifier := notify.NewFake(notify.PermissionGranted)
	sess := NewSession(src, stderrSink{}, notifier, opts)

	hk := hotkey.NewFake()

	// Stdin driver in background -- toggles the session, handles WAIT/SLEEP/QUIT
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			cmd := strings.TrimSpace(scanner.Text())
			switch cmd {
			case "START":
				if err := sess.Start(); err != nil {
					fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
				}
			case "STOP":
				sess.Stop()
			case "TOGGLE":
				hk.SimToggle()
			case "WAIT_SCRIPT":
				<-src.ScriptDone()
			case "STATS":
				blinks, bpm := sess.Stats()
				fmt.Printf("STATS blinks=%d bpm=%.2f notified=%d\n", blinks, bpm, len(notifier.Sent()))
			case "QUIT":
				sess.Stop()
				os.Exit(0)
			default:
				if strings.HasPrefix(cmd, "SLEEP ") {
					if ms, err := strconv.Atoi(cmd[6:]); err == nil {
						time.Sleep(time.Duration(ms) * time.Millisecond)
					}
				}
			}
		}
		sess.Stop()
		os.Exit(0)
	}()

	// Event loop -- same pattern as run()
	for range hk.Toggled() {
		if sess.Running() {
			sess.Stop()
		} else if err := sess.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
		}
	}
}

// stderrSink prints session events as plain lines for assertions.
type stderrSink struct{}

func (stderrSink) SessionStarted(source string) { fmt.Printf("SESSION_STARTED %s\n", source) }
func (stderrSink) SessionStopped()              { fmt.Println("SESSION_STOPPED") }
func (stderrSink) CalibrationProgress(remaining time.Duration) {}
func (stderrSink) CalibrationDone(baseline float64) {
	fmt.Printf("CALIBRATED %.4f\n", baseline)
}
func (stderrSink) Blink(count int)            { fmt.Printf("BLINK %d\n", count) }
func (stderrSink) Rate(bpm float64)           {}
func (stderrSink) SinceBlink(seconds float64) {}
func (stderrSink) Alert(active bool) {
	if active {
		fmt.Println("ALERT_ON")
	} else {
		fmt.Println("ALERT_OFF")
	}
}
func (stderrSink) FaceLost(lost bool) {
	if lost {
		fmt.Println("FACE_LOST")
	} else {
		fmt.Println("FACE_FOUND")
	}
}
func (stderrSink) SessionError(msg string) { fmt.Printf("ERROR %s\n", msg) }
