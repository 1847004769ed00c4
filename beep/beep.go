package beep

var disabled bool

// Disable silences all tones (tests and headless mode).
func Disable() { disabled = true }

const (
	sampleRate = 44100

	// Alert tone: the repeating no-blink reminder.
	alertFreq   = 880
	alertDur    = 0.18
	alertVolume = 0.6
	alertDecay  = 12

	// Session start cue: high pitch, very short.
	startFreq   = 1200
	startDur    = 0.04
	startVolume = 0.4
	startDecay  = 60

	// Session stop cue: lower pitch.
	endFreq   = 700
	endDur    = 0.06
	endVolume = 0.4
	endDecay  = 40
)
