package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog   zerolog.Logger
	diagFile  *os.File
	blinkFile *os.File
	logMu     sync.Mutex
	logReady  bool
	pid       int
	dir       string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		if !filepath.IsAbs(flagPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, flagPath), nil
		}
		return flagPath, nil
	}

	// Priority 2: WINK_LOG_PATH environment variable
	envPath := os.Getenv("WINK_LOG_PATH")
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, envPath), nil
		}
		return envPath, nil
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	blinkPath := filepath.Join(dir, "blink_log.txt")
	blinkFile, err = os.OpenFile(blinkPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if blinkFile != nil {
		blinkFile.Close()
		blinkFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SessionStart(source string, thresholdSeconds int, notifications bool) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("source", source).
		Int("threshold_s", thresholdSeconds).
		Bool("notifications", notifications).
		Msg("session_start")
}

func SessionEnd(blinks int, bpm float64, duration time.Duration) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("blinks", blinks).
		Float64("bpm", bpm).
		Float64("duration_s", duration.Seconds()).
		Msg("session_end")
}

func Calibrated(baseline float64) {
	if !logReady {
		return
	}
	diagLog.Info().Float64("baseline", baseline).Msg("calibrated")
}

func AlertRaised(sinceBlink float64) {
	if !logReady {
		return
	}
	diagLog.Warn().Float64("since_blink_s", sinceBlink).Msg("alert_raised")
}

func AlertCleared() {
	if !logReady {
		return
	}
	diagLog.Info().Msg("alert_cleared")
}

// SessionSummary appends a human-readable line to the blink log, one
// per session.
func SessionSummary(blinks int, bpm float64, alerts int, duration time.Duration) {
	if !logReady {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	line := fmt.Sprintf("%s\t[%d]\tblinks=%d bpm=%.1f alerts=%d duration=%s\n",
		time.Now().Format("2006-01-02 15:04:05"), pid, blinks, bpm, alerts, duration.Round(time.Second))
	blinkFile.WriteString(line)
}
