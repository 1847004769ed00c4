package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type SessionStartedMsg struct{ Source string }
type SessionStoppedMsg struct{}
type CalibratingMsg struct{ Remaining float64 }
type CalibratedMsg struct{ Baseline float64 }
type BlinkCountMsg struct{ Count int }
type RateMsg struct{ BPM float64 }
type SinceBlinkMsg struct{ Seconds float64 }
type AlertMsg struct{ Active bool }
type FaceLostMsg struct{ Lost bool }
type ErrorMsg struct{ Text string }
type LogMsg struct{ Text string }
type tickMsg time.Time

type tuiState int

const (
	tuiStateIdle tuiState = iota
	tuiStateCalibrating
	tuiStateWatching
)

type tuiModel struct {
	state         tuiState
	frame         int
	source        string
	thresholdS    int
	calRemaining  float64
	baseline      float64
	blinkCount    int
	bpm           float64
	sinceBlink    float64
	alert         bool
	faceLost      bool
	lastError     string
	logLine       string
	width, height int

	toggleCh chan struct{}
}

var (
	tuiProgram   *tea.Program
	tuiMu        sync.Mutex
	tuiReady     = make(chan struct{})
	tuiReadyOnce sync.Once
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func NewTUIProgram(thresholdS int, toggleCh chan struct{}) *tea.Program {
	m := tuiModel{thresholdS: thresholdS, toggleCh: toggleCh}
	return tea.NewProgram(m, tea.WithAltScreen())
}

// tuiSend delivers a message if the TUI is active; a no-op otherwise.
func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func logToTUI(format string, args ...any) {
	tuiSend(LogMsg{Text: fmt.Sprintf(format, args...)})
}

func (m tuiModel) Init() tea.Cmd {
	tuiReadyOnce.Do(func() { close(tuiReady) })
	return tuiTick()
}

func tuiTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			select {
			case m.toggleCh <- struct{}{}:
			default:
			}
		case "c":
			clipboard.WriteAll(m.summary())
			m.logLine = "session summary copied"
		}

	case tickMsg:
		m.frame++
		return m, tuiTick()

	case SessionStartedMsg:
		m.state = tuiStateCalibrating
		m.source = msg.Source
		m.blinkCount = 0
		m.bpm = 0
		m.sinceBlink = 0
		m.alert = false
		m.faceLost = false
		m.lastError = ""
	case SessionStoppedMsg:
		m.state = tuiStateIdle
		m.alert = false
	case CalibratingMsg:
		m.calRemaining = msg.Remaining
	case CalibratedMsg:
		m.state = tuiStateWatching
		m.baseline = msg.Baseline
	case BlinkCountMsg:
		m.blinkCount = msg.Count
	case RateMsg:
		m.bpm = msg.BPM
	case SinceBlinkMsg:
		m.sinceBlink = msg.Seconds
	case AlertMsg:
		m.alert = msg.Active
	case FaceLostMsg:
		m.faceLost = msg.Lost
	case ErrorMsg:
		m.lastError = msg.Text
	case LogMsg:
		m.logLine = msg.Text
	}
	return m, nil
}

func (m tuiModel) summary() string {
	return fmt.Sprintf("wink session: %d blinks, %.1f blinks/min", m.blinkCount, m.bpm)
}

func (m tuiModel) statusLine() string {
	switch m.state {
	case tuiStateCalibrating:
		dots := strings.Repeat(".", m.frame%4)
		return warnStyle.Render(fmt.Sprintf("calibrating%-3s keep your eyes open (%.1fs)", dots, m.calRemaining))
	case tuiStateWatching:
		if m.alert {
			if m.frame%2 == 0 {
				return alertStyle.Render("BLINK! no blink for " + fmt.Sprintf("%.0fs", m.sinceBlink))
			}
			return alertStyle.Render("       no blink for " + fmt.Sprintf("%.0fs", m.sinceBlink))
		}
		if m.faceLost {
			return warnStyle.Render("face not detected")
		}
		return okStyle.Render("watching")
	}
	return dimStyle.Render("idle (space to start)")
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wink "+version) + "\n\n")
	b.WriteString(m.statusLine() + "\n\n")

	if m.state == tuiStateWatching {
		b.WriteString(statStyle.Render(fmt.Sprintf("blinks     %d", m.blinkCount)) + "\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("rate       %.1f/min", m.bpm)) + "\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("last blink %.1fs ago", m.sinceBlink)) + "\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("baseline   %.3f", m.baseline)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("alert after %ds without blinking", m.thresholdS)) + "\n")
	if m.source != "" {
		b.WriteString(dimStyle.Render("source: "+m.source) + "\n")
	}
	if m.lastError != "" {
		b.WriteString(errorStyle.Render("error: "+m.lastError) + "\n")
	}
	if m.logLine != "" {
		b.WriteString(dimStyle.Render(m.logLine) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("space start/stop · c copy stats · q quit"))
	return b.String()
}

// tuiSink bridges session events into the Bubble Tea program.
type tuiSink struct{}

func (tuiSink) SessionStarted(source string) { tuiSend(SessionStartedMsg{Source: source}) }
func (tuiSink) SessionStopped()              { tuiSend(SessionStoppedMsg{}) }
func (tuiSink) CalibrationProgress(remaining time.Duration) {
	tuiSend(CalibratingMsg{Remaining: remaining.Seconds()})
}
func (tuiSink) CalibrationDone(baseline float64) { tuiSend(CalibratedMsg{Baseline: baseline}) }
func (tuiSink) Blink(count int)                  { tuiSend(BlinkCountMsg{Count: count}) }
func (tuiSink) Rate(bpm float64)                 { tuiSend(RateMsg{BPM: bpm}) }
func (tuiSink) SinceBlink(seconds float64)       { tuiSend(SinceBlinkMsg{Seconds: seconds}) }
func (tuiSink) Alert(active bool)                { tuiSend(AlertMsg{Active: active}) }
func (tuiSink) FaceLost(lost bool)               { tuiSend(FaceLostMsg{Lost: lost}) }
func (tuiSink) SessionError(msg string)          { tuiSend(ErrorMsg{Text: msg}) }
