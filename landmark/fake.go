package landmark

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// FakeSource replays a scripted frame sequence through the callback,
// either as fast as possible or paced at a fixed interval. Used by the
// headless test mode and by tests.
type FakeSource struct {
	frames   []Frame
	interval time.Duration
	callback atomic.Pointer[FrameCallback]

	mu         sync.Mutex
	stopCh     chan struct{}
	feedDone   chan struct{}
	scriptDone chan struct{}
	doneOnce   sync.Once
}

// NewFakeSource paces frames at interval; interval <= 0 replays the
// script immediately on Start.
func NewFakeSource(frames []Frame, interval time.Duration) *FakeSource {
	return &FakeSource{
		frames:     frames,
		interval:   interval,
		scriptDone: make(chan struct{}),
	}
}

// ReadScript loads a frame script: one JSON frame object per line,
// blank lines and #-comments skipped.
func ReadScript(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var frames []Frame
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		var fr Frame
		if err := json.Unmarshal([]byte(text), &fr); err != nil {
			return nil, fmt.Errorf("script line %d: %w", line, err)
		}
		frames = append(frames, fr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

func (f *FakeSource) Name() string { return "fake" }

// ScriptDone closes once every scripted frame has been delivered.
func (f *FakeSource) ScriptDone() <-chan struct{} { return f.scriptDone }

func (f *FakeSource) SetCallback(cb FrameCallback) {
	f.callback.Store(&cb)
}

func (f *FakeSource) ClearCallback() {
	f.callback.Store(nil)
}

// Emit pushes a single frame through the callback, bypassing the
// script. Tests use this to drive the pipeline deterministically.
func (f *FakeSource) Emit(fr Frame) {
	cb := f.callback.Load()
	if cb != nil {
		(*cb)(fr)
	}
}

func (f *FakeSource) deliver(i int) {
	cb := f.callback.Load()
	if cb != nil {
		(*cb)(f.frames[i])
	}
}

func (f *FakeSource) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	if f.interval <= 0 {
		for i := range f.frames {
			f.deliver(i)
		}
		f.doneOnce.Do(func() { close(f.scriptDone) })
		close(f.feedDone)
		return nil
	}

	go func() {
		defer close(f.feedDone)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		finished := false
		for i := 0; ; i++ {
			if i < len(f.frames) {
				f.deliver(i)
			} else if !finished {
				finished = true
				f.doneOnce.Do(func() { close(f.scriptDone) })
			}
			select {
			case <-f.stopCh:
				return
			case <-ticker.C:
			}
		}
	}()
	return nil
}

func (f *FakeSource) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopCh != nil {
		select {
		case <-f.stopCh:
		default:
			close(f.stopCh)
		}
		<-f.feedDone
		f.stopCh = nil
	}
}

func (f *FakeSource) Close() {
	f.Stop()
}
