package landmark

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialSource(t *testing.T, s *WSSource) *websocket.Conn {
	t.Helper()
	url := "ws://" + s.Addr() + "/landmarks"
	var conn *websocket.Conn
	var err error
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Cleanup(func() { conn.Close() })
			return conn
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dialing %s: %v", url, err)
	return nil
}

func testFrame() Frame {
	f := Frame{Points: make([]Point, eyeMaxIndex+1)}
	for i := range f.Points {
		f.Points[i] = Point{X: float64(i), Y: 1}
	}
	return f
}

func TestWSSourceDeliversFrames(t *testing.T) {
	s := NewWSSource("127.0.0.1:0")
	got := make(chan Frame, 8)
	s.SetCallback(func(f Frame) { got <- f })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	conn := dialSource(t, s)
	want := testFrame()
	data, _ := json.Marshal(want)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	select {
	case f := <-got:
		if len(f.Points) != len(want.Points) {
			t.Fatalf("got %d points, want %d", len(f.Points), len(want.Points))
		}
		if f.Points[3].X != 3 {
			t.Fatalf("point 3 X = %v, want 3", f.Points[3].X)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestWSSourceSkipsMalformedMessages(t *testing.T) {
	s := NewWSSource("127.0.0.1:0")
	got := make(chan Frame, 8)
	s.SetCallback(func(f Frame) { got <- f })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	conn := dialSource(t, s)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	data, _ := json.Marshal(testFrame())
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	select {
	case f := <-got:
		if !f.HasEyes() {
			t.Fatal("expected a frame with eye landmarks")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("valid frame after malformed one was not delivered")
	}
}

func TestWSSourceClearCallback(t *testing.T) {
	s := NewWSSource("127.0.0.1:0")
	got := make(chan Frame, 8)
	s.SetCallback(func(f Frame) { got <- f })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	conn := dialSource(t, s)
	s.ClearCallback()
	data, _ := json.Marshal(testFrame())
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	select {
	case <-got:
		t.Fatal("frame delivered after ClearCallback")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWSSourceStartIdempotent(t *testing.T) {
	s := NewWSSource("127.0.0.1:0")
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()
	addr := s.Addr()
	if err := s.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if s.Addr() != addr {
		t.Fatalf("address changed on second Start: %s vs %s", addr, s.Addr())
	}
}
