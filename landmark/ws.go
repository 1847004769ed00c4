package landmark

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// WSSource accepts landmark frames over a local WebSocket. A companion
// client (typically a browser page running the face-mesh engine)
// connects to /landmarks and streams one JSON frame per processed
// camera frame.
type WSSource struct {
	addr     string
	callback atomic.Pointer[FrameCallback]

	mu  sync.Mutex
	ln  net.Listener
	srv *http.Server
}

func NewWSSource(addr string) *WSSource {
	return &WSSource{addr: addr}
}

func (s *WSSource) Name() string { return "ws:" + s.addr }

// Addr returns the bound listen address. Valid only after Start.
func (s *WSSource) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

func (s *WSSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("landmark listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/landmarks", s.handleWS)
	srv := &http.Server{Handler: mux}

	s.ln = ln
	s.srv = srv

	go srv.Serve(ln)
	return nil
}

func (s *WSSource) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		// Local companion pages connect from file:// or localhost.
		CheckOrigin: func(*http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		cb := s.callback.Load()
		if cb != nil {
			(*cb)(f)
		}
	}
}

func (s *WSSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		s.srv.Close()
		s.srv = nil
		s.ln = nil
	}
}

func (s *WSSource) Close() {
	s.Stop()
}

func (s *WSSource) SetCallback(cb FrameCallback) {
	s.callback.Store(&cb)
}

func (s *WSSource) ClearCallback() {
	s.callback.Store(nil)
}
