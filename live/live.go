// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package live serves a growing crystal over websockets. Clients start and
// stop growth, edit the configuration, reset, clear and export, and receive
// the polygons accepted in every frame.

package live

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/2dChan/crystal"
	"github.com/2dChan/crystal/render"
	"github.com/golang/geo/r2"
	"github.com/gorilla/websocket"
)

const (
	defaultInterval = time.Second / 60
)

// Command is a message sent by a client.
type Command struct {
	// Type is one of start, stop, toggle, config, reset, clear, export, state.
	Type string `json:"type"`
	// Config holds the fields to change; absent fields keep their current value.
	Config json.RawMessage `json:"config,omitempty"`
}

// Message is sent to clients.
type Message struct {
	// Type is one of state, frame, export, error.
	Type     string          `json:"type"`
	Running  bool            `json:"running"`
	Live     int             `json:"live"`
	Config   *crystal.Config `json:"config,omitempty"`
	Cleared  bool            `json:"cleared,omitempty"`
	Polygons [][][2]float64  `json:"polygons,omitempty"`
	Stats    *crystal.Stats  `json:"stats,omitempty"`
	SVG      string          `json:"svg,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Server owns a driver and the loop that advances it.
type Server struct {
	mu       sync.Mutex
	driver   *crystal.Driver
	picture  *render.SVG
	frame    *frameRecorder
	running  bool
	interval time.Duration
	// rearm wakes Run after SetInterval.
	rearm chan struct{}

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
	upgrader  websocket.Upgrader
}

// NewServer returns a paused server growing a crystal over a width×height
// canvas.
func NewServer(width, height int, src crystal.Source, cfg crystal.Config, style render.Style) (*Server, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("live: invalid canvas size %dx%d", width, height)
	}

	s := &Server{
		picture:  render.NewSVG(width, height, style),
		frame:    &frameRecorder{},
		interval: defaultInterval,
		rearm:    make(chan struct{}, 1),
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	bounds := r2.RectFromPoints(r2.Point{}, r2.Point{X: float64(width), Y: float64(height)})
	d, err := crystal.NewDriver(bounds, src,
		crystal.WithConfig(cfg),
		crystal.WithSurface(render.Multi{s.picture, s.frame}))
	if err != nil {
		return nil, fmt.Errorf("live: %w", err)
	}
	s.driver = d
	return s, nil
}

// SetInterval sets the time between frames. A running Run picks it up
// immediately.
func (s *Server) SetInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()

	select {
	case s.rearm <- struct{}{}:
	default:
	}
}

// Handler serves the websocket at /ws and the current picture at /export.svg.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/export.svg", s.handleExport)
	return mux
}

// Run advances the crystal once per interval until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.currentInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.rearm:
			ticker.Reset(s.currentInterval())
		case <-ticker.C:
			s.Advance()
		}
	}
}

func (s *Server) currentInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Advance runs one frame of growth if the server is running and broadcasts
// what changed.
func (s *Server) Advance() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.frame.reset()
	stats := s.driver.Tick()
	msg := s.frameMessage()
	msg.Stats = &stats
	s.mu.Unlock()

	if len(msg.Polygons) > 0 {
		s.broadcast(msg)
	}
}

// Handle applies cmd. It returns a reply for the sender and a message for
// every client; either may be nil.
func (s *Server) Handle(cmd Command) (reply, all *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Type {
	case "start":
		s.running = true
	case "stop":
		s.running = false
	case "toggle":
		s.running = !s.running
	case "config":
		if len(cmd.Config) == 0 {
			return errorMessage(errors.New("live: config command without config")), nil
		}
		cfg := s.driver.Config()
		if err := json.Unmarshal(cmd.Config, &cfg); err != nil {
			return errorMessage(fmt.Errorf("live: parse config: %w", err)), nil
		}
		s.driver.SetConfig(cfg)
	case "reset":
		s.frame.reset()
		if err := s.driver.Reset(); err != nil {
			return errorMessage(err), nil
		}
		msg := s.frameMessage()
		return nil, &msg
	case "clear":
		s.frame.reset()
		s.driver.Clear()
		msg := s.frameMessage()
		return nil, &msg
	case "export":
		var buf bytes.Buffer
		if err := s.picture.Export(&buf); err != nil {
			return errorMessage(err), nil
		}
		msg := Message{Type: "export", Running: s.running, Live: s.driver.NumPolygons(), SVG: buf.String()}
		return &msg, nil
	case "state":
		msg := s.stateMessage()
		return &msg, nil
	default:
		return errorMessage(fmt.Errorf("live: unknown command %q", cmd.Type)), nil
	}

	msg := s.stateMessage()
	return nil, &msg
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("live: websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	s.mu.Lock()
	state := s.stateMessage()
	s.mu.Unlock()
	if err := send(conn, connMu, state); err != nil {
		log.Println("live: websocket write error:", err)
		return
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("live: websocket read error:", err)
			}
			return
		}
		reply, all := s.Handle(cmd)
		if reply != nil {
			if err := send(conn, connMu, *reply); err != nil {
				log.Println("live: websocket write error:", err)
				return
			}
		}
		if all != nil {
			s.broadcast(*all)
		}
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var buf bytes.Buffer
	s.mu.Lock()
	err := s.picture.Export(&buf)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := buf.WriteTo(w); err != nil {
		log.Println("live: export write error:", err)
	}
}

func (s *Server) broadcast(msg Message) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range s.clients {
		if err := send(conn, mu, msg); err != nil {
			log.Println("live: websocket write error:", err)
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	}
}

// NOTE: Callers must hold s.mu.
func (s *Server) stateMessage() Message {
	cfg := s.driver.Config()
	return Message{Type: "state", Running: s.running, Live: s.driver.NumPolygons(), Config: &cfg}
}

// NOTE: Callers must hold s.mu.
func (s *Server) frameMessage() Message {
	return Message{
		Type:     "frame",
		Running:  s.running,
		Live:     s.driver.NumPolygons(),
		Cleared:  s.frame.cleared,
		Polygons: s.frame.take(),
	}
}

func errorMessage(err error) *Message {
	return &Message{Type: "error", Error: err.Error()}
}

func send(conn *websocket.Conn, mu *sync.Mutex, msg Message) error {
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteJSON(msg)
}
