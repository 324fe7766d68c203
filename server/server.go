// Package server exposes the parameter channel over a websocket so an
// external controller can tune the running harness.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cloudscape/core"
)

// Message is one parameter change as sent by the controller
type Message struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// Hello is sent to every client right after it connects
type Hello struct {
	Type       string   `json:"type"`
	State      string   `json:"state"`
	Parameters []string `json:"parameters"`
}

// Server accepts parameter changes on /ws and forwards them, in order,
// to the render thread through params
type Server struct {
	addr   string
	params chan<- core.Param
	status func() core.State
	logger *slog.Logger

	upgrader     websocket.Upgrader
	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex
}

// New creates a server. status reports the harness state for /healthz.
func New(addr string, params chan<- core.Param, status func() core.State, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:   addr,
		params: params,
		status: status,
		logger: logger,
		upgrader: websocket.Upgrader{
			// controllers run from file:// pages and other local origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("parameter server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.closeClients()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) state() core.State {
	if s.status == nil {
		return core.StateUninitialized
	}
	return s.status()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.state()
	w.Header().Set("Content-Type", "application/json")
	if state != core.StateReady {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]string{"state": state.String()})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	s.logger.Info("controller connected", "remote", conn.RemoteAddr().String())
	s.sendHello(conn, connMutex)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}

		msgs, err := DecodeMessages(data)
		if err != nil {
			s.logger.Warn("dropping malformed message", "error", err)
			continue
		}
		for _, m := range msgs {
			select {
			case s.params <- core.ParseParam(m.Name, *m.Value):
			case <-r.Context().Done():
				return
			}
		}
	}
}

func (s *Server) sendHello(conn *websocket.Conn, mu *sync.Mutex) {
	hello := Hello{
		Type:       "hello",
		State:      s.state().String(),
		Parameters: core.ParamNames(),
	}
	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(hello); err != nil {
		s.logger.Warn("websocket write error", "error", err)
	}
}

func (s *Server) closeClients() {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
	for conn, mu := range s.clients {
		mu.Lock()
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		mu.Unlock()
	}
}

// DecodeMessages parses a single message object or an array of them.
// Every message needs a name and a numeric value.
func DecodeMessages(data []byte) ([]Message, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty message")
	}

	var msgs []Message
	if data[0] == '[' {
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, err
		}
	} else {
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		msgs = []Message{m}
	}

	for i, m := range msgs {
		if m.Name == "" {
			return nil, fmt.Errorf("message %d: missing name", i)
		}
		if m.Value == nil {
			return nil, fmt.Errorf("message %d (%s): missing value", i, m.Name)
		}
	}
	return msgs, nil
}
