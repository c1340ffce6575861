package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/repowatch/repowatch/internal/runstore"
)

// Store is the run history the server reads from.
type Store interface {
	LatestRun() (*runstore.Run, error)
	ListRuns(limit int) ([]*runstore.Run, error)
	GetResults(runID string) ([]runstore.TaskResult, error)
}

// Server exposes run history and a live event stream over HTTP.
type Server struct {
	store    Store
	addr     string
	mux      *http.ServeMux
	hub      *EventHub
	upgrader websocket.Upgrader
}

// NewServer creates a new status server
func NewServer(store Store, addr string) *Server {
	s := &Server{
		store: store,
		addr:  addr,
		mux:   http.NewServeMux(),
		hub:   NewEventHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/status", s.statusHandler())
	s.mux.HandleFunc("/api/runs", s.listRunsHandler())
	s.mux.HandleFunc("/api/runs/", s.runResultsHandler())
	s.mux.HandleFunc("/api/events", s.sseHandler())
	s.mux.HandleFunc("/api/ws", s.wsHandler())
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go s.hub.Run()
	return http.ListenAndServe(s.addr, s.mux)
}

// Broadcast sends an event to all connected clients (SSE and websocket).
func (s *Server) Broadcast(event Event) {
	s.hub.Broadcast(event)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
