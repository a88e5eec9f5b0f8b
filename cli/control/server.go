package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"hnsync/app"
	"hnsync/domain"
)

var ErrAlreadyRunning = errors.New("already running")

// TryListen binds the control address. If it is already in use another
// fetch process is assumed to be running.
func TryListen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return ln, nil
}

type Scheduler interface {
	domain.Scheduler
	Status() app.Status
}

type Server struct {
	sched Scheduler
}

func NewServer(sched Scheduler) *Server { return &Server{sched: sched} }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/set-interval":
		s.handleSetInterval(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/set-workers":
		s.handleSetWorkers(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/status":
		writeJSON(w, s.sched.Status())
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleSetInterval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid duration: %v", err), http.StatusBadRequest)
		return
	}
	if d <= 0 {
		http.Error(w, "duration must be > 0", http.StatusBadRequest)
		return
	}

	old := s.sched.CurrentInterval()
	s.sched.SetInterval(d)
	slog.Info("sync interval changed", "old", old, "new", d)
	writeJSON(w, map[string]interface{}{"ok": true, "old": old.String(), "new": d.String()})
}

func (s *Server) handleSetWorkers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Workers int `json:"workers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	old := s.sched.CurrentWorkers()
	if err := s.sched.Resize(req.Workers); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Info("worker count changed", "old", old, "new", req.Workers)
	writeJSON(w, map[string]interface{}{"ok": true, "old": old, "new": req.Workers})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
