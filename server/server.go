package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"
)

// Runner is the bot surface the server triggers.
type Runner interface {
	Run(ctx context.Context) error
	RunTeamNamed(ctx context.Context, name string) error
}

// Server exposes a manual trigger for the check-in run, for deployments where
// the scheduler is an external cron hitting an HTTP endpoint.
type Server struct {
	runner Runner

	mu      sync.Mutex
	running bool
	last    *runSummary
}

type runSummary struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Team       string    `json:"team,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func New(runner Runner) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	return &Server{runner: runner}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/run", s.handleRun)
	mux.HandleFunc("/api/health", s.handleHealth)
	return logMiddleware(mux)
}

// --- Handlers ---

type runReq struct {
	Team string `json:"team"`
}

type runResp struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req runReq
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if !s.begin() {
		http.Error(w, "run already in progress", http.StatusConflict)
		return
	}
	defer s.end()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	started := time.Now()
	var err error
	if req.Team != "" {
		err = s.runner.RunTeamNamed(ctx, req.Team)
	} else {
		err = s.runner.Run(ctx)
	}
	s.record(started, req.Team, err)

	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		writeJSON(w, runResp{Status: "error", Error: err.Error()})
		return
	}
	writeJSON(w, runResp{Status: "ok"})
}

type healthResp struct {
	Status  string      `json:"status"`
	LastRun *runSummary `json:"last_run,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	writeJSON(w, healthResp{Status: "ok", LastRun: last})
}

// --- Helpers ---

func (s *Server) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Server) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *Server) record(started time.Time, team string, err error) {
	summary := &runSummary{StartedAt: started, FinishedAt: time.Now(), Team: team}
	if err != nil {
		summary.Error = err.Error()
	}
	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
