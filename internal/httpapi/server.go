// Package httpapi exposes the virtual simulated patient service over HTTP.
//
// The API surface is a thin shell: handlers decode JSON, delegate to the
// conversation and evaluation engines, and encode the result. All domain
// logic lives in the engines.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/evaluation"
	"github.com/Y3454R/vsp-mvp/internal/interview"
)

// Server bundles the dependencies required by the HTTP handlers.
type Server struct {
	cases *casefile.Repository
	chat  *interview.Engine
	eval  *evaluation.Engine
}

// NewServer constructs a Server. All dependencies are required.
func NewServer(cases *casefile.Repository, chat *interview.Engine, eval *evaluation.Engine) *Server {
	return &Server{cases: cases, chat: chat, eval: eval}
}

// Register adds all API routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /chat/end-session", s.handleEndSession)
	mux.HandleFunc("GET /chat/history/{session_id}", s.handleHistory)

	mux.HandleFunc("POST /evaluate", s.handleEvaluate)

	mux.HandleFunc("GET /cases", s.handleListCases)
	mux.HandleFunc("GET /cases/{id}", s.handleGetCase)
	mux.HandleFunc("POST /cases/reload", s.handleReloadCases)
}

// handleRoot serves a small service banner.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Virtual Simulated Patient API",
		"version": "1.0.0",
	})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"detail":"encoding error"}`, http.StatusInternalServerError)
	}
}

// writeError encodes an error response with the given status code.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
