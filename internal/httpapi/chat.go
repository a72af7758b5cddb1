package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/observe"
	"github.com/Y3454R/vsp-mvp/internal/session"
)

// ChatRequest asks the simulated patient to answer one student message.
// An empty SessionID requests a fresh session; the server mints an ID and
// returns it in the response.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	CaseID    string `json:"case_id"`
	Message   string `json:"message"`
}

// ChatResponse carries the patient's reply.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	CaseID    string `json:"case_id"`
	Response  string `json:"response"`
}

// EndSessionRequest ends one conversation and releases its memory.
type EndSessionRequest struct {
	SessionID string `json:"session_id"`
	CaseID    string `json:"case_id"`
}

// HistoryResponse returns a session's transcript in arrival order.
type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	Messages  []session.Turn `json:"messages"`
}

// handleChat produces the next patient reply for a student message.
//
// Chat failures are surfaced explicitly: an unknown case is a 404 and a
// model failure is a 502 — a broken conversation must be visible to the
// student-facing client, never silently degraded.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CaseID == "" {
		writeError(w, http.StatusBadRequest, "case_id must not be empty")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := s.chat.Respond(r.Context(), req.SessionID, req.CaseID, req.Message)
	if err != nil {
		if errors.Is(err, casefile.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		observe.Logger(r.Context()).Error("chat turn failed",
			"session_id", req.SessionID, "case_id", req.CaseID, "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	observe.DefaultMetrics().ChatTurns.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("case_id", req.CaseID)))

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: req.SessionID,
		CaseID:    req.CaseID,
		Response:  reply,
	})
}

// handleEndSession discards the conversation binding and session memory.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	var req EndSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id must not be empty")
		return
	}

	s.chat.EndSession(req.SessionID, req.CaseID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session ended successfully"})
}

// handleHistory returns the transcript for a session. An unknown session
// yields an empty message list, not an error.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	writeJSON(w, http.StatusOK, HistoryResponse{
		SessionID: sessionID,
		Messages:  s.chat.History(sessionID),
	})
}
