package httpapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Y3454R/vsp-mvp/internal/observe"
	"github.com/Y3454R/vsp-mvp/internal/session"
)

// EvaluateRequest asks for a rubric evaluation of the given transcript.
// Messages is the full transcript snapshot to judge; roles accept both
// student/patient and the user/assistant aliases.
type EvaluateRequest struct {
	SessionID string         `json:"session_id"`
	CaseID    string         `json:"case_id"`
	Messages  []session.Turn `json:"messages"`
}

// handleEvaluate runs the evaluation engine over a transcript.
//
// This endpoint always answers 200 with a well-formed result: when the
// evaluation path fails the result carries zero scores and an error
// description instead. Evaluation is advisory and must not block the
// training workflow.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.eval.Evaluate(r.Context(), req.SessionID, req.CaseID, req.Messages)

	outcome := "ok"
	if result.Error != "" {
		outcome = "degraded"
		observe.Logger(r.Context()).Warn("evaluation degraded",
			"session_id", req.SessionID, "case_id", req.CaseID, "err", result.Error)
	}
	observe.DefaultMetrics().Evaluations.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))

	writeJSON(w, http.StatusOK, result)
}
