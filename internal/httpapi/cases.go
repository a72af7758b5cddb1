package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
)

// maxBodyBytes caps request bodies; transcripts are text, not uploads.
const maxBodyBytes = 1 << 20

// handleListCases returns every available case ordered by ID.
func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.cases.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

// handleGetCase returns a single case by ID, or 404.
func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := s.cases.Get(id)
	if err != nil {
		if errors.Is(err, casefile.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleReloadCases invalidates the case cache so the next read re-scans the
// case directory. Useful while authoring cases.
func (s *Server) handleReloadCases(w http.ResponseWriter, r *http.Request) {
	s.cases.Reload()
	if _, err := s.cases.LoadAll(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cases reloaded successfully"})
}

// decodeJSON decodes a request body into v, rejecting unknown fields and
// oversized bodies.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
