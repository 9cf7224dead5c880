package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-autofill/internal/profile"
	"github.com/jonathan/resume-autofill/internal/reconcile"
	"github.com/jonathan/resume-autofill/internal/schemas"
)

// FieldPatchRequest represents the request body for PATCH /profile/field.
type FieldPatchRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// UnknownFieldsResponse represents the response for GET /profile/unknown.
type UnknownFieldsResponse struct {
	Unknown []string `json:"unknown"`
}

// HealthResponse represents the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// handleGetProfile returns the stored profile, or 404 when none was ever
// saved.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	d := s.store.Current()
	if d == nil {
		// Absent and unreadable are different outcomes: only an unresolved
		// initial-load failure is a server error. A failed save elsewhere
		// does not turn an empty store into a 500.
		if err := s.store.LoadErr(); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.errorResponse(w, http.StatusNotFound, "No profile saved")
		return
	}
	s.jsonResponse(w, http.StatusOK, d)
}

// handlePutProfile validates and persists a full profile document.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := schemas.ValidateProfileDocument(raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Profile does not match schema: "+err.Error())
		return
	}

	var d profile.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reqID := requestID(r.Context())
	if err := s.store.Save(r.Context(), &d); err != nil {
		log.Printf("[%s] profile save failed: %v", reqID, err)
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	log.Printf("[%s] profile saved via %s backend", reqID, s.store.Backend().Name())
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleDeleteProfile clears the stored profile.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handlePatchField applies one leaf edit through the mutation applier and
// persists the result.
func (s *Server) handlePatchField(w http.ResponseWriter, r *http.Request) {
	var req FieldPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		s.errorResponse(w, http.StatusBadRequest, "path is required")
		return
	}

	current := s.store.Current()
	if current == nil {
		current = profile.New()
	}

	next, err := profile.Apply(current, req.Path, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.Save(r.Context(), next); err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, next)
}

// handleUnknownFields returns the leaf paths the parser left unresolved in
// the stored profile.
func (s *Server) handleUnknownFields(w http.ResponseWriter, r *http.Request) {
	d := s.store.Current()
	if d == nil {
		s.errorResponse(w, http.StatusNotFound, "No profile saved")
		return
	}

	set := reconcile.Compute(d)
	paths := set.Paths()
	if paths == nil {
		paths = []string{}
	}
	s.jsonResponse(w, http.StatusOK, UnknownFieldsResponse{Unknown: paths})
}

// handleHealth reports liveness and the active backend.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Backend: s.store.Backend().Name(),
	})
}

// readBody reads a request body with a sane size cap. Profiles are small;
// 1 MiB is generous.
func readBody(r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(http.MaxBytesReader(nil, r.Body, 1<<20))
}
