package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"cappy/internal/core"
	"cappy/internal/suggest"
)

// maxBodyBytes caps request bodies; a full request is well under 4KB.
const maxBodyBytes = 64 << 10

// HealthResponse is returned by /health
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks"`
}

// ExampleResponse is returned by /api/icebreakers/example
type ExampleResponse struct {
	Example     suggest.AutoRequest `json:"example"`
	Description string              `json:"description"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.deps.Checks))
	for name, status := range s.deps.Checks {
		checks[name] = status
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(serverStartTime).Round(time.Second).String(),
		Checks: checks,
	})
}

// handleGenerate handles POST /api/icebreakers/generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req core.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.deps.Suggest.Execute(r.Context(), req)
	if err != nil {
		s.respondSuggestError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleGenerateAuto handles POST /api/icebreakers/generate/auto
func (s *Server) handleGenerateAuto(w http.ResponseWriter, r *http.Request) {
	var req suggest.AutoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.deps.Suggest.ExecuteAuto(r.Context(), req)
	if err != nil {
		s.respondSuggestError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleCategories handles GET /api/icebreakers/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, core.Categories)
}

// handleCurrentContext handles GET /api/icebreakers/context
func (s *Server) handleCurrentContext(w http.ResponseWriter, r *http.Request) {
	current, err := s.deps.Provider.Current(r.Context())
	if err != nil {
		s.log.Error("Failed to get current context", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to get current context")
		return
	}

	s.respondJSON(w, http.StatusOK, current)
}

// handleExample handles GET /api/icebreakers/example
func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, ExampleResponse{
		Example: suggest.AutoRequest{
			RequestedCount: 3,
			MaxDifficulty:  2,
		},
		Description: "POST this body to /api/icebreakers/generate/auto to get ideas for the current context",
	})
}

func (s *Server) respondSuggestError(w http.ResponseWriter, err error) {
	if errors.Is(err, suggest.ErrInvalidRequest) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Error("Failed to generate suggestions", "error", err)
	s.respondError(w, http.StatusInternalServerError, "Failed to generate suggestions")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("body is empty")
		}
		return err
	}
	return nil
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}
