package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/company-profiler/internal/cache"
	"github.com/jonathan/company-profiler/internal/db"
	"github.com/jonathan/company-profiler/internal/pipeline"
	"github.com/jonathan/company-profiler/internal/types"
)

// ResearchRequest represents the request body for the research endpoints.
type ResearchRequest struct {
	URL      string `json:"url" validate:"required,min=3"`
	MaxPages int    `json:"max_pages,omitempty" validate:"omitempty,min=1,max=50"`
	Refresh  bool   `json:"refresh,omitempty"`
}

func (s *Server) decodeResearchRequest(w http.ResponseWriter, r *http.Request) (*ResearchRequest, bool) {
	var req ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return nil, false
	}
	return &req, true
}

func runStatus(err error) int {
	if errors.Is(err, cache.ErrInvalidURL) {
		return http.StatusBadRequest
	}
	// Collaborator failures (homepage unreachable) surface as bad gateway.
	return http.StatusBadGateway
}

// handleResearch runs a research synchronously and returns the profile.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeResearchRequest(w, r)
	if !ok {
		return
	}

	profile, err := s.runner.Run(r.Context(), pipeline.RunOptions{
		TargetURL: req.URL,
		MaxPages:  req.MaxPages,
		Refresh:   req.Refresh,
		Verbose:   s.verbose,
	})
	if err != nil {
		s.errorResponse(w, runStatus(err), err.Error())
		return
	}

	s.persistProfile(req.URL, profile)
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleResearchStream runs a research and streams progress events over SSE.
// The event stream itself carries the terminal complete or error event.
func (s *Server) handleResearchStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeResearchRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile, err := s.runner.Run(r.Context(), pipeline.RunOptions{
		TargetURL: req.URL,
		MaxPages:  req.MaxPages,
		Refresh:   req.Refresh,
		Verbose:   s.verbose,
		OnProgress: func(event pipeline.Event) {
			if writeErr := sse.WriteEvent(string(event.Type), event); writeErr != nil {
				log.Printf("[SERVER] SSE write failed: %v", writeErr)
			}
		},
	})
	if err != nil {
		// The error event has already gone out on the stream.
		return
	}
	s.persistProfile(req.URL, profile)
}

// handleResearchMore continues a previous run from its cached remainder.
func (s *Server) handleResearchMore(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeResearchRequest(w, r)
	if !ok {
		return
	}

	profile, err := s.runner.ScanMore(r.Context(), pipeline.RunOptions{
		TargetURL: req.URL,
		MaxPages:  req.MaxPages,
		Verbose:   s.verbose,
	})
	if err != nil {
		s.errorResponse(w, runStatus(err), err.Error())
		return
	}

	s.persistProfile(req.URL, profile)
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleClearCache drops every cached result.
func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	cleared := s.store.Clear()
	s.jsonResponse(w, http.StatusOK, map[string]int{"cleared": cleared})
}

// handleGetProfile returns the stored profile for a domain.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")
	if domain == "" {
		s.errorResponse(w, http.StatusBadRequest, "Domain is required")
		return
	}
	if s.database == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile store not configured")
		return
	}

	stored, err := s.database.GetProfile(r.Context(), domain)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, stored)
}

// handleDeleteProfile removes the stored profile for a domain.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")
	if domain == "" {
		s.errorResponse(w, http.StatusBadRequest, "Domain is required")
		return
	}
	if s.database == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile store not configured")
		return
	}

	if err := s.database.DeleteProfile(r.Context(), domain); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Profile not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"deleted": domain})
}

// handleListProfiles returns recently stored profiles; empty without a
// configured database.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.jsonResponse(w, http.StatusOK, []any{})
		return
	}

	profiles, err := s.database.ListProfiles(r.Context(), 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profiles == nil {
		profiles = []db.StoredProfile{}
	}
	s.jsonResponse(w, http.StatusOK, profiles)
}

// persistProfile stores a completed profile when a database is configured.
// Persistence failures never affect the request outcome.
func (s *Server) persistProfile(rawURL string, profile *types.CompanyProfile) {
	if s.database == nil || profile == nil {
		return
	}

	key, err := cache.Normalize(rawURL)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.database.SaveProfile(ctx, cache.Domain(key), profile); err != nil {
		log.Printf("[SERVER] Failed to persist profile for %s: %v", key, err)
	}
}
