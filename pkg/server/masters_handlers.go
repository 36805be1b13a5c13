package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/contentstudio/asset-library/pkg/scoring"
)

func (s *Server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	out, err := s.masters.Categories()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listTypesHandler(w http.ResponseWriter, r *http.Request) {
	out, err := s.masters.Types()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := s.masters.Keywords()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listCollectionsHandler(w http.ResponseWriter, r *http.Request) {
	colls, err := s.colls.Collections()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, colls)
}

type masterUpsertRequest struct {
	Name string `json:"name"`
}

func (s *Server) upsertCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req masterUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", "a non-empty name is required")
		return
	}
	rec, err := s.colls.UpsertCategory(req.Name)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) upsertTypeHandler(w http.ResponseWriter, r *http.Request) {
	var req masterUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", "a non-empty name is required")
		return
	}
	rec, err := s.colls.UpsertType(req.Name)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// scoresRequest mirrors the scoring collaborator's request body.
type scoresRequest struct {
	Content     string `json:"content"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// scoresHandler serves the scoring collaborator endpoint with the local
// heuristic. Remote deployments point Scoring.RemoteURL at a real service
// and this endpoint simply goes unused.
func (s *Server) scoresHandler(w http.ResponseWriter, r *http.Request) {
	var req scoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	result, err := s.local.Analyze(r.Context(), req.Content, req.Title, req.Description)
	if err != nil {
		if err == scoring.ErrEmptyContent {
			writeError(w, http.StatusBadRequest, "CONTENT_EMPTY", "content must not be empty")
			return
		}
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
