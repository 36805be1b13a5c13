package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contentstudio/asset-library/pkg/assets"
	"github.com/contentstudio/asset-library/pkg/audit"
	"github.com/contentstudio/asset-library/pkg/store"
	"github.com/contentstudio/asset-library/pkg/submission"
)

// assetListResponse is the catalog listing envelope.
type assetListResponse struct {
	Items     []assets.AssetRecord `json:"items"`
	TotalSize int                  `json:"totalSize"`
}

// criteriaFromParams reads one value per filter dimension from the query
// string. Missing parameters leave the dimension unconstrained.
func criteriaFromParams(r *http.Request) assets.FilterCriteria {
	q := r.URL.Query()
	return assets.FilterCriteria{
		Type:            q.Get("type"),
		Category:        q.Get("category"),
		ContentType:     q.Get("contentType"),
		ApplicationType: q.Get("applicationType"),
		Campaign:        q.Get("campaign"),
		Service:         q.Get("service"),
		SubService:      q.Get("subService"),
		Project:         q.Get("project"),
		Task:            q.Get("task"),
		RepositoryItem:  q.Get("repositoryItem"),
		Creator:         q.Get("creator"),
		DateRange:       q.Get("dateRange"),
		UsageStatus:     q.Get("usageStatus"),
	}
}

// overlay applies the non-empty dimensions of b over a.
func overlay(a, b assets.FilterCriteria) assets.FilterCriteria {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&a.Type, b.Type)
	merge(&a.Category, b.Category)
	merge(&a.ContentType, b.ContentType)
	merge(&a.ApplicationType, b.ApplicationType)
	merge(&a.Campaign, b.Campaign)
	merge(&a.Service, b.Service)
	merge(&a.SubService, b.SubService)
	merge(&a.Project, b.Project)
	merge(&a.Task, b.Task)
	merge(&a.RepositoryItem, b.RepositoryItem)
	merge(&a.Creator, b.Creator)
	merge(&a.DateRange, b.DateRange)
	merge(&a.UsageStatus, b.UsageStatus)
	return a
}

func (s *Server) listAssetsHandler(w http.ResponseWriter, r *http.Request) {
	criteria := criteriaFromParams(r)
	query := r.URL.Query().Get("q")

	if fq := r.URL.Query().Get("filterQuery"); fq != "" {
		parsed, text, err := assets.ParseQuery(fq)
		if err != nil {
			writeError(w, http.StatusBadRequest, "FILTER_QUERY_INVALID", err.Error())
			return
		}
		criteria = overlay(criteria, parsed)
		if text != "" {
			query = text
		}
	}

	records, err := s.assets.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LIST_FAILED", fmt.Sprintf("listing assets: %v", err))
		return
	}
	colls, err := s.colls.Collections()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LIST_FAILED", fmt.Sprintf("loading collections: %v", err))
		return
	}

	filtered := s.view.Filter(records, criteria, query, colls)
	writeJSON(w, http.StatusOK, assetListResponse{Items: filtered, TotalSize: len(filtered)})
}

func (s *Server) getAssetHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) createAssetHandler(w http.ResponseWriter, r *http.Request) {
	var rec assets.AssetRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if rec.Status == "" {
		rec.Status = assets.StatusDraft
	}
	rec.CreatedBy = actor(r)
	saved, err := s.assets.Create(r.Context(), &rec)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.recordEvent(r, saved.ID, audit.ActionCreated, "")
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) updateAssetHandler(w http.ResponseWriter, r *http.Request) {
	var rec assets.AssetRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	rec.UpdatedBy = actor(r)
	saved, err := s.assets.Update(r.Context(), chi.URLParam(r, "id"), &rec)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.recordEvent(r, saved.ID, audit.ActionUpdated, "")
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) deleteAssetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.assets.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.recordEvent(r, id, audit.ActionDeleted, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) approveAssetHandler(w http.ResponseWriter, r *http.Request) {
	s.decideQC(w, r, s.machine.Approve, audit.ActionApproved)
}

func (s *Server) rejectAssetHandler(w http.ResponseWriter, r *http.Request) {
	s.decideQC(w, r, s.machine.Reject, audit.ActionRejected)
}

// decideQC loads the asset, applies a QC decision through the lifecycle
// machine, and persists the outcome.
func (s *Server) decideQC(w http.ResponseWriter, r *http.Request, decide func(*assets.AssetRecord) error, action string) {
	rec, err := s.assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if err := decide(rec); err != nil {
		s.writeDomainError(w, err)
		return
	}
	rec.UpdatedBy = actor(r)
	if err := s.assets.Save(r.Context(), rec); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.recordEvent(r, rec.ID, action, "")
	writeJSON(w, http.StatusOK, rec)
}

// writeDomainError maps domain errors onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var verrs submission.ValidationErrors
	var verr *submission.ValidationError
	var serr *submission.StateError
	var terr *assets.TransitionError

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    "VALIDATION_FAILED",
			Message: verrs.Error(),
			Errors:  verrs,
		})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    verr.Code,
			Message: verr.Message,
			Errors:  []*submission.ValidationError{verr},
		})
	case errors.As(err, &serr):
		writeError(w, http.StatusConflict, serr.Code, serr.Message)
	case errors.As(err, &terr):
		writeError(w, http.StatusConflict, terr.Code, terr.Message)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "ASSET_NOT_FOUND", err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
