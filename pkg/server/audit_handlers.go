package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/contentstudio/asset-library/pkg/audit"
)

type auditListResponse struct {
	Events    []audit.EventRecord `json:"events"`
	TotalSize int                 `json:"totalSize"`
}

func (s *Server) assetEventsHandler(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeError(w, http.StatusNotFound, "AUDIT_DISABLED", "the activity trail is not enabled")
		return
	}
	events, err := s.audit.ListForAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auditListResponse{Events: events, TotalSize: len(events)})
}

func (s *Server) listAuditEventsHandler(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeError(w, http.StatusNotFound, "AUDIT_DISABLED", "the activity trail is not enabled")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	events, err := s.audit.List(r.Context(), r.URL.Query().Get("action"), limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auditListResponse{Events: events, TotalSize: len(events)})
}
