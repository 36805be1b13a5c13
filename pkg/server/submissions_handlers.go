package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contentstudio/asset-library/pkg/assets"
	"github.com/contentstudio/asset-library/pkg/audit"
	"github.com/contentstudio/asset-library/pkg/submission"
)

// draftView is the JSON projection of an in-progress draft.
type draftView struct {
	ID              string                 `json:"id"`
	Step            submission.Step        `json:"step"`
	ApplicationType assets.ApplicationType `json:"application_type,omitempty"`
	Name            string                 `json:"name,omitempty"`
	Type            string                 `json:"type,omitempty"`
	ContentType     string                 `json:"content_type,omitempty"`
	AssetCategory   string                 `json:"asset_category,omitempty"`
	Keywords        []string               `json:"keywords,omitempty"`
	SEOScore        *float64               `json:"seo_score,omitempty"`
	GrammarScore    *float64               `json:"grammar_score,omitempty"`
	Editing         bool                   `json:"editing"`
}

func viewOf(d *submission.Draft) draftView {
	return draftView{
		ID:              d.ID,
		Step:            d.Step,
		ApplicationType: d.ApplicationType,
		Name:            d.Name,
		Type:            d.Type,
		ContentType:     d.ContentType,
		AssetCategory:   d.AssetCategory,
		Keywords:        d.Keywords.Values(),
		SEOScore:        d.SEOScore,
		GrammarScore:    d.GrammarScore,
		Editing:         d.Editing(),
	}
}

// workflowFor looks up the workflow owning a draft id.
func (s *Server) workflowFor(id string) (*submission.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, ok := s.workflows[id]
	return wf, ok
}

type openSubmissionRequest struct {
	ApplicationType assets.ApplicationType `json:"application_type,omitempty"`
	EditAssetID     string                 `json:"edit_asset_id,omitempty"`
}

func (s *Server) openSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var req openSubmissionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}

	wf := submission.NewWorkflow(s.assets, s.view.Index(), s.analyzer, actor(r),
		submission.WithLogger(s.logger),
		submission.WithQuietPeriod(s.cfg.Scoring.QuietPeriod.Std()),
	)

	var draft *submission.Draft
	var err error
	if req.EditAssetID != "" {
		rec, getErr := s.assets.Get(r.Context(), req.EditAssetID)
		if getErr != nil {
			s.writeDomainError(w, getErr)
			return
		}
		draft, err = wf.OpenForEdit(rec)
	} else {
		draft, err = wf.Open(req.ApplicationType)
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.mu.Lock()
	s.workflows[draft.ID] = wf
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, viewOf(draft))
}

func (s *Server) getSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.workflowFor(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", "no such draft")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(wf.Draft()))
}

type selectTypeRequest struct {
	ApplicationType assets.ApplicationType `json:"application_type"`
}

func (s *Server) selectTypeHandler(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.workflowFor(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", "no such draft")
		return
	}
	var req selectTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := wf.Mutate(func(d *submission.Draft) error {
		return d.SelectType(req.ApplicationType)
	}); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(wf.Draft()))
}

func (s *Server) advanceHandler(w http.ResponseWriter, r *http.Request) {
	s.stepHandler(w, r, (*submission.Draft).Advance)
}

func (s *Server) backHandler(w http.ResponseWriter, r *http.Request) {
	s.stepHandler(w, r, (*submission.Draft).Back)
}

func (s *Server) stepHandler(w http.ResponseWriter, r *http.Request, step func(*submission.Draft) error) {
	wf, ok := s.workflowFor(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", "no such draft")
		return
	}
	if err := wf.Mutate(step); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(wf.Draft()))
}

func (s *Server) cancelHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wf, ok := s.workflowFor(id)
	if !ok {
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", "no such draft")
		return
	}
	wf.Cancel()
	wf.Close()
	s.mu.Lock()
	delete(s.workflows, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// draftPatch carries partial field writes to the in-progress draft.
// Branch sections are rejected when their branch is not active.
type draftPatch struct {
	Name                  *string  `json:"name,omitempty"`
	Type                  *string  `json:"type,omitempty"`
	ContentType           *string  `json:"content_type,omitempty"`
	AssetCategory         *string  `json:"asset_category,omitempty"`
	Keywords              []string `json:"keywords,omitempty"`
	SelectedServiceID     *string  `json:"selected_service_id,omitempty"`
	SelectedSubServiceIDs []string `json:"selected_sub_service_ids,omitempty"`
	TaskID                *string  `json:"task_id,omitempty"`
	ProjectID             *string  `json:"project_id,omitempty"`
	CampaignID            *string  `json:"campaign_id,omitempty"`
	RepositoryItemID      *string  `json:"repository_item_id,omitempty"`
	FileName              *string  `json:"file_name,omitempty"`
	SEOScore              *float64 `json:"seo_score,omitempty"`
	GrammarScore          *float64 `json:"grammar_score,omitempty"`

	Web *struct {
		URL         *string `json:"url,omitempty"`
		H1          *string `json:"h1,omitempty"`
		H2First     *string `json:"h2_first,omitempty"`
		H2Second    *string `json:"h2_second,omitempty"`
		BodyContent *string `json:"body_content,omitempty"`
	} `json:"web,omitempty"`

	SEO *struct {
		Title           *string `json:"title,omitempty"`
		MetaDescription *string `json:"meta_description,omitempty"`
		TargetURL       *string `json:"target_url,omitempty"`
		FocusKeyword    *string `json:"focus_keyword,omitempty"`
		H1              *string `json:"h1,omitempty"`
		H2First         *string `json:"h2_first,omitempty"`
		H2Second        *string `json:"h2_second,omitempty"`
		ContentBody     *string `json:"content_body,omitempty"`
	} `json:"seo,omitempty"`

	SMM *struct {
		Platform  *string  `json:"platform,omitempty"`
		MediaType *string  `json:"media_type,omitempty"`
		Caption   *string  `json:"caption,omitempty"`
		Hashtags  []string `json:"hashtags,omitempty"`
	} `json:"smm,omitempty"`
}

func (s *Server) patchSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.workflowFor(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", "no such draft")
		return
	}
	var patch draftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
		return
	}

	var bodyContent *string
	err := wf.Mutate(func(d *submission.Draft) error {
		setString := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		setString(&d.Name, patch.Name)
		setString(&d.Type, patch.Type)
		setString(&d.ContentType, patch.ContentType)
		setString(&d.AssetCategory, patch.AssetCategory)
		setString(&d.SelectedServiceID, patch.SelectedServiceID)
		setString(&d.TaskID, patch.TaskID)
		setString(&d.ProjectID, patch.ProjectID)
		setString(&d.CampaignID, patch.CampaignID)
		setString(&d.RepositoryItemID, patch.RepositoryItemID)
		setString(&d.FileName, patch.FileName)
		if patch.SelectedSubServiceIDs != nil {
			d.SelectedSubServiceIDs = patch.SelectedSubServiceIDs
		}
		if patch.Keywords != nil {
			d.Keywords = submission.NewKeywordSet(patch.Keywords...)
		}
		if patch.SEOScore != nil {
			d.SEOScore = patch.SEOScore
		}
		if patch.GrammarScore != nil {
			d.GrammarScore = patch.GrammarScore
		}

		if patch.Web != nil {
			web, err := d.Web()
			if err != nil {
				return err
			}
			setString(&web.URL, patch.Web.URL)
			setString(&web.H1, patch.Web.H1)
			setString(&web.H2First, patch.Web.H2First)
			setString(&web.H2Second, patch.Web.H2Second)
			if patch.Web.BodyContent != nil {
				bodyContent = patch.Web.BodyContent
			}
		}
		if patch.SEO != nil {
			seo, err := d.SEO()
			if err != nil {
				return err
			}
			setString(&seo.Title, patch.SEO.Title)
			setString(&seo.MetaDescription, patch.SEO.MetaDescription)
			setString(&seo.TargetURL, patch.SEO.TargetURL)
			setString(&seo.FocusKeyword, patch.SEO.FocusKeyword)
			setString(&seo.H1, patch.SEO.H1)
			setString(&seo.H2First, patch.SEO.H2First)
			setString(&seo.H2Second, patch.SEO.H2Second)
			setString(&seo.ContentBody, patch.SEO.ContentBody)
		}
		if patch.SMM != nil {
			smm, err := d.SMM()
			if err != nil {
				return err
			}
			if patch.SMM.Platform != nil {
				if err := smm.SetPlatform(*patch.SMM.Platform); err != nil {
					return err
				}
			}
			if patch.SMM.MediaType != nil {
				if err := smm.SetMediaType(*patch.SMM.MediaType); err != nil {
					return err
				}
			}
			if patch.SMM.Caption != nil {
				if err := smm.SetCaption(*patch.SMM.Caption); err != nil {
					return err
				}
			}
			if patch.SMM.Hashtags != nil {
				smm.Hashtags = patch.SMM.Hashtags
			}
		}
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	// Body-content edits go through the workflow so the auto-scoring
	// debouncer sees them.
	if bodyContent != nil {
		if err := wf.OnBodyContentChanged(*bodyContent); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, viewOf(wf.Draft()))
}

type saveSubmissionRequest struct {
	SubmitForQC bool `json:"submit_for_qc"`
}

func (s *Server) saveSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wf, ok := s.workflowFor(id)
	if !ok {
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", "no such draft")
		return
	}
	var req saveSubmissionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "BODY_INVALID", fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}

	editing := false
	if d := wf.Draft(); d != nil {
		editing = d.Editing()
	}

	saved, err := wf.Save(r.Context(), req.SubmitForQC)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	switch {
	case req.SubmitForQC:
		s.recordEvent(r, saved.ID, audit.ActionSubmitted, "")
	case editing:
		s.recordEvent(r, saved.ID, audit.ActionUpdated, "")
	default:
		s.recordEvent(r, saved.ID, audit.ActionCreated, "")
	}

	wf.Close()
	s.mu.Lock()
	delete(s.workflows, id)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, saved)
}
