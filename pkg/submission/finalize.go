package submission

import (
	"strings"
	"time"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// Validate checks the draft against the save gates. Each condition is
// checked independently so every failing field is reported in one pass.
// Score gates apply only when submitting for QC.
func (d *Draft) Validate(submitForQC bool) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, &ValidationError{
			Code:    "NAME_REQUIRED",
			Field:   "name",
			Message: "asset name is required",
		})
	}
	if d.ApplicationType == "" {
		errs = append(errs, &ValidationError{
			Code:    "APPLICATION_TYPE_REQUIRED",
			Field:   "application_type",
			Message: "application type is required",
		})
	}
	if !d.Editing() && d.FileName == "" && d.FileURL == "" {
		errs = append(errs, &ValidationError{
			Code:    "FILE_REQUIRED",
			Field:   "file",
			Message: "attach a file before saving",
		})
	}

	if submitForQC {
		errs = append(errs, validateScore(d.SEOScore, "seo_score", "SEO score")...)
		errs = append(errs, validateScore(d.GrammarScore, "grammar_score", "grammar score")...)
	}

	return errs
}

func validateScore(score *float64, field, label string) ValidationErrors {
	if score == nil {
		return ValidationErrors{{
			Code:    "SCORE_REQUIRED",
			Field:   field,
			Message: label + " is required before submitting for QC review",
		}}
	}
	if *score < 0 || *score > 100 {
		return ValidationErrors{{
			Code:    "SCORE_OUT_OF_RANGE",
			Field:   field,
			Message: label + " must be between 0 and 100",
		}}
	}
	return nil
}

// Finalize validates the draft and builds the persistence payload. The
// returned record carries normalized linkage lists, the denormalized
// mapped_to display string, and linking_active forced to false; linking
// only becomes active after the external QC approval step.
func (d *Draft) Finalize(now time.Time, actor string, submitForQC bool, idx *assets.EntityIndex) (*assets.AssetRecord, error) {
	if errs := d.Validate(submitForQC); len(errs) > 0 {
		return nil, errs
	}

	var rec assets.AssetRecord
	if d.existing != nil {
		rec = *d.existing
	}

	if rec.ID == "" {
		rec.ID = d.ID
	}
	rec.Name = d.Name
	rec.Type = d.Type
	rec.ContentType = d.ContentType
	rec.AssetCategory = d.AssetCategory
	rec.ApplicationType = d.ApplicationType
	rec.Keywords = d.Keywords.Values()

	d.normalizeLinkage(&rec)
	rec.MappedTo = mappedTo(idx, rec.LinkedServiceIDs, rec.LinkedSubServiceIDs)

	rec.TaskID = d.TaskID
	rec.ProjectID = d.ProjectID
	rec.CampaignID = d.CampaignID
	rec.RepositoryItemID = d.RepositoryItemID

	if d.FileURL != "" {
		rec.FileURL = d.FileURL
	} else if d.FileName != "" {
		rec.FileURL = d.FileName
	}
	if d.ThumbnailURL != "" {
		rec.ThumbnailURL = d.ThumbnailURL
	}

	d.applyBranch(&rec)

	rec.SEOScore = d.SEOScore
	rec.GrammarScore = d.GrammarScore

	if d.existing == nil {
		rec.Date = &now
		rec.CreatedAt = now
		rec.CreatedBy = actor
	} else {
		rec.UpdatedBy = actor
	}

	if submitForQC {
		rec.Status = assets.StatusPendingQC
		rec.SubmittedBy = actor
		rec.SubmittedAt = &now
	} else if rec.Status == "" {
		rec.Status = assets.StatusDraft
	}

	// Linking never activates through the submission path, whatever the
	// record carried before.
	rec.LinkingActive = false

	return &rec, nil
}

// normalizeLinkage commits the draft's service selection into the canonical
// linked id lists.
func (d *Draft) normalizeLinkage(rec *assets.AssetRecord) {
	rec.ServiceID = d.SelectedServiceID
	rec.SubServiceID = ""
	if d.SelectedServiceID != "" {
		rec.LinkedServiceIDs = assets.JSONStringSlice{d.SelectedServiceID}
	} else {
		rec.LinkedServiceIDs = nil
	}
	if len(d.SelectedSubServiceIDs) > 0 {
		rec.LinkedSubServiceIDs = append(assets.JSONStringSlice(nil), d.SelectedSubServiceIDs...)
	} else {
		rec.LinkedSubServiceIDs = nil
	}
}

// mappedTo builds the display-only "service / sub-a, sub-b" string. It is
// never authoritative; the id lists are.
func mappedTo(idx *assets.EntityIndex, serviceIDs, subServiceIDs []string) string {
	if idx == nil {
		return ""
	}
	var service string
	if len(serviceIDs) > 0 {
		service = idx.ServiceName(serviceIDs[0])
	}
	var subs []string
	for _, id := range subServiceIDs {
		if name := idx.SubServiceName(id); name != "" {
			subs = append(subs, name)
		}
	}
	switch {
	case service != "" && len(subs) > 0:
		return service + " / " + strings.Join(subs, ", ")
	case service != "":
		return service
	case len(subs) > 0:
		return strings.Join(subs, ", ")
	}
	return ""
}

// applyBranch copies the active branch's fields onto the record.
func (d *Draft) applyBranch(rec *assets.AssetRecord) {
	switch {
	case d.web != nil:
		rec.WebURL = d.web.URL
		rec.H1 = d.web.H1
		rec.H2First = d.web.H2First
		rec.H2Second = d.web.H2Second
		rec.WebBodyContent = d.web.BodyContent
		rec.AdditionalFileURL = d.web.AdditionalFileName
	case d.seo != nil:
		rec.SEOTitle = d.seo.Title
		rec.MetaDescription = d.seo.MetaDescription
		rec.TargetURL = d.seo.TargetURL
		rec.FocusKeyword = d.seo.FocusKeyword
		rec.H1 = d.seo.H1
		rec.H2First = d.seo.H2First
		rec.H2Second = d.seo.H2Second
		rec.ContentBody = d.seo.ContentBody
	case d.smm != nil:
		rec.Platform = d.smm.Platform
		rec.MediaType = d.smm.MediaType
		rec.Caption = d.smm.Caption
		rec.Hashtags = append(assets.JSONStringSlice(nil), d.smm.Hashtags...)
	}
}
