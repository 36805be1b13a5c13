package submission

import (
	"github.com/contentstudio/asset-library/pkg/assets"
)

// DraftFromRecord rehydrates an editing draft from an existing record,
// entering directly at asset-details completeness. Singular/plural linkage
// fields are normalized once here (singular preferred) so later reads never
// re-resolve them.
func DraftFromRecord(rec *assets.AssetRecord) *Draft {
	existing := *rec
	d := &Draft{
		ID:       rec.ID,
		Step:     StepAssetDetails,
		Name:     rec.Name,
		Type:     rec.Type,
		Keywords: NewKeywordSet(rec.Keywords...),
		existing: &existing,
	}
	d.ApplicationType = rec.ApplicationType
	d.ContentType = rec.ContentType
	d.AssetCategory = rec.AssetCategory

	d.SelectedServiceID = rec.EffectiveServiceID()
	if rec.SubServiceID != "" {
		d.SelectedSubServiceIDs = []string{rec.SubServiceID}
	} else if len(rec.LinkedSubServiceIDs) > 0 {
		d.SelectedSubServiceIDs = append([]string(nil), rec.LinkedSubServiceIDs...)
	}
	d.TaskID = rec.EffectiveTaskID()
	d.ProjectID = rec.EffectiveProjectID()
	d.CampaignID = rec.EffectiveCampaignID()
	d.RepositoryItemID = rec.EffectiveRepositoryItemID()

	d.FileURL = rec.FileURL
	d.ThumbnailURL = rec.ThumbnailURL
	d.SEOScore = rec.SEOScore
	d.GrammarScore = rec.GrammarScore

	switch rec.ApplicationType {
	case assets.ApplicationWeb:
		d.web = &WebFields{
			URL:         rec.WebURL,
			H1:          rec.H1,
			H2First:     rec.H2First,
			H2Second:    rec.H2Second,
			BodyContent: rec.WebBodyContent,
		}
	case assets.ApplicationSEO:
		d.seo = &SEOFields{
			Title:           rec.SEOTitle,
			MetaDescription: rec.MetaDescription,
			TargetURL:       rec.TargetURL,
			FocusKeyword:    rec.FocusKeyword,
			H1:              rec.H1,
			H2First:         rec.H2First,
			H2Second:        rec.H2Second,
			ContentBody:     rec.ContentBody,
		}
	case assets.ApplicationSMM:
		d.smm = &SMMFields{
			Platform:  rec.Platform,
			MediaType: rec.MediaType,
			Caption:   rec.Caption,
			Hashtags:  append([]string(nil), rec.Hashtags...),
		}
	}

	return d
}
