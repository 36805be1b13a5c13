package submission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/asset-library/pkg/assets"
)

func scorePtr(v float64) *float64 { return &v }

func webDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft()
	require.NoError(t, d.SelectType(assets.ApplicationWeb))
	d.Name = "Landing Page Refresh"
	d.Type = "Web Page"
	d.ContentType = assets.ContentTypeServicePage
	d.AssetCategory = "Design"
	d.FileName = "landing.html"
	return d
}

func TestValidateReportsAllFailures(t *testing.T) {
	d := NewDraft()

	errs := d.Validate(false)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.ElementsMatch(t, []string{"NAME_REQUIRED", "APPLICATION_TYPE_REQUIRED", "FILE_REQUIRED"}, codes)
}

func TestValidateScoreGates(t *testing.T) {
	d := webDraft(t)

	// Plain save does not require scores.
	assert.Empty(t, d.Validate(false))

	// QC submission requires both scores.
	errs := d.Validate(true)
	require.Len(t, errs, 2)
	assert.Equal(t, "SCORE_REQUIRED", errs[0].Code)
	assert.Equal(t, "SCORE_REQUIRED", errs[1].Code)

	d.SEOScore = scorePtr(150)
	d.GrammarScore = scorePtr(72)
	errs = d.Validate(true)
	require.Len(t, errs, 1)
	assert.Equal(t, "SCORE_OUT_OF_RANGE", errs[0].Code)
	assert.Equal(t, "seo_score", errs[0].Field)

	d.SEOScore = scorePtr(85)
	assert.Empty(t, d.Validate(true))
}

func TestValidateSkipsFileWhenEditing(t *testing.T) {
	rec := &assets.AssetRecord{
		ID:              "existing",
		Name:            "Existing Asset",
		ApplicationType: assets.ApplicationSEO,
		FileURL:         "https://cdn.example.com/doc.pdf",
	}
	d := DraftFromRecord(rec)
	d.FileURL = ""
	d.FileName = ""

	assert.Empty(t, d.Validate(false), "editing drafts keep their stored file")
}

func TestFinalizeNewWebSubmission(t *testing.T) {
	idx := assets.NewEntityIndex(assets.Collections{
		Services:    []assets.Entity{{ID: 10, Name: "Web Development"}},
		SubServices: []assets.Entity{{ID: 100, Name: "Frontend"}, {ID: 101, Name: "Backend"}},
	})

	d := webDraft(t)
	d.SelectedServiceID = "10"
	d.SelectedSubServiceIDs = []string{"100", "101"}
	d.Keywords.Add("landing")
	d.Keywords.Add("refresh")
	d.SEOScore = scorePtr(88)
	d.GrammarScore = scorePtr(91)
	web, err := d.Web()
	require.NoError(t, err)
	web.H1 = "A Fresh Landing Page"
	web.BodyContent = "Body content for the page."

	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	rec, err := d.Finalize(now, "alice", true, idx)
	require.NoError(t, err)

	assert.Equal(t, d.ID, rec.ID)
	assert.Equal(t, "Landing Page Refresh", rec.Name)
	assert.Equal(t, assets.ApplicationWeb, rec.ApplicationType)
	assert.Equal(t, assets.StatusPendingQC, rec.Status)
	assert.False(t, rec.LinkingActive, "linking only activates through QC approval")

	// Linkage normalizes into the list fields.
	assert.Equal(t, assets.JSONStringSlice{"10"}, rec.LinkedServiceIDs)
	assert.Equal(t, assets.JSONStringSlice{"100", "101"}, rec.LinkedSubServiceIDs)
	assert.Equal(t, "Web Development / Frontend, Backend", rec.MappedTo)

	assert.Equal(t, assets.JSONStringSlice{"landing", "refresh"}, rec.Keywords)
	assert.Equal(t, "A Fresh Landing Page", rec.H1)
	assert.Equal(t, "Body content for the page.", rec.WebBodyContent)

	require.NotNil(t, rec.Date)
	assert.Equal(t, now, *rec.Date)
	assert.Equal(t, "alice", rec.CreatedBy)
	assert.Equal(t, "alice", rec.SubmittedBy)
	require.NotNil(t, rec.SubmittedAt)
	assert.Equal(t, now, *rec.SubmittedAt)
}

func TestFinalizePlainSaveStaysDraft(t *testing.T) {
	d := webDraft(t)

	now := time.Now()
	rec, err := d.Finalize(now, "alice", false, nil)
	require.NoError(t, err)

	assert.Equal(t, assets.StatusDraft, rec.Status)
	assert.Empty(t, rec.SubmittedBy)
	assert.Nil(t, rec.SubmittedAt)
	assert.False(t, rec.LinkingActive)
}

func TestFinalizeValidationFailureReturnsNoRecord(t *testing.T) {
	d := webDraft(t)
	d.SEOScore = scorePtr(150)
	d.GrammarScore = scorePtr(70)

	rec, err := d.Finalize(time.Now(), "alice", true, nil)
	assert.Nil(t, rec)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "SCORE_OUT_OF_RANGE", errs[0].Code)
}

func TestFinalizeSMMBranch(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.SelectType(assets.ApplicationSMM))
	d.Name = "Spring Post"
	d.Type = "Social Post"
	d.FileName = "spring.png"
	smm, err := d.SMM()
	require.NoError(t, err)
	require.NoError(t, smm.SetPlatform("instagram"))
	require.NoError(t, smm.SetMediaType("photo"))
	require.NoError(t, smm.SetCaption("Spring is here"))
	smm.Hashtags = []string{"#spring", "#launch"}

	rec, err := d.Finalize(time.Now(), "bob", false, nil)
	require.NoError(t, err)

	assert.Equal(t, "instagram", rec.Platform)
	assert.Equal(t, "photo", rec.MediaType)
	assert.Equal(t, "Spring is here", rec.Caption)
	assert.Equal(t, assets.JSONStringSlice{"#spring", "#launch"}, rec.Hashtags)
	// No web or seo branch fields leak onto the record.
	assert.Empty(t, rec.H1)
	assert.Empty(t, rec.SEOTitle)
	assert.Empty(t, rec.WebBodyContent)
}

func TestFinalizeEditPreservesCreationStamps(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	origDate := created
	rec := &assets.AssetRecord{
		ID:              "asset-1",
		Name:            "Original Name",
		ApplicationType: assets.ApplicationSEO,
		Status:          assets.StatusRejected,
		FileURL:         "https://cdn.example.com/doc.pdf",
		Date:            &origDate,
		CreatedAt:       created,
		CreatedBy:       "alice",
	}

	d := DraftFromRecord(rec)
	d.Name = "Revised Name"

	now := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	out, err := d.Finalize(now, "bob", false, nil)
	require.NoError(t, err)

	assert.Equal(t, "asset-1", out.ID)
	assert.Equal(t, "Revised Name", out.Name)
	assert.Equal(t, "alice", out.CreatedBy)
	assert.Equal(t, "bob", out.UpdatedBy)
	require.NotNil(t, out.Date)
	assert.Equal(t, created, *out.Date, "edit keeps the original asset date")
	assert.Equal(t, assets.StatusRejected, out.Status, "plain save keeps the prior status")
}

func TestDraftFromRecordRehydratesBranch(t *testing.T) {
	rec := &assets.AssetRecord{
		ID:                  "asset-2",
		Name:                "SEO Article",
		ApplicationType:     assets.ApplicationSEO,
		SubServiceID:        "100",
		SEOTitle:            "Title Tag",
		MetaDescription:     "Meta",
		FocusKeyword:        "asset library",
		ContentBody:         "Body",
		Keywords:            assets.JSONStringSlice{"seo", "article"},
		FileURL:             "https://cdn.example.com/a.pdf",
	}

	d := DraftFromRecord(rec)
	assert.Equal(t, StepAssetDetails, d.Step)
	assert.True(t, d.Editing())
	assert.Equal(t, []string{"100"}, d.SelectedSubServiceIDs)
	assert.Equal(t, []string{"seo", "article"}, d.Keywords.Values())

	seo, err := d.SEO()
	require.NoError(t, err)
	assert.Equal(t, "Title Tag", seo.Title)
	assert.Equal(t, "asset library", seo.FocusKeyword)

	_, err = d.Web()
	assert.Error(t, err, "only the record's branch is active")
}

func TestDraftFromRecordPrefersSingularSubService(t *testing.T) {
	rec := &assets.AssetRecord{
		ID:                  "asset-3",
		Name:                "Legacy Record",
		ApplicationType:     assets.ApplicationSEO,
		SubServiceID:        "5",
		LinkedSubServiceIDs: assets.JSONStringSlice{"6", "7"},
		FileURL:             "https://cdn.example.com/b.pdf",
	}

	d := DraftFromRecord(rec)
	assert.Equal(t, []string{"5"}, d.SelectedSubServiceIDs,
		"singular sub-service wins when both linkage fields are populated")
	assert.Equal(t, rec.EffectiveSubServiceID(), d.SelectedSubServiceIDs[0])
}
