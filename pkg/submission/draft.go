// Package submission drives the guided asset intake workflow: application
// type selection, branch-specific form entry, file attachment, and the final
// classification stage, ending in a validated save or QC submission.
package submission

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// Step identifies a workflow step.
type Step string

const (
	StepSelectType   Step = "select-type"
	StepFormFields   Step = "form-fields"
	StepUploadFile   Step = "upload-file"
	StepAssetDetails Step = "asset-details"
)

// Draft is the single in-progress submission record. Branch-specific fields
// live in exactly one of the web/seo/smm structs, allocated when the
// application type is selected; the accessors reject foreign-branch access
// so a draft can never carry fields from an inactive branch.
type Draft struct {
	ID   string
	Step Step

	// ApplicationType locks on first selection and stays locked until the
	// draft is saved or cancelled.
	ApplicationType assets.ApplicationType

	Name          string
	Type          string
	ContentType   string
	AssetCategory string
	Keywords      *KeywordSet

	// Map-to-source-work block.
	SelectedServiceID     string
	SelectedSubServiceIDs []string
	TaskID                string
	ProjectID             string
	CampaignID            string
	RepositoryItemID      string

	// FileName is the transient selected file; FileURL is a previously
	// stored file when editing. PreviewURL is display-only.
	FileName     string
	FileURL      string
	PreviewURL   string
	ThumbnailURL string

	SEOScore     *float64
	GrammarScore *float64

	web *WebFields
	seo *SEOFields
	smm *SMMFields

	// existing is the record being edited, nil for new submissions.
	existing *assets.AssetRecord
}

// WebFields is the web-article branch of the draft.
type WebFields struct {
	URL                string
	H1                 string
	H2First            string
	H2Second           string
	BodyContent        string
	ThumbnailName      string
	AdditionalFileName string
}

// SEOFields is the SEO-content branch of the draft.
type SEOFields struct {
	Title           string
	MetaDescription string
	TargetURL       string
	FocusKeyword    string
	H1              string
	H2First         string
	H2Second        string
	ContentBody     string
	ThumbnailName   string
}

// SMMFields is the social-media branch of the draft.
type SMMFields struct {
	Platform  string
	MediaType string
	Caption   string
	Hashtags  []string
}

// SMMPlatforms is the set of supported social platforms.
var SMMPlatforms = mapset.NewSet(
	"facebook", "instagram", "twitter", "linkedin", "youtube",
)

// SMMMediaTypes maps each platform to its available media types.
var SMMMediaTypes = map[string][]string{
	"facebook":  {"post", "photo", "video", "reel"},
	"instagram": {"photo", "video", "story", "reel"},
	"twitter":   {"tweet", "photo", "video", "gif"},
	"linkedin":  {"post", "article", "photo", "video"},
	"youtube":   {"video", "short"},
}

// CaptionLimits is the platform-specific maximum caption length.
var CaptionLimits = map[string]int{
	"twitter":   280,
	"instagram": 2200,
	"linkedin":  3000,
	"facebook":  63206,
	"youtube":   5000,
}

// SetPlatform selects the social platform. Changing platform clears a media
// type that the new platform does not offer.
func (f *SMMFields) SetPlatform(platform string) error {
	if !SMMPlatforms.Contains(platform) {
		return &ValidationError{
			Code:    "PLATFORM_INVALID",
			Field:   "platform",
			Message: fmt.Sprintf("unsupported platform %q", platform),
		}
	}
	f.Platform = platform
	if f.MediaType != "" && !mediaTypeAllowed(platform, f.MediaType) {
		f.MediaType = ""
	}
	return nil
}

// SetMediaType selects a media type valid for the current platform.
func (f *SMMFields) SetMediaType(mediaType string) error {
	if f.Platform == "" {
		return &ValidationError{
			Code:    "PLATFORM_REQUIRED",
			Field:   "platform",
			Message: "select a platform before choosing a media type",
		}
	}
	if !mediaTypeAllowed(f.Platform, mediaType) {
		return &ValidationError{
			Code:    "MEDIA_TYPE_INVALID",
			Field:   "media_type",
			Message: fmt.Sprintf("media type %q is not available on %s", mediaType, f.Platform),
		}
	}
	f.MediaType = mediaType
	return nil
}

// SetCaption sets the caption, enforcing the platform-specific max length.
func (f *SMMFields) SetCaption(caption string) error {
	if limit, ok := CaptionLimits[f.Platform]; ok && len(caption) > limit {
		return &ValidationError{
			Code:    "CAPTION_TOO_LONG",
			Field:   "caption",
			Message: fmt.Sprintf("caption exceeds the %d character limit for %s", limit, f.Platform),
		}
	}
	f.Caption = caption
	return nil
}

func mediaTypeAllowed(platform, mediaType string) bool {
	for _, mt := range SMMMediaTypes[platform] {
		if mt == mediaType {
			return true
		}
	}
	return false
}

// NewDraft creates an empty draft at the type-selection step.
func NewDraft() *Draft {
	return &Draft{
		ID:       uuid.New().String(),
		Step:     StepSelectType,
		Keywords: NewKeywordSet(),
	}
}

// Web returns the web branch fields, or a StateError if the web branch is
// not the active application type.
func (d *Draft) Web() (*WebFields, error) {
	if d.web == nil {
		return nil, d.branchError(assets.ApplicationWeb)
	}
	return d.web, nil
}

// SEO returns the seo branch fields, or a StateError if the seo branch is
// not the active application type.
func (d *Draft) SEO() (*SEOFields, error) {
	if d.seo == nil {
		return nil, d.branchError(assets.ApplicationSEO)
	}
	return d.seo, nil
}

// SMM returns the smm branch fields, or a StateError if the smm branch is
// not the active application type.
func (d *Draft) SMM() (*SMMFields, error) {
	if d.smm == nil {
		return nil, d.branchError(assets.ApplicationSMM)
	}
	return d.smm, nil
}

func (d *Draft) branchError(want assets.ApplicationType) error {
	return &StateError{
		Code:    "BRANCH_NOT_ACTIVE",
		Step:    d.Step,
		Message: fmt.Sprintf("draft application type is %q, not %q", d.ApplicationType, want),
	}
}

// Editing reports whether this draft rehydrates an existing record.
func (d *Draft) Editing() bool {
	return d.existing != nil
}

// KeywordSet is an ordered set of keyword strings: insertion order is
// preserved and duplicates are rejected.
type KeywordSet struct {
	order []string
	seen  mapset.Set[string]
}

// NewKeywordSet creates a keyword set seeded with the given keywords.
func NewKeywordSet(keywords ...string) *KeywordSet {
	ks := &KeywordSet{seen: mapset.NewSet[string]()}
	for _, kw := range keywords {
		ks.Add(kw)
	}
	return ks
}

// Add appends a keyword, returning false for empty strings and duplicates.
func (k *KeywordSet) Add(keyword string) bool {
	if keyword == "" || !k.seen.Add(keyword) {
		return false
	}
	k.order = append(k.order, keyword)
	return true
}

// Remove deletes a keyword, preserving the order of the rest.
func (k *KeywordSet) Remove(keyword string) bool {
	if !k.seen.Contains(keyword) {
		return false
	}
	k.seen.Remove(keyword)
	for i, kw := range k.order {
		if kw == keyword {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports membership.
func (k *KeywordSet) Contains(keyword string) bool {
	return k.seen.Contains(keyword)
}

// Values returns the keywords in insertion order.
func (k *KeywordSet) Values() []string {
	out := make([]string, len(k.order))
	copy(out, k.order)
	return out
}

// Len returns the number of keywords.
func (k *KeywordSet) Len() int {
	return len(k.order)
}
