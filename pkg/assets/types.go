// Package assets defines the asset catalog domain model: the asset record,
// its lifecycle machine, the linked-entity index, and the filter engine that
// evaluates catalog criteria against asset collections.
package assets

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ApplicationType identifies which submission branch produced an asset.
type ApplicationType string

const (
	ApplicationWeb ApplicationType = "web"
	ApplicationSEO ApplicationType = "seo"
	ApplicationSMM ApplicationType = "smm"
)

// Valid reports whether t is one of the known application types.
func (t ApplicationType) Valid() bool {
	switch t {
	case ApplicationWeb, ApplicationSEO, ApplicationSMM:
		return true
	}
	return false
}

// Content types sourced from the content-type master.
const (
	ContentTypeBlog           = "Blog"
	ContentTypeServicePage    = "Service Page"
	ContentTypeSubServicePage = "Sub-Service Page"
	ContentTypeSMMPost        = "SMM Post"
	ContentTypeBacklinkAsset  = "Backlink Asset"
	ContentTypeWebUIAsset     = "Web UI Asset"
)

// JSONStringSlice is a custom GORM type for []string stored as JSON.
type JSONStringSlice []string

// Scan implements the sql.Scanner interface for JSONStringSlice.
func (s *JSONStringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	default:
		return fmt.Errorf("unsupported type for JSONStringSlice: %T", value)
	}
	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for JSONStringSlice.
func (s JSONStringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// AssetRecord is the catalog entity. Linkage relations each carry a singular
// field and a list field; the singular field takes precedence when both are
// populated (see the Effective* accessors).
type AssetRecord struct {
	ID              string          `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name            string          `gorm:"column:name;not null" json:"name"`
	Type            string          `gorm:"column:type;index" json:"type"`
	AssetCategory   string          `gorm:"column:asset_category;index" json:"asset_category"`
	ContentType     string          `gorm:"column:content_type" json:"content_type"`
	ApplicationType ApplicationType `gorm:"column:application_type" json:"application_type"`
	Status          Status          `gorm:"column:status;default:Draft;not null" json:"status"`

	ServiceID               string          `gorm:"column:service_id" json:"service_id,omitempty"`
	LinkedServiceIDs        JSONStringSlice `gorm:"column:linked_service_ids;type:text" json:"linked_service_ids,omitempty"`
	SubServiceID            string          `gorm:"column:sub_service_id" json:"sub_service_id,omitempty"`
	LinkedSubServiceIDs     JSONStringSlice `gorm:"column:linked_sub_service_ids;type:text" json:"linked_sub_service_ids,omitempty"`
	TaskID                  string          `gorm:"column:task_id" json:"task_id,omitempty"`
	LinkedTaskIDs           JSONStringSlice `gorm:"column:linked_task_ids;type:text" json:"linked_task_ids,omitempty"`
	CampaignID              string          `gorm:"column:campaign_id" json:"campaign_id,omitempty"`
	LinkedCampaignIDs       JSONStringSlice `gorm:"column:linked_campaign_ids;type:text" json:"linked_campaign_ids,omitempty"`
	ProjectID               string          `gorm:"column:project_id" json:"project_id,omitempty"`
	LinkedProjectIDs        JSONStringSlice `gorm:"column:linked_project_ids;type:text" json:"linked_project_ids,omitempty"`
	RepositoryItemID        string          `gorm:"column:repository_item_id" json:"repository_item_id,omitempty"`
	LinkedRepositoryItemIDs JSONStringSlice `gorm:"column:linked_repository_item_ids;type:text" json:"linked_repository_item_ids,omitempty"`

	Keywords JSONStringSlice `gorm:"column:keywords;type:text" json:"keywords,omitempty"`

	SEOScore     *float64 `gorm:"column:seo_score" json:"seo_score,omitempty"`
	GrammarScore *float64 `gorm:"column:grammar_score" json:"grammar_score,omitempty"`

	// UsageCount is derived by external consumers of the asset; the core
	// treats it as read-only.
	UsageCount int `gorm:"column:usage_count;default:0" json:"usage_count"`

	// MappedTo is a denormalized display string (service / sub-services).
	// It is not authoritative; the linkage id fields are.
	MappedTo      string `gorm:"column:mapped_to" json:"mapped_to,omitempty"`
	LinkingActive bool   `gorm:"column:linking_active;default:false" json:"linking_active"`

	FileURL      string `gorm:"column:file_url" json:"file_url,omitempty"`
	ThumbnailURL string `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`

	// Web branch fields.
	WebURL            string `gorm:"column:web_url" json:"web_url,omitempty"`
	H1                string `gorm:"column:h1" json:"h1,omitempty"`
	H2First           string `gorm:"column:h2_first" json:"h2_first,omitempty"`
	H2Second          string `gorm:"column:h2_second" json:"h2_second,omitempty"`
	WebBodyContent    string `gorm:"column:web_body_content" json:"web_body_content,omitempty"`
	AdditionalFileURL string `gorm:"column:additional_file_url" json:"additional_file_url,omitempty"`

	// SEO branch fields.
	SEOTitle        string `gorm:"column:seo_title" json:"seo_title,omitempty"`
	MetaDescription string `gorm:"column:meta_description" json:"meta_description,omitempty"`
	TargetURL       string `gorm:"column:target_url" json:"target_url,omitempty"`
	FocusKeyword    string `gorm:"column:focus_keyword" json:"focus_keyword,omitempty"`
	ContentBody     string `gorm:"column:content_body" json:"content_body,omitempty"`

	// SMM branch fields.
	Platform  string          `gorm:"column:platform" json:"platform,omitempty"`
	MediaType string          `gorm:"column:media_type" json:"media_type,omitempty"`
	Caption   string          `gorm:"column:caption" json:"caption,omitempty"`
	Hashtags  JSONStringSlice `gorm:"column:hashtags;type:text" json:"hashtags,omitempty"`

	Date        *time.Time `gorm:"column:date" json:"date,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`

	CreatedBy   string `gorm:"column:created_by" json:"created_by,omitempty"`
	SubmittedBy string `gorm:"column:submitted_by" json:"submitted_by,omitempty"`
	DesignedBy  string `gorm:"column:designed_by" json:"designed_by,omitempty"`
	UpdatedBy   string `gorm:"column:updated_by" json:"updated_by,omitempty"`
}

// TableName returns the GORM table name.
func (AssetRecord) TableName() string { return "assets" }

// effectiveID resolves a singular-or-list linkage pair: the singular field
// wins, otherwise the first element of the list.
func effectiveID(singular string, list []string) string {
	if singular != "" {
		return singular
	}
	if len(list) > 0 {
		return list[0]
	}
	return ""
}

// EffectiveServiceID returns the resolved linked service id.
func (a *AssetRecord) EffectiveServiceID() string {
	return effectiveID(a.ServiceID, a.LinkedServiceIDs)
}

// EffectiveSubServiceID returns the resolved linked sub-service id.
func (a *AssetRecord) EffectiveSubServiceID() string {
	return effectiveID(a.SubServiceID, a.LinkedSubServiceIDs)
}

// EffectiveTaskID returns the resolved linked task id.
func (a *AssetRecord) EffectiveTaskID() string {
	return effectiveID(a.TaskID, a.LinkedTaskIDs)
}

// EffectiveCampaignID returns the resolved linked campaign id.
func (a *AssetRecord) EffectiveCampaignID() string {
	return effectiveID(a.CampaignID, a.LinkedCampaignIDs)
}

// EffectiveProjectID returns the resolved linked project id.
func (a *AssetRecord) EffectiveProjectID() string {
	return effectiveID(a.ProjectID, a.LinkedProjectIDs)
}

// EffectiveRepositoryItemID returns the resolved linked repository item id.
func (a *AssetRecord) EffectiveRepositoryItemID() string {
	return effectiveID(a.RepositoryItemID, a.LinkedRepositoryItemIDs)
}
