package assets

import (
	"reflect"
	"strings"
	"sync"
	"time"
)

// FilterAll is the sentinel criteria value meaning "no constraint" for a
// dimension. An empty string is treated the same way.
const FilterAll = "All"

// Date bucket values accepted by FilterCriteria.DateRange.
const (
	DateToday   = "today"
	DateWeek    = "week"
	DateMonth   = "month"
	DateQuarter = "quarter"
	DateYear    = "year"
)

// Usage status values accepted by FilterCriteria.UsageStatus.
const (
	UsageUsed     = "Used"
	UsageUnused   = "Unused"
	UsageArchived = "Archived"
)

// FilterCriteria selects at most one value per filter dimension. Dimensions
// set to FilterAll (or left empty) do not constrain the result. Criteria are
// evaluated as independent AND-combined predicates.
type FilterCriteria struct {
	Type            string `json:"type,omitempty"`
	Category        string `json:"category,omitempty"`
	ContentType     string `json:"content_type,omitempty"`
	ApplicationType string `json:"application_type,omitempty"`
	Campaign        string `json:"campaign,omitempty"`
	Service         string `json:"service,omitempty"`
	SubService      string `json:"sub_service,omitempty"`
	Project         string `json:"project,omitempty"`
	Task            string `json:"task,omitempty"`
	RepositoryItem  string `json:"repository_item,omitempty"`
	Creator         string `json:"creator,omitempty"`
	DateRange       string `json:"date_range,omitempty"`
	UsageStatus     string `json:"usage_status,omitempty"`
}

// active reports whether a criteria value constrains the result.
func active(v string) bool {
	return v != "" && v != FilterAll
}

// IsEmpty reports whether no dimension is constrained.
func (c FilterCriteria) IsEmpty() bool {
	return !active(c.Type) && !active(c.Category) && !active(c.ContentType) &&
		!active(c.ApplicationType) && !active(c.Campaign) && !active(c.Service) &&
		!active(c.SubService) && !active(c.Project) && !active(c.Task) &&
		!active(c.RepositoryItem) && !active(c.Creator) && !active(c.DateRange) &&
		!active(c.UsageStatus)
}

// Filter evaluates criteria and a free-text query against an asset
// collection, producing an order-preserving filtered view. It is a pure
// function of its inputs; the date-range predicate buckets against the
// wall clock at call time.
func Filter(records []AssetRecord, c FilterCriteria, query string, idx *EntityIndex) []AssetRecord {
	return FilterAt(time.Now(), records, c, query, idx)
}

// FilterAt is Filter with an explicit evaluation time for the date-range
// predicate.
func FilterAt(now time.Time, records []AssetRecord, c FilterCriteria, query string, idx *EntityIndex) []AssetRecord {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]AssetRecord, 0, len(records))
	for _, rec := range records {
		if !matchesCriteria(now, &rec, c) {
			continue
		}
		if query != "" && !matchesSearch(&rec, query, idx) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesCriteria(now time.Time, rec *AssetRecord, c FilterCriteria) bool {
	if active(c.Type) && rec.Type != c.Type {
		return false
	}
	if active(c.Category) && rec.AssetCategory != c.Category {
		return false
	}
	if active(c.ContentType) && rec.ContentType != c.ContentType {
		return false
	}
	if active(c.ApplicationType) && string(rec.ApplicationType) != c.ApplicationType {
		return false
	}
	if active(c.Campaign) && rec.EffectiveCampaignID() != c.Campaign {
		return false
	}
	if active(c.Service) && rec.EffectiveServiceID() != c.Service {
		return false
	}
	if active(c.SubService) && rec.EffectiveSubServiceID() != c.SubService {
		return false
	}
	if active(c.Project) && rec.EffectiveProjectID() != c.Project {
		return false
	}
	if active(c.Task) && rec.EffectiveTaskID() != c.Task {
		return false
	}
	if active(c.RepositoryItem) && rec.EffectiveRepositoryItemID() != c.RepositoryItem {
		return false
	}
	if active(c.Creator) && rec.CreatedBy != c.Creator {
		return false
	}
	if active(c.DateRange) && !matchesDateBucket(now, rec.Date, c.DateRange) {
		return false
	}
	if active(c.UsageStatus) && !matchesUsageStatus(rec, c.UsageStatus) {
		return false
	}
	return true
}

// matchesDateBucket buckets an asset date against now. An asset without a
// date never matches a constrained bucket.
func matchesDateBucket(now time.Time, date *time.Time, bucket string) bool {
	if date == nil {
		return false
	}
	switch bucket {
	case DateToday:
		y1, m1, d1 := now.Date()
		y2, m2, d2 := date.In(now.Location()).Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case DateWeek:
		return !date.Before(now.AddDate(0, 0, -7))
	case DateMonth:
		return !date.Before(now.AddDate(0, 0, -30))
	case DateQuarter:
		return !date.Before(now.AddDate(0, 0, -90))
	case DateYear:
		return !date.Before(now.AddDate(0, 0, -365))
	}
	return false
}

// matchesUsageStatus classifies an asset as Used, Unused, or Archived.
// Usage count and lifecycle status are independent dimensions: an asset can
// be both Used and non-Archived.
func matchesUsageStatus(rec *AssetRecord, status string) bool {
	switch status {
	case UsageUsed:
		return rec.UsageCount > 0
	case UsageUnused:
		return rec.UsageCount == 0
	case UsageArchived:
		return rec.Status == StatusArchived
	}
	return false
}

// matchesSearch checks the fixed set of searchable fields for a
// case-insensitive substring match. Linked relations are searched by their
// resolved names, not their ids.
func matchesSearch(rec *AssetRecord, query string, idx *EntityIndex) bool {
	fields := []string{
		rec.Name,
		rec.Type,
		rec.AssetCategory,
		string(rec.Status),
		rec.ContentType,
	}
	if idx != nil {
		fields = append(fields,
			idx.ServiceName(rec.EffectiveServiceID()),
			idx.SubServiceName(rec.EffectiveSubServiceID()),
			idx.TaskName(rec.EffectiveTaskID()),
			idx.CampaignName(rec.EffectiveCampaignID()),
			idx.ProjectName(rec.EffectiveProjectID()),
			idx.RepositoryItemName(rec.EffectiveRepositoryItemID()),
		)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// View is a memoizing wrapper around Filter. It caches the last result
// keyed on the exact dependency set: the asset slice reference, the
// criteria, the query, and each entity collection reference. Re-evaluating
// with unchanged inputs returns the cached slice.
type View struct {
	mu  sync.Mutex
	idx *EntityIndex

	haveLast bool
	assets   sliceKeyAny
	criteria FilterCriteria
	query    string
	colls    [7]sliceKey
	result   []AssetRecord
}

// NewView creates an empty view.
func NewView() *View {
	return &View{idx: &EntityIndex{}}
}

type sliceKeyAny struct {
	ptr uintptr
	len int
}

func assetKey(s []AssetRecord) sliceKeyAny {
	return sliceKeyAny{ptr: reflect.ValueOf(s).Pointer(), len: len(s)}
}

// Filter returns the filtered view, recomputing only when an input changed.
func (v *View) Filter(records []AssetRecord, c FilterCriteria, query string, colls Collections) []AssetRecord {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.idx.Rebuild(colls)

	keys := [7]sliceKey{
		keyOf(colls.Users), keyOf(colls.Services), keyOf(colls.SubServices),
		keyOf(colls.Tasks), keyOf(colls.Campaigns), keyOf(colls.Projects),
		keyOf(colls.RepositoryItems),
	}
	ak := assetKey(records)
	if v.haveLast && v.assets == ak && v.criteria == c && v.query == query && v.colls == keys {
		return v.result
	}

	v.result = Filter(records, c, query, v.idx)
	v.assets = ak
	v.criteria = c
	v.query = query
	v.colls = keys
	v.haveLast = true
	return v.result
}

// Index exposes the view's entity index for name resolution by callers.
func (v *View) Index() *EntityIndex {
	return v.idx
}
