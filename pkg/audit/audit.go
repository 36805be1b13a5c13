// Package audit records an activity trail for asset records: creations,
// edits, QC submissions, and QC decisions, with the acting user and a
// retention-bounded history.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event actions recorded on the trail.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionSubmitted = "submitted_for_qc"
	ActionApproved  = "qc_approved"
	ActionRejected  = "qc_rejected"
)

// EventRecord is one entry on the asset activity trail.
type EventRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	AssetID   string    `gorm:"column:asset_id;index" json:"asset_id"`
	Action    string    `gorm:"column:action;index" json:"action"`
	Actor     string    `gorm:"column:actor" json:"actor"`
	Detail    string    `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName returns the GORM table name.
func (EventRecord) TableName() string { return "audit_events" }

// Store persists and queries audit events.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new audit Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the audit table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&EventRecord{}); err != nil {
		return fmt.Errorf("auto-migrate audit events: %w", err)
	}
	return nil
}

// Record appends one event to the trail. Failures are returned to the
// caller for logging; the trail is advisory and never blocks the action
// it describes.
func (s *Store) Record(ctx context.Context, assetID, action, actor, detail string) error {
	event := &EventRecord{
		ID:      uuid.New().String(),
		AssetID: assetID,
		Action:  action,
		Actor:   actor,
		Detail:  detail,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

// ListForAsset returns the trail for one asset, newest first.
func (s *Store) ListForAsset(ctx context.Context, assetID string) ([]EventRecord, error) {
	var out []EventRecord
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}

// List returns recent events across all assets, newest first, optionally
// filtered by action and capped at limit.
func (s *Store) List(ctx context.Context, action string, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	var out []EventRecord
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}

// Purge deletes events older than the cutoff, returning the count removed.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&EventRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge audit events: %w", res.Error)
	}
	return res.RowsAffected, nil
}
