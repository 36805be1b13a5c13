// Package store persists asset records. It implements the submission
// package's Store interface and backs the catalog listing.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// ErrNotFound is returned when an asset id does not exist.
var ErrNotFound = errors.New("asset not found")

// AssetStore provides CRUD operations for asset records.
type AssetStore struct {
	db *gorm.DB
}

// NewAssetStore creates a new AssetStore.
func NewAssetStore(db *gorm.DB) *AssetStore {
	return &AssetStore{db: db}
}

// AutoMigrate creates or updates the assets table.
func (s *AssetStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(&assets.AssetRecord{}); err != nil {
		return fmt.Errorf("auto-migrate assets: %w", err)
	}
	return nil
}

// Create inserts a new asset record, assigning an id when absent.
func (s *AssetStore) Create(ctx context.Context, rec *assets.AssetRecord) (*assets.AssetRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return rec, nil
}

// Update replaces an existing asset record.
func (s *AssetStore) Update(ctx context.Context, id string, rec *assets.AssetRecord) (*assets.AssetRecord, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return rec, nil
}

// Get retrieves an asset record by id.
func (s *AssetStore) Get(ctx context.Context, id string) (*assets.AssetRecord, error) {
	var rec assets.AssetRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &rec, nil
}

// Delete removes an asset record by id.
func (s *AssetStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&assets.AssetRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete asset: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all asset records in stable creation order. Filtering is
// done in memory by the filter engine, which preserves this order.
func (s *AssetStore) List(ctx context.Context) ([]assets.AssetRecord, error) {
	var out []assets.AssetRecord
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return out, nil
}

// Save persists status or linkage changes on an already-loaded record.
func (s *AssetStore) Save(ctx context.Context, rec *assets.AssetRecord) error {
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("save asset: %w", err)
	}
	return nil
}
