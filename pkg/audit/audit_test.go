package audit

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s := NewStore(db)
	require.NoError(t, s.AutoMigrate())
	return s
}

func TestRecordAndListForAsset(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "asset-1", ActionCreated, "alice", ""))
	require.NoError(t, s.Record(ctx, "asset-1", ActionSubmitted, "alice", ""))
	require.NoError(t, s.Record(ctx, "asset-2", ActionCreated, "bob", ""))

	trail, err := s.ListForAsset(ctx, "asset-1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	// Newest first.
	assert.Equal(t, ActionSubmitted, trail[0].Action)
	assert.Equal(t, ActionCreated, trail[1].Action)
	assert.Equal(t, "alice", trail[0].Actor)
}

func TestListFiltersByAction(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "asset-1", ActionApproved, "carol", ""))
	require.NoError(t, s.Record(ctx, "asset-2", ActionRejected, "carol", "missing thumbnail"))
	require.NoError(t, s.Record(ctx, "asset-3", ActionApproved, "carol", ""))

	approved, err := s.List(ctx, ActionApproved, 10)
	require.NoError(t, err)
	assert.Len(t, approved, 2)

	all, err := s.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2, "limit caps the result")
}

func TestPurgeRemovesOldEvents(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	old := &EventRecord{
		ID:        "old-event",
		AssetID:   "asset-1",
		Action:    ActionCreated,
		Actor:     "alice",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, s.db.Create(old).Error)
	require.NoError(t, s.Record(ctx, "asset-1", ActionUpdated, "alice", ""))

	removed, err := s.Purge(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	trail, err := s.ListForAsset(ctx, "asset-1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, ActionUpdated, trail[0].Action)
}
