package masters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionsCacheReusesValue(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.db.Create(&Service{Name: "Web Development"}).Error)

	c := NewCollectionsCache(s, time.Minute)

	first, err := c.Collections()
	require.NoError(t, err)
	require.Len(t, first.Services, 1)

	// A row added behind the cache is invisible until expiry or
	// invalidation.
	require.NoError(t, s.db.Create(&Service{Name: "Design"}).Error)
	second, err := c.Collections()
	require.NoError(t, err)
	assert.Len(t, second.Services, 1)

	c.Invalidate()
	third, err := c.Collections()
	require.NoError(t, err)
	assert.Len(t, third.Services, 2)
}

func TestCollectionsCacheExpires(t *testing.T) {
	s := testStore(t)
	c := NewCollectionsCache(s, 10*time.Millisecond)

	_, err := c.Collections()
	require.NoError(t, err)

	require.NoError(t, s.db.Create(&Task{Name: "Launch"}).Error)
	time.Sleep(20 * time.Millisecond)

	colls, err := c.Collections()
	require.NoError(t, err)
	assert.Len(t, colls.Tasks, 1)
}

func TestCollectionsCacheUpsertInvalidates(t *testing.T) {
	s := testStore(t)
	c := NewCollectionsCache(s, time.Minute)

	_, err := c.Collections()
	require.NoError(t, err)

	_, err = c.UpsertCategory("Design")
	require.NoError(t, err)

	// The write-through invalidated the cache; the next read reloads.
	_, err = c.Collections()
	require.NoError(t, err)

	cats, err := s.Categories()
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Design", cats[0].Name)
}
