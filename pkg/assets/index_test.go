package assets

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollections() Collections {
	return Collections{
		Users:    []Entity{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
		Services: []Entity{{ID: 10, Name: "Web Development"}},
		SubServices: []Entity{
			{ID: 100, Name: "Frontend"},
			{ID: 101, Name: "Backend"},
		},
		Tasks:           []Entity{{ID: 20, Name: "Launch Page"}},
		Campaigns:       []Entity{{ID: 30, Name: "Holiday Push"}},
		Projects:        []Entity{{ID: 40, Name: "Rebrand"}},
		RepositoryItems: []Entity{{ID: 50, Name: "Logo Pack"}},
	}
}

func TestEntityIndexLookup(t *testing.T) {
	idx := NewEntityIndex(testCollections())

	u, ok := idx.User("1")
	require.True(t, ok)
	assert.Equal(t, "Alice", u.Name)

	svc, ok := idx.Service("10")
	require.True(t, ok)
	assert.Equal(t, "Web Development", svc.Name)

	_, ok = idx.User("999")
	assert.False(t, ok, "absent ids miss without error")

	assert.Equal(t, "Frontend", idx.SubServiceName("100"))
	assert.Equal(t, "", idx.SubServiceName("999"))
	assert.Equal(t, "", idx.ServiceName(""))
}

func TestEntityIndexStringCoercion(t *testing.T) {
	idx := NewEntityIndex(testCollections())

	// All id comparisons are string-coerced; numeric forms must match.
	e, ok := idx.Campaign("30")
	require.True(t, ok)
	assert.Equal(t, int64(30), e.ID)
	assert.Equal(t, "30", e.Key())
}

func TestEntityIndexRebuildMemoized(t *testing.T) {
	colls := testCollections()
	idx := NewEntityIndex(colls)

	before := reflect.ValueOf(idx.users).Pointer()
	idx.Rebuild(colls)
	// Same slice references: the map must not be rebuilt.
	assert.Equal(t, before, reflect.ValueOf(idx.users).Pointer())

	// Replacing one collection rebuilds only that lookup.
	colls.Users = []Entity{{ID: 3, Name: "Carol"}}
	idx.Rebuild(colls)
	_, ok := idx.User("1")
	assert.False(t, ok)
	_, ok = idx.User("3")
	assert.True(t, ok)
	_, ok = idx.Service("10")
	assert.True(t, ok, "untouched collections keep their entries")
}
