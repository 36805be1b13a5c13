package assets

import (
	"reflect"
	"strconv"
)

// Entity is the minimal projection of a linked master record that the
// catalog needs: a unique numeric id and a display name.
type Entity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Key returns the string form of the entity id. Filter values arrive as
// strings, so all id comparisons are string-coerced.
func (e Entity) Key() string {
	return strconv.FormatInt(e.ID, 10)
}

// Collections holds the linked-entity collections the index is built from.
type Collections struct {
	Users           []Entity
	Services        []Entity
	SubServices     []Entity
	Tasks           []Entity
	Campaigns       []Entity
	Projects        []Entity
	RepositoryItems []Entity
}

// sliceKey identifies a slice value for memoization: the backing array
// pointer plus the length. Two keys are equal iff the slice reference
// did not change.
type sliceKey struct {
	ptr uintptr
	len int
}

func keyOf(s []Entity) sliceKey {
	return sliceKey{ptr: reflect.ValueOf(s).Pointer(), len: len(s)}
}

// EntityIndex provides O(1) id lookup over the linked-entity collections.
// Rebuild is memoized per collection on the slice reference, so callers can
// invoke it on every evaluation without paying for unchanged collections.
// Absent ids simply miss; there are no error conditions.
type EntityIndex struct {
	users           map[string]Entity
	services        map[string]Entity
	subServices     map[string]Entity
	tasks           map[string]Entity
	campaigns       map[string]Entity
	projects        map[string]Entity
	repositoryItems map[string]Entity

	keys [7]sliceKey
}

// NewEntityIndex builds an index over the given collections.
func NewEntityIndex(c Collections) *EntityIndex {
	idx := &EntityIndex{}
	idx.Rebuild(c)
	return idx
}

// Rebuild refreshes the lookup maps for any collection whose slice
// reference changed since the last build.
func (idx *EntityIndex) Rebuild(c Collections) {
	sources := [7]struct {
		entities []Entity
		target   *map[string]Entity
	}{
		{c.Users, &idx.users},
		{c.Services, &idx.services},
		{c.SubServices, &idx.subServices},
		{c.Tasks, &idx.tasks},
		{c.Campaigns, &idx.campaigns},
		{c.Projects, &idx.projects},
		{c.RepositoryItems, &idx.repositoryItems},
	}
	for i, src := range sources {
		key := keyOf(src.entities)
		if *src.target != nil && idx.keys[i] == key {
			continue
		}
		m := make(map[string]Entity, len(src.entities))
		for _, e := range src.entities {
			m[e.Key()] = e
		}
		*src.target = m
		idx.keys[i] = key
	}
}

// User looks up a user entity by string-coerced id.
func (idx *EntityIndex) User(id string) (Entity, bool) {
	e, ok := idx.users[id]
	return e, ok
}

// Service looks up a service entity by string-coerced id.
func (idx *EntityIndex) Service(id string) (Entity, bool) {
	e, ok := idx.services[id]
	return e, ok
}

// SubService looks up a sub-service entity by string-coerced id.
func (idx *EntityIndex) SubService(id string) (Entity, bool) {
	e, ok := idx.subServices[id]
	return e, ok
}

// Task looks up a task entity by string-coerced id.
func (idx *EntityIndex) Task(id string) (Entity, bool) {
	e, ok := idx.tasks[id]
	return e, ok
}

// Campaign looks up a campaign entity by string-coerced id.
func (idx *EntityIndex) Campaign(id string) (Entity, bool) {
	e, ok := idx.campaigns[id]
	return e, ok
}

// Project looks up a project entity by string-coerced id.
func (idx *EntityIndex) Project(id string) (Entity, bool) {
	e, ok := idx.projects[id]
	return e, ok
}

// RepositoryItem looks up a repository item entity by string-coerced id.
func (idx *EntityIndex) RepositoryItem(id string) (Entity, bool) {
	e, ok := idx.repositoryItems[id]
	return e, ok
}

// nameOf resolves an id to the entity name in the given map, or "" on miss.
func nameOf(m map[string]Entity, id string) string {
	if id == "" {
		return ""
	}
	if e, ok := m[id]; ok {
		return e.Name
	}
	return ""
}

// ServiceName resolves a service id to its display name, or "".
func (idx *EntityIndex) ServiceName(id string) string { return nameOf(idx.services, id) }

// SubServiceName resolves a sub-service id to its display name, or "".
func (idx *EntityIndex) SubServiceName(id string) string { return nameOf(idx.subServices, id) }

// TaskName resolves a task id to its display name, or "".
func (idx *EntityIndex) TaskName(id string) string { return nameOf(idx.tasks, id) }

// CampaignName resolves a campaign id to its display name, or "".
func (idx *EntityIndex) CampaignName(id string) string { return nameOf(idx.campaigns, id) }

// ProjectName resolves a project id to its display name, or "".
func (idx *EntityIndex) ProjectName(id string) string { return nameOf(idx.projects, id) }

// RepositoryItemName resolves a repository item id to its display name, or "".
func (idx *EntityIndex) RepositoryItemName(id string) string { return nameOf(idx.repositoryItems, id) }
