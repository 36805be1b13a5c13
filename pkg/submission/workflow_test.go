package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/asset-library/pkg/assets"
	"github.com/contentstudio/asset-library/pkg/scoring"
)

// fakeStore records calls and optionally fails.
type fakeStore struct {
	mu      sync.Mutex
	created []*assets.AssetRecord
	updated []*assets.AssetRecord
	failure error
}

func (f *fakeStore) Create(ctx context.Context, rec *assets.AssetRecord) (*assets.AssetRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	f.created = append(f.created, rec)
	return rec, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, rec *assets.AssetRecord) (*assets.AssetRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	f.updated = append(f.updated, rec)
	return rec, nil
}

func (f *fakeStore) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created), len(f.updated)
}

func TestWorkflowOpenGuardsSingleDraft(t *testing.T) {
	w := NewWorkflow(&fakeStore{}, nil, nil, "alice")
	defer w.Close()

	_, err := w.Open("")
	require.NoError(t, err)

	_, err = w.Open("")
	assert.Equal(t, "DRAFT_IN_PROGRESS", stateCode(t, err))
}

func TestWorkflowOpenPreselected(t *testing.T) {
	w := NewWorkflow(&fakeStore{}, nil, nil, "alice")
	defer w.Close()

	// The quick-upload shortcut enters directly at form-fields.
	d, err := w.Open(assets.ApplicationSMM)
	require.NoError(t, err)
	assert.Equal(t, StepFormFields, d.Step)
	assert.Equal(t, assets.ApplicationSMM, d.ApplicationType)
}

func TestWorkflowSaveResetsDraft(t *testing.T) {
	store := &fakeStore{}
	w := NewWorkflow(store, nil, nil, "alice")
	defer w.Close()

	_, err := w.Open(assets.ApplicationWeb)
	require.NoError(t, err)
	require.NoError(t, w.Mutate(func(d *Draft) error {
		d.Name = "Landing Page"
		d.Type = "Web Page"
		d.FileName = "landing.html"
		return nil
	}))

	saved, err := w.Save(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, assets.StatusDraft, saved.Status)

	creates, updates := store.calls()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 0, updates)

	// The draft resets; a new one can open immediately.
	assert.Nil(t, w.Draft())
	_, err = w.Open("")
	assert.NoError(t, err)
}

func TestWorkflowValidationNeverReachesStore(t *testing.T) {
	store := &fakeStore{}
	w := NewWorkflow(store, nil, nil, "alice")
	defer w.Close()

	_, err := w.Open(assets.ApplicationWeb)
	require.NoError(t, err)
	require.NoError(t, w.Mutate(func(d *Draft) error {
		d.Name = "Landing Page"
		d.FileName = "landing.html"
		d.SEOScore = scorePtr(150)
		d.GrammarScore = scorePtr(70)
		return nil
	}))

	_, err = w.Save(context.Background(), true)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	creates, updates := store.calls()
	assert.Zero(t, creates, "invalid drafts must not reach persistence")
	assert.Zero(t, updates)
	assert.NotNil(t, w.Draft(), "draft is preserved after a validation failure")
}

func TestWorkflowStoreFailurePreservesDraft(t *testing.T) {
	store := &fakeStore{failure: errors.New("connection refused")}
	w := NewWorkflow(store, nil, nil, "alice")
	defer w.Close()

	_, err := w.Open(assets.ApplicationWeb)
	require.NoError(t, err)
	require.NoError(t, w.Mutate(func(d *Draft) error {
		d.Name = "Landing Page"
		d.FileName = "landing.html"
		return nil
	}))

	_, err = w.Save(context.Background(), false)
	require.Error(t, err)
	assert.NotNil(t, w.Draft(), "draft stays for retry after a store failure")
}

func TestWorkflowEditUpdatesExisting(t *testing.T) {
	store := &fakeStore{}
	w := NewWorkflow(store, nil, nil, "bob")
	defer w.Close()

	rec := &assets.AssetRecord{
		ID:              "asset-1",
		Name:            "Existing",
		ApplicationType: assets.ApplicationSEO,
		FileURL:         "https://cdn.example.com/doc.pdf",
	}
	_, err := w.OpenForEdit(rec)
	require.NoError(t, err)

	_, err = w.Save(context.Background(), false)
	require.NoError(t, err)

	creates, updates := store.calls()
	assert.Equal(t, 0, creates)
	assert.Equal(t, 1, updates)
}

func TestWorkflowBodyContentOnlyOnWebBranch(t *testing.T) {
	w := NewWorkflow(&fakeStore{}, nil, nil, "alice")
	defer w.Close()

	_, err := w.Open(assets.ApplicationSEO)
	require.NoError(t, err)

	err = w.OnBodyContentChanged("some text")
	assert.Equal(t, "BRANCH_NOT_ACTIVE", stateCode(t, err))
}

func TestWorkflowDebouncedAutoScoring(t *testing.T) {
	analyzer := scoring.NewAnalyzer("", scoring.WithRand(func() float64 { return 0.5 }))
	store := &fakeStore{}
	w := NewWorkflow(store, nil, analyzer, "alice", WithQuietPeriod(30*time.Millisecond))
	defer w.Close()

	_, err := w.Open(assets.ApplicationWeb)
	require.NoError(t, err)

	require.NoError(t, w.OnBodyContentChanged("first version of the body"))
	require.NoError(t, w.OnBodyContentChanged("second version of the body"))
	require.NoError(t, w.OnBodyContentChanged("final version of the body text, long enough to score"))

	// The deferred analyze writes the scores back onto the draft. Reads go
	// through Mutate so they serialize with the scoring callback.
	var seo, grammar *float64
	require.Eventually(t, func() bool {
		_ = w.Mutate(func(d *Draft) error {
			seo, grammar = d.SEOScore, d.GrammarScore
			return nil
		})
		return seo != nil && grammar != nil
	}, time.Second, 10*time.Millisecond)

	assert.GreaterOrEqual(t, *seo, 0.0)
	assert.LessOrEqual(t, *seo, 100.0)
	assert.GreaterOrEqual(t, *grammar, 60.0)
	assert.LessOrEqual(t, *grammar, 100.0)
}
