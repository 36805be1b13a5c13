package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/contentstudio/asset-library/pkg/assets"
	"github.com/contentstudio/asset-library/pkg/scoring"
)

// Store is the persistence collaborator. Errors are opaque failures
// surfaced to the user; the workflow performs no retries.
type Store interface {
	Create(ctx context.Context, rec *assets.AssetRecord) (*assets.AssetRecord, error)
	Update(ctx context.Context, id string, rec *assets.AssetRecord) (*assets.AssetRecord, error)
}

// Workflow owns one in-progress draft and coordinates the step machine,
// the auto-scoring debouncer, and the final save. The draft is mutated only
// through the workflow; there are no concurrent editors.
type Workflow struct {
	mu        sync.Mutex
	draft     *Draft
	store     Store
	idx       *assets.EntityIndex
	analyzer  *scoring.Analyzer
	debouncer *scoring.Debouncer
	logger    *slog.Logger
	now       func() time.Time
	actor     string
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithLogger sets the workflow logger.
func WithLogger(l *slog.Logger) WorkflowOption {
	return func(w *Workflow) { w.logger = l }
}

// WithClock overrides the workflow clock.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) { w.now = now }
}

// WithQuietPeriod overrides the auto-scoring debounce interval.
func WithQuietPeriod(d time.Duration) WorkflowOption {
	return func(w *Workflow) {
		w.debouncer = scoring.NewDebouncer(w.fireAnalyze, scoring.WithQuietPeriod(d))
	}
}

// NewWorkflow creates a workflow for one user session. The analyzer may be
// nil, which disables auto-scoring entirely.
func NewWorkflow(store Store, idx *assets.EntityIndex, analyzer *scoring.Analyzer, actor string, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		store:    store,
		idx:      idx,
		analyzer: analyzer,
		logger:   slog.Default(),
		now:      time.Now,
		actor:    actor,
	}
	w.debouncer = scoring.NewDebouncer(w.fireAnalyze)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open starts a fresh draft. A valid preselected application type enters
// directly at form-fields (the quick-upload shortcut); otherwise the draft
// starts at select-type.
func (w *Workflow) Open(preselected assets.ApplicationType) (*Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		return nil, &StateError{
			Code:    "DRAFT_IN_PROGRESS",
			Step:    w.draft.Step,
			Message: "a draft is already in progress; save or cancel it first",
		}
	}
	d := NewDraft()
	if preselected != "" {
		if err := d.SelectType(preselected); err != nil {
			return nil, err
		}
	}
	w.draft = d
	w.logger.Info("draft opened", "draftID", d.ID, "step", d.Step, "applicationType", d.ApplicationType)
	return d, nil
}

// OpenForEdit rehydrates a draft from an existing record at asset-details.
func (w *Workflow) OpenForEdit(rec *assets.AssetRecord) (*Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		return nil, &StateError{
			Code:    "DRAFT_IN_PROGRESS",
			Step:    w.draft.Step,
			Message: "a draft is already in progress; save or cancel it first",
		}
	}
	w.draft = DraftFromRecord(rec)
	w.logger.Info("draft opened for edit", "draftID", w.draft.ID, "applicationType", w.draft.ApplicationType)
	return w.draft, nil
}

// Draft returns the in-progress draft, or nil.
func (w *Workflow) Draft() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Mutate runs fn against the in-progress draft under the workflow lock.
func (w *Workflow) Mutate(fn func(*Draft) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return errNoDraft()
	}
	return fn(w.draft)
}

// OnBodyContentChanged records a web body-content edit and (re)arms the
// auto-scoring timer. Only the web branch auto-scores; calls for other
// branches are a no-op on the scoring side.
func (w *Workflow) OnBodyContentChanged(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return errNoDraft()
	}
	web, err := w.draft.Web()
	if err != nil {
		return err
	}
	web.BodyContent = text
	if w.analyzer != nil {
		w.debouncer.Notify(w.draft.ID, text)
	}
	return nil
}

// fireAnalyze runs one debounced analyze and writes the scores back onto
// the draft. The draft may have been cancelled while the timer was armed.
func (w *Workflow) fireAnalyze(draftID, text string) {
	w.mu.Lock()
	if w.draft == nil || w.draft.ID != draftID {
		w.mu.Unlock()
		return
	}
	title := w.draft.Name
	var description string
	if w.draft.web != nil {
		description = w.draft.web.H1
	}
	w.mu.Unlock()

	result, err := w.analyzer.Analyze(context.Background(), text, title, description)
	if err != nil {
		w.logger.Warn("auto-scoring skipped", "draftID", draftID, "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil || w.draft.ID != draftID {
		return
	}
	seo, grammar := result.SEOScore, result.GrammarScore
	w.draft.SEOScore = &seo
	w.draft.GrammarScore = &grammar
	w.logger.Info("draft scored", "draftID", draftID, "seoScore", seo, "grammarScore", grammar)
}

// Save finalizes and persists the draft. Validation failures never reach
// the store. On success the draft resets to empty defaults; on a store
// failure the draft is preserved for retry.
func (w *Workflow) Save(ctx context.Context, submitForQC bool) (*assets.AssetRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return nil, errNoDraft()
	}

	rec, err := w.draft.Finalize(w.now(), w.actor, submitForQC, w.idx)
	if err != nil {
		return nil, err
	}

	var saved *assets.AssetRecord
	if w.draft.Editing() {
		saved, err = w.store.Update(ctx, rec.ID, rec)
	} else {
		saved, err = w.store.Create(ctx, rec)
	}
	if err != nil {
		w.logger.Error("saving draft failed", "draftID", w.draft.ID, "error", err)
		return nil, fmt.Errorf("saving asset: %w", err)
	}

	w.debouncer.Cancel(w.draft.ID)
	w.logger.Info("draft saved", "draftID", w.draft.ID, "assetID", saved.ID, "status", saved.Status)
	w.draft = nil
	return saved, nil
}

// Cancel discards the in-progress draft and cancels any pending scoring.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	w.debouncer.Cancel(w.draft.ID)
	w.logger.Info("draft cancelled", "draftID", w.draft.ID)
	w.draft = nil
}

// Close shuts down the workflow, cancelling all pending scoring timers.
func (w *Workflow) Close() {
	w.debouncer.Close()
}

func errNoDraft() error {
	return &StateError{
		Code:    "NO_DRAFT",
		Message: "no draft is in progress",
	}
}
