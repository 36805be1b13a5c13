package scoring

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultQuietPeriod is the debounce interval between the last body-content
// change and the deferred analyze call.
const DefaultQuietPeriod = 800 * time.Millisecond

// FireFunc is invoked with the draft id and the most recent body text once
// the quiet period elapses without further changes.
type FireFunc func(draftID, text string)

// Debouncer schedules deferred scoring per draft. Each Notify cancels and
// re-arms the pending timer for that draft, so only the last scheduled fire
// for a given body-content stream executes. Execution is serialized per
// draft: a fire that lands while a previous one is still running is deferred
// and re-runs with the latest text afterwards (last write wins).
type Debouncer struct {
	quiet  time.Duration
	fire   FireFunc
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	latest  map[string]string
	running map[string]bool
	rerun   map[string]bool
	closed  bool
}

// DebouncerOption configures a Debouncer.
type DebouncerOption func(*Debouncer)

// WithQuietPeriod overrides the debounce interval.
func WithQuietPeriod(d time.Duration) DebouncerOption {
	return func(db *Debouncer) { db.quiet = d }
}

// WithDebouncerLogger sets the debouncer logger.
func WithDebouncerLogger(l *slog.Logger) DebouncerOption {
	return func(db *Debouncer) { db.logger = l }
}

// NewDebouncer creates a debouncer that invokes fire after the quiet period.
func NewDebouncer(fire FireFunc, opts ...DebouncerOption) *Debouncer {
	db := &Debouncer{
		quiet:   DefaultQuietPeriod,
		fire:    fire,
		logger:  slog.Default(),
		pending: make(map[string]*time.Timer),
		latest:  make(map[string]string),
		running: make(map[string]bool),
		rerun:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Notify records a body-content change for the draft and (re)arms its timer,
// cancelling any pending fire that has not elapsed yet.
func (db *Debouncer) Notify(draftID, text string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return
	}

	db.latest[draftID] = text
	if t, ok := db.pending[draftID]; ok {
		t.Stop()
	}
	db.pending[draftID] = time.AfterFunc(db.quiet, func() {
		db.run(draftID)
	})
}

// Cancel drops any pending fire and tracked text for the draft.
func (db *Debouncer) Cancel(draftID string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if t, ok := db.pending[draftID]; ok {
		t.Stop()
		delete(db.pending, draftID)
	}
	delete(db.latest, draftID)
	delete(db.rerun, draftID)
}

// Close cancels all pending fires. Notify becomes a no-op afterwards.
func (db *Debouncer) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
	for id, t := range db.pending {
		t.Stop()
		delete(db.pending, id)
	}
}

// run executes the fire for a draft, serializing per draft id.
func (db *Debouncer) run(draftID string) {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return
	}
	delete(db.pending, draftID)
	if db.running[draftID] {
		// A fire for this draft is already in flight; re-run with the
		// latest text once it completes.
		db.rerun[draftID] = true
		db.mu.Unlock()
		return
	}
	db.running[draftID] = true
	db.mu.Unlock()

	for {
		db.mu.Lock()
		text, ok := db.latest[draftID]
		db.mu.Unlock()
		if !ok {
			break // cancelled while queued
		}

		db.fire(draftID, text)

		db.mu.Lock()
		again := db.rerun[draftID]
		delete(db.rerun, draftID)
		if !again {
			db.running[draftID] = false
			db.mu.Unlock()
			return
		}
		db.mu.Unlock()
	}

	db.mu.Lock()
	db.running[draftID] = false
	db.mu.Unlock()
}
