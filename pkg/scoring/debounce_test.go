package scoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fireRecorder counts fires and keeps the texts they carried.
type fireRecorder struct {
	mu    sync.Mutex
	texts []string
}

func (f *fireRecorder) fire(draftID, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
}

func (f *fireRecorder) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func TestDebouncerCoalescesRapidEdits(t *testing.T) {
	rec := &fireRecorder{}
	db := NewDebouncer(rec.fire, WithQuietPeriod(50*time.Millisecond))
	defer db.Close()

	// Three edits inside the quiet period collapse into one fire carrying
	// the last value.
	db.Notify("d1", "first")
	db.Notify("d1", "second")
	db.Notify("d1", "third")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// Nothing further fires once the quiet period passed.
	time.Sleep(120 * time.Millisecond)
	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "third", got[0])
}

func TestDebouncerFiresAgainAfterQuietPeriod(t *testing.T) {
	rec := &fireRecorder{}
	db := NewDebouncer(rec.fire, WithQuietPeriod(20*time.Millisecond))
	defer db.Close()

	db.Notify("d1", "first")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	db.Notify("d1", "second")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncerTracksDraftsIndependently(t *testing.T) {
	rec := &fireRecorder{}
	db := NewDebouncer(rec.fire, WithQuietPeriod(20*time.Millisecond))
	defer db.Close()

	db.Notify("d1", "draft one text")
	db.Notify("d2", "draft two text")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"draft one text", "draft two text"}, rec.snapshot())
}

func TestDebouncerCancelDropsPendingFire(t *testing.T) {
	rec := &fireRecorder{}
	db := NewDebouncer(rec.fire, WithQuietPeriod(30*time.Millisecond))
	defer db.Close()

	db.Notify("d1", "doomed")
	db.Cancel("d1")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncerCloseStopsEverything(t *testing.T) {
	rec := &fireRecorder{}
	db := NewDebouncer(rec.fire, WithQuietPeriod(30*time.Millisecond))

	db.Notify("d1", "pending")
	db.Close()
	db.Notify("d1", "after close")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncerSerializesPerDraft(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	rec := &fireRecorder{}

	slow := func(draftID, text string) {
		rec.fire(draftID, text)
		if text == "blocking" {
			close(started)
			<-release
		}
	}

	db := NewDebouncer(slow, WithQuietPeriod(10*time.Millisecond))
	defer db.Close()

	db.Notify("d1", "blocking")
	<-started

	// A timer that elapses while the first fire is still running defers and
	// re-runs with the latest text once the first completes.
	db.Notify("d1", "queued one")
	time.Sleep(30 * time.Millisecond)
	db.Notify("d1", "queued two")
	time.Sleep(30 * time.Millisecond)
	close(release)

	require.Eventually(t, func() bool {
		got := rec.snapshot()
		return len(got) >= 2 && got[len(got)-1] == "queued two"
	}, time.Second, 5*time.Millisecond)
}
