package booth

import (
	"sync"

	"github.com/cekatlabs/booth-core/core/events"
)

// preloadTracker aggregates per-asset readiness reported by the playback
// driver into loaded/total progress.
type preloadTracker struct {
	mu     sync.Mutex
	loaded map[string]bool
	total  int

	emit eventEmitter
}

func newPreloadTracker(assets []string, emit eventEmitter) *preloadTracker {
	if emit == nil {
		emit = noopEventEmitter
	}

	loaded := make(map[string]bool, len(assets))
	for _, asset := range assets {
		loaded[asset] = false
	}
	return &preloadTracker{
		loaded: loaded,
		total:  len(loaded),
		emit:   emit,
	}
}

// AssetLoaded marks an asset ready and publishes the updated progress.
// Unknown assets and repeated reports are ignored.
func (t *preloadTracker) AssetLoaded(url string) {
	if t == nil {
		return
	}

	t.mu.Lock()
	ready, known := t.loaded[url]
	if !known || ready {
		t.mu.Unlock()
		return
	}
	t.loaded[url] = true
	count := t.countLocked()
	total := t.total
	t.mu.Unlock()

	t.emit(events.NewPreloadProgress(count, total, percentage(count, total)))
}

// Progress returns loaded and total asset counts.
func (t *preloadTracker) Progress() (loaded, total int) {
	if t == nil {
		return 0, 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countLocked(), t.total
}

// Ready reports whether every asset has loaded.
func (t *preloadTracker) Ready() bool {
	loaded, total := t.Progress()
	return loaded == total
}

func (t *preloadTracker) countLocked() int {
	count := 0
	for _, ready := range t.loaded {
		if ready {
			count++
		}
	}
	return count
}

func percentage(loaded, total int) int {
	if total == 0 {
		return 100
	}
	return loaded * 100 / total
}
