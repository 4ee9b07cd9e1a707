package state

import "sync"

// ChangeTracker records whether the owning state tree has unsaved
// modifications. Hosts mark it after in-place mutation and reset it after
// a successful save.
type ChangeTracker struct {
	mu      sync.Mutex
	changed bool
}

// MarkChanged records that the tree was modified.
func (t *ChangeTracker) MarkChanged() {
	t.mu.Lock()
	t.changed = true
	t.mu.Unlock()
}

// HasChanged reports whether the tree was modified since the last reset.
func (t *ChangeTracker) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changed
}

// Reset clears the modification flag, typically after a save.
func (t *ChangeTracker) Reset() {
	t.mu.Lock()
	t.changed = false
	t.mu.Unlock()
}
