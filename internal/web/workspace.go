package web

import (
	"sync"

	"github.com/JonMunkholm/gradebook/internal/core"
)

// Workspace holds the most recently loaded snapshot.
// Snapshots are immutable; a load replaces the current one wholesale.
type Workspace struct {
	mu      sync.RWMutex
	current *core.Snapshot
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Current returns the current snapshot or core.ErrNoSnapshot.
func (w *Workspace) Current() (*core.Snapshot, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.current == nil {
		return nil, core.ErrNoSnapshot
	}
	return w.current, nil
}

// Replace installs snap as the current snapshot and returns the previous one.
func (w *Workspace) Replace(snap *core.Snapshot) *core.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev := w.current
	w.current = snap
	return prev
}
