// Package history keeps a bounded, linear timeline of configuration
// snapshots for undo/redo.
package history

import "github.com/ventworks/quotecalc/internal/pricing"

// Snapshot is an immutable point-in-time copy of the undoable state. The
// rate card is deliberately excluded: rate edits cannot be undone.
type Snapshot struct {
	Params  pricing.JobParameters
	Options pricing.Options
}

// NewSnapshot deep-copies the given state into a snapshot.
func NewSnapshot(params pricing.JobParameters, options pricing.Options) Snapshot {
	return Snapshot{Params: params, Options: options.Clone()}
}

// History is a bounded snapshot stack with a cursor. Pushing after an undo
// discards the redo branch; the timeline is always linear.
type History struct {
	snapshots []Snapshot
	cursor    int
	capacity  int
}

// New returns an empty history that retains at most capacity snapshots.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{cursor: -1, capacity: capacity}
}

// Push appends a snapshot at the cursor, truncating any redo branch first.
// Once the stack exceeds capacity the oldest snapshot is evicted.
func (h *History) Push(s Snapshot) {
	if h.cursor < len(h.snapshots)-1 {
		h.snapshots = h.snapshots[:h.cursor+1]
	}

	h.snapshots = append(h.snapshots, s)
	h.cursor++

	if len(h.snapshots) > h.capacity {
		h.snapshots = h.snapshots[1:]
		h.cursor--
	}
}

// Undo moves the cursor back one step and returns the snapshot there.
// It reports false at the oldest snapshot or on an empty history.
func (h *History) Undo() (Snapshot, bool) {
	if h.cursor <= 0 {
		return Snapshot{}, false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo moves the cursor forward one step and returns the snapshot there.
// It reports false when already at the newest snapshot.
func (h *History) Redo() (Snapshot, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return Snapshot{}, false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.snapshots) }
