package history

// DefaultCapacity is used if a history is created with a capacity < 1.
const DefaultCapacity = 100

// History is a bounded undo/redo log of entries of type P.
// It is not safe for concurrent use.
type History[P any] struct {
	entries  []P
	cursor   int // entries[:cursor] are undoable
	capacity int
}

// New creates an empty history holding at most capacity entries.
func New[P any](capacity int) *History[P] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History[P]{capacity: capacity}
}

// Capacity returns the maximum number of entries.
func (h *History[P]) Capacity() int {
	return h.capacity
}

// Len returns the number of entries, undoable or redoable.
func (h *History[P]) Len() int {
	return len(h.entries)
}

// Push appends an entry at the cursor, discarding all redoable entries.
// If the history is full, the oldest entry is evicted.
func (h *History[P]) Push(p P) {
	var zero P
	for i := h.cursor; i < len(h.entries); i++ {
		h.entries[i] = zero
	}
	h.entries = append(h.entries[:h.cursor], p)
	if len(h.entries) > h.capacity {
		tracer().Debugf("history full, evicting oldest entry")
		h.entries[0] = zero
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries)
}

// CanUndo is true if there is an entry to undo.
func (h *History[P]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo is true if there is an entry to redo.
func (h *History[P]) CanRedo() bool {
	return h.cursor < len(h.entries)
}

// Undo moves the cursor back and returns the entry to revert.
func (h *History[P]) Undo() (P, bool) {
	if !h.CanUndo() {
		var zero P
		return zero, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo moves the cursor forward and returns the entry to re-apply.
func (h *History[P]) Redo() (P, bool) {
	if !h.CanRedo() {
		var zero P
		return zero, false
	}
	h.cursor++
	return h.entries[h.cursor-1], true
}

// Peek returns the entry which the next Undo would return.
func (h *History[P]) Peek() (P, bool) {
	if !h.CanUndo() {
		var zero P
		return zero, false
	}
	return h.entries[h.cursor-1], true
}

// Clear drops all entries.
func (h *History[P]) Clear() {
	h.entries = nil
	h.cursor = 0
}
