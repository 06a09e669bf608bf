package history

import "image-browser/internal/models"

// Stack is an undo/redo list with a cursor. Entries below the cursor are
// applied, entries at or above it are undone.
type Stack struct {
	scene    *models.Scene
	entries  []Command
	cursor   int
	onChange func()
}

// NewStack creates an empty stack operating on scene.
func NewStack(scene *models.Scene) *Stack {
	return &Stack{scene: scene}
}

// OnChange registers a listener called after every push, undo, redo or clear.
func (s *Stack) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Stack) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Push drops the redo tail, appends cmd and applies it.
func (s *Stack) Push(cmd Command) {
	s.entries = append(s.entries[:s.cursor], cmd)
	s.cursor = len(s.entries)
	cmd.redo(s.scene)
	s.notify()
}

// Undo reverts the entry below the cursor. It reports false at the bottom.
func (s *Stack) Undo() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.entries[s.cursor].undo(s.scene)
	s.notify()
	return true
}

// Redo re-applies the entry at the cursor. It reports false at the top.
func (s *Stack) Redo() bool {
	if s.cursor >= len(s.entries) {
		return false
	}
	s.entries[s.cursor].redo(s.scene)
	s.cursor++
	s.notify()
	return true
}

// Len returns the number of entries, applied or not.
func (s *Stack) Len() int { return len(s.entries) }

// Cursor returns the number of applied entries.
func (s *Stack) Cursor() int { return s.cursor }

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.entries) }

// Clear forgets every entry without touching the scene.
func (s *Stack) Clear() {
	s.entries = nil
	s.cursor = 0
	s.notify()
}
