package models

import (
	"image"
	"sync"
)

// Scene is the preview canvas: a base bitmap plus the annotation items
// currently visible on top of it, in insertion order.
type Scene struct {
	mu       sync.RWMutex
	base     *ScaledBitmap
	items    []Item
	onChange func()
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// SetOnChange registers the single change listener, usually the canvas view.
func (s *Scene) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Scene) changed() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Touch notifies the listener that an item changed in place.
func (s *Scene) Touch() {
	s.changed()
}

// SetBase replaces the base bitmap; annotations are kept.
func (s *Scene) SetBase(b *ScaledBitmap) {
	s.mu.Lock()
	s.base = b
	s.mu.Unlock()
	s.changed()
}

// Base returns the base bitmap or nil.
func (s *Scene) Base() *ScaledBitmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// HasBase reports whether an image is loaded.
func (s *Scene) HasBase() bool {
	return s.Base() != nil
}

// Add places item on the scene. Adding an item already present is a no-op.
func (s *Scene) Add(item Item) bool {
	s.mu.Lock()
	if s.indexOf(item) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.changed()
	return true
}

// Remove takes item off the scene.
func (s *Scene) Remove(item Item) bool {
	s.mu.Lock()
	i := s.indexOf(item)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()
	s.changed()
	return true
}

func (s *Scene) indexOf(item Item) int {
	for i, it := range s.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Contains reports whether item is visible.
func (s *Scene) Contains(item Item) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(item) >= 0
}

// Items returns a snapshot of the visible items.
func (s *Scene) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// Lines returns the visible line items.
func (s *Scene) Lines() []*LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var lines []*LineItem
	for _, it := range s.items {
		if l, ok := it.(*LineItem); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// Texts returns the visible text boxes.
func (s *Scene) Texts() []*TextBox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var texts []*TextBox
	for _, it := range s.items {
		if t, ok := it.(*TextBox); ok {
			texts = append(texts, t)
		}
	}
	return texts
}

// Len returns the number of visible items.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// ClearItems removes every annotation item but keeps the base bitmap.
func (s *Scene) ClearItems() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.changed()
}

// Clear removes the base bitmap and all items.
func (s *Scene) Clear() {
	s.mu.Lock()
	s.base = nil
	s.items = nil
	s.mu.Unlock()
	s.changed()
}

// Bounds returns the rectangle covering the base bitmap and every item.
func (s *Scene) Bounds() Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r Rect
	first := true
	if s.base != nil && s.base.Image != nil {
		b := s.base.Image.Bounds()
		r = Rect{X: float32(b.Min.X), Y: float32(b.Min.Y), W: float32(b.Dx()), H: float32(b.Dy())}
		first = false
	}
	for _, it := range s.items {
		if first {
			r = it.Bounds()
			first = false
			continue
		}
		r = r.Union(it.Bounds())
	}
	return r
}

// BaseImage returns the base image or nil.
func (s *Scene) BaseImage() image.Image {
	b := s.Base()
	if b == nil {
		return nil
	}
	return b.Image
}
