package models

import (
	"image"
	"sync"
)

// Purpose tags what a scaled bitmap is for; it is part of the cache key.
type Purpose string

const (
	PurposeThumbnail Purpose = "thumbnail"
	PurposePreview   Purpose = "preview"
)

// ScaledBitmap is a decoded image fitted into a requested box. It is shared
// read-only between the cache and the widgets displaying it.
type ScaledBitmap struct {
	Key     string
	Path    string
	Purpose Purpose
	Width   int // requested box, not the fitted image size
	Height  int
	Image   image.Image
}

// Size returns the dimensions of the fitted image.
func (b *ScaledBitmap) Size() (int, int) {
	if b == nil || b.Image == nil {
		return 0, 0
	}
	r := b.Image.Bounds()
	return r.Dx(), r.Dy()
}

// Thumbnail is one gallery entry.
type Thumbnail struct {
	Path     string
	Bitmap   image.Image
	selected bool
}

// Selected reports whether this thumbnail is the gallery selection.
func (t *Thumbnail) Selected() bool {
	return t.selected
}

// Gallery holds the paths of the last open request and the thumbnails
// created from them. At most one thumbnail is selected.
type Gallery struct {
	mu         sync.RWMutex
	paths      []string
	thumbnails []*Thumbnail
	selected   *Thumbnail
}

// NewGallery creates an empty gallery.
func NewGallery() *Gallery {
	return &Gallery{}
}

// Reset drops every thumbnail and remembers the new path list.
func (g *Gallery) Reset(paths []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.paths = append([]string(nil), paths...)
	g.thumbnails = nil
	g.selected = nil
}

// Paths returns the path list of the last Reset.
func (g *Gallery) Paths() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.paths...)
}

// Add appends a thumbnail for path.
func (g *Gallery) Add(path string, bitmap image.Image) *Thumbnail {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := &Thumbnail{Path: path, Bitmap: bitmap}
	g.thumbnails = append(g.thumbnails, t)
	return t
}

// Thumbnails returns the thumbnails in insertion order.
func (g *Gallery) Thumbnails() []*Thumbnail {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Thumbnail(nil), g.thumbnails...)
}

// Len returns the number of thumbnails.
func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.thumbnails)
}

// Select makes t the only selected thumbnail and returns the previous
// selection, which may be nil or t itself. Thumbnails not owned by this
// gallery are refused.
func (g *Gallery) Select(t *Thumbnail) (previous *Thumbnail, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.owns(t) {
		return g.selected, false
	}
	previous = g.selected
	if previous != nil {
		previous.selected = false
	}
	t.selected = true
	g.selected = t
	return previous, true
}

// Selected returns the current selection or nil.
func (g *Gallery) Selected() *Thumbnail {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.selected
}

// Find returns the first thumbnail for path.
func (g *Gallery) Find(path string) *Thumbnail {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, t := range g.thumbnails {
		if t.Path == path {
			return t
		}
	}
	return nil
}

func (g *Gallery) owns(t *Thumbnail) bool {
	for _, candidate := range g.thumbnails {
		if candidate == t {
			return true
		}
	}
	return false
}

// SetBitmap replaces the displayed bitmap of t.
func (g *Gallery) SetBitmap(t *Thumbnail, bitmap image.Image) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.owns(t) {
		return false
	}
	t.Bitmap = bitmap
	return true
}
