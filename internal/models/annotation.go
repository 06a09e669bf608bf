package models

import (
	"image/color"
	"math"
)

// Point is a position in scene coordinates, i.e. pixels of the preview bitmap.
type Point struct {
	X, Y float32
}

// Scale multiplies both coordinates by f.
func (p Point) Scale(f float32) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Rect is an axis-aligned rectangle with non-negative size.
type Rect struct {
	X, Y, W, H float32
}

// RectFromPoints returns the rectangle spanned by two corners in any order.
func RectFromPoints(a, b Point) Rect {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	minX := float32(math.Min(float64(r.X), float64(o.X)))
	minY := float32(math.Min(float64(r.Y), float64(o.Y)))
	maxX := float32(math.Max(float64(r.X+r.W), float64(o.X+o.W)))
	maxY := float32(math.Max(float64(r.Y+r.H), float64(o.Y+o.H)))
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Pen is the stroke colour and width.
type Pen struct {
	Color color.NRGBA
	Width float32
}

// Segment is one straight piece of a freehand stroke.
type Segment struct {
	From, To Point
}

// FontSpec describes the font of a text box.
type FontSpec struct {
	Family string
	Size   float64
}

// Item is anything placed on the scene: a stroke line or a text box.
type Item interface {
	Bounds() Rect
}

// LineItem is a single drawn segment with the pen it was drawn with.
type LineItem struct {
	Segment
	Pen Pen
}

// Bounds includes half the pen width on every side.
func (l *LineItem) Bounds() Rect {
	r := RectFromPoints(l.From, l.To)
	half := l.Pen.Width / 2
	return Rect{X: r.X - half, Y: r.Y - half, W: r.W + l.Pen.Width, H: r.H + l.Pen.Width}
}

// AnnotationKind tags the Annotation variants.
type AnnotationKind int

const (
	KindStroke AnnotationKind = iota
	KindText
)

func (k AnnotationKind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Annotation is a committed StrokeGroup or TextBox.
type Annotation interface {
	Kind() AnnotationKind
	Items() []Item
}

// StrokeGroup is the set of lines drawn in one gesture.
type StrokeGroup struct {
	Lines []*LineItem
	Pen   Pen
}

// NewStrokeGroup copies lines so later edits to the caller's slice don't leak in.
func NewStrokeGroup(lines []*LineItem, pen Pen) *StrokeGroup {
	return &StrokeGroup{Lines: append([]*LineItem(nil), lines...), Pen: pen}
}

func (g *StrokeGroup) Kind() AnnotationKind { return KindStroke }

// Items returns the line items owned by the group.
func (g *StrokeGroup) Items() []Item {
	items := make([]Item, len(g.Lines))
	for i, l := range g.Lines {
		items[i] = l
	}
	return items
}

// Segments returns the geometry of the group in drawing order.
func (g *StrokeGroup) Segments() []Segment {
	segs := make([]Segment, len(g.Lines))
	for i, l := range g.Lines {
		segs[i] = l.Segment
	}
	return segs
}

// TextBox is an editable text region. Its geometry is fixed once committed;
// the text itself stays editable through SetText.
type TextBox struct {
	Anchor Point
	Font   FontSpec
	Color  color.NRGBA

	bounds      Rect
	text        string
	placeholder bool
	committed   bool
}

// NewTextBox creates a text box at anchor showing placeholder text.
func NewTextBox(anchor Point, placeholder string, font FontSpec, col color.NRGBA) *TextBox {
	return &TextBox{
		Anchor:      anchor,
		Font:        font,
		Color:       col,
		bounds:      Rect{X: anchor.X, Y: anchor.Y},
		text:        placeholder,
		placeholder: true,
	}
}

func (t *TextBox) Kind() AnnotationKind { return KindText }

// Items returns the text box itself.
func (t *TextBox) Items() []Item { return []Item{t} }

// Bounds returns the box rectangle. A zero width means "no wrapping".
func (t *TextBox) Bounds() Rect { return t.bounds }

// Resize sets the bounding box from the drag between the anchor and p.
// It is ignored once the box is committed.
func (t *TextBox) Resize(p Point) {
	if t.committed {
		return
	}
	t.bounds = RectFromPoints(t.Anchor, p)
}

// Text returns the current content.
func (t *TextBox) Text() string { return t.text }

// IsPlaceholder reports whether the content is still the placeholder.
func (t *TextBox) IsPlaceholder() bool { return t.placeholder }

// SetText replaces the content.
func (t *TextBox) SetText(s string) {
	t.text = s
	t.placeholder = false
}

// Commit freezes the geometry.
func (t *TextBox) Commit() { t.committed = true }

// Committed reports whether Commit was called.
func (t *TextBox) Committed() bool { return t.committed }
