package models

import (
	"image"
	"image/color"
	"sync"
	"testing"
)

func TestGallerySelectionIsExclusive(t *testing.T) {
	g := NewGallery()
	g.Reset([]string{"a.png", "b.png", "c.png"})
	a := g.Add("a.png", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	b := g.Add("b.png", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	c := g.Add("c.png", image.NewRGBA(image.Rect(0, 0, 1, 1)))

	for _, next := range []*Thumbnail{a, c, b, b} {
		if _, ok := g.Select(next); !ok {
			t.Fatalf("Select(%s) refused", next.Path)
		}
		selected := 0
		for _, th := range g.Thumbnails() {
			if th.Selected() {
				selected++
			}
		}
		if selected != 1 || !next.Selected() || g.Selected() != next {
			t.Fatalf("after selecting %s: %d selected", next.Path, selected)
		}
	}
}

func TestGallerySelectRefusesForeignThumbnail(t *testing.T) {
	g := NewGallery()
	g.Reset([]string{"a.png"})
	a := g.Add("a.png", nil)
	g.Select(a)

	stranger := &Thumbnail{Path: "x.png"}
	if _, ok := g.Select(stranger); ok {
		t.Fatal("selected a thumbnail the gallery does not own")
	}
	if g.Selected() != a || stranger.Selected() {
		t.Fatal("selection changed by refused Select")
	}
}

func TestGalleryResetDropsThumbnails(t *testing.T) {
	g := NewGallery()
	g.Reset([]string{"a.png"})
	g.Select(g.Add("a.png", nil))
	g.Reset([]string{"b.png"})

	if g.Len() != 0 || g.Selected() != nil {
		t.Fatalf("reset left %d thumbnails, selection %v", g.Len(), g.Selected())
	}
	if got := g.Paths(); len(got) != 1 || got[0] != "b.png" {
		t.Fatalf("paths = %v", got)
	}
}

func TestZoomClampsAndScales(t *testing.T) {
	z := NewZoom(5, 500, 100, 10)
	if z.Scale() != 1 {
		t.Fatalf("default scale = %v", z.Scale())
	}
	if got := z.Set(250); got != 250 || z.Scale() != 2.5 {
		t.Fatalf("Set(250) = %d scale %v", got, z.Scale())
	}
	if got := z.Set(9000); got != 500 {
		t.Fatalf("Set above max = %d", got)
	}
	z.Set(10)
	z.Out()
	if got := z.Out(); got != 5 {
		t.Fatalf("Out below min = %d", got)
	}
	if got := z.Reset(); got != 100 {
		t.Fatalf("Reset = %d", got)
	}
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	changes := 0
	s.SetOnChange(func() { changes++ })

	l := &LineItem{Segment: Segment{From: Point{0, 0}, To: Point{10, 0}}, Pen: Pen{Width: 2}}
	if !s.Add(l) || s.Add(l) {
		t.Fatal("second Add of the same item should be a no-op")
	}
	if s.Len() != 1 || !s.Contains(l) {
		t.Fatalf("scene has %d items", s.Len())
	}
	if !s.Remove(l) || s.Remove(l) {
		t.Fatal("second Remove should report false")
	}
	if changes != 2 {
		t.Fatalf("changes = %d, want 2", changes)
	}
}

func TestSceneBoundsCoverBaseAndItems(t *testing.T) {
	s := NewScene()
	s.SetBase(&ScaledBitmap{Image: image.NewRGBA(image.Rect(0, 0, 40, 30))})
	s.Add(&LineItem{Segment: Segment{From: Point{10, 10}, To: Point{60, 10}}, Pen: Pen{Width: 2}})

	got := s.Bounds()
	want := Rect{X: 0, Y: 0, W: 61, H: 30}
	if got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}
}

func TestTextBoxGeometryFreezesOnCommit(t *testing.T) {
	tb := NewTextBox(Point{10, 10}, "Enter text", FontSpec{Family: "Go Regular", Size: 12}, color.NRGBA{A: 255})
	if !tb.IsPlaceholder() {
		t.Fatal("new text box should show the placeholder")
	}
	tb.Resize(Point{4, 30})
	if got := tb.Bounds(); got != (Rect{X: 4, Y: 10, W: 6, H: 20}) {
		t.Fatalf("bounds = %+v", got)
	}
	tb.Commit()
	tb.Resize(Point{100, 100})
	if got := tb.Bounds(); got.W != 6 {
		t.Fatalf("resize after commit changed bounds to %+v", got)
	}
	tb.SetText("hello")
	if tb.Text() != "hello" || tb.IsPlaceholder() {
		t.Fatal("text should stay editable after commit")
	}
}

func TestStrokeGroupCopiesLines(t *testing.T) {
	lines := []*LineItem{{}, {}}
	g := NewStrokeGroup(lines, Pen{Width: 1})
	lines[0] = nil
	if g.Lines[0] == nil || len(g.Segments()) != 2 || len(g.Items()) != 2 {
		t.Fatal("stroke group shares the caller's slice")
	}
	if g.Kind() != KindStroke || g.Kind().String() != "stroke" {
		t.Fatalf("kind = %v", g.Kind())
	}
}

func TestCancellationTokenGuard(t *testing.T) {
	ct := NewCancellationToken()
	ran := ct.Guard(func() {})
	if !ran {
		t.Fatal("guard should run while live")
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ct.Cancel()
	}()
	wg.Wait()
	if !ct.IsCancelled() {
		t.Fatal("token not cancelled")
	}
	if ct.Guard(func() { t.Fatal("guarded fn ran after cancel") }) {
		t.Fatal("guard reported success after cancel")
	}
}
