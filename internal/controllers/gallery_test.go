package controllers

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"image-browser/internal/models"
	"image-browser/internal/services"
)

func TestOpenLoadsInOrderAndSelectsFirst(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png", "B.png")

	if got := f.view.added(); !equalStrings(got, []string{"A.png", "B.png"}) {
		t.Fatalf("added = %v", got)
	}
	thumbs := f.gallery.Gallery().Thumbnails()
	if len(thumbs) != 2 {
		t.Fatalf("thumbnails = %d", len(thumbs))
	}
	if !thumbs[0].Selected() || thumbs[1].Selected() {
		t.Fatal("first thumbnail should be the only selection")
	}
	if f.gallery.PreviewPath() != "A.png" {
		t.Fatalf("preview = %q", f.gallery.PreviewPath())
	}
	if f.view.preview == nil || f.view.preview.Path != "A.png" || f.scene.Base() != f.view.preview {
		t.Fatal("preview bitmap not shown")
	}
	if w, h := f.view.preview.Size(); w != 1024 || h != 512 {
		t.Fatalf("preview size = %dx%d", w, h)
	}
}

func TestSentinelRecomputesThumbnailsThroughCache(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png", "B.png")

	side := f.cfg.Thumbnail.Size
	for _, th := range f.gallery.Gallery().Thumbnails() {
		cached, err := f.cache.GetOrCreate(th.Path, models.PurposeThumbnail, side, side)
		if err != nil {
			t.Fatalf("GetOrCreate: %v", err)
		}
		if th.Bitmap != cached.Image {
			t.Fatalf("%s bitmap does not come from the cache", th.Path)
		}
	}
}

func TestDecodeFailuresAreSkipped(t *testing.T) {
	f := newFixture(t, "A.png", "C.png")
	f.open(t, "A.png", "B.png", "C.png", "D.png")

	if got := f.view.added(); !equalStrings(got, []string{"B.png", "D.png"}) {
		t.Fatalf("added = %v", got)
	}
	if f.gallery.PreviewPath() != "B.png" {
		t.Fatalf("first good image should be previewed, got %q", f.gallery.PreviewPath())
	}
}

func TestStaleGenerationIsDropped(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png")
	old := f.gallery.Generation()
	f.open(t, "B.png")

	f.gallery.HandleEvent(old, services.Event{Kind: services.EventLoaded, Path: "A.png", Image: testImage()})

	thumbs := f.gallery.Gallery().Thumbnails()
	if len(thumbs) != 1 || thumbs[0].Path != "B.png" {
		t.Fatalf("thumbnails after stale event = %v", thumbs)
	}
	if f.gallery.Generation() != old+1 {
		t.Fatalf("generation = %d, want %d", f.gallery.Generation(), old+1)
	}
}

func TestReopenResetsGalleryAndAnnotations(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png")
	drawStroke(t, f, 2)

	f.open(t, "B.png", "C.png")
	if f.scene.Len() != 0 || f.stack.Len() != 0 {
		t.Fatalf("annotations survived reopen: scene=%d stack=%d", f.scene.Len(), f.stack.Len())
	}
	if got := len(f.gallery.Gallery().Thumbnails()); got != 2 {
		t.Fatalf("thumbnails = %d", got)
	}
}

func TestSelectThumbnailSwitchesPreview(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png", "B.png")
	drawStroke(t, f, 1)

	if err := f.gallery.SelectThumbnail("B.png"); err != nil {
		t.Fatalf("SelectThumbnail: %v", err)
	}
	thumbs := f.gallery.Gallery().Thumbnails()
	if thumbs[0].Selected() || !thumbs[1].Selected() {
		t.Fatal("selection did not move to B")
	}
	if f.gallery.PreviewPath() != "B.png" || f.view.preview.Path != "B.png" {
		t.Fatal("preview did not switch")
	}
	if f.scene.Len() != 0 || f.stack.Len() != 0 {
		t.Fatal("annotations of A carried over to B")
	}
	if err := f.gallery.SelectThumbnail("missing.png"); err == nil {
		t.Fatal("expected error for unknown path")
	}
}

func TestResizeViewportKeepsAnnotations(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png")
	drawStroke(t, f, 2)

	f.gallery.ResizeViewport(150, 400, 400)
	if w, h := f.scene.Base().Size(); w != 400 || h != 200 {
		t.Fatalf("preview size = %dx%d, want 400x200", w, h)
	}
	if f.scene.Len() != 2 {
		t.Fatalf("scene items = %d, want 2", f.scene.Len())
	}
	th := f.gallery.Gallery().Thumbnails()[0]
	if b := th.Bitmap.Bounds(); b.Dx() != 150 {
		t.Fatalf("thumbnail width = %d, want 150", b.Dx())
	}

	before := f.cache.Len()
	f.gallery.ResizeViewport(150, 400, 400)
	if f.cache.Len() != before {
		t.Fatal("same viewport size created new cache entries")
	}
}

func TestZoomSliderOverridesStepHistory(t *testing.T) {
	f := newFixture(t)

	if got := f.gallery.ZoomIn(); got != 100 {
		t.Fatalf("zoom without preview = %d, want 100", got)
	}

	f.open(t, "A.png")
	f.gallery.ZoomIn()
	f.gallery.ZoomIn()
	f.gallery.ZoomOut()
	f.gallery.SetZoom(250)
	if f.view.percent != 250 || f.view.scale != 2.5 {
		t.Fatalf("view zoom = %d%% / %v", f.view.percent, f.view.scale)
	}

	f.gallery.SetZoom(250)
	if f.view.scale != 2.5 {
		t.Fatalf("repeated slider value changed scale to %v", f.view.scale)
	}

	if got := f.gallery.SetZoom(9000); got != f.cfg.Zoom.Max {
		t.Fatalf("SetZoom clamp = %d", got)
	}
	for i := 0; i < 100; i++ {
		f.gallery.ZoomOut()
	}
	if f.view.percent != f.cfg.Zoom.Min {
		t.Fatalf("zoom floor = %d", f.view.percent)
	}
}

func TestSaveRequiresPreview(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	if err := f.gallery.Save(&buf, ".png"); !errors.Is(err, services.ErrNothingLoaded) {
		t.Fatalf("err = %v, want ErrNothingLoaded", err)
	}
}

func TestSaveWritesFlattenedImage(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png")
	drawStroke(t, f, 3)

	var buf bytes.Buffer
	if err := f.gallery.Save(&buf, ".png"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode saved image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 512 {
		t.Fatalf("saved size = %v", b)
	}
}

func TestResetClearsEverything(t *testing.T) {
	f := newFixture(t)
	f.open(t, "A.png")
	drawStroke(t, f, 2)
	f.gallery.SetZoom(300)
	f.canvas.SetPenWidth(20)
	f.canvas.SetTextMode(true)

	f.gallery.Reset()

	if f.scene.Len() != 0 || f.stack.Len() != 0 {
		t.Fatal("annotations survived reset")
	}
	if f.view.percent != f.cfg.Zoom.Default {
		t.Fatalf("zoom = %d", f.view.percent)
	}
	if f.canvas.Mode() != ModeNone || f.canvas.Pen().Width != float32(f.cfg.Pen.Width) {
		t.Fatal("tools not reset")
	}
	if !f.scene.HasBase() {
		t.Fatal("preview lost on reset")
	}
}
