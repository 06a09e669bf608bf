package controllers

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"testing"

	"image-browser/internal/config"
	"image-browser/internal/history"
	"image-browser/internal/logger"
	"image-browser/internal/models"
	"image-browser/internal/services"
)

type stubDecoder struct {
	fail map[string]bool
}

func (d stubDecoder) Decode(path string) (image.Image, error) {
	if d.fail[path] {
		return nil, errors.New("corrupt image")
	}
	return image.NewNRGBA(image.Rect(0, 0, 200, 100)), nil
}

func (stubDecoder) Formats() []string { return []string{"png"} }

type recordingView struct {
	mu      sync.Mutex
	calls   []string
	preview *models.ScaledBitmap
	percent int
	scale   float64
	errs    []error
}

func (v *recordingView) record(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, fmt.Sprintf(format, args...))
}

func (v *recordingView) ResetThumbnails()                    { v.record("reset") }
func (v *recordingView) AddThumbnail(t *models.Thumbnail)    { v.record("add %s", t.Path) }
func (v *recordingView) UpdateThumbnail(t *models.Thumbnail) { v.record("update %s", t.Path) }
func (v *recordingView) UpdateStatus(string)                 {}

func (v *recordingView) SetPreview(bmp *models.ScaledBitmap) {
	v.mu.Lock()
	v.preview = bmp
	v.mu.Unlock()
	if bmp == nil {
		v.record("preview none")
		return
	}
	v.record("preview %s", bmp.Path)
}

func (v *recordingView) SetZoom(percent int, scale float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.percent, v.scale = percent, scale
}

func (v *recordingView) ShowError(title string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, err)
}

func (v *recordingView) added() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []string
	for _, c := range v.calls {
		if len(c) > 4 && c[:4] == "add " {
			out = append(out, c[4:])
		}
	}
	return out
}

type fixture struct {
	cfg     *config.Config
	scene   *models.Scene
	stack   *history.Stack
	canvas  *CanvasController
	gallery *GalleryController
	cache   *services.ResizeCache
	view    *recordingView
}

func newFixture(t *testing.T, failing ...string) *fixture {
	t.Helper()
	fail := make(map[string]bool)
	for _, p := range failing {
		fail[p] = true
	}
	dec := stubDecoder{fail: fail}
	log := logger.NewNop()
	cfg := config.New()

	scene := models.NewScene()
	stack := history.NewStack(scene)
	canvas := NewCanvasController(scene, stack, cfg, log)
	cache := services.NewResizeCache(dec, services.DrawScaler{}, log)
	view := &recordingView{}

	gc := NewGalleryController(GalleryDeps{
		Config:   cfg,
		Decoder:  dec,
		Scaler:   services.DrawScaler{},
		Cache:    cache,
		Scene:    scene,
		Stack:    stack,
		Canvas:   canvas,
		Dispatch: func(fn func()) { fn() },
		Logger:   log,
	})
	gc.SetView(view)
	t.Cleanup(gc.Shutdown)

	return &fixture{cfg: cfg, scene: scene, stack: stack, canvas: canvas, gallery: gc, cache: cache, view: view}
}

func (f *fixture) open(t *testing.T, paths ...string) {
	t.Helper()
	if err := f.gallery.Open(paths); err != nil {
		t.Fatalf("Open: %v", err)
	}
	f.gallery.WaitLoad()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
