package controllers

import (
	"context"
	"fmt"
	"io"
	"sync"

	"image-browser/internal/config"
	"image-browser/internal/history"
	"image-browser/internal/logger"
	"image-browser/internal/models"
	"image-browser/internal/services"
)

// GalleryView is the part of the window the gallery controller drives.
type GalleryView interface {
	ResetThumbnails()
	AddThumbnail(t *models.Thumbnail)
	UpdateThumbnail(t *models.Thumbnail)
	SetPreview(bmp *models.ScaledBitmap)
	SetZoom(percent int, scale float64)
	UpdateStatus(message string)
	ShowError(title string, err error)
}

// Dispatcher runs fn on the UI goroutine. fyne.Do in the application.
type Dispatcher func(fn func())

// GalleryController owns the loader lifecycle, the thumbnail gallery, the
// preview and its zoom. Loader events reach it through the dispatcher and
// carry the generation of the load that produced them; events of an older
// load are dropped.
type GalleryController struct {
	cfg      *config.Config
	decoder  services.Decoder
	scaler   services.Scaler
	cache    *services.ResizeCache
	gallery  *models.Gallery
	scene    *models.Scene
	stack    *history.Stack
	canvas   *CanvasController
	zoom     *models.Zoom
	dispatch Dispatcher
	logger   logger.Logger
	view     GalleryView

	mu       sync.Mutex
	gen      uint64
	loader   *services.ImageLoader
	pumpDone chan struct{}
	cancel   context.CancelFunc

	previewPath  string
	galleryWidth int
	previewW     int
	previewH     int
}

// GalleryDeps groups the collaborators of a GalleryController.
type GalleryDeps struct {
	Config   *config.Config
	Decoder  services.Decoder
	Scaler   services.Scaler
	Cache    *services.ResizeCache
	Scene    *models.Scene
	Stack    *history.Stack
	Canvas   *CanvasController
	Dispatch Dispatcher
	Logger   logger.Logger
}

// NewGalleryController creates a controller with an empty gallery.
func NewGalleryController(deps GalleryDeps) *GalleryController {
	cfg := deps.Config
	return &GalleryController{
		cfg:      cfg,
		decoder:  deps.Decoder,
		scaler:   deps.Scaler,
		cache:    deps.Cache,
		gallery:  models.NewGallery(),
		scene:    deps.Scene,
		stack:    deps.Stack,
		canvas:   deps.Canvas,
		zoom:     models.NewZoom(cfg.Zoom.Min, cfg.Zoom.Max, cfg.Zoom.Default, cfg.Zoom.Step),
		dispatch: deps.Dispatch,
		logger:   deps.Logger,
		previewW: int(cfg.Window.Width),
		previewH: int(cfg.Window.Height),
	}
}

// SetView attaches the view. It must be called before Open.
func (gc *GalleryController) SetView(v GalleryView) {
	gc.view = v
}

func (gc *GalleryController) Gallery() *models.Gallery { return gc.gallery }
func (gc *GalleryController) Zoom() *models.Zoom       { return gc.zoom }
func (gc *GalleryController) PreviewPath() string      { return gc.previewPath }

// Generation returns the number of the current load.
func (gc *GalleryController) Generation() uint64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.gen
}

// Open replaces the gallery with paths and starts loading them. A running
// load is stopped and joined first.
func (gc *GalleryController) Open(paths []string) error {
	gc.stopLoader()

	gc.mu.Lock()
	gc.gen++
	gen := gc.gen
	gc.mu.Unlock()

	gc.canvas.Abort()
	gc.gallery.Reset(paths)
	gc.previewPath = ""
	gc.scene.Clear()
	gc.stack.Clear()
	gc.zoom.Reset()

	gc.view.ResetThumbnails()
	gc.view.SetPreview(nil)
	gc.view.SetZoom(gc.zoom.Level(), gc.zoom.Scale())

	if len(paths) == 0 {
		gc.view.UpdateStatus("No images to load")
		return nil
	}

	loader := services.NewImageLoader(paths, gc.decoder, gc.logger)
	ctx, cancel := context.WithCancel(context.Background())
	if err := loader.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("failed to start loader: %w", err)
	}

	done := make(chan struct{})
	gc.mu.Lock()
	gc.loader = loader
	gc.pumpDone = done
	gc.cancel = cancel
	gc.mu.Unlock()

	go gc.pump(gen, loader, done)

	gc.view.UpdateStatus(fmt.Sprintf("Loading %d images...", len(paths)))
	gc.logger.Info("GalleryController", "open", map[string]interface{}{
		"count":      len(paths),
		"generation": gen,
	})
	return nil
}

func (gc *GalleryController) pump(gen uint64, loader *services.ImageLoader, done chan struct{}) {
	defer close(done)
	for ev := range loader.Events() {
		ev := ev
		gc.dispatch(func() {
			gc.HandleEvent(gen, ev)
		})
	}
}

// stopLoader stops the active loader and waits for it and its pump.
func (gc *GalleryController) stopLoader() {
	gc.mu.Lock()
	loader, done, cancel := gc.loader, gc.pumpDone, gc.cancel
	gc.loader, gc.pumpDone, gc.cancel = nil, nil, nil
	gc.mu.Unlock()

	if loader == nil {
		return
	}
	loader.Stop()
	loader.Wait()
	<-done
	cancel()
}

// WaitLoad blocks until the active loader and its pump have finished.
func (gc *GalleryController) WaitLoad() {
	gc.mu.Lock()
	loader, done := gc.loader, gc.pumpDone
	gc.mu.Unlock()

	if loader == nil {
		return
	}
	loader.Wait()
	<-done
}

// Shutdown stops the active loader.
func (gc *GalleryController) Shutdown() {
	gc.stopLoader()
	gc.logger.Info("GalleryController", "shutdown complete", nil)
}

// HandleEvent applies a loader event of load gen on the UI goroutine.
func (gc *GalleryController) HandleEvent(gen uint64, ev services.Event) {
	if gen != gc.Generation() {
		gc.logger.Debug("GalleryController", "dropped stale event", map[string]interface{}{
			"generation": gen,
			"path":       ev.Path,
		})
		return
	}

	if ev.IsSentinel() {
		gc.recomputeThumbnails()
		gc.view.UpdateStatus(fmt.Sprintf("Loaded %d of %d images", gc.gallery.Len(), len(gc.gallery.Paths())))
		return
	}

	if ev.Image == nil {
		gc.logger.Warning("GalleryController", "skipping image", map[string]interface{}{
			"path":  ev.Path,
			"error": fmt.Sprint(ev.Err),
		})
		return
	}

	size := gc.cfg.Thumbnail.Size
	bitmap, err := gc.scaler.Fit(ev.Image, size, size, models.PurposeThumbnail)
	if err != nil {
		gc.logger.Warning("GalleryController", "thumbnail scaling failed", map[string]interface{}{
			"path":  ev.Path,
			"error": err.Error(),
		})
		return
	}

	t := gc.gallery.Add(ev.Path, bitmap)
	gc.view.AddThumbnail(t)
	if gc.gallery.Len() == 1 {
		gc.selectThumbnail(t)
	}
}

// thumbnailSide is the gallery width when known, the configured size otherwise.
func (gc *GalleryController) thumbnailSide() int {
	if gc.galleryWidth > 0 {
		return gc.galleryWidth
	}
	return gc.cfg.Thumbnail.Size
}

func (gc *GalleryController) recomputeThumbnails() {
	side := gc.thumbnailSide()
	for _, t := range gc.gallery.Thumbnails() {
		bmp, err := gc.cache.GetOrCreate(t.Path, models.PurposeThumbnail, side, side)
		if err != nil {
			gc.logger.Warning("GalleryController", "thumbnail refresh failed", map[string]interface{}{
				"path":  t.Path,
				"error": err.Error(),
			})
			continue
		}
		if t.Bitmap == bmp.Image {
			continue
		}
		gc.gallery.SetBitmap(t, bmp.Image)
		gc.view.UpdateThumbnail(t)
	}
}

// SelectThumbnail makes the thumbnail for path the selection and preview.
func (gc *GalleryController) SelectThumbnail(path string) error {
	t := gc.gallery.Find(path)
	if t == nil {
		return fmt.Errorf("no thumbnail for %s", path)
	}
	gc.selectThumbnail(t)
	return nil
}

func (gc *GalleryController) selectThumbnail(t *models.Thumbnail) {
	previous, ok := gc.gallery.Select(t)
	if !ok {
		return
	}
	if previous != nil && previous != t {
		gc.view.UpdateThumbnail(previous)
	}
	gc.view.UpdateThumbnail(t)

	if gc.previewPath != t.Path {
		gc.canvas.Abort()
		gc.scene.ClearItems()
		gc.stack.Clear()
	}
	gc.previewPath = t.Path
	gc.showPreview()
}

func (gc *GalleryController) showPreview() {
	if gc.previewPath == "" {
		return
	}
	bmp, err := gc.cache.GetOrCreate(gc.previewPath, models.PurposePreview, gc.previewW, gc.previewH)
	if err != nil {
		gc.logger.Error("GalleryController", err, map[string]interface{}{
			"path": gc.previewPath,
		})
		gc.view.ShowError("Preview failed", err)
		return
	}
	gc.scene.SetBase(bmp)
	gc.view.SetPreview(bmp)
	gc.view.SetZoom(gc.zoom.Level(), gc.zoom.Scale())
}

// ResizeViewport re-requests thumbnails and the preview for new pane sizes.
// Non-positive values keep the previous size.
func (gc *GalleryController) ResizeViewport(galleryWidth, previewW, previewH int) {
	thumbsChanged := galleryWidth > 0 && galleryWidth != gc.galleryWidth
	previewChanged := previewW > 0 && previewH > 0 && (previewW != gc.previewW || previewH != gc.previewH)

	if thumbsChanged {
		gc.galleryWidth = galleryWidth
		gc.recomputeThumbnails()
	}
	if previewChanged {
		gc.previewW, gc.previewH = previewW, previewH
		gc.showPreview()
	}
}

// ZoomIn enlarges the preview by one step when an image is shown.
func (gc *GalleryController) ZoomIn() int {
	if gc.scene.HasBase() {
		gc.zoom.In()
		gc.view.SetZoom(gc.zoom.Level(), gc.zoom.Scale())
	}
	return gc.zoom.Level()
}

// ZoomOut shrinks the preview by one step when an image is shown.
func (gc *GalleryController) ZoomOut() int {
	if gc.scene.HasBase() {
		gc.zoom.Out()
		gc.view.SetZoom(gc.zoom.Level(), gc.zoom.Scale())
	}
	return gc.zoom.Level()
}

// SetZoom sets an absolute zoom percentage, as the slider does. The result
// only depends on percent, never on earlier steps.
func (gc *GalleryController) SetZoom(percent int) int {
	gc.zoom.Reset()
	level := gc.zoom.Set(percent)
	gc.view.SetZoom(level, gc.zoom.Scale())
	return level
}

// Undo reverts the last annotation.
func (gc *GalleryController) Undo() bool {
	if gc.canvas.State() != StateIdle {
		return false
	}
	return gc.stack.Undo()
}

// Redo re-applies the next annotation.
func (gc *GalleryController) Redo() bool {
	if gc.canvas.State() != StateIdle {
		return false
	}
	return gc.stack.Redo()
}

// Reset removes all annotations and history, restores the default zoom and
// tools and shows the preview again.
func (gc *GalleryController) Reset() {
	gc.canvas.ResetTools()
	gc.scene.ClearItems()
	gc.stack.Clear()
	gc.zoom.Reset()
	gc.view.SetZoom(gc.zoom.Level(), gc.zoom.Scale())
	gc.showPreview()
	gc.view.UpdateStatus("Reset")
}

// Save flattens the preview with its annotations and encodes it as ext.
func (gc *GalleryController) Save(w io.Writer, ext string) error {
	if !gc.scene.HasBase() {
		return services.ErrNothingLoaded
	}
	img, err := services.Flatten(gc.scene)
	if err != nil {
		return err
	}
	if err := services.Encode(w, img, ext); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	b := img.Bounds()
	gc.logger.Info("GalleryController", "image saved", map[string]interface{}{
		"format": ext,
		"width":  b.Dx(),
		"height": b.Dy(),
		"items":  gc.scene.Len(),
	})
	return nil
}
