package controllers

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"image-browser/internal/config"
	"image-browser/internal/history"
	"image-browser/internal/logger"
	"image-browser/internal/models"
	"image-browser/internal/services"
	"image-browser/internal/views"
	"image-browser/internal/views/components"

	"fyne.io/fyne/v2"
)

// MainController wires the window to the gallery and canvas controllers.
type MainController struct {
	cfg      *config.Config
	logger   logger.Logger
	suffixes []string

	scene   *models.Scene
	stack   *history.Stack
	cache   *services.ResizeCache
	canvas  *CanvasController
	gallery *GalleryController

	mainView *views.MainView
}

// NewMainController creates the scene, history, cache and sub-controllers.
func NewMainController(cfg *config.Config, decoder services.Decoder, scaler services.Scaler, dispatch Dispatcher, log logger.Logger) *MainController {
	scene := models.NewScene()
	stack := history.NewStack(scene)
	cache := services.NewResizeCache(decoder, scaler, log)
	canvas := NewCanvasController(scene, stack, cfg, log)

	gallery := NewGalleryController(GalleryDeps{
		Config:   cfg,
		Decoder:  decoder,
		Scaler:   scaler,
		Cache:    cache,
		Scene:    scene,
		Stack:    stack,
		Canvas:   canvas,
		Dispatch: dispatch,
		Logger:   log,
	})

	return &MainController{
		cfg:      cfg,
		logger:   log,
		suffixes: services.SupportedSuffixes(decoder),
		scene:    scene,
		stack:    stack,
		cache:    cache,
		canvas:   canvas,
		gallery:  gallery,
	}
}

func (mc *MainController) Scene() *models.Scene         { return mc.scene }
func (mc *MainController) Canvas() *CanvasController    { return mc.canvas }
func (mc *MainController) Gallery() *GalleryController  { return mc.gallery }
func (mc *MainController) Suffixes() []string           { return mc.suffixes }
func (mc *MainController) MainView() *views.MainView    { return mc.mainView }
func (mc *MainController) Cache() *services.ResizeCache { return mc.cache }

// ToolbarOptions describes the toolbar selectors for the configured defaults.
func (mc *MainController) ToolbarOptions() components.ToolbarOptions {
	font, col := mc.canvas.TextStyle()
	return components.ToolbarOptions{
		Families:    services.FontFamilies(),
		Sizes:       services.StandardSizes(),
		Family:      font.Family,
		Size:        font.Size,
		Color:       col,
		PenWidth:    int(mc.canvas.Pen().Width),
		MinPenWidth: mc.cfg.Pen.MinWidth,
		MaxPenWidth: mc.cfg.Pen.MaxWidth,
	}
}

// SetMainView attaches the window and connects its events.
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.gallery.SetView(view)
	view.SetExtensions(services.Extensions(mc.suffixes))
	mc.setupViewEventHandlers()
}

func (mc *MainController) setupViewEventHandlers() {
	view := mc.mainView
	toolbar := view.GetToolbar()
	status := view.GetStatusBar()
	canvas := view.GetCanvas()

	view.SetOpenFileHandler(mc.OpenFile)
	view.SetOpenFolderHandler(mc.OpenFolder)
	view.SetSaveHandler(mc.Save)
	view.SetUndoHandler(func() { mc.gallery.Undo() })
	view.SetRedoHandler(func() { mc.gallery.Redo() })
	view.SetResetHandler(mc.Reset)
	view.SetViewportHandler(mc.gallery.ResizeViewport)

	view.GetGallery().SetSelectHandler(func(path string) {
		if err := mc.gallery.SelectThumbnail(path); err != nil {
			mc.logger.Warning("MainController", "select failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	})

	status.SetZoomInHandler(func() { mc.gallery.ZoomIn() })
	status.SetZoomOutHandler(func() { mc.gallery.ZoomOut() })
	status.SetZoomChangeHandler(func(percent int) { mc.gallery.SetZoom(percent) })

	toolbar.SetTextModeHandler(mc.canvas.SetTextMode)
	toolbar.SetStrokeModeHandler(mc.canvas.SetStrokeMode)
	toolbar.SetFontFamilyHandler(mc.canvas.SetFontFamily)
	toolbar.SetFontSizeHandler(mc.canvas.SetFontSize)
	toolbar.SetColorHandler(func(c color.NRGBA) {
		mc.canvas.SetColor(c)
	})
	toolbar.SetPenWidthHandler(func(width int) {
		mc.canvas.SetPenWidth(width)
	})

	mc.canvas.OnModeChange(func(m Mode) {
		toolbar.SetModes(m == ModeStroke, m == ModeText)
		view.SetInputEnabled(m != ModeNone)
	})
	mc.canvas.OnTextPlaced(canvas.FocusText)

	mc.stack.OnChange(func() {
		view.SetHistoryState(mc.stack.CanUndo(), mc.stack.CanRedo())
	})

	canvas.SetPointerDownHandler(mc.canvas.PointerDown)
	canvas.SetPointerMoveHandler(mc.canvas.PointerMove)
	canvas.SetPointerUpHandler(mc.canvas.PointerUp)
	canvas.SetTextChangeHandler(func(*models.TextBox) {
		mc.scene.Touch()
	})
}

// OpenPaths loads command line arguments. Directories contribute their
// supported images.
func (mc *MainController) OpenPaths(args []string) error {
	paths, err := ExpandPaths(args, mc.suffixes)
	if err != nil {
		mc.mainView.ShowError("Open failed", err)
	}
	if len(paths) == 0 {
		return err
	}
	return errors.Join(err, mc.open(paths))
}

// OpenFile loads a single image.
func (mc *MainController) OpenFile(path string) {
	if !services.IsSupported(path, mc.suffixes) {
		mc.mainView.ShowError("Open failed", fmt.Errorf("%w: %s", services.ErrUnsupportedFormat, filepath.Base(path)))
		return
	}
	mc.open([]string{path})
}

// OpenFolder loads every supported image of dir.
func (mc *MainController) OpenFolder(dir string) {
	paths, err := services.ListImages(dir, mc.suffixes)
	if err != nil {
		mc.mainView.ShowError("Open failed", err)
		return
	}
	mc.open(paths)
}

func (mc *MainController) open(paths []string) error {
	if err := mc.gallery.Open(paths); err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{
			"count": len(paths),
		})
		mc.mainView.ShowError("Open failed", err)
		return err
	}
	return nil
}

// Save writes the annotated preview to writer, in the format of its
// extension, and closes it.
func (mc *MainController) Save(writer fyne.URIWriteCloser) {
	uri := writer.URI()
	err := mc.gallery.Save(writer, uri.Extension())
	if cerr := writer.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{
			"uri": uri.String(),
		})
		mc.mainView.ShowError("Save failed", err)
		return
	}
	mc.mainView.UpdateStatus("Saved " + uri.Name())
}

// Reset clears annotations and restores tools and zoom.
func (mc *MainController) Reset() {
	mc.gallery.Reset()
	mc.syncToolbar()
}

func (mc *MainController) syncToolbar() {
	font, col := mc.canvas.TextStyle()
	mc.mainView.GetToolbar().SetTools(font.Family, font.Size, int(mc.canvas.Pen().Width), col)
}

// Shutdown stops background loading.
func (mc *MainController) Shutdown() {
	mc.gallery.Shutdown()
}

// ExpandPaths resolves command line arguments into image paths. Files are
// kept when their suffix is supported; directories are listed.
func ExpandPaths(args, suffixes []string) ([]string, error) {
	var (
		paths []string
		errs  []error
	)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.IsDir() {
			found, err := services.ListImages(arg, suffixes)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			paths = append(paths, found...)
			continue
		}
		if !services.IsSupported(arg, suffixes) {
			errs = append(errs, fmt.Errorf("%w: %s", services.ErrUnsupportedFormat, arg))
			continue
		}
		paths = append(paths, arg)
	}
	return paths, errors.Join(errs...)
}
