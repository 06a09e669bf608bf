package views

import (
	"path/filepath"

	"image-browser/internal/config"
	"image-browser/internal/models"
	"image-browser/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
)

const windowTitle = "Image Browser"

// MainView is the browser window: toolbar on top, thumbnail gallery on the
// left, annotation canvas in the centre and the status bar at the bottom.
type MainView struct {
	// UI Components
	window        fyne.Window
	mainContainer *fyne.Container
	split         *container.Split
	toolbar       *components.Toolbar
	gallery       *components.GalleryList
	canvas        *components.AnnotationCanvas
	statusBar     *components.StatusBar
	toolbarItem   *fyne.MenuItem
	undoItem      *fyne.MenuItem
	redoItem      *fyne.MenuItem
	mainMenu      *fyne.MainMenu

	// Event handlers - connected to controller
	openFileHandler   func(path string)
	openFolderHandler func(dir string)
	saveHandler       func(fyne.URIWriteCloser)
	undoHandler       func()
	redoHandler       func()
	resetHandler      func()
	viewportHandler   func(galleryWidth, previewW, previewH int)

	extensions   []string
	galleryWidth int
	previewW     int
	previewH     int
}

// NewMainView builds the window content for scene.
func NewMainView(window fyne.Window, scene *models.Scene, cfg *config.Config, tools components.ToolbarOptions) *MainView {
	view := &MainView{window: window}

	view.initializeComponents(scene, cfg, tools)
	view.buildLayout()
	view.buildMenus()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(scene *models.Scene, cfg *config.Config, tools components.ToolbarOptions) {
	mv.toolbar = components.NewToolbar(mv.window, tools)
	mv.gallery = components.NewGalleryList(cfg.Thumbnail.Size, cfg.Thumbnail.Spacing)
	mv.canvas = components.NewAnnotationCanvas(scene)
	mv.statusBar = components.NewStatusBar(cfg.Zoom.Min, cfg.Zoom.Max, cfg.Zoom.Default)
}

func (mv *MainView) buildLayout() {
	mv.split = container.NewHSplit(mv.gallery.GetContainer(), mv.canvas)
	mv.split.Offset = 0.2

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.split,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenus() {
	undo := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redo := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}

	openFile := fyne.NewMenuItem("Open File...", mv.ShowOpenFileDialog)
	openFolder := fyne.NewMenuItem("Open Folder...", mv.ShowOpenFolderDialog)
	saveAs := fyne.NewMenuItem("Save As...", mv.ShowSaveDialog)

	mv.toolbarItem = fyne.NewMenuItem("Toolbar", func() {
		mv.SetToolbarVisible(!mv.toolbar.Visible())
	})
	mv.undoItem = fyne.NewMenuItem("Undo", mv.undo)
	mv.undoItem.Shortcut = undo
	mv.undoItem.Disabled = true
	mv.redoItem = fyne.NewMenuItem("Redo", mv.redo)
	mv.redoItem.Shortcut = redo
	mv.redoItem.Disabled = true
	resetItem := fyne.NewMenuItem("Reset", func() {
		if mv.resetHandler != nil {
			mv.resetHandler()
		}
	})

	mv.mainMenu = fyne.NewMainMenu(
		fyne.NewMenu("File", openFile, openFolder, fyne.NewMenuItemSeparator(), saveAs),
		fyne.NewMenu("Edit", mv.toolbarItem, fyne.NewMenuItemSeparator(), mv.undoItem, mv.redoItem, fyne.NewMenuItemSeparator(), resetItem),
	)
	mv.window.SetMainMenu(mv.mainMenu)

	mv.window.Canvas().AddShortcut(undo, func(fyne.Shortcut) { mv.undo() })
	mv.window.Canvas().AddShortcut(redo, func(fyne.Shortcut) { mv.redo() })
}

func (mv *MainView) undo() {
	if mv.undoHandler != nil {
		mv.undoHandler()
	}
}

func (mv *MainView) redo() {
	if mv.redoHandler != nil {
		mv.redoHandler()
	}
}

// setupEventHandlers connects the pane sizes to the viewport handler.
func (mv *MainView) setupEventHandlers() {
	mv.gallery.SetResizeHandler(func(width int) {
		mv.galleryWidth = width
		mv.notifyViewport()
	})
	mv.canvas.SetResizeHandler(func(width, height int) {
		mv.previewW, mv.previewH = width, height
		mv.notifyViewport()
	})
	mv.toolbar.SetSaveHandler(mv.ShowSaveDialog)
	mv.toolbar.SetResetHandler(func() {
		if mv.resetHandler != nil {
			mv.resetHandler()
		}
	})
}

func (mv *MainView) notifyViewport() {
	if mv.viewportHandler == nil || mv.galleryWidth <= 0 || mv.previewW <= 0 || mv.previewH <= 0 {
		return
	}
	mv.viewportHandler(mv.galleryWidth, mv.previewW, mv.previewH)
}

// Event handler setters - called by controller

func (mv *MainView) SetOpenFileHandler(handler func(path string))     { mv.openFileHandler = handler }
func (mv *MainView) SetOpenFolderHandler(handler func(dir string))    { mv.openFolderHandler = handler }
func (mv *MainView) SetSaveHandler(handler func(fyne.URIWriteCloser)) { mv.saveHandler = handler }
func (mv *MainView) SetUndoHandler(handler func())                    { mv.undoHandler = handler }
func (mv *MainView) SetRedoHandler(handler func())                    { mv.redoHandler = handler }
func (mv *MainView) SetResetHandler(handler func())                   { mv.resetHandler = handler }

// SetViewportHandler receives the gallery width and the preview pane size
// whenever either changes.
func (mv *MainView) SetViewportHandler(handler func(galleryWidth, previewW, previewH int)) {
	mv.viewportHandler = handler
	mv.notifyViewport()
}

// SetExtensions limits the open file dialog to the given dotted suffixes.
func (mv *MainView) SetExtensions(extensions []string) {
	mv.extensions = extensions
}

// GalleryView implementation

func (mv *MainView) ResetThumbnails()                    { mv.gallery.Reset() }
func (mv *MainView) AddThumbnail(t *models.Thumbnail)    { mv.gallery.Add(t) }
func (mv *MainView) UpdateThumbnail(t *models.Thumbnail) { mv.gallery.Update(t) }

// SetPreview shows bmp, or the empty state for nil.
func (mv *MainView) SetPreview(bmp *models.ScaledBitmap) {
	mv.canvas.Sync()
	if bmp == nil {
		mv.window.SetTitle(windowTitle)
		return
	}
	mv.window.SetTitle(filepath.Base(bmp.Path) + " - " + windowTitle)
}

// SetZoom updates the status bar and scales the canvas.
func (mv *MainView) SetZoom(percent int, scale float64) {
	mv.statusBar.SetZoom(percent)
	mv.canvas.SetScale(scale)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	mv.statusBar.SetStatus(title)
	dialog.ShowError(err, mv.window)
}

// SetToolbarVisible shows or hides the annotation toolbar.
func (mv *MainView) SetToolbarVisible(visible bool) {
	mv.toolbar.SetVisible(visible)
	mv.toolbarItem.Checked = visible
	mv.mainMenu.Refresh()
	mv.mainContainer.Refresh()
}

// SetHistoryState enables the Undo and Redo menu items.
func (mv *MainView) SetHistoryState(canUndo, canRedo bool) {
	mv.undoItem.Disabled = !canUndo
	mv.redoItem.Disabled = !canRedo
	mv.mainMenu.Refresh()
}

// HistoryState reports which of Undo and Redo are enabled.
func (mv *MainView) HistoryState() (canUndo, canRedo bool) {
	return !mv.undoItem.Disabled, !mv.redoItem.Disabled
}

// SetInputEnabled routes mouse gestures on the canvas to the active tool.
func (mv *MainView) SetInputEnabled(enabled bool) {
	mv.canvas.SetInputEnabled(enabled)
}

// ShowOpenFileDialog asks for a single image.
func (mv *MainView) ShowOpenFileDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("Open failed", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if mv.openFileHandler != nil {
			mv.openFileHandler(path)
		}
	}, mv.window)
	if len(mv.extensions) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(mv.extensions))
	}
	d.Show()
}

// ShowOpenFolderDialog asks for a directory of images.
func (mv *MainView) ShowOpenFolderDialog() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			mv.ShowError("Open failed", err)
			return
		}
		if dir == nil {
			return
		}
		if mv.openFolderHandler != nil {
			mv.openFolderHandler(dir.Path())
		}
	}, mv.window)
}

// ShowSaveDialog asks where to write the annotated image. The extension of
// the chosen name selects the format.
func (mv *MainView) ShowSaveDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("Save failed", err)
			return
		}
		if writer == nil {
			return
		}
		if mv.saveHandler != nil {
			mv.saveHandler(writer)
		} else {
			writer.Close()
		}
	}, mv.window)
	d.SetFileName("annotated.png")
	d.Show()
}

func (mv *MainView) GetWindow() fyne.Window                  { return mv.window }
func (mv *MainView) GetContainer() *fyne.Container           { return mv.mainContainer }
func (mv *MainView) GetToolbar() *components.Toolbar         { return mv.toolbar }
func (mv *MainView) GetGallery() *components.GalleryList     { return mv.gallery }
func (mv *MainView) GetCanvas() *components.AnnotationCanvas { return mv.canvas }
func (mv *MainView) GetStatusBar() *components.StatusBar     { return mv.statusBar }
