package components

import (
	"image/color"

	"image-browser/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ThumbnailWidget shows one gallery entry and reports taps.
type ThumbnailWidget struct {
	widget.BaseWidget

	thumb  *models.Thumbnail
	side   float32
	onTap  func(*models.Thumbnail)
	image  *canvas.Image
	border *canvas.Rectangle
	label  *canvas.Text
}

// NewThumbnailWidget creates a widget for t with a side x side image area.
func NewThumbnailWidget(t *models.Thumbnail, side float32, onTap func(*models.Thumbnail)) *ThumbnailWidget {
	w := &ThumbnailWidget{thumb: t, side: side, onTap: onTap}
	w.image = canvas.NewImageFromImage(t.Bitmap)
	w.image.FillMode = canvas.ImageFillContain
	w.image.ScaleMode = canvas.ImageScaleSmooth
	w.border = canvas.NewRectangle(color.Transparent)
	w.border.StrokeWidth = 3
	w.label = canvas.NewText(shortName(t.Path), theme.Color(theme.ColorNameForeground))
	w.label.TextSize = theme.CaptionTextSize()
	w.label.Alignment = fyne.TextAlignCenter
	w.ExtendBaseWidget(w)
	w.syncSelection()
	return w
}

func shortName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

func (w *ThumbnailWidget) syncSelection() {
	if w.thumb.Selected() {
		w.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		w.border.FillColor = theme.Color(theme.ColorNameSelection)
	} else {
		w.border.StrokeColor = color.Transparent
		w.border.FillColor = color.Transparent
	}
}

// Thumbnail returns the model shown by the widget.
func (w *ThumbnailWidget) Thumbnail() *models.Thumbnail { return w.thumb }

// Update re-reads bitmap and selection from the model.
func (w *ThumbnailWidget) Update() {
	w.image.Image = w.thumb.Bitmap
	w.syncSelection()
	w.Refresh()
}

// SetSide changes the image area.
func (w *ThumbnailWidget) SetSide(side float32) {
	w.side = side
	w.Refresh()
}

// Tapped selects the thumbnail.
func (w *ThumbnailWidget) Tapped(*fyne.PointEvent) {
	if w.onTap != nil {
		w.onTap(w.thumb)
	}
}

func (w *ThumbnailWidget) CreateRenderer() fyne.WidgetRenderer {
	return &thumbnailRenderer{w: w}
}

type thumbnailRenderer struct {
	w *ThumbnailWidget
}

func (r *thumbnailRenderer) Layout(size fyne.Size) {
	pad := theme.Padding()
	labelH := r.w.label.MinSize().Height
	r.w.border.Resize(size)
	r.w.border.Move(fyne.NewPos(0, 0))
	r.w.image.Move(fyne.NewPos(pad, pad))
	r.w.image.Resize(fyne.NewSize(size.Width-2*pad, size.Height-labelH-2*pad))
	r.w.label.Move(fyne.NewPos(pad, size.Height-labelH-pad))
	r.w.label.Resize(fyne.NewSize(size.Width-2*pad, labelH))
}

func (r *thumbnailRenderer) MinSize() fyne.Size {
	pad := theme.Padding()
	side := r.w.side
	if img := r.w.thumb.Bitmap; img != nil {
		b := img.Bounds()
		if b.Dx() > 0 {
			h := side * float32(b.Dy()) / float32(b.Dx())
			return fyne.NewSize(side+2*pad, h+r.w.label.MinSize().Height+2*pad)
		}
	}
	return fyne.NewSize(side+2*pad, side+r.w.label.MinSize().Height+2*pad)
}

func (r *thumbnailRenderer) Refresh() {
	r.Layout(r.w.Size())
	r.w.border.Refresh()
	r.w.image.Refresh()
	r.w.label.Refresh()
}

func (r *thumbnailRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.w.border, r.w.image, r.w.label}
}

func (r *thumbnailRenderer) Destroy() {}

// GalleryList is the vertical, scrollable thumbnail strip.
type GalleryList struct {
	box     *fyne.Container
	scroll  *container.Scroll
	watcher *resizeWatcher
	widgets map[*models.Thumbnail]*ThumbnailWidget
	side    float32
	spacing float32

	// Event handlers
	selectHandler func(path string)
	resizeHandler func(width int)
}

// NewGalleryList creates an empty list with side x side thumbnails.
func NewGalleryList(side, spacing int) *GalleryList {
	g := &GalleryList{
		widgets: make(map[*models.Thumbnail]*ThumbnailWidget),
		side:    float32(side),
		spacing: float32(spacing),
	}
	g.box = container.NewVBox()
	g.scroll = container.NewVScroll(container.NewPadded(g.box))
	g.scroll.SetMinSize(fyne.NewSize(g.side+2*g.spacing, g.side))
	g.watcher = newResizeWatcher(g.scroll, g.resized)
	return g
}

func (g *GalleryList) resized(size fyne.Size) {
	width := int(size.Width - 2*g.spacing - theme.ScrollBarSize())
	if width <= 0 {
		return
	}
	g.side = float32(width)
	for _, w := range g.widgets {
		w.SetSide(g.side)
	}
	if g.resizeHandler != nil {
		g.resizeHandler(width)
	}
}

func (g *GalleryList) SetSelectHandler(handler func(path string)) { g.selectHandler = handler }
func (g *GalleryList) SetResizeHandler(handler func(width int))   { g.resizeHandler = handler }

// Reset removes every thumbnail.
func (g *GalleryList) Reset() {
	g.widgets = make(map[*models.Thumbnail]*ThumbnailWidget)
	g.box.RemoveAll()
	g.scroll.ScrollToTop()
}

// Add appends a widget for t.
func (g *GalleryList) Add(t *models.Thumbnail) {
	w := NewThumbnailWidget(t, g.side, func(t *models.Thumbnail) {
		if g.selectHandler != nil {
			g.selectHandler(t.Path)
		}
	})
	g.widgets[t] = w
	g.box.Add(w)
}

// Update refreshes the widget for t.
func (g *GalleryList) Update(t *models.Thumbnail) {
	if w, ok := g.widgets[t]; ok {
		w.Update()
	}
}

// Len returns the number of thumbnails shown.
func (g *GalleryList) Len() int {
	return len(g.widgets)
}

// Widget returns the widget showing t.
func (g *GalleryList) Widget(t *models.Thumbnail) *ThumbnailWidget {
	return g.widgets[t]
}

// GetContainer returns the list wrapped in its resize watcher.
func (g *GalleryList) GetContainer() fyne.CanvasObject {
	return g.watcher
}
