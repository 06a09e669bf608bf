package components

import (
	"image/color"

	"image-browser/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AnnotationCanvas shows the preview scene at the current zoom and turns
// mouse gestures into scene coordinates.
type AnnotationCanvas struct {
	widget.BaseWidget

	scene *models.Scene
	scale float32

	image   *canvas.Image
	content *fyne.Container
	input   *inputLayer
	scroll  *container.Scroll
	empty   *widget.Label
	lines   map[*models.LineItem]*canvas.Line
	texts   map[*models.TextBox]*TextBoxWidget

	// Event handlers
	pointerDownHandler func(models.Point) bool
	pointerMoveHandler func(models.Point)
	pointerUpHandler   func(models.Point)
	resizeHandler      func(width, height int)
	textChangeHandler  func(*models.TextBox)

	lastSize fyne.Size
}

// NewAnnotationCanvas creates a canvas bound to scene. It redraws on every
// scene change.
func NewAnnotationCanvas(scene *models.Scene) *AnnotationCanvas {
	c := &AnnotationCanvas{
		scene: scene,
		scale: 1,
		lines: make(map[*models.LineItem]*canvas.Line),
		texts: make(map[*models.TextBox]*TextBoxWidget),
	}

	c.image = canvas.NewImageFromImage(nil)
	c.image.FillMode = canvas.ImageFillStretch
	c.image.ScaleMode = canvas.ImageScaleSmooth

	c.input = newInputLayer(c)
	c.input.Hide()

	c.content = container.NewWithoutLayout(c.image, c.input)
	c.scroll = container.NewScroll(c.content)
	c.empty = widget.NewLabel("Open images to begin")
	c.empty.Alignment = fyne.TextAlignCenter

	c.ExtendBaseWidget(c)
	scene.SetOnChange(c.Sync)
	c.Sync()
	return c
}

func (c *AnnotationCanvas) SetPointerDownHandler(handler func(models.Point) bool) {
	c.pointerDownHandler = handler
}
func (c *AnnotationCanvas) SetPointerMoveHandler(handler func(models.Point)) {
	c.pointerMoveHandler = handler
}
func (c *AnnotationCanvas) SetPointerUpHandler(handler func(models.Point)) {
	c.pointerUpHandler = handler
}
func (c *AnnotationCanvas) SetResizeHandler(handler func(width, height int)) {
	c.resizeHandler = handler
}
func (c *AnnotationCanvas) SetTextChangeHandler(handler func(*models.TextBox)) {
	c.textChangeHandler = handler
}

// SetScale sets the zoom factor; 1 shows the preview bitmap 1:1.
func (c *AnnotationCanvas) SetScale(scale float64) {
	if scale <= 0 {
		return
	}
	c.scale = float32(scale)
	c.Sync()
}

// Scale returns the zoom factor.
func (c *AnnotationCanvas) Scale() float64 {
	return float64(c.scale)
}

// SetInputEnabled routes mouse gestures to the pointer handlers. While
// disabled, text boxes can be clicked for editing.
func (c *AnnotationCanvas) SetInputEnabled(enabled bool) {
	if enabled {
		c.input.Show()
	} else {
		c.input.Hide()
	}
}

// InputEnabled reports whether gestures are captured.
func (c *AnnotationCanvas) InputEnabled() bool {
	return c.input.Visible()
}

// Sync brings the displayed objects in line with the scene.
func (c *AnnotationCanvas) Sync() {
	base := c.scene.Base()
	if base == nil || base.Image == nil {
		c.image.Image = nil
		c.image.SetMinSize(fyne.NewSize(0, 0))
		c.image.Hide()
		c.empty.Show()
	} else {
		w, h := base.Size()
		size := fyne.NewSize(float32(w)*c.scale, float32(h)*c.scale)
		c.image.Image = base.Image
		c.image.SetMinSize(size)
		c.image.Resize(size)
		c.image.Move(fyne.NewPos(0, 0))
		c.image.Show()
		c.empty.Hide()
		c.input.Resize(size)
		c.content.Resize(size)
	}
	c.image.Refresh()

	c.syncLines()
	c.syncTexts()
	c.scroll.Refresh()
}

func (c *AnnotationCanvas) toCanvas(p models.Point) fyne.Position {
	return fyne.NewPos(p.X*c.scale, p.Y*c.scale)
}

func (c *AnnotationCanvas) toScene(p fyne.Position) models.Point {
	return models.Point{X: p.X / c.scale, Y: p.Y / c.scale}
}

func (c *AnnotationCanvas) syncLines() {
	present := make(map[*models.LineItem]bool)
	for _, item := range c.scene.Lines() {
		present[item] = true
		line, ok := c.lines[item]
		if !ok {
			line = canvas.NewLine(item.Pen.Color)
			c.lines[item] = line
			c.content.Add(line)
		}
		line.StrokeColor = item.Pen.Color
		line.StrokeWidth = item.Pen.Width * c.scale
		line.Position1 = c.toCanvas(item.From)
		line.Position2 = c.toCanvas(item.To)
		line.Refresh()
	}
	for item, line := range c.lines {
		if !present[item] {
			c.content.Remove(line)
			delete(c.lines, item)
		}
	}
}

func (c *AnnotationCanvas) syncTexts() {
	present := make(map[*models.TextBox]bool)
	for _, box := range c.scene.Texts() {
		present[box] = true
		w, ok := c.texts[box]
		if !ok {
			w = NewTextBoxWidget(box, c.scale, func(b *models.TextBox) {
				if c.textChangeHandler != nil {
					c.textChangeHandler(b)
				}
			})
			c.texts[box] = w
			c.content.Add(w)
		}
		w.SetScale(c.scale)
		b := box.Bounds()
		w.Move(fyne.NewPos(b.X*c.scale, b.Y*c.scale))
		w.Resize(w.MinSize())
	}
	for box, w := range c.texts {
		if !present[box] {
			c.content.Remove(w)
			delete(c.texts, box)
		}
	}
}

// FocusText gives keyboard focus to the widget of box.
func (c *AnnotationCanvas) FocusText(box *models.TextBox) {
	c.Sync()
	w, ok := c.texts[box]
	if !ok {
		return
	}
	if cv := fyne.CurrentApp().Driver().CanvasForObject(c); cv != nil {
		cv.Focus(w)
	}
}

// TextWidget returns the widget showing box.
func (c *AnnotationCanvas) TextWidget(box *models.TextBox) *TextBoxWidget {
	return c.texts[box]
}

// LineCount returns the number of drawn segments.
func (c *AnnotationCanvas) LineCount() int {
	return len(c.lines)
}

// Resize reports the viewport size minus the scroll bars.
func (c *AnnotationCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	if size == c.lastSize {
		return
	}
	c.lastSize = size
	if c.resizeHandler != nil {
		bar := theme.ScrollBarSize()
		c.resizeHandler(int(size.Width-bar), int(size.Height-bar))
	}
}

func (c *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	return widget.NewSimpleRenderer(container.NewStack(bg, c.scroll, container.NewCenter(c.empty)))
}

// inputLayer sits above the image and captures mouse gestures.
type inputLayer struct {
	widget.BaseWidget

	canvas  *AnnotationCanvas
	pressed bool
	last    fyne.Position
}

func newInputLayer(c *AnnotationCanvas) *inputLayer {
	l := &inputLayer{canvas: c}
	l.ExtendBaseWidget(l)
	return l
}

func (l *inputLayer) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	h := l.canvas.pointerDownHandler
	if h == nil {
		return
	}
	l.last = ev.Position
	l.pressed = h(l.canvas.toScene(ev.Position))
}

func (l *inputLayer) Dragged(ev *fyne.DragEvent) {
	if !l.pressed {
		return
	}
	l.last = ev.Position
	if h := l.canvas.pointerMoveHandler; h != nil {
		h(l.canvas.toScene(ev.Position))
	}
}

func (l *inputLayer) DragEnd() {
	l.release(l.last)
}

func (l *inputLayer) MouseUp(ev *desktop.MouseEvent) {
	l.release(ev.Position)
}

func (l *inputLayer) release(p fyne.Position) {
	if !l.pressed {
		return
	}
	l.pressed = false
	if h := l.canvas.pointerUpHandler; h != nil {
		h(l.canvas.toScene(p))
	}
}

func (l *inputLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}
