package components

import (
	"image/color"
	"strings"

	"image-browser/internal/models"
	"image-browser/internal/services"
	apptheme "image-browser/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TextBoxWidget renders a models.TextBox and edits its text when focused.
type TextBoxWidget struct {
	widget.BaseWidget

	box       *models.TextBox
	scale     float32
	focused   bool
	onChanged func(*models.TextBox)
}

// NewTextBoxWidget creates a widget for box at the given zoom scale.
func NewTextBoxWidget(box *models.TextBox, scale float32, onChanged func(*models.TextBox)) *TextBoxWidget {
	w := &TextBoxWidget{box: box, scale: scale, onChanged: onChanged}
	w.ExtendBaseWidget(w)
	return w
}

// Box returns the model.
func (w *TextBoxWidget) Box() *models.TextBox { return w.box }

// SetScale changes the zoom scale.
func (w *TextBoxWidget) SetScale(scale float32) {
	w.scale = scale
	w.Refresh()
}

// Focused reports whether the widget has keyboard focus.
func (w *TextBoxWidget) Focused() bool { return w.focused }

func (w *TextBoxWidget) Tapped(*fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(w); c != nil {
		c.Focus(w)
	}
}

func (w *TextBoxWidget) FocusGained() {
	w.focused = true
	w.Refresh()
}

func (w *TextBoxWidget) FocusLost() {
	w.focused = false
	w.Refresh()
}

// TypedRune appends r. The placeholder is replaced by the first rune.
func (w *TextBoxWidget) TypedRune(r rune) {
	text := w.box.Text()
	if w.box.IsPlaceholder() {
		text = ""
	}
	w.setText(text + string(r))
}

// TypedKey handles backspace and line breaks; escape drops the focus.
func (w *TextBoxWidget) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyBackspace:
		if w.box.IsPlaceholder() {
			w.setText("")
			return
		}
		runes := []rune(w.box.Text())
		if len(runes) > 0 {
			w.setText(string(runes[:len(runes)-1]))
		}
	case fyne.KeyReturn, fyne.KeyEnter:
		text := w.box.Text()
		if w.box.IsPlaceholder() {
			text = ""
		}
		w.setText(text + "\n")
	case fyne.KeyEscape:
		if c := fyne.CurrentApp().Driver().CanvasForObject(w); c != nil {
			c.Unfocus()
		}
	}
}

func (w *TextBoxWidget) setText(s string) {
	w.box.SetText(s)
	w.Refresh()
	if w.onChanged != nil {
		w.onChanged(w.box)
	}
}

func (w *TextBoxWidget) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1
	r := &textBoxRenderer{w: w, border: border}
	r.rebuild()
	return r
}

type textBoxRenderer struct {
	w      *TextBoxWidget
	border *canvas.Rectangle
	texts  []*canvas.Text
}

func (r *textBoxRenderer) style() (float32, fyne.TextStyle, color.Color) {
	box := r.w.box
	size := float32(box.Font.Size) * r.w.scale
	if size <= 0 {
		size = theme.TextSize()
	}
	col := color.Color(box.Color)
	if box.IsPlaceholder() {
		col = theme.Color(theme.ColorNamePlaceHolder)
	}
	return size, apptheme.StyleForFamily(box.Font.Family), col
}

func (r *textBoxRenderer) rebuild() {
	size, style, col := r.style()
	lines := wrapLines(r.w.box)
	r.texts = r.texts[:0]
	for _, line := range lines {
		t := canvas.NewText(line, col)
		t.TextSize = size
		t.TextStyle = style
		r.texts = append(r.texts, t)
	}
	if r.w.focused {
		r.border.StrokeColor = theme.Color(theme.ColorNameFocus)
	} else {
		r.border.StrokeColor = color.Transparent
	}
}

func (r *textBoxRenderer) Layout(size fyne.Size) {
	r.border.Resize(size)
	y := float32(0)
	for _, t := range r.texts {
		h := t.MinSize().Height
		t.Move(fyne.NewPos(0, y))
		t.Resize(fyne.NewSize(size.Width, h))
		y += h
	}
}

func (r *textBoxRenderer) MinSize() fyne.Size {
	var w, h float32
	for _, t := range r.texts {
		m := t.MinSize()
		if m.Width > w {
			w = m.Width
		}
		h += m.Height
	}
	b := r.w.box.Bounds()
	if bw := b.W * r.w.scale; bw > w {
		w = bw
	}
	if bh := b.H * r.w.scale; bh > h {
		h = bh
	}
	return fyne.NewSize(w, h)
}

func (r *textBoxRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.w.Size())
	r.border.Refresh()
	for _, t := range r.texts {
		t.Refresh()
	}
}

func (r *textBoxRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.texts)+1)
	objs = append(objs, r.border)
	for _, t := range r.texts {
		objs = append(objs, t)
	}
	return objs
}

func (r *textBoxRenderer) Destroy() {}

// wrapLines breaks the box text with the same faces and width the
// exported image uses, in scene units, so line breaks do not depend on zoom.
func wrapLines(box *models.TextBox) []string {
	face, err := services.FaceFor(box.Font)
	if err != nil {
		return strings.Split(box.Text(), "\n")
	}
	return services.WrapText(face, box.Text(), int(box.Bounds().W))
}
