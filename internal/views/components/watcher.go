package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// resizeWatcher wraps content and reports every size change.
type resizeWatcher struct {
	widget.BaseWidget

	content  fyne.CanvasObject
	onResize func(fyne.Size)
	last     fyne.Size
}

func newResizeWatcher(content fyne.CanvasObject, onResize func(fyne.Size)) *resizeWatcher {
	w := &resizeWatcher{content: content, onResize: onResize}
	w.ExtendBaseWidget(w)
	return w
}

func (w *resizeWatcher) Resize(size fyne.Size) {
	w.BaseWidget.Resize(size)
	if size == w.last {
		return
	}
	w.last = size
	if w.onResize != nil {
		w.onResize(size)
	}
}

func (w *resizeWatcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.content)
}
