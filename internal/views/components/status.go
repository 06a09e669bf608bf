package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the status message and the zoom controls.
type StatusBar struct {
	container     *fyne.Container
	statusLabel   *widget.Label
	zoomOutButton *widget.Button
	zoomInButton  *widget.Button
	zoomLabel     *widget.Label
	zoomSlider    *widget.Slider

	// Event handlers
	zoomInHandler     func()
	zoomOutHandler    func()
	zoomChangeHandler func(int)

	// updating suppresses slider callbacks while SetZoom moves it
	updating bool
}

// NewStatusBar creates a status bar with a zoom range of min..max percent.
func NewStatusBar(min, max, initial int) *StatusBar {
	sb := &StatusBar{}
	sb.createComponents(min, max, initial)
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents(min, max, initial int) {
	sb.statusLabel = widget.NewLabel("Ready")

	sb.zoomOutButton = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		if sb.zoomOutHandler != nil {
			sb.zoomOutHandler()
		}
	})
	sb.zoomInButton = widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		if sb.zoomInHandler != nil {
			sb.zoomInHandler()
		}
	})

	sb.zoomLabel = widget.NewLabel(formatZoom(initial))

	sb.zoomSlider = widget.NewSlider(float64(min), float64(max))
	sb.zoomSlider.Step = 1
	sb.zoomSlider.SetValue(float64(initial))
	sb.zoomSlider.OnChanged = func(v float64) {
		if sb.updating {
			return
		}
		sb.zoomLabel.SetText(formatZoom(int(v)))
		if sb.zoomChangeHandler != nil {
			sb.zoomChangeHandler(int(v))
		}
	}
}

func (sb *StatusBar) buildLayout() {
	sliderBox := container.NewGridWrap(fyne.NewSize(200, sb.zoomSlider.MinSize().Height), sb.zoomSlider)
	zoomSection := container.NewHBox(
		sb.zoomOutButton,
		sb.zoomLabel,
		sb.zoomInButton,
		sliderBox,
	)
	sb.container = container.NewBorder(nil, nil, sb.statusLabel, zoomSection)
}

func formatZoom(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}

func (sb *StatusBar) SetZoomInHandler(handler func())        { sb.zoomInHandler = handler }
func (sb *StatusBar) SetZoomOutHandler(handler func())       { sb.zoomOutHandler = handler }
func (sb *StatusBar) SetZoomChangeHandler(handler func(int)) { sb.zoomChangeHandler = handler }

// SetZoom shows percent on the label and slider without firing handlers.
func (sb *StatusBar) SetZoom(percent int) {
	sb.updating = true
	defer func() { sb.updating = false }()

	sb.zoomLabel.SetText(formatZoom(percent))
	sb.zoomSlider.SetValue(float64(percent))
}

// Zoom returns the percentage shown.
func (sb *StatusBar) Zoom() int {
	return int(sb.zoomSlider.Value)
}

// SetStatus updates the status message.
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message.
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// GetContainer returns the status bar container.
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
