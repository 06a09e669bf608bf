package components

import (
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ToolbarOptions fills the toolbar selectors.
type ToolbarOptions struct {
	Families    []string
	Sizes       []int
	Family      string
	Size        float64
	Color       color.NRGBA
	PenWidth    int
	MinPenWidth int
	MaxPenWidth int
}

// Toolbar holds the annotation tools. It starts hidden.
type Toolbar struct {
	container    *fyne.Container
	window       fyne.Window
	textButton   *widget.Button
	familySelect *widget.Select
	sizeSelect   *widget.Select
	colorSwatch  *canvas.Rectangle
	colorButton  *widget.Button
	strokeButton *widget.Button
	penLabel     *widget.Label
	penSlider    *widget.Slider
	saveButton   *widget.Button
	resetButton  *widget.Button

	// Event handlers
	textModeHandler   func(bool)
	strokeModeHandler func(bool)
	familyHandler     func(string)
	sizeHandler       func(float64)
	colorHandler      func(color.NRGBA)
	penWidthHandler   func(int)
	saveHandler       func()
	resetHandler      func()

	// State
	textActive   bool
	strokeActive bool
	color        color.NRGBA
	updating     bool
}

// NewToolbar creates the toolbar. window parents the colour picker.
func NewToolbar(window fyne.Window, opts ToolbarOptions) *Toolbar {
	t := &Toolbar{window: window, color: opts.Color}
	t.createComponents(opts)
	t.buildLayout()
	t.container.Hide()
	return t
}

func (t *Toolbar) createComponents(opts ToolbarOptions) {
	t.textButton = widget.NewButtonWithIcon("Text", theme.FileTextIcon(), func() {
		if t.textModeHandler != nil {
			t.textModeHandler(!t.textActive)
		}
	})

	t.familySelect = widget.NewSelect(opts.Families, func(family string) {
		if !t.updating && t.familyHandler != nil {
			t.familyHandler(family)
		}
	})
	t.familySelect.SetSelected(opts.Family)

	sizes := make([]string, len(opts.Sizes))
	for i, s := range opts.Sizes {
		sizes[i] = strconv.Itoa(s)
	}
	t.sizeSelect = widget.NewSelect(sizes, func(s string) {
		size, err := strconv.ParseFloat(s, 64)
		if err != nil || t.updating || t.sizeHandler == nil {
			return
		}
		t.sizeHandler(size)
	})
	t.sizeSelect.SetSelected(strconv.FormatFloat(opts.Size, 'f', -1, 64))

	t.colorSwatch = canvas.NewRectangle(opts.Color)
	t.colorSwatch.SetMinSize(fyne.NewSize(24, 24))
	t.colorSwatch.StrokeColor = theme.Color(theme.ColorNameForeground)
	t.colorSwatch.StrokeWidth = 1
	t.colorButton = widget.NewButtonWithIcon("Colour", theme.ColorPaletteIcon(), t.showColorPicker)

	t.strokeButton = widget.NewButtonWithIcon("Pen", theme.DocumentCreateIcon(), func() {
		if t.strokeModeHandler != nil {
			t.strokeModeHandler(!t.strokeActive)
		}
	})

	t.penLabel = widget.NewLabel(penLabelText(opts.PenWidth))
	t.penSlider = widget.NewSlider(float64(opts.MinPenWidth), float64(opts.MaxPenWidth))
	t.penSlider.Step = 1
	t.penSlider.SetValue(float64(opts.PenWidth))
	t.penSlider.OnChanged = func(v float64) {
		t.penLabel.SetText(penLabelText(int(v)))
		if !t.updating && t.penWidthHandler != nil {
			t.penWidthHandler(int(v))
		}
	}

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	})
	t.resetButton = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		if t.resetHandler != nil {
			t.resetHandler()
		}
	})
}

func penLabelText(width int) string {
	return fmt.Sprintf("Pen size: %d", width)
}

func (t *Toolbar) buildLayout() {
	textSection := container.NewHBox(t.textButton, t.familySelect, t.sizeSelect)
	colorSection := container.NewHBox(container.NewCenter(t.colorSwatch), t.colorButton)
	penSlider := container.NewGridWrap(fyne.NewSize(160, t.penSlider.MinSize().Height), t.penSlider)
	penSection := container.NewHBox(t.strokeButton, t.penLabel, penSlider)

	t.container = container.NewHBox(
		textSection,
		widget.NewSeparator(),
		colorSection,
		widget.NewSeparator(),
		penSection,
		widget.NewSeparator(),
		t.saveButton,
		t.resetButton,
	)
}

func (t *Toolbar) showColorPicker() {
	picker := dialog.NewColorPicker("Colour", "Pick the pen and text colour", func(c color.Color) {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		t.SetColor(nrgba)
		if t.colorHandler != nil {
			t.colorHandler(nrgba)
		}
	}, t.window)
	picker.Advanced = true
	picker.SetColor(t.color)
	picker.Show()
}

func (t *Toolbar) SetTextModeHandler(handler func(bool))     { t.textModeHandler = handler }
func (t *Toolbar) SetStrokeModeHandler(handler func(bool))   { t.strokeModeHandler = handler }
func (t *Toolbar) SetFontFamilyHandler(handler func(string)) { t.familyHandler = handler }
func (t *Toolbar) SetFontSizeHandler(handler func(float64))  { t.sizeHandler = handler }
func (t *Toolbar) SetColorHandler(handler func(color.NRGBA)) { t.colorHandler = handler }
func (t *Toolbar) SetPenWidthHandler(handler func(int))      { t.penWidthHandler = handler }
func (t *Toolbar) SetSaveHandler(handler func())             { t.saveHandler = handler }
func (t *Toolbar) SetResetHandler(handler func())            { t.resetHandler = handler }

// SetModes highlights the active tool button.
func (t *Toolbar) SetModes(stroke, text bool) {
	t.strokeActive, t.textActive = stroke, text
	t.strokeButton.Importance = importanceFor(stroke)
	t.textButton.Importance = importanceFor(text)
	t.strokeButton.Refresh()
	t.textButton.Refresh()
}

func importanceFor(active bool) widget.Importance {
	if active {
		return widget.HighImportance
	}
	return widget.MediumImportance
}

// Modes returns the highlighted tools.
func (t *Toolbar) Modes() (stroke, text bool) {
	return t.strokeActive, t.textActive
}

// SetColor updates the swatch.
func (t *Toolbar) SetColor(c color.NRGBA) {
	t.color = c
	t.colorSwatch.FillColor = c
	t.colorSwatch.Refresh()
}

// SetTools shows the given settings without firing handlers.
func (t *Toolbar) SetTools(family string, size float64, penWidth int, c color.NRGBA) {
	t.updating = true
	defer func() { t.updating = false }()

	t.familySelect.SetSelected(family)
	t.sizeSelect.SetSelected(strconv.FormatFloat(size, 'f', -1, 64))
	t.penSlider.SetValue(float64(penWidth))
	t.penLabel.SetText(penLabelText(penWidth))
	t.SetColor(c)
}

// PenLabel returns the pen size caption.
func (t *Toolbar) PenLabel() string {
	return t.penLabel.Text
}

// SetVisible shows or hides the toolbar.
func (t *Toolbar) SetVisible(visible bool) {
	if visible {
		t.container.Show()
	} else {
		t.container.Hide()
	}
}

// Visible reports whether the toolbar is shown.
func (t *Toolbar) Visible() bool {
	return t.container.Visible()
}

// GetContainer returns the toolbar container.
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
