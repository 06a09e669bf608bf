package controllers

import (
	"image/color"

	"image-browser/internal/config"
	"image-browser/internal/history"
	"image-browser/internal/logger"
	"image-browser/internal/models"
)

// Mode is the active annotation tool. At most one tool is active.
type Mode int

const (
	ModeNone Mode = iota
	ModeStroke
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModeStroke:
		return "stroke"
	case ModeText:
		return "text"
	default:
		return "none"
	}
}

// State is the pointer gesture in progress.
type State int

const (
	StateIdle State = iota
	StateDrawingStroke
	StatePlacingText
)

func (s State) String() string {
	switch s {
	case StateDrawingStroke:
		return "drawing-stroke"
	case StatePlacingText:
		return "placing-text"
	default:
		return "idle"
	}
}

// CanvasController turns pointer gestures on the preview into annotations.
// Segments and text boxes appear on the scene while the gesture runs and
// are committed to the history when the pointer is released.
//
// All methods must be called from the UI goroutine.
type CanvasController struct {
	scene  *models.Scene
	stack  *history.Stack
	cfg    *config.Config
	logger logger.Logger

	mode  Mode
	state State

	pen       models.Pen
	font      models.FontSpec
	textColor color.NRGBA

	last    models.Point
	pending []*models.LineItem
	text    *models.TextBox

	onModeChange func(Mode)
	onTextPlaced func(*models.TextBox)
}

// NewCanvasController creates a controller with the configured tool defaults.
func NewCanvasController(scene *models.Scene, stack *history.Stack, cfg *config.Config, log logger.Logger) *CanvasController {
	cc := &CanvasController{
		scene:  scene,
		stack:  stack,
		cfg:    cfg,
		logger: log,
	}
	cc.applyDefaults()
	return cc
}

func (cc *CanvasController) applyDefaults() {
	cc.pen = models.Pen{Color: cc.cfg.PenColor(), Width: float32(cc.cfg.Pen.Width)}
	cc.font = models.FontSpec{Family: cc.cfg.Text.Family, Size: cc.cfg.Text.Size}
	cc.textColor = cc.cfg.TextColor()
}

// OnModeChange registers a listener for tool toggles, including the
// automatic switch-off at the end of a gesture.
func (cc *CanvasController) OnModeChange(fn func(Mode)) {
	cc.onModeChange = fn
}

// OnTextPlaced registers a listener called with every new text box so the
// view can focus it for typing.
func (cc *CanvasController) OnTextPlaced(fn func(*models.TextBox)) {
	cc.onTextPlaced = fn
}

func (cc *CanvasController) Mode() Mode   { return cc.mode }
func (cc *CanvasController) State() State { return cc.state }

// SetStrokeMode toggles the stroke tool. Enabling it disables the text tool.
func (cc *CanvasController) SetStrokeMode(on bool) {
	cc.toggle(ModeStroke, on)
}

// SetTextMode toggles the text tool. Enabling it disables the stroke tool.
func (cc *CanvasController) SetTextMode(on bool) {
	cc.toggle(ModeText, on)
}

func (cc *CanvasController) toggle(m Mode, on bool) {
	next := cc.mode
	switch {
	case on:
		next = m
	case cc.mode == m:
		next = ModeNone
	}
	cc.setMode(next)
}

// setMode switches the active tool. A gesture still in progress belongs to
// the old tool and is aborted.
func (cc *CanvasController) setMode(m Mode) {
	if cc.mode == m {
		return
	}
	if cc.state != StateIdle {
		cc.Abort()
	}
	cc.mode = m
	cc.logger.Debug("CanvasController", "mode changed", map[string]interface{}{
		"mode": m.String(),
	})
	if cc.onModeChange != nil {
		cc.onModeChange(m)
	}
}

// Pen returns the current stroke pen.
func (cc *CanvasController) Pen() models.Pen { return cc.pen }

// TextStyle returns the font and colour used for new text boxes.
func (cc *CanvasController) TextStyle() (models.FontSpec, color.NRGBA) {
	return cc.font, cc.textColor
}

// SetColor sets both the pen and the text colour.
func (cc *CanvasController) SetColor(c color.NRGBA) {
	cc.pen.Color = c
	cc.textColor = c
}

// SetPenWidth sets the pen width clamped to the configured range and
// returns the applied value.
func (cc *CanvasController) SetPenWidth(w int) int {
	if w < cc.cfg.Pen.MinWidth {
		w = cc.cfg.Pen.MinWidth
	}
	if w > cc.cfg.Pen.MaxWidth {
		w = cc.cfg.Pen.MaxWidth
	}
	cc.pen.Width = float32(w)
	return w
}

// SetFontFamily changes the family for new text boxes.
func (cc *CanvasController) SetFontFamily(family string) {
	cc.font.Family = family
}

// SetFontSize changes the point size for new text boxes.
func (cc *CanvasController) SetFontSize(size float64) {
	if size > 0 {
		cc.font.Size = size
	}
}

// ResetTools aborts any gesture, switches both tools off and restores the
// configured pen, font and colour.
func (cc *CanvasController) ResetTools() {
	cc.Abort()
	cc.applyDefaults()
	cc.setMode(ModeNone)
}

// PointerDown starts a gesture for the active tool. It is rejected while
// another gesture runs, when no tool is active or when there is no image.
func (cc *CanvasController) PointerDown(p models.Point) bool {
	if cc.state != StateIdle || !cc.scene.HasBase() {
		return false
	}

	switch cc.mode {
	case ModeStroke:
		cc.state = StateDrawingStroke
		cc.last = p
		cc.pending = nil
		return true
	case ModeText:
		cc.state = StatePlacingText
		cc.text = models.NewTextBox(p, cc.cfg.Text.Placeholder, cc.font, cc.textColor)
		cc.scene.Add(cc.text)
		if cc.onTextPlaced != nil {
			cc.onTextPlaced(cc.text)
		}
		return true
	default:
		return false
	}
}

// PointerMove extends the stroke by one segment or resizes the text box.
func (cc *CanvasController) PointerMove(p models.Point) {
	switch cc.state {
	case StateDrawingStroke:
		if p == cc.last {
			return
		}
		line := &models.LineItem{
			Segment: models.Segment{From: cc.last, To: p},
			Pen:     cc.pen,
		}
		cc.scene.Add(line)
		cc.pending = append(cc.pending, line)
		cc.last = p
	case StatePlacingText:
		cc.text.Resize(p)
		cc.scene.Touch()
	}
}

// PointerUp ends the gesture, commits it to the history and switches the
// tool off. Calling it while idle does nothing.
func (cc *CanvasController) PointerUp(p models.Point) {
	switch cc.state {
	case StateDrawingStroke:
		if len(cc.pending) > 0 {
			group := models.NewStrokeGroup(cc.pending, cc.pen)
			cc.stack.Push(history.NewStrokeCommand(group))
			cc.logger.Debug("CanvasController", "stroke committed", map[string]interface{}{
				"segments": len(group.Lines),
			})
		}
		cc.pending = nil
		cc.state = StateIdle
		cc.setMode(ModeNone)
	case StatePlacingText:
		if p != cc.text.Anchor {
			cc.text.Resize(p)
		}
		cc.text.Commit()
		cc.stack.Push(history.NewTextCommand(cc.text))
		cc.logger.Debug("CanvasController", "text box committed", nil)
		cc.text = nil
		cc.state = StateIdle
		cc.setMode(ModeNone)
	}
}

// Abort drops a gesture in progress without recording it. Items already
// drawn for it are removed from the scene.
func (cc *CanvasController) Abort() {
	switch cc.state {
	case StateDrawingStroke:
		for _, l := range cc.pending {
			cc.scene.Remove(l)
		}
	case StatePlacingText:
		cc.scene.Remove(cc.text)
	}
	cc.pending = nil
	cc.text = nil
	cc.state = StateIdle
}

// PendingSegments returns the number of segments of the stroke in progress.
func (cc *CanvasController) PendingSegments() int {
	return len(cc.pending)
}
