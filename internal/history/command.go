// Package history implements the annotation undo/redo stack.
package history

import "image-browser/internal/models"

// Command adds one committed annotation to a scene. It is a tagged variant
// over the two annotation kinds; undo and redo only add or remove the
// items the annotation owns and never touch their content.
type Command struct {
	kind   models.AnnotationKind
	stroke *models.StrokeGroup
	text   *models.TextBox
}

// NewStrokeCommand wraps the lines drawn in one gesture.
func NewStrokeCommand(group *models.StrokeGroup) Command {
	return Command{kind: models.KindStroke, stroke: group}
}

// NewTextCommand wraps one placed text box.
func NewTextCommand(text *models.TextBox) Command {
	return Command{kind: models.KindText, text: text}
}

// Kind returns the variant tag.
func (c Command) Kind() models.AnnotationKind { return c.kind }

// Annotation returns the wrapped annotation.
func (c Command) Annotation() models.Annotation {
	switch c.kind {
	case models.KindStroke:
		return c.stroke
	default:
		return c.text
	}
}

func (c Command) redo(scene *models.Scene) {
	switch c.kind {
	case models.KindStroke:
		for _, line := range c.stroke.Lines {
			scene.Add(line)
		}
	case models.KindText:
		scene.Add(c.text)
	}
}

func (c Command) undo(scene *models.Scene) {
	switch c.kind {
	case models.KindStroke:
		for _, line := range c.stroke.Lines {
			scene.Remove(line)
		}
	case models.KindText:
		scene.Remove(c.text)
	}
}
