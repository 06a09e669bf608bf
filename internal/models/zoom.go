package models

// Zoom tracks the preview zoom percentage. The displayed scale is always
// Level()/100, whichever control produced the level.
type Zoom struct {
	min, max, def, step int
	level               int
}

// NewZoom creates a zoom bounded to [min, max] starting at def.
func NewZoom(min, max, def, step int) *Zoom {
	z := &Zoom{min: min, max: max, def: def, step: step}
	z.level = z.clamp(def)
	return z
}

func (z *Zoom) clamp(v int) int {
	if v < z.min {
		return z.min
	}
	if v > z.max {
		return z.max
	}
	return v
}

// Level returns the current percentage.
func (z *Zoom) Level() int { return z.level }

// Scale returns the view scale factor for the current level.
func (z *Zoom) Scale() float64 { return float64(z.level) / 100 }

// Bounds returns the configured range.
func (z *Zoom) Bounds() (int, int) { return z.min, z.max }

// Set moves to v, clamped, and returns the new level.
func (z *Zoom) Set(v int) int {
	z.level = z.clamp(v)
	return z.level
}

// In steps up by one increment.
func (z *Zoom) In() int { return z.Set(z.level + z.step) }

// Out steps down by one increment.
func (z *Zoom) Out() int { return z.Set(z.level - z.step) }

// Reset returns to the default level.
func (z *Zoom) Reset() int { return z.Set(z.def) }
