package services

import (
	"errors"
	"image"
	"math"

	"image-browser/internal/models"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrNothingLoaded is returned when saving without a preview image.
var ErrNothingLoaded = errors.New("no image loaded")

// Flatten renders the scene into a single RGBA image: transparent fill,
// the base bitmap, then every visible annotation in insertion order. Text
// boxes nobody typed into are skipped. The output covers the union of the
// base and all annotations, translated so its top-left corner is the origin.
func Flatten(scene *models.Scene) (*image.RGBA, error) {
	base := scene.BaseImage()
	if base == nil {
		return nil, ErrNothingLoaded
	}

	r := scene.Bounds()
	ox := int(math.Floor(float64(r.X)))
	oy := int(math.Floor(float64(r.Y)))
	w := int(math.Ceil(float64(r.X+r.W))) - ox
	h := int(math.Ceil(float64(r.Y+r.H))) - oy
	if w <= 0 || h <= 0 {
		return nil, ErrNothingLoaded
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	offset := image.Pt(-ox, -oy)

	bb := base.Bounds()
	xdraw.Draw(dst, bb.Add(offset), base, bb.Min, xdraw.Over)

	for _, item := range scene.Items() {
		switch it := item.(type) {
		case *models.LineItem:
			drawLine(dst, it, offset)
		case *models.TextBox:
			if it.IsPlaceholder() {
				continue
			}
			if err := drawText(dst, it, offset); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

func drawLine(dst *image.RGBA, l *models.LineItem, offset image.Point) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)

	width := l.Pen.Width
	if width <= 0 {
		width = 1
	}
	dasher.SetStroke(toFixed(width), 4*64, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	dasher.SetColor(l.Pen.Color)

	var path rasterx.Path
	path.Start(toFixedPoint(l.From, offset))
	path.Line(toFixedPoint(l.To, offset))
	path.Stop(false)
	path.AddTo(dasher)

	dasher.Draw()
	dasher.Clear()
}

func drawText(dst *image.RGBA, t *models.TextBox, offset image.Point) error {
	face, err := FaceFor(t.Font)
	if err != nil {
		return err
	}
	bounds := t.Bounds()
	lines := WrapText(face, t.Text(), int(bounds.W))

	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	x := int(bounds.X) + offset.X
	y := int(bounds.Y) + offset.Y + m.Ascent.Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(t.Color),
		Face: face,
	}
	for _, line := range lines {
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += lineHeight
	}
	return nil
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}

func toFixedPoint(p models.Point, offset image.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: toFixed(p.X + float32(offset.X)),
		Y: toFixed(p.Y + float32(offset.Y)),
	}
}
