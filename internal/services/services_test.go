package services

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"image-browser/internal/models"
)

// fakeDecoder returns solid images of a fixed size and counts decodes.
type fakeDecoder struct {
	mu       sync.Mutex
	width    int
	height   int
	fail     map[string]bool
	calls    map[string]int
	order    []string
	onDecode func(path string)
}

func newFakeDecoder(w, h int, failing ...string) *fakeDecoder {
	fail := make(map[string]bool)
	for _, p := range failing {
		fail[p] = true
	}
	return &fakeDecoder{width: w, height: h, fail: fail, calls: make(map[string]int)}
}

func (d *fakeDecoder) Decode(path string) (image.Image, error) {
	d.mu.Lock()
	d.calls[path]++
	d.order = append(d.order, path)
	hook := d.onDecode
	d.mu.Unlock()

	if hook != nil {
		hook(path)
	}
	if d.fail[path] {
		return nil, errors.New("corrupt image")
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img, nil
}

func (d *fakeDecoder) Formats() []string {
	return []string{"PNG", "jpg", ".jpeg", "png"}
}

func (d *fakeDecoder) count(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[path]
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func sceneWithBase(w, h int, c color.Color) *models.Scene {
	s := models.NewScene()
	s.SetBase(&models.ScaledBitmap{
		Key:     "base",
		Path:    "base.png",
		Purpose: models.PurposePreview,
		Width:   w,
		Height:  h,
		Image:   solid(w, h, c),
	})
	return s
}
