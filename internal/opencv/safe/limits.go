package safe

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// MaxDimension bounds the width and height of decoded and scaled images.
const MaxDimension = 32768

var (
	ErrTooLarge       = errors.New("image exceeds maximum dimension")
	ErrInvalidSize    = errors.New("image has no pixels")
	ErrNotConvertible = errors.New("pixel layout has no image.Image form")
)

// CheckSize accepts 1..MaxDimension in both directions.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	return nil
}

// Convertible reports whether Mat.ToImage handles t: 8-bit gray, BGR or BGRA.
func Convertible(t gocv.MatType) bool {
	switch t {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return true
	}
	return false
}

// CheckDecoded validates a freshly decoded Mat before it is converted.
func CheckDecoded(m *Mat) error {
	if m == nil || !m.IsValid() {
		return ErrInvalidSize
	}
	if err := CheckSize(m.Cols(), m.Rows()); err != nil {
		return err
	}
	if !Convertible(m.Type()) {
		return fmt.Errorf("%w: type %d", ErrNotConvertible, int(m.Type()))
	}
	return nil
}
