package services

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"image-browser/internal/models"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrInvalidSize is returned for a non-positive target dimension.
	ErrInvalidSize = errors.New("invalid target size")
	// ErrUnsupportedFormat is returned when a save format cannot be encoded.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Decoder turns a file path into an image. Formats lists the file suffixes
// (without dot) the decoder understands.
type Decoder interface {
	Decode(path string) (image.Image, error)
	Formats() []string
}

// Scaler fits an image into a box while keeping its aspect ratio.
type Scaler interface {
	Fit(src image.Image, width, height int, purpose models.Purpose) (image.Image, error)
}

// StandardDecoder decodes with the image package and the x/image codecs
// registered by this file.
type StandardDecoder struct{}

// Decode opens and decodes path.
func (StandardDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Formats returns the suffixes of the registered codecs.
func (StandardDecoder) Formats() []string {
	return []string{"bmp", "gif", "jpeg", "jpg", "png", "tif", "tiff", "webp"}
}

// DrawScaler scales with golang.org/x/image/draw: a fast approximate filter
// for thumbnails and Catmull-Rom for previews.
type DrawScaler struct{}

// Fit returns src scaled to the largest size that fits width x height.
func (DrawScaler) Fit(src image.Image, width, height int, purpose models.Purpose) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("no image to scale")
	}
	b := src.Bounds()
	w, h, err := FitSize(b.Dx(), b.Dy(), width, height)
	if err != nil {
		return nil, err
	}

	var interp xdraw.Interpolator = xdraw.CatmullRom
	if purpose == models.PurposeThumbnail {
		interp = xdraw.ApproxBiLinear
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst, nil
}

// FitSize computes the aspect-preserving size of a srcW x srcH image inside
// a boxW x boxH box. Images are scaled up as well as down; the result is at
// least 1x1.
func FitSize(srcW, srcH, boxW, boxH int) (int, int, error) {
	if boxW <= 0 || boxH <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, boxW, boxH)
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: source %dx%d", ErrInvalidSize, srcW, srcH)
	}
	scale := float64(boxW) / float64(srcW)
	if s := float64(boxH) / float64(srcH); s < scale {
		scale = s
	}
	w := int(float64(srcW)*scale + 0.5)
	h := int(float64(srcH)*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > boxW {
		w = boxW
	}
	if h > boxH {
		h = boxH
	}
	return w, h, nil
}

// FilterString renders the open-dialog filter for suffixes, e.g.
// "Images (*.jpg *.png)".
func FilterString(suffixes []string) string {
	patterns := make([]string, len(suffixes))
	for i, s := range suffixes {
		patterns[i] = "*." + strings.TrimPrefix(s, ".")
	}
	return fmt.Sprintf("Images (%s)", strings.Join(patterns, " "))
}

// Extensions returns suffixes as dotted extensions, the form fyne's file
// filters expect.
func Extensions(suffixes []string) []string {
	exts := make([]string, len(suffixes))
	for i, s := range suffixes {
		exts[i] = "." + strings.TrimPrefix(s, ".")
	}
	return exts
}

// IsSupported reports whether path has one of the suffixes.
func IsSupported(path string, suffixes []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, s := range suffixes {
		if strings.EqualFold(s, ext) {
			return true
		}
	}
	return false
}

// ListImages returns the supported image files directly inside dir,
// sorted by name.
func ListImages(dir string, suffixes []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name(), suffixes) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Encode writes img in the format named by ext (with or without the dot).
// Unknown or empty extensions fall back to PNG.
func Encode(writer io.Writer, img image.Image, ext string) error {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "jpeg", "jpg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	case "bmp":
		return bmp.Encode(writer, img)
	case "tif", "tiff":
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	case "gif":
		return gif.Encode(writer, img, nil)
	case "webp":
		return fmt.Errorf("%w: webp can be read but not written", ErrUnsupportedFormat)
	default:
		return png.Encode(writer, img)
	}
}
