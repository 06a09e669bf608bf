// Package opencv decodes and scales images with OpenCV through gocv. It is
// selected with the "opencv" decoder setting and reads formats the standard
// decoders cannot, such as JPEG 2000 and the portable anymap family.
package opencv

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"image-browser/internal/models"
	"image-browser/internal/opencv/safe"
	"image-browser/internal/services"

	"gocv.io/x/gocv"
)

// Decoder reads files with cv::imread.
type Decoder struct{}

// Decode reads path keeping its alpha channel when it has an 8-bit one and
// converts the result to an image.Image.
func (Decoder) Decode(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	mat, err := read(path)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	img, err := mat.GetMat().ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func read(path string) (*safe.Mat, error) {
	m, err := safe.Adopt(gocv.IMRead(path, gocv.IMReadUnchanged), "imread")
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}
	if !safe.Convertible(m.Type()) {
		// 16-bit and float images are re-read as 8-bit BGR.
		m.Close()
		m, err = safe.Adopt(gocv.IMRead(path, gocv.IMReadColor), "imread")
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
		}
	}
	if err := safe.CheckDecoded(m); err != nil {
		m.Close()
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// Formats lists the suffixes imread handles in a default OpenCV build.
func (Decoder) Formats() []string {
	return []string{
		"bmp", "dib", "jpeg", "jpg", "jpe", "jp2", "png", "webp",
		"pbm", "pgm", "ppm", "pxm", "pnm", "sr", "ras", "tiff", "tif",
	}
}

// Scaler resizes with cv::resize, using area interpolation for thumbnails
// and bicubic for previews.
type Scaler struct{}

// Fit returns src scaled to fit width x height.
func (Scaler) Fit(src image.Image, width, height int, purpose models.Purpose) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("no image to scale")
	}
	b := src.Bounds()
	w, h, err := services.FitSize(b.Dx(), b.Dy(), width, height)
	if err != nil {
		return nil, err
	}
	if err := safe.CheckSize(w, h); err != nil {
		return nil, err
	}

	converted, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	in, err := safe.Adopt(converted, "resize source")
	if err != nil {
		return nil, err
	}
	defer in.Close()

	interp := gocv.InterpolationCubic
	if purpose == models.PurposeThumbnail {
		interp = gocv.InterpolationArea
	}

	dst := gocv.NewMat()
	gocv.Resize(in.GetMat(), &dst, image.Pt(w, h), 0, 0, interp)
	out, err := safe.Adopt(dst, "resize result")
	if err != nil {
		return nil, err
	}
	defer out.Close()

	return out.GetMat().ToImage()
}

var (
	_ services.Decoder = Decoder{}
	_ services.Scaler  = Scaler{}
)
