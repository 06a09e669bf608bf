package services

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"image-browser/internal/models"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		boxW, boxH   int
		wantW, wantH int
		wantErr      bool
	}{
		{"landscape", 400, 200, 100, 100, 100, 50, false},
		{"portrait", 200, 400, 100, 100, 50, 100, false},
		{"upscale", 10, 10, 100, 50, 50, 50, false},
		{"sliver", 1000, 1, 100, 100, 100, 1, false},
		{"zero box", 10, 10, 0, 10, 0, 0, true},
		{"empty source", 0, 10, 10, 10, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := FitSize(tt.srcW, tt.srcH, tt.boxW, tt.boxH)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSize) {
					t.Fatalf("err = %v, want ErrInvalidSize", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FitSize: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("FitSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDrawScalerFitsBothPurposes(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 150))
	for _, p := range []models.Purpose{models.PurposeThumbnail, models.PurposePreview} {
		out, err := DrawScaler{}.Fit(src, 60, 60, p)
		if err != nil {
			t.Fatalf("Fit(%s): %v", p, err)
		}
		if b := out.Bounds(); b.Dx() != 60 || b.Dy() != 30 {
			t.Fatalf("Fit(%s) = %v", p, b)
		}
	}
}

func TestFilterString(t *testing.T) {
	got := FilterString([]string{"bmp", ".jpg", "png"})
	if got != "Images (*.bmp *.jpg *.png)" {
		t.Fatalf("FilterString = %q", got)
	}
}

func TestListImagesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "notes.txt", "c.gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListImages(dir, []string{"jpg", "png"})
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.PNG")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ListImages = %v, want %v", got, want)
	}
}

func TestEncodeFormatsDecodeBack(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 7, 5))
	dir := t.TempDir()
	for _, ext := range []string{".png", ".jpg", ".bmp", ".tiff", ".gif", ""} {
		var buf bytes.Buffer
		if err := Encode(&buf, src, ext); err != nil {
			t.Fatalf("Encode(%q): %v", ext, err)
		}
		path := filepath.Join(dir, "out"+ext)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
		img, err := StandardDecoder{}.Decode(path)
		if err != nil {
			t.Fatalf("decode %q: %v", ext, err)
		}
		if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 5 {
			t.Fatalf("%q round trip size = %v", ext, b)
		}
	}
}

func TestEncodeRejectsWebP(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), "webp")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestStandardDecoderMissingFile(t *testing.T) {
	if _, err := (StandardDecoder{}).Decode(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
