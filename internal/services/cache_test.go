package services

import (
	"errors"
	"testing"

	"image-browser/internal/logger"
	"image-browser/internal/models"
)

func TestCacheKey(t *testing.T) {
	got := CacheKey("/img/a.png", models.PurposeThumbnail, 100, 80)
	if got != "/img/a.png_thumbnail_100_80" {
		t.Fatalf("CacheKey = %q", got)
	}
}

func TestResizeCacheReturnsSameBitmap(t *testing.T) {
	dec := newFakeDecoder(400, 200)
	cache := NewResizeCache(dec, DrawScaler{}, logger.NewNop())

	first, err := cache.GetOrCreate("a.png", models.PurposePreview, 100, 100)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := cache.GetOrCreate("a.png", models.PurposePreview, 100, 100)
		if err != nil {
			t.Fatalf("GetOrCreate: %v", err)
		}
		if again != first {
			t.Fatalf("call %d returned a different bitmap", i)
		}
	}
	if n := dec.count("a.png"); n != 1 {
		t.Fatalf("decoded %d times, want 1", n)
	}
	if w, h := first.Size(); w != 100 || h != 50 {
		t.Fatalf("size = %dx%d, want 100x50", w, h)
	}
	if st := cache.Stats(); st.Hits != 3 || st.Misses != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestResizeCacheKeysEveryInput(t *testing.T) {
	dec := newFakeDecoder(50, 50)
	cache := NewResizeCache(dec, DrawScaler{}, logger.NewNop())

	requests := []struct {
		path    string
		purpose models.Purpose
		w, h    int
	}{
		{"a.png", models.PurposePreview, 100, 100},
		{"b.png", models.PurposePreview, 100, 100},
		{"a.png", models.PurposeThumbnail, 100, 100},
		{"a.png", models.PurposePreview, 200, 100},
		{"a.png", models.PurposePreview, 100, 200},
	}
	seen := make(map[*models.ScaledBitmap]bool)
	for _, r := range requests {
		bmp, err := cache.GetOrCreate(r.path, r.purpose, r.w, r.h)
		if err != nil {
			t.Fatalf("GetOrCreate(%v): %v", r, err)
		}
		if seen[bmp] {
			t.Fatalf("request %v shared an entry", r)
		}
		seen[bmp] = true
	}
	if cache.Len() != len(requests) {
		t.Fatalf("Len = %d, want %d", cache.Len(), len(requests))
	}
}

func TestResizeCacheDoesNotStoreFailures(t *testing.T) {
	dec := newFakeDecoder(10, 10, "bad.png")
	cache := NewResizeCache(dec, DrawScaler{}, logger.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := cache.GetOrCreate("bad.png", models.PurposePreview, 10, 10); err == nil {
			t.Fatal("expected decode error")
		}
	}
	if cache.Len() != 0 {
		t.Fatalf("Len = %d, want 0", cache.Len())
	}
	if n := dec.count("bad.png"); n != 2 {
		t.Fatalf("decoded %d times, want a retry", n)
	}
}

func TestResizeCacheRejectsInvalidSize(t *testing.T) {
	cache := NewResizeCache(newFakeDecoder(10, 10), DrawScaler{}, logger.NewNop())
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := cache.GetOrCreate("a.png", models.PurposePreview, size[0], size[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size %v: err = %v", size, err)
		}
	}
}
