package services

import (
	"fmt"
	"sync"

	"image-browser/internal/logger"
	"image-browser/internal/models"
)

// CacheStats counts cache lookups.
type CacheStats struct {
	Hits   int
	Misses int
}

// ResizeCache memoizes scaled bitmaps by (path, purpose, width, height).
// Entries live for the lifetime of the cache; failed decodes are not stored.
type ResizeCache struct {
	decoder Decoder
	scaler  Scaler
	logger  logger.Logger

	mu      sync.Mutex
	entries map[string]*models.ScaledBitmap
	stats   CacheStats
}

// NewResizeCache creates an empty cache.
func NewResizeCache(decoder Decoder, scaler Scaler, log logger.Logger) *ResizeCache {
	return &ResizeCache{
		decoder: decoder,
		scaler:  scaler,
		logger:  log,
		entries: make(map[string]*models.ScaledBitmap),
	}
}

// CacheKey builds the lookup key for a scaled bitmap.
func CacheKey(path string, purpose models.Purpose, width, height int) string {
	return fmt.Sprintf("%s_%s_%d_%d", path, purpose, width, height)
}

// GetOrCreate returns the cached bitmap for the key, decoding and scaling
// on a miss. Repeated calls with the same arguments return the same pointer.
func (c *ResizeCache) GetOrCreate(path string, purpose models.Purpose, width, height int) (*models.ScaledBitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	key := CacheKey(path, purpose, width, height)

	c.mu.Lock()
	defer c.mu.Unlock()

	if bmp, ok := c.entries[key]; ok {
		c.stats.Hits++
		return bmp, nil
	}
	c.stats.Misses++

	src, err := c.decoder.Decode(path)
	if err != nil {
		c.logger.Warning("ResizeCache", "decode failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, err
	}

	scaled, err := c.scaler.Fit(src, width, height, purpose)
	if err != nil {
		return nil, fmt.Errorf("failed to scale %s: %w", path, err)
	}

	bmp := &models.ScaledBitmap{
		Key:     key,
		Path:    path,
		Purpose: purpose,
		Width:   width,
		Height:  height,
		Image:   scaled,
	}
	c.entries[key] = bmp

	c.logger.Debug("ResizeCache", "cached bitmap", map[string]interface{}{
		"key":     key,
		"entries": len(c.entries),
	})
	return bmp, nil
}

// Len returns the number of cached bitmaps.
func (c *ResizeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit and miss counters.
func (c *ResizeCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
