package services

import (
	"context"
	"errors"
	"image"
	"sort"
	"strings"
	"sync"
	"time"

	"image-browser/internal/logger"
	"image-browser/internal/models"
)

// ErrLoaderStarted is returned by Start on a loader that already ran.
var ErrLoaderStarted = errors.New("loader already started")

// EventKind distinguishes loaded images from the end-of-load sentinel.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventDone
)

// Event is posted by the loader for every path, followed by one EventDone
// when the whole list was processed. A failed decode carries Err and a nil
// Image.
type Event struct {
	Kind  EventKind
	Path  string
	Image image.Image
	Err   error
}

// IsSentinel reports whether the event marks the end of a load.
func (e Event) IsSentinel() bool {
	return e.Kind == EventDone
}

// ImageLoader decodes an ordered list of paths on its own goroutine.
// A loader runs once; create a new one for every file-open.
type ImageLoader struct {
	paths   []string
	decoder Decoder
	logger  logger.Logger

	token  *models.CancellationToken
	events chan Event
	done   chan struct{}

	mu      sync.Mutex
	started bool
}

// NewImageLoader creates a loader over a copy of paths.
func NewImageLoader(paths []string, decoder Decoder, log logger.Logger) *ImageLoader {
	p := make([]string, len(paths))
	copy(p, paths)
	return &ImageLoader{
		paths:   p,
		decoder: decoder,
		logger:  log,
		token:   models.NewCancellationToken(),
		events:  make(chan Event, len(p)+1),
		done:    make(chan struct{}),
	}
}

// Events returns the event stream. It is closed when the loader exits.
func (l *ImageLoader) Events() <-chan Event {
	return l.events
}

// Start launches the decode goroutine. Cancelling ctx has the same effect
// as Stop.
func (l *ImageLoader) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return ErrLoaderStarted
	}
	l.started = true

	go l.run(ctx)
	return nil
}

// Stop asks the loader to finish. An in-flight decode completes but its
// result is dropped; no event is sent after Stop returns.
func (l *ImageLoader) Stop() {
	l.token.Cancel()
}

// Stopped reports whether Stop was called.
func (l *ImageLoader) Stopped() bool {
	return l.token.IsCancelled()
}

// Wait blocks until the loader goroutine has exited. It returns at once for
// a loader that was never started.
func (l *ImageLoader) Wait() {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if !started {
		return
	}
	<-l.done
}

// Running reports whether the goroutine is still active.
func (l *ImageLoader) Running() bool {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if !started {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

func (l *ImageLoader) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.events)

	start := time.Now()
	l.logger.Info("ImageLoader", "load started", map[string]interface{}{
		"count": len(l.paths),
	})

	for i, path := range l.paths {
		if l.cancelled(ctx) {
			l.logger.Info("ImageLoader", "load stopped", map[string]interface{}{
				"emitted": i,
				"total":   len(l.paths),
			})
			return
		}

		img, err := l.decoder.Decode(path)
		if err != nil {
			l.logger.Warning("ImageLoader", "decode failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			img = nil
		}

		ev := Event{Kind: EventLoaded, Path: path, Image: img, Err: err}
		if !l.emit(ctx, ev) {
			l.logger.Info("ImageLoader", "load stopped", map[string]interface{}{
				"emitted": i,
				"total":   len(l.paths),
			})
			return
		}
	}

	if !l.emit(ctx, Event{Kind: EventDone}) {
		return
	}
	l.logger.Info("ImageLoader", "load finished", map[string]interface{}{
		"count":    len(l.paths),
		"duration": time.Since(start).String(),
	})
}

func (l *ImageLoader) cancelled(ctx context.Context) bool {
	if ctx.Err() != nil {
		l.token.Cancel()
	}
	return l.token.IsCancelled()
}

// emit sends ev under the token lock so that it cannot race with Stop.
// The channel has room for every event, so the send never blocks.
func (l *ImageLoader) emit(ctx context.Context, ev Event) bool {
	if ctx.Err() != nil {
		l.token.Cancel()
		return false
	}
	return l.token.Guard(func() {
		l.events <- ev
	})
}

// SupportedSuffixes returns the decoder's suffixes lowercased, deduplicated
// and sorted.
func SupportedSuffixes(d Decoder) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range d.Formats() {
		s = strings.ToLower(strings.TrimPrefix(s, "."))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
