// Package safe wraps gocv matrices so their native memory is released once,
// whichever of the explicit Close or the finalizer runs first.
package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Mat owns a gocv.Mat and frees it exactly once, on Close or when the
// wrapper is garbage collected.
type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
}

// Adopt takes ownership of m. The caller must not close m itself. An empty
// m is closed and reported as an error naming tag.
func Adopt(m gocv.Mat, tag string) (*Mat, error) {
	if m.Empty() || m.Rows() <= 0 || m.Cols() <= 0 {
		m.Close()
		return nil, fmt.Errorf("%s: %w", tag, ErrInvalidSize)
	}

	sm := &Mat{mat: m, isValid: 1}
	runtime.SetFinalizer(sm, (*Mat).finalize)
	return sm, nil
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

func (sm *Mat) Rows() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Cols()
}

func (sm *Mat) Type() gocv.MatType {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}
	return sm.mat.Type()
}

// GetMat returns the wrapped Mat. It stays owned by sm.
func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat
}

func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		sm.mat.Close()
		runtime.SetFinalizer(sm, nil)
	}
}

func (sm *Mat) finalize() {
	if sm.IsValid() {
		sm.Close()
	}
}
