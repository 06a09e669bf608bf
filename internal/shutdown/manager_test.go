package shutdown

import (
	"sync"
	"testing"
	"time"

	"image-browser/internal/logger"
)

type recorder struct {
	mu    *sync.Mutex
	order *[]string
	name  string
	block chan struct{}
}

func (r recorder) Shutdown() {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.order = append(*r.order, r.name)
}

func TestShutdownRunsInReverseOnce(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	m := NewManager(logger.NewNop())
	m.Register("loader", recorder{mu: &mu, order: &order, name: "loader"})
	m.Register("window", recorder{mu: &mu, order: &order, name: "window"})

	m.Shutdown()
	m.Shutdown()

	if len(order) != 2 || order[0] != "window" || order[1] != "loader" {
		t.Fatalf("order = %v", order)
	}
	select {
	case <-m.Done():
	default:
		t.Fatal("Done not closed")
	}
	if m.Context().Err() == nil {
		t.Fatal("context not cancelled")
	}
}

func TestShutdownTimesOutStuckComponent(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	block := make(chan struct{})
	defer close(block)

	m := NewManager(logger.NewNop())
	m.SetTimeout(20 * time.Millisecond)
	m.Register("stuck", recorder{mu: &mu, order: &order, name: "stuck", block: block})
	m.Register("fast", recorder{mu: &mu, order: &order, name: "fast"})

	finished := make(chan struct{})
	go func() {
		m.Shutdown()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown blocked on a stuck component")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != 1 || order[0] != "fast" {
		t.Fatalf("order = %v", order)
	}
}
