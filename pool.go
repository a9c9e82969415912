package md2wx

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// SnapshotPool manages Snapshotter instances for parallel captures.
// Each snapshotter has its own browser, created lazily on first acquire.
type SnapshotPool struct {
	size    int
	timeout time.Duration
	width   int

	mu      sync.Mutex
	all     []*Snapshotter
	sem     chan *Snapshotter
	created int
	closed  bool
}

// NewSnapshotPool creates a pool with capacity for n snapshotters.
// Snapshotters are created when acquired, not at pool creation.
func NewSnapshotPool(n int, timeout time.Duration, width int) *SnapshotPool {
	if n < 1 {
		n = 1
	}
	return &SnapshotPool{
		size:    n,
		timeout: timeout,
		width:   width,
		all:     make([]*Snapshotter, 0, n),
		sem:     make(chan *Snapshotter, n),
	}
}

// Acquire gets a snapshotter from the pool, creating one if needed.
// Blocks if all snapshotters are in use.
func (p *SnapshotPool) Acquire() *Snapshotter {
	select {
	case s := <-p.sem:
		return s
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		s := NewSnapshotter(p.timeout, p.width)
		p.all = append(p.all, s)
		p.mu.Unlock()
		return s
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a snapshotter to the pool. It is a no-op after Close.
// The send happens under the lock so Close cannot close sem in between; it
// never blocks because sem holds every snapshotter the pool can create.
func (p *SnapshotPool) Release(s *Snapshotter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.sem <- s:
	default:
	}
}

// Close releases all browser resources.
// Returns an aggregated error if several snapshotters fail to close.
func (p *SnapshotPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	all := p.all
	p.mu.Unlock()

	var errs error
	for _, s := range all {
		errs = multierr.Append(errs, s.Close())
	}
	return errs
}

// Size returns the pool capacity.
func (p *SnapshotPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
