// Package freshness implements a stale-while-revalidate cache for values that
// are slow to compute (git state, remote quota). Reads never block: a stale
// or missing value triggers one background fetch and the last known value is
// returned immediately.
package freshness

import (
	"context"
	"sync"
	"time"

	"github.com/young1lin/powerline-footer/internal/logging"
)

var cacheLog = logging.ForComponent(logging.CompCache)

// Entry is a cached value and the time it was fetched.
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
}

// FetchFunc computes a fresh value. It runs off the render path.
type FetchFunc[T any] func(ctx context.Context) T

// Options configures a Resource.
type Options struct {
	// TTL is how long a fetched value counts as fresh.
	TTL time.Duration

	// Now overrides the clock (tests).
	Now func() time.Time

	// OnCommit is called after a fetched value is stored. The host uses it
	// to request a repaint.
	OnCommit func()

	// Context is the parent context for background fetches.
	Context context.Context
}

// Resource caches one kind of value.
//
// Invariant: a fetch result is stored only when the generation captured at
// fetch start still equals the current generation, so a fetch that was in
// flight during Invalidate can never bring back pre-invalidation data.
type Resource[T any] struct {
	name  string
	fetch FetchFunc[T]
	ttl   time.Duration
	now   func() time.Time
	base  context.Context

	mu         sync.Mutex
	entry      *Entry[T]
	generation uint64
	inflight   bool
	onCommit   func()
	fetches    uint64
	done       chan struct{}
}

// New creates an empty resource.
func New[T any](name string, fetch FetchFunc[T], opts Options) *Resource[T] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	base := opts.Context
	if base == nil {
		base = context.Background()
	}
	return &Resource[T]{
		name:     name,
		fetch:    fetch,
		ttl:      opts.TTL,
		now:      now,
		base:     base,
		onCommit: opts.OnCommit,
	}
}

// Name returns the resource name used in logs.
func (r *Resource[T]) Name() string {
	return r.name
}

// TTL returns the freshness window.
func (r *Resource[T]) TTL() time.Duration {
	return r.ttl
}

// Read returns the cached value. When the value is missing or older than the
// TTL and no fetch is in flight, a background fetch is started. The call
// itself never waits: it returns the last cached value, or fallback when
// nothing has been cached since startup or the last Invalidate.
func (r *Resource[T]) Read(fallback T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entry != nil && r.now().Sub(r.entry.FetchedAt) < r.ttl {
		return r.entry.Value
	}

	if !r.inflight {
		r.startLocked()
	}

	if r.entry != nil {
		return r.entry.Value
	}
	return fallback
}

// Peek returns the cached entry without triggering a fetch.
func (r *Resource[T]) Peek() (Entry[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entry == nil {
		return Entry[T]{}, false
	}
	return *r.entry, true
}

// Invalidate drops the cached value and advances the generation. Fetches
// started before this call will be discarded when they complete.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	r.entry = nil
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	cacheLog.Debug("invalidated", "resource", r.name, "generation", gen)
}

// Generation returns the current generation counter.
func (r *Resource[T]) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// InFlight reports whether a fetch is running.
func (r *Resource[T]) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight
}

// Fetches returns how many fetches have been started.
func (r *Resource[T]) Fetches() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}

// SetOnCommit replaces the commit hook.
func (r *Resource[T]) SetOnCommit(fn func()) {
	r.mu.Lock()
	r.onCommit = fn
	r.mu.Unlock()
}

// Wait blocks until the running fetch, if any, has completed. It is meant for
// one-shot callers and tests, never for the render path.
func (r *Resource[T]) Wait() {
	if done := r.doneChan(); done != nil {
		<-done
	}
}

// WaitTimeout is Wait bounded by d. It reports whether the fetch finished.
func (r *Resource[T]) WaitTimeout(d time.Duration) bool {
	done := r.doneChan()
	if done == nil {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (r *Resource[T]) doneChan() chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inflight {
		return nil
	}
	return r.done
}

func (r *Resource[T]) startLocked() {
	r.inflight = true
	r.fetches++
	gen := r.generation
	done := make(chan struct{})
	r.done = done

	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				cacheLog.Error("fetch panicked", "resource", r.name, "panic", p)
				r.mu.Lock()
				r.inflight = false
				r.mu.Unlock()
			}
		}()
		value := r.fetch(r.base)
		r.complete(gen, value)
	}()
}

func (r *Resource[T]) complete(gen uint64, value T) {
	r.mu.Lock()
	r.inflight = false
	if gen != r.generation {
		current := r.generation
		r.mu.Unlock()
		cacheLog.Debug("discarded stale fetch", "resource", r.name, "started", gen, "current", current)
		return
	}
	r.entry = &Entry[T]{Value: value, FetchedAt: r.now()}
	hook := r.onCommit
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
}
