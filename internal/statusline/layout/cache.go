package layout

import (
	"sync"
	"time"
)

// CacheWindow is how long a layout result is reused for the same width.
const CacheWindow = 50 * time.Millisecond

// Frame is a cached layout for one width.
type Frame struct {
	Primary   string
	Secondary string
}

type frameEntry struct {
	frame Frame
	at    time.Time
}

// Cache keeps the last frame per exact width for a short window, so the
// editor, the overflow widget and the notification widget rendering in the
// same tick share one layout pass.
type Cache struct {
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[int]frameEntry
}

// NewCache creates a cache. A zero window uses CacheWindow; a nil clock uses
// time.Now.
func NewCache(window time.Duration, now func() time.Time) *Cache {
	if window <= 0 {
		window = CacheWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{window: window, now: now, entries: make(map[int]frameEntry)}
}

// Get returns the frame for width when it is younger than the window.
func (c *Cache) Get(width int) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[width]
	if !ok || c.now().Sub(e.at) >= c.window {
		return Frame{}, false
	}
	return e.frame, true
}

// Put stores the frame for width.
func (c *Cache) Put(width int, f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for w, e := range c.entries {
		if now.Sub(e.at) >= c.window {
			delete(c.entries, w)
		}
	}
	c.entries[width] = frameEntry{frame: f, at: now}
}

// GetOrCompute returns the cached frame or computes and stores it.
func (c *Cache) GetOrCompute(width int, compute func() Frame) Frame {
	if f, ok := c.Get(width); ok {
		return f
	}
	f := compute()
	c.Put(width, f)
	return f
}

// Clear drops every frame. Called on preset change and toggle-off.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[int]frameEntry)
	c.mu.Unlock()
}

// Len returns the number of cached widths.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
