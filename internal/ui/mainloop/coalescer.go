package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks into a single scheduled run.
// The most recently posted callback for a key wins; at most one run per key
// is ever pending.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer creates a coalescer that schedules through post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending: make(map[string]func()),
		post:    post,
	}
}

// Post records fn as the latest work for key and schedules a run unless one
// is already pending.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.pending[key]
	c.pending[key] = fn
	c.mu.Unlock()

	if scheduled {
		return
	}
	c.post(func() { c.fire(key) })
}

// IsPending reports whether a run is scheduled for key.
func (c *Coalescer) IsPending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[key]
	return ok
}

// Cancel drops pending work for key. The scheduled run becomes a no-op.
func (c *Coalescer) Cancel(key string) {
	c.mu.Lock()
	delete(c.pending, key)
	c.mu.Unlock()
}

// Destroy drops all pending work and ignores future posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	clear(c.pending)
	c.mu.Unlock()
}

func (c *Coalescer) fire(key string) {
	c.mu.Lock()
	fn, ok := c.pending[key]
	delete(c.pending, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if !ok || destroyed {
		return
	}
	fn()
}
