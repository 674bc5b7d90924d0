// Package mainloop provides the single-threaded cooperative event loop that
// serializes every registry, panel and layout mutation.
package mainloop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/chromic/internal/logging"
)

// ErrLoopClosed is returned by Invoke once the loop has been closed.
var ErrLoopClosed = errors.New("main loop closed")

// Loop runs posted tasks one at a time, in FIFO order. A "turn" runs the
// tasks that were queued when the turn started; tasks posted while a turn is
// running land in the next turn.
type Loop struct {
	ctx context.Context

	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

// New creates a loop. ctx is only used for logging.
func New(ctx context.Context) *Loop {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Loop{
		ctx:  logging.WithComponent(ctx, "mainloop"),
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn for a future turn. Safe from any goroutine. Dropped after Close.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.enqueue(fn)
}

// enqueue reports false when the loop no longer accepts tasks.
func (l *Loop) enqueue(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// RunPending executes one turn and returns how many tasks ran.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		l.runTask(fn)
	}
	return len(batch)
}

// RunUntilIdle runs turns until the queue is empty or maxTurns is reached.
func (l *Loop) RunUntilIdle(maxTurns int) int {
	total := 0
	for i := 0; i < maxTurns; i++ {
		n := l.RunPending()
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

// Run processes turns until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(l.ctx)
	log.Debug().Msg("main loop started")
	defer log.Debug().Msg("main loop stopped")

	for {
		l.RunPending()

		l.mu.Lock()
		closed := l.closed
		l.mu.Unlock()
		if closed {
			l.RunPending()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Invoke posts fn and blocks until it ran on the loop. It must not be called
// from a task already running on the loop.
func (l *Loop) Invoke(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)

	queued := l.enqueue(func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
			}
			done <- err
		}()
		err = fn()
	})
	if !queued {
		return ErrLoopClosed
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks and wakes Run so it can return. Tasks already
// queued still run on the final turn.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(l.ctx).Error().Interface("panic", r).Msg("main loop task panicked")
		}
	}()
	fn()
}
