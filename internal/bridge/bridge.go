// Package bridge carries messages from background goroutines to the single
// goroutine running the viewer loop.
package bridge

import (
	"context"
	"sync"
	"time"
)

// Bridge is an unbounded FIFO queue with a blocking, bounded wait.
//
// Post is safe from any number of goroutines and never blocks. Wait, Drain
// and Close are meant for the consuming goroutine.
type Bridge struct {
	mu      sync.Mutex
	pending []Message
	closed  bool
	notify  chan struct{}
}

// New creates an empty bridge.
func New() *Bridge {
	return &Bridge{notify: make(chan struct{}, 1)}
}

// Post queues msg. After Close the message is dropped and its payload
// released.
func (b *Bridge) Post(msg Message) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		release(msg)
		return
	}
	b.pending = append(b.pending, msg)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Wait blocks until a message is pending, timeout elapses or ctx is done.
// It reports whether messages are pending.
func (b *Bridge) Wait(ctx context.Context, timeout time.Duration) bool {
	if b.Pending() > 0 {
		return true
	}
	if timeout <= 0 {
		return false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-b.notify:
			if b.Pending() > 0 {
				return true
			}
		case <-timer.C:
			return b.Pending() > 0
		case <-ctx.Done():
			return b.Pending() > 0
		}
	}
}

// Drain removes and returns all pending messages in post order.
func (b *Bridge) Drain() []Message {
	b.mu.Lock()
	msgs := b.pending
	b.pending = nil
	b.mu.Unlock()

	select {
	case <-b.notify:
	default:
	}
	return msgs
}

// Pending returns the number of queued messages.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Close stops accepting messages and releases the payloads of undrained
// ones.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	msgs := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, m := range msgs {
		release(m)
	}
}

func release(msg Message) {
	if r, ok := msg.(Releaser); ok {
		r.Release()
	}
}
