// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gpucontext"
)

// Event is a window system event.
type Event interface {
	fmt.Stringer
	isEvent()
}

// Resized reports a new framebuffer size in pixels.
type Resized struct {
	Width, Height int
}

// RedrawRequested asks for a new frame.
type RedrawRequested struct{}

// KeyPressed reports a key press.
type KeyPressed struct {
	Key gpucontext.Key
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct{}

// Wakeup is returned by a Source after Wake, so the loop can check for
// pending updates.
type Wakeup struct{}

func (Resized) isEvent()         {}
func (RedrawRequested) isEvent() {}
func (KeyPressed) isEvent()      {}
func (CloseRequested) isEvent()  {}
func (Wakeup) isEvent()          {}

func (e Resized) String() string       { return fmt.Sprintf("Resized(%dx%d)", e.Width, e.Height) }
func (RedrawRequested) String() string { return "RedrawRequested" }
func (e KeyPressed) String() string    { return fmt.Sprintf("KeyPressed(%d)", e.Key) }
func (CloseRequested) String() string  { return "CloseRequested" }
func (Wakeup) String() string          { return "Wakeup" }

// Source produces events for a Loop.
type Source interface {
	// NextEvent blocks until an event is available. It returns io.EOF when
	// the source has no more events and ctx.Err() when ctx is done.
	NextEvent(ctx context.Context) (Event, error)
}

// Waker is implemented by sources that can be woken from another
// goroutine. After Wake, a blocked or later NextEvent returns Wakeup.
type Waker interface {
	Wake()
}

// Headless is a Source fed by Push. It is safe for concurrent use, so
// events may be pushed from another goroutine while a Loop runs.
type Headless struct {
	mu     sync.Mutex
	queue  []Event
	ready  chan struct{}
	woken  bool
	closed bool
}

// NewHeadless returns a source that first yields events.
func NewHeadless(events ...Event) *Headless {
	return &Headless{queue: append([]Event(nil), events...), ready: make(chan struct{}, 1)}
}

// Push appends events. Pushing after Close is a no-op.
func (h *Headless) Push(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.queue = append(h.queue, events...)
	h.signal()
}

// Close ends the source once the queued events are consumed.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.signal()
	return nil
}

// Wake implements Waker.
func (h *Headless) Wake() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.woken = true
	h.signal()
}

func (h *Headless) signal() {
	select {
	case h.ready <- struct{}{}:
	default:
	}
}

// NextEvent implements Source. It blocks while the queue is empty and the
// source is open.
func (h *Headless) NextEvent(ctx context.Context) (Event, error) {
	for {
		h.mu.Lock()
		if len(h.queue) > 0 {
			ev := h.queue[0]
			h.queue = h.queue[1:]
			h.mu.Unlock()
			return ev, nil
		}
		if h.woken {
			h.woken = false
			h.mu.Unlock()
			return Wakeup{}, nil
		}
		closed := h.closed
		h.mu.Unlock()
		if closed {
			return nil, io.EOF
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-h.ready:
		}
	}
}

var (
	_ Source = (*Headless)(nil)
	_ Waker  = (*Headless)(nil)
)
