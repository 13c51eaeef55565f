// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package res

import (
	"sync/atomic"

	"github.com/devblok/vasara/gfx"
)

// control is the shared ownership record behind a Handle and every
// weak view of it. The liveness counter is the number of strong
// handles currently alive; once it reaches zero it never rises again.
type control[T any] struct {
	refs atomic.Int64
	data *T
}

// release drops one strong reference. The payload's Release is run
// exactly once, by whichever holder drops the count to zero.
func (c *control[T]) release() {
	if c.refs.Add(-1) != 0 {
		return
	}
	if r, ok := any(c.data).(gfx.Releasable); ok {
		r.Release()
	}
}

// NewHandle wraps decoded data in a reference-counted strong handle.
// The caller owns the single initial reference.
func NewHandle[T any](data *T) *Handle[T] {
	c := &control[T]{data: data}
	c.refs.Store(1)
	return &Handle[T]{ctl: c}
}

// Handle is an owning reference to decoded asset data. The data stays
// alive for as long as at least one Handle to it exists; every Handle
// must be released exactly once.
type Handle[T any] struct {
	ctl      *control[T]
	released atomic.Bool
}

// Data returns the underlying decoded data. The data is shared and
// must be treated as read-only.
func (h *Handle[T]) Data() *T {
	if h.released.Load() {
		panic("res: Data on released handle")
	}
	return h.ctl.data
}

// Clone returns a new strong reference to the same data. The clone
// has its own lifetime and must be released independently.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released.Load() {
		panic("res: Clone on released handle")
	}
	h.ctl.refs.Add(1)
	return &Handle[T]{ctl: h.ctl}
}

// Release drops this strong reference. Releasing the same Handle
// twice is a programming error and panics.
func (h *Handle[T]) Release() {
	if h.released.Swap(true) {
		panic("res: handle released twice")
	}
	h.ctl.release()
}

// weak returns a non-owning view of the same data.
func (h *Handle[T]) weak() weakRef[T] {
	return weakRef[T]{ctl: h.ctl}
}

// weakRef observes data owned by strong handles without keeping it
// alive. It can be resolved back to a strong handle while at least
// one other strong handle still exists.
type weakRef[T any] struct {
	ctl *control[T]
}

// resolve attempts to mint a new strong reference. It only succeeds
// while the liveness counter is above zero, so it can never resurrect
// data whose last holder already let go.
func (w weakRef[T]) resolve() (*Handle[T], bool) {
	for {
		n := w.ctl.refs.Load()
		if n <= 0 {
			return nil, false
		}
		if w.ctl.refs.CompareAndSwap(n, n+1) {
			return &Handle[T]{ctl: w.ctl}, true
		}
	}
}

// expired reports whether no strong references remain.
func (w weakRef[T]) expired() bool {
	return w.ctl.refs.Load() <= 0
}
