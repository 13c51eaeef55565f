// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package res

import "context"

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// resolvedPending returns a Pending that already carries a result,
// used on cache hits so no goroutine is spawned.
func resolvedPending[T any](h *Handle[T]) *Pending[T] {
	p := newPending[T]()
	p.resolve(h, nil)
	return p
}

// failedPending returns a Pending that already carries an error.
func failedPending[T any](err error) *Pending[T] {
	p := newPending[T]()
	p.resolve(nil, err)
	return p
}

// Pending is an in-flight asynchronous load. It resolves exactly once
// with either a strong reference to the decoded data or an error.
//
// The handle it resolves with belongs to whoever consumes the Pending
// and keeps the data alive across sweeps until released. Wait and
// Result hand out that same single reference, so it must be released
// exactly once no matter how many times they are called.
type Pending[T any] struct {
	done   chan struct{}
	handle *Handle[T]
	err    error
}

// resolve publishes the outcome. Must be called exactly once.
func (p *Pending[T]) resolve(h *Handle[T], err error) {
	p.handle = h
	p.err = err
	close(p.done)
}

// Done returns a channel that is closed once the load has resolved,
// for callers that want to select over several loads.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load resolves or the context is cancelled.
// Cancelling only abandons the wait, the decode itself runs to
// completion regardless.
func (p *Pending[T]) Wait(ctx context.Context) (*Handle[T], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.handle, p.err
	}
}

// Result reports the outcome without blocking. The boolean
// distinguishes a still-pending load (false) from a resolved one;
// a resolved load either carries a handle or an error.
func (p *Pending[T]) Result() (*Handle[T], bool, error) {
	select {
	case <-p.done:
		return p.handle, true, p.err
	default:
		return nil, false, nil
	}
}
