// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package res

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blob struct {
	payload  string
	released atomic.Bool
}

func (b *blob) Release() {
	if b.released.Swap(true) {
		panic("payload released twice")
	}
}

func TestHandleKeepsDataAlive(t *testing.T) {
	data := &blob{payload: "bricks"}
	h := NewHandle(data)

	w := h.weak()
	require.False(t, w.expired())

	strong, ok := w.resolve()
	require.True(t, ok)
	assert.Equal(t, "bricks", strong.Data().payload)

	h.Release()
	assert.False(t, w.expired(), "clone from weak resolve must still hold the data")
	assert.False(t, data.released.Load())

	strong.Release()
	assert.True(t, w.expired())
	assert.True(t, data.released.Load(), "payload Release must run when the last holder lets go")
}

func TestWeakRefNeverResurrects(t *testing.T) {
	h := NewHandle(&blob{payload: "gone"})
	w := h.weak()
	h.Release()

	_, ok := w.resolve()
	assert.False(t, ok)
	assert.True(t, w.expired())
}

func TestHandleDoubleReleasePanics(t *testing.T) {
	h := NewHandle(&blob{})
	h.Release()
	assert.Panics(t, func() { h.Release() })
}

func TestHandleCloneIndependentLifetimes(t *testing.T) {
	data := &blob{}
	h := NewHandle(data)
	c := h.Clone()

	h.Release()
	assert.False(t, data.released.Load())
	c.Release()
	assert.True(t, data.released.Load())
}

func TestHandleConcurrentCloneRelease(t *testing.T) {
	data := &blob{}
	h := NewHandle(data)
	w := h.weak()

	var wg sync.WaitGroup
	for idx := 0; idx < 32; idx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := h.Clone()
			if strong, ok := w.resolve(); ok {
				strong.Release()
			}
			c.Release()
		}()
	}
	wg.Wait()

	assert.False(t, data.released.Load())
	h.Release()
	assert.True(t, data.released.Load())
	assert.True(t, w.expired())
}
