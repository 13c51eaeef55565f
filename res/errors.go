// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package res

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrShutdown is resolved into loads requested after Destroy
	// has begun. Such loads are rejected outright rather than
	// racing the clearing of the caches.
	ErrShutdown = errors.New("res: manager destroyed")

	// ErrNoDecoder is resolved into loads for a kind the manager
	// was configured without.
	ErrNoDecoder = errors.New("res: no decoder configured for kind")
)

// ResourceLoadError reports a failed decode of a single asset. It
// carries the requested path and the underlying cause, and never
// affects other in-flight or cached entries.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("res: load %q: %s", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}
