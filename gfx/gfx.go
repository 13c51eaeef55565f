// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines the contracts between decoded asset data and the
// rendering backend that consumes it.
package gfx

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release releases memory occupied by the implementing structure.
	Release()
}

// Resource describes an uploaded rendering resource that can be
// uniquely identified.
type Resource interface {
	Releasable

	// ID returns a resource id that uniquely identifies it.
	ID() string

	// Ready returns a channel that is closed when the
	// resource is ready for use.
	Ready() <-chan struct{}
}

// Uploader consumes fully decoded asset data and produces a Resource
// usable by the render path. Implementations live with the renderer.
type Uploader interface {

	// Upload submits decoded data for transfer. The returned Resource
	// signals readiness through its Ready channel.
	Upload(id string, data interface{}) (Resource, error)
}
