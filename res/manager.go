// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package res implements the engine's asynchronous resource cache.
// Assets are decoded off the calling goroutine, repeated requests for
// the same path are answered from a per-kind cache, and a background
// sweeper reclaims entries that nobody references anymore. The cache
// itself never keeps an asset alive: it holds weak views that resolve
// only while a caller still owns a strong Handle.
package res

import (
	"errors"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/vasara/model"
)

// DefaultSweepInterval is how often the sweeper reclaims unused cache
// entries unless configured otherwise.
const DefaultSweepInterval = time.Minute

// DecodeFunc decodes the asset at path into its CPU-side
// representation. Implementations must be safe to call concurrently
// for different or identical paths and must not touch cache state.
type DecodeFunc[T any] func(path string) (*T, error)

// Decoders wires one DecodeFunc per resource kind into a Manager.
// A nil entry leaves that kind unavailable.
type Decoders struct {
	Texture   DecodeFunc[TextureData]
	Audio     DecodeFunc[AudioData]
	Mesh      DecodeFunc[model.MeshData]
	ShaderSet DecodeFunc[ShaderSet]
}

// Configuration is used to configure a Manager.
type Configuration struct {
	// SweepInterval is the period between eviction passes.
	// Zero selects DefaultSweepInterval.
	SweepInterval time.Duration

	// Log receives sweep and load diagnostics.
	// Nil selects the logrus standard logger.
	Log *log.Logger

	// Clock drives the sweeper's timer. Nil selects the wall
	// clock; tests substitute a mock.
	Clock clock.Clock

	Decoders Decoders
}

// NewManager creates a Manager with the given configuration. Loads
// work immediately, but no eviction happens until Initialise is
// called.
func NewManager(cfg Configuration) *Manager {
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.Log == nil {
		cfg.Log = log.StandardLogger()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Manager{
		cfg:      cfg,
		textures: NewCache[TextureData](),
		audio:    NewCache[AudioData](),
		meshes:   NewCache[model.MeshData](),
		shaders:  NewCache[ShaderSet](),
	}
}

// Manager is the single entry point callers use to obtain assets. It
// owns one Cache per resource kind and the sweeper goroutine that
// periodically evicts entries without live references.
type Manager struct {
	cfg Configuration

	textures *Cache[TextureData]
	audio    *Cache[AudioData]
	meshes   *Cache[model.MeshData]
	shaders  *Cache[ShaderSet]

	// lifecycle guards the flags and wake channel below. It is
	// distinct from the per-cache locks so that shutdown
	// signalling never contends with asset traffic.
	lifecycle   sync.Mutex
	running     bool
	destroyed   bool
	wake        chan struct{}
	sweeperDone chan struct{}
}

// LoadTexture asynchronously loads the texture at path.
func (m *Manager) LoadTexture(p string) *Pending[TextureData] {
	return loadAsync(m, m.textures, "texture", p, m.cfg.Decoders.Texture)
}

// LoadAudio asynchronously loads the audio clip at path.
func (m *Manager) LoadAudio(p string) *Pending[AudioData] {
	return loadAsync(m, m.audio, "audio", p, m.cfg.Decoders.Audio)
}

// LoadMesh asynchronously loads the mesh at path.
func (m *Manager) LoadMesh(p string) *Pending[model.MeshData] {
	return loadAsync(m, m.meshes, "mesh", p, m.cfg.Decoders.Mesh)
}

// LoadShaderSet asynchronously loads the shader program at path.
func (m *Manager) LoadShaderSet(p string) *Pending[ShaderSet] {
	return loadAsync(m, m.shaders, "shader", p, m.cfg.Decoders.ShaderSet)
}

// loadAsync is the kind-independent load path. A live cached copy is
// returned as an already-resolved Pending without spawning anything.
// On a miss the decoder runs in its own goroutine, holding no cache
// lock, and publishes a weak view of the result before resolving the
// Pending with the strong reference that then belongs to the caller.
//
// Two concurrent first loads of the same key both decode; the later
// publish wins the cache slot while the earlier caller keeps a valid,
// merely cache-orphaned copy.
func loadAsync[T any](m *Manager, c *Cache[T], kind, p string, dec DecodeFunc[T]) *Pending[T] {
	if m.isDestroyed() {
		return failedPending[T](ErrShutdown)
	}
	if dec == nil {
		return failedPending[T](ErrNoDecoder)
	}

	key := normalizeKey(p)
	if h, ok := c.TryGet(key); ok {
		return resolvedPending(h)
	}

	pending := newPending[T]()
	logger := m.cfg.Log.WithFields(log.Fields{
		"kind": kind,
		"path": p,
		"load": uuid.New(),
	})
	logger.Debug("dispatching load")

	go func() {
		data, err := dec(p)
		if err != nil {
			logger.WithError(err).Warn("load failed")
			pending.resolve(nil, &ResourceLoadError{Path: p, Err: err})
			return
		}
		h := NewHandle(data)
		if !m.isDestroyed() {
			c.Publish(key, h)
		}
		pending.resolve(h, nil)
	}()
	return pending
}

// Initialise starts the sweeper. It must be called at most once,
// before Destroy.
func (m *Manager) Initialise() error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.destroyed {
		return ErrShutdown
	}
	if m.running {
		return errors.New("res: manager already initialised")
	}
	m.running = true
	m.wake = make(chan struct{})
	m.sweeperDone = make(chan struct{})
	go m.sweepLoop()
	return nil
}

// Destroy stops the sweeper, waits for it to exit, runs a final sweep
// and then clears every cache outright. Entries still backed by live
// references stay valid for their holders, they just stop being
// discoverable. Destroy is terminal: later loads resolve to
// ErrShutdown, and loads already decoding when Destroy runs still
// resolve for their caller but no longer publish into the caches.
func (m *Manager) Destroy() {
	m.lifecycle.Lock()
	if m.destroyed {
		m.lifecycle.Unlock()
		return
	}
	m.destroyed = true
	wasRunning := m.running
	m.running = false
	if wasRunning {
		close(m.wake)
	}
	m.lifecycle.Unlock()

	if wasRunning {
		<-m.sweeperDone
	}

	m.Sweep()
	m.textures.Clear()
	m.audio.Clear()
	m.meshes.Clear()
	m.shaders.Clear()
}

// Sweep synchronously removes dead entries from all four caches.
// The sweeper calls this on its own schedule, callers may force a
// pass whenever they like.
func (m *Manager) Sweep() {
	removed := m.textures.Sweep() +
		m.audio.Sweep() +
		m.meshes.Sweep() +
		m.shaders.Sweep()
	if removed > 0 {
		m.cfg.Log.WithField("entries", removed).Debug("swept unused cache entries")
	}
}

// Stats reports the number of entries, live or stale, currently held
// by each cache.
type Stats struct {
	Textures   int
	Audio      int
	Meshes     int
	ShaderSets int
}

// Stats returns a snapshot of per-kind cache sizes.
func (m *Manager) Stats() Stats {
	return Stats{
		Textures:   m.textures.Len(),
		Audio:      m.audio.Len(),
		Meshes:     m.meshes.Len(),
		ShaderSets: m.shaders.Len(),
	}
}

// sweepLoop sleeps for the sweep interval, then evicts. The wake
// channel cuts the sleep short so shutdown latency is bounded by the
// signal, never by the interval.
func (m *Manager) sweepLoop() {
	defer close(m.sweeperDone)

	for {
		timer := m.cfg.Clock.Timer(m.cfg.SweepInterval)
		select {
		case <-m.wake:
			timer.Stop()
			return
		case <-timer.C:
		}

		if !m.isRunning() {
			return
		}
		m.Sweep()
	}
}

func (m *Manager) isRunning() bool {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()
	return m.running
}

func (m *Manager) isDestroyed() bool {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()
	return m.destroyed
}

// normalizeKey canonicalizes an asset path so that spelling variants
// of the same file share one cache slot.
func normalizeKey(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
