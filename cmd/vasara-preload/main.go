// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command vasara-preload pushes a list of assets through the resource
// manager and reports what was decoded. Useful for validating asset
// directories and archives before shipping them.
//
// Assets are named as kind:path arguments, for example:
//
//	vasara-preload texture:bricks.png audio:tone.wav mesh:cube.dae shader:shaders/basic
//
// Configuration comes from the environment: VASARA_ASSET_ROOT is the
// asset directory (default "assets"), VASARA_ARCHIVE switches to a
// kar archive instead, and VASARA_SWEEP_INTERVAL overrides the
// eviction period.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/vasara/decode"
	"github.com/devblok/vasara/model"
	"github.com/devblok/vasara/res"
	"github.com/devblok/vasara/utility/kar"
)

var (
	timeout = flag.Duration("timeout", 30*time.Second, "Abort waiting for loads after this long")
	verbose = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() == 0 {
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Deferred cleanups live in run so they still fire on failure.
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	src, cleanup, err := assetSource()
	if err != nil {
		log.Error(err)
		return err
	}
	defer cleanup()

	interval := res.DefaultSweepInterval
	if raw := envy.Get("VASARA_SWEEP_INTERVAL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Errorf("bad VASARA_SWEEP_INTERVAL: %s", err)
			return err
		}
		interval = parsed
	}

	manager := res.NewManager(res.Configuration{
		SweepInterval: interval,
		Decoders:      decode.NewDecoders(src),
	})
	if err := manager.Initialise(); err != nil {
		log.Error(err)
		return err
	}
	defer manager.Destroy()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	waiters, err := dispatch(manager, flag.Args())
	if err != nil {
		log.Error(err)
		return err
	}

	var firstErr error
	for _, wait := range waiters {
		if err := wait(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	stats := manager.Stats()
	log.WithFields(log.Fields{
		"textures": stats.Textures,
		"audio":    stats.Audio,
		"meshes":   stats.Meshes,
		"shaders":  stats.ShaderSets,
	}).Info("preload finished")

	return firstErr
}

// assetSource picks between a plain directory and a kar archive based
// on the environment.
func assetSource() (decode.Source, func(), error) {
	if archive := envy.Get("VASARA_ARCHIVE", ""); archive != "" {
		ar, err := kar.OpenFile(archive)
		if err != nil {
			return nil, nil, err
		}
		return decode.NewArchiveSource(ar), func() { ar.Close() }, nil
	}

	root := envy.Get("VASARA_ASSET_ROOT", "assets")
	return decode.DirSource(root), func() {}, nil
}

// dispatch fires off every requested load and returns one wait
// function per asset, so all decodes run concurrently.
func dispatch(manager *res.Manager, args []string) ([]func(context.Context) error, error) {
	waiters := make([]func(context.Context) error, 0, len(args))
	for _, arg := range args {
		kind, path, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("malformed asset %q, want kind:path", arg)
		}

		switch kind {
		case "texture":
			waiters = append(waiters, waiter(path, manager.LoadTexture(path), describeTexture))
		case "audio":
			waiters = append(waiters, waiter(path, manager.LoadAudio(path), describeAudio))
		case "mesh":
			waiters = append(waiters, waiter(path, manager.LoadMesh(path), describeMesh))
		case "shader":
			waiters = append(waiters, waiter(path, manager.LoadShaderSet(path), describeShaderSet))
		default:
			return nil, fmt.Errorf("unknown asset kind %q", kind)
		}
	}
	return waiters, nil
}

// waiter adapts a typed pending load into a uniform wait function
// that logs the outcome and releases the handle.
func waiter[T any](path string, pending *res.Pending[T], describe func(*T) string) func(context.Context) error {
	return func(ctx context.Context) error {
		h, err := pending.Wait(ctx)
		if err != nil {
			log.WithError(err).WithField("path", path).Error("load failed")
			return err
		}
		defer h.Release()

		log.WithField("path", path).Info(describe(h.Data()))
		return nil
	}
}

func describeTexture(t *res.TextureData) string {
	return fmt.Sprintf("texture %dx%d, %d bytes", t.Width, t.Height, len(t.Pix))
}

func describeAudio(a *res.AudioData) string {
	return fmt.Sprintf("audio %d Hz, %d channel(s), %d samples", a.SampleRate, a.Channels, len(a.Samples))
}

func describeMesh(m *model.MeshData) string {
	return fmt.Sprintf("mesh %q, %d vertices", m.Name, m.VertexCount())
}

func describeShaderSet(s *res.ShaderSet) string {
	return fmt.Sprintf("shader set, %d stage(s)", len(s.Models))
}
