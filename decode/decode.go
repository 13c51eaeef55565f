// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package decode implements the per-kind asset decoders the resource
// manager dispatches: textures (png/jpeg/bmp), audio clips (wav/mp3),
// collada meshes and SPIR-V shader sets. Decoders are pure functions
// from path to decoded data, safe for concurrent use, and read their
// bytes through a Source so the same code serves plain directories
// and kar archives.
package decode

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gobuffalo/packr"

	"github.com/devblok/vasara/res"
	"github.com/devblok/vasara/utility/kar"
)

// Package errors.
var (
	ErrUnsupportedFormat = errors.New("decode: unsupported file format")
	ErrBadSpirv          = errors.New("decode: malformed SPIR-V binary")
)

// Source resolves asset paths to raw file contents. Paths are
// slash-separated regardless of platform.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// DirSource reads assets relative to a root directory.
type DirSource string

// ReadFile implements Source.
func (d DirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
}

// NewArchiveSource reads assets out of an opened kar archive.
func NewArchiveSource(ar *kar.Archive) Source {
	return archiveSource{ar: ar}
}

type archiveSource struct {
	ar *kar.Archive
}

func (s archiveSource) ReadFile(name string) ([]byte, error) {
	return s.ar.ReadAll(name)
}

// NewBoxSource reads assets out of a packr box, for builds that embed
// them into the binary.
func NewBoxSource(box packr.Box) Source {
	return boxSource{box: box}
}

type boxSource struct {
	box packr.Box
}

func (s boxSource) ReadFile(name string) ([]byte, error) {
	return s.box.Find(name)
}

// NewDecoders wires all four decoders over one source, ready to drop
// into a res.Configuration.
func NewDecoders(src Source) res.Decoders {
	return res.Decoders{
		Texture:   NewTextureDecoder(src),
		Audio:     NewAudioDecoder(src),
		Mesh:      NewMeshDecoder(src),
		ShaderSet: NewShaderSetDecoder(src),
	}
}
