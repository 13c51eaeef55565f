// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package decode

import (
	"fmt"
	"path"
	"strings"

	"github.com/devblok/vasara/model"
	"github.com/devblok/vasara/res"
)

// NewMeshDecoder returns a decoder that imports collada (.dae) files
// into the engine's mesh representation.
func NewMeshDecoder(src Source) res.DecodeFunc[model.MeshData] {
	return func(p string) (*model.MeshData, error) {
		if ext := strings.ToLower(path.Ext(p)); ext != ".dae" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}

		data, err := src.ReadFile(p)
		if err != nil {
			return nil, err
		}
		return model.ImportColladaMesh(data)
	}
}
