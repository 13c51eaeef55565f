// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package decode

import (
	"encoding/binary"
	"fmt"
	"path"
	"strings"

	"github.com/devblok/vasara/res"
)

const shaderSuffix = ".spv"

// spirvMagic is the first word of every valid SPIR-V binary.
const spirvMagic = 0x07230203

// NewShaderSetDecoder returns a decoder for compiled SPIR-V shader
// programs. A path ending in .spv loads that single stage. Any other
// path is treated as a program base name: <path>.vert.spv and
// <path>.frag.spv are collected, and at least one stage must exist.
func NewShaderSetDecoder(src Source) res.DecodeFunc[res.ShaderSet] {
	return func(p string) (*res.ShaderSet, error) {
		if strings.HasSuffix(p, shaderSuffix) {
			m, err := shaderModel(src, p)
			if err != nil {
				return nil, err
			}
			return &res.ShaderSet{Models: []res.ShaderModel{*m}}, nil
		}

		var set res.ShaderSet
		for _, stage := range []string{".vert" + shaderSuffix, ".frag" + shaderSuffix} {
			m, err := shaderModel(src, p+stage)
			if err != nil {
				continue
			}
			set.Models = append(set.Models, *m)
		}
		if len(set.Models) == 0 {
			return nil, fmt.Errorf("decode shader: no stages found for %q", p)
		}
		return &set, nil
	}
}

func shaderModel(src Source, p string) (*res.ShaderModel, error) {
	data, err := src.ReadFile(p)
	if err != nil {
		return nil, err
	}

	words, err := shaderWords(data)
	if err != nil {
		return nil, fmt.Errorf("decode shader %q: %w", p, err)
	}

	return &res.ShaderModel{
		Name:  p,
		Type:  shaderType(p),
		Words: words,
	}, nil
}

// shaderType derives the pipeline stage from the file name. The name
// of a compiled shader has exactly two dots: the first separates the
// shader's name, the second its stage from the .spv extension, as in
// basic.vert.spv.
func shaderType(p string) res.ShaderType {
	base := strings.TrimSuffix(path.Base(p), shaderSuffix)
	nodes := strings.Split(base, ".")
	if len(nodes) != 2 {
		return res.UnknownShaderType
	}

	switch nodes[1] {
	case "vert":
		return res.VertexShaderType
	case "frag":
		return res.FragmentShaderType
	default:
		return res.UnknownShaderType
	}
}

// shaderWords reslices the raw binary into the uint32 words vulkan
// shader submission works with, validating the SPIR-V magic number.
func shaderWords(data []byte) ([]uint32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, ErrBadSpirv
	}

	words := make([]uint32, len(data)/4)
	for idx := range words {
		words[idx] = binary.LittleEndian.Uint32(data[4*idx:])
	}
	if words[0] != spirvMagic {
		return nil, ErrBadSpirv
	}
	return words, nil
}
