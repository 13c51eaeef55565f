// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package res

// TextureData is a fully decoded, CPU-side image. Pixels are laid out
// row-major as 8-bit RGBA, ready for a staging buffer copy.
type TextureData struct {
	Width  int
	Height int
	Pix    []uint8
}

// AudioData is a fully decoded PCM clip. Samples are interleaved
// when Channels is greater than one.
type AudioData struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    []int
}

// ShaderType represents the pipeline stage of a compiled shader.
type ShaderType int

// Identifies shader objects with their types.
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)

// ShaderModel is one compiled SPIR-V shader stage.
type ShaderModel struct {
	Name  string
	Type  ShaderType
	Words []uint32
}

// ShaderSet groups the compiled stages that make up one shader program.
type ShaderSet struct {
	Models []ShaderModel
}

// Stage returns the first model of the given type, nil when the set
// does not contain that stage.
func (s *ShaderSet) Stage(t ShaderType) *ShaderModel {
	for idx := range s.Models {
		if s.Models[idx].Type == t {
			return &s.Models[idx]
		}
	}
	return nil
}
