// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/vasara/util/collada"
)

// Import errors for collada files.
var (
	ErrNoGeometry = errors.New("model: collada file contains no geometry")
	ErrBadIndex   = errors.New("model: triangle index out of range")
)

var defaultColor = glm.Vec4{1.0, 1.0, 1.0, 1.0}

// ImportColladaMesh reads the given collada (.dae) file contents and
// converts the first geometry found into a MeshData.
func ImportColladaMesh(fileContents []byte) (*MeshData, error) {
	var doc collada.Collada
	if err := xml.Unmarshal(fileContents, &doc); err != nil {
		return nil, err
	}

	if len(doc.Geometries) == 0 {
		return nil, ErrNoGeometry
	}
	geometry := doc.Geometries[0]
	mesh := geometry.Mesh

	positions, err := findSource(mesh.Source, "positions")
	if err != nil {
		return nil, err
	}
	// Normals are optional, meshes exported without them get zero vectors.
	normals, normalsErr := findSource(mesh.Source, "normals")

	stride := len(mesh.Triangles.Inputs)
	if stride == 0 {
		stride = 1
	}

	posOffset := inputOffset(mesh.Triangles.Inputs, "VERTEX")
	nrmOffset := inputOffset(mesh.Triangles.Inputs, "NORMAL")

	index := mesh.Triangles.Index
	vertices := make([]Vertex, 0, len(index)/stride)
	for idx := 0; idx+stride <= len(index); idx += stride {
		var vert Vertex

		pos, err := sourceVec3(positions, index[idx+posOffset])
		if err != nil {
			return nil, err
		}
		vert.Pos = pos

		if normalsErr == nil && nrmOffset >= 0 {
			nrm, err := sourceVec3(normals, index[idx+nrmOffset])
			if err != nil {
				return nil, err
			}
			vert.Normal = nrm
		}

		vert.Color = defaultColor
		vertices = append(vertices, vert)
	}

	return &MeshData{
		Name:     geometry.Name,
		Vertices: vertices,
	}, nil
}

// sourceVec3 reads the n-th 3-component vector out of a float source.
func sourceVec3(source collada.Source, n int) (glm.Vec3, error) {
	data := source.Floats.Data
	if n < 0 || (n*3)+3 > len(data) {
		return glm.Vec3{}, ErrBadIndex
	}
	return glm.Vec3{data[n*3], data[n*3+1], data[n*3+2]}, nil
}

// inputOffset finds the index offset of the input with the given
// semantic, -1 when the semantic is not present.
func inputOffset(inputs []collada.Input, semantic string) int {
	for _, in := range inputs {
		if in.Semantic == semantic {
			return int(in.Offset)
		}
	}
	if semantic == "VERTEX" {
		return 0
	}
	return -1
}

func findSource(sources []collada.Source, dataType string) (collada.Source, error) {
	for _, s := range sources {
		if strings.HasSuffix(s.ID, fmt.Sprintf("-%s", dataType)) {
			return s, nil
		}
	}
	return collada.Source{}, fmt.Errorf("model: source type %q not found", dataType)
}
