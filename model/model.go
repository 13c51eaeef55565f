// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model defines the engine's CPU-side mesh representation.
package model

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// Vertex is a model vertex.
type Vertex struct {
	Pos    glm.Vec3
	Normal glm.Vec3
	Color  glm.Vec4
}

// MeshData is an immutable, fully decoded mesh. Created once per
// successful import and shared between every holder afterwards,
// so it must not be mutated.
type MeshData struct {
	Name     string
	Vertices []Vertex
}

// VertexCount returns the number of vertices in the mesh.
func (m *MeshData) VertexCount() int {
	return len(m.Vertices)
}
