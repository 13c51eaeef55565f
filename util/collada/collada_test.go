// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package collada_test

import (
	"encoding/xml"
	"testing"

	"github.com/devblok/vasara/util/collada"
)

func TestTrianglesDecode(t *testing.T) {
	data := `
		<triangles material="Material-material" count="12">
		<input semantic="VERTEX" source="#Cube-mesh-vertices" offset="0"/>
		<input semantic="NORMAL" source="#Cube-mesh-normals" offset="1"/>
		<p>0 0 2 0 3 0 7 1 5 1 4 1 4 2 1 2 0 2 5 3 2 3 1 3 2 4 7 4 3 4 0 5 7 5 4 5 0 6 1 6 2 6 7 7 6 7 5 7 4 8 5 8 1 8 5 9 6 9 2 9 2 10 6 10 7 10 0 11 3 11 7 11</p>
		</triangles>
	`
	var triangles collada.Triangles
	if err := xml.Unmarshal([]byte(data), &triangles); err != nil {
		t.Fatal(err)
	}

	if triangles.Material != "Material-material" {
		t.Fatalf("incorrect material: %s", triangles.Material)
	}

	if triangles.Count != 12 {
		t.Fatalf("incorrect count: %d", triangles.Count)
	}

	if len(triangles.Inputs) != 2 {
		t.Fatalf("number of inputs incorrect: %d", len(triangles.Inputs))
	}

	if len(triangles.Index) != 12*6 {
		t.Fatalf("number of index elements incorrect: %d", len(triangles.Index))
	}
}

func TestFloatsDecode(t *testing.T) {
	data := `<float_array id="Cube-mesh-positions-array" count="6">1 1 -1  1 -1 -1</float_array>`

	var floats collada.Floats
	if err := xml.Unmarshal([]byte(data), &floats); err != nil {
		t.Fatal(err)
	}

	if floats.ID != "Cube-mesh-positions-array" {
		t.Fatalf("incorrect id: %s", floats.ID)
	}

	if floats.Count != 6 {
		t.Fatalf("incorrect count: %d", floats.Count)
	}

	if len(floats.Data) != 6 {
		t.Fatalf("number of floats incorrect: %d", len(floats.Data))
	}

	if floats.Data[2] != -1 {
		t.Fatalf("unexpected float value: %f", floats.Data[2])
	}
}

func TestInputDecode(t *testing.T) {
	data := `
	<object>
		<input semantic="VERTEX" source="#Cube-mesh-vertices" offset="0" />
		<input semantic="NORMAL" source="#Cube-mesh-normals" offset="1" />
		<input semantic="TEXTUR" source="#Cube-mesh-textures" offset="2" />
	</object>
	`

	type Object struct {
		Inputs []collada.Input `xml:"input"`
	}

	var obj Object
	if err := xml.Unmarshal([]byte(data), &obj); err != nil {
		t.Fatal(err)
	}

	if len(obj.Inputs) != 3 {
		t.Fatalf("number of inputs incorrect: %d", len(obj.Inputs))
	}

	if obj.Inputs[1].Semantic != "NORMAL" {
		t.Fatalf("incorrect semantic: %s", obj.Inputs[1].Semantic)
	}

	if obj.Inputs[2].Offset != 2 {
		t.Fatalf("incorrect offset: %d", obj.Inputs[2].Offset)
	}
}
