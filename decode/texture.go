// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package decode

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	// Texture formats recognized by image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/devblok/vasara/res"
)

// NewTextureDecoder returns a decoder that turns image files into
// RGBA pixel data ready for a staging buffer copy.
func NewTextureDecoder(src Source) res.DecodeFunc[res.TextureData] {
	return func(path string) (*res.TextureData, error) {
		data, err := src.ReadFile(path)
		if err != nil {
			return nil, err
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode texture: %w", err)
		}
		return textureFromImage(img), nil
	}
}

// textureFromImage arranges pixels the way the upload path expects
// by drawing the decoded image onto a controlled RGBA canvas.
func textureFromImage(img image.Image) *res.TextureData {
	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	return &res.TextureData{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    canvas.Pix,
	}
}
