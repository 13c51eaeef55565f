// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/devblok/vasara/res"
)

// NewAudioDecoder returns a decoder producing interleaved PCM samples
// from wav and mp3 files. The format is picked by file extension.
func NewAudioDecoder(src Source) res.DecodeFunc[res.AudioData] {
	return func(p string) (*res.AudioData, error) {
		data, err := src.ReadFile(p)
		if err != nil {
			return nil, err
		}

		switch ext := strings.ToLower(path.Ext(p)); ext {
		case ".wav":
			return decodeWav(data)
		case ".mp3":
			return decodeMp3(data)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}
	}
}

func decodeWav(data []byte) (*res.AudioData, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return pcmClip(buf, int(dec.BitDepth)), nil
}

func pcmClip(buf *audio.IntBuffer, bitDepth int) *res.AudioData {
	return &res.AudioData{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   bitDepth,
		Samples:    buf.Data,
	}
}

// decodeMp3 produces what go-mp3 always outputs: 16-bit stereo
// interleaved little-endian samples.
func decodeMp3(data []byte) (*res.AudioData, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	samples := make([]int, len(raw)/2)
	for idx := range samples {
		samples[idx] = int(int16(binary.LittleEndian.Uint16(raw[2*idx:])))
	}

	return &res.AudioData{
		SampleRate: dec.SampleRate(),
		Channels:   2,
		BitDepth:   16,
		Samples:    samples,
	}, nil
}
