// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package decode_test

import (
	"errors"
	"testing"

	"github.com/devblok/vasara/decode"
)

func TestDecodeAudioWav(t *testing.T) {
	dec := decode.NewAudioDecoder(assetSource())

	clip, err := dec("tone.wav")
	if err != nil {
		t.Fatal(err)
	}

	if clip.SampleRate != 8000 {
		t.Errorf("incorrect sample rate: %d", clip.SampleRate)
	}
	if clip.Channels != 1 {
		t.Errorf("incorrect channel count: %d", clip.Channels)
	}
	if clip.BitDepth != 16 {
		t.Errorf("incorrect bit depth: %d", clip.BitDepth)
	}
	if len(clip.Samples) != 64 {
		t.Fatalf("incorrect sample count: %d", len(clip.Samples))
	}

	// The fixture is a ramp of step 512.
	if clip.Samples[1] != 512 {
		t.Errorf("incorrect sample value: %d", clip.Samples[1])
	}
}

func TestDecodeAudioGarbageMp3(t *testing.T) {
	dec := decode.NewAudioDecoder(mapSource{
		"bad.mp3": []byte("definitely not an mp3 stream"),
	})

	if _, err := dec("bad.mp3"); err == nil {
		t.Error("expected an error for garbage mp3 data")
	}
}

func TestDecodeAudioUnsupportedFormat(t *testing.T) {
	dec := decode.NewAudioDecoder(mapSource{
		"clip.ogg": []byte("OggS"),
	})

	if _, err := dec("clip.ogg"); !errors.Is(err, decode.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got: %v", err)
	}
}
