// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package kar is an api for an lz4 backed asset archive format.
// Its purpose is to be well suited for streaming resources out of it.
// Unlike tar, the index at the front of the file knows where every
// file is located before any data is read. The archive itself is not
// compressed in any form, rather every file is individually
// compressed, so each one can be read from its place and decompressed
// on the fly. This somewhat compromises space efficiency, which is
// not the primary goal of this package. It instead focuses on getting
// resources from disk to a usable state as fast as possible. An open
// archive can be read from concurrently.
//
// Layout: 4 magic bytes, 8 bytes little-endian header size, the gob
// encoded Header, then the lz4 frames back to back. Index offsets are
// relative to the start of the data section.
package kar

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// Package errors.
var (
	ErrFileFormat = errors.New("kar: corrupted or not a kar archive")
	ErrNotFound   = errors.New("kar: no such file in archive")
	ErrSizeTrunc  = errors.New("kar: decompressed size does not match index")
)

// Magic identifies a kar archive.
var Magic = [4]byte{'K', 'A', 'R', '\x00'}

// Sizes relevant to the fixed part of the file header.
const (
	magicLength      = 4
	headerSizeLength = 8
	dataOffset       = magicLength + headerSizeLength

	// maxHeaderSize bounds the index allocation when opening an
	// archive, so a corrupt size field cannot blow up the process.
	maxHeaderSize = 64 << 20
)

// IndexEntry is info for one file in the file index.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the file header for kar files.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	return gob.NewDecoder(bytes.NewReader(bts)).Decode(obj)
}
