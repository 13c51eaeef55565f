// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it is computed when the archive is written out.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

type pendingFile struct {

	// Name is the archive-visible name of the file.
	Name string

	// Size is the uncompressed size.
	Size int64

	// Compressed holds the finished lz4 frame.
	Compressed []byte
}

// Builder assembles a kar archive. Archives are versioned and cannot
// be appended to, the Builder is the one way to create them. Add
// compresses each file as it comes in, WriteTo lays down the header
// and the collected frames. Add is safe to call concurrently from
// several goroutines.
type Builder struct {
	header Header

	mutex sync.Mutex
	files []pendingFile
}

// Add compresses data from r and appends it to the builder under the
// given name. Blocks until lz4 finishes the frame.
func (b *Builder) Add(name string, r io.Reader) error {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	written, err := io.Copy(zw, r)
	if err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files = append(b.files, pendingFile{
		Name:       name,
		Size:       written,
		Compressed: buf.Bytes(),
	})
	return nil
}

// Len returns the number of files added so far.
func (b *Builder) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.files)
}

// WriteTo bundles everything added to the Builder into a ready to use
// kar archive. The Builder keeps its contents, so the same archive
// can be written more than once.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	var offset int64
	for _, f := range b.files {
		header.Index = append(header.Index, IndexEntry{
			Name:           f.Name,
			Offset:         offset,
			Size:           f.Size,
			CompressedSize: int64(len(f.Compressed)),
		})
		offset += int64(len(f.Compressed))
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}

	var total int64
	headerSize := make([]byte, headerSizeLength)
	binary.LittleEndian.PutUint64(headerSize, uint64(len(rawHeader)))

	for _, chunk := range [][]byte{Magic[:], headerSize, rawHeader} {
		n, err := w.Write(chunk)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	for _, f := range b.files {
		n, err := w.Write(f.Compressed)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
