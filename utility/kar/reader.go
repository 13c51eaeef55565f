// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pierrec/lz4"
)

// Open opens the kar archive read from r. It checks that the file
// actually is a kar archive and reads the whole index up front, so
// every file's location is known before any data io happens.
func Open(r io.ReaderAt) (*Archive, error) {
	magic := make([]byte, magicLength)
	if _, err := r.ReadAt(magic, 0); err != nil {
		return nil, ErrFileFormat
	}
	if [magicLength]byte(magic) != Magic {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, headerSizeLength)
	if _, err := r.ReadAt(headerSizeBytes, magicLength); err != nil {
		return nil, ErrFileFormat
	}
	headerSize := int64(binary.LittleEndian.Uint64(headerSizeBytes))
	if headerSize <= 0 || headerSize > maxHeaderSize {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if _, err := r.ReadAt(headerBytes, dataOffset); err != nil {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	// Size fields come straight from the file. Reject anything a
	// crafted index could use to force a bad allocation or a read
	// outside the data section.
	index := make(map[string]IndexEntry, len(header.Index))
	for _, entry := range header.Index {
		if entry.Offset < 0 || entry.Size < 0 || entry.CompressedSize < 0 {
			return nil, ErrFileFormat
		}
		index[entry.Name] = entry
	}

	return &Archive{
		reader:    r,
		header:    header,
		index:     index,
		dataStart: dataOffset + headerSize,
	}, nil
}

// OpenFile opens the kar archive at path. Close the archive to
// release the underlying file.
func OpenFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	ar.closer = f
	return ar, nil
}

// Archive provides concurrent io for a kar file, and can provide an
// io.Reader for each file separately to perform actions on.
type Archive struct {
	reader    io.ReaderAt
	closer    io.Closer
	header    Header
	index     map[string]IndexEntry
	dataStart int64
}

// Header returns the archive header, index included.
func (a *Archive) Header() Header {
	return a.header
}

// ReadAll returns the entire decompressed contents of the file with
// the given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	r, err := a.Open(name)
	if err != nil {
		return nil, err
	}

	data := make([]byte, r.entry.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, ErrSizeTrunc
	}
	return data, nil
}

// Open returns a Reader streaming the decompressed contents of a
// single file in the Archive.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.index[name]
	if !ok {
		return nil, ErrNotFound
	}

	section := io.NewSectionReader(a.reader, a.dataStart+entry.Offset, entry.CompressedSize)
	return &Reader{
		Reader: lz4.NewReader(section),
		entry:  entry,
	}, nil
}

// Close releases the archive's underlying file, when it owns one.
// Archives opened from a caller-supplied io.ReaderAt have nothing
// to release.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Reader decompresses a single file in an Archive. It abstracts away
// the location that needs to be known to find the data.
type Reader struct {
	io.Reader

	entry IndexEntry
}

// Size returns the uncompressed size of the file being read.
func (r *Reader) Size() int64 {
	return r.entry.Size
}
