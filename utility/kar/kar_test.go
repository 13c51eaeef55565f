// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar_test

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/devblok/vasara/utility/kar"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildTestArchive(t *testing.T) []byte {
	t.Helper()

	builder := kar.NewBuilder(kar.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("test", strings.NewReader(testString1)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test2", strings.NewReader(testString2)); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	written, err := builder.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if written != int64(buf.Len()) {
		t.Errorf("written %d does not match buffer size %d", written, buf.Len())
	}
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	ar, err := kar.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Size() != int64(len(testString1)) {
		t.Errorf("incorrect uncompressed size: %d", f.Size())
	}

	result, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Compare(string(result), testString1) != 0 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndReadAll(t *testing.T) {
	ar, err := kar.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.ReadAll("test2")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Compare(string(f), testString2) != 0 {
		t.Error("test string does not match up")
	}
}

func TestHeaderIndex(t *testing.T) {
	ar, err := kar.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	header := ar.Header()
	if header.Author != "devblok" {
		t.Errorf("incorrect author: %s", header.Author)
	}
	if len(header.Index) != 2 {
		t.Fatalf("incorrect index length: %d", len(header.Index))
	}
	if header.Index[1].Offset != header.Index[0].CompressedSize {
		t.Error("second entry must start where the first one ends")
	}
}

func TestReadMissingFile(t *testing.T) {
	ar, err := kar.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ar.ReadAll("nope"); err != kar.ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestOpenNotAnArchive(t *testing.T) {
	if _, err := kar.Open(bytes.NewReader([]byte("definitely not a kar file"))); err != kar.ErrFileFormat {
		t.Errorf("expected ErrFileFormat, got: %v", err)
	}
}

// craftArchive assembles the fixed file header by hand, so tests can
// feed the reader size fields no Builder would ever produce.
func craftArchive(t *testing.T, headerSize uint64, rawHeader []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(kar.Magic[:])
	sizeBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(sizeBytes, headerSize)
	buf.Write(sizeBytes)
	buf.Write(rawHeader)
	return buf.Bytes()
}

func TestOpenRejectsHugeHeaderSize(t *testing.T) {
	for _, size := range []uint64{1 << 63, 1<<64 - 1, 1 << 40} {
		data := craftArchive(t, size, nil)
		if _, err := kar.Open(bytes.NewReader(data)); err != kar.ErrFileFormat {
			t.Errorf("header size %d: expected ErrFileFormat, got: %v", size, err)
		}
	}
}

func TestOpenRejectsZeroHeaderSize(t *testing.T) {
	data := craftArchive(t, 0, nil)
	if _, err := kar.Open(bytes.NewReader(data)); err != kar.ErrFileFormat {
		t.Errorf("expected ErrFileFormat, got: %v", err)
	}
}

func TestOpenRejectsNegativeIndexEntries(t *testing.T) {
	for _, entry := range []kar.IndexEntry{
		{Name: "evil", Offset: 0, Size: -1, CompressedSize: 8},
		{Name: "evil", Offset: -16, Size: 8, CompressedSize: 8},
		{Name: "evil", Offset: 0, Size: 8, CompressedSize: -8},
	} {
		var rawHeader bytes.Buffer
		if err := gob.NewEncoder(&rawHeader).Encode(kar.Header{
			Author: "nobody",
			Index:  []kar.IndexEntry{entry},
		}); err != nil {
			t.Fatal(err)
		}

		data := craftArchive(t, uint64(rawHeader.Len()), rawHeader.Bytes())
		if _, err := kar.Open(bytes.NewReader(data)); err != kar.ErrFileFormat {
			t.Errorf("entry %+v: expected ErrFileFormat, got: %v", entry, err)
		}
	}
}
