// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAddAndWrite(t *testing.T) {
	builder := NewBuilder(Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	builder.Add("test", strings.NewReader("idunvovkjnreovmegihjbrqlkmfrjnb"))
	builder.Add("test2", strings.NewReader("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"))

	if len(builder.files) != 2 {
		t.Error("incorrect number of files present")
	}

	var data []byte
	buf := bytes.NewBuffer(data)
	if written, err := builder.WriteTo(buf); err != nil {
		t.Error(err)
	} else if written == 0 {
		t.Error("nothing written")
	}
}

func TestConcurrentAdd(t *testing.T) {
	builder := NewBuilder(Header{Author: "devblok", Version: 1})

	var wg sync.WaitGroup
	for idx := 0; idx < 16; idx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			builder.Add("file", strings.NewReader("oenbirtbnsoiemgofjnbofnbsdfbsmdfo"))
		}()
	}
	wg.Wait()

	if builder.Len() != 16 {
		t.Errorf("incorrect number of files present: %d", builder.Len())
	}
}
