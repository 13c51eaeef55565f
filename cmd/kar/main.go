// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command kar creates, lists and extracts kar asset archives.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/devblok/vasara/utility/kar"
)

func init() {
	u, err := user.Current()
	if err != nil {
		currentUserName = "unknown"
		return
	}
	currentUserName = u.Name
}

var (
	currentUserName string
	author          = flag.String("author", "", "Set the author of the archive when compressing, defaults to the current user")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the archive given")
	compress        = flag.String("c", "", "Compress the given file/folder")
	list            = flag.String("l", "", "List the contents of the archive given")
	dstFile         = flag.String("f", "out.kar", "Destination file")
	outDir          = flag.String("o", ".", "Destination directory for extraction")
)

func main() {
	flag.Parse()

	var ops int
	for _, op := range []string{*extract, *compress, *list} {
		if op != "" {
			ops++
		}
	}
	if ops > 1 {
		fail(errors.New("only one operation at a time"))
	}

	switch {
	case *compress != "":
		if err := compressFiles(); err != nil {
			fail(err)
		}
	case *extract != "":
		if err := extractFiles(); err != nil {
			fail(err)
		}
	case *list != "":
		if err := listFiles(); err != nil {
			fail(err)
		}
	default:
		flag.PrintDefaults()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func compressFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	archiveAuthor := *author
	if archiveAuthor == "" {
		archiveAuthor = currentUserName
	}

	builder := kar.NewBuilder(kar.Header{
		Author:      archiveAuthor,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})

	if err := filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		rel, err := filepath.Rel(*compress, path)
		if err != nil {
			return err
		}
		return builder.Add(filepath.ToSlash(rel), f)
	}); err != nil {
		return err
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = builder.WriteTo(dst)
	return err
}

func extractFiles() error {
	ar, err := kar.OpenFile(*extract)
	if err != nil {
		return err
	}
	defer ar.Close()

	for _, entry := range ar.Header().Index {
		data, err := ar.ReadAll(entry.Name)
		if err != nil {
			return err
		}

		dst := filepath.Join(*outDir, filepath.FromSlash(entry.Name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func listFiles() error {
	ar, err := kar.OpenFile(*list)
	if err != nil {
		return err
	}
	defer ar.Close()

	header := ar.Header()
	fmt.Printf("author: %s, version: %d, created: %s\n",
		header.Author, header.Version, time.Unix(header.DateCreated, 0).Format(time.RFC3339))
	for _, entry := range header.Index {
		fmt.Printf("%s\t%d\t(%d compressed)\n", entry.Name, entry.Size, entry.CompressedSize)
	}
	return nil
}
