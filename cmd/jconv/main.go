// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jconv reads JSON documents and writes them in another form.
//
// Usage:
//
//	jconv [-mode compact|pretty|cpp|xml] [-comments] [-path a.b.0] [file ...]
//
// With no file arguments, jconv reads a single document from stdin. The
// -path flag selects a subtree of each document to write: dot-separated
// components select object fields, or array items when they are integers.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/mlkit/jdoc"
)

var (
	mode     = flag.String("mode", "pretty", "Output mode (compact, pretty, cpp, xml)")
	comments = flag.Bool("comments", false, "Allow comments and trailing commas in the input")
	subPath  = flag.String("path", "", "Write only the value at this dotted path")
)

var writers = map[string]func(*jdoc.Doc, io.Writer) error{
	"compact": withNewline((*jdoc.Doc).WriteJSON),
	"pretty":  withNewline((*jdoc.Doc).WriteJSONPretty),
	"cpp":     (*jdoc.Doc).WriteJSONCpp,
	"xml":     withNewline((*jdoc.Doc).WriteXML),
}

func withNewline(f func(*jdoc.Doc, io.Writer) error) func(*jdoc.Doc, io.Writer) error {
	return func(d *jdoc.Doc, w io.Writer) error {
		if err := f(d, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file ...]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("jconv: ")

	write, ok := writers[*mode]
	if !ok {
		log.Fatalf("Unknown output mode %q", *mode)
	}
	path := parsePath(*subPath)

	out := bufio.NewWriter(os.Stdout)
	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, name := range inputs {
		doc, err := readDoc(name)
		if err != nil {
			log.Fatalf("Reading %s: %v", name, err)
		}
		if len(path) != 0 {
			sub, err := doc.Root().Path(path...)
			if err != nil {
				log.Fatalf("Path %q in %s: %v", *subPath, name, err)
			}
			if _, err := doc.SetRoot(sub); err != nil {
				log.Fatalf("Path %q in %s: %v", *subPath, name, err)
			}
		}
		if err := write(doc, out); err != nil {
			log.Fatalf("Writing %s: %v", name, err)
		}
	}
	if err := out.Flush(); err != nil {
		log.Fatalf("Flush: %v", err)
	}
}

func readDoc(name string) (*jdoc.Doc, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	return jdoc.ParseWith(data, jdoc.ParseOptions{AllowComments: *comments})
}

// parsePath splits a dotted path into cursor keys. Components that parse as
// integers become array offsets.
func parsePath(s string) []any {
	if s == "" {
		return nil
	}
	var keys []any
	for part := range strings.SplitSeq(s, ".") {
		if i, err := strconv.Atoi(part); err == nil {
			keys = append(keys, i)
		} else {
			keys = append(keys, part)
		}
	}
	return keys
}
