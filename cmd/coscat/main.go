// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command coscat is a small diagnostic tool that opens a PDF file, walks
// its cross-reference table, and prints a one-line summary of every
// indirect object it can resolve, or the same summary for a single
// object named on the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/inkpdf/cos"
)

var objArg = flag.String("obj", "", "print only object N (or N.G)")

func main() {
	flag.Parse()
	flag.CommandLine.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <file.pdf>\n", os.Args[0])
		flag.PrintDefaults()
	}
	args := flag.Args()
	if len(args) != 1 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	if err := run(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	r, err := cos.NewByteReader(cos.NewByteBuffer(data))
	if err != nil {
		return err
	}

	idx, err := cos.NewXrefTable(r, cos.ParserOptions{})
	if err != nil {
		return err
	}

	root, err := idx.Root()
	if err != nil {
		return err
	}
	if _, encrypted := idx.Trailer().Get("Encrypt"); encrypted {
		// This reader has no key-derivation facade: ask for the
		// password anyway, so the prompt is honest about why it
		// cannot do anything useful with the answer yet.
		fmt.Print("password: ")
		_, _ = term.ReadPassword(syscall.Stdin)
		fmt.Println()
		fmt.Fprintln(os.Stderr, "coscat: encrypted documents are not decodable by this build")
	}

	if *objArg != "" {
		id, gen, err := parseObjRef(*objArg)
		if err != nil {
			return err
		}
		obj, err := cos.Resolve(idx, cos.Reference{ID: id, Gen: gen})
		if err != nil {
			return err
		}
		fmt.Println(describe(obj))
		return nil
	}

	if tp, ok := root.Get("Type"); ok {
		fmt.Printf("catalog: %s\n", describe(tp))
	}
	for _, num := range idx.ObjectNumbers() {
		obj, err := idx.Get(num)
		if err != nil {
			fmt.Printf("%d: error: %v\n", num, err)
			continue
		}
		fmt.Printf("%d: %s\n", num, describe(obj))
	}
	return nil
}

func parseObjRef(s string) (uint32, uint16, error) {
	parts := strings.SplitN(s, ".", 2)
	n, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, err
	}
	var gen uint64
	if len(parts) == 2 {
		gen, err = strconv.ParseUint(parts[1], 10, 16)
		if err != nil {
			return 0, 0, err
		}
	}
	return uint32(n), uint16(gen), nil
}

func describe(obj cos.PdfObject) string {
	switch v := obj.(type) {
	case nil, cos.Null:
		return "null"
	case cos.Bool:
		if v {
			return "true"
		}
		return "false"
	case cos.Number:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case cos.Name:
		return "/" + string(v)
	case cos.StringLit:
		return fmt.Sprintf("(%s)", string(v))
	case cos.HexStr:
		return fmt.Sprintf("<%x>", []byte(v))
	case cos.Reference:
		return v.String()
	case cos.Array:
		return fmt.Sprintf("[...%d elements]", len(v))
	case *cos.PdfDict:
		tp, _ := v.Get("Type")
		if tp != nil {
			return fmt.Sprintf("<<%s dict, %d entries>>", describe(tp), len(v.Keys()))
		}
		return fmt.Sprintf("<<dict, %d entries>>", len(v.Keys()))
	case *cos.PdfStream:
		return fmt.Sprintf("<stream, %d bytes payload, %d filters>", len(v.Payload), len(v.Filters))
	default:
		return fmt.Sprintf("<%T>", obj)
	}
}
