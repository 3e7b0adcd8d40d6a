// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sortseq sorts the sequences of a fasta file by ID or by length.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	in      = flag.String("in", "", "input fasta file name (default to stdin)")
	outFile = flag.String("out", "", "output file name (default to stdout)")
	by      = flag.String("by", "id", `sort key: "id" or "length"`)
	reverse = flag.Bool("reverse", false, "sort in descending order")
)

func main() {
	flag.Parse()
	if *by != "id" && *by != "length" {
		flag.Usage()
		os.Exit(1)
	}

	var r io.Reader = os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatalf("failed to open %q: %v", *in, err)
		}
		defer f.Close()
		r = f
	}
	seqs, err := readSeqs(r)
	if err != nil {
		log.Fatalf("error during fasta read: %v", err)
	}

	sortSeqs(seqs, *by, *reverse)

	out := os.Stdout
	if *outFile != "" {
		out, err = os.Create(*outFile)
		if err != nil {
			log.Fatalf("failed to create out file: %v", err)
		}
	}
	for _, s := range seqs {
		_, err = fmt.Fprintf(out, "%60a\n", s)
		if err != nil {
			log.Fatalf("failed to write fasta sequence: %v", err)
		}
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close out file: %v", err)
	}
}

func readSeqs(r io.Reader) ([]*linear.Seq, error) {
	var seqs []*linear.Seq
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		seqs = append(seqs, sc.Seq().(*linear.Seq))
	}
	return seqs, sc.Error()
}

// sortSeqs performs a stable sort of seqs by ID or length.
func sortSeqs(seqs []*linear.Seq, by string, reverse bool) {
	var less func(i, j int) bool
	switch by {
	case "length":
		less = func(i, j int) bool { return seqs[i].Len() < seqs[j].Len() }
	default:
		less = func(i, j int) bool { return seqs[i].ID < seqs[j].ID }
	}
	if reverse {
		fwd := less
		less = func(i, j int) bool { return fwd(j, i) }
	}
	sort.SliceStable(seqs, less)
}
