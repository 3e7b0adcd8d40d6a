// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// concatmsa concatenates a set of multiple fasta alignments into a
// single supermatrix alignment. Sequences are joined by ID and taxa
// missing from an alignment are filled with gaps.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	outFile   = flag.String("out", "", "output file name (default to stdout)")
	partition = flag.String("partition", "", "write a RAxML partition file to this file if option not empty")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "need at least one fasta alignment input")
		flag.Usage()
		os.Exit(1)
	}

	var alns []alignment
	for _, in := range flag.Args() {
		f, err := os.Open(in)
		if err != nil {
			log.Fatalf("failed to open %q: %v", in, err)
		}
		a, err := readAlignment(f, basename(in))
		f.Close()
		if err != nil {
			log.Fatalf("failed to read alignment %q: %v", in, err)
		}
		log.Printf("read %d sequences of length %d from %q", len(a.seqs), a.length, in)
		alns = append(alns, a)
	}

	out := os.Stdout
	if *outFile != "" {
		var err error
		out, err = os.Create(*outFile)
		if err != nil {
			log.Fatalf("failed to create out file: %v", err)
		}
	}
	super, parts := concatenate(alns)
	for _, s := range super {
		_, err := fmt.Fprintf(out, "%60a\n", s)
		if err != nil {
			log.Fatalf("failed to write fasta sequence: %v", err)
		}
	}
	err := out.Close()
	if err != nil {
		log.Fatalf("failed to close out file: %v", err)
	}

	if *partition != "" {
		pf, err := os.Create(*partition)
		if err != nil {
			log.Fatalf("failed to create partition file %q: %v", *partition, err)
		}
		err = writePartitions(pf, parts)
		if err != nil {
			log.Fatalf("failed to write partition file: %v", err)
		}
		err = pf.Close()
		if err != nil {
			log.Fatalf("failed to close partition file: %v", err)
		}
	}
}

// alignment is a named multiple sequence alignment.
type alignment struct {
	name   string
	length int
	seqs   []*linear.Seq
}

// readAlignment returns the alignment held in the fasta stream r. All
// sequences must have the same length.
func readAlignment(r io.Reader, name string) (alignment, error) {
	a := alignment{name: name, length: -1}
	seen := make(map[string]bool)
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if seen[s.ID] {
			return a, fmt.Errorf("duplicate sequence id: %s", s.ID)
		}
		seen[s.ID] = true
		switch {
		case a.length < 0:
			a.length = s.Len()
		case s.Len() != a.length:
			return a, fmt.Errorf("sequence %s has length %d, expected %d", s.ID, s.Len(), a.length)
		}
		a.seqs = append(a.seqs, s)
	}
	if a.length < 0 {
		a.length = 0
	}
	return a, sc.Error()
}

// part is the 1-based inclusive extent of an alignment within the
// concatenation.
type part struct {
	name       string
	start, end int
}

// concatenate returns the concatenation of the given alignments. Taxa
// are ordered by first appearance and padded with gaps where absent.
// Empty alignments contribute no partition.
func concatenate(alns []alignment) ([]*linear.Seq, []part) {
	var (
		taxa  []string
		index = make(map[string]int)
		parts []part
		total int
	)
	for _, a := range alns {
		for _, s := range a.seqs {
			if _, ok := index[s.ID]; !ok {
				index[s.ID] = len(taxa)
				taxa = append(taxa, s.ID)
			}
		}
		if a.length != 0 {
			parts = append(parts, part{name: a.name, start: total + 1, end: total + a.length})
		}
		total += a.length
	}

	letters := make([]alphabet.Letters, len(taxa))
	for i := range letters {
		letters[i] = make(alphabet.Letters, 0, total)
	}
	for _, a := range alns {
		present := make([]bool, len(taxa))
		for _, s := range a.seqs {
			i := index[s.ID]
			letters[i] = append(letters[i], s.Seq...)
			present[i] = true
		}
		for i, ok := range present {
			if !ok {
				letters[i] = append(letters[i], gaps(a.length)...)
			}
		}
	}

	super := make([]*linear.Seq, len(taxa))
	for i, id := range taxa {
		super[i] = linear.NewSeq(id, letters[i], alphabet.DNAgapped)
	}
	return super, parts
}

func gaps(n int) alphabet.Letters {
	l := make(alphabet.Letters, n)
	for i := range l {
		l[i] = '-'
	}
	return l
}

func writePartitions(w io.Writer, parts []part) error {
	for _, p := range parts {
		_, err := fmt.Fprintf(w, "DNA, %s = %d-%d\n", p.name, p.start, p.end)
		if err != nil {
			return err
		}
	}
	return nil
}

func basename(path string) string {
	path = filepath.Base(path)
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}
