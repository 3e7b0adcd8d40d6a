// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// syncreads synchronises a pair of fastq files so that mates are
// written in the same order, dropping or setting aside reads whose
// mate is missing.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
)

var (
	r1     = flag.String("r1", "", "first read fastq file (required)")
	r2     = flag.String("r2", "", "second read fastq file (required)")
	out1   = flag.String("out1", "", "synchronised first read output (default <r1 without extension>.sync.fq)")
	out2   = flag.String("out2", "", "synchronised second read output (default <r2 without extension>.sync.fq)")
	single = flag.String("single", "", "output file for reads without a mate (default drop)")
)

func main() {
	flag.Parse()
	if *r1 == "" || *r2 == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *out1 == "" {
		*out1 = syncedName(*r1)
	}
	if *out2 == "" {
		*out2 = syncedName(*r2)
	}

	log.Printf("synchronising %q and %q", *r1, *r2)
	n, err := run(*r1, *r2, *out1, *out2, *single)
	if err != nil {
		log.Fatalf("failed to synchronise reads: %v", err)
	}
	log.Printf("wrote %d pairs, %d first and %d second reads without a mate", n.pairs, n.single1, n.single2)
}

// run synchronises the reads in the files in1 and in2 into out1 and out2,
// writing reads without a mate to single if it is not empty. No output
// files are left behind on error.
func run(in1, in2, out1, out2, single string) (n counts, err error) {
	f1, err := os.Open(in1)
	if err != nil {
		return n, err
	}
	defer f1.Close()
	f2, err := os.Open(in2)
	if err != nil {
		return n, err
	}
	defer f2.Close()

	var created []*os.File
	defer func() {
		for _, f := range created {
			if err != nil {
				f.Close()
				os.Remove(f.Name())
			}
		}
	}()
	create := func(path string) (*os.File, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		created = append(created, f)
		return f, nil
	}

	w1, err := create(out1)
	if err != nil {
		return n, err
	}
	w2, err := create(out2)
	if err != nil {
		return n, err
	}
	var ws io.Writer
	if single != "" {
		f, err := create(single)
		if err != nil {
			return n, err
		}
		ws = f
	}

	n, err = syncPairs(f1, f2, w1, w2, ws)
	if err != nil {
		return n, err
	}
	for _, f := range created {
		err = f.Close()
		if err != nil {
			return n, fmt.Errorf("failed to close %q: %v", f.Name(), err)
		}
	}
	return n, nil
}

type counts struct {
	pairs, single1, single2 int
}

// syncPairs writes the reads of r1 and r2 that have a mate to w1 and w2
// in r1 order. Reads without a mate are written to single if it is not
// nil, r1 reads first.
func syncPairs(r1, r2 io.Reader, w1, w2, single io.Writer) (counts, error) {
	var n counts

	mates := make(map[string]*linear.QSeq)
	var order []string
	sc := seqio.NewScanner(fastq.NewReader(r2, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger)))
	for sc.Next() {
		s := sc.Seq().(*linear.QSeq)
		name := pairName(s.ID)
		if _, ok := mates[name]; ok {
			return n, fmt.Errorf("duplicate read name in second reads: %s", s.ID)
		}
		mates[name] = s
		order = append(order, name)
	}
	err := sc.Error()
	if err != nil {
		return n, err
	}

	fw1 := fastq.NewWriter(w1)
	fw2 := fastq.NewWriter(w2)
	var fws *fastq.Writer
	if single != nil {
		fws = fastq.NewWriter(single)
	}
	sc = seqio.NewScanner(fastq.NewReader(r1, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger)))
	for sc.Next() {
		s := sc.Seq().(*linear.QSeq)
		name := pairName(s.ID)
		m, ok := mates[name]
		if !ok {
			n.single1++
			if fws != nil {
				if _, err := fws.Write(s); err != nil {
					return n, err
				}
			}
			continue
		}
		delete(mates, name)
		if _, err := fw1.Write(s); err != nil {
			return n, err
		}
		if _, err := fw2.Write(m); err != nil {
			return n, err
		}
		n.pairs++
	}
	err = sc.Error()
	if err != nil {
		return n, err
	}

	for _, name := range order {
		m, ok := mates[name]
		if !ok {
			continue
		}
		n.single2++
		if fws != nil {
			if _, err := fws.Write(m); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// pairName returns the read name without a /1 or /2 mate suffix.
func pairName(id string) string {
	if strings.HasSuffix(id, "/1") || strings.HasSuffix(id, "/2") {
		return id[:len(id)-2]
	}
	return id
}

// syncedName returns the default output name for the reads in path,
// placed alongside path.
func syncedName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".sync.fq"
}
