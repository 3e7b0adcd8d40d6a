// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/SouthGreenPlatform/utils/transpose"
)

const (
	oldAssembly = "chr1\tagp\tscaffold\t1000\t2000\t.\t+\t.\tID=S1\n" +
		"chr1\tagp\tscaffold\t2001\t3000\t.\t+\t.\tID=S2\n"
	newAssembly = "chr7\tagp\tscaffold\t5000\t6000\t.\t-\t.\tID=S1\n"
)

func write(c *qt.C, dir, name, content string) string {
	path := filepath.Join(dir, name)
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)
	return path
}

func TestRunGFF(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	cfg := config{
		old:    write(c, dir, "old.gff", oldAssembly),
		new:    write(c, dir, "new.gff", newAssembly),
		in:     write(c, dir, "in.gff", "chr1\tsrc\tgene\t1100\t1150\t.\t+\t.\tID=g1\nchr1\tsrc\tgene\t2100\t2150\t.\t+\t.\tID=g2\n"),
		out:    filepath.Join(dir, "out.gff"),
		format: transpose.GFF{},
	}
	c.Assert(run(context.Background(), cfg), qt.IsNil)
	got, err := os.ReadFile(cfg.out)
	c.Assert(err, qt.IsNil)
	c.Check(string(got), qt.Equals, "chr7\tsrc\tgene\t5850\t5900\t.\t-\t.\tID=g1\n")

	entries, err := os.ReadDir(dir)
	c.Assert(err, qt.IsNil)
	c.Check(entries, qt.HasLen, 4)
}

func TestRunVCFTable(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	const scaffold = "chr1\tagp\tscaffold\t1000\t2000\t.\t+\t.\tID=S1"
	cfg := config{
		old:      write(c, dir, "old.gff", oldAssembly),
		new:      write(c, dir, "new.gff", newAssembly),
		in:       write(c, dir, "in.vcf", "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\nchr1\t1120\tv1\tA\tG\n"),
		overlaps: write(c, dir, "in.tsv", "chr1\t1120\tv1\tA\tG\t"+scaffold+"\t1.0\n"),
		out:      filepath.Join(dir, "out.vcf"),
		format:   transpose.VCF{},
	}
	c.Assert(run(context.Background(), cfg), qt.IsNil)
	got, err := os.ReadFile(cfg.out)
	c.Assert(err, qt.IsNil)
	c.Check(string(got), qt.Equals, "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\nchr7\t5880\tv1\tT\tC\n")
}

func TestRunMalformedLeavesNoOutput(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	cfg := config{
		old:    write(c, dir, "old.gff", oldAssembly),
		new:    write(c, dir, "new.gff", newAssembly),
		in:     write(c, dir, "in.gff", "chr1\tsrc\tgene\t1100\n"),
		out:    filepath.Join(dir, "out.gff"),
		format: transpose.GFF{},
	}
	err := run(context.Background(), cfg)
	c.Assert(err, qt.ErrorMatches, "transpose: bad row at line 1: .*")
	entries, err := os.ReadDir(dir)
	c.Assert(err, qt.IsNil)
	c.Check(entries, qt.HasLen, 3)
}

func TestFormatOf(t *testing.T) {
	c := qt.New(t)
	for path, want := range map[string]string{
		"a/b.gff":   "gff",
		"b.GFF3":    "gff",
		"b.gtf":     "gff",
		"calls.vcf": "vcf",
		"x.bed":     "bed",
		"noext":     "",
	} {
		c.Check(formatOf(path), qt.Equals, want, qt.Commentf("%s", path))
	}
}

func TestConfigure(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	oldPath := write(c, dir, "old.gff", oldAssembly)
	newPath := write(c, dir, "new.gff", newAssembly)
	gff := write(c, dir, "in.gff", "")
	vcf := write(c, dir, "in.vcf", "")
	bed := write(c, dir, "in.bed", "")
	table := write(c, dir, "in.tsv", "")
	absent := filepath.Join(dir, "absent.gff")
	out := filepath.Join(dir, "out")

	saved := []string{*oldGFF, *newGFF, *in, *outFile, *format, *overlaps}
	defer func() {
		*oldGFF, *newGFF, *in, *outFile, *format, *overlaps = saved[0], saved[1], saved[2], saved[3], saved[4], saved[5]
	}()

	tests := []struct {
		name                         string
		old, new, in, out, fmt, ovls string
		want                         transpose.Format
		err                          string
	}{
		{name: "gff", old: oldPath, new: newPath, in: gff, out: out, want: transpose.GFF{}},
		{name: "vcf", old: oldPath, new: newPath, in: vcf, out: out, want: transpose.VCF{Columns: 5}},
		{name: "format flag", old: oldPath, new: newPath, in: vcf, out: out, fmt: "gff", want: transpose.GFF{}},
		{name: "table", old: oldPath, new: newPath, in: gff, out: out, ovls: table, want: transpose.GFF{}},
		{name: "no out", old: oldPath, new: newPath, in: gff, err: "invalid argument: must have out file set"},
		{name: "no old", new: newPath, in: gff, out: out, err: "invalid argument: must have old, new and in files set"},
		{name: "no new", old: oldPath, in: gff, out: out, err: "invalid argument: must have old, new and in files set"},
		{name: "no in", old: oldPath, new: newPath, out: out, err: "invalid argument: must have old, new and in files set"},
		{name: "absent in", old: oldPath, new: newPath, in: absent, out: out, err: "invalid argument: open .*absent.gff: .*"},
		{name: "absent overlaps", old: oldPath, new: newPath, in: gff, out: out, ovls: absent, err: "invalid argument: open .*absent.gff: .*"},
		{name: "unknown extension", old: oldPath, new: newPath, in: bed, out: out, err: `invalid argument: cannot determine format of ".*in.bed": transpose: unknown format: bed`},
		{name: "unknown format", old: oldPath, new: newPath, in: gff, out: out, fmt: "bam", err: `invalid argument: cannot determine format of ".*in.gff": transpose: unknown format: bam`},
	}
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			*oldGFF, *newGFF, *in, *outFile, *format, *overlaps = test.old, test.new, test.in, test.out, test.fmt, test.ovls
			cfg, err := configure()
			if test.err != "" {
				var confErr *ConfigurationError
				c.Assert(errors.As(err, &confErr), qt.IsTrue, qt.Commentf("%v", err))
				c.Check(err, qt.ErrorMatches, test.err)
				return
			}
			c.Assert(err, qt.IsNil)
			c.Check(cfg.format, qt.Equals, test.want)
			c.Check(cfg.overlaps, qt.Equals, test.ovls)
		})
	}
}
