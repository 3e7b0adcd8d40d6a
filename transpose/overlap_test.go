// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"errors"
	"strings"
	"testing"

	"github.com/biogo/biogo/seq"
	qt "github.com/frankban/quicktest"
)

const oldAssembly = `##gff-version 3
chr1	agp	scaffold	1000	2000	.	+	.	ID=S1
chr1	agp	scaffold	2001	2600	.	-	.	ID=S2
chr2	agp	scaffold	1	500	.	+	.	ID=S3
`

func TestContainment(t *testing.T) {
	c := qt.New(t)
	const features = "##gff-version 3\n" +
		"chr1\tsrc\tgene\t1100\t1150\t.\t+\t.\tID=g1\n" + // in S1
		"chr1\tsrc\tgene\t1990\t2010\t.\t+\t.\tID=g2\n" + // spans S1 and S2
		"chr1\tsrc\tgene\t2001\t2001\t.\t-\t.\tID=g3\n" + // first base of S2
		"chr2\tsrc\tgene\t500\t501\t.\t+\t.\tID=g4\n" + // runs off S3
		"chr3\tsrc\tgene\t1\t10\t.\t+\t.\tID=g5\n" + // no scaffolds
		"chr2\tsrc\tgene\t1\t500\t.\t+\t.\tID=g6\n" // all of S3

	p := Containment{
		Features:  strings.NewReader(features),
		Scaffolds: strings.NewReader(oldAssembly),
		Tag:       DefaultTag,
	}
	got, partial, err := p.Overlaps(GFF{})
	c.Assert(err, qt.IsNil)
	c.Check(partial, qt.Equals, 0)
	c.Assert(got, qt.HasLen, 3)

	c.Check(got[0].Line, qt.Equals, 2)
	c.Check(got[0].Fields[8], qt.Equals, "ID=g1")
	c.Check(got[0].Scaffold, qt.Equals, Scaffold{ID: "S1", SeqName: "chr1", Start: 1000, End: 2000, Strand: seq.Plus})
	c.Check(got[1].Fields[8], qt.Equals, "ID=g3")
	c.Check(got[1].Scaffold.ID, qt.Equals, "S2")
	c.Check(got[2].Fields[8], qt.Equals, "ID=g6")
	c.Check(got[2].Scaffold.ID, qt.Equals, "S3")
}

func TestContainmentFASTATrailer(t *testing.T) {
	c := qt.New(t)
	const features = "##gff-version 3\n" +
		"chr1\tsrc\tgene\t1100\t1150\t.\t+\t.\tID=g1\n" +
		"##FASTA\n" +
		">chr1\n" +
		"ACGTACGT\n"
	got, _, err := Containment{
		Features:  strings.NewReader(features),
		Scaffolds: strings.NewReader(oldAssembly),
		Tag:       DefaultTag,
	}.Overlaps(GFF{})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 1)
	c.Check(got[0].Fields[8], qt.Equals, "ID=g1")
	c.Check(got[0].Scaffold.ID, qt.Equals, "S1")
}

func TestContainmentVCF(t *testing.T) {
	c := qt.New(t)
	const vcf = "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\n" +
		"chr1\t1120\tv1\tA\tT\n" +
		"chr1\t2000\tv2\tC\tG\n" +
		"chr1\t2001\tv3\tC\tG\n" +
		"chr1\t9999\tv4\tC\tG\n"
	p := Containment{
		Features:  strings.NewReader(vcf),
		Scaffolds: strings.NewReader(oldAssembly),
		Tag:       DefaultTag,
	}
	got, _, err := p.Overlaps(VCF{Columns: 5})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 3)
	for i, want := range []struct{ id, scaffold string }{
		{"v1", "S1"}, {"v2", "S1"}, {"v3", "S2"},
	} {
		c.Check(got[i].Fields[2], qt.Equals, want.id)
		c.Check(got[i].Scaffold.ID, qt.Equals, want.scaffold)
	}
}

func TestContainmentBadRow(t *testing.T) {
	c := qt.New(t)
	p := Containment{
		Features:  strings.NewReader("chr1\tsrc\tgene\t1100\n"),
		Scaffolds: strings.NewReader(oldAssembly),
		Tag:       DefaultTag,
	}
	_, _, err := p.Overlaps(GFF{})
	var rowErr *RowError
	c.Assert(errors.As(err, &rowErr), qt.IsTrue)
	c.Check(rowErr.Line, qt.Equals, 1)
}

func TestTable(t *testing.T) {
	c := qt.New(t)
	const scaffold = "chr1\tagp\tscaffold\t1000\t2000\t.\t+\t.\tID=S1"
	const table = "chr1\tsrc\tgene\t1100\t1150\t.\t+\t.\tID=g1\t" + scaffold + "\n" +
		"chr1\tsrc\tgene\t1200\t1250\t.\t+\t.\tID=g2\t" + scaffold + "\t1.0\n" +
		"chr1\tsrc\tgene\t1990\t2010\t.\t+\t.\tID=g3\t" + scaffold + "\t0.52\n" +
		"chr1\tsrc\tgene\t1300\t1350\t.\t+\t.\tID=g4\t" + scaffold + "\t1\n"

	got, partial, err := Table{Rows: strings.NewReader(table), Tag: DefaultTag}.Overlaps(GFF{})
	c.Assert(err, qt.IsNil)
	c.Check(partial, qt.Equals, 1)
	c.Assert(got, qt.HasLen, 3)
	for i, id := range []string{"ID=g1", "ID=g2", "ID=g4"} {
		c.Check(got[i].Fields, qt.HasLen, 9)
		c.Check(got[i].Fields[8], qt.Equals, id)
		c.Check(got[i].Scaffold.ID, qt.Equals, "S1")
	}
	c.Check(got[2].Line, qt.Equals, 4)
}

func TestTableErrors(t *testing.T) {
	c := qt.New(t)
	for _, test := range []struct {
		table string
		want  string
	}{
		{
			table: "chr1\t1120\t.\tA\tT\tchr1\tagp\tscaffold\t1000\t2000\t.\t+\t.\tID=S1\n",
			want:  "transpose: bad row at line 1: expected 18 or 19 fields, got 14",
		},
		{
			table: "chr1\tsrc\tgene\t1100\t1150\t.\t+\t.\tID=g1\tchr1\tagp\tscaffold\t1000\t2000\t.\t+\t.\tName=S1\n",
			want:  "transpose: malformed annotation at line 1: missing ID attribute",
		},
		{
			table: "chr1\tsrc\tgene\t1100\t1150\t.\t+\t.\tID=g1\tchr1\tagp\tscaffold\t1000\t2000\t.\t+\t.\tID=S1\tall\n",
			want:  "transpose: bad row at line 1: bad overlap fraction: .*",
		},
	} {
		_, _, err := Table{Rows: strings.NewReader(test.table), Tag: DefaultTag}.Overlaps(GFF{})
		c.Check(err, qt.ErrorMatches, test.want)
	}
}
