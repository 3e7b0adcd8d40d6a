// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bedtools

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestContainmentArgs(t *testing.T) {
	c := qt.New(t)
	args, err := Containment("features.gff", "old.gff").Args()
	c.Assert(err, qt.IsNil)
	c.Check(args, qt.DeepEquals, []string{
		"intersectBed",
		"-a", "features.gff",
		"-b", "old.gff",
		"-wa", "-wb",
		"-f", "1.0",
	})
}

func TestIntersectBedArgs(t *testing.T) {
	c := qt.New(t)
	b := IntersectBed{
		Cmd: "/opt/bedtools/bin/intersectBed",
		A:   "a.vcf", B: "b.gff",
		Header: true, Unique: true,
		Fraction: 0.5, SameStrand: true,
	}
	args, err := b.Args()
	c.Assert(err, qt.IsNil)
	c.Check(args, qt.DeepEquals, []string{
		"/opt/bedtools/bin/intersectBed",
		"-a", "a.vcf",
		"-b", "b.gff",
		"-u", "-header",
		"-f", "0.5",
		"-s",
	})

	cmd, err := b.BuildCommand()
	c.Assert(err, qt.IsNil)
	c.Check(cmd.Args, qt.DeepEquals, args)
}

func TestMissingRequired(t *testing.T) {
	c := qt.New(t)
	_, err := IntersectBed{A: "a.gff"}.BuildCommand()
	c.Check(err, qt.Equals, ErrMissingRequired)
}
