// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transpose remaps genomic feature coordinates from one genome
// assembly to another through the scaffolds shared by both assemblies.
//
// A feature fully contained in a scaffold of the old assembly is first
// placed relative to that scaffold and then placed on the new assembly
// using the scaffold's new position and orientation. All coordinates
// are 1-based and inclusive.
package transpose

import (
	"fmt"

	"github.com/biogo/biogo/seq"
)

// Interval is an oriented 1-based inclusive interval.
type Interval struct {
	Start  int
	End    int
	Strand seq.Strand
}

// Len returns the number of positions in the interval.
func (iv Interval) Len() int { return iv.End - iv.Start + 1 }

// Local returns f placed relative to the start of the scaffold sc that
// contains it, oriented with respect to sc.
func Local(f Interval, sc Scaffold) Interval {
	l := Interval{Strand: relative(f.Strand, sc.Strand)}
	if sc.Strand == seq.Minus {
		span := sc.End - sc.Start
		l.Start = span - (f.End - sc.Start) + 1
		l.End = span - (f.Start - sc.Start) + 1
	} else {
		l.Start = f.Start - sc.Start + 1
		l.End = f.End - sc.Start + 1
	}
	return l
}

// Place returns the scaffold-local interval l placed on the assembly
// holding sc.
func Place(l Interval, sc Scaffold) Interval {
	p := Interval{Strand: relative(l.Strand, sc.Strand)}
	if sc.Strand == seq.Minus {
		p.End = sc.End - l.Start + 1
		p.Start = sc.End - l.End + 1
	} else {
		p.Start = l.Start + sc.Start - 1
		p.End = l.End + sc.Start - 1
	}
	return p
}

// Remap returns the position of f, contained in the old assembly
// scaffold old, on the new assembly described by reg. The returned
// string is the name of the new assembly sequence. If the scaffold is
// not placed on the new assembly, the error wraps ErrScaffoldNotFound.
func Remap(f Interval, old Scaffold, reg *Registry) (string, Interval, error) {
	sc, ok := reg.Scaffold(old.ID)
	if !ok {
		return "", Interval{}, fmt.Errorf("%w: %s", ErrScaffoldNotFound, old.ID)
	}
	if !old.Contains(f.Start, f.End) {
		return "", Interval{}, fmt.Errorf("transpose: [%d,%d] not contained by scaffold %s [%d,%d]",
			f.Start, f.End, old.ID, old.Start, old.End)
	}
	return sc.SeqName, Place(Local(f, old), sc), nil
}
