// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/store/interval"
)

// Overlap is a feature row joined with an old assembly scaffold that
// contains it.
type Overlap struct {
	// Line is the input line the overlap was read from.
	Line int

	// Fields holds the feature row.
	Fields []string

	// Scaffold is the containing scaffold on the old assembly.
	Scaffold Scaffold
}

// Provider produces the overlaps between a set of features and the
// scaffolds of the old assembly. Only overlaps where the feature is
// fully contained by the scaffold are returned.
type Provider interface {
	Overlaps(f Format) (overlaps []Overlap, partial int, err error)
}

// Containment is an in-process Provider that finds the old assembly
// scaffolds fully containing each feature.
type Containment struct {
	// Features holds the rows of the features to transpose.
	// Lines starting with '#' are ignored and reading stops at
	// a ##FASTA directive.
	Features io.Reader

	// Scaffolds holds the GFF rows of the old assembly scaffolds.
	Scaffolds io.Reader

	// Tag is the attribute tag holding scaffold identifiers.
	Tag string
}

// Overlaps returns the overlaps of the features with the scaffolds
// in feature order. The partial count is always zero since features
// not fully contained by a scaffold are never considered overlaps.
func (c Containment) Overlaps(f Format) ([]Overlap, int, error) {
	scaffolds, err := ReadScaffolds(c.Scaffolds, c.Tag)
	if err != nil {
		return nil, 0, err
	}
	trees := make(map[string]*interval.IntTree)
	for i, s := range scaffolds {
		t, ok := trees[s.SeqName]
		if !ok {
			t = &interval.IntTree{}
			trees[s.SeqName] = t
		}
		err = t.Insert(scaffoldInterval{sc: s, id: uintptr(i + 1)}, true)
		if err != nil {
			return nil, 0, err
		}
	}
	for _, t := range trees {
		t.AdjustRanges()
	}

	var overlaps []Overlap
	sc := bufio.NewScanner(c.Features)
	sc.Buffer(nil, 1<<20)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.HasPrefix(text, "##FASTA") {
			break
		}
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Split(text, "\t")
		name, iv, err := f.Span(fields)
		if err != nil {
			return nil, 0, &RowError{Line: line, Err: err}
		}
		t, ok := trees[name]
		if !ok {
			continue
		}
		q := scaffoldInterval{sc: Scaffold{Start: iv.Start, End: iv.End}}
		for _, h := range t.Get(q) {
			s := h.(scaffoldInterval).sc
			if !s.Contains(iv.Start, iv.End) {
				continue
			}
			overlaps = append(overlaps, Overlap{Line: line, Fields: fields, Scaffold: s})
		}
	}
	return overlaps, 0, sc.Err()
}

type scaffoldInterval struct {
	sc Scaffold
	id uintptr
}

func (s scaffoldInterval) ID() uintptr { return s.id }
func (s scaffoldInterval) Range() interval.IntRange {
	return interval.IntRange{Start: feat.OneToZero(s.sc.Start), End: s.sc.End}
}
func (s scaffoldInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return s.sc.End > b.Start && feat.OneToZero(s.sc.Start) < b.End
}

// Table is a Provider reading a precomputed overlap table such as
// the output of intersectBed -wa -wb. Each row holds the feature
// columns followed by the 9 GFF columns of the containing scaffold
// and optionally by the fraction of the feature that is overlapped.
type Table struct {
	// Rows holds the overlap table. Lines starting with '#' are
	// ignored.
	Rows io.Reader

	// Tag is the attribute tag holding scaffold identifiers.
	Tag string
}

// Overlaps returns the full containment rows of the table in table
// order. Rows with an overlap fraction other than 1 are counted as
// partial and not returned.
func (t Table) Overlaps(f Format) ([]Overlap, int, error) {
	var (
		overlaps []Overlap
		partial  int
		width    = f.Width()
	)
	sc := bufio.NewScanner(t.Rows)
	sc.Buffer(nil, 1<<20)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Split(text, "\t")
		switch len(fields) {
		case width + gffFields:
		case width + gffFields + 1:
			frac, err := strconv.ParseFloat(fields[len(fields)-1], 64)
			if err != nil {
				return nil, 0, &RowError{Line: line, Err: fmt.Errorf("bad overlap fraction: %v", err)}
			}
			if frac != 1 {
				partial++
				continue
			}
		default:
			return nil, 0, &RowError{Line: line, Err: fmt.Errorf("expected %d or %d fields, got %d",
				width+gffFields, width+gffFields+1, len(fields))}
		}
		s, err := scaffoldFrom(fields[width:width+gffFields], t.Tag)
		if err != nil {
			return nil, 0, &MalformedAnnotationError{Line: line, Reason: err.Error()}
		}
		overlaps = append(overlaps, Overlap{Line: line, Fields: fields[:width], Scaffold: s})
	}
	return overlaps, partial, sc.Err()
}
