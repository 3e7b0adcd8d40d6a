// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/fatih/set.v0"
)

// Transposer remaps overlap records onto a new assembly.
type Transposer struct {
	// Registry holds the new assembly scaffold placements.
	Registry *Registry

	// Format is the format of the feature rows.
	Format Format

	// Procs is the number of concurrent remapping workers.
	// Values less than one are treated as one.
	Procs int

	// Missing, if not nil, is called in record order for each
	// overlap whose scaffold is not placed on the new assembly.
	Missing func(Overlap)
}

// Stats summarises a transposition.
type Stats struct {
	// Written is the number of rows written.
	Written int

	// Missing is the number of rows dropped because their scaffold
	// is not placed on the new assembly.
	Missing int

	// MissingIDs holds the sorted identifiers of the scaffolds
	// not placed on the new assembly.
	MissingIDs []string
}

// Transpose writes the transposed rows for the given overlaps to w in
// overlap order. Rows whose scaffold is not in the registry are skipped
// and counted. Any other error aborts the transposition.
func (t *Transposer) Transpose(ctx context.Context, overlaps []Overlap, w io.Writer) (Stats, error) {
	rows, err := t.remapAll(ctx, overlaps)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	missing := set.New(set.NonThreadSafe)
	for i, r := range rows {
		if r == nil {
			stats.Missing++
			missing.Add(overlaps[i].Scaffold.ID)
			if t.Missing != nil {
				t.Missing(overlaps[i])
			}
			continue
		}
		_, err = io.WriteString(w, strings.Join(r, "\t")+"\n")
		if err != nil {
			return stats, err
		}
		stats.Written++
	}
	stats.MissingIDs = sortedStrings(missing)
	return stats, nil
}

// remapAll returns the transposed rows for overlaps. A nil row marks
// an overlap whose scaffold is not in the registry.
func (t *Transposer) remapAll(ctx context.Context, overlaps []Overlap) ([][]string, error) {
	procs := t.Procs
	if procs < 1 {
		procs = 1
	}
	chunk := (len(overlaps) + procs - 1) / procs

	rows := make([][]string, len(overlaps))
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(overlaps); lo += chunk {
		hi := lo + chunk
		if hi > len(overlaps) {
			hi = len(overlaps)
		}
		lo := lo
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := t.remap(overlaps[i])
				if err != nil {
					if errors.Is(err, ErrScaffoldNotFound) {
						continue
					}
					return &RowError{Line: overlaps[i].Line, Err: err}
				}
				rows[i] = r
			}
			return nil
		})
	}
	return rows, g.Wait()
}

// remap returns the transposed row for o.
func (t *Transposer) remap(o Overlap) ([]string, error) {
	_, iv, err := t.Format.Span(o.Fields)
	if err != nil {
		return nil, err
	}
	name, p, err := Remap(iv, o.Scaffold, t.Registry)
	if err != nil {
		return nil, err
	}
	return t.Format.Transposed(o.Fields, name, p), nil
}

// String returns a short description of s.
func (s Stats) String() string {
	return fmt.Sprintf("written=%d missing=%d", s.Written, s.Missing)
}
