// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import "github.com/biogo/biogo/seq"

// parseStrand returns the strand described by a GFF strand column.
// Only "-" is reverse; every other value, including ".", is forward.
func parseStrand(s string) seq.Strand {
	if s == "-" {
		return seq.Minus
	}
	return seq.Plus
}

// formatStrand returns the GFF strand column for s.
func formatStrand(s seq.Strand) string {
	if s == seq.Minus {
		return "-"
	}
	return "+"
}

// relative returns the orientation of a with respect to b.
func relative(a, b seq.Strand) seq.Strand {
	if a == b {
		return seq.Plus
	}
	return seq.Minus
}
