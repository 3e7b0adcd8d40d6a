// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bedtools provides interaction with the bedtools interval tools.
package bedtools

import (
	"errors"
	"os/exec"
	"strconv"
	"text/template"

	"github.com/biogo/external"
)

var ErrMissingRequired = errors.New("bedtools: missing required argument")

// IntersectBed defines parameters for the intersectBed tool.
type IntersectBed struct {
	// Usage: intersectBed [OPTIONS] -a <bed/gff/vcf> -b <bed/gff/vcf>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}intersectBed{{end}}"` // intersectBed

	// Input files:
	A string `buildarg:"{{if .}}-a{{split}}{{.}}{{end}}"` // -a: query features
	B string `buildarg:"{{if .}}-b{{split}}{{.}}{{end}}"` // -b: database features

	// Reporting options:
	WriteA       bool `buildarg:"{{if .}}-wa{{end}}"`     // -wa: write the original A entry
	WriteB       bool `buildarg:"{{if .}}-wb{{end}}"`     // -wb: write the original B entry
	WriteOverlap bool `buildarg:"{{if .}}-wo{{end}}"`     // -wo: write A and B entries and the overlap length
	Unique       bool `buildarg:"{{if .}}-u{{end}}"`      // -u: write A once if any overlap
	Header       bool `buildarg:"{{if .}}-header{{end}}"` // -header: print the A header first

	// Overlap options:
	Fraction   float64 `buildarg:"{{if .}}-f{{split}}{{frac .}}{{end}}"` // -f: minimum overlap as a fraction of A
	Reciprocal bool    `buildarg:"{{if .}}-r{{end}}"`                    // -r: require reciprocal fraction
	SameStrand bool    `buildarg:"{{if .}}-s{{end}}"`                    // -s: require same strandedness
	Sorted     bool    `buildarg:"{{if .}}-sorted{{end}}"`               // -sorted: use the sweep algorithm for sorted input
}

// Containment returns the intersectBed parameters that write one row
// for each feature in features fully contained by a scaffold in
// scaffolds, holding the feature columns followed by the scaffold
// columns.
func Containment(features, scaffolds string) IntersectBed {
	return IntersectBed{
		A: features, B: scaffolds,

		WriteA: true, WriteB: true,
		Fraction: 1,
	}
}

// BuildCommand returns an exec.Cmd built from the parameters in b.
func (b IntersectBed) BuildCommand() (*exec.Cmd, error) {
	cl, err := b.Args()
	if err != nil {
		return nil, err
	}
	return exec.Command(cl[0], cl[1:]...), nil
}

// Args returns the command line described by b.
func (b IntersectBed) Args() ([]string, error) {
	if b.A == "" || b.B == "" {
		return nil, ErrMissingRequired
	}
	return external.Build(b, template.FuncMap{"frac": frac})
}

// frac returns the decimal representation of an overlap fraction.
func frac(a interface{}) string {
	s := strconv.FormatFloat(a.(float64), 'f', -1, 64)
	if s == "1" {
		return "1.0"
	}
	return s
}
