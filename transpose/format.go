// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq"
)

// Format describes the layout of the rows of a file of features to
// be transposed.
type Format interface {
	// Width returns the number of fields in a feature row.
	Width() int

	// Span returns the sequence name and oriented interval of the
	// feature held in fields.
	Span(fields []string) (string, Interval, error)

	// Transposed returns a copy of fields with the feature placed
	// at iv on the named sequence.
	Transposed(fields []string, name string, iv Interval) []string
}

// GFF is the 9 column interval feature format.
type GFF struct{}

// Width returns 9.
func (GFF) Width() int { return gffFields }

// Span returns the sequence name, interval and strand of a GFF row.
// Any strand other than "-" is taken as forward.
func (GFF) Span(fields []string) (string, Interval, error) {
	if len(fields) < gffFields {
		return "", Interval{}, fmt.Errorf("expected %d fields, got %d", gffFields, len(fields))
	}
	start, err := strconv.Atoi(fields[startField])
	if err != nil {
		return "", Interval{}, fmt.Errorf("bad start: %v", err)
	}
	end, err := strconv.Atoi(fields[endField])
	if err != nil {
		return "", Interval{}, fmt.Errorf("bad end: %v", err)
	}
	if end < start {
		return "", Interval{}, fmt.Errorf("invalid interval [%d,%d]", start, end)
	}
	return fields[seqNameField], Interval{Start: start, End: end, Strand: parseStrand(fields[strandField])}, nil
}

// Transposed returns the GFF row with its sequence name, coordinates
// and strand replaced.
func (GFF) Transposed(fields []string, name string, iv Interval) []string {
	t := append([]string(nil), fields[:gffFields]...)
	t[seqNameField] = name
	t[startField] = strconv.Itoa(iv.Start)
	t[endField] = strconv.Itoa(iv.End)
	t[strandField] = formatStrand(iv.Strand)
	return t
}

// VCF column indexes.
const (
	chromField = iota
	posField
	_ // ID
	refField
	altField

	minVCFFields
)

// VCF is the variant call format. Columns is the number of fields in
// a variant row, as given by the first non-meta line of the file.
type VCF struct {
	Columns int
}

// ReadVCFHeader copies the header lines of the VCF stream r to w and
// returns the VCF format with the column count found on the first
// line not starting with "##". If no such line exists, the column
// count is the minimum for a variant row.
func ReadVCFHeader(r io.Reader, w io.Writer) (VCF, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "##") {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return VCF{}, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return VCF{}, err
			}
		}
		n := len(strings.Split(line, "\t"))
		if n < minVCFFields {
			return VCF{}, fmt.Errorf("transpose: too few VCF columns: %d", n)
		}
		return VCF{Columns: n}, nil
	}
	if err := sc.Err(); err != nil {
		return VCF{}, err
	}
	return VCF{Columns: minVCFFields}, nil
}

// Width returns the number of variant row fields.
func (f VCF) Width() int { return f.Columns }

// Span returns the chromosome and single position interval of a
// variant row. Variants are forward stranded.
func (f VCF) Span(fields []string) (string, Interval, error) {
	if len(fields) < f.Columns || len(fields) < minVCFFields {
		return "", Interval{}, fmt.Errorf("expected %d fields, got %d", f.Columns, len(fields))
	}
	pos, err := strconv.Atoi(fields[posField])
	if err != nil {
		return "", Interval{}, fmt.Errorf("bad position: %v", err)
	}
	return fields[chromField], Interval{Start: pos, End: pos, Strand: seq.Plus}, nil
}

// Transposed returns the variant row with its chromosome and position
// replaced. When iv is reverse stranded, the REF and ALT alleles are
// reverse complemented. Indel alleles are not realigned, so the
// result for multi-base alleles on a reversed scaffold is not a
// normalised representation of the variant.
func (f VCF) Transposed(fields []string, name string, iv Interval) []string {
	t := append([]string(nil), fields[:f.Columns]...)
	t[chromField] = name
	t[posField] = strconv.Itoa(iv.Start)
	if iv.Strand == seq.Minus {
		t[refField] = reverseComplementAlleles(t[refField])
		t[altField] = reverseComplementAlleles(t[altField])
	}
	return t
}

// reverseComplementAlleles reverse complements each allele of a comma
// separated allele list, keeping the allele order.
func reverseComplementAlleles(s string) string {
	alleles := strings.Split(s, ",")
	for i, a := range alleles {
		alleles[i] = ReverseComplement(a)
	}
	return strings.Join(alleles, ",")
}

// ReverseComplement returns the reverse complement of the bases in s.
// Only the upper case bases A, C, G and T are complemented; all other
// characters are kept as they are.
func ReverseComplement(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i <= j; i, j = i+1, j-1 {
		b[i], b[j] = complement(b[j]), complement(b[i])
	}
	return string(b)
}

func complement(b byte) byte {
	switch b {
	case 'A', 'C', 'G', 'T':
		c, ok := alphabet.DNA.Complement(alphabet.Letter(b))
		if ok {
			return byte(c)
		}
	}
	return b
}

// FormatFor returns the format of a file to transpose from the name of
// the format, "gff" or "vcf".
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "gff", "gff3", "gtf":
		return GFF{}, nil
	case "vcf":
		return VCF{Columns: minVCFFields}, nil
	}
	return nil, errors.New("transpose: unknown format: " + name)
}
