// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/biogo/seq"
	"gopkg.in/fatih/set.v0"
)

// DefaultTag is the attribute tag holding a scaffold identifier.
const DefaultTag = "ID"

// Scaffold is the placement of a scaffold on an assembly. Start and
// End are 1-based and inclusive.
type Scaffold struct {
	ID      string
	SeqName string
	Start   int
	End     int
	Strand  seq.Strand
}

// Len returns the length of the scaffold.
func (s Scaffold) Len() int { return s.End - s.Start + 1 }

// Contains returns whether the 1-based inclusive interval [start, end]
// lies entirely within s.
func (s Scaffold) Contains(start, end int) bool {
	return s.Start <= start && end <= s.End
}

// GFF column indexes.
const (
	seqNameField = iota
	sourceField
	typeField
	startField
	endField
	scoreField
	strandField
	frameField
	attributeField

	gffFields
)

// ReadScaffolds returns the scaffold placements described by the GFF
// rows read from r. The identifier of each scaffold is the value of
// its tag attribute. Comment and blank lines are ignored and reading
// stops at a ##FASTA directive.
func ReadScaffolds(r io.Reader, tag string) ([]Scaffold, error) {
	var scaffolds []Scaffold
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.HasPrefix(text, "##FASTA") {
			break
		}
		if text == "" || text[0] == '#' {
			continue
		}
		s, err := scaffoldFrom(strings.Split(text, "\t"), tag)
		if err != nil {
			return nil, &MalformedAnnotationError{Line: line, Reason: err.Error()}
		}
		scaffolds = append(scaffolds, s)
	}
	return scaffolds, sc.Err()
}

// scaffoldFrom returns the scaffold described by a GFF row split into
// its fields.
func scaffoldFrom(fields []string, tag string) (Scaffold, error) {
	if len(fields) != gffFields {
		return Scaffold{}, fmt.Errorf("expected %d fields, got %d", gffFields, len(fields))
	}
	id, ok := ParseAttributes(fields[attributeField]).Get(tag)
	if !ok || id == "" {
		return Scaffold{}, fmt.Errorf("missing %s attribute", tag)
	}
	start, err := strconv.Atoi(fields[startField])
	if err != nil {
		return Scaffold{}, fmt.Errorf("bad start: %v", err)
	}
	end, err := strconv.Atoi(fields[endField])
	if err != nil {
		return Scaffold{}, fmt.Errorf("bad end: %v", err)
	}
	if start < 1 || end < start {
		return Scaffold{}, fmt.Errorf("invalid interval [%d,%d]", start, end)
	}
	return Scaffold{
		ID:      id,
		SeqName: fields[seqNameField],
		Start:   start,
		End:     end,
		Strand:  parseStrand(fields[strandField]),
	}, nil
}

// Registry is an immutable lookup of scaffold placements by identifier.
type Registry struct {
	scaffolds map[string]Scaffold
	dups      set.Interface
}

// NewRegistry returns a Registry holding the scaffolds described by the
// GFF rows read from r, identified by their tag attribute. When an
// identifier is repeated the last placement read is kept.
func NewRegistry(r io.Reader, tag string) (*Registry, error) {
	scaffolds, err := ReadScaffolds(r, tag)
	if err != nil {
		return nil, err
	}
	return RegistryOf(scaffolds), nil
}

// RegistryOf returns a Registry holding the given scaffolds. When an
// identifier is repeated the last placement is kept.
func RegistryOf(scaffolds []Scaffold) *Registry {
	reg := &Registry{
		scaffolds: make(map[string]Scaffold, len(scaffolds)),
		dups:      set.New(set.NonThreadSafe),
	}
	for _, s := range scaffolds {
		if _, ok := reg.scaffolds[s.ID]; ok {
			reg.dups.Add(s.ID)
		}
		reg.scaffolds[s.ID] = s
	}
	return reg
}

// Scaffold returns the placement of the scaffold with the given id and
// whether it is known.
func (r *Registry) Scaffold(id string) (Scaffold, bool) {
	s, ok := r.scaffolds[id]
	return s, ok
}

// Len returns the number of scaffolds in the registry.
func (r *Registry) Len() int { return len(r.scaffolds) }

// Duplicates returns the sorted identifiers that were seen more than
// once while building the registry.
func (r *Registry) Duplicates() []string {
	return sortedStrings(r.dups)
}

func sortedStrings(s set.Interface) []string {
	ids := make([]string, 0, s.Size())
	for _, v := range s.List() {
		ids = append(ids, v.(string))
	}
	sort.Strings(ids)
	return ids
}
