// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// transpose remaps GFF features or VCF variants from an old genome
// assembly onto a new assembly through the scaffolds placed on both.
//
// Scaffold placements are read from GFF files of the old and new
// assemblies, each scaffold identified by an attribute (ID by default).
// Features are matched to the old scaffolds that fully contain them,
// either in-process or from a precomputed intersectBed -wa -wb -f 1.0
// table given with -overlaps.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/SouthGreenPlatform/utils/bedtools"
	"github.com/SouthGreenPlatform/utils/transpose"
)

var (
	oldGFF   = flag.String("old", "", "old assembly scaffold gff file (required)")
	newGFF   = flag.String("new", "", "new assembly scaffold gff file (required)")
	in       = flag.String("in", "", "gff or vcf file of features to transpose (required)")
	outFile  = flag.String("out", "", "output file name (required)")
	format   = flag.String("format", "", `input format "gff" or "vcf" (default from -in extension)`)
	tag      = flag.String("tag", transpose.DefaultTag, "attribute tag holding scaffold identifiers")
	overlaps = flag.String("overlaps", "", "precomputed intersectBed -wa -wb -f 1.0 table (default compute in-process)")
	procs    = flag.Int("procs", 1, "number of remapping workers")
	verbose  = flag.Bool("verbose", false, "log each record dropped for a missing scaffold")
	errFile  = flag.String("err", "", "log file name (default to stderr)")
)

// ConfigurationError is a user error detected before any work is done.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "invalid argument: " + e.Reason }

func main() {
	flag.Parse()

	if *errFile != "" {
		w, err := os.Create(*errFile)
		if err != nil {
			// Oh, the irony.
			log.Fatalf("failed to create log file: %v", err)
		}
		defer w.Close()
		log.SetOutput(w)
	}

	cfg, err := configure()
	if err != nil {
		var confErr *ConfigurationError
		if errors.As(err, &confErr) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(1)
		}
		log.Fatal(err)
	}

	err = run(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to transpose %q: %v", cfg.in, err)
	}
}

type config struct {
	old, new, in, out string
	overlaps          string
	format            transpose.Format
}

// configure checks the command line arguments before any work is done.
func configure() (config, error) {
	cfg := config{old: *oldGFF, new: *newGFF, in: *in, out: *outFile, overlaps: *overlaps}
	if cfg.old == "" || cfg.new == "" || cfg.in == "" {
		return cfg, &ConfigurationError{Reason: "must have old, new and in files set"}
	}
	if cfg.out == "" {
		return cfg, &ConfigurationError{Reason: "must have out file set"}
	}
	for _, path := range []string{cfg.old, cfg.new, cfg.in, cfg.overlaps} {
		if path == "" {
			continue
		}
		err := readable(path)
		if err != nil {
			return cfg, &ConfigurationError{Reason: err.Error()}
		}
	}

	name := *format
	if name == "" {
		name = formatOf(cfg.in)
	}
	var err error
	cfg.format, err = transpose.FormatFor(name)
	if err != nil {
		return cfg, &ConfigurationError{Reason: fmt.Sprintf("cannot determine format of %q: %v", cfg.in, err)}
	}
	return cfg, nil
}

// readable returns an error if path cannot be opened for reading.
func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// formatOf returns the format name implied by the extension of path.
func formatOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gff", ".gff3", ".gtf":
		return "gff"
	case ".vcf":
		return "vcf"
	}
	return strings.TrimPrefix(ext, ".")
}

// run performs the transposition described by cfg. The output file is
// only created when the transposition succeeds.
func run(ctx context.Context, cfg config) (err error) {
	log.Printf("reading new assembly scaffolds from %q", cfg.new)
	reg, err := registryFrom(cfg.new)
	if err != nil {
		return err
	}
	log.Printf("read %d scaffolds", reg.Len())
	if dups := reg.Duplicates(); len(dups) != 0 {
		log.Printf("duplicate scaffold ids, keeping last placement: %s", strings.Join(dups, " "))
	}

	tmp, err := os.CreateTemp(filepath.Dir(cfg.out), "."+filepath.Base(cfg.out)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	w := bufio.NewWriter(tmp)

	f := cfg.format
	if _, ok := f.(transpose.VCF); ok {
		f, err = vcfHeader(cfg.in, w)
		if err != nil {
			return err
		}
	}

	ov, partial, err := overlapsOf(cfg, f)
	if err != nil {
		return err
	}
	if partial != 0 {
		log.Printf("ignored %d partial overlaps", partial)
	}

	t := transpose.Transposer{Registry: reg, Format: f, Procs: *procs}
	if *verbose {
		t.Missing = func(o transpose.Overlap) {
			log.Printf("no placement for scaffold %s: excluding line %d", o.Scaffold.ID, o.Line)
		}
	}
	stats, err := t.Transpose(ctx, ov, w)
	if err != nil {
		return err
	}
	if stats.Missing != 0 {
		log.Printf("dropped %d records on %d scaffolds without placement: %s",
			stats.Missing, len(stats.MissingIDs), strings.Join(stats.MissingIDs, " "))
	}

	err = w.Flush()
	if err != nil {
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Rename(tmp.Name(), cfg.out)
	if err != nil {
		return err
	}
	log.Printf("wrote %d records to %q", stats.Written, cfg.out)
	return nil
}

func registryFrom(path string) (*transpose.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return transpose.NewRegistry(bufio.NewReader(f), *tag)
}

// vcfHeader copies the header of the VCF file at path to w and returns
// the format of its variant rows.
func vcfHeader(path string, w io.Writer) (transpose.VCF, error) {
	f, err := os.Open(path)
	if err != nil {
		return transpose.VCF{}, err
	}
	defer f.Close()
	return transpose.ReadVCFHeader(f, w)
}

// overlapsOf returns the full containment overlaps between the features
// of cfg.in and the old assembly scaffolds.
func overlapsOf(cfg config, f transpose.Format) ([]transpose.Overlap, int, error) {
	if cfg.overlaps != "" {
		log.Printf("reading overlaps from %q", cfg.overlaps)
		t, err := os.Open(cfg.overlaps)
		if err != nil {
			return nil, 0, err
		}
		defer t.Close()
		return transpose.Table{Rows: t, Tag: *tag}.Overlaps(f)
	}

	cl, err := bedtools.Containment(cfg.in, cfg.old).Args()
	if err != nil {
		return nil, 0, err
	}
	log.Printf("finding scaffolds containing features in %q (equivalent to %s)", cfg.in, strings.Join(cl, " "))
	feats, err := os.Open(cfg.in)
	if err != nil {
		return nil, 0, err
	}
	defer feats.Close()
	scaffolds, err := os.Open(cfg.old)
	if err != nil {
		return nil, 0, err
	}
	defer scaffolds.Close()
	return transpose.Containment{Features: feats, Scaffolds: scaffolds, Tag: *tag}.Overlaps(f)
}
