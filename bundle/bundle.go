// Package bundle groups source files by the name of their immediate parent
// folder and concatenates each group into a single text file, with a marker
// line before and after every member file.
//
// Grouping is by folder *name*, not path: two "utils" folders in different
// branches of the tree end up in the same bundle.
package bundle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
)

const (
	// DefaultOutputDir is where bundles are written when Config.OutputDir is empty.
	DefaultOutputDir = "FOR_AI"
	// DefaultExtensions is the default comma-separated suffix list.
	DefaultExtensions = ".ts,.tsx"
)

var (
	// ErrInvalidInput is wrapped by every validation error (bad root, no extensions).
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformed is wrapped by Split when a bundle can't be parsed back.
	ErrMalformed = errors.New("malformed bundle")
)

// Config drives a single Run.
type Config struct {
	Root       string    // directory to scan
	Extensions []string  // case-sensitive suffixes, the first one names the outputs
	OutputDir  string    // relative to the current directory unless absolute
	Report     io.Writer // gets one "Arquivo gerado: <path>" line per bundle, nil for none
}

// Bundle describes one output file written by Run.
type Bundle struct {
	Key     string  // group key (parent folder name)
	Path    string  // output file location
	Entries []Entry // members, in the order they were written
}

// ParseExtensions splits a comma-separated suffix list, trimming blanks and
// dropping empty items.
func ParseExtensions(list string) ([]string, error) {
	exts := cleanExtensions(strings.Split(list, ","))
	if len(exts) == 0 {
		return nil, fmt.Errorf("%w: no valid extension in %q", ErrInvalidInput, list)
	}
	return exts, nil
}

func cleanExtensions(in []string) []string {
	var res []string
	for _, e := range in {
		e = strings.TrimSpace(e)
		if e != "" {
			res = append(res, e)
		}
	}
	return res
}

// RootName returns the name used for a cleaned root directory in identifying
// paths and output names.
func RootName(root string) string {
	base := filepath.Base(root)
	if base == "." || base == ".." {
		if abs, err := filepath.Abs(root); err == nil {
			base = filepath.Base(abs)
		}
	}
	return base
}

// Run scans cfg.Root, groups matching files and writes one bundle per group
// into cfg.OutputDir. Bundles are returned in ascending key order.
// Nothing is created on disk when validation fails.
func Run(cfg Config) ([]Bundle, error) {
	root := filepath.Clean(cfg.Root)
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid directory: %v", ErrInvalidInput, cfg.Root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a valid directory", ErrInvalidInput, cfg.Root)
	}
	exts := cleanExtensions(cfg.Extensions)
	if len(exts) == 0 {
		return nil, fmt.Errorf("%w: no valid extension given", ErrInvalidInput)
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	base := RootName(root)
	log.Infof("Scanning %s (as %q) for %v", root, base, exts)

	entries, err := Walk(root, exts, outDir)
	if err != nil {
		return nil, err
	}
	groups := GroupEntries(entries)
	log.Infof("Found %d files in %d groups", len(entries), len(groups))

	// --- Emission ---
	var res []Bundle
	for _, key := range groups.Keys() {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return res, fmt.Errorf("creating output directory %s: %w", outDir, err)
		}
		outPath := filepath.Join(outDir, OutputName(base, key, exts))
		members := groups[key]
		if err := WriteFile(outPath, members); err != nil {
			return res, err
		}
		log.LogVf("Wrote %d files into %s", len(members), outPath)
		if cfg.Report != nil {
			fmt.Fprintf(cfg.Report, "Arquivo gerado: %s\n", outPath)
		}
		res = append(res, Bundle{Key: key, Path: outPath, Entries: members})
	}
	return res, nil
}
