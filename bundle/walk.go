package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/log"
)

// Entry is one matching file found under the root.
type Entry struct {
	Path string // location on disk
	ID   string // identifying path, e.g. "/Predio/Floor1/b.ts"
	Key  string // group key: parent folder name, or the root name for root level files
}

// HasExtension reports whether name ends with one of exts (case-sensitive).
func HasExtension(name string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// Walk returns the files under root matching exts in traversal order: top
// down, each directory's matching files in lexical order before any of its
// subdirectories. Directories listed in skip (typically the output directory)
// are not descended into. A symlinked root is followed, symlinked
// subdirectories are not.
func Walk(root string, exts []string, skip ...string) ([]Entry, error) {
	w := &walker{root: filepath.Clean(root), exts: exts, skip: make(map[string]bool, len(skip))}
	w.base = RootName(w.root)
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			w.skip[abs] = true
		}
	}
	if err := w.walkDir(w.root); err != nil {
		return nil, fmt.Errorf("walking %s: %w", w.root, err)
	}
	return w.entries, nil
}

type walker struct {
	root    string
	base    string
	exts    []string
	skip    map[string]bool
	entries []Entry
}

func (w *walker) walkDir(dir string) error {
	list, err := os.ReadDir(dir) // sorted by name
	if err != nil {
		return err
	}
	var subdirs []string
	for _, d := range list {
		p := filepath.Join(dir, d.Name())
		match := HasExtension(d.Name(), w.exts)
		if d.Type()&fs.ModeSymlink != 0 {
			target, serr := os.Stat(p)
			if serr != nil {
				if match {
					return serr
				}
				continue
			}
			if target.IsDir() {
				log.LogVf("Not following directory symlink %s", p)
				continue
			}
		} else if d.IsDir() {
			subdirs = append(subdirs, p)
			continue
		}
		if match {
			if err := w.add(dir, p); err != nil {
				return err
			}
		}
	}
	for _, sub := range subdirs {
		if abs, err := filepath.Abs(sub); err == nil && w.skip[abs] {
			log.LogVf("Skipping output directory %s", sub)
			continue
		}
		if err := w.walkDir(sub); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) add(dir, p string) error {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return err
	}
	key := w.base
	if dir != w.root {
		key = filepath.Base(dir)
	}
	e := Entry{Path: p, ID: "/" + w.base + "/" + filepath.ToSlash(rel), Key: key}
	log.LogVf("  %s -> group %q", e.ID, key)
	w.entries = append(w.entries, e)
	return nil
}

// Groups maps a group key to its members in traversal order.
type Groups map[string][]Entry

// GroupEntries folds entries into groups by Key, keeping their relative order.
func GroupEntries(entries []Entry) Groups {
	g := make(Groups)
	for _, e := range entries {
		g[e.Key] = append(g[e.Key], e)
	}
	return g
}

// Keys returns the group keys sorted ascending.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
