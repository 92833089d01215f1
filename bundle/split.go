package bundle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"golang.org/x/mod/module"
)

// Section is one file recovered from a bundle.
type Section struct {
	ID      string
	Content []byte
}

// Split parses a bundle back into its sections, in order. A section ends at
// the first line that is exactly the end marker for its own identifying path,
// so marker-looking lines for other paths are kept as content.
func Split(r io.Reader) ([]Section, error) {
	br := bufio.NewReader(r)
	var (
		sections []Section
		current  *Section
		endLine  string
		buf      bytes.Buffer
		lineNum  int
	)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return sections, err
		}
		if line != "" {
			lineNum++
			text := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			switch {
			case current != nil && text == endLine:
				// the emitter adds one newline between content and end marker
				content := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
				current.Content = bytes.Clone(content)
				sections = append(sections, *current)
				current = nil
				buf.Reset()
			case current != nil:
				buf.WriteString(line)
			case strings.HasPrefix(text, StartPrefix):
				id := strings.TrimPrefix(text, StartPrefix)
				current = &Section{ID: id}
				endLine = EndPrefix + id
			case strings.TrimSpace(text) != "":
				log.Warnf("Ignoring line %d outside of any file section: %q", lineNum, text)
			}
		}
		if err != nil { // EOF
			break
		}
	}
	if current != nil {
		return sections, fmt.Errorf("%w: no end marker for %q", ErrMalformed, current.ID)
	}
	return sections, nil
}

// SectionPath turns an identifying path into a relative, slash separated file
// path, optionally dropping its first (root folder) element. The result is
// checked with module.CheckFilePath so it can't escape the target directory.
func SectionPath(id string, stripRoot bool) (string, error) {
	rel := strings.TrimPrefix(id, "/")
	if stripRoot {
		if _, rest, found := strings.Cut(rel, "/"); found {
			rel = rest
		}
	}
	if err := module.CheckFilePath(rel); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return rel, nil
}

// Extract writes every section under dir and returns the written paths.
func Extract(dir string, sections []Section, stripRoot bool) ([]string, error) {
	var written []string
	for _, s := range sections {
		rel, err := SectionPath(s.ID, stripRoot)
		if err != nil {
			return written, err
		}
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", target, err)
		}
		if err := os.WriteFile(target, s.Content, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", target, err)
		}
		log.Infof("  Extracted %s (%d bytes)", target, len(s.Content))
		written = append(written, target)
	}
	return written, nil
}
