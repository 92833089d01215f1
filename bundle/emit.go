package bundle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Marker line prefixes, followed by the identifying path.
const (
	StartPrefix = "// Início do arquivo: "
	EndPrefix   = "// Fim do arquivo: "
)

// OutputName returns the bundle file name for a group: "{root}_{key}", or just
// "{root}" for the root level group, lowercased, plus the first extension.
func OutputName(rootName, key string, exts []string) string {
	name := rootName
	if key != rootName {
		name = rootName + "_" + key
	}
	return strings.ToLower(name) + exts[0]
}

// ReadText returns the content of path, which must be valid UTF-8.
func ReadText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: content is not valid UTF-8 text", path)
	}
	return data, nil
}

// WriteEntries writes each entry's content to w between its start and end
// marker lines, followed by a blank line.
func WriteEntries(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		content, err := ReadText(e.Path)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s%s\n", StartPrefix, e.ID); err != nil {
			return err
		}
		if _, err := bw.Write(content); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "\n%s%s\n\n", EndPrefix, e.ID); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes entries into it.
// A partially written file is left behind on error.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteEntries(f, entries); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
