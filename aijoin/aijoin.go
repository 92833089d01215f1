// Joins the given files into a single bundle on stdout, using the same
// markers as folderbundle so aisplit can take it apart again.

package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/ldemailly/folderbundle/bundle"
)

// joinID is the identifying path of a file given on the command line,
// optionally under a root folder name.
func joinID(filename, root string) string {
	id := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(filename)), "/")
	if root != "" {
		id = root + "/" + id
	}
	return "/" + id
}

func main() {
	cli.ArgsHelp = "file1 [file2...]"
	cli.MinArgs = 1
	cli.MaxArgs = -1
	root := flag.String("root", "", "Folder `name` to prefix identifying paths with")
	cli.Main()

	var entries []bundle.Entry
	for _, filename := range flag.Args() {
		id := joinID(filename, *root)
		log.Infof("Adding file: %s as %s", filename, id)
		entries = append(entries, bundle.Entry{Path: filename, ID: id})
	}
	if err := bundle.WriteEntries(os.Stdout, entries); err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("Done.")
}
