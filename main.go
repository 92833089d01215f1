// Merges source files recursively: one bundle per last folder name, plus one
// for the loose files at the root, all written into the output directory.

package main

import (
	"flag"
	"io"
	"os"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/ldemailly/folderbundle/bundle"
)

var (
	extensions = flag.String("extensions", bundle.DefaultExtensions, "Comma-separated list of file `suffixes` to merge")
	outDir     = flag.String("out", bundle.DefaultOutputDir, "`Directory` where bundles are written")
)

func init() {
	flag.StringVar(extensions, "e", bundle.DefaultExtensions, "Short for -extensions")
}

// generate validates the flag values and writes the bundles for root.
func generate(root, extList, out string, report io.Writer) ([]bundle.Bundle, error) {
	exts, err := bundle.ParseExtensions(extList)
	if err != nil {
		return nil, err
	}
	return bundle.Run(bundle.Config{
		Root:       root,
		Extensions: exts,
		OutputDir:  out,
		Report:     report,
	})
}

func main() {
	cli.ArgsHelp = "directory" // root to scan, e.g. Predio
	cli.MinArgs = 1
	cli.MaxArgs = 1
	cli.Main() // Parses flags, validates args, handles version/help flags

	bundles, err := generate(flag.Arg(0), *extensions, *outDir, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("Done, %d bundles in %s.", len(bundles), *outDir)
}
