// Takes a bundle written by folderbundle or aijoin (from a file or pasted on
// stdin) and writes each "// Início do arquivo: " section back to its own file.

package main

import (
	"flag"
	"io"
	"os"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/ldemailly/folderbundle/bundle"
)

func main() {
	cli.ArgsHelp = "[bundle-file]"
	cli.MinArgs = 0
	cli.MaxArgs = 1
	dir := flag.String("dir", ".", "`Directory` to extract the files into")
	stripRoot := flag.Bool("strip-root", false, "Drop the leading root folder from identifying paths")
	cli.Main()

	var in io.Reader = os.Stdin
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("Failed to open bundle: %v", err)
		}
		defer f.Close()
		in = f
	} else {
		log.Printf("Reading from stdin... Paste the bundle and signal EOF (Ctrl+D).")
	}

	sections, err := bundle.Split(in)
	if err != nil {
		log.Fatalf("Failed reading bundle: %v", err)
	}
	written, err := bundle.Extract(*dir, sections, *stripRoot)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("Done, %d files written.", len(written))
}
