package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/eput-protocol/eputgen-go/pkg/blob"
	"github.com/eput-protocol/eputgen-go/pkg/export"
)

// RunROM runs the rom command: assemble a container image.
func RunROM(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	hashName := fs.String("hash", "md5",
		fmt.Sprintf("digest for container blocks; one of %s", strings.Join(blob.DigestNames(), ", ")))
	noCompress := fs.Bool("no-compress", false, "disable deflate compression of metadata")
	tagSize := fs.Int("tag-size", -1, "memory size of the target tag; enables a capacity warning")
	var langs langSets
	fs.Var(&langs, "lang", "languages for one metadata block, comma separated; repeatable")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: eputgen rom [options] <descriptor> <output-dir>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitCommandError
	}

	digest, err := blob.LookupDigest(*hashName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	doc, ok := loadDescriptor(fs.Arg(0), stderr)
	if !ok {
		return exitCompileError
	}

	image, err := export.BuildROM(doc, export.ROMOptions{
		TranslationSets: langs,
		Compress:        !*noCompress,
		Digest:          digest,
		TagSize:         *tagSize,
	})
	reportDiagnostics(&doc.Diagnostics, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompileError
	}

	if err := export.WriteROM(fs.Arg(1), image); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Wrote ROM image (%d bytes)\n", len(image))
	return exitSuccess
}
