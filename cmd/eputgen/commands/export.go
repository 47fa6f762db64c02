package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/eput-protocol/eputgen-go/pkg/export"
)

// RunExport runs the export command: binaries, C library and summary.
func RunExport(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noCompress := fs.Bool("no-compress", false, "disable deflate compression of metadata")
	enums := fs.Bool("enums", false, "generate enums for selection options")
	getters := fs.Bool("safe-getter", false, "generate safe getter functions")
	tabSpaces := fs.Int("tab-spaces", 0, "indentation width in generated code")
	tagSize := fs.Int("tag-size", -1, "memory size of the target tag; enables a capacity warning")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: eputgen export [options] <descriptor> <output-dir> <lib-name>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return exitCommandError
	}
	libName := fs.Arg(2)

	doc, ok := loadDescriptor(fs.Arg(0), stderr)
	if !ok {
		return exitCompileError
	}

	artifacts, err := export.BuildAll(doc, export.Options{
		LibName:  libName,
		Compress: !*noCompress,
		Enums:    *enums,
		Getters:  *getters,
		TabWidth: *tabSpaces,
		TagSize:  *tagSize,
	})
	reportDiagnostics(&doc.Diagnostics, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompileError
	}

	if err := export.WriteAll(fs.Arg(1), libName, artifacts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Exported %s: metadata %d bytes, data %d bytes\n",
		libName, len(artifacts.Metadata), len(artifacts.Data))
	return exitSuccess
}
