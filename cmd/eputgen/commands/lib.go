package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/eput-protocol/eputgen-go/pkg/clib"
	"github.com/eput-protocol/eputgen-go/pkg/export"
	"github.com/eput-protocol/eputgen-go/pkg/layout"
)

// RunLib runs the lib command: generate only the C library files.
func RunLib(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lib", flag.ContinueOnError)
	fs.SetOutput(stderr)
	enums := fs.Bool("enums", false, "generate enums for selection options")
	getters := fs.Bool("safe-getter", false, "generate safe getter functions")
	tabSpaces := fs.Int("tab-spaces", 0, "indentation width in generated code")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: eputgen lib [options] <descriptor> <output-dir> <lib-name>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return exitCommandError
	}

	doc, ok := loadDescriptor(fs.Arg(0), stderr)
	if !ok {
		return exitCompileError
	}

	lib, err := clib.Render(doc.Properties, layout.Emit(doc.Properties), clib.Config{
		LibName:  fs.Arg(2),
		TabWidth: *tabSpaces,
		Enums:    *enums,
		Getters:  *getters,
	})
	reportDiagnostics(&doc.Diagnostics, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCompileError
	}

	if err := export.WriteLibrary(fs.Arg(1), lib); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Wrote %s and %s\n", lib.HeaderName, lib.SourceName)
	return exitSuccess
}
