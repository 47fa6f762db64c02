// eputgen compiles device configuration descriptors into binary blobs
// and C accessor libraries.
package main

import (
	"fmt"
	"os"

	"github.com/eput-protocol/eputgen-go/cmd/eputgen/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "rom":
		exitCode = commands.RunROM(args, os.Stdout, os.Stderr)
	case "export":
		exitCode = commands.RunExport(args, os.Stdout, os.Stderr)
	case "lib":
		exitCode = commands.RunLib(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("eputgen version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`eputgen - device descriptor compiler

Usage:
  eputgen <command> [options] [arguments...]

Commands:
  rom      Assemble a ROM container image from a descriptor
  export   Export binaries, C library, and export summary
  lib      Generate only the C library files

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  eputgen rom --hash sha256 --lang en,de machine.yaml out/
  eputgen export --enums --safe-getter machine.yaml out/ washer
  eputgen lib --tab-spaces 2 machine.yaml out/ washer

For command-specific help, run:
  eputgen <command> --help`)
}
