package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/eput-protocol/eputgen-go/pkg/descriptor"
	"github.com/eput-protocol/eputgen-go/pkg/property"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitCompileError = 2
)

// langSets collects repeatable --lang flags, each a comma-separated
// list of language codes forming one metadata block.
type langSets [][]string

func (s *langSets) String() string {
	parts := make([]string, len(*s))
	for i, set := range *s {
		parts[i] = strings.Join(set, ",")
	}
	return strings.Join(parts, " ")
}

func (s *langSets) Set(value string) error {
	if value == "" {
		return fmt.Errorf("empty language set")
	}
	*s = append(*s, strings.Split(value, ","))
	return nil
}

// loadDescriptor parses and validates the descriptor file.
func loadDescriptor(path string, stderr io.Writer) (*descriptor.Document, bool) {
	doc, err := descriptor.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, false
	}
	return doc, true
}

// reportDiagnostics prints accumulated warnings and notes.
func reportDiagnostics(diag *property.Diagnostics, stdout, stderr io.Writer) {
	for _, w := range diag.Warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	for _, n := range diag.Notes {
		fmt.Fprintf(stdout, "%s\n", n)
	}
}
