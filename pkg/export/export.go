package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eput-protocol/eputgen-go/pkg/blob"
	"github.com/eput-protocol/eputgen-go/pkg/clib"
	"github.com/eput-protocol/eputgen-go/pkg/descriptor"
	"github.com/eput-protocol/eputgen-go/pkg/layout"
)

// ROMOptions configures a container-image export.
type ROMOptions struct {
	// TranslationSets lists the language codes to include per metadata
	// block, one block per set. Nil produces a single block carrying
	// every translation in the descriptor.
	TranslationSets [][]string

	// Compress deflates each metadata block.
	Compress bool

	// Digest checksums the container blocks.
	Digest blob.Digest

	// TagSize enables the capacity advisory when non-negative.
	TagSize int
}

// BuildROM compiles doc into a container image. Diagnostics accumulate
// on the document.
func BuildROM(doc *descriptor.Document, opts ROMOptions) ([]byte, error) {
	data := blob.EncodeData(doc.Properties)

	var metadataSets [][]byte
	if opts.TranslationSets == nil {
		meta, err := blob.EncodeMetadata(doc.Device, doc.Properties, doc.Registry,
			doc.Translations, opts.Compress, &doc.Diagnostics)
		if err != nil {
			return nil, err
		}
		metadataSets = append(metadataSets, meta)
	} else {
		if len(doc.Translations) == 0 {
			return nil, fmt.Errorf("translation keys to include were provided, but no translation data in descriptor")
		}
		for _, langs := range opts.TranslationSets {
			meta, err := blob.EncodeMetadata(doc.Device, doc.Properties, doc.Registry,
				doc.TranslationsFor(langs), opts.Compress, &doc.Diagnostics)
			if err != nil {
				return nil, err
			}
			metadataSets = append(metadataSets, meta)
		}
	}

	lens := make([]int, len(metadataSets))
	for i, meta := range metadataSets {
		lens[i] = len(meta)
	}
	blob.CheckTagCapacity(len(data), lens, opts.TagSize, &doc.Diagnostics)

	return blob.Assemble(data, metadataSets, opts.Digest)
}

// WriteROM writes the container image into dir as rom_blob.bin.
func WriteROM(dir string, image []byte) error {
	path := filepath.Join(dir, "rom_blob.bin")
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return fmt.Errorf("writing ROM image: %w", err)
	}
	return nil
}

// Options configures a full export: binaries, C library and summary.
type Options struct {
	// LibName names the C library and the output files.
	LibName string

	// Compress deflates the metadata blob.
	Compress bool

	// Enums and Getters toggle the optional C renderer output.
	Enums   bool
	Getters bool

	// TabWidth is the C indentation width, 0 for the default.
	TabWidth int

	// TagSize enables the capacity advisory when non-negative.
	TagSize int
}

// Artifacts is the in-memory result of a full export.
type Artifacts struct {
	Metadata []byte
	Data     []byte
	Library  *clib.Output
	Summary  Summary
}

// BuildAll compiles doc into every artifact at once: the metadata and
// data blobs, the C library, and the export summary.
func BuildAll(doc *descriptor.Document, opts Options) (*Artifacts, error) {
	meta, err := blob.EncodeMetadata(doc.Device, doc.Properties, doc.Registry,
		doc.Translations, opts.Compress, &doc.Diagnostics)
	if err != nil {
		return nil, err
	}
	data := blob.EncodeData(doc.Properties)
	lay := layout.Emit(doc.Properties)

	blob.CheckTagCapacity(len(data), []int{len(meta)}, opts.TagSize, &doc.Diagnostics)

	lib, err := clib.Render(doc.Properties, lay, clib.Config{
		LibName:  opts.LibName,
		TabWidth: opts.TabWidth,
		Enums:    opts.Enums,
		Getters:  opts.Getters,
	})
	if err != nil {
		return nil, err
	}

	return &Artifacts{
		Metadata: meta,
		Data:     data,
		Library:  lib,
		Summary:  newSummary(doc.Device.PackedID(), meta, data, opts.Compress),
	}, nil
}

// WriteAll writes every artifact into dir using the library name as the
// file stem.
func WriteAll(dir, libName string, a *Artifacts) error {
	summaryJSON, err := a.Summary.EncodeJSON()
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	summaryCBOR, err := a.Summary.EncodeCBOR()
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	files := map[string][]byte{
		fmt.Sprintf("%s_meta.bin", libName):    a.Metadata,
		fmt.Sprintf("%s_data.bin", libName):    a.Data,
		a.Library.HeaderName:                   []byte(a.Library.Header),
		a.Library.SourceName:                   []byte(a.Library.Source),
		fmt.Sprintf("%s_export.json", libName): summaryJSON,
		fmt.Sprintf("%s_export.cbor", libName): summaryCBOR,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// WriteLibrary writes only the C library files into dir.
func WriteLibrary(dir string, lib *clib.Output) error {
	if err := os.WriteFile(filepath.Join(dir, lib.HeaderName), []byte(lib.Header), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", lib.HeaderName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, lib.SourceName), []byte(lib.Source), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", lib.SourceName, err)
	}
	return nil
}
