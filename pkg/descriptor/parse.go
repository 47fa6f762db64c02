package descriptor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// rawDocument is the YAML shape of a descriptor document. Properties
// stay raw nodes: the list is heterogeneous and each element is
// decoded by its declared type in the build pass.
type rawDocument struct {
	DeviceType      string           `yaml:"device_type"`
	ManufacturerID  uint32           `yaml:"manufacturer_id"`
	DeviceID        uint32           `yaml:"device_id"`
	FirmwareVersion uint16           `yaml:"firmware_version"`
	ProtocolVersion uint16           `yaml:"protocol_version"`
	DeviceName      string           `yaml:"device_name"`
	Properties      []yaml.Node      `yaml:"properties"`
	TranslationData []rawTranslation `yaml:"translation_data"`
}

type rawTranslation struct {
	Language     string            `yaml:"language"`
	Translations map[string]string `yaml:"translations"`
}

// Load reads, preprocesses and parses the descriptor file at path.
// Includes resolve relative to the file's directory.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(src, filepath.Dir(path))
}

// Parse parses a descriptor document from src. includeDir is the base
// directory for include directives; pass "" when src has none.
func Parse(src []byte, includeDir string) (*Document, error) {
	expanded, err := expandIncludes(src, includeDir)
	if err != nil {
		return nil, err
	}

	var raw rawDocument
	dec := yaml.NewDecoder(bytes.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}

	doc := &Document{}
	if doc.Device, err = parseDeviceInfo(&raw); err != nil {
		return nil, err
	}
	if len(raw.Properties) == 0 {
		return nil, fmt.Errorf("descriptor declares no properties")
	}

	// First pass: register every identifier, then freeze so the
	// second pass resolves dependency references against stable
	// indices.
	doc.Registry = property.NewRegistry()
	for i := range raw.Properties {
		if err := collectIDs(&raw.Properties[i], doc.Registry); err != nil {
			return nil, err
		}
	}
	doc.Registry.Freeze()

	b := &builder{registry: doc.Registry, diag: &doc.Diagnostics}
	for i := range raw.Properties {
		p, err := b.build(&raw.Properties[i], false)
		if err != nil {
			return nil, err
		}
		doc.Properties = append(doc.Properties, p)
	}

	if doc.Translations, err = parseTranslations(raw.TranslationData); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseDeviceInfo(raw *rawDocument) (DeviceInfo, error) {
	var dev DeviceInfo
	var err error
	if dev.Type, err = ParseDeviceType(raw.DeviceType); err != nil {
		return dev, err
	}
	if raw.ManufacturerID > 0xFFFFFF {
		return dev, fmt.Errorf("manufacturer_id %#x exceeds 24 bits", raw.ManufacturerID)
	}
	if raw.DeviceID > 0xFFFFFF {
		return dev, fmt.Errorf("device_id %#x exceeds 24 bits", raw.DeviceID)
	}
	if raw.FirmwareVersion > 0xFF {
		return dev, fmt.Errorf("firmware_version %#x exceeds 8 bits", raw.FirmwareVersion)
	}
	if raw.ProtocolVersion > 0xFF {
		return dev, fmt.Errorf("protocol_version %#x exceeds 8 bits", raw.ProtocolVersion)
	}
	dev.ManufacturerID = raw.ManufacturerID
	dev.DeviceID = raw.DeviceID
	dev.FirmwareVersion = uint8(raw.FirmwareVersion)
	dev.ProtocolVersion = uint8(raw.ProtocolVersion)
	dev.Name = raw.DeviceName
	return dev, nil
}

func parseTranslations(raws []rawTranslation) ([]TranslationSet, error) {
	var sets []TranslationSet
	for _, raw := range raws {
		if err := validateLanguageCode(raw.Language); err != nil {
			return nil, err
		}
		for id := range raw.Translations {
			if err := validateIdentifier(id); err != nil {
				return nil, fmt.Errorf("translation set %q: %w", raw.Language, err)
			}
		}
		sets = append(sets, TranslationSet{Language: raw.Language, Texts: raw.Translations})
	}
	return sets, nil
}

// idCollector is the minimal shape needed to find identifiers in a raw
// property node.
type idCollector struct {
	ID         string      `yaml:"id"`
	Entries    []string    `yaml:"entries"`
	Properties []yaml.Node `yaml:"properties"`
}

// collectIDs registers the node's identifier, its selection-entry
// labels, and recursively its children, in depth-first document order.
func collectIDs(node *yaml.Node, reg *property.Registry) error {
	var c idCollector
	if err := node.Decode(&c); err != nil {
		return fmt.Errorf("parsing property: %w", err)
	}
	if c.ID != "" {
		if err := validateIdentifier(c.ID); err != nil {
			return err
		}
		if err := reg.Add(c.ID); err != nil {
			return err
		}
	}
	for _, entry := range c.Entries {
		if err := reg.Add(entry); err != nil {
			return err
		}
	}
	for i := range c.Properties {
		if err := collectIDs(&c.Properties[i], reg); err != nil {
			return err
		}
	}
	return nil
}
