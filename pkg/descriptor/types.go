package descriptor

import (
	"encoding/binary"
	"fmt"

	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// DeviceType is the device-type code of the descriptor header.
type DeviceType uint8

const (
	DeviceCustom           DeviceType = 0x00
	DeviceLight            DeviceType = 0x01
	DeviceWashingMachine   DeviceType = 0x02
	DeviceHeater           DeviceType = 0x03
	DeviceCustomNoTruncate DeviceType = 0x80
)

// deviceTypeNames maps descriptor spellings to type codes.
var deviceTypeNames = map[string]DeviceType{
	"Custom":            DeviceCustom,
	"Light":             DeviceLight,
	"Washing Machine":   DeviceWashingMachine,
	"Heater":            DeviceHeater,
	"Custom_NoTruncate": DeviceCustomNoTruncate,
}

// ParseDeviceType maps the descriptor's device_type string to its code.
func ParseDeviceType(name string) (DeviceType, error) {
	t, ok := deviceTypeNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown device_type %q", name)
	}
	return t, nil
}

// String returns the descriptor spelling of the device type.
func (t DeviceType) String() string {
	for name, code := range deviceTypeNames {
		if code == t {
			return name
		}
	}
	return fmt.Sprintf("DeviceType(%#02x)", uint8(t))
}

// DeviceInfo identifies the device a descriptor configures. It is
// immutable once parsed.
type DeviceInfo struct {
	Type            DeviceType
	ManufacturerID  uint32 // 24-bit
	DeviceID        uint32 // 24-bit
	FirmwareVersion uint8
	ProtocolVersion uint8
	Name            string // optional
}

// PackedID returns the 8-byte big-endian device identifier packed from
// manufacturer id (3 bytes), device id (3 bytes), firmware version and
// protocol version.
func (d DeviceInfo) PackedID() [8]byte {
	var id [8]byte
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], d.ManufacturerID)
	copy(id[0:3], buf[1:4])
	binary.BigEndian.PutUint32(buf[:], d.DeviceID)
	copy(id[3:6], buf[1:4])
	id[6] = d.FirmwareVersion
	id[7] = d.ProtocolVersion
	return id
}

// TranslationSet maps registry identifiers to display texts for one
// language.
type TranslationSet struct {
	// Language is the language code ("en", "de", "pt_BR").
	Language string

	// Texts maps identifiers to translated display strings. Ids
	// without an entry serialize as absent.
	Texts map[string]string
}

// Document is a fully parsed and validated descriptor. All fields are
// read-only artifacts of one parse; nothing is mutated afterwards.
type Document struct {
	Device       DeviceInfo
	Properties   []property.Property
	Registry     *property.Registry
	Translations []TranslationSet

	// Diagnostics holds the soft findings of parsing and property
	// construction.
	Diagnostics property.Diagnostics
}

// TranslationsFor returns the subset of the document's translations
// whose language code is in langs, in document order. Unknown codes
// are skipped.
func (d *Document) TranslationsFor(langs []string) []TranslationSet {
	want := make(map[string]bool, len(langs))
	for _, l := range langs {
		want[l] = true
	}
	var subset []TranslationSet
	for _, ts := range d.Translations {
		if want[ts.Language] {
			subset = append(subset, ts)
		}
	}
	return subset
}
