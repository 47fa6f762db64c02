package blob

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/eput-protocol/eputgen-go/pkg/descriptor"
	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// EncodeMetadata serializes the device header, every property's
// metadata in declaration order, the 0xFF terminator and the
// translation table for the given sets. With compress the result is
// deflated at best compression; a disabled compression leaves the
// reader without a framing hint, surfaced as a note.
func EncodeMetadata(
	dev descriptor.DeviceInfo,
	props []property.Property,
	reg *property.Registry,
	translations []descriptor.TranslationSet,
	compress bool,
	diag *property.Diagnostics,
) ([]byte, error) {
	buf := appendDeviceHeader(nil, dev)
	var err error
	for _, p := range props {
		if buf, err = p.AppendMetadata(buf, reg); err != nil {
			return nil, err
		}
	}
	buf = append(buf, property.MetadataTerminator)
	buf = appendTranslationTable(buf, reg, translations)

	if !compress {
		diag.Notef("", "compression disabled, remember to add 'zip=0' argument to NDEF metadata type URI")
		return buf, nil
	}
	compressed, err := deflate(buf)
	if err != nil {
		return nil, fmt.Errorf("compressing metadata: %w", err)
	}
	diag.Notef("", "compressed metadata: %d -> %d bytes, %d%%",
		len(buf), len(compressed), len(compressed)*100/len(buf))
	return compressed, nil
}

// appendDeviceHeader appends the fixed device header: type code,
// 3-byte manufacturer id, 3-byte device id, firmware and protocol
// versions, then the null-terminated device name.
func appendDeviceHeader(dst []byte, dev descriptor.DeviceInfo) []byte {
	dst = append(dst, byte(dev.Type))
	packed := dev.PackedID()
	dst = append(dst, packed[:6]...)
	dst = append(dst, dev.FirmwareVersion, dev.ProtocolVersion)
	dst = append(dst, dev.Name...)
	return append(dst, 0x00)
}

// appendTranslationTable appends one column per language: the
// null-terminated language code, then for every registry identifier in
// index order either the null-terminated translation or a bare 0x00.
// Two trailing zero bytes close the table.
func appendTranslationTable(dst []byte, reg *property.Registry, translations []descriptor.TranslationSet) []byte {
	for _, set := range translations {
		dst = append(dst, set.Language...)
		dst = append(dst, 0x00)
		for _, id := range reg.IDs() {
			if text, ok := set.Texts[id]; ok {
				dst = append(dst, text...)
			}
			dst = append(dst, 0x00)
		}
	}
	return append(dst, 0x00, 0x00)
}

func deflate(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
