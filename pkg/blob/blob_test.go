package blob

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"

	"github.com/eput-protocol/eputgen-go/pkg/descriptor"
	"github.com/eput-protocol/eputgen-go/pkg/layout"
	"github.com/eput-protocol/eputgen-go/pkg/property"
)

func testDevice() descriptor.DeviceInfo {
	return descriptor.DeviceInfo{
		Type:            descriptor.DeviceWashingMachine,
		ManufacturerID:  0x000101,
		DeviceID:        0x000202,
		FirmwareVersion: 1,
		ProtocolVersion: 2,
		Name:            "WM",
	}
}

func testProps(t *testing.T) ([]property.Property, *property.Registry) {
	t.Helper()
	reg := property.NewRegistry()
	if err := reg.Add("en"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	reg.Freeze()
	p, err := property.NewBool(property.BoolConfig{ID: "en", Default: true}, reg)
	if err != nil {
		t.Fatalf("NewBool failed: %v", err)
	}
	return []property.Property{p}, reg
}

func TestEncodeData(t *testing.T) {
	props, _ := testProps(t)
	data := EncodeData(props)

	// One default byte plus the reserved timestamp trailer.
	want := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(data, want) {
		t.Errorf("data mismatch\n got %v\nwant %v", data, want)
	}
	if len(data) != layout.Emit(props).TotalSize {
		t.Errorf("data length %d does not match layout total %d",
			len(data), layout.Emit(props).TotalSize)
	}
}

func TestEncodeMetadataUncompressed(t *testing.T) {
	props, reg := testProps(t)
	var diag property.Diagnostics

	meta, err := EncodeMetadata(testDevice(), props, reg, nil, false, &diag)
	if err != nil {
		t.Fatalf("EncodeMetadata failed: %v", err)
	}

	want := []byte{
		0x02,             // washing machine
		0x00, 0x01, 0x01, // manufacturer id
		0x00, 0x02, 0x02, // device id
		0x01, 0x02, // firmware, protocol
		'W', 'M', 0x00, // device name
		0x84, 'e', 'n', 0x00, 0x00, 0x00, // bool property
		0xFF,       // metadata terminator
		0x00, 0x00, // empty translation table
	}
	if !bytes.Equal(meta, want) {
		t.Errorf("metadata mismatch\n got %v\nwant %v", meta, want)
	}

	// Disabled compression leaves a reader hint.
	if len(diag.Notes) != 1 {
		t.Errorf("expected 1 note, got %v", diag.Notes)
	}
}

func TestEncodeMetadataTranslations(t *testing.T) {
	props, reg := testProps(t)
	var diag property.Diagnostics
	translations := []descriptor.TranslationSet{
		{Language: "de", Texts: map[string]string{"en": "Aktiviert"}},
		{Language: "fr", Texts: map[string]string{}},
	}

	meta, err := EncodeMetadata(testDevice(), props, reg, translations, false, &diag)
	if err != nil {
		t.Fatalf("EncodeMetadata failed: %v", err)
	}

	table := meta[bytes.IndexByte(meta, 0xFF)+1:]
	want := []byte{
		'd', 'e', 0x00,
		'A', 'k', 't', 'i', 'v', 'i', 'e', 'r', 't', 0x00,
		'f', 'r', 0x00,
		0x00,       // no translation for "en"
		0x00, 0x00, // table end
	}
	if !bytes.Equal(table, want) {
		t.Errorf("translation table mismatch\n got %v\nwant %v", table, want)
	}
}

func TestEncodeMetadataCompressed(t *testing.T) {
	props, reg := testProps(t)
	var diag property.Diagnostics

	plain, err := EncodeMetadata(testDevice(), props, reg, nil, false, &diag)
	if err != nil {
		t.Fatalf("EncodeMetadata failed: %v", err)
	}
	compressed, err := EncodeMetadata(testDevice(), props, reg, nil, true, &diag)
	if err != nil {
		t.Fatalf("EncodeMetadata failed: %v", err)
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("zlib.NewReader failed: %v", err)
	}
	defer r.Close()
	inflated, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading deflated metadata failed: %v", err)
	}
	if !bytes.Equal(inflated, plain) {
		t.Error("compressed metadata does not inflate to the plain encoding")
	}
}

func TestAssemble(t *testing.T) {
	d, err := LookupDigest("sha256")
	if err != nil {
		t.Fatalf("LookupDigest failed: %v", err)
	}

	data := []byte{1, 2, 3, 4}
	meta1 := []byte{5, 6}
	meta2 := []byte{7, 8, 9}

	image, err := Assemble(data, [][]byte{meta1, meta2}, d)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if image[0] != 3 {
		t.Errorf("expected 3 blocks, got %d", image[0])
	}
	if image[1] != 32 {
		t.Errorf("expected digest size 32, got %d", image[1])
	}

	headerSize := 2 + 3*(32+8)
	blocks := [][]byte{data, meta1, meta2}
	offset := headerSize
	pos := 2
	for i, block := range blocks {
		h := d.New()
		h.Write(block)
		wantDigest := h.Sum(nil)
		if !bytes.Equal(image[pos:pos+32], wantDigest) {
			t.Errorf("block %d: digest mismatch", i)
		}
		gotOffset := binary.BigEndian.Uint32(image[pos+32 : pos+36])
		gotLength := binary.BigEndian.Uint32(image[pos+36 : pos+40])
		if int(gotOffset) != offset {
			t.Errorf("block %d: expected offset %d, got %d", i, offset, gotOffset)
		}
		if int(gotLength) != len(block) {
			t.Errorf("block %d: expected length %d, got %d", i, len(block), gotLength)
		}
		if !bytes.Equal(image[gotOffset:int(gotOffset)+len(block)], block) {
			t.Errorf("block %d: content mismatch at offset %d", i, gotOffset)
		}
		offset += len(block)
		pos += 40
	}

	if len(image) != headerSize+len(data)+len(meta1)+len(meta2) {
		t.Errorf("unexpected image length %d", len(image))
	}
}

func TestAssembleNoMetadata(t *testing.T) {
	d, _ := LookupDigest("md5")
	if _, err := Assemble([]byte{1}, nil, d); err == nil {
		t.Error("expected assembly without metadata blocks to fail")
	}
}

func TestDigestRegistry(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"md5", 16},
		{"sha1", 20},
		{"sha256", 32},
		{"crc32", 4},
		{"blake2b-256", 32},
		{"blake3", 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := LookupDigest(tt.name)
			if err != nil {
				t.Fatalf("LookupDigest failed: %v", err)
			}
			if d.Size != tt.size {
				t.Errorf("expected size %d, got %d", tt.size, d.Size)
			}
			h := d.New()
			h.Write([]byte("abc"))
			if got := len(h.Sum(nil)); got != tt.size {
				t.Errorf("hasher produced %d bytes, want %d", got, tt.size)
			}
		})
	}

	if _, err := LookupDigest("sha512"); err == nil {
		t.Error("expected unknown digest to fail")
	}
}

func TestCRC32DigestBigEndian(t *testing.T) {
	d, _ := LookupDigest("crc32")
	h := d.New()
	h.Write([]byte("123456789"))
	// The IEEE check value for "123456789".
	want := []byte{0xCB, 0xF4, 0x39, 0x26}
	if got := h.Sum(nil); !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}
}

func TestCheckTagCapacity(t *testing.T) {
	var diag property.Diagnostics
	CheckTagCapacity(100, []int{50, 80}, 200, &diag)
	if len(diag.Warnings) != 1 {
		t.Fatalf("expected a capacity warning, got %v", diag.Warnings)
	}

	diag = property.Diagnostics{}
	CheckTagCapacity(100, []int{50, 80}, 250, &diag)
	if len(diag.Warnings) != 0 {
		t.Errorf("unexpected warning: %v", diag.Warnings)
	}

	diag = property.Diagnostics{}
	CheckTagCapacity(100, []int{80}, -1, &diag)
	if len(diag.Warnings) != 0 {
		t.Errorf("disabled check must not warn: %v", diag.Warnings)
	}
}

func TestDataDecodesAtLayoutOffsets(t *testing.T) {
	var diag property.Diagnostics
	reg := property.NewRegistry()
	for _, id := range []string{"enabled", "speed", "stages", "dur"} {
		if err := reg.Add(id); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	reg.Freeze()

	enabled, err := property.NewBool(property.BoolConfig{ID: "enabled", Default: true}, reg)
	if err != nil {
		t.Fatalf("NewBool failed: %v", err)
	}
	min, max := int64(0), int64(1400)
	speed, err := property.NewInt(property.CodeUint16, property.IntConfig{
		ID: "speed", Min: &min, Max: &max, Default: 400,
	}, &diag)
	if err != nil {
		t.Fatalf("NewInt failed: %v", err)
	}
	dur, err := property.NewInt(property.CodeUint8, property.IntConfig{ID: "dur", Default: 7}, &diag)
	if err != nil {
		t.Fatalf("NewInt failed: %v", err)
	}
	stages, err := property.NewArray("stages", 3, []property.Property{dur})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}
	props := []property.Property{enabled, speed, stages}

	data := EncodeData(props)
	lay := layout.Emit(props)
	if len(data) != lay.TotalSize {
		t.Fatalf("data length %d, layout total %d", len(data), lay.TotalSize)
	}

	// Reading each field back at its emitted offset must recover the
	// declared default.
	want := map[string]uint64{
		"enabled":       1,
		"speed":         400,
		"stages[0].dur": 7,
		"stages[1].dur": 7,
		"stages[2].dur": 7,
	}
	for _, f := range lay.Fields {
		var got uint64
		switch f.Size {
		case 1:
			got = uint64(data[f.Offset])
		case 2:
			got = uint64(binary.BigEndian.Uint16(data[f.Offset:]))
		default:
			t.Fatalf("unexpected field size %d for %s", f.Size, f.Path)
		}
		if got != want[f.Path] {
			t.Errorf("field %s: got %d, want %d", f.Path, got, want[f.Path])
		}
	}
}

func TestMetadataFramingSizes(t *testing.T) {
	props, reg := testProps(t)
	var diag property.Diagnostics

	meta, err := EncodeMetadata(testDevice(), props, reg, nil, false, &diag)
	if err != nil {
		t.Fatalf("EncodeMetadata failed: %v", err)
	}

	// Device header: type code, 6 id bytes, firmware, protocol, then
	// the null-terminated name.
	headerLen := 9 + len(testDevice().Name) + 1
	propLen := 0
	for _, p := range props {
		n, err := property.MetadataSize(p, reg)
		if err != nil {
			t.Fatalf("MetadataSize failed: %v", err)
		}
		propLen += n
	}
	// Header, properties, the 0xFF terminator, the empty translation
	// table's two closing zero bytes.
	if want := headerLen + propLen + 1 + 2; len(meta) != want {
		t.Errorf("metadata length %d, framing total %d", len(meta), want)
	}
}
