package property

import "encoding/binary"

// Property is the fixed capability surface every property kind
// implements. The compiler core only ever dispatches through it:
// the metadata encoder calls AppendMetadata, the data encoder calls
// AppendData, and the layout emitter combines DataSize with Accessor.
type Property interface {
	// Code returns the wire type code.
	Code() Code

	// ID returns the unique identifier, or "" for properties that
	// carry none (dividers and headers may omit it).
	ID() string

	// DataSize returns the fixed number of bytes the property
	// occupies in the data blob. Layout markers return 0.
	DataSize() int

	// AppendMetadata appends the property's metadata encoding:
	// the type code, the null-terminated identifier if present, and
	// the variant fields. Dependency references resolve against reg,
	// which must be frozen.
	AppendMetadata(dst []byte, reg *Registry) ([]byte, error)

	// AppendData appends the property's default value in its fixed
	// data encoding. Layout markers append nothing.
	AppendData(dst []byte) []byte

	// Accessor returns the facts a renderer needs to generate an
	// accessor that reads and writes this property's data bytes.
	Accessor() AccessorFacts
}

// MetadataSize returns the encoded metadata length of p.
func MetadataSize(p Property, reg *Registry) (int, error) {
	buf, err := p.AppendMetadata(nil, reg)
	if err != nil {
		return 0, err
	}
	return len(buf), nil
}

// node carries the fields common to every property kind.
type node struct {
	code Code
	id   string
}

func (n *node) Code() Code { return n.code }
func (n *node) ID() string { return n.id }

// appendHeader appends the metadata framing shared by all kinds:
// type code, then the null-terminated identifier when present.
func (n *node) appendHeader(dst []byte) []byte {
	dst = append(dst, byte(n.code))
	if n.id != "" {
		dst = appendCString(dst, n.id)
	}
	return dst
}

// appendCString appends s followed by a terminating zero byte.
func appendCString(dst []byte, s string) []byte {
	dst = append(dst, s...)
	return append(dst, 0x00)
}

// appendUint appends the low `size` bytes of v, big-endian. Signed
// values pass through two's complement untouched.
func appendUint(dst []byte, v uint64, size int) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(dst, buf[8-size:]...)
}

// appendIndex appends a 2-byte big-endian registry index.
func appendIndex(dst []byte, idx uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, idx)
}

// resolveIndex appends the registry index of id, failing on dangling
// references. ownerID names the property being serialized.
func resolveIndex(dst []byte, reg *Registry, ownerID, id string) ([]byte, error) {
	idx, ok := reg.Index(id)
	if !ok {
		return nil, nodeErrorf(ownerID, "dependencies contain non-existant ID %q", id)
	}
	return appendIndex(dst, idx), nil
}
