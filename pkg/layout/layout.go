// Package layout computes the data-blob layout of a compiled
// descriptor: per-property byte offsets and sizes, in the exact
// traversal order the data encoder serializes defaults. Generated
// accessors read and write at these offsets, so the walk here and the
// data encoder's walk must never diverge.
package layout

import (
	"fmt"

	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// ReservedTrailerSize is the number of zero bytes appended after the
// last property's data, reserved for the runtime-filled last-written
// timestamp.
const ReservedTrailerSize = 8

// Field locates one accessible value inside the data blob. Array
// properties expand into one Field per child per instance.
type Field struct {
	// Path is the member path of the value in generated code,
	// including instance indices: "speed", "stages[1].duration".
	Path string

	// PropertyID is the declared identifier of the underlying
	// property, without indices.
	PropertyID string

	// Offset is the field's starting byte inside the data blob.
	Offset int

	// Size is the field's width in bytes.
	Size int

	// Code is the property's wire type code.
	Code property.Code

	// Accessor carries the kind-specific accessor facts.
	Accessor property.AccessorFacts
}

// Layout is the complete data-blob layout of one descriptor.
type Layout struct {
	// Fields lists every accessible value in data order.
	Fields []Field

	// TimestampOffset is where the reserved last-written timestamp
	// starts, immediately after the last property's data.
	TimestampOffset int

	// TotalSize is the data blob's length including the reserved
	// trailer.
	TotalSize int
}

// Emit computes the layout of props. It is a pure function of the
// property sequence: same input, same layout, no hidden state.
func Emit(props []property.Property) Layout {
	var l Layout
	offset := walk(&l, props, "", 0)
	l.TimestampOffset = offset
	l.TotalSize = offset + ReservedTrailerSize
	return l
}

func walk(l *Layout, props []property.Property, prefix string, offset int) int {
	for _, p := range props {
		if arr, ok := p.(*property.Array); ok {
			for i := 0; i < arr.Repeat(); i++ {
				instance := fmt.Sprintf("%s%s[%d].", prefix, arr.ID(), i)
				offset = walk(l, arr.Children(), instance, offset)
			}
			continue
		}
		size := p.DataSize()
		if size == 0 {
			// Layout markers own no data bytes.
			continue
		}
		l.Fields = append(l.Fields, Field{
			Path:       prefix + p.ID(),
			PropertyID: p.ID(),
			Offset:     offset,
			Size:       size,
			Code:       p.Code(),
			Accessor:   p.Accessor(),
		})
		offset += size
	}
	return offset
}
