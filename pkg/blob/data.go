package blob

import (
	"github.com/eput-protocol/eputgen-go/pkg/layout"
	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// EncodeData serializes every property's default value in declaration
// order and appends the reserved zero trailer for the last-written
// timestamp. The result's length always equals the layout total for
// the same property sequence.
func EncodeData(props []property.Property) []byte {
	var buf []byte
	for _, p := range props {
		buf = p.AppendData(buf)
	}
	return append(buf, make([]byte, layout.ReservedTrailerSize)...)
}
