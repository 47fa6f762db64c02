package blob

import (
	"encoding/binary"
	"fmt"

	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// tagOverhead is the tag memory consumed outside the container image:
// the envelope, lock and terminator records (9 + 18 bytes) counted
// together with the two record headers.
const tagOverhead = 27

// Assemble builds the container image from one data blob and one or
// more metadata blobs. The image starts with the block count and the
// digest size, followed by one descriptor per block (digest, absolute
// 32-bit offset, 32-bit length) and the block bytes in descriptor
// order. Descriptor 0 is always the data blob.
func Assemble(data []byte, metadata [][]byte, d Digest) ([]byte, error) {
	if len(metadata) == 0 {
		return nil, fmt.Errorf("assembling container: no metadata blocks")
	}
	blocks := make([][]byte, 0, 1+len(metadata))
	blocks = append(blocks, data)
	blocks = append(blocks, metadata...)
	if len(blocks) > 255 {
		return nil, fmt.Errorf("assembling container: %d blocks exceed the 255 block limit", len(blocks))
	}

	headerSize := 2 + len(blocks)*(d.Size+8)
	out := make([]byte, 0, headerSize)
	out = append(out, byte(len(blocks)), byte(d.Size))

	offset := headerSize
	for _, block := range blocks {
		h := d.New()
		h.Write(block)
		out = h.Sum(out)
		out = binary.BigEndian.AppendUint32(out, uint32(offset))
		out = binary.BigEndian.AppendUint32(out, uint32(len(block)))
		offset += len(block)
	}
	for _, block := range blocks {
		out = append(out, block...)
	}
	return out, nil
}

// CheckTagCapacity warns when the largest image plus the fixed tag
// overhead does not fit the given tag memory. A negative tagSize
// disables the check. Only the largest metadata block counts: a reader
// mirrors at most one metadata set alongside the data.
func CheckTagCapacity(dataLen int, metadataLens []int, tagSize int, diag *property.Diagnostics) {
	if tagSize < 0 {
		return
	}
	maxMeta := 0
	for _, n := range metadataLens {
		if n > maxMeta {
			maxMeta = n
		}
	}
	if dataLen+maxMeta+tagOverhead > tagSize {
		diag.Warnf("", "combined size of largest images is larger than %d bytes, ensure the tag has enough memory for all data", tagSize)
	}
}
