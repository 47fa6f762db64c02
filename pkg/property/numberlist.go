package property

import (
	"math"
	"strconv"
)

// numberListDataSize is the fixed data width of number-list
// properties. Every value occupies 8 bytes regardless of magnitude;
// deployed readers depend on this width, so it is preserved even
// though narrower values waste space (open question, see DESIGN.md).
const numberListDataSize = 8

// maxNumberListEntries caps the entry table, whose length is a 2-byte
// count in metadata.
const maxNumberListEntries = 65535

// IntList is a numeric property restricted to a discrete list of
// integer values. Metadata carries the full value table; the data blob
// holds the 8-byte default.
type IntList struct {
	node
	values []int64
	def    int64
}

// NewIntList creates a discrete integer-list property. The default
// falls back to the first value when absent (nil).
func NewIntList(id string, values []int64, def *int64) (*IntList, error) {
	if err := checkNumberList(id, len(values)); err != nil {
		return nil, err
	}
	p := &IntList{node: node{code: CodeNumberListInt, id: id}, values: values}
	if def != nil {
		p.def = *def
	} else {
		p.def = values[0]
	}
	return p, nil
}

func (p *IntList) DataSize() int { return numberListDataSize }

func (p *IntList) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	dst = appendUint(dst, uint64(len(p.values)), 2)
	for _, v := range p.values {
		dst = appendUint(dst, uint64(v), 8)
	}
	return dst, nil
}

func (p *IntList) AppendData(dst []byte) []byte {
	return appendUint(dst, uint64(p.def), 8)
}

func (p *IntList) Accessor() AccessorFacts {
	literals := make([]string, len(p.values))
	for i, v := range p.values {
		literals[i] = strconv.FormatInt(v, 10)
	}
	return AccessorFacts{
		CType:     "int64_t",
		ReadFunc:  "bytes_to_int64",
		WriteFunc: "int64_to_bytes",
		Guards:    Guards{OneOf: literals},
	}
}

// FloatList is a numeric property restricted to a discrete list of
// floating-point values, stored as 8-byte IEEE-754 doubles.
type FloatList struct {
	node
	values []float64
	def    float64
}

// NewFloatList creates a discrete float-list property. The default
// falls back to the first value when absent (nil).
func NewFloatList(id string, values []float64, def *float64) (*FloatList, error) {
	if err := checkNumberList(id, len(values)); err != nil {
		return nil, err
	}
	p := &FloatList{node: node{code: CodeNumberListFloat, id: id}, values: values}
	if def != nil {
		p.def = *def
	} else {
		p.def = values[0]
	}
	return p, nil
}

func (p *FloatList) DataSize() int { return numberListDataSize }

func (p *FloatList) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	dst = appendUint(dst, uint64(len(p.values)), 2)
	for _, v := range p.values {
		dst = appendUint(dst, math.Float64bits(v), 8)
	}
	return dst, nil
}

func (p *FloatList) AppendData(dst []byte) []byte {
	return appendUint(dst, math.Float64bits(p.def), 8)
}

func (p *FloatList) Accessor() AccessorFacts {
	literals := make([]string, len(p.values))
	for i, v := range p.values {
		literals[i] = formatFloat(v)
	}
	return AccessorFacts{
		CType:     "double",
		ReadFunc:  "bytes_to_double",
		WriteFunc: "double_to_bytes",
		Guards:    Guards{OneOf: literals},
	}
}

func checkNumberList(id string, n int) error {
	if n < 1 {
		return nodeErrorf(id, "property has no entries")
	}
	if n > maxNumberListEntries {
		return nodeErrorf(id, "list must have less than 65536 entries")
	}
	return nil
}
