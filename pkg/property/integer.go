package property

import "strconv"

// intShape captures the width, signedness and accessor naming of one
// integer kind.
type intShape struct {
	size      int
	signed    bool
	cType     string
	readFunc  string
	writeFunc string
}

var intShapes = map[Code]intShape{
	CodeUint8:  {1, false, "uint8_t", "bytes_to_uint8", "uint8_to_bytes"},
	CodeUint16: {2, false, "uint16_t", "bytes_to_uint16", "uint16_to_bytes"},
	CodeUint32: {4, false, "uint32_t", "bytes_to_uint32", "uint32_to_bytes"},
	CodeUint64: {8, false, "uint64_t", "bytes_to_uint64", "uint64_to_bytes"},
	CodeInt8:   {1, true, "int8_t", "bytes_to_int8", "int8_to_bytes"},
	CodeInt16:  {2, true, "int16_t", "bytes_to_int16", "int16_to_bytes"},
	CodeInt32:  {4, true, "int32_t", "bytes_to_int32", "int32_to_bytes"},
	CodeInt64:  {8, true, "int64_t", "bytes_to_int64", "int64_to_bytes"},
}

// fitsShape reports whether v is representable at the given width and
// signedness. Encoding truncates to the low bytes, so anything wider
// must be rejected before it reaches the wire.
func fitsShape(v int64, size int, signed bool) bool {
	if size >= 8 {
		return signed || v >= 0
	}
	bits := uint(8 * size)
	if signed {
		return v >= -(int64(1)<<(bits-1)) && v <= int64(1)<<(bits-1)-1
	}
	return v >= 0 && v < int64(1)<<bits
}

// IntConfig configures an integer property. Bounds and step are
// optional; nil means absent.
type IntConfig struct {
	ID             string
	Min, Max, Step *int64
	ContentType    string
	Unit           string
	Default        int64
}

// Int is a fixed-width big-endian integer property, signed or
// unsigned, 1 to 8 bytes wide. Optional bounds and a step size travel
// in metadata behind a flags byte; the data blob holds the default
// value at the declared width.
type Int struct {
	node
	shape   intShape
	min     *int64
	max     *int64
	step    *int64
	content contentInfo
	def     int64
}

// NewInt creates an integer property of the kind named by code, which
// must be one of the eight integer type codes. Bound/step misalignment
// is reported as a warning; signedness violations and a non-positive
// step abort.
func NewInt(code Code, cfg IntConfig, diag *Diagnostics) (*Int, error) {
	shape, ok := intShapes[code]
	if !ok {
		return nil, nodeErrorf(cfg.ID, "code %#02x is not an integer kind", byte(code))
	}
	p := &Int{
		node:  node{code: code, id: cfg.ID},
		shape: shape,
		min:   cfg.Min,
		max:   cfg.Max,
		step:  cfg.Step,
		def:   cfg.Default,
	}
	if p.step != nil && *p.step <= 0 {
		return nil, nodeErrorf(cfg.ID, "step_size must be > 0")
	}
	if !shape.signed {
		if p.min != nil && *p.min < 0 {
			return nil, nodeErrorf(cfg.ID, "type is unsigned, can't have min_value < 0")
		}
		if p.max != nil && *p.max < 0 {
			return nil, nodeErrorf(cfg.ID, "type is unsigned, can't have max_value < 0")
		}
	}
	if !fitsShape(p.def, shape.size, shape.signed) {
		return nil, nodeErrorf(cfg.ID, "default value %d does not fit %s", p.def, shape.cType)
	}
	for name, v := range map[string]*int64{
		"min_value": p.min, "max_value": p.max, "step_size": p.step,
	} {
		if v != nil && !fitsShape(*v, shape.size, shape.signed) {
			return nil, nodeErrorf(cfg.ID, "%s %d does not fit %s", name, *v, shape.cType)
		}
	}
	if p.step != nil {
		if p.min != nil && *p.min%*p.step != 0 {
			diag.Warnf(cfg.ID, "min_value is not a multiple of step_size")
		}
		if p.max != nil && *p.max%*p.step != 0 {
			diag.Warnf(cfg.ID, "max_value is not a multiple of step_size")
		}
	}
	var err error
	if p.content, err = newContentInfo(cfg.ID, cfg.ContentType, cfg.Unit); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Int) DataSize() int { return p.shape.size }

func (p *Int) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	flags := p.content.flags()
	if p.min != nil {
		flags |= flagMinValue
	}
	if p.max != nil {
		flags |= flagMaxValue
	}
	if p.step != nil {
		flags |= flagStepSize
	}
	dst = append(dst, flags)
	for _, v := range []*int64{p.min, p.max, p.step} {
		if v != nil {
			dst = appendUint(dst, uint64(*v), p.shape.size)
		}
	}
	return p.content.append(dst), nil
}

func (p *Int) AppendData(dst []byte) []byte {
	return appendUint(dst, uint64(p.def), p.shape.size)
}

func (p *Int) Accessor() AccessorFacts {
	facts := AccessorFacts{
		CType:     p.shape.cType,
		ReadFunc:  p.shape.readFunc,
		WriteFunc: p.shape.writeFunc,
	}
	if p.min != nil {
		facts.Guards.Min = strconv.FormatInt(*p.min, 10)
	}
	if p.max != nil {
		facts.Guards.Max = strconv.FormatInt(*p.max, 10)
	}
	if p.step != nil {
		facts.Guards.Step = strconv.FormatInt(*p.step, 10)
	}
	return facts
}
