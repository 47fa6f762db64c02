package property

import "strconv"

// FixedPointConfig configures a fixed-point property.
type FixedPointConfig struct {
	ID string

	// Scale is the divisor applied by readers: the stored integer
	// divided by Scale yields the real value. It travels in metadata,
	// never in the data blob.
	Scale int32

	Min, Max    *int64
	ContentType string
	Unit        string
	Default     int64
}

// FixedPoint is a scaled integer property, 4 or 8 bytes wide. The data
// blob stores the raw signed integer; the scale factor lives in
// metadata so the embedded side converts on access.
type FixedPoint struct {
	node
	size    int
	scale   int32
	min     *int64
	max     *int64
	content contentInfo
	def     int64
}

// NewFixedPoint32 creates a 32-bit fixed-point property.
func NewFixedPoint32(cfg FixedPointConfig) (*FixedPoint, error) {
	return newFixedPoint(CodeFixedPoint32, 4, cfg)
}

// NewFixedPoint64 creates a 64-bit fixed-point property.
func NewFixedPoint64(cfg FixedPointConfig) (*FixedPoint, error) {
	return newFixedPoint(CodeFixedPoint64, 8, cfg)
}

func newFixedPoint(code Code, size int, cfg FixedPointConfig) (*FixedPoint, error) {
	if cfg.Scale == 0 {
		return nil, nodeErrorf(cfg.ID, "scale must not be 0")
	}
	p := &FixedPoint{
		node:  node{code: code, id: cfg.ID},
		size:  size,
		scale: cfg.Scale,
		min:   cfg.Min,
		max:   cfg.Max,
		def:   cfg.Default,
	}
	if !fitsShape(p.def, size, true) {
		return nil, nodeErrorf(cfg.ID, "default value %d does not fit %d bytes", p.def, size)
	}
	for name, v := range map[string]*int64{"min_value": p.min, "max_value": p.max} {
		if v != nil && !fitsShape(*v, size, true) {
			return nil, nodeErrorf(cfg.ID, "%s %d does not fit %d bytes", name, *v, size)
		}
	}
	var err error
	if p.content, err = newContentInfo(cfg.ID, cfg.ContentType, cfg.Unit); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FixedPoint) DataSize() int { return p.size }

func (p *FixedPoint) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	dst = appendUint(dst, uint64(uint32(p.scale)), 4)
	flags := p.content.flags()
	if p.min != nil {
		flags |= flagMinValue
	}
	if p.max != nil {
		flags |= flagMaxValue
	}
	dst = append(dst, flags)
	if p.min != nil {
		dst = appendUint(dst, uint64(*p.min), p.size)
	}
	if p.max != nil {
		dst = appendUint(dst, uint64(*p.max), p.size)
	}
	return p.content.append(dst), nil
}

func (p *FixedPoint) AppendData(dst []byte) []byte {
	return appendUint(dst, uint64(p.def), p.size)
}

func (p *FixedPoint) Accessor() AccessorFacts {
	facts := AccessorFacts{
		ScaleArg: true,
		Scale:    p.scale,
	}
	if p.size == 4 {
		facts.CType = "fixp32"
		facts.ReadFunc = "bytes_to_fixp32"
		facts.WriteFunc = "fixp32_to_bytes"
	} else {
		facts.CType = "fixp64"
		facts.ReadFunc = "bytes_to_fixp64"
		facts.WriteFunc = "fixp64_to_bytes"
	}
	if p.min != nil {
		facts.Guards.Min = strconv.FormatInt(*p.min, 10)
	}
	if p.max != nil {
		facts.Guards.Max = strconv.FormatInt(*p.max, 10)
	}
	return facts
}
