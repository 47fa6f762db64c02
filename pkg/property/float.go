package property

import (
	"math"
	"strconv"
	"strings"
)

// FloatConfig configures a floating-point property.
type FloatConfig struct {
	ID          string
	Min, Max    *float64
	ContentType string
	Unit        string
	Default     float64
}

// Float is an IEEE-754 floating-point property, 4 or 8 bytes wide,
// stored big-endian. Floats carry optional bounds but no step size.
type Float struct {
	node
	size    int
	min     *float64
	max     *float64
	content contentInfo
	def     float64
}

// NewFloat32 creates a 32-bit floating-point property.
func NewFloat32(cfg FloatConfig) (*Float, error) {
	return newFloat(CodeFloat32, 4, cfg)
}

// NewFloat64 creates a 64-bit floating-point property.
func NewFloat64(cfg FloatConfig) (*Float, error) {
	return newFloat(CodeFloat64, 8, cfg)
}

func newFloat(code Code, size int, cfg FloatConfig) (*Float, error) {
	p := &Float{
		node: node{code: code, id: cfg.ID},
		size: size,
		min:  cfg.Min,
		max:  cfg.Max,
		def:  cfg.Default,
	}
	var err error
	if p.content, err = newContentInfo(cfg.ID, cfg.ContentType, cfg.Unit); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Float) appendValue(dst []byte, v float64) []byte {
	if p.size == 4 {
		return appendUint(dst, uint64(math.Float32bits(float32(v))), 4)
	}
	return appendUint(dst, math.Float64bits(v), 8)
}

func (p *Float) DataSize() int { return p.size }

func (p *Float) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	flags := p.content.flags()
	if p.min != nil {
		flags |= flagMinValue
	}
	if p.max != nil {
		flags |= flagMaxValue
	}
	dst = append(dst, flags)
	if p.min != nil {
		dst = p.appendValue(dst, *p.min)
	}
	if p.max != nil {
		dst = p.appendValue(dst, *p.max)
	}
	return p.content.append(dst), nil
}

func (p *Float) AppendData(dst []byte) []byte {
	return p.appendValue(dst, p.def)
}

func (p *Float) Accessor() AccessorFacts {
	facts := AccessorFacts{}
	if p.size == 4 {
		facts.CType = "float"
		facts.ReadFunc = "bytes_to_float"
		facts.WriteFunc = "float_to_bytes"
	} else {
		facts.CType = "double"
		facts.ReadFunc = "bytes_to_double"
		facts.WriteFunc = "double_to_bytes"
	}
	if p.min != nil {
		facts.Guards.Min = formatFloat(*p.min)
	}
	if p.max != nil {
		facts.Guards.Max = formatFloat(*p.max)
	}
	return facts
}

// formatFloat renders a float as a literal valid in generated code.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Bare integers need a decimal point to stay floating-point
	// literals in C.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
