package property

// AccessorFacts describes how generated native code must access one
// property's slice of the data blob. Offsets are supplied separately by
// the layout emitter; the facts here are purely per-kind.
type AccessorFacts struct {
	// CType is the native type of the struct member ("uint8_t",
	// "fixp32", "hh_mm_ss", ...). Empty for layout markers, which
	// produce no member at all.
	CType string

	// ReadFunc and WriteFunc name the byte-conversion helpers of the
	// embedded utility library ("bytes_to_uint16", "uint16_to_bytes").
	// Empty when ByteCopy is set.
	ReadFunc  string
	WriteFunc string

	// ByteCopy marks properties whose data bytes are copied verbatim
	// into a byte-array member (bitsets, strings).
	ByteCopy bool

	// MemberLen is the declared array length of a byte-array member.
	// For strings it exceeds the copied data size by one, leaving room
	// for the implicit terminator. Zero for scalar members.
	MemberLen int

	// ScaleArg marks fixed-point properties whose read helper takes
	// the scale factor as a second argument.
	ScaleArg bool

	// Scale is the fixed-point scale factor passed to the read helper.
	Scale int32

	// Enum lists selection entries, in declared order, for optional
	// enum generation. Entry i has value i.
	Enum []string

	// Guards carries the bounds-check clauses of an optional safe
	// getter. An empty Guards generates no getter.
	Guards Guards
}

// Guards describes the clauses of a bounds-checked accessor. Numeric
// limits are pre-formatted literals so the renderer stays agnostic of
// the underlying width.
type Guards struct {
	// Min, Max clamp the value to the declared bounds. Empty when the
	// bound is absent.
	Min string
	Max string

	// Step rounds the value down to the nearest multiple.
	Step string

	// MaxIndex caps a 1-based selection index; out-of-range values
	// read as 0 (no selection). Zero when absent.
	MaxIndex int

	// OneOf restricts the value to an explicit literal set; anything
	// else reads as the first literal.
	OneOf []string

	// Clock clamps an (hour, minute, second) triple to 23/59/59.
	Clock bool

	// ClockRange applies the Clock clamp to both ends of a range.
	ClockRange bool
}

// Empty reports whether the guards generate no getter clauses.
func (g Guards) Empty() bool {
	return g.Min == "" && g.Max == "" && g.Step == "" &&
		g.MaxIndex == 0 && len(g.OneOf) == 0 && !g.Clock && !g.ClockRange
}
