// Package property implements the property type system of the EPUT
// descriptor compiler.
//
// A descriptor document declares an ordered list of configurable device
// properties. Every property kind knows two encodings: a self-describing
// metadata encoding read by configuration frontends, and a fixed-layout
// data encoding holding the default value read and written by the
// embedded target. Both encodings are byte-exact wire formats; the data
// layout is additionally shared with generated accessor code, so sizes
// and offsets computed here are binding.
//
// The set of property kinds is closed. Each kind is a concrete struct
// implementing the Property interface; dispatch is over that fixed
// capability surface, never open extension. Adding a kind means touching
// the type code table, the descriptor builder, and the renderer, which
// is intentional for a frozen wire format.
package property
