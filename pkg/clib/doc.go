// Package clib renders the C accessor library for a compiled
// descriptor: a header with the configuration struct, optional enums
// and getter declarations, and a source file with payload
// serialization, parsing and the NDEF entry points. Offsets come from
// the layout emitter, so generated accessors and the data blob can
// never disagree about where a value lives.
package clib
