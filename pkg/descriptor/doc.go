// Package descriptor parses and validates YAML descriptor documents
// into the compiler's strongly typed property tree.
//
// Parsing is a two-pass link step. The first pass walks the raw
// document depth-first and registers every property identifier and
// selection-entry label in the identifier registry, which is then
// frozen. The second pass constructs the typed properties; anything
// carrying dependency references resolves them against the frozen
// registry, so cross-references are stable 16-bit indices regardless
// of construction order.
//
// Schema violations, duplicate or dangling identifiers, and table
// overflows are hard errors: parsing aborts and nothing downstream
// runs. Style findings (identifier casing, bound/step misalignment)
// are collected as warnings on the document and never stop the
// compiler.
package descriptor
