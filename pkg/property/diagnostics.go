package property

import "fmt"

// NodeError is a hard compilation failure attached to a specific
// property. Compilation aborts on the first NodeError; no partial
// output is ever written.
type NodeError struct {
	// PropertyID identifies the offending property. Empty for
	// properties that carry no identifier (dividers, headers).
	PropertyID string

	// Message describes the violation.
	Message string
}

func (e *NodeError) Error() string {
	if e.PropertyID == "" {
		return e.Message
	}
	return fmt.Sprintf("property %q: %s", e.PropertyID, e.Message)
}

// nodeErrorf builds a NodeError for the property with the given id.
func nodeErrorf(id, format string, args ...any) *NodeError {
	return &NodeError{PropertyID: id, Message: fmt.Sprintf(format, args...)}
}

// Issue is a non-fatal finding produced during compilation.
type Issue struct {
	PropertyID string
	Message    string
}

func (i Issue) String() string {
	if i.PropertyID == "" {
		return i.Message
	}
	return fmt.Sprintf("property %q: %s", i.PropertyID, i.Message)
}

// Diagnostics collects soft findings of a compilation pass. Hard
// failures are returned as errors instead; anything recorded here
// never stops the compiler.
type Diagnostics struct {
	// Warnings are findings the author should fix but that do not
	// change the produced blobs (identifier casing, bound/step
	// misalignment, tag capacity risk).
	Warnings []Issue

	// Notes are purely informational (compression ratios, reader
	// hints).
	Notes []Issue
}

// Warnf records a warning for the property with the given id.
func (d *Diagnostics) Warnf(id, format string, args ...any) {
	d.Warnings = append(d.Warnings, Issue{PropertyID: id, Message: fmt.Sprintf(format, args...)})
}

// Notef records an informational note.
func (d *Diagnostics) Notef(id, format string, args ...any) {
	d.Notes = append(d.Notes, Issue{PropertyID: id, Message: fmt.Sprintf(format, args...)})
}
