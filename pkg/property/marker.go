package property

// Marker is a zero-size layout property: a divider line or a section
// header. Markers structure configuration frontends but contribute no
// bytes to the data blob and no member to generated accessors.
type Marker struct {
	node
}

// NewDivider creates a divider marker. The identifier is optional.
func NewDivider(id string) *Marker {
	return &Marker{node{code: CodeDivider, id: id}}
}

// NewHeader creates a section-header marker. The identifier is
// optional; when present, translations may attach a heading text to it.
func NewHeader(id string) *Marker {
	return &Marker{node{code: CodeHeader, id: id}}
}

func (m *Marker) DataSize() int { return 0 }

func (m *Marker) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	return m.appendHeader(dst), nil
}

func (m *Marker) AppendData(dst []byte) []byte { return dst }

func (m *Marker) Accessor() AccessorFacts { return AccessorFacts{} }
