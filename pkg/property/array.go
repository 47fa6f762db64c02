package property

// Array is a repeating record property: an ordered set of child
// properties instantiated Repeat times. The data blob lays instances
// out back to back, outer index varying slowest; metadata nests the
// children's metadata after a repeat-count byte and a child-count
// byte.
type Array struct {
	node
	repeat   int
	children []Property
}

// NewArray creates an array property. Both the repeat count and the
// child count must fit their single metadata bytes.
func NewArray(id string, repeat int, children []Property) (*Array, error) {
	if repeat < 1 || repeat > 255 {
		return nil, nodeErrorf(id, "max_entries must be between 1 and 255")
	}
	if len(children) == 0 {
		return nil, nodeErrorf(id, "array has no properties")
	}
	if len(children) > 255 {
		return nil, nodeErrorf(id, "must have less than 256 properties")
	}
	return &Array{
		node:     node{code: CodeArray, id: id},
		repeat:   repeat,
		children: children,
	}, nil
}

// Repeat returns the number of instances in the data layout.
func (p *Array) Repeat() int { return p.repeat }

// Children returns the child properties in declaration order. The
// returned slice is shared; callers must not modify it.
func (p *Array) Children() []Property { return p.children }

func (p *Array) DataSize() int {
	childSize := 0
	for _, child := range p.children {
		childSize += child.DataSize()
	}
	return childSize * p.repeat
}

func (p *Array) AppendMetadata(dst []byte, reg *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	dst = append(dst, byte(p.repeat), byte(len(p.children)))
	var err error
	for _, child := range p.children {
		if dst, err = child.AppendMetadata(dst, reg); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (p *Array) AppendData(dst []byte) []byte {
	for i := 0; i < p.repeat; i++ {
		for _, child := range p.children {
			dst = child.AppendData(dst)
		}
	}
	return dst
}

// Accessor returns no facts of its own: the layout emitter recurses
// into the children and the renderer derives the nested struct from
// them.
func (p *Array) Accessor() AccessorFacts { return AccessorFacts{} }
