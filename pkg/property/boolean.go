package property

// BoolConfig configures a boolean property.
type BoolConfig struct {
	ID string

	// RequiresWhenTrue and RequiresWhenFalse list registry identifiers
	// that become relevant for the respective value.
	RequiresWhenTrue  []string
	RequiresWhenFalse []string

	Default bool
}

// Bool is a boolean property stored as one data byte (0 or 1). Its
// metadata carries two dependency lists, one per truth value.
type Bool struct {
	node
	whenTrue  []string
	whenFalse []string
	def       byte
}

// NewBool creates a boolean property.
func NewBool(cfg BoolConfig, reg *Registry) (*Bool, error) {
	p := &Bool{
		node:      node{code: CodeBool, id: cfg.ID},
		whenTrue:  cfg.RequiresWhenTrue,
		whenFalse: cfg.RequiresWhenFalse,
	}
	if len(p.whenTrue) > 255 || len(p.whenFalse) > 255 {
		return nil, nodeErrorf(cfg.ID, "must have less than 256 dependencies")
	}
	for _, dep := range append(append([]string{}, p.whenTrue...), p.whenFalse...) {
		if !reg.Contains(dep) {
			return nil, nodeErrorf(cfg.ID, "dependencies contain non-existant ID %q", dep)
		}
		if dep == cfg.ID {
			return nil, nodeErrorf(cfg.ID, "can't be dependent on own ID")
		}
	}
	if cfg.Default {
		p.def = 1
	}
	return p, nil
}

func (p *Bool) DataSize() int { return 1 }

func (p *Bool) AppendMetadata(dst []byte, reg *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	var err error
	for _, list := range [][]string{p.whenTrue, p.whenFalse} {
		dst = append(dst, byte(len(list)))
		for _, dep := range list {
			if dst, err = resolveIndex(dst, reg, p.id, dep); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

func (p *Bool) AppendData(dst []byte) []byte {
	return append(dst, p.def)
}

func (p *Bool) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "uint8_t",
		ReadFunc:  "bytes_to_bool",
		WriteFunc: "bool_to_bytes",
	}
}
