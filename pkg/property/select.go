package property

// DependencyRule marks other properties as relevant when a particular
// selection entry is chosen. Rules keep declaration order because the
// metadata encoding is order-sensitive.
type DependencyRule struct {
	// Option is the selection-entry label the rule applies to.
	Option string

	// Requires lists registry identifiers that become relevant when
	// Option is selected.
	Requires []string
}

// SelectConfig configures a selection property.
type SelectConfig struct {
	ID           string
	Entries      []string
	Dependencies []DependencyRule

	// DefaultEntry is the pre-selected entry for one-of-M selections.
	// Empty means no selection.
	DefaultEntry string

	// DefaultEntries are the pre-selected entries for n-of-M
	// selections.
	DefaultEntries []string
}

// selection carries the state shared by one-of-M and n-of-M kinds:
// the entry list and the dependency rules, both serialized identically.
type selection struct {
	node
	entries []string
	rules   []DependencyRule
}

func newSelection(code Code, cfg SelectConfig, reg *Registry) (selection, error) {
	s := selection{
		node:    node{code: code, id: cfg.ID},
		entries: cfg.Entries,
		rules:   cfg.Dependencies,
	}
	if len(s.entries) > 255 {
		return s, nodeErrorf(cfg.ID, "must have less than 256 entries")
	}
	if len(s.rules) > 255 {
		return s, nodeErrorf(cfg.ID, "must have less than 256 dependent options")
	}
	for _, rule := range s.rules {
		if s.entryIndex(rule.Option) < 0 {
			return s, nodeErrorf(cfg.ID, "dependencies contain invalid option ID %q", rule.Option)
		}
		if len(rule.Requires) > 255 {
			return s, nodeErrorf(cfg.ID, "option must have less than 256 dependencies")
		}
		for _, dep := range rule.Requires {
			if !reg.Contains(dep) {
				return s, nodeErrorf(cfg.ID, "dependencies contain non-existant ID %q", dep)
			}
			if dep == cfg.ID {
				return s, nodeErrorf(cfg.ID, "can't be dependent on own ID")
			}
		}
	}
	return s, nil
}

func (s *selection) entryIndex(entry string) int {
	for i, e := range s.entries {
		if e == entry {
			return i
		}
	}
	return -1
}

// appendSelectMetadata appends the variant fields shared by selection
// kinds: entry count, null-terminated entries, rule count, then per
// rule the option's entry index, the dependency count, and 2-byte
// registry indices.
func (s *selection) appendSelectMetadata(dst []byte, reg *Registry) ([]byte, error) {
	dst = append(dst, byte(len(s.entries)))
	for _, entry := range s.entries {
		dst = appendCString(dst, entry)
	}
	dst = append(dst, byte(len(s.rules)))
	for _, rule := range s.rules {
		dst = append(dst, byte(s.entryIndex(rule.Option)))
		dst = append(dst, byte(len(rule.Requires)))
		for _, dep := range rule.Requires {
			var err error
			dst, err = resolveIndex(dst, reg, s.id, dep)
			if err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

// Entries returns the selection entries in declared order.
func (s *selection) Entries() []string { return s.entries }

// OneOf is a one-out-of-M selection. Its single data byte holds 0 for
// "no selection" or the 1-based index of the chosen entry.
type OneOf struct {
	selection
	defaultIndex uint8
}

// NewOneOf creates a one-out-of-M selection property.
func NewOneOf(cfg SelectConfig, reg *Registry) (*OneOf, error) {
	return newOneOf(CodeOneOutOfM, cfg, reg)
}

// NewLanguage creates the language-selector property. It shares the
// one-of-M encoding under its own type code; the descriptor front end
// enforces that at most one exists and that it never nests in an array.
func NewLanguage(cfg SelectConfig, reg *Registry) (*OneOf, error) {
	return newOneOf(CodeLanguage, cfg, reg)
}

func newOneOf(code Code, cfg SelectConfig, reg *Registry) (*OneOf, error) {
	sel, err := newSelection(code, cfg, reg)
	if err != nil {
		return nil, err
	}
	p := &OneOf{selection: sel}
	if cfg.DefaultEntry != "" {
		i := sel.entryIndex(cfg.DefaultEntry)
		if i < 0 {
			return nil, nodeErrorf(cfg.ID, "default %q is not a declared entry", cfg.DefaultEntry)
		}
		// 0 means no choice, on-wire indexing starts at 1.
		p.defaultIndex = uint8(i + 1)
	}
	return p, nil
}

func (p *OneOf) DataSize() int { return 1 }

func (p *OneOf) AppendMetadata(dst []byte, reg *Registry) ([]byte, error) {
	return p.appendSelectMetadata(p.appendHeader(dst), reg)
}

func (p *OneOf) AppendData(dst []byte) []byte {
	return append(dst, p.defaultIndex)
}

func (p *OneOf) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "uint8_t",
		ReadFunc:  "bytes_to_uint8",
		WriteFunc: "uint8_to_bytes",
		Enum:      p.entries,
		Guards:    Guards{MaxIndex: len(p.entries)},
	}
}

// NOfM is an n-out-of-M selection. Selections pack into a bitset of
// ceil(entryCount/8) bytes: entry i sets bit i%8 of byte i/8.
type NOfM struct {
	selection
	defaultBits []byte
}

// NewNOfM creates an n-out-of-M selection property.
func NewNOfM(cfg SelectConfig, reg *Registry) (*NOfM, error) {
	sel, err := newSelection(CodeNOutOfM, cfg, reg)
	if err != nil {
		return nil, err
	}
	p := &NOfM{selection: sel}
	p.defaultBits = make([]byte, p.DataSize())
	for _, entry := range cfg.DefaultEntries {
		i := sel.entryIndex(entry)
		if i < 0 {
			return nil, nodeErrorf(cfg.ID, "default %q is not a declared entry", entry)
		}
		p.defaultBits[i/8] |= 1 << (i % 8)
	}
	return p, nil
}

func (p *NOfM) DataSize() int {
	return (len(p.entries) + 7) / 8
}

func (p *NOfM) AppendMetadata(dst []byte, reg *Registry) ([]byte, error) {
	return p.appendSelectMetadata(p.appendHeader(dst), reg)
}

func (p *NOfM) AppendData(dst []byte) []byte {
	return append(dst, p.defaultBits...)
}

func (p *NOfM) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "uint8_t",
		ByteCopy:  true,
		MemberLen: p.DataSize(),
		Enum:      p.entries,
	}
}
