package property

import (
	"bytes"
	"fmt"
	"testing"
)

func frozenRegistry(t *testing.T, ids ...string) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, id := range ids {
		if err := reg.Add(id); err != nil {
			t.Fatalf("Add(%q) failed: %v", id, err)
		}
	}
	reg.Freeze()
	return reg
}

func TestOneOfDefaultByte(t *testing.T) {
	reg := frozenRegistry(t, "mode", "eco", "fast", "heavy")
	p, err := NewOneOf(SelectConfig{
		ID:           "mode",
		Entries:      []string{"eco", "fast", "heavy"},
		DefaultEntry: "fast",
	}, reg)
	if err != nil {
		t.Fatalf("NewOneOf failed: %v", err)
	}

	if p.DataSize() != 1 {
		t.Errorf("expected data size 1, got %d", p.DataSize())
	}
	// On-wire selection indices are 1-based; "fast" is entry 1.
	if got := p.AppendData(nil); !bytes.Equal(got, []byte{2}) {
		t.Errorf("expected default byte 2, got %v", got)
	}
}

func TestOneOfWithoutDefault(t *testing.T) {
	reg := frozenRegistry(t, "mode", "eco", "fast")
	p, err := NewOneOf(SelectConfig{ID: "mode", Entries: []string{"eco", "fast"}}, reg)
	if err != nil {
		t.Fatalf("NewOneOf failed: %v", err)
	}
	if got := p.AppendData(nil); !bytes.Equal(got, []byte{0}) {
		t.Errorf("expected no-selection byte 0, got %v", got)
	}
}

func TestOneOfMetadata(t *testing.T) {
	reg := frozenRegistry(t, "mode", "eco", "fast", "dry")
	p, err := NewOneOf(SelectConfig{
		ID:      "mode",
		Entries: []string{"eco", "fast"},
		Dependencies: []DependencyRule{
			{Option: "fast", Requires: []string{"dry"}},
		},
	}, reg)
	if err != nil {
		t.Fatalf("NewOneOf failed: %v", err)
	}

	got, err := p.AppendMetadata(nil, reg)
	if err != nil {
		t.Fatalf("AppendMetadata failed: %v", err)
	}
	want := []byte{
		0x82,                      // one-of-M type code
		'm', 'o', 'd', 'e', 0x00, // identifier
		2,                  // entry count
		'e', 'c', 'o', 0x00,
		'f', 'a', 's', 't', 0x00,
		1,          // rule count
		1,          // entry index of "fast"
		1,          // dependency count
		0x00, 0x03, // registry index of "dry"
	}
	if !bytes.Equal(got, want) {
		t.Errorf("metadata mismatch\n got %v\nwant %v", got, want)
	}
}

func TestNOfMDefaultBits(t *testing.T) {
	entries := make([]string, 9)
	ids := []string{"flags"}
	for i := range entries {
		entries[i] = fmt.Sprintf("opt%d", i)
		ids = append(ids, entries[i])
	}
	reg := frozenRegistry(t, ids...)

	p, err := NewNOfM(SelectConfig{
		ID:             "flags",
		Entries:        entries,
		DefaultEntries: []string{"opt0", "opt3", "opt8"},
	}, reg)
	if err != nil {
		t.Fatalf("NewNOfM failed: %v", err)
	}

	if p.DataSize() != 2 {
		t.Errorf("expected 2 bitset bytes for 9 entries, got %d", p.DataSize())
	}
	// Entry i occupies bit i%8 of byte i/8.
	want := []byte{0b00001001, 0b00000001}
	if got := p.AppendData(nil); !bytes.Equal(got, want) {
		t.Errorf("expected bitset %08b, got %08b", want, got)
	}
}

func TestSelectionValidation(t *testing.T) {
	tooMany := make([]string, 300)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("e%d", i)
	}

	tests := []struct {
		name    string
		cfg     SelectConfig
		wantErr string
	}{
		{
			name:    "too many entries",
			cfg:     SelectConfig{ID: "sel", Entries: tooMany},
			wantErr: `property "sel": must have less than 256 entries`,
		},
		{
			name: "rule option not an entry",
			cfg: SelectConfig{
				ID:      "sel",
				Entries: []string{"a"},
				Dependencies: []DependencyRule{
					{Option: "b", Requires: []string{"other"}},
				},
			},
			wantErr: `property "sel": dependencies contain invalid option ID "b"`,
		},
		{
			name: "dangling dependency",
			cfg: SelectConfig{
				ID:      "sel",
				Entries: []string{"a"},
				Dependencies: []DependencyRule{
					{Option: "a", Requires: []string{"missing"}},
				},
			},
			wantErr: `property "sel": dependencies contain non-existant ID "missing"`,
		},
		{
			name: "self reference",
			cfg: SelectConfig{
				ID:      "sel",
				Entries: []string{"a"},
				Dependencies: []DependencyRule{
					{Option: "a", Requires: []string{"sel"}},
				},
			},
			wantErr: `property "sel": can't be dependent on own ID`,
		},
		{
			name: "unknown default",
			cfg: SelectConfig{
				ID:           "sel",
				Entries:      []string{"a"},
				DefaultEntry: "b",
			},
			wantErr: `property "sel": default "b" is not a declared entry`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := frozenRegistry(t, "sel", "a", "other")
			_, err := NewOneOf(tt.cfg, reg)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestOneOfAccessorFacts(t *testing.T) {
	reg := frozenRegistry(t, "mode", "eco", "fast")
	p, err := NewOneOf(SelectConfig{ID: "mode", Entries: []string{"eco", "fast"}}, reg)
	if err != nil {
		t.Fatalf("NewOneOf failed: %v", err)
	}
	facts := p.Accessor()
	if facts.CType != "uint8_t" {
		t.Errorf("expected uint8_t, got %q", facts.CType)
	}
	if facts.Guards.MaxIndex != 2 {
		t.Errorf("expected max index 2, got %d", facts.Guards.MaxIndex)
	}
	if len(facts.Enum) != 2 {
		t.Errorf("expected 2 enum entries, got %d", len(facts.Enum))
	}
}
