package clib

import (
	"fmt"
	"strings"

	"github.com/eput-protocol/eputgen-go/pkg/layout"
	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// DefaultTabWidth is the indentation width used when the config leaves
// it unset.
const DefaultTabWidth = 4

// Config controls what the renderer emits beyond the mandatory struct
// and serialization functions.
type Config struct {
	// LibName names the library. It becomes the include guard, the
	// struct name prefix and part of the output file names.
	LibName string

	// TabWidth is the indentation width in spaces. Zero selects
	// DefaultTabWidth.
	TabWidth int

	// Enums adds a typedef enum per selection property.
	Enums bool

	// Getters adds bounds-checked getter functions for properties
	// that declare guards.
	Getters bool
}

// Output is a rendered C library.
type Output struct {
	// HeaderName and SourceName are the canonical file names.
	HeaderName string
	SourceName string

	Header string
	Source string
}

// Render generates the C accessor library for the given property tree
// and its layout. The layout must have been emitted from the same
// property sequence.
func Render(props []property.Property, lay layout.Layout, cfg Config) (*Output, error) {
	if cfg.LibName == "" {
		return nil, fmt.Errorf("rendering C library: empty library name")
	}
	width := cfg.TabWidth
	if width == 0 {
		width = DefaultTabWidth
	}
	r := &renderer{tab: strings.Repeat(" ", width)}

	data := fileData{
		Namespace:     cfg.LibName,
		StructName:    cfg.LibName + "_config",
		HeaderName:    fmt.Sprintf("eput_%s.h", cfg.LibName),
		SourceName:    fmt.Sprintf("eput_%s.c", cfg.LibName),
		Tab:           r.tab,
		PayloadLength: lay.TotalSize,
		StructMembers: r.structMembers(props, 1),
		ReadLines:     r.readLines(lay),
		WriteLines:    r.writeLines(lay),
	}
	if cfg.Enums {
		data.Enums = r.enums(props)
	}
	if cfg.Getters {
		data.GetterSigs, data.GetterBodies = r.getters(props)
	}

	var header, source strings.Builder
	renderTemplate(&header, "header", data)
	renderTemplate(&source, "source", data)
	return &Output{
		HeaderName: data.HeaderName,
		SourceName: data.SourceName,
		Header:     header.String(),
		Source:     source.String(),
	}, nil
}

// renderer carries the indentation unit through the walkers.
type renderer struct {
	tab string
}

func (r *renderer) indent(depth int) string {
	return strings.Repeat(r.tab, depth)
}

// structMembers emits one member per data-bearing property, nesting an
// anonymous struct per array.
func (r *renderer) structMembers(props []property.Property, depth int) string {
	var b strings.Builder
	for _, p := range props {
		if arr, ok := p.(*property.Array); ok {
			b.WriteString(r.indent(depth) + "struct {\n")
			b.WriteString(r.structMembers(arr.Children(), depth+1))
			fmt.Fprintf(&b, "%s} %s[%d];\n", r.indent(depth), arr.ID(), arr.Repeat())
			continue
		}
		facts := p.Accessor()
		if facts.CType == "" {
			continue
		}
		if facts.ByteCopy {
			fmt.Fprintf(&b, "%s%s %s[%d];\n", r.indent(depth), facts.CType, p.ID(), facts.MemberLen)
		} else {
			fmt.Fprintf(&b, "%s%s %s;\n", r.indent(depth), facts.CType, p.ID())
		}
	}
	return b.String()
}

// enums emits a typedef enum per selection property, entry i carrying
// value i.
func (r *renderer) enums(props []property.Property) string {
	var defs []string
	for _, p := range props {
		if arr, ok := p.(*property.Array); ok {
			if nested := r.enums(arr.Children()); nested != "" {
				defs = append(defs, nested)
			}
			continue
		}
		facts := p.Accessor()
		if len(facts.Enum) == 0 || p.ID() == "" {
			continue
		}
		var b strings.Builder
		b.WriteString("typedef enum {\n")
		for i, entry := range facts.Enum {
			fmt.Fprintf(&b, "%s%s=%d,\n", r.tab, entry, i)
		}
		fmt.Fprintf(&b, "} %s_options;\n", p.ID())
		defs = append(defs, b.String())
	}
	return strings.Join(defs, "\n")
}

// readLines emits the parse_payload body: one assignment or copy loop
// per layout field, then the reserved timestamp.
func (r *renderer) readLines(lay layout.Layout) string {
	var b strings.Builder
	for _, f := range lay.Fields {
		switch {
		case f.Accessor.ByteCopy:
			fmt.Fprintf(&b, "%sfor (int i = 0; i < %d; i++) {\n", r.tab, f.Size)
			fmt.Fprintf(&b, "%sconfig->%s[i] = *(buf + %d + i);\n", r.indent(2), f.Path, f.Offset)
			b.WriteString(r.tab + "}\n")
		case f.Accessor.ScaleArg:
			fmt.Fprintf(&b, "%sconfig->%s = %s(buf + %d, %d);\n",
				r.tab, f.Path, f.Accessor.ReadFunc, f.Offset, f.Accessor.Scale)
		default:
			fmt.Fprintf(&b, "%sconfig->%s = %s(buf + %d);\n",
				r.tab, f.Path, f.Accessor.ReadFunc, f.Offset)
		}
	}
	fmt.Fprintf(&b, "%sconfig->data_last_written_timestamp = bytes_to_time_point(buf + %d);\n",
		r.tab, lay.TimestampOffset)
	return b.String()
}

// writeLines emits the generate_payload body, mirroring readLines.
func (r *renderer) writeLines(lay layout.Layout) string {
	var b strings.Builder
	for _, f := range lay.Fields {
		if f.Accessor.ByteCopy {
			fmt.Fprintf(&b, "%sfor (int i = 0; i < %d; i++) {\n", r.tab, f.Size)
			fmt.Fprintf(&b, "%s*(buf + %d + i) = config->%s[i];\n", r.indent(2), f.Offset, f.Path)
			b.WriteString(r.tab + "}\n")
			continue
		}
		fmt.Fprintf(&b, "%s%s(config->%s, buf + %d);\n",
			r.tab, f.Accessor.WriteFunc, f.Path, f.Offset)
	}
	fmt.Fprintf(&b, "%stime_point_to_bytes(config->data_last_written_timestamp, buf + %d);\n",
		r.tab, lay.TimestampOffset)
	return b.String()
}

// getters emits one bounds-checked getter per guarded property.
// Properties inside arrays get a single getter, shared by every
// instance: getters transform a passed value, not a struct member.
func (r *renderer) getters(props []property.Property) (sigs, bodies string) {
	var sigList, bodyList []string
	r.collectGetters(props, &sigList, &bodyList)
	return strings.Join(sigList, "\n"), strings.Join(bodyList, "\n")
}

func (r *renderer) collectGetters(props []property.Property, sigs, bodies *[]string) {
	for _, p := range props {
		if arr, ok := p.(*property.Array); ok {
			r.collectGetters(arr.Children(), sigs, bodies)
			continue
		}
		facts := p.Accessor()
		if facts.Guards.Empty() || p.ID() == "" {
			continue
		}
		sig := fmt.Sprintf("%s get_%s(%s %s)", facts.CType, p.ID(), facts.CType, p.ID())
		*sigs = append(*sigs, sig+";")
		*bodies = append(*bodies, r.getterBody(sig, p.ID(), facts))
	}
}

func (r *renderer) getterBody(sig, id string, facts property.AccessorFacts) string {
	g := facts.Guards
	var b strings.Builder
	b.WriteString(sig + " {\n")
	switch {
	case g.Clock:
		r.clockClamp(&b, "return_val", id)
		b.WriteString(r.tab + "return return_val;\n")
	case g.ClockRange:
		r.clockClamp(&b, "return_val_from", id+".from")
		r.clockClamp(&b, "return_val_to", id+".to")
		fmt.Fprintf(&b, "%s%s return_val = {return_val_from, return_val_to};\n", r.tab, facts.CType)
		b.WriteString(r.tab + "return return_val;\n")
	case g.MaxIndex > 0:
		fmt.Fprintf(&b, "%sif (%s > %d) {\n", r.tab, id, g.MaxIndex)
		b.WriteString(r.indent(2) + "return 0;\n")
		b.WriteString(r.tab + "} else {\n")
		fmt.Fprintf(&b, "%sreturn %s;\n", r.indent(2), id)
		b.WriteString(r.tab + "}\n")
	case len(g.OneOf) > 0:
		for _, literal := range g.OneOf {
			fmt.Fprintf(&b, "%sif (%s == %s) {\n", r.tab, id, literal)
			fmt.Fprintf(&b, "%sreturn %s;\n", r.indent(2), id)
			b.WriteString(r.tab + "}\n")
		}
		fmt.Fprintf(&b, "%sreturn %s;\n", r.tab, g.OneOf[0])
	default:
		if g.Min != "" {
			fmt.Fprintf(&b, "%sif (%s < %s) {\n", r.tab, id, g.Min)
			fmt.Fprintf(&b, "%sreturn %s;\n", r.indent(2), g.Min)
			b.WriteString(r.tab + "}\n")
		}
		if g.Max != "" {
			fmt.Fprintf(&b, "%sif (%s > %s) {\n", r.tab, id, g.Max)
			fmt.Fprintf(&b, "%sreturn %s;\n", r.indent(2), g.Max)
			b.WriteString(r.tab + "}\n")
		}
		if g.Step != "" {
			fmt.Fprintf(&b, "%sif (%s %% %s != 0) {\n", r.tab, id, g.Step)
			fmt.Fprintf(&b, "%sreturn (%s / %s) * %s;\n", r.indent(2), id, g.Step, g.Step)
			b.WriteString(r.tab + "}\n")
		}
		fmt.Fprintf(&b, "%sreturn %s;\n", r.tab, id)
	}
	b.WriteString("}\n")
	return b.String()
}

// clockClamp emits a clamped hh_mm_ss copy of src into a fresh local.
func (r *renderer) clockClamp(b *strings.Builder, local, src string) {
	fmt.Fprintf(b, "%shh_mm_ss %s = {\n", r.tab, local)
	fmt.Fprintf(b, "%s%s.hours,\n", r.indent(2), src)
	fmt.Fprintf(b, "%s%s.minutes,\n", r.indent(2), src)
	fmt.Fprintf(b, "%s%s.seconds\n", r.indent(2), src)
	b.WriteString(r.tab + "};\n")
	fmt.Fprintf(b, "%sif (%s.hours > 23) {\n", r.tab, local)
	fmt.Fprintf(b, "%s%s.hours = 23;\n", r.indent(2), local)
	b.WriteString(r.tab + "}\n")
	fmt.Fprintf(b, "%sif (%s.minutes > 59) {\n", r.tab, local)
	fmt.Fprintf(b, "%s%s.minutes = 59;\n", r.indent(2), local)
	b.WriteString(r.tab + "}\n")
	fmt.Fprintf(b, "%sif (%s.seconds > 59) {\n", r.tab, local)
	fmt.Fprintf(b, "%s%s.seconds = 59;\n", r.indent(2), local)
	b.WriteString(r.tab + "}\n")
}
