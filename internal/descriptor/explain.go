package descriptor

import (
	"fmt"

	"visibility-mapper/internal/diagnostic"
)

// Summary sorts a type's keys by what a mapper can do with them.
type Summary struct {
	Constructible bool
	RoundTrip     []string // writable and readable
	WriteOnly     []string // serialization omits them
	ReadOnly      []string // deserialization rejects them
	Hidden        []string // neither
}

// Summarize classifies every field of d under the given reveal mode.
func Summarize(d *TypeDescriptor, reveal bool) Summary {
	s := Summary{Constructible: d.CanConstruct()}

	for i := range d.Fields {
		f := &d.Fields[i]
		w := d.WriteAccess(f, reveal) != AccessNone
		r := d.ReadAccess(f, reveal) != AccessNone

		switch {
		case w && r:
			s.RoundTrip = append(s.RoundTrip, f.Key)
		case w:
			s.WriteOnly = append(s.WriteOnly, f.Key)
		case r:
			s.ReadOnly = append(s.ReadOnly, f.Key)
		default:
			s.Hidden = append(s.Hidden, f.Key)
		}
	}

	return s
}

// Explain reports what deserialization and serialization of d will do.
func Explain(d *TypeDescriptor, reveal bool) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	name := d.Name()

	if !d.CanConstruct() {
		msg := "type has no default construction, constructor or hooked builder"
		if d.Builder != nil {
			msg = "builder is registered without a hook and the type has no default construction"
		}

		diags.AddError(diagnostic.CodeNoConstructionPath, msg, name, "")
	} else if d.Builder != nil && !d.Builder.Hook {
		diags.AddInfo(diagnostic.CodeBuilderWithoutHook,
			"builder is ignored by deserialization; fields with getters are written after default construction",
			name, "")
	}

	for i := range d.Fields {
		f := &d.Fields[i]
		w := d.WriteAccess(f, reveal)
		r := d.ReadAccess(f, reveal)

		switch {
		case w == AccessRevealed || r == AccessRevealed:
			diags.AddWarning(diagnostic.CodeRevealedField,
				fmt.Sprintf("unexported field %s is accessed directly (write: %s, read: %s)", f.GoName, w, r),
				name, f.Key)
		case !d.CanConstruct():
		case w != AccessNone && r == AccessNone:
			diags.AddWarning(diagnostic.CodeWriteOnlyField,
				fmt.Sprintf("written via %s but has no getter: serialization omits it", w), name, f.Key)
		case w == AccessNone && r != AccessNone:
			diags.AddWarning(diagnostic.CodeReadOnlyField,
				fmt.Sprintf("read via %s but has no write path: deserialization rejects it", r), name, f.Key)
		case w == AccessNone:
			diags.AddWarning(diagnostic.CodeHiddenField,
				"unexported field without accessors: only reveal mode can map it", name, f.Key)
		}
	}

	if s := Summarize(d, reveal); s.Constructible && len(s.RoundTrip) == len(d.Fields) {
		diags.AddInfo(diagnostic.CodeRoundTrip, "every key round-trips", name, "")
	}

	return diags
}
