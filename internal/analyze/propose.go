package analyze

import (
	"fmt"
	"sort"

	"visibility-mapper/internal/common"
	"visibility-mapper/internal/descriptor"
	"visibility-mapper/internal/diagnostic"
)

// Proposal is the registration the inspector suggests for a struct.
type Proposal struct {
	ID       TypeID
	Strategy descriptor.Strategy
	// Constructor is the function to register with WithConstructor.
	Constructor string
	// Builder is the factory to register with WithBuilder.
	Builder     string
	Diagnostics diagnostic.Diagnostics
}

// Propose picks a strategy for s. A builder wins over a constructor, which
// wins over setters.
func Propose(s *StructInfo) Proposal {
	p := Proposal{ID: s.ID, Strategy: descriptor.StrategyDirectFields}
	name := s.ID.String()

	b, hasBuilder := common.First(s.Builders)
	ctor, hasCtor := common.First(s.Constructors)

	switch {
	case hasBuilder:
		p.Strategy = descriptor.StrategyBuilderBased
		p.Builder = b.Factory

		if b.Factory == "" {
			p.Diagnostics.AddWarning(diagnostic.CodeBuilderWithoutHook,
				fmt.Sprintf("builder %s has no New... factory", b.ID.Name), name, "")
		} else {
			p.Diagnostics.AddInfo(diagnostic.CodeBuilderWithoutHook,
				fmt.Sprintf("register with WithBuilder(%s) and WithBuilderHook() to deserialize through the builder", b.Factory),
				name, "")
		}
	case hasCtor && !s.HasSetter():
		p.Strategy = descriptor.StrategyConstructorBased
		p.Constructor = ctor
	case s.HasSetter():
		p.Strategy = descriptor.StrategySetterBased
	}

	for i := range s.Fields {
		f := &s.Fields[i]

		key, skipped := f.Key()
		if skipped || f.Exported {
			continue
		}

		_, viaBuilder := builderMethod(s, f)

		switch {
		case f.Setter != "" && f.Getter == "":
			p.Diagnostics.AddWarning(diagnostic.CodeWriteOnlyField,
				"setter without getter: serialization omits it", name, key)
		case f.Setter != "" || p.Constructor != "" || viaBuilder:
		case f.Getter != "":
			p.Diagnostics.AddWarning(diagnostic.CodeReadOnlyField,
				"getter without setter: deserialization rejects it", name, key)
		default:
			p.Diagnostics.AddWarning(diagnostic.CodeHiddenField,
				"unexported field without accessors: only reveal mode can map it", name, key)
		}
	}

	return p
}

func builderMethod(s *StructInfo, f *FieldInfo) (string, bool) {
	for _, b := range s.Builders {
		if m, ok := b.Methods[f.Name]; ok {
			return m, true
		}
	}

	return "", false
}

// Proposals returns a proposal for every struct that is not itself a
// builder, sorted by type name.
func (g *TypeGraph) Proposals() []Proposal {
	ids := make([]TypeID, 0, len(g.Structs))
	for id, s := range g.Structs {
		if s.BuilderFor == nil {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	out := make([]Proposal, len(ids))
	for i, id := range ids {
		out[i] = Propose(g.Structs[id])
	}

	return out
}
