package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"visibility-mapper/internal/descriptor"
	"visibility-mapper/internal/match"
)

// TypeID is shared with descriptors so inspected and registered types line up.
type TypeID = descriptor.TypeID

// StructInfo describes a named struct type found in source.
type StructInfo struct {
	ID     TypeID
	Fields []FieldInfo
	GoType *types.Named

	// Constructors lists New... functions returning T or *T.
	Constructors []string
	// Builders lists the builder types producing T.
	Builders []*BuilderInfo
	// BuilderFor is set when this type is itself a builder.
	BuilderFor *TypeID
}

// HasSetter reports whether any field has a setter.
func (s *StructInfo) HasSetter() bool {
	for i := range s.Fields {
		if s.Fields[i].Setter != "" {
			return true
		}
	}

	return false
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     types.Type        // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct

	Getter string // getter method on *T, empty when absent
	Setter string // setter method on *T, empty when absent
}

// Key returns the record key: the json tag name if present, otherwise the
// lower-camel field name. Skipped reports a `json:"-"` tag.
func (f *FieldInfo) Key() (key string, skipped bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}

	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}

	return match.LowerFirst(f.Name), false
}

// BuilderInfo describes a builder type.
type BuilderInfo struct {
	ID      TypeID
	Factory string // func() *B, empty when none was found
	Pointer bool   // Build returns *T
	// Methods maps a field name to the builder method setting it.
	Methods map[string]string
}

// TypeGraph holds all analyzed structs from loaded packages.
type TypeGraph struct {
	// Structs maps TypeID to StructInfo for all exported named structs.
	Structs map[TypeID]*StructInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Structs:  make(map[TypeID]*StructInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetStruct returns the StructInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetStruct(id TypeID) *StructInfo {
	return g.Structs[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Structs []TypeID // Exported structs defined in this package, sorted
}
