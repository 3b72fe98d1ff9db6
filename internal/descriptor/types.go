package descriptor

import (
	"reflect"

	"visibility-mapper/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "visibility-mapper/examples/cars"
	Name    string // e.g., "CarWithGetter"
}

// String returns the qualified name, e.g. "cars.CarWithGetter".
func (t TypeID) String() string {
	return common.QualifiedName(t.PkgPath, t.Name)
}

// Visibility of a struct field.
type Visibility int

const (
	VisibilityPublic  Visibility = iota // exported
	VisibilityPrivate                   // unexported
)

// String returns "public" or "private".
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

//go:generate go tool stringer -type=Strategy -trimprefix=Strategy -output=strategy_string.go

// Strategy is how instances of a type come into existence and get their state.
type Strategy int

const (
	StrategyDirectFields Strategy = iota
	StrategySetterBased
	StrategyConstructorBased
	StrategyBuilderBased
)

// Access names the path through which a field value is written or read.
type Access int

const (
	AccessNone        Access = iota
	AccessField              // exported field
	AccessGetter             // getter method
	AccessSetter             // setter method
	AccessConstructor        // constructor parameter
	AccessBuilder            // builder method, builder driven by the mapper
	AccessBoundField         // getter-backed field of a builder type, written after default construction
	AccessRevealed           // unexported field, reveal mode only
)

// String returns a short name of the access path.
func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessField:
		return "field"
	case AccessGetter:
		return "getter"
	case AccessSetter:
		return "setter"
	case AccessConstructor:
		return "constructor"
	case AccessBuilder:
		return "builder"
	case AccessBoundField:
		return "bound-field"
	case AccessRevealed:
		return "revealed"
	default:
		return common.UnknownStr
	}
}

// Field describes one struct field and the accessors found for it.
type Field struct {
	Key        string       // record key: json tag name or lower-camel Go name
	GoName     string       // Go field name
	Type       reflect.Type // field type
	Index      int          // struct field index
	Visibility Visibility

	Getter        string // getter method name, empty when absent
	Setter        string // setter method name, empty when absent
	SetterErr     bool   // setter returns an error
	BuilderMethod string // builder method name, empty when absent
	CtorParam     int    // constructor parameter position, -1 when absent
}

// Exported reports whether the field is exported.
func (f *Field) Exported() bool {
	return f.Visibility == VisibilityPublic
}

// Constructor is a registered parameterized constructor.
type Constructor struct {
	Func      reflect.Value
	Keys      []string // record key bound to each parameter, in order
	Pointer   bool     // returns *T rather than T
	ReturnErr bool     // second result is an error
}

// Builder is a registered builder.
type Builder struct {
	Factory   reflect.Value // func() *B
	Type      reflect.Type  // *B
	Build     string        // name of the build method
	Pointer   bool          // build method returns *T rather than T
	ReturnErr bool          // build method's second result is an error
	// Hook lets the mapper drive the builder during deserialization.
	Hook bool
}

// TypeDescriptor is the visibility model of one struct type.
type TypeDescriptor struct {
	ID     TypeID
	Type   reflect.Type // struct type, never a pointer
	Fields []Field      // declaration order

	DefaultConstructible bool
	Strategy             Strategy
	Constructor          *Constructor
	Builder              *Builder
}

// Name returns the qualified type name.
func (d *TypeDescriptor) Name() string {
	return d.ID.String()
}

// Field returns the field bound to key.
func (d *TypeDescriptor) Field(key string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			return &d.Fields[i], true
		}
	}

	return nil, false
}

// Keys returns the record keys of all fields in declaration order.
func (d *TypeDescriptor) Keys() []string {
	keys := make([]string, len(d.Fields))
	for i := range d.Fields {
		keys[i] = d.Fields[i].Key
	}

	return keys
}

// HookedBuilder reports whether the mapper may drive the builder.
func (d *TypeDescriptor) HookedBuilder() bool {
	return d.Builder != nil && d.Builder.Hook
}

// CanConstruct reports whether any construction path exists.
func (d *TypeDescriptor) CanConstruct() bool {
	return d.DefaultConstructible || d.Constructor != nil || d.HookedBuilder()
}

// WriteAccess returns the path deserialization uses to populate f.
// Construction-time paths (constructor, hooked builder) win over
// post-construction ones; reveal opens unexported fields as a last resort.
func (d *TypeDescriptor) WriteAccess(f *Field, reveal bool) Access {
	if !d.CanConstruct() {
		return AccessNone
	}

	switch {
	case d.Constructor != nil && f.CtorParam >= 0:
		return AccessConstructor
	case d.HookedBuilder() && f.BuilderMethod != "":
		return AccessBuilder
	case f.Setter != "":
		return AccessSetter
	case f.Exported():
		return AccessField
	case d.Builder != nil && d.DefaultConstructible && f.Getter != "":
		return AccessBoundField
	case reveal:
		return AccessRevealed
	default:
		return AccessNone
	}
}

// ReadAccess returns the path serialization uses to emit f.
func (d *TypeDescriptor) ReadAccess(f *Field, reveal bool) Access {
	switch {
	case f.Getter != "":
		return AccessGetter
	case f.Exported():
		return AccessField
	case reveal:
		return AccessRevealed
	default:
		return AccessNone
	}
}
