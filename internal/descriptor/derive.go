package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"visibility-mapper/internal/match"
)

// BuildMethod is the builder method producing the instance.
const BuildMethod = "Build"

var errorType = reflect.TypeFor[error]()

// Derive builds the descriptor of sample's type. sample may be a value or a
// pointer to a named struct type.
func Derive(sample any, opts ...Option) (*TypeDescriptor, error) {
	if sample == nil {
		return nil, fmt.Errorf("%w: nil sample", ErrInvalidDescriptor)
	}

	return DeriveType(reflect.TypeOf(sample), opts...)
}

// DeriveType builds the descriptor of t, dereferencing pointers.
func DeriveType(t reflect.Type, opts ...Option) (*TypeDescriptor, error) {
	var cfg deriveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, fmt.Errorf("%w: %s is not a named struct type", ErrInvalidDescriptor, t)
	}

	for goName := range cfg.keys {
		if sf, ok := t.FieldByName(goName); !ok || len(sf.Index) != 1 {
			return nil, fmt.Errorf("%w: %s has no field %s to bind a key to", ErrInvalidDescriptor, t.Name(), goName)
		}
	}

	fields, err := deriveFields(t, cfg.keys)
	if err != nil {
		return nil, err
	}

	d := &TypeDescriptor{
		ID:     TypeID{PkgPath: t.PkgPath(), Name: t.Name()},
		Type:   t,
		Fields: fields,
	}

	methods := methodsOf(reflect.PointerTo(t))
	for i := range d.Fields {
		bindAccessors(&d.Fields[i], methods)
	}

	if cfg.ctor != nil && cfg.builder != nil {
		return nil, fmt.Errorf("%w: %s: both a constructor and a builder are registered", ErrInvalidDescriptor, d.Name())
	}

	if cfg.ctor != nil {
		if d.Constructor, err = deriveConstructor(d, cfg.ctor, cfg.ctorKeys); err != nil {
			return nil, err
		}
	}

	switch {
	case cfg.builder != nil:
		if d.Builder, err = deriveBuilder(d, cfg.builder); err != nil {
			return nil, err
		}

		d.Builder.Hook = cfg.hook
	case cfg.hook:
		return nil, fmt.Errorf("%w: %s: builder hook without a builder", ErrInvalidDescriptor, d.Name())
	}

	d.DefaultConstructible = d.Constructor == nil && d.Builder == nil
	if cfg.defaultCtor != nil {
		d.DefaultConstructible = *cfg.defaultCtor
	}

	d.Strategy = strategyOf(d)

	return d, nil
}

func deriveFields(t reflect.Type, keys map[string]string) ([]Field, error) {
	fields := make([]Field, 0, t.NumField())
	seen := make(map[string]string, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)

		key, ok := recordKey(sf, keys)
		if !ok {
			continue
		}

		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s: fields %s and %s share key %q",
				ErrInvalidDescriptor, t.Name(), prev, sf.Name, key)
		}

		seen[key] = sf.Name

		vis := VisibilityPrivate
		if sf.IsExported() {
			vis = VisibilityPublic
		}

		fields = append(fields, Field{
			Key:        key,
			GoName:     sf.Name,
			Type:       sf.Type,
			Index:      i,
			Visibility: vis,
			CtorParam:  -1,
		})
	}

	return fields, nil
}

// recordKey returns the key for sf; ok is false for fields tagged `json:"-"`.
func recordKey(sf reflect.StructField, keys map[string]string) (string, bool) {
	if key, ok := keys[sf.Name]; ok {
		return key, true
	}

	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}

	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}

	return match.LowerFirst(sf.Name), true
}

func methodsOf(t reflect.Type) []reflect.Method {
	methods := make([]reflect.Method, t.NumMethod())
	for i := range methods {
		methods[i] = t.Method(i)
	}

	return methods
}

// bindAccessors records the first getter and setter found for f. Methods come
// sorted by name, so Brand wins over GetBrand.
func bindAccessors(f *Field, methods []reflect.Method) {
	for _, m := range methods {
		switch {
		case f.Getter == "" && isGetter(m, f):
			f.Getter = m.Name
		case f.Setter == "" && isSetter(m, f):
			f.Setter = m.Name
			f.SetterErr = m.Type.NumOut() == 1
		}
	}
}

// names reports whether method names f, optionally behind one of prefixes.
func names(method string, f *Field, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if subject, ok := match.AccessorSubject(method, prefix); ok && match.SameIdent(subject, f.GoName) {
			return true
		}
	}

	return false
}

// isGetter matches func (T) Brand() string. m.Type includes the receiver.
func isGetter(m reflect.Method, f *Field) bool {
	mt := m.Type

	return mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0) == f.Type &&
		names(m.Name, f, "", match.PrefixGet)
}

// isSetter matches func (*T) SetBrand(string) [error].
func isSetter(m reflect.Method, f *Field) bool {
	mt := m.Type
	if mt.NumIn() != 2 || mt.In(1) != f.Type {
		return false
	}

	if mt.NumOut() > 1 || (mt.NumOut() == 1 && mt.Out(0) != errorType) {
		return false
	}

	return names(m.Name, f, match.PrefixSet)
}

// isBuilderMethod matches func (*B) Brand(string) *B.
func isBuilderMethod(m reflect.Method, f *Field, bt reflect.Type) bool {
	mt := m.Type

	return mt.NumIn() == 2 && mt.In(1) == f.Type && mt.NumOut() == 1 && mt.Out(0) == bt &&
		names(m.Name, f, "", match.PrefixWith, match.PrefixSet)
}

// producedType checks that out is T or *T and reports which.
func producedType(d *TypeDescriptor, out reflect.Type) (pointer bool, ok bool) {
	switch out {
	case d.Type:
		return false, true
	case reflect.PointerTo(d.Type):
		return true, true
	default:
		return false, false
	}
}

// trailingError validates an optional trailing error result of ft.
func trailingError(ft reflect.Type) (bool, bool) {
	switch ft.NumOut() {
	case 1:
		return false, true
	case 2:
		return true, ft.Out(1) == errorType
	default:
		return false, false
	}
}

func deriveConstructor(d *TypeDescriptor, fn any, keys []string) (*Constructor, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %s: constructor is not a function", ErrInvalidDescriptor, d.Name())
	}

	ft := fv.Type()
	if ft.IsVariadic() || ft.NumIn() != len(keys) {
		return nil, fmt.Errorf("%w: %s: constructor takes %d parameters, %d keys given",
			ErrInvalidDescriptor, d.Name(), ft.NumIn(), len(keys))
	}

	returnErr, ok := trailingError(ft)
	if !ok {
		return nil, fmt.Errorf("%w: %s: constructor must return %s or *%s, optionally with an error",
			ErrInvalidDescriptor, d.Name(), d.ID.Name, d.ID.Name)
	}

	pointer, ok := producedType(d, ft.Out(0))
	if !ok {
		return nil, fmt.Errorf("%w: %s: constructor returns %s", ErrInvalidDescriptor, d.Name(), ft.Out(0))
	}

	for i, key := range keys {
		f, found := d.Field(key)
		if !found {
			return nil, fmt.Errorf("%w: %s: constructor parameter %d bound to unknown key %q",
				ErrInvalidDescriptor, d.Name(), i, key)
		}

		if f.CtorParam >= 0 {
			return nil, fmt.Errorf("%w: %s: key %q bound to constructor parameters %d and %d",
				ErrInvalidDescriptor, d.Name(), key, f.CtorParam, i)
		}

		if ft.In(i) != f.Type {
			return nil, fmt.Errorf("%w: %s: constructor parameter %d is %s, field %s is %s",
				ErrInvalidDescriptor, d.Name(), i, ft.In(i), f.GoName, f.Type)
		}

		f.CtorParam = i
	}

	return &Constructor{
		Func:      fv,
		Keys:      append([]string(nil), keys...),
		Pointer:   pointer,
		ReturnErr: returnErr,
	}, nil
}

func deriveBuilder(d *TypeDescriptor, factory any) (*Builder, error) {
	fv := reflect.ValueOf(factory)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %s: builder factory is not a function", ErrInvalidDescriptor, d.Name())
	}

	ft := fv.Type()
	if ft.NumIn() != 0 || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Pointer {
		return nil, fmt.Errorf("%w: %s: builder factory must be func() *Builder", ErrInvalidDescriptor, d.Name())
	}

	bt := ft.Out(0)

	build, ok := bt.MethodByName(BuildMethod)
	if !ok || build.Type.NumIn() != 1 {
		return nil, fmt.Errorf("%w: %s: builder %s has no %s() method", ErrInvalidDescriptor, d.Name(), bt, BuildMethod)
	}

	returnErr, ok := trailingError(build.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %s.%s has unexpected results", ErrInvalidDescriptor, d.Name(), bt, BuildMethod)
	}

	pointer, ok := producedType(d, build.Type.Out(0))
	if !ok {
		return nil, fmt.Errorf("%w: %s: %s.%s returns %s", ErrInvalidDescriptor, d.Name(), bt, BuildMethod, build.Type.Out(0))
	}

	methods := methodsOf(bt)
	for i := range d.Fields {
		f := &d.Fields[i]
		for _, m := range methods {
			if m.Name != BuildMethod && isBuilderMethod(m, f, bt) {
				f.BuilderMethod = m.Name

				break
			}
		}
	}

	return &Builder{
		Factory:   fv,
		Type:      bt,
		Build:     BuildMethod,
		Pointer:   pointer,
		ReturnErr: returnErr,
	}, nil
}

func strategyOf(d *TypeDescriptor) Strategy {
	switch {
	case d.Constructor != nil:
		return StrategyConstructorBased
	case d.Builder != nil:
		return StrategyBuilderBased
	}

	for i := range d.Fields {
		if d.Fields[i].Setter != "" {
			return StrategySetterBased
		}
	}

	return StrategyDirectFields
}
