package mapper

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/MichaelAJay/go-logger"

	"visibility-mapper/internal/codec"
	"visibility-mapper/internal/descriptor"
	"visibility-mapper/internal/match"
	"visibility-mapper/primitive"
)

const maxSuggestions = 3

// write is one decoded value and the path it takes into the instance.
type write struct {
	field  *descriptor.Field
	access descriptor.Access
	value  reflect.Value
}

// Deserialize decodes text and builds an instance of d's type from it. The
// result is always a pointer, *T.
func (m *Mapper) Deserialize(text []byte, d *descriptor.TypeDescriptor) (any, error) {
	if d == nil {
		return nil, &MappingError{Op: OpDeserialize, Err: fmt.Errorf("%w: nil descriptor", ErrInvalidInput)}
	}

	rec, err := m.codec.Decode(text)
	if err != nil {
		return nil, fail(OpDeserialize, d, "", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	return m.DeserializeRecord(rec, d)
}

// DeserializeRecord builds an instance of d's type from an already decoded
// record.
func (m *Mapper) DeserializeRecord(rec codec.Record, d *descriptor.TypeDescriptor) (any, error) {
	if d == nil {
		return nil, &MappingError{Op: OpDeserialize, Err: fmt.Errorf("%w: nil descriptor", ErrInvalidInput)}
	}

	if !d.CanConstruct() {
		return nil, fail(OpDeserialize, d, "", ErrNoConstructionPath)
	}

	writes, err := m.plan(rec, d)
	if err != nil {
		return nil, err
	}

	inst, err := construct(d, writes)
	if err != nil {
		return nil, err
	}

	if err := populate(inst, d, writes); err != nil {
		return nil, err
	}

	return inst.Interface(), nil
}

// plan resolves the write path and decoded value of every record key.
func (m *Mapper) plan(rec codec.Record, d *descriptor.TypeDescriptor) ([]write, error) {
	reveal := m.opts.RevealPrivateFields
	keys := rec.Keys()
	writes := make([]write, 0, len(keys))

	for _, key := range keys {
		f, known := d.Field(key)

		access := descriptor.AccessNone
		if known {
			access = d.WriteAccess(f, reveal)
		}

		if access == descriptor.AccessNone {
			if m.opts.IgnoreUnknownKeys {
				m.debug("Skipping key without write path",
					logger.Field{Key: "type", Value: d.Name()},
					logger.Field{Key: "key", Value: key})

				continue
			}

			return nil, m.unrecognized(d, key, f)
		}

		raw, _ := rec.Get(key)

		value, err := primitive.Decode(raw, f.Type)
		if err != nil {
			return nil, fail(OpDeserialize, d, key, fmt.Errorf("%w: %w", ErrTypeMismatch, err))
		}

		writes = append(writes, write{field: f, access: access, value: value})
	}

	return writes, nil
}

func (m *Mapper) unrecognized(d *descriptor.TypeDescriptor, key string, f *descriptor.Field) *MappingError {
	err := fail(OpDeserialize, d, key, ErrUnrecognizedKey)
	if f != nil {
		err.Err = fmt.Errorf("%w: field %s has no write path", ErrUnrecognizedKey, f.GoName)

		return err
	}

	var writable []string
	for i := range d.Fields {
		if d.WriteAccess(&d.Fields[i], m.opts.RevealPrivateFields) != descriptor.AccessNone {
			writable = append(writable, d.Fields[i].Key)
		}
	}

	err.Suggestions = match.Suggest(key, writable, maxSuggestions).Keys()

	return err
}

// construct creates the instance through the descriptor's construction path
// and returns a *T.
func construct(d *descriptor.TypeDescriptor, writes []write) (reflect.Value, error) {
	switch {
	case d.Constructor != nil:
		return callConstructor(d, writes)
	case d.HookedBuilder():
		return driveBuilder(d, writes)
	default:
		return reflect.New(d.Type), nil
	}
}

func callConstructor(d *descriptor.TypeDescriptor, writes []write) (reflect.Value, error) {
	ctor := d.Constructor
	ft := ctor.Func.Type()

	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		args[i] = reflect.Zero(ft.In(i))
	}

	for _, w := range writes {
		if w.access == descriptor.AccessConstructor {
			args[w.field.CtorParam] = w.value
		}
	}

	return produced(d, ctor.Func.Call(args), ctor.Pointer, ctor.ReturnErr, "constructor")
}

func driveBuilder(d *descriptor.TypeDescriptor, writes []write) (reflect.Value, error) {
	b := d.Builder
	bv := b.Factory.Call(nil)[0]

	if bv.IsNil() {
		return reflect.Value{}, fail(OpDeserialize, d, "", fmt.Errorf("%w: builder factory returned nil", ErrInvalidInput))
	}

	for _, w := range writes {
		if w.access == descriptor.AccessBuilder {
			bv = bv.MethodByName(w.field.BuilderMethod).Call([]reflect.Value{w.value})[0]
		}
	}

	return produced(d, bv.MethodByName(b.Build).Call(nil), b.Pointer, b.ReturnErr, "builder")
}

// produced turns the results of a constructor or build call into a *T.
func produced(d *descriptor.TypeDescriptor, out []reflect.Value, pointer, returnErr bool, what string) (reflect.Value, error) {
	if returnErr && !out[1].IsNil() {
		err, _ := out[1].Interface().(error)

		return reflect.Value{}, fail(OpDeserialize, d, "", fmt.Errorf("%w: %s: %w", ErrInvalidInput, what, err))
	}

	if pointer {
		if out[0].IsNil() {
			return reflect.Value{}, fail(OpDeserialize, d, "", fmt.Errorf("%w: %s returned nil", ErrInvalidInput, what))
		}

		return out[0], nil
	}

	inst := reflect.New(d.Type)
	inst.Elem().Set(out[0])

	return inst, nil
}

// populate applies the writes that happen after construction.
func populate(inst reflect.Value, d *descriptor.TypeDescriptor, writes []write) error {
	elem := inst.Elem()

	for _, w := range writes {
		switch w.access {
		case descriptor.AccessSetter:
			out := inst.MethodByName(w.field.Setter).Call([]reflect.Value{w.value})
			if w.field.SetterErr && !out[0].IsNil() {
				err, _ := out[0].Interface().(error)

				return fail(OpDeserialize, d, w.field.Key, fmt.Errorf("%w: %s: %w", ErrInvalidInput, w.field.Setter, err))
			}
		case descriptor.AccessField, descriptor.AccessBoundField, descriptor.AccessRevealed:
			settable(elem.Field(w.field.Index)).Set(w.value)
		case descriptor.AccessConstructor, descriptor.AccessBuilder:
		default:
			return fail(OpDeserialize, d, w.field.Key, errors.New("unexpected write path "+w.access.String()))
		}
	}

	return nil
}

// Unmarshal deserializes text into v, which must be a non-nil pointer to a
// registered type.
func (m *Mapper) Unmarshal(text []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &MappingError{Op: OpDeserialize, Err: fmt.Errorf("%w: Unmarshal needs a non-nil pointer, got %T", ErrInvalidInput, v)}
	}

	d, err := m.lookup(OpDeserialize, rv.Type())
	if err != nil {
		return err
	}

	if rv.Elem().Type() != d.Type {
		return fail(OpDeserialize, d, "", fmt.Errorf("%w: Unmarshal into %T", ErrInvalidInput, v))
	}

	out, err := m.Deserialize(text, d)
	if err != nil {
		return err
	}

	rv.Elem().Set(reflect.ValueOf(out).Elem())

	return nil
}

// Decode deserializes text into a new T using the mapper's registry.
func Decode[T any](m *Mapper, text []byte) (*T, error) {
	d, err := m.lookup(OpDeserialize, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	out, err := m.Deserialize(text, d)
	if err != nil {
		return nil, err
	}

	return out.(*T), nil
}
