package mapper

import (
	"fmt"
	"reflect"

	"github.com/MichaelAJay/go-logger"
	"github.com/hengadev/errsx"

	"visibility-mapper/internal/codec"
	"visibility-mapper/internal/descriptor"
	"visibility-mapper/primitive"
)

// Serialize reads every readable field of instance into a record, in
// descriptor order. instance may be a T or a *T.
func (m *Mapper) Serialize(instance any, d *descriptor.TypeDescriptor) (codec.Record, error) {
	if d == nil {
		return nil, &MappingError{Op: OpSerialize, Err: fmt.Errorf("%w: nil descriptor", ErrInvalidInput)}
	}

	rv, err := addressable(instance, d)
	if err != nil {
		return nil, err
	}

	reveal := m.opts.RevealPrivateFields
	rec := codec.NewRecord()

	var unreadable errsx.Map
	var keys []string

	for i := range d.Fields {
		f := &d.Fields[i]

		var value reflect.Value

		switch d.ReadAccess(f, reveal) {
		case descriptor.AccessGetter:
			value = rv.Addr().MethodByName(f.Getter).Call(nil)[0]
		case descriptor.AccessField:
			value = rv.Field(f.Index)
		case descriptor.AccessRevealed:
			value = settable(rv.Field(f.Index))
		default:
			if m.opts.RequireReadablePath && d.WriteAccess(f, reveal) != descriptor.AccessNone {
				unreadable.Set(f.Key, fmt.Errorf("field %s is written but has no getter", f.GoName))
				keys = append(keys, f.Key)
			}

			m.debug("Omitting field without read path",
				logger.Field{Key: "type", Value: d.Name()},
				logger.Field{Key: "key", Value: f.Key})

			continue
		}

		rec.Set(f.Key, primitive.Encode(value))
	}

	if !unreadable.IsEmpty() {
		return nil, &MappingError{
			Op:   OpSerialize,
			Type: d.Name(),
			Keys: keys,
			Err:  &unreadableError{keys: keys, fields: unreadable},
		}
	}

	if m.opts.FailOnEmpty && len(rec.Keys()) == 0 {
		return nil, fail(OpSerialize, d, "", fmt.Errorf("%w: no field is readable", ErrNoReadablePath))
	}

	return rec, nil
}

// addressable returns the struct value behind instance, copying it when it
// cannot be addressed.
func addressable(instance any, d *descriptor.TypeDescriptor) (reflect.Value, error) {
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return reflect.Value{}, fail(OpSerialize, d, "", fmt.Errorf("%w: nil instance", ErrInvalidInput))
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fail(OpSerialize, d, "", fmt.Errorf("%w: nil instance", ErrInvalidInput))
		}

		rv = rv.Elem()
	}

	if rv.Type() != d.Type {
		return reflect.Value{}, fail(OpSerialize, d, "", fmt.Errorf("%w: %s is not %s", ErrInvalidInput, rv.Type(), d.Type))
	}

	if !rv.CanAddr() {
		cp := reflect.New(d.Type).Elem()
		cp.Set(rv)
		rv = cp
	}

	return rv, nil
}

// Encode serializes instance and encodes the record with the mapper's codec.
func (m *Mapper) Encode(instance any, d *descriptor.TypeDescriptor) ([]byte, error) {
	rec, err := m.Serialize(instance, d)
	if err != nil {
		return nil, err
	}

	data, err := m.codec.Encode(rec)
	if err != nil {
		return nil, fail(OpSerialize, d, "", err)
	}

	return data, nil
}

// Marshal encodes v, looking its descriptor up in the mapper's registry.
func (m *Mapper) Marshal(v any) ([]byte, error) {
	d, err := m.lookup(OpSerialize, reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}

	return m.Encode(v, d)
}
