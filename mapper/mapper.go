package mapper

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/MichaelAJay/go-logger"

	"visibility-mapper/internal/codec"
	"visibility-mapper/internal/descriptor"
)

// Mapper converts instances of described types to and from encoded records.
// It holds no mutable state and is safe for concurrent use.
type Mapper struct {
	opts  Options
	codec codec.Codec
	reg   *descriptor.Registry
}

// New creates a Mapper. reg is only needed by Marshal, Unmarshal and Decode,
// which look descriptors up by type; it may be nil otherwise.
func New(reg *descriptor.Registry, opts ...Option) (*Mapper, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	format, err := codec.ParseFormat(string(o.Format))
	if err != nil {
		return nil, err
	}

	o.Format = format

	c, err := codec.New(format)
	if err != nil {
		return nil, err
	}

	return &Mapper{opts: o, codec: c, reg: reg}, nil
}

// Options returns the options the mapper was built with.
func (m *Mapper) Options() Options {
	return m.opts
}

// Codec returns the record codec.
func (m *Mapper) Codec() codec.Codec {
	return m.codec
}

func (m *Mapper) lookup(op Op, t reflect.Type) (*descriptor.TypeDescriptor, error) {
	if m.reg == nil {
		return nil, &MappingError{Op: op, Type: fmt.Sprint(t), Err: descriptor.ErrUnknownType}
	}

	d, err := m.reg.Lookup(t)
	if err != nil {
		return nil, &MappingError{Op: op, Err: err}
	}

	return d, nil
}

func (m *Mapper) debug(msg string, fields ...logger.Field) {
	if m.opts.Logger != nil {
		m.opts.Logger.Debug(msg, fields...)
	}
}

func fail(op Op, d *descriptor.TypeDescriptor, key string, err error) *MappingError {
	return &MappingError{Op: op, Type: d.Name(), Key: key, Err: err}
}

// settable returns fv itself when it can be set, otherwise a view of the same
// memory that can. fv must be addressable.
func settable(fv reflect.Value) reflect.Value {
	if fv.CanSet() {
		return fv
	}

	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
}
