package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
)

var ErrConversion = errors.New("value cannot be converted")

// Decode converts a decoded record value into a value of type to. nil yields
// the zero value; pointer targets are allocated.
func Decode(raw any, to reflect.Type) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(to), nil
	}

	if to.Kind() == reflect.Pointer {
		elem, err := Decode(raw, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil
	}

	switch FromReflectType(to) {
	case KindTime:
		s, ok := raw.(string)
		if !ok {
			return mismatch(raw, to)
		}

		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q is not an RFC 3339 time: %w", ErrConversion, s, err)
		}

		return reflect.ValueOf(t), nil
	case KindDuration:
		if s, ok := raw.(string); ok {
			d, err := time.ParseDuration(s)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%w: %q is not a duration: %w", ErrConversion, s, err)
			}

			return reflect.ValueOf(d), nil
		}
	case 0:
		if rv := reflect.ValueOf(raw); rv.Type().AssignableTo(to) {
			return rv, nil
		}

		return mismatch(raw, to)
	}

	return decodeKind(raw, to)
}

// decodeKind converts by the underlying reflect.Kind, which also covers named
// types such as `type Brand string`.
func decodeKind(raw any, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to).Elem()
	rv := reflect.ValueOf(raw)

	switch to.Kind() {
	case reflect.String:
		if rv.Kind() != reflect.String {
			return mismatch(raw, to)
		}

		out.SetString(rv.String())
	case reflect.Bool:
		if rv.Kind() != reflect.Bool {
			return mismatch(raw, to)
		}

		out.SetBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := asInt(rv)
		if !ok || out.OverflowInt(n) {
			return outOfRange(raw, to)
		}

		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := asUint(rv)
		if !ok || out.OverflowUint(n) {
			return outOfRange(raw, to)
		}

		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := asFloat(rv)
		if !ok || out.OverflowFloat(f) {
			return outOfRange(raw, to)
		}

		out.SetFloat(f)
	default:
		return mismatch(raw, to)
	}

	return out, nil
}

func asInt(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()

		return int64(u), u <= math.MaxInt64
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}

		return int64(f), true
	default:
		return 0, false
	}
}

func asUint(rv reflect.Value) (uint64, bool) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()

		return uint64(n), n >= 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}

		return uint64(f), true
	default:
		return 0, false
	}
}

func asFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

func mismatch(raw any, to reflect.Type) (reflect.Value, error) {
	return reflect.Value{}, fmt.Errorf("%w: %T to %s", ErrConversion, raw, to)
}

func outOfRange(raw any, to reflect.Type) (reflect.Value, error) {
	return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrConversion, raw, to)
}

// Encode turns v into a record value: time.Time becomes RFC 3339 text,
// time.Duration its String form, nil pointers nil. Other values are
// returned as they are.
func Encode(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	switch FromReflectType(v.Type()) {
	case KindTime:
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	case KindDuration:
		return v.Interface().(time.Duration).String()
	}

	return v.Interface()
}
