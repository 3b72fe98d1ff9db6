package mapper_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/MichaelAJay/go-logger"
	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visibility-mapper/examples/cars"
	"visibility-mapper/internal/codec"
	"visibility-mapper/internal/config"
	"visibility-mapper/internal/descriptor"
	"visibility-mapper/mapper"
)

func newMapper(t *testing.T, opts ...mapper.Option) *mapper.Mapper {
	t.Helper()

	m, err := mapper.New(cars.NewRegistry(), opts...)
	require.NoError(t, err)

	return m
}

func describe(t *testing.T, sample any) *descriptor.TypeDescriptor {
	t.Helper()

	d, err := cars.NewRegistry().LookupValue(sample)
	require.NoError(t, err)

	return d
}

func TestPublicFieldRoundTrip(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithPublicField{})

	out, err := m.Deserialize([]byte(`{"brand":"toyota"}`), d)
	require.NoError(t, err)

	car, ok := out.(*cars.CarWithPublicField)
	require.True(t, ok)
	assert.Equal(t, "toyota", car.Brand)

	data, err := m.Encode(car, d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"brand":"toyota"}`, string(data))
}

func TestPrivateFieldWithoutAccessor(t *testing.T) {
	text := []byte(`{"brand":"toyota"}`)

	t.Run("rejected", func(t *testing.T) {
		m := newMapper(t)
		_, err := m.Deserialize(text, describe(t, cars.CarWithPrivateField{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, mapper.ErrUnrecognizedKey)

		var me *mapper.MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, mapper.OpDeserialize, me.Op)
		assert.Equal(t, "cars.CarWithPrivateField", me.Type)
		assert.Equal(t, "brand", me.Key)
	})

	t.Run("revealed", func(t *testing.T) {
		m := newMapper(t, mapper.WithRevealPrivateFields(true))
		d := describe(t, cars.CarWithPrivateField{})

		out, err := m.Deserialize(text, d)
		require.NoError(t, err)

		data, err := m.Encode(out, d)
		require.NoError(t, err)
		assert.JSONEq(t, `{"brand":"toyota"}`, string(data))
	})
}

func TestSetterOnly(t *testing.T) {
	text := []byte(`{"brand":"toyota"}`)

	t.Run("serialize omits the field", func(t *testing.T) {
		m := newMapper(t)
		d := describe(t, cars.CarWithSetter{})

		out, err := m.Deserialize(text, d)
		require.NoError(t, err)
		assert.IsType(t, &cars.CarWithSetter{}, out)

		data, err := m.Encode(out, d)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("strict", func(t *testing.T) {
		m := newMapper(t, mapper.WithRequireReadablePath(true))
		d := describe(t, cars.CarWithSetter{})

		out, err := m.Deserialize(text, d)
		require.NoError(t, err)

		_, err = m.Serialize(out, d)
		require.Error(t, err)
		assert.ErrorIs(t, err, mapper.ErrNoReadablePath)

		var me *mapper.MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, []string{"brand"}, me.Keys)

		var errs errsx.Map
		require.ErrorAs(t, err, &errs)
		_, ok := errs["brand"]
		assert.True(t, ok, "expected key 'brand' in errsx.Map")
	})
}

func TestGetterOnly(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithGetter{})

	_, err := m.Deserialize([]byte(`{"brand":"toyota"}`), d)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrUnrecognizedKey)
	assert.Contains(t, err.Error(), "no write path")

	data, err := m.Encode(cars.NewCarWithGetter("toyota"), d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"brand":"toyota"}`, string(data))
}

func TestGetterSetterRoundTrip(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithGetterSetter{})

	out, err := m.Deserialize([]byte(`{"brand":"toyota"}`), d)
	require.NoError(t, err)
	assert.Equal(t, "toyota", out.(*cars.CarWithGetterSetter).GetBrand())

	data, err := m.Encode(out, d)
	require.NoError(t, err)
	assert.Equal(t, `{"brand":"toyota"}`, string(data))
}

func TestBuilderOnly(t *testing.T) {
	inputs := []string{`{}`, `{"brand":"toyota"}`, `{"color":"red"}`}

	for _, reveal := range []bool{false, true} {
		m := newMapper(t, mapper.WithRevealPrivateFields(reveal), mapper.WithIgnoreUnknownKeys(true))
		d := describe(t, cars.CarWithBuilderOnly{})

		for _, in := range inputs {
			_, err := m.Deserialize([]byte(in), d)
			assert.ErrorIs(t, err, mapper.ErrNoConstructionPath, "input %s, reveal %v", in, reveal)
		}
	}
}

func TestBuilderWithDefaultAndGetter(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithBuilderDefaultGetter{})

	out, err := m.Deserialize([]byte(`{"brand":"toyota"}`), d)
	require.NoError(t, err)

	car, ok := out.(*cars.CarWithBuilderDefaultGetter)
	require.True(t, ok)
	assert.Equal(t, "toyota", car.Brand())

	built := cars.NewCarWithBuilderDefaultGetterBuilder().Brand("toyota").Build()
	assert.Equal(t, built, *car)
}

// bus has a builder and default construction but no getter for brand.
type bus struct{ brand string }

type busBuilder struct{ brand string }

func newBusBuilder() *busBuilder { return &busBuilder{} }

func (b *busBuilder) Brand(brand string) *busBuilder {
	b.brand = brand

	return b
}

func (b *busBuilder) Build() bus { return bus{brand: b.brand} }

// van has a getter for brand but a builder that cannot set it.
type van struct{ brand string }

type vanBuilder struct{}

func newVanBuilder() *vanBuilder { return &vanBuilder{} }

func (b *vanBuilder) Build() van { return van{} }

func (v van) Brand() string { return v.brand }

func TestBuilderWithDefaultWritesGetterFields(t *testing.T) {
	m := newMapper(t)
	text := []byte(`{"brand":"toyota"}`)

	t.Run("no getter", func(t *testing.T) {
		d, err := descriptor.Derive(bus{}, descriptor.WithBuilder(newBusBuilder), descriptor.WithDefaultConstructor())
		require.NoError(t, err)

		_, err = m.Deserialize(text, d)
		assert.ErrorIs(t, err, mapper.ErrUnrecognizedKey)
	})

	t.Run("getter without builder method", func(t *testing.T) {
		d, err := descriptor.Derive(van{}, descriptor.WithBuilder(newVanBuilder), descriptor.WithDefaultConstructor())
		require.NoError(t, err)

		out, err := m.Deserialize(text, d)
		require.NoError(t, err)

		v, ok := out.(*van)
		require.True(t, ok)
		assert.Equal(t, "toyota", v.Brand())
	})
}

func TestConstructor(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithConstructor{})

	out, err := m.Deserialize([]byte(`{"brand":"toyota"}`), d)
	require.NoError(t, err)
	assert.Equal(t, cars.NewCarWithConstructor("toyota"), out)

	out, err = m.Deserialize([]byte(`{}`), d)
	require.NoError(t, err)
	assert.Equal(t, cars.NewCarWithConstructor(""), out)

	data, err := m.Encode(out, d)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	t.Run("strict", func(t *testing.T) {
		strict := newMapper(t, mapper.WithRequireReadablePath(true))

		_, err := strict.Serialize(cars.NewCarWithConstructor("x"), d)
		require.ErrorIs(t, err, mapper.ErrNoReadablePath)

		var me *mapper.MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, []string{"brand"}, me.Keys)
		assert.Equal(t,
			"serialize cars.CarWithConstructor: no readable path: brand: field brand is written but has no getter",
			err.Error())
	})
}

func TestHookedBuilder(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithBuilderHook{})

	out, err := m.Deserialize([]byte(`{"brand":"toyota"}`), d)
	require.NoError(t, err)

	want, err := cars.NewCarWithBuilderHookBuilder().WithBrand("toyota").Build()
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestIgnoreUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DebugLevel, Output: &buf})

	m := newMapper(t, mapper.WithIgnoreUnknownKeys(true), mapper.WithLogger(log))
	d := describe(t, cars.CarWithGetterSetter{})

	out, err := m.Deserialize([]byte(`{"color":"red","brand":"toyota"}`), d)
	require.NoError(t, err)
	assert.Equal(t, "toyota", out.(*cars.CarWithGetterSetter).GetBrand())
	assert.Contains(t, buf.String(), "Skipping key without write path")

	// Read-only keys are skipped the same way.
	_, err = m.Deserialize([]byte(`{"brand":"toyota"}`), describe(t, cars.CarWithGetter{}))
	assert.NoError(t, err)
}

func TestUnknownKeySuggestions(t *testing.T) {
	m := newMapper(t)

	_, err := m.Deserialize([]byte(`{"brnad":"toyota"}`), describe(t, cars.CarWithGetterSetter{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrUnrecognizedKey)

	var me *mapper.MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, []string{"brand"}, me.Suggestions)
	assert.Contains(t, err.Error(), `did you mean "brand"?`)

	_, err = m.Deserialize([]byte(`{"zzz":1}`), describe(t, cars.CarWithGetterSetter{}))
	require.ErrorAs(t, err, &me)
	assert.Empty(t, me.Suggestions)
}

func TestTypeMismatch(t *testing.T) {
	m := newMapper(t)

	tests := []struct {
		name   string
		sample any
		text   string
	}{
		{"number into string", cars.CarWithPublicField{}, `{"brand":42}`},
		{"fraction into int", cars.Truck{}, `{"axles":2.5}`},
		{"bad duration", cars.Truck{}, `{"range":"far"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Deserialize([]byte(tt.text), describe(t, tt.sample))
			assert.ErrorIs(t, err, mapper.ErrTypeMismatch)
		})
	}
}

func TestTruckKeyOrder(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.Truck{})

	out, err := m.Deserialize([]byte(`{"range":"90m","model":"fh16","brand":"volvo","axles":3}`), d)
	require.NoError(t, err)

	truck := out.(*cars.Truck)
	assert.Equal(t, "volvo", truck.Brand)
	assert.Equal(t, "fh16", truck.Model())
	assert.Equal(t, 3, truck.Axles)
	assert.Equal(t, 90*time.Minute, truck.Range)

	data, err := m.Encode(truck, d)
	require.NoError(t, err)
	assert.Equal(t, `{"brand":"volvo","model":"fh16","axles":3,"range":"1h30m0s"}`, string(data))
}

func TestSetterError(t *testing.T) {
	m := newMapper(t)

	_, err := m.Deserialize([]byte(`{"axles":1}`), describe(t, cars.Truck{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrInvalidInput)
	assert.ErrorIs(t, err, cars.ErrNoAxles)
}

func TestHiddenTruckSerial(t *testing.T) {
	text := []byte(`{"serial":"X-1"}`)

	m := newMapper(t)
	_, err := m.Deserialize(text, describe(t, cars.Truck{}))
	assert.ErrorIs(t, err, mapper.ErrUnrecognizedKey)

	m = newMapper(t, mapper.WithRevealPrivateFields(true))
	out, err := m.Deserialize(text, describe(t, cars.Truck{}))
	require.NoError(t, err)
	assert.Equal(t, "X-1", out.(*cars.Truck).Serial(false))
}

func TestFailOnEmpty(t *testing.T) {
	m := newMapper(t, mapper.WithFailOnEmpty(true))

	_, err := m.Serialize(&cars.CarWithPrivateField{}, describe(t, cars.CarWithPrivateField{}))
	assert.ErrorIs(t, err, mapper.ErrNoReadablePath)

	_, err = m.Serialize(cars.CarWithPublicField{}, describe(t, cars.CarWithPublicField{}))
	assert.NoError(t, err)
}

func TestSerializeInvalidInstance(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithPublicField{})

	tests := []struct {
		name     string
		instance any
	}{
		{"nil", nil},
		{"nil pointer", (*cars.CarWithPublicField)(nil)},
		{"other type", cars.CarWithGetter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Serialize(tt.instance, d)
			assert.ErrorIs(t, err, mapper.ErrInvalidInput)
		})
	}
}

func TestDeserializeMalformed(t *testing.T) {
	m := newMapper(t)
	d := describe(t, cars.CarWithPublicField{})

	for _, in := range []string{``, `[]`, `{"brand":`} {
		_, err := m.Deserialize([]byte(in), d)
		assert.ErrorIs(t, err, mapper.ErrInvalidInput, "input %q", in)
		assert.ErrorIs(t, err, codec.ErrMalformedRecord, "input %q", in)
	}

	_, err := m.Deserialize([]byte(`{}`), nil)
	assert.ErrorIs(t, err, mapper.ErrInvalidInput)
}

func TestMsgpackRoundTrip(t *testing.T) {
	m := newMapper(t, mapper.WithFormat(codec.FormatMsgpack))
	d := describe(t, cars.Truck{})

	truck := cars.Truck{Brand: "scania", Axles: 4, Range: 2 * time.Hour}
	truck.SetModel("r500")

	data, err := m.Encode(truck, d)
	require.NoError(t, err)

	out, err := m.Deserialize(data, d)
	require.NoError(t, err)
	assert.Equal(t, &truck, out)
}

func TestMarshalUnmarshal(t *testing.T) {
	m := newMapper(t)

	var car cars.CarWithGetterSetter
	require.NoError(t, m.Unmarshal([]byte(`{"brand":"toyota"}`), &car))
	assert.Equal(t, "toyota", car.GetBrand())

	data, err := m.Marshal(&car)
	require.NoError(t, err)
	assert.Equal(t, `{"brand":"toyota"}`, string(data))

	truck, err := mapper.Decode[cars.Truck](m, []byte(`{"brand":"man"}`))
	require.NoError(t, err)
	assert.Equal(t, "man", truck.Brand)

	err = m.Unmarshal([]byte(`{}`), car)
	assert.ErrorIs(t, err, mapper.ErrInvalidInput)

	type unregistered struct{ A int }

	err = m.Unmarshal([]byte(`{}`), &unregistered{})
	assert.ErrorIs(t, err, descriptor.ErrUnknownType)

	_, err = m.Marshal(unregistered{})
	assert.ErrorIs(t, err, descriptor.ErrUnknownType)
}

func TestNew(t *testing.T) {
	_, err := mapper.New(nil, mapper.WithFormat("yaml"))
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)

	cfg := config.Default()
	cfg.Mapper.RevealPrivateFields = true
	cfg.Mapper.Format = "MSGPACK"

	m, err := mapper.New(nil, mapper.WithConfig(cfg.Mapper))
	require.NoError(t, err)
	assert.True(t, m.Options().RevealPrivateFields)
	assert.Equal(t, codec.FormatMsgpack, m.Codec().Format())

	_, err = m.Marshal(cars.CarWithPublicField{})
	assert.ErrorIs(t, err, descriptor.ErrUnknownType)
}

func TestMappingErrorMessage(t *testing.T) {
	err := &mapper.MappingError{
		Op:          mapper.OpDeserialize,
		Type:        "cars.CarWithGetterSetter",
		Key:         "brnad",
		Suggestions: []string{"brand", "bran"},
		Err:         mapper.ErrUnrecognizedKey,
	}

	assert.Equal(t,
		`deserialize cars.CarWithGetterSetter key "brnad": unrecognized key (did you mean "brand" or "bran"?)`,
		err.Error())
	assert.True(t, errors.Is(err, mapper.ErrUnrecognizedKey))
}
