package descriptor_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visibility-mapper/examples/cars"
	"visibility-mapper/internal/descriptor"
)

func TestDeriveTable(t *testing.T) {
	reg := cars.NewRegistry()

	tests := []struct {
		sample    any
		strategy  descriptor.Strategy
		dflt      bool
		construct bool
		write     descriptor.Access
		read      descriptor.Access
	}{
		{cars.CarWithPublicField{}, descriptor.StrategyDirectFields, true, true, descriptor.AccessField, descriptor.AccessField},
		{cars.CarWithPrivateField{}, descriptor.StrategyDirectFields, true, true, descriptor.AccessNone, descriptor.AccessNone},
		{cars.CarWithGetter{}, descriptor.StrategyDirectFields, true, true, descriptor.AccessNone, descriptor.AccessGetter},
		{cars.CarWithSetter{}, descriptor.StrategySetterBased, true, true, descriptor.AccessSetter, descriptor.AccessNone},
		{cars.CarWithGetterSetter{}, descriptor.StrategySetterBased, true, true, descriptor.AccessSetter, descriptor.AccessGetter},
		{cars.CarWithConstructor{}, descriptor.StrategyConstructorBased, false, true, descriptor.AccessConstructor, descriptor.AccessNone},
		{cars.CarWithBuilderOnly{}, descriptor.StrategyBuilderBased, false, false, descriptor.AccessNone, descriptor.AccessNone},
		{cars.CarWithBuilderDefaultGetter{}, descriptor.StrategyBuilderBased, true, true, descriptor.AccessBoundField, descriptor.AccessGetter},
		{cars.CarWithBuilderHook{}, descriptor.StrategyBuilderBased, false, true, descriptor.AccessBuilder, descriptor.AccessNone},
	}

	for _, tt := range tests {
		name := reflect.TypeOf(tt.sample).Name()
		t.Run(name, func(t *testing.T) {
			d, err := reg.LookupValue(tt.sample)
			require.NoError(t, err)

			assert.Equal(t, tt.strategy, d.Strategy)
			assert.Equal(t, tt.dflt, d.DefaultConstructible)
			assert.Equal(t, tt.construct, d.CanConstruct())

			f, ok := d.Field("brand")
			require.True(t, ok)
			assert.Equal(t, tt.write, d.WriteAccess(f, false), "write")
			assert.Equal(t, tt.read, d.ReadAccess(f, false), "read")
		})
	}
}

func TestDeriveReveal(t *testing.T) {
	d, err := descriptor.Derive(cars.CarWithPrivateField{})
	require.NoError(t, err)

	f, ok := d.Field("brand")
	require.True(t, ok)
	assert.Equal(t, descriptor.VisibilityPrivate, f.Visibility)
	assert.Equal(t, descriptor.AccessRevealed, d.WriteAccess(f, true))
	assert.Equal(t, descriptor.AccessRevealed, d.ReadAccess(f, true))

	// Reveal does not create a construction path.
	b, err := descriptor.Derive(cars.CarWithBuilderOnly{}, descriptor.WithBuilder(cars.NewCarWithBuilderOnlyBuilder))
	require.NoError(t, err)

	f, _ = b.Field("brand")
	assert.Equal(t, descriptor.AccessNone, b.WriteAccess(f, true))
}

func TestDeriveTruck(t *testing.T) {
	d, err := descriptor.Derive(&cars.Truck{})
	require.NoError(t, err)

	assert.Equal(t, "cars.Truck", d.Name())
	assert.Equal(t, "visibility-mapper/examples/cars", d.ID.PkgPath)
	assert.Equal(t, []string{"brand", "model", "axles", "serial", "range"}, d.Keys())
	assert.Equal(t, descriptor.StrategySetterBased, d.Strategy)

	model, _ := d.Field("model")
	assert.Equal(t, "Model", model.Getter)
	assert.Equal(t, "SetModel", model.Setter)
	assert.False(t, model.SetterErr)

	axles, _ := d.Field("axles")
	assert.Equal(t, "SetAxles", axles.Setter)
	assert.True(t, axles.SetterErr)
	assert.Equal(t, descriptor.AccessSetter, d.WriteAccess(axles, false))
	assert.Equal(t, descriptor.AccessField, d.ReadAccess(axles, false))

	serial, _ := d.Field("serial")
	assert.Empty(t, serial.Getter, "Serial takes an argument")

	_, ok := d.Field("debug")
	assert.False(t, ok)
}

type keyed struct {
	ID   int    `json:"id"`
	name string
	URL  string
}

func (k keyed) Name() string { return k.name }

func (k keyed) GetURL() string { return k.URL }

func TestDeriveKeys(t *testing.T) {
	d, err := descriptor.Derive(keyed{}, descriptor.WithKey("name", "title"))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "url"}, d.Keys())

	f, _ := d.Field("title")
	assert.Equal(t, "Name", f.Getter)

	f, _ = d.Field("url")
	assert.Equal(t, "GetURL", f.Getter)
}

type clash struct {
	A string `json:"x"`
	B string `json:"x"`
}

type point struct {
	x, y int
}

func newPoint(x, y int) (point, error) {
	if x < 0 {
		return point{}, errors.New("negative")
	}

	return point{x: x, y: y}, nil
}

func TestDeriveInvalid(t *testing.T) {
	tests := []struct {
		name   string
		sample any
		opts   []descriptor.Option
	}{
		{"nil", nil, nil},
		{"not a struct", 42, nil},
		{"anonymous struct", struct{ A int }{}, nil},
		{"duplicate key", clash{}, nil},
		{"constructor not a func", point{}, []descriptor.Option{descriptor.WithConstructor(42, "x")}},
		{"constructor arity", point{}, []descriptor.Option{descriptor.WithConstructor(newPoint, "x")}},
		{"constructor unknown key", point{}, []descriptor.Option{descriptor.WithConstructor(newPoint, "x", "z")}},
		{"constructor key twice", point{}, []descriptor.Option{descriptor.WithConstructor(newPoint, "x", "x")}},
		{"constructor wrong result", point{}, []descriptor.Option{descriptor.WithConstructor(func(x, y int) int { return x }, "x", "y")}},
		{"constructor wrong param", point{}, []descriptor.Option{descriptor.WithConstructor(func(x string, y int) point { return point{} }, "x", "y")}},
		{"key for missing field", cars.CarWithPublicField{}, []descriptor.Option{descriptor.WithKey("Model", "model")}},
		{"hook without builder", point{}, []descriptor.Option{descriptor.WithBuilderHook()}},
		{"builder not a factory", point{}, []descriptor.Option{descriptor.WithBuilder(func(int) *point { return nil })}},
		{"builder without Build", point{}, []descriptor.Option{descriptor.WithBuilder(func() *point { return nil })}},
		{"builder builds other type", point{}, []descriptor.Option{descriptor.WithBuilder(cars.NewCarWithBuilderOnlyBuilder)}},
		{"constructor and builder", cars.CarWithBuilderOnly{}, []descriptor.Option{
			descriptor.WithConstructor(func() cars.CarWithBuilderOnly { return cars.CarWithBuilderOnly{} }),
			descriptor.WithBuilder(cars.NewCarWithBuilderOnlyBuilder),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := descriptor.Derive(tt.sample, tt.opts...)
			assert.ErrorIs(t, err, descriptor.ErrInvalidDescriptor)
		})
	}
}

func TestDeriveConstructor(t *testing.T) {
	d, err := descriptor.Derive(point{}, descriptor.WithConstructor(newPoint, "y", "x"))
	require.NoError(t, err)

	require.NotNil(t, d.Constructor)
	assert.False(t, d.Constructor.Pointer)
	assert.True(t, d.Constructor.ReturnErr)
	assert.Equal(t, []string{"y", "x"}, d.Constructor.Keys)

	x, _ := d.Field("x")
	assert.Equal(t, 1, x.CtorParam)
	assert.False(t, d.DefaultConstructible)

	d, err = descriptor.Derive(point{},
		descriptor.WithConstructor(newPoint, "x", "y"),
		descriptor.WithDefaultConstructor())
	require.NoError(t, err)
	assert.True(t, d.DefaultConstructible)

	d, err = descriptor.Derive(point{}, descriptor.WithoutDefaultConstructor())
	require.NoError(t, err)
	assert.False(t, d.CanConstruct())
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "DirectFields", descriptor.StrategyDirectFields.String())
	assert.Equal(t, "BuilderBased", descriptor.StrategyBuilderBased.String())
	assert.Equal(t, "Strategy(9)", descriptor.Strategy(9).String())
	assert.Equal(t, "bound-field", descriptor.AccessBoundField.String())
	assert.Equal(t, "private", descriptor.VisibilityPrivate.String())
}
