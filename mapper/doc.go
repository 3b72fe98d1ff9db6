// Package mapper converts between struct instances and flat encoded records
// under field-visibility rules.
//
// A type is described once by a descriptor.TypeDescriptor: which fields are
// exported, which have getters or setters, and whether instances come from
// zero values, a registered constructor or a registered builder. The Mapper
// then decides per key how to write it during deserialization and how to
// read it during serialization:
//
//	write: constructor parameter > hooked builder method > setter >
//	       exported field > getter-backed field of a builder type > revealed field
//	read:  getter > exported field > revealed field
//
// Keys with no write path fail with ErrUnrecognizedKey, types with no
// construction path fail with ErrNoConstructionPath, and fields with no read
// path are left out of the record (or fail with ErrNoReadablePath in strict
// mode). Revealing private fields lifts the visibility restriction.
//
// Example:
//
//	reg := descriptor.NewRegistry()
//	reg.MustRegister(cars.CarWithGetterSetter{})
//
//	m, err := mapper.New(reg)
//	if err != nil {
//		return err
//	}
//
//	var car cars.CarWithGetterSetter
//	if err := m.Unmarshal([]byte(`{"brand":"toyota"}`), &car); err != nil {
//		return err
//	}
package mapper
