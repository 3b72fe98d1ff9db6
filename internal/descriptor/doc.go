// Package descriptor derives and stores type descriptors: for one struct
// type, which record keys can be written (deserialization) and which can
// be read back (serialization), and how an instance gets constructed.
//
// Go has no field visibility finer than exported/unexported, so the
// accessors are discovered from method sets:
//
//	Brand() T or GetBrand() T    getter (value or pointer receiver)
//	SetBrand(T) [error]          setter (pointer receiver)
//
// Constructors and builders cannot be discovered and are registered
// explicitly with WithConstructor and WithBuilder. Descriptors are built
// once, at registration, and kept in a Registry keyed by reflect.Type.
//
// # Construction strategies
//
//   - DirectFields: default construction, exported (or revealed) fields.
//   - SetterBased: default construction, setter methods.
//   - ConstructorBased: a registered constructor is the write.
//   - BuilderBased: a registered builder; it is only driven by the mapper
//     when registered with WithBuilderHook. Without the hook the type needs
//     a default construction path, in which case fields that have a getter
//     are written directly after it.
package descriptor
