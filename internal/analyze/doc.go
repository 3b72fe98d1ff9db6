// Package analyze inspects Go source for struct types and the accessors a
// visibility mapper could use on them.
//
// It uses golang.org/x/tools/go/packages with go/types to find, for every
// exported struct:
//   - its fields, exported or not, and the record key of each
//   - getters and setters in the method set of *T
//   - New... functions returning T or *T
//   - builder types whose Build method returns T or *T
//
// Propose turns that into the registration a descriptor would need, with
// diagnostics for fields no mapper can reach.
package analyze
