// Package match relates encoded record keys to Go identifiers.
//
// Accessor discovery compares normalized identifiers, so a field "modelID"
// is served by "ModelId", "GetModelID" or "SetModelID". Unknown keys are
// ranked against the known ones by edit distance to build "did you mean"
// hints.
package match
