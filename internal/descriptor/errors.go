package descriptor

import "errors"

var (
	ErrInvalidDescriptor = errors.New("invalid type descriptor")
	ErrDuplicateType     = errors.New("type already registered")
	ErrUnknownType       = errors.New("type not registered")
)
