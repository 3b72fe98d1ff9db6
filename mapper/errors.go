package mapper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hengadev/errsx"
)

var (
	ErrUnrecognizedKey    = errors.New("unrecognized key")
	ErrNoConstructionPath = errors.New("no construction path")
	ErrNoReadablePath     = errors.New("no readable path")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrInvalidInput       = errors.New("invalid input")
)

// Op names the mapper operation that failed.
type Op string

const (
	OpDeserialize Op = "deserialize"
	OpSerialize   Op = "serialize"
)

// MappingError is returned by every Mapper operation. Err wraps one of the
// package sentinels.
type MappingError struct {
	Op   Op
	Type string // qualified type name
	Key  string // offending key, empty for type-level failures
	// Keys lists every offending key of an aggregated failure.
	Keys []string
	// Suggestions are known keys close to Key.
	Suggestions []string
	Err         error
}

func (e *MappingError) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Op))

	if e.Type != "" {
		b.WriteByte(' ')
		b.WriteString(e.Type)
	}

	if e.Key != "" {
		fmt.Fprintf(&b, " key %q", e.Key)
	}

	b.WriteString(": ")
	b.WriteString(e.Err.Error())

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}

		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(quoted, " or "))
	}

	return b.String()
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// unreadableError aggregates the fields strict serialization could not read.
// Both ErrNoReadablePath and the per-key errsx.Map are reachable through it.
type unreadableError struct {
	keys   []string
	fields errsx.Map
}

func (e *unreadableError) Error() string {
	parts := make([]string, len(e.keys))
	for i, key := range e.keys {
		parts[i] = key + ": " + e.fields.Get(key)
	}

	return ErrNoReadablePath.Error() + ": " + strings.Join(parts, ", ")
}

func (e *unreadableError) Unwrap() []error {
	return []error{ErrNoReadablePath, e.fields}
}
