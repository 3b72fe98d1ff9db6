// Package codec turns textual (or binary) encoded records into ordered
// key/value records and back. JSON keeps the key order of the input; the
// binary formats carry plain maps and come back with keys sorted.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MichaelAJay/go-serializer"
	"github.com/iancoleman/orderedmap"
)

// Format names an encoding of the record.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatBinary  Format = "binary" // gob
)

var (
	ErrUnsupportedFormat = errors.New("unsupported record format")
	ErrMalformedRecord   = errors.New("malformed record")
)

// Record is an ordered mapping from key to scalar value.
type Record = *orderedmap.OrderedMap

// NewRecord returns an empty record.
func NewRecord() Record {
	r := orderedmap.New()
	r.SetEscapeHTML(false)

	return r
}

// Codec encodes and decodes records.
type Codec interface {
	Format() Format
	Decode(data []byte) (Record, error)
	Encode(rec Record) ([]byte, error)
}

// ParseFormat parses a format name, case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatMsgpack, FormatBinary:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// New returns the codec for format.
func New(format Format) (Codec, error) {
	switch format {
	case FormatJSON, "":
		return &jsonCodec{s: serializer.NewJSONSerializer()}, nil
	case FormatMsgpack:
		return &mapCodec{format: FormatMsgpack, s: serializer.NewMsgpackSerializer()}, nil
	case FormatBinary:
		return &mapCodec{format: FormatBinary, s: serializer.NewGobSerializer()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
