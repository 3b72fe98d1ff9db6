package codec

import (
	"bytes"
	"fmt"

	"github.com/MichaelAJay/go-serializer"
)

type jsonCodec struct {
	s serializer.Serializer
}

func (c *jsonCodec) Format() Format { return FormatJSON }

// Decode parses a JSON object. Numbers decode as float64.
func (c *jsonCodec) Decode(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedRecord)
	}

	rec := NewRecord()
	if err := c.s.Deserialize(trimmed, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return rec, nil
}

func (c *jsonCodec) Encode(rec Record) ([]byte, error) {
	data, err := c.s.Serialize(rec)
	if err != nil {
		return nil, fmt.Errorf("encode json record: %w", err)
	}

	return bytes.TrimSpace(data), nil
}
