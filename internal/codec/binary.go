package codec

import (
	"fmt"
	"sort"

	"github.com/MichaelAJay/go-serializer"
)

// mapCodec carries records as map[string]any for formats without key order.
type mapCodec struct {
	format Format
	s      serializer.Serializer
}

func (c *mapCodec) Format() Format { return c.format }

func (c *mapCodec) Decode(data []byte) (Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty %s record", ErrMalformedRecord, c.format)
	}

	var m map[string]any
	if err := c.s.Deserialize(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	rec := NewRecord()
	for _, k := range keys {
		rec.Set(k, m[k])
	}

	return rec, nil
}

func (c *mapCodec) Encode(rec Record) ([]byte, error) {
	m := make(map[string]any, len(rec.Keys()))
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		m[k] = v
	}

	data, err := c.s.Serialize(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s record: %w", c.format, err)
	}

	return data, nil
}
