package mapper

import (
	"github.com/MichaelAJay/go-logger"

	"visibility-mapper/internal/codec"
	"visibility-mapper/internal/config"
)

// Options control how a Mapper treats visibility.
type Options struct {
	// RevealPrivateFields makes unexported fields writable and readable.
	RevealPrivateFields bool
	// IgnoreUnknownKeys skips keys without a write path instead of failing.
	IgnoreUnknownKeys bool
	// RequireReadablePath fails serialization of fields that can be written
	// but not read.
	RequireReadablePath bool
	// FailOnEmpty fails serialization when no field is readable.
	FailOnEmpty bool
	// Format of the encoded record, JSON when empty.
	Format codec.Format
	// Logger receives debug output about skipped keys and omitted fields.
	Logger logger.Logger
}

// Option configures a Mapper.
type Option func(*Options)

func WithRevealPrivateFields(on bool) Option {
	return func(o *Options) { o.RevealPrivateFields = on }
}

func WithIgnoreUnknownKeys(on bool) Option {
	return func(o *Options) { o.IgnoreUnknownKeys = on }
}

func WithRequireReadablePath(on bool) Option {
	return func(o *Options) { o.RequireReadablePath = on }
}

func WithFailOnEmpty(on bool) Option {
	return func(o *Options) { o.FailOnEmpty = on }
}

func WithFormat(format codec.Format) Option {
	return func(o *Options) { o.Format = format }
}

func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// WithConfig copies the mapper section of a configuration file.
func WithConfig(c config.Mapper) Option {
	return func(o *Options) {
		o.RevealPrivateFields = c.RevealPrivateFields
		o.IgnoreUnknownKeys = c.IgnoreUnknownKeys
		o.RequireReadablePath = c.RequireReadablePath
		o.FailOnEmpty = c.FailOnEmpty
		o.Format = codec.Format(c.Format)
	}
}
