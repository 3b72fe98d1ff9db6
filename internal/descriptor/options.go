package descriptor

// Option configures descriptor derivation.
type Option func(*deriveConfig)

type deriveConfig struct {
	ctor     any
	ctorKeys []string
	builder  any
	hook     bool
	// nil: default construction unless a constructor or builder is registered
	defaultCtor *bool
	keys        map[string]string // Go field name -> record key
}

// WithConstructor registers fn as the parameterized constructor. fn must
// return T or *T, optionally followed by an error; keys names the record key
// bound to each parameter, in order.
func WithConstructor(fn any, keys ...string) Option {
	return func(c *deriveConfig) {
		c.ctor = fn
		c.ctorKeys = keys
	}
}

// WithBuilder registers factory, a func() *B. B has one method per
// buildable field, named after it (Brand or WithBrand) taking the field value
// and returning *B, and a Build method returning T or *T (and optionally an
// error).
func WithBuilder(factory any) Option {
	return func(c *deriveConfig) {
		c.builder = factory
	}
}

// WithBuilderHook lets the mapper deserialize through the registered builder.
func WithBuilderHook() Option {
	return func(c *deriveConfig) {
		c.hook = true
	}
}

// WithDefaultConstructor keeps the zero-value construction path even though a
// constructor or builder is registered.
func WithDefaultConstructor() Option {
	return func(c *deriveConfig) {
		v := true
		c.defaultCtor = &v
	}
}

// WithoutDefaultConstructor removes the zero-value construction path.
func WithoutDefaultConstructor() Option {
	return func(c *deriveConfig) {
		v := false
		c.defaultCtor = &v
	}
}

// WithKey binds the Go field goName to key, overriding the json tag.
func WithKey(goName, key string) Option {
	return func(c *deriveConfig) {
		if c.keys == nil {
			c.keys = make(map[string]string)
		}

		c.keys[goName] = key
	}
}
