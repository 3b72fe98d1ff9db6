package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"

	"visibility-mapper/internal/codec"
)

// Environment variables overriding file settings.
const (
	EnvRevealPrivateFields = "VMAPPER_REVEAL_PRIVATE_FIELDS"
	EnvIgnoreUnknownKeys   = "VMAPPER_IGNORE_UNKNOWN_KEYS"
	EnvRequireReadablePath = "VMAPPER_REQUIRE_READABLE_PATH"
	EnvFailOnEmpty         = "VMAPPER_FAIL_ON_EMPTY"
	EnvFormat              = "VMAPPER_FORMAT"
	EnvLogLevel            = "VMAPPER_LOG_LEVEL"
)

// Log levels accepted in the log section.
var LogLevels = []string{"debug", "info", "error"}

// File is the root of a configuration file.
type File struct {
	Version string `yaml:"version,omitempty"`
	Mapper  Mapper `yaml:"mapper"`
	Log     Log    `yaml:"log"`
}

// Mapper holds the conversion switches.
type Mapper struct {
	// RevealPrivateFields lets the mapper read and write unexported fields directly.
	RevealPrivateFields bool `yaml:"reveal_private_fields"`
	// IgnoreUnknownKeys skips input keys without a writable target.
	IgnoreUnknownKeys bool `yaml:"ignore_unknown_keys"`
	// RequireReadablePath fails serialization of a field that can be set but not read.
	RequireReadablePath bool `yaml:"require_readable_path"`
	// FailOnEmpty fails serialization when no field is readable at all.
	FailOnEmpty bool   `yaml:"fail_on_empty"`
	Format      string `yaml:"format,omitempty"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// LoadFile loads and parses a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and fills in defaults.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Mapper.Format == "" {
		f.Mapper.Format = string(codec.FormatJSON)
	}

	if f.Log.Level == "" {
		f.Log.Level = "info"
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// ApplyEnv overrides settings from the environment as seen through lookup
// (os.LookupEnv in production). Every malformed variable is reported.
func (f *File) ApplyEnv(lookup func(string) (string, bool)) error {
	errs := errsx.Map{}

	flags := []struct {
		name string
		dst  *bool
	}{
		{EnvRevealPrivateFields, &f.Mapper.RevealPrivateFields},
		{EnvIgnoreUnknownKeys, &f.Mapper.IgnoreUnknownKeys},
		{EnvRequireReadablePath, &f.Mapper.RequireReadablePath},
		{EnvFailOnEmpty, &f.Mapper.FailOnEmpty},
	}

	for _, flag := range flags {
		v, ok := lookup(flag.name)
		if !ok || v == "" {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Set(flag.name, fmt.Errorf("%q is not a boolean", v))

			continue
		}

		*flag.dst = b
	}

	if v, ok := lookup(EnvFormat); ok && v != "" {
		f.Mapper.Format = v
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		f.Log.Level = strings.ToLower(v)
	}

	return errs.AsError()
}

// Validate checks the version, format and log level.
func (f *File) Validate() error {
	errs := errsx.Map{}

	if f.Version != "1" {
		errs.Set("version", fmt.Errorf("unsupported config version %q", f.Version))
	}

	if _, err := codec.ParseFormat(f.Mapper.Format); err != nil {
		errs.Set("format", err)
	}

	if !isLogLevel(f.Log.Level) {
		errs.Set("level", fmt.Errorf("log level must be one of %s, got %q", strings.Join(LogLevels, ", "), f.Log.Level))
	}

	return errs.AsError()
}

func isLogLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}

	return false
}
