package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MichaelAJay/go-logger"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"visibility-mapper/examples/cars"
	"visibility-mapper/internal/config"
	"visibility-mapper/internal/descriptor"
	"visibility-mapper/mapper"
)

type MainConfig struct {
	Config        string `cli:"name=config desc='YAML configuration file'"`
	Reveal        bool   `cli:"name=reveal desc='read and write unexported fields directly'"`
	IgnoreUnknown bool   `cli:"name=ignore-unknown desc='skip keys without a write path'"`
	Strict        bool   `cli:"name=strict desc='fail serialization of written fields that cannot be read'"`
	Format        string `cli:"name=format desc='record format: json, msgpack or binary'"`
	LogLevel      string `cli:"name=log desc='log level: debug, info or error'"`

	Main *cli.Command

	// lookupEnv is os.LookupEnv outside tests.
	lookupEnv func(string) (string, bool)
}

type DescribeConfig struct {
	*MainConfig
	Debug bool `cli:"name=debug desc='dump full descriptors'"`

	Describe *cli.Command
}

type DecodeConfig struct {
	*MainConfig

	Decode *cli.Command
}

type RoundtripConfig struct {
	*MainConfig

	Roundtrip *cli.Command
}

type InspectConfig struct {
	*MainConfig

	Inspect *cli.Command
}

// settings merges, in increasing precedence, defaults, the configuration
// file, the environment and the command line.
func (cfg *MainConfig) settings() (*config.File, error) {
	file := config.Default()

	if cfg.Config != "" {
		var err error
		if file, err = config.LoadFile(cfg.Config); err != nil {
			return nil, err
		}
	}

	lookup := cfg.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if err := file.ApplyEnv(lookup); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if cfg.Reveal {
		file.Mapper.RevealPrivateFields = true
	}

	if cfg.IgnoreUnknown {
		file.Mapper.IgnoreUnknownKeys = true
	}

	if cfg.Strict {
		file.Mapper.RequireReadablePath = true
	}

	if cfg.Format != "" {
		file.Mapper.Format = cfg.Format
	}

	if cfg.LogLevel != "" {
		file.Log.Level = cfg.LogLevel
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	return file, nil
}

func logConfig(level string, w io.Writer) logger.Config {
	c := logger.Config{Level: logger.InfoLevel, Output: w}

	switch level {
	case "debug":
		c.Level = logger.DebugLevel
	case "error":
		c.Level = logger.ErrorLevel
	}

	return c
}

// setup builds the registry of example types and a mapper configured from
// settings. Logs go to stderr.
func (cfg *MainConfig) setup() (*descriptor.Registry, *mapper.Mapper, *config.File, error) {
	file, err := cfg.settings()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(logConfig(file.Log.Level, os.Stderr))

	reg := cars.NewRegistry()

	m, err := mapper.New(reg, mapper.WithConfig(file.Mapper), mapper.WithLogger(log))
	if err != nil {
		return nil, nil, nil, err
	}

	return reg, m, file, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd())
}
