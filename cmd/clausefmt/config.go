package main

import (
	"io/fs"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

// Config represents the settings read from the config file
type Config struct {
	// Indent is the number of spaces per nesting level. Used when Tabs is false.
	Indent int `koanf:"indent"`

	// Tabs specifies if nested blocks are indented with tabs
	Tabs bool `koanf:"tabs"`

	// Strict specifies if malformed input is reported instead of repaired
	Strict bool `koanf:"strict"`

	// Encoding is the character encoding of input and output files
	Encoding string `koanf:"encoding"`

	// Jobs is the number of files formatted concurrently
	Jobs int `koanf:"jobs"`
}

// NewDefCfg returns the config used when no config file exists
func NewDefCfg() Config {
	return Config{
		Indent:   4,
		Tabs:     true,
		Encoding: "utf-8",
		Jobs:     runtime.NumCPU(),
	}
}

// LoadConfig returns the config read from <path>. Settings missing from the file keep their defaults, and a missing
// file yields the default config.
func LoadConfig(log *logrus.Logger, path string) (Config, error) {
	cfg := NewDefCfg()

	ko := koanf.New(".")
	if err := ko.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Debug("Config file not found, using defaults")
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "Load config")
	}

	err := ko.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return cfg, errors.Wrap(err, "Decode config")
	}
	log.WithField("path", path).Debug("Loaded config")
	return cfg, nil
}

// Merge returns <c> with every setting given on the command line in <flags> applied over it
func (c Config) Merge(flags Flags) Config {
	if flags.IsSet("strict") {
		c.Strict = flags.Strict
	}
	if flags.IsSet("indent") {
		c.Indent = flags.Indent
		c.Tabs = false
	}
	if flags.IsSet("tabs") {
		c.Tabs = flags.Tabs
	}
	if flags.IsSet("encoding") {
		c.Encoding = flags.Encoding
	}
	if flags.IsSet("jobs") {
		c.Jobs = flags.Jobs
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	return c
}
