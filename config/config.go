// Package config maps YAML files and SINKLOG_* environment variables
// onto facade settings.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/sinklog/logger"
	"github.com/philipp01105/sinklog/sink/consolesink"
	"github.com/philipp01105/sinklog/sink/filesink"
)

// Environment variables overlaid by ApplyEnv
const (
	EnvLevel   = "SINKLOG_LEVEL"
	EnvMode    = "SINKLOG_MODE"
	EnvPattern = "SINKLOG_PATTERN"
	EnvFile    = "SINKLOG_FILE"
)

// Config is the file representation of a facade setup. Level and mode
// are kept as strings and parsed leniently, so an unknown value falls
// back to the default instead of failing.
type Config struct {
	Name      string  `yaml:"name"`
	Level     string  `yaml:"level"`
	Mode      string  `yaml:"mode"`
	Pattern   string  `yaml:"pattern"`
	QueueSize int     `yaml:"queue_size"`
	Console   Console `yaml:"console"`
	File      File    `yaml:"file"`
}

// Console configures the console sink
type Console struct {
	// Color is one of auto, always, never
	Color string `yaml:"color"`
}

// File configures the rotating file sink
type File struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
	Disabled   bool   `yaml:"disabled"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Name:      logger.DefaultName,
		Level:     "info",
		Mode:      logger.DefaultMode.String(),
		QueueSize: logger.DefaultQueueSize,
		Console:   Console{Color: consolesink.ColorAuto.String()},
		File: File{
			Path:       filesink.DefaultFilename,
			MaxSizeMB:  filesink.DefaultMaxSizeMB,
			MaxBackups: filesink.DefaultMaxBackups,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}

	if err := Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Decode strictly unmarshals YAML into cfg, keeping fields the document
// does not mention.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document leaves cfg untouched
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// ApplyEnv overlays the SINKLOG_* variables found by lookup, which is
// usually os.LookupEnv. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLevel); ok && v != "" {
		c.Level = v
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		c.Mode = v
	}
	if v, ok := lookup(EnvPattern); ok && v != "" {
		c.Pattern = v
	}
	if v, ok := lookup(EnvFile); ok && v != "" {
		switch strings.ToLower(v) {
		case "off", "none", "false":
			c.File.Disabled = true
		default:
			c.File.Path = v
			c.File.Disabled = false
		}
	}
}

// LevelValue returns the parsed threshold, InfoLevel when unrecognized
func (c Config) LevelValue() logger.Level {
	return logger.ParseLevel(c.Level)
}

// ModeValue returns the parsed delivery mode, Deferred when unrecognized
func (c Config) ModeValue() logger.Mode {
	return logger.ParseMode(c.Mode)
}

// Options converts the configuration into facade options writing to
// os.Stdout.
func (c Config) Options() logger.Options {
	return logger.Options{
		Name:         c.Name,
		ConsoleColor: consolesink.ParseColorMode(c.Console.Color),
		File: filesink.Config{
			Filename:   c.File.Path,
			MaxSizeMB:  c.File.MaxSizeMB,
			MaxBackups: c.File.MaxBackups,
			MaxAgeDays: c.File.MaxAgeDays,
			Compress:   c.File.Compress,
		},
		DisableFile: c.File.Disabled,
		QueueSize:   c.QueueSize,
	}
}

// NewFacade builds an initialized Facade from the configuration
func (c Config) NewFacade() *logger.Facade {
	f := logger.NewFacade(c.Options())
	f.Init(c.LevelValue(), c.ModeValue(), c.Pattern)
	return f
}

// String renders the configuration as YAML
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "<invalid config: " + strconv.Quote(err.Error()) + ">"
	}
	return string(out)
}
