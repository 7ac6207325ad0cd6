package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/selengine/internal/engine/selection"
	"github.com/dshills/selengine/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SELENGINE_"

// Config holds all selengine settings.
type Config struct {
	Selection SelectionConfig `toml:"selection" yaml:"selection"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// SelectionConfig configures the selection created by the CLI.
type SelectionConfig struct {
	// Kind is "normal", "highlight" or "spellcheck".
	Kind string `toml:"kind" yaml:"kind"`
	// CrossBoundary allows ranges whose ends sit under different roots.
	CrossBoundary bool `toml:"cross_boundary" yaml:"cross_boundary"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Selection: SelectionConfig{Kind: selection.KindNormal.String()},
		Log:       LogConfig{Level: "info"},
	}
}

// Load builds a configuration from defaults, the file at path and the
// environment. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting holds a usable value.
func (c Config) Validate() error {
	if _, err := selection.ParseKind(c.Selection.Kind); err != nil {
		return fmt.Errorf("%w: selection.kind: %v", ErrInvalidConfig, err)
	}
	if !validLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Kind returns the parsed selection kind. Call Validate first.
func (c Config) Kind() selection.Kind {
	k, _ := selection.ParseKind(c.Selection.Kind)
	return k
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

func validLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// decodeFile overlays the file at path onto cfg. Unknown keys are rejected.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return tomlParseError(path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

func tomlParseError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// applyEnv overlays SELENGINE_* variables onto cfg. Empty values count as set.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPrefix + "SELECTION_KIND"); ok {
		cfg.Selection.Kind = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SELECTION_CROSS_BOUNDARY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sSELECTION_CROSS_BOUNDARY %q", ErrInvalidConfig, EnvPrefix, v)
		}
		cfg.Selection.CrossBoundary = b
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	return nil
}
