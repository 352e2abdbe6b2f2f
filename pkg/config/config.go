// Package config loads the YAML configuration shared by the CLI, the HTTP
// gallery and the contact sheet renderer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Size is a pixel size.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Gallery configures thumbnail rendering and the contact sheet.
type Gallery struct {
	Columns int    `yaml:"columns"`
	Workers int    `yaml:"workers"` // 0 = GOMAXPROCS
	Font    string `yaml:"font"`    // custom TTF path, empty = embedded Go font
}

// Server configures the HTTP gallery.
type Server struct {
	Listen      string `yaml:"listen"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Config is the top-level configuration file.
type Config struct {
	Prefix  string  `yaml:"prefix"`
	Full    Size    `yaml:"full"`
	Thumb   Size    `yaml:"thumb"`
	Gallery Gallery `yaml:"gallery"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prefix:  "0fluf",
		Full:    Size{Width: 1440, Height: 2560},
		Thumb:   Size{Width: 360, Height: 640},
		Gallery: Gallery{Columns: 4},
		Server:  Server{Listen: ":8080"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks sizes, gallery layout, prefix and logging settings.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Prefix) == "" {
		errs = append(errs, errors.New("prefix is empty"))
	}
	if c.Full.Width <= 0 || c.Full.Height <= 0 {
		errs = append(errs, fmt.Errorf("full size %dx%d must be positive", c.Full.Width, c.Full.Height))
	}
	if c.Thumb.Width <= 0 || c.Thumb.Height <= 0 {
		errs = append(errs, fmt.Errorf("thumb size %dx%d must be positive", c.Thumb.Width, c.Thumb.Height))
	}
	if c.Gallery.Columns < 1 {
		errs = append(errs, fmt.Errorf("gallery columns %d must be at least 1", c.Gallery.Columns))
	}
	if c.Gallery.Workers < 0 {
		errs = append(errs, fmt.Errorf("gallery workers %d must not be negative", c.Gallery.Workers))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q: use text or json", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}

// NewLogger builds the process logger described by l, writing to w.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch l.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: use text or json", l.Format)
	}
}
