// Package config loads the settings shared by the pdraw tools.
//
// Settings come from built-in defaults, then an optional TOML file, then
// environment variables prefixed with PDRAW_ (PDRAW_PORT, PDRAW_WIDTH,
// ...). Later sources override earlier ones field by field.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "PDRAW"

// Config holds the tool settings.
type Config struct {
	Port   int `toml:"port" envconfig:"PORT"`
	Width  int `toml:"width" envconfig:"WIDTH"`
	Height int `toml:"height" envconfig:"HEIGHT"`

	Output string `toml:"output" envconfig:"OUTPUT"`
	Figure string `toml:"figure" envconfig:"FIGURE"`

	FPS    float64 `toml:"fps" envconfig:"FPS"`
	Frames int     `toml:"frames" envconfig:"FRAMES"`

	// FontPath is a TrueType font used for regular text instead of Go
	// Regular.
	FontPath string `toml:"font_path" envconfig:"FONT_PATH"`
	// ImageDir is where image and TeX label files are read from, unless
	// TexBaseURL is set.
	ImageDir   string `toml:"image_dir" envconfig:"IMAGE_DIR"`
	TexBaseURL string `toml:"tex_base_url" envconfig:"TEX_BASE_URL"`

	LogLevel  string `toml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `toml:"log_format" envconfig:"LOG_FORMAT"`

	AllowedOrigins []string `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:           8080,
		Width:          600,
		Height:         400,
		Output:         "figure.png",
		Figure:         "pendulum",
		FPS:            30,
		Frames:         1,
		ImageDir:       ".",
		LogLevel:       "info",
		LogFormat:      "text",
		AllowedOrigins: []string{"localhost:*", "127.0.0.1:*"},
	}
}

// Load returns the defaults overridden by the TOML file at path (skipped
// when path is empty) and then by the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return c.decode(f, path)
}

func (c *Config) decode(r io.Reader, name string) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config: %s: unknown keys:\n%s", name, strict.String())
		}
		return fmt.Errorf("config: %s: %w", name, err)
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %g must be positive", c.FPS))
	}
	if c.Frames < 1 {
		errs = append(errs, fmt.Errorf("frames %d must be at least 1", c.Frames))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q is not text or json", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// NewLogger returns a logger writing to w in the configured format at
// the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
