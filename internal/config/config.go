// Package config holds the image browser settings: code defaults, an optional
// YAML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDirName = "image-browser"

// Window is the initial main window size.
type Window struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Thumbnail controls the gallery list.
type Thumbnail struct {
	Size    int `yaml:"size"`
	Spacing int `yaml:"spacing"`
}

// Zoom bounds are percentages.
type Zoom struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Default int `yaml:"default"`
	Step    int `yaml:"step"`
}

// Pen is the freehand stroke tool.
type Pen struct {
	Width    int    `yaml:"width"`
	MinWidth int    `yaml:"min_width"`
	MaxWidth int    `yaml:"max_width"`
	Color    string `yaml:"color"`
}

// Text is the text box tool.
type Text struct {
	Color       string  `yaml:"color"`
	Family      string  `yaml:"family"`
	Size        float64 `yaml:"size"`
	Placeholder string  `yaml:"placeholder"`
}

// Theme colours are optional hex strings; empty keeps the fyne default.
type Theme struct {
	Primary    string `yaml:"primary"`
	Selection  string `yaml:"selection"`
	Background string `yaml:"background"`
}

// Log selects level and encoder.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds the application configuration.
type Config struct {
	Window    Window    `yaml:"window"`
	Thumbnail Thumbnail `yaml:"thumbnail"`
	Zoom      Zoom      `yaml:"zoom"`
	Pen       Pen       `yaml:"pen"`
	Text      Text      `yaml:"text"`
	Decoder   string    `yaml:"decoder"`
	Theme     Theme     `yaml:"theme"`
	Log       Log       `yaml:"log"`
}

// Decoder backends.
const (
	DecoderStandard = "standard"
	DecoderOpenCV   = "opencv"
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Window:    Window{Width: 1024, Height: 768},
		Thumbnail: Thumbnail{Size: 100, Spacing: 10},
		Zoom:      Zoom{Min: 5, Max: 500, Default: 100, Step: 10},
		Pen:       Pen{Width: 3, MinWidth: 1, MaxWidth: 50, Color: "#ff0000"},
		Text: Text{
			Color:       "#000000",
			Family:      "Go Regular",
			Size:        12,
			Placeholder: "Enter text",
		},
		Decoder: DecoderStandard,
		Log:     Log{Level: "info", Format: "console"},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, appDirName, "config.yaml")
}

// Load builds the configuration from defaults, the file at path and the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	} else if getenv("DEBUG") == "1" {
		c.Log.Level = "debug"
	}
	if v := getenv("IMAGE_BROWSER_DECODER"); v != "" {
		c.Decoder = strings.ToLower(v)
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if c.Thumbnail.Size <= 0 {
		errs = append(errs, fmt.Errorf("thumbnail.size must be positive, got %d", c.Thumbnail.Size))
	}
	if c.Zoom.Min <= 0 || c.Zoom.Min > c.Zoom.Max {
		errs = append(errs, fmt.Errorf("zoom range %d..%d is invalid", c.Zoom.Min, c.Zoom.Max))
	} else if c.Zoom.Default < c.Zoom.Min || c.Zoom.Default > c.Zoom.Max {
		errs = append(errs, fmt.Errorf("zoom.default %d outside %d..%d", c.Zoom.Default, c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Step <= 0 {
		errs = append(errs, fmt.Errorf("zoom.step must be positive, got %d", c.Zoom.Step))
	}
	if c.Pen.MinWidth <= 0 || c.Pen.MinWidth > c.Pen.MaxWidth {
		errs = append(errs, fmt.Errorf("pen width range %d..%d is invalid", c.Pen.MinWidth, c.Pen.MaxWidth))
	} else if c.Pen.Width < c.Pen.MinWidth || c.Pen.Width > c.Pen.MaxWidth {
		errs = append(errs, fmt.Errorf("pen.width %d outside %d..%d", c.Pen.Width, c.Pen.MinWidth, c.Pen.MaxWidth))
	}
	if c.Text.Size <= 0 {
		errs = append(errs, fmt.Errorf("text.size must be positive, got %v", c.Text.Size))
	}
	for name, hex := range map[string]string{
		"pen.color":        c.Pen.Color,
		"text.color":       c.Text.Color,
		"theme.primary":    c.Theme.Primary,
		"theme.selection":  c.Theme.Selection,
		"theme.background": c.Theme.Background,
	} {
		if hex == "" && strings.HasPrefix(name, "theme.") {
			continue
		}
		if _, err := ParseColor(hex); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	switch c.Decoder {
	case DecoderStandard, DecoderOpenCV:
	default:
		errs = append(errs, fmt.Errorf("unknown decoder %q", c.Decoder))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// PenColor returns the parsed default pen colour.
func (c *Config) PenColor() color.NRGBA {
	col, _ := ParseColor(c.Pen.Color)
	return col
}

// TextColor returns the parsed default text colour.
func (c *Config) TextColor() color.NRGBA {
	col, _ := ParseColor(c.Text.Color)
	return col
}
