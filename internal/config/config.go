// Package config loads pitchdeck settings from .pitchdeck.yaml. The
// theme it produces is presentation configuration only: surfaces
// read it, nothing in the deck core depends on it.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is
// given.
const DefaultFile = ".pitchdeck.yaml"

// Palette holds the named colors of the theme as #RGB or #RRGGBB.
type Palette struct {
	Primary    string `yaml:"primary"`
	Accent     string `yaml:"accent"`
	Success    string `yaml:"success"`
	Danger     string `yaml:"danger"`
	Warning    string `yaml:"warning"`
	Highlight  string `yaml:"highlight"`
	Surface    string `yaml:"surface"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	Background string `yaml:"background"`
}

// Theme is the immutable styling handed to every surface.
type Theme struct {
	Font    string  `yaml:"font"`
	Palette Palette `yaml:"palette"`
}

// Server configures the HTTP surface.
type Server struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Config is the top-level configuration.
type Config struct {
	Title          string `yaml:"title"`
	DefaultSection string `yaml:"default_section"`
	Theme          Theme  `yaml:"theme"`
	Server         Server `yaml:"server"`
}

// DefaultTheme returns the TechFlow blue/teal palette.
func DefaultTheme() Theme {
	return Theme{
		Font: "Inter",
		Palette: Palette{
			Primary:    "#0066CC",
			Accent:     "#00A8E8",
			Success:    "#00C851",
			Danger:     "#FF4444",
			Warning:    "#FFA500",
			Highlight:  "#FFD700",
			Surface:    "#F8F9FA",
			Text:       "#1F2933",
			Muted:      "#6B7280",
			Background: "#FFFFFF",
		},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Title:          "TechFlow AI - Voice Commerce Revolution",
		DefaultSection: "",
		Theme:          DefaultTheme(),
		Server: Server{
			Host:         "127.0.0.1",
			Port:         8501,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Load reads the configuration at path on top of the defaults. An
// empty path means DefaultFile, which may be absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

var (
	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	fontName = regexp.MustCompile(`^[\p{L}\p{N} _.,-]*$`)
)

// SanitizeFont drops every rune of a font family name that is not a
// letter, digit, space or one of "_.,-". The result is safe inside CSS
// declarations and SVG style attributes.
func SanitizeFont(font string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(" _.,-", r) {
			return r
		}
		return -1
	}, font))
}

// Validate checks colors, font, port and timeouts.
func (c *Config) Validate() error {
	if !fontName.MatchString(c.Theme.Font) {
		return fmt.Errorf("invalid theme font %q: only letters, digits, spaces and _.,- allowed", c.Theme.Font)
	}

	p := c.Theme.Palette
	colors := []struct {
		name, value string
	}{
		{"primary", p.Primary},
		{"accent", p.Accent},
		{"success", p.Success},
		{"danger", p.Danger},
		{"warning", p.Warning},
		{"highlight", p.Highlight},
		{"surface", p.Surface},
		{"text", p.Text},
		{"muted", p.Muted},
		{"background", p.Background},
	}
	for _, col := range colors {
		if !hexColor.MatchString(col.value) {
			return fmt.Errorf("invalid theme color %s=%q: want #RGB or #RRGGBB", col.name, col.value)
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d: must be in [1, 65535]", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid server timeouts: read=%s write=%s must be positive",
			c.Server.ReadTimeout, c.Server.WriteTimeout)
	}
	return nil
}
