// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"github.com/user/timemark/pkg/composer"
	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/session"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for timemark.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`
	Format     string `yaml:"format"`  // jpeg, png or auto (from the output extension)
	Quality    int    `yaml:"quality"` // JPEG quality (1-100)

	// Photo handling
	MaxDimension int `yaml:"max_dimension"` // longest side cap in px, 0 keeps photos as shot

	// Overlay fields. Empty values fall back to the calibrated defaults
	// at draw time.
	Time         string `yaml:"time"`
	Date         string `yaml:"date"` // ISO YYYY-MM-DD
	Weekday      string `yaml:"weekday"`
	AddressLine1 string `yaml:"address_line1"`
	AddressLine2 string `yaml:"address_line2"`

	// Branding
	BrandLead     string `yaml:"brand_lead"`
	BrandTail     string `yaml:"brand_tail"`
	BrandSubtitle string `yaml:"brand_subtitle"`

	// Styling
	Theme ThemeConfig `yaml:"theme"`

	// Redaction
	BrushRadius int `yaml:"brush_radius"` // stroke radius in px when none is given

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ThemeConfig represents overlay theming options.
type ThemeConfig struct {
	AccentColor   string `yaml:"accent_color"`
	TextColor     string `yaml:"text_color"`
	SubtitleColor string `yaml:"subtitle_color"`
	FontPath      string `yaml:"font_path"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	brand := pipeline.DefaultBrandText()
	return Config{
		Format:  "auto",
		Quality: 92,

		BrandLead:     brand.Lead,
		BrandTail:     brand.Tail,
		BrandSubtitle: brand.Subtitle,

		BrushRadius: 28,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToComposerConfig converts Config to composer.Config. Unset theme colors
// keep the calibrated defaults.
func (c Config) ToComposerConfig() composer.Config {
	theme := pipeline.DefaultOverlayTheme()
	if c.Theme.AccentColor != "" {
		theme.AccentColor = ParseColor(c.Theme.AccentColor)
	}
	if c.Theme.TextColor != "" {
		theme.TextColor = ParseColor(c.Theme.TextColor)
	}
	if c.Theme.SubtitleColor != "" {
		theme.SubtitleColor = ParseColor(c.Theme.SubtitleColor)
	}
	theme.FontPath = c.Theme.FontPath

	return composer.Config{
		Brand: pipeline.BrandText{
			Lead:     c.BrandLead,
			Tail:     c.BrandTail,
			Subtitle: c.BrandSubtitle,
		},
		Theme: theme,
	}
}

// ToSessionConfig converts Config to session.Config.
func (c Config) ToSessionConfig() session.Config {
	return session.Config{MaxDimension: c.MaxDimension}
}

// OverlayFields returns the configured overlay field values.
func (c Config) OverlayFields() pipeline.OverlayFields {
	return pipeline.OverlayFields{
		Time:         c.Time,
		Date:         c.Date,
		Weekday:      c.Weekday,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
	}
}
