// Package timemark provides a high-level API for stamping photos.
package timemark

import (
	"image/color"

	"github.com/user/timemark/pkg/composer"
	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/session"
)

// Config represents the configuration for timemark photo stamping.
type Config struct {
	// Photo handling
	MaxDimension int // longest side cap in pixels (0 = keep photos as shot)
	Quality      int // JPEG quality (1-100)

	// Overlay fields
	Time         string // clock text, usually HH:MM (empty = calibrated default)
	Date         string // ISO date YYYY-MM-DD (empty = today when the photo loads)
	Weekday      string // weekday label (empty or unknown = calibrated default)
	AddressLine1 string // upper address line
	AddressLine2 string // lower address line

	// Branding
	BrandLead     string // accent-colored half of the brand word
	BrandTail     string // plain half of the brand word
	BrandSubtitle string // tagline centered under the brand

	// Style
	AccentColor   color.Color // brand lead and divider color
	TextColor     color.Color // time, meta and address color
	SubtitleColor color.Color // watermark subtitle color
	FontPath      string      // font file overriding the bundled faces

	// Redaction
	BrushRadius int // stroke radius in pixels when a stroke gives none
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with the calibrated defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: calibratedDefaults(),
	}
}

// calibratedDefaults returns the stock overlay configuration.
func calibratedDefaults() Config {
	brand := pipeline.DefaultBrandText()
	theme := pipeline.DefaultOverlayTheme()

	return Config{
		// Photo handling
		MaxDimension: 0,
		Quality:      92,

		// Branding
		BrandLead:     brand.Lead,
		BrandTail:     brand.Tail,
		BrandSubtitle: brand.Subtitle,

		// Style
		AccentColor:   theme.AccentColor,
		TextColor:     theme.TextColor,
		SubtitleColor: theme.SubtitleColor,

		// Redaction
		BrushRadius: 28,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Clamp quality into the encodable range
	if cfg.Quality < 1 {
		cfg.Quality = 1
	}
	if cfg.Quality > 100 {
		cfg.Quality = 100
	}

	// A negative cap means no cap
	if cfg.MaxDimension < 0 {
		cfg.MaxDimension = 0
	}

	// Enforce minimum brush radius of 1
	if cfg.BrushRadius < 1 {
		cfg.BrushRadius = 1
	}

	return cfg
}

// WithMaxDimension sets the longest side cap in pixels.
// Use 0 to keep photos at their shot size.
func (b *ConfigBuilder) WithMaxDimension(px int) *ConfigBuilder {
	b.config.MaxDimension = px
	return b
}

// WithQuality sets the JPEG quality (1-100).
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithTime sets the clock text, usually HH:MM.
func (b *ConfigBuilder) WithTime(time string) *ConfigBuilder {
	b.config.Time = time
	return b
}

// WithDate sets the ISO date (YYYY-MM-DD).
func (b *ConfigBuilder) WithDate(date string) *ConfigBuilder {
	b.config.Date = date
	return b
}

// WithWeekday sets the weekday label.
func (b *ConfigBuilder) WithWeekday(weekday string) *ConfigBuilder {
	b.config.Weekday = weekday
	return b
}

// WithAddress sets both address lines.
func (b *ConfigBuilder) WithAddress(line1, line2 string) *ConfigBuilder {
	b.config.AddressLine1 = line1
	b.config.AddressLine2 = line2
	return b
}

// WithBrand sets the two halves of the brand word.
func (b *ConfigBuilder) WithBrand(lead, tail string) *ConfigBuilder {
	b.config.BrandLead = lead
	b.config.BrandTail = tail
	return b
}

// WithBrandSubtitle sets the tagline centered under the brand.
func (b *ConfigBuilder) WithBrandSubtitle(subtitle string) *ConfigBuilder {
	b.config.BrandSubtitle = subtitle
	return b
}

// WithAccentColor sets the brand lead and divider color.
func (b *ConfigBuilder) WithAccentColor(c color.Color) *ConfigBuilder {
	b.config.AccentColor = c
	return b
}

// WithTextColor sets the time, meta and address color.
func (b *ConfigBuilder) WithTextColor(c color.Color) *ConfigBuilder {
	b.config.TextColor = c
	return b
}

// WithSubtitleColor sets the watermark subtitle color.
func (b *ConfigBuilder) WithSubtitleColor(c color.Color) *ConfigBuilder {
	b.config.SubtitleColor = c
	return b
}

// WithFontPath sets a font file overriding the bundled faces.
func (b *ConfigBuilder) WithFontPath(path string) *ConfigBuilder {
	b.config.FontPath = path
	return b
}

// WithBrushRadius sets the stroke radius in pixels used when a stroke
// gives none.
func (b *ConfigBuilder) WithBrushRadius(radius int) *ConfigBuilder {
	b.config.BrushRadius = radius
	return b
}

// ToComposerConfig converts Config to composer.Config.
// Nil colors keep the calibrated theme.
func (c Config) ToComposerConfig() composer.Config {
	theme := pipeline.DefaultOverlayTheme()
	if c.AccentColor != nil {
		theme.AccentColor = c.AccentColor
	}
	if c.TextColor != nil {
		theme.TextColor = c.TextColor
	}
	if c.SubtitleColor != nil {
		theme.SubtitleColor = c.SubtitleColor
	}
	theme.FontPath = c.FontPath

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
	return session.Config{
		MaxDimension: c.MaxDimension,
	}
}

// OverlayFields returns the overlay field values to stamp.
func (c Config) OverlayFields() pipeline.OverlayFields {
	return pipeline.OverlayFields{
		Time:         c.Time,
		Date:         c.Date,
		Weekday:      c.Weekday,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
	}
}
