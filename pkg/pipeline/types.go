package pipeline

import (
	"image"
	"image/color"
	"time"

	"github.com/user/timemark/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// OverlayFields holds the user-editable values stamped onto the photo.
// Values are kept as entered; Display resolves them into drawable strings.
type OverlayFields struct {
	Time         string // free-form, usually HH:MM
	Date         string // ISO YYYY-MM-DD
	Weekday      string // one of the labels from Weekdays
	AddressLine1 string
	AddressLine2 string
}

// DisplayFields holds the resolved strings the clusters draw.
type DisplayFields struct {
	Time         string
	Date         string // DD/MM/YYYY
	Weekday      string
	AddressLine1 string
	AddressLine2 string
}

const (
	// DefaultTime is drawn when the time field is empty.
	DefaultTime = "05:37"
	// DefaultDateDisplay is drawn when the date field is empty or invalid.
	DefaultDateDisplay = "05/01/2026"
	// DefaultWeekday is drawn when the weekday field is empty or unknown.
	DefaultWeekday = "Thứ Năm"
	// DefaultAddressLine1 and DefaultAddressLine2 are the venue lines the
	// info cluster ships with.
	DefaultAddressLine1 = "268B Võ Nguyên Giáp, Bắc Mỹ Phú, Ngũ"
	DefaultAddressLine2 = "Hành Sơn, Đà Nẵng 550000"
)

// vnWeekdays maps time.Weekday ordinals (Sunday first) to the labels the
// overlay uses.
var vnWeekdays = [7]string{
	"Chủ Nhật",
	"Thứ Hai",
	"Thứ Ba",
	"Thứ Tư",
	"Thứ Năm",
	"Thứ Sáu",
	"Thứ Bảy",
}

// Weekdays returns the seven weekday labels, Sunday first.
func Weekdays() []string {
	w := make([]string, len(vnWeekdays))
	copy(w, vnWeekdays[:])
	return w
}

// IsWeekday reports whether s is one of the weekday labels.
func IsWeekday(s string) bool {
	for _, w := range vnWeekdays {
		if s == w {
			return true
		}
	}
	return false
}

// WeekdayForDate returns the weekday label for a calendar date.
func WeekdayForDate(t time.Time) string {
	return vnWeekdays[int(t.Weekday())]
}

// DisplayDate formats an ISO date as DD/MM/YYYY for the date slot. Empty
// or unparseable input falls back to the default display value; a bad date
// never fails a redraw.
func DisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return DefaultDateDisplay
	}
	return t.Format("02/01/2006")
}

// DefaultOverlayFields returns fields that render the calibrated sample
// overlay.
func DefaultOverlayFields() OverlayFields {
	return OverlayFields{
		Time:         DefaultTime,
		Weekday:      DefaultWeekday,
		AddressLine1: DefaultAddressLine1,
		AddressLine2: DefaultAddressLine2,
	}
}

// Display resolves the raw field values into the strings the clusters
// draw, substituting the defaults for anything empty or invalid.
func (f OverlayFields) Display() DisplayFields {
	d := DisplayFields{
		Time:         f.Time,
		Date:         DisplayDate(f.Date),
		Weekday:      f.Weekday,
		AddressLine1: f.AddressLine1,
		AddressLine2: f.AddressLine2,
	}
	if d.Time == "" {
		d.Time = DefaultTime
	}
	if !IsWeekday(d.Weekday) {
		d.Weekday = DefaultWeekday
	}
	if d.AddressLine1 == "" {
		d.AddressLine1 = DefaultAddressLine1
	}
	if d.AddressLine2 == "" {
		d.AddressLine2 = DefaultAddressLine2
	}
	return d
}

// TextMeasurer measures the advance width of text at a font size and
// weight. The cluster layouts are computed against it, which keeps them
// pure and testable without a canvas.
type TextMeasurer func(text string, size int, weight ports.FontWeight) float64

// =============================================================================
// Theme Types
// =============================================================================

// OverlayTheme defines overlay styling.
type OverlayTheme struct {
	AccentColor          color.Color // brand lead and divider
	TextColor            color.Color
	SubtitleColor        color.Color
	ShadowColor          color.Color // info cluster text shadow
	WatermarkShadowColor color.Color // brand and subtitle shadow

	// FontPath optionally overrides the bundled faces with a font file.
	FontPath string
}

// DefaultOverlayTheme returns the calibrated overlay theme.
func DefaultOverlayTheme() OverlayTheme {
	return OverlayTheme{
		AccentColor:          color.RGBA{R: 0xF2, G: 0xB6, B: 0x44, A: 0xFF},
		TextColor:            color.White,
		SubtitleColor:        color.RGBA{R: 0xE8, G: 0xE8, B: 0xE8, A: 0xFF},
		ShadowColor:          color.RGBA{A: 77}, // 30% black
		WatermarkShadowColor: color.RGBA{A: 64}, // 25% black
	}
}

// BrandText holds the watermark wording. The lead is drawn in the accent
// color, the tail in the text color, the subtitle centered underneath.
type BrandText struct {
	Lead     string
	Tail     string
	Subtitle string
}

// DefaultBrandText returns the product branding.
func DefaultBrandText() BrandText {
	return BrandText{
		Lead:     "Time",
		Tail:     "mark",
		Subtitle: "100% Chân thực",
	}
}

// =============================================================================
// Redact Stage Types
// =============================================================================

// RedactInput contains parameters for the redaction blur pass.
type RedactInput struct {
	Canvas  ports.Canvas
	Source  image.Image  // pristine photo the blur layer derives from
	Stencil *image.Alpha // painted mask coverage, same size as the canvas
}

// RedactResult contains the derived blur layer.
type RedactResult struct {
	BlurLayer image.Image
}

// =============================================================================
// Watermark Stage Types
// =============================================================================

// WatermarkInput contains parameters for the watermark cluster.
type WatermarkInput struct {
	Canvas ports.Canvas
	Width  int
	Height int
	Brand  BrandText
	Theme  OverlayTheme
}

// WatermarkLayout holds the computed watermark geometry. Coordinates are
// in canvas pixels; the Y values are bottom edges of the glyph boxes.
type WatermarkLayout struct {
	PadRight     int
	PadBottom    int
	BrandSize    int
	SubtitleSize int
	BrandWidth   float64
	LeadWidth    float64
	StartX       float64
	CenterX      float64
	BrandY       int
	SubtitleY    int
	ShadowOffset int

	// ReservedRight is the horizontal span, measured from the right edge,
	// that the info cluster must keep clear.
	ReservedRight int
}

// WatermarkResult contains the watermark geometry after drawing.
type WatermarkResult struct {
	Layout WatermarkLayout
}

// =============================================================================
// Info Cluster Stage Types
// =============================================================================

// ClusterInput contains parameters for the left info cluster.
type ClusterInput struct {
	Canvas        ports.Canvas
	Width         int
	Height        int
	ReservedRight int
	Fields        DisplayFields
	Theme         OverlayTheme
}

// ClusterLayout holds the computed info cluster geometry. Baseline Y
// values are alphabetic baselines; AddressY is the bottom edge of the
// second address line.
type ClusterLayout struct {
	LeftX      int
	BottomPad  int
	RightLimit int
	MaxWidth   int

	AddressSize  int
	AddressLineH int
	AddressY     int

	GapMetaToAddr int
	TimeSize      int
	TimeWidth     float64
	TimeBaselineY int
	TimeScaleY    float64

	GapX          int
	DividerX      float64
	DividerTop    int
	DividerBottom int
	DividerWidth  int

	MetaX            float64
	MetaSize         int
	MetaPad          int
	DateBaselineY    int
	WeekdayBaselineY int

	ShadowOffset int
}

// ClusterResult contains the info cluster geometry after drawing.
type ClusterResult struct {
	Layout ClusterLayout
}

// =============================================================================
// Frame Types
// =============================================================================

// FrameLayout aggregates the geometry of one composed frame for debug
// output.
type FrameLayout struct {
	Width     int
	Height    int
	Watermark WatermarkLayout
	Cluster   ClusterLayout
}
