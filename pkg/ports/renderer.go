package ports

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	// FormatAuto sniffs the container from the data itself.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image

	// BlurImage softens an image by shrinking it to scale (0 < scale < 1)
	// of its size and stretching it back with smooth interpolation.
	BlurImage(img image.Image, scale float64) image.Image
}

// Canvas provides drawing operations for compositing a single frame.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawImageMasked draws an image through an alpha stencil. Pixels are
	// blended in proportion to the stencil alpha at the same coordinates.
	// The stencil must match the canvas dimensions.
	DrawImageMasked(img image.Image, stencil *image.Alpha) error

	// DrawLine draws a line between two points.
	DrawLine(x1, y1, x2, y2 int, c color.Color, width float64)

	// DrawText draws text at the specified position. The y coordinate is
	// the alphabetic baseline unless the style selects another baseline.
	DrawText(text string, x, y int, style TextStyle)

	// MeasureText returns the advance width and line height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	Weight   FontWeight
	FontPath string
	Color    color.Color
	Align    TextAlign
	Baseline TextBaseline

	// ScaleY stretches glyphs vertically around the baseline.
	// Zero or one leaves them untouched.
	ScaleY float64

	// Shadow, when non-nil, draws an offset shadow pass under the text.
	Shadow *TextShadow
}

// TextShadow defines the shadow pass drawn under text.
type TextShadow struct {
	Color  color.Color
	Offset int
}

// FontWeight selects one of the bundled font weights.
type FontWeight int

const (
	WeightRegular FontWeight = iota
	WeightMedium
	WeightBold
)

// TextAlign specifies how text is anchored horizontally at x.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline specifies how text is anchored vertically at y.
type TextBaseline int

const (
	// BaselineAlphabetic anchors y at the glyph baseline.
	BaselineAlphabetic TextBaseline = iota
	// BaselineBottom anchors y at the bottom of the glyph box.
	BaselineBottom
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	// FormatAuto lets the decoder detect the format. Not valid for encoding.
	FormatAuto
)

// String returns the string representation of the image format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseFormat parses an image format name. An empty name means FormatAuto.
func ParseFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return FormatAuto, fmt.Errorf("unknown image format: %s", s)
	}
}
