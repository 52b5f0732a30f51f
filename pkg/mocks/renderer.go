package mocks

import (
	"image"
	"image/color"

	"github.com/user/timemark/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
	BlurImageFunc    func(img image.Image, scale float64) image.Image

	// Canvases collects every canvas handed out by CreateCanvas.
	Canvases []*Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{Width: width, Height: height, Background: bg}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) BlurImage(img image.Image, scale float64) image.Image {
	if m.BlurImageFunc != nil {
		return m.BlurImageFunc(img, scale)
	}
	return img
}

var _ ports.Renderer = (*Renderer)(nil)

// ImageDraw records one DrawImage call.
type ImageDraw struct {
	Image image.Image
	X, Y  int
}

// MaskedDraw records one DrawImageMasked call.
type MaskedDraw struct {
	Image   image.Image
	Stencil *image.Alpha
}

// LineDraw records one DrawLine call.
type LineDraw struct {
	X1, Y1, X2, Y2 int
	Color          color.Color
	Width          float64
}

// TextDraw records one DrawText call.
type TextDraw struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas that records drawing
// calls for verification.
type Canvas struct {
	Width      int
	Height     int
	Background color.Color
	Img        *image.RGBA

	// MeasureTextFunc overrides the default linear measurement model.
	MeasureTextFunc func(text string, style ports.TextStyle) (float64, float64)
	// DrawImageMaskedFunc overrides the recording default, for error injection.
	DrawImageMaskedFunc func(img image.Image, stencil *image.Alpha) error

	ImageDraws  []ImageDraw
	MaskedDraws []MaskedDraw
	LineDraws   []LineDraw
	TextDraws   []TextDraw
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.ImageDraws = append(m.ImageDraws, ImageDraw{Image: img, X: x, Y: y})
}

func (m *Canvas) DrawImageMasked(img image.Image, stencil *image.Alpha) error {
	if m.DrawImageMaskedFunc != nil {
		return m.DrawImageMaskedFunc(img, stencil)
	}
	m.MaskedDraws = append(m.MaskedDraws, MaskedDraw{Image: img, Stencil: stencil})
	return nil
}

func (m *Canvas) DrawLine(x1, y1, x2, y2 int, c color.Color, width float64) {
	m.LineDraws = append(m.LineDraws, LineDraw{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.TextDraws = append(m.TextDraws, TextDraw{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (width, height float64) {
	if m.MeasureTextFunc != nil {
		return m.MeasureTextFunc(text, style)
	}
	// Linear model: width scales with size and rune count. Close enough to
	// real faces for layout tests to be meaningful.
	return float64(len([]rune(text))) * style.FontSize * 0.5, style.FontSize * 1.2
}

func (m *Canvas) ToImage() image.Image {
	if m.Img != nil {
		return m.Img
	}
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
