// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/timemark/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library. Font faces are
// cached on the renderer and shared by every canvas it creates.
type Renderer struct {
	faces *faceCache
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{faces: newFaceCache()}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, faces: r.faces}
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// BlurImage softens an image by shrinking it to the given linear scale and
// stretching it back to full size. Box sampling averages pixels on the way
// down; the linear stretch back up smears them, which reads as a blur at
// small scales.
func (r *Renderer) BlurImage(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}
	sw := int(float64(w) * scale)
	sh := int(float64(h) * scale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	small := imaging.Resize(img, sw, sh, imaging.Box)
	return imaging.Resize(small, w, h, imaging.Linear)
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc    *gg.Context
	faces *faceCache
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageMasked draws an image through an alpha stencil. The stencil
// must match the canvas size.
func (c *Canvas) DrawImageMasked(img image.Image, stencil *image.Alpha) error {
	if err := c.dc.SetMask(stencil); err != nil {
		return fmt.Errorf("set stencil: %w", err)
	}
	c.dc.DrawImage(img, 0, 0)
	c.dc.ResetClip()
	return nil
}

// DrawText draws text at the specified position.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	face, err := c.faces.face(style)
	if err != nil {
		return
	}
	c.dc.SetFontFace(face)

	fx, fy := float64(x), float64(y)
	switch style.Align {
	case ports.AlignCenter, ports.AlignRight:
		w, _, merr := c.faces.measure(text, style)
		if merr == nil {
			if style.Align == ports.AlignCenter {
				fx -= w / 2
			} else {
				fx -= w
			}
		}
	}
	if style.Baseline == ports.BaselineBottom {
		fy -= descentPixels(face)
	}

	if style.Shadow != nil {
		off := float64(style.Shadow.Offset)
		c.drawString(text, fx+off, fy+off, style.Shadow.Color, style.ScaleY)
	}
	c.drawString(text, fx, fy, style.Color, style.ScaleY)
}

// drawString paints one pass of glyphs with the baseline at y, stretching
// them vertically when scaleY is set.
func (c *Canvas) drawString(text string, x, y float64, col color.Color, scaleY float64) {
	c.dc.SetColor(col)
	if scaleY > 0 && scaleY != 1 {
		c.dc.Push()
		c.dc.Scale(1, scaleY)
		c.dc.DrawString(text, x, y/scaleY)
		c.dc.Pop()
		return
	}
	c.dc.DrawString(text, x, y)
}

// MeasureText returns the advance width and line height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (width, height float64) {
	w, h, err := c.faces.measure(text, style)
	if err != nil {
		return 0, 0
	}
	return w, h
}

// DrawLine draws a line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	c.dc.Stroke()
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
