// Package session manages the editing surfaces of one photo: the working
// surface composites are published to, the untouched original snapshot,
// and the redaction mask. Every composite starts from the original
// snapshot; overlays are never baked on top of previous overlays.
package session

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/user/timemark/pkg/mask"
	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
)

var (
	// ErrNoImage is returned by operations that need a loaded photo.
	ErrNoImage = errors.New("session: no image loaded")
)

// Config controls session behavior.
type Config struct {
	// MaxDimension caps the longest side of loaded photos; larger photos
	// are downscaled preserving aspect ratio. Zero disables the cap.
	MaxDimension int
}

// Session holds the surfaces and overlay fields for one photo. It is not
// safe for concurrent use; the host serializes edits and redraws.
type Session struct {
	renderer ports.Renderer
	logger   ports.Logger
	cfg      Config

	working  *image.RGBA
	original *image.RGBA
	mask     *mask.Mask
	fields   pipeline.OverlayFields

	now func() time.Time
}

// New creates an empty session. Fields start blank and fall back to the
// calibrated defaults at draw time.
func New(renderer ports.Renderer, logger ports.Logger, cfg Config) *Session {
	return &Session{
		renderer: renderer,
		logger:   logger.WithComponent("session"),
		cfg:      cfg,
		now:      time.Now,
	}
}

// LoadImage decodes photo bytes and installs them as the session's
// surfaces. The previous photo, composite and mask strokes are discarded.
func (s *Session) LoadImage(data []byte) error {
	img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}
	return s.LoadDecoded(img)
}

// LoadDecoded installs an already-decoded photo, for hosts that hand over
// camera frames directly. An empty date field is seeded with today so the
// overlay matches the shooting day by default.
func (s *Session) LoadDecoded(img image.Image) error {
	if img == nil {
		return ErrNoImage
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return ErrNoImage
	}
	if s.cfg.MaxDimension > 0 && (w > s.cfg.MaxDimension || h > s.cfg.MaxDimension) {
		w, h = fitWithin(w, h, s.cfg.MaxDimension)
		img = s.renderer.ResizeImage(img, w, h)
		b = img.Bounds()
		s.logger.Debug("Photo downscaled to %dx%d px", w, h)
	}

	working := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(working, working.Rect, img, b.Min, draw.Src)

	original := image.NewRGBA(working.Rect)
	copy(original.Pix, working.Pix)

	s.working = working
	s.original = original
	s.mask = mask.New(w, h)

	if s.fields.Date == "" {
		s.fields.Date = s.now().Format("2006-01-02")
	}

	s.logger.Debug("Photo loaded: %dx%d px", w, h)
	return nil
}

// RestoreOriginal discards the composite and the mask strokes, bringing
// the working surface back to the pristine photo.
func (s *Session) RestoreOriginal() error {
	if s.working == nil {
		return ErrNoImage
	}
	copy(s.working.Pix, s.original.Pix)
	s.mask.Clear()
	s.logger.Debug("Restored original photo")
	return nil
}

// ExportEncoded encodes the working surface. The surfaces are left
// untouched even when encoding fails.
func (s *Session) ExportEncoded(format ports.ImageFormat, quality int) ([]byte, error) {
	if s.working == nil {
		return nil, ErrNoImage
	}
	data, err := s.renderer.EncodeImage(s.working, format, quality)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// Paint stamps one redaction brush stroke onto the mask. Coordinates
// outside the photo are clamped into it.
func (s *Session) Paint(x, y, radius int) error {
	if s.working == nil {
		return ErrNoImage
	}
	s.mask.Paint(x, y, radius)
	s.logger.Debug("Painted mask at (%d, %d) radius %d", x, y, radius)
	return nil
}

// ClearMask erases all redaction strokes. Without a photo it does
// nothing.
func (s *Session) ClearMask() {
	if s.mask == nil {
		return
	}
	s.mask.Clear()
	s.logger.Debug("Mask cleared")
}

// HasImage reports whether a photo is loaded.
func (s *Session) HasImage() bool {
	return s.working != nil
}

// Bounds returns the photo dimensions, or the zero rectangle when no
// photo is loaded.
func (s *Session) Bounds() image.Rectangle {
	if s.working == nil {
		return image.Rectangle{}
	}
	return s.working.Rect
}

// Original returns the pristine snapshot. Callers must treat it as
// read-only.
func (s *Session) Original() *image.RGBA {
	return s.original
}

// Working returns the working surface. Callers must treat it as
// read-only; composites are published through SetComposite.
func (s *Session) Working() *image.RGBA {
	return s.working
}

// Mask returns the redaction mask, or nil when no photo is loaded.
func (s *Session) Mask() *mask.Mask {
	return s.mask
}

// Fields returns the overlay fields as entered.
func (s *Session) Fields() pipeline.OverlayFields {
	return s.fields
}

// SetFields replaces the overlay fields.
func (s *Session) SetFields(f pipeline.OverlayFields) {
	s.fields = f
}

// SetComposite publishes a composed frame as the new working surface.
// The composer calls this at the end of every redraw.
func (s *Session) SetComposite(img image.Image) error {
	if s.working == nil {
		return ErrNoImage
	}
	draw.Draw(s.working, s.working.Rect, img, img.Bounds().Min, draw.Src)
	return nil
}

// fitWithin scales w x h down so the longest side equals limit,
// preserving aspect ratio.
func fitWithin(w, h, limit int) (int, int) {
	if w >= h {
		nh := (h*limit + w/2) / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := (w*limit + h/2) / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}
