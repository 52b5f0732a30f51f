// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/timemark/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new Sink writing under baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveLayoutJSON saves the overlay layout calculation result as JSON.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "layout.json")
	return s.fs.WriteFile(path, data)
}

// SaveMask saves the redaction mask as a grayscale PNG.
func (s *Sink) SaveMask(img image.Image) error {
	return s.savePNG("mask.png", img)
}

// SaveBlurLayer saves the derived blur layer.
func (s *Sink) SaveBlurLayer(img image.Image) error {
	return s.savePNG("blur.png", img)
}

// SaveComposedFrame saves the fully composed frame.
func (s *Sink) SaveComposedFrame(img image.Image) error {
	return s.savePNG("composed.png", img)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
