package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate compositing results for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveLayoutJSON saves the overlay layout calculation result as JSON.
	SaveLayoutJSON(data []byte) error

	// SaveMask saves the redaction mask as a grayscale image.
	SaveMask(img image.Image) error

	// SaveBlurLayer saves the derived blur layer image.
	SaveBlurLayer(img image.Image) error

	// SaveComposedFrame saves the fully composed frame.
	SaveComposedFrame(img image.Image) error
}
