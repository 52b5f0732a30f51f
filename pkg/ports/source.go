package ports

import (
	"context"
)

// ImageSource abstracts where source photographs come from, such as a
// file on disk or a camera frame handed over by the host application.
type ImageSource interface {
	// Acquire obtains the raw, still-encoded bytes of a source image.
	Acquire(ctx context.Context) ([]byte, error)
}
