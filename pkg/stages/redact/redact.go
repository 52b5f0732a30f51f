// Package redact implements the privacy blur stage. Painted regions of
// the photo are hidden behind a blurred copy of the photo itself.
package redact

import (
	"context"
	"fmt"

	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
)

// blurScale is the downsample ratio used to derive the blur layer. The
// photo shrinks to 18% per side with box filtering and stretches back
// with linear filtering, which reads as a heavy blur at any photo size.
const blurScale = 0.18

// Stage composites a blurred copy of the photo through the mask stencil.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new redaction stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("redact"),
	}
}

// Execute derives the blur layer from the source photo and draws it onto
// the canvas through the stencil. Pixels without mask coverage keep the
// sharp photo underneath.
func (s *Stage) Execute(ctx context.Context, input pipeline.RedactInput) (pipeline.RedactResult, error) {
	s.logger.Debug("Deriving blur layer at %d%% scale", int(blurScale*100))

	blur := s.renderer.BlurImage(input.Source, blurScale)
	if err := input.Canvas.DrawImageMasked(blur, input.Stencil); err != nil {
		return pipeline.RedactResult{}, fmt.Errorf("composite blur layer: %w", err)
	}

	s.logger.Debug("Redaction applied")
	return pipeline.RedactResult{BlurLayer: blur}, nil
}
