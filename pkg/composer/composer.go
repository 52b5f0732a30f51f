// Package composer coordinates the overlay stages for one redraw.
package composer

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
	"github.com/user/timemark/pkg/session"
)

// Config contains the drawing configuration for the composer.
type Config struct {
	Brand pipeline.BrandText
	Theme pipeline.OverlayTheme
}

// DefaultConfig returns a Config with the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		Brand: pipeline.DefaultBrandText(),
		Theme: pipeline.DefaultOverlayTheme(),
	}
}

// Composer runs the redaction, watermark and info cluster stages over a
// session's photo.
type Composer struct {
	redactStage    pipeline.Stage[pipeline.RedactInput, pipeline.RedactResult]
	watermarkStage pipeline.Stage[pipeline.WatermarkInput, pipeline.WatermarkResult]
	clusterStage   pipeline.Stage[pipeline.ClusterInput, pipeline.ClusterResult]
	renderer       ports.Renderer
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Composer.
func New(
	redactStage pipeline.Stage[pipeline.RedactInput, pipeline.RedactResult],
	watermarkStage pipeline.Stage[pipeline.WatermarkInput, pipeline.WatermarkResult],
	clusterStage pipeline.Stage[pipeline.ClusterInput, pipeline.ClusterResult],
	renderer ports.Renderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Composer {
	return &Composer{
		redactStage:    redactStage,
		watermarkStage: watermarkStage,
		clusterStage:   clusterStage,
		renderer:       renderer,
		sink:           sink,
		logger:         logger.WithComponent("composer"),
	}
}

// Redraw composes the full overlay and publishes it as the session's
// working surface. Every redraw starts from the pristine original, so
// repeated redraws never stack overlays. The returned layout describes
// the frame that was drawn.
func (c *Composer) Redraw(ctx context.Context, sess *session.Session, config Config) (pipeline.FrameLayout, error) {
	if !sess.HasImage() {
		c.logger.Warn("No photo loaded")
		return pipeline.FrameLayout{}, session.ErrNoImage
	}

	bounds := sess.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	c.logger.Info("Composing overlay onto %dx%d photo", width, height)

	// 1. Base: the pristine photo
	canvas := c.renderer.CreateCanvas(width, height, color.Black)
	canvas.DrawImage(sess.Original(), 0, 0)

	// 2. Redaction blur where the mask was painted
	var blurLayer image.Image
	if mask := sess.Mask(); !mask.IsEmpty() {
		redacted, err := c.redactStage.Execute(ctx, pipeline.RedactInput{
			Canvas:  canvas,
			Source:  sess.Original(),
			Stencil: mask.Alpha(),
		})
		if err != nil {
			c.logger.Error("Failed to apply redaction: %s", err)
			return pipeline.FrameLayout{}, fmt.Errorf("redact stage: %w", err)
		}
		blurLayer = redacted.BlurLayer
	} else {
		c.logger.Debug("Mask empty, skipping redaction")
	}

	// 3. Watermark, which reserves room on the right
	watermarked, err := c.watermarkStage.Execute(ctx, pipeline.WatermarkInput{
		Canvas: canvas,
		Width:  width,
		Height: height,
		Brand:  config.Brand,
		Theme:  config.Theme,
	})
	if err != nil {
		c.logger.Error("Failed to draw watermark: %s", err)
		return pipeline.FrameLayout{}, fmt.Errorf("watermark stage: %w", err)
	}

	// 4. Info cluster on the left, kept clear of the watermark
	clustered, err := c.clusterStage.Execute(ctx, pipeline.ClusterInput{
		Canvas:        canvas,
		Width:         width,
		Height:        height,
		ReservedRight: watermarked.Layout.ReservedRight,
		Fields:        sess.Fields().Display(),
		Theme:         config.Theme,
	})
	if err != nil {
		c.logger.Error("Failed to draw info cluster: %s", err)
		return pipeline.FrameLayout{}, fmt.Errorf("info cluster stage: %w", err)
	}

	// 5. Publish the composed frame
	composed := canvas.ToImage()
	if err := sess.SetComposite(composed); err != nil {
		return pipeline.FrameLayout{}, err
	}

	layout := pipeline.FrameLayout{
		Width:     width,
		Height:    height,
		Watermark: watermarked.Layout,
		Cluster:   clustered.Layout,
	}

	if c.sink.Enabled() {
		if data, err := json.MarshalIndent(layout, "", "  "); err == nil {
			c.sink.SaveLayoutJSON(data)
		}
		c.sink.SaveMask(sess.Mask().Alpha())
		if blurLayer != nil {
			c.sink.SaveBlurLayer(blurLayer)
		}
		c.sink.SaveComposedFrame(composed)
	}

	c.logger.Info("Overlay composed successfully")
	return layout, nil
}
