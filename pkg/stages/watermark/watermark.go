// Package watermark implements the brand watermark stage. The two-tone
// brand name with its subtitle goes into the bottom-right corner, and the
// stage reports how much horizontal room it reserved there.
package watermark

import (
	"context"
	"math"

	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
	"github.com/user/timemark/pkg/textfit"
)

// Stage draws the brand watermark.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new watermark stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("watermark")}
}

// ComputeLayout computes the watermark geometry for a canvas. Ratios are
// anchored on the shorter photo side so the mark scales the same way on
// portrait and landscape photos, and the brand shrinks to fit a third of
// the photo width before anything is drawn.
func ComputeLayout(measure pipeline.TextMeasurer, width, height int, brand pipeline.BrandText) pipeline.WatermarkLayout {
	base := width
	if height < base {
		base = height
	}

	padRight := clampInt(round(float64(width)*0.018), 8, 36)
	padBottom := clampInt(round(float64(height)*0.028), 8, 54)

	full := brand.Lead + brand.Tail
	startSize := clampInt(round(float64(base)*0.048), 14, 42)
	maxBrandWidth := round(float64(width) * 0.33)
	brandSize := textfit.Fit(func(text string, size int) float64 {
		return measure(text, size, ports.WeightBold)
	}, full, startSize, 11, float64(maxBrandWidth))
	subtitleSize := clampInt(round(float64(brandSize)*0.53), 9, 22)

	brandWidth := measure(full, brandSize, ports.WeightBold)
	leadWidth := measure(brand.Lead, brandSize, ports.WeightBold)

	startX := float64(width-padRight) - brandWidth
	subtitleY := height - padBottom

	shadowOffset := round(float64(base) * 0.003)
	if shadowOffset < 1 {
		shadowOffset = 1
	}

	return pipeline.WatermarkLayout{
		PadRight:      padRight,
		PadBottom:     padBottom,
		BrandSize:     brandSize,
		SubtitleSize:  subtitleSize,
		BrandWidth:    brandWidth,
		LeadWidth:     leadWidth,
		StartX:        startX,
		CenterX:       startX + brandWidth/2,
		BrandY:        subtitleY - round(float64(subtitleSize)*1.18),
		SubtitleY:     subtitleY,
		ShadowOffset:  shadowOffset,
		ReservedRight: padRight + round(brandWidth) + clampInt(round(float64(width)*0.028), 10, 36),
	}
}

// Execute computes the layout and draws the subtitle and the two brand
// parts. The lead takes the accent color, the tail the text color.
func (s *Stage) Execute(ctx context.Context, input pipeline.WatermarkInput) (pipeline.WatermarkResult, error) {
	measure := func(text string, size int, weight ports.FontWeight) float64 {
		w, _ := input.Canvas.MeasureText(text, ports.TextStyle{
			FontSize: float64(size),
			Weight:   weight,
			FontPath: input.Theme.FontPath,
		})
		return w
	}

	layout := ComputeLayout(measure, input.Width, input.Height, input.Brand)
	shadow := &ports.TextShadow{Color: input.Theme.WatermarkShadowColor, Offset: layout.ShadowOffset}

	input.Canvas.DrawText(input.Brand.Subtitle, round(layout.CenterX), layout.SubtitleY, ports.TextStyle{
		FontSize: float64(layout.SubtitleSize),
		Weight:   ports.WeightMedium,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.SubtitleColor,
		Align:    ports.AlignCenter,
		Baseline: ports.BaselineBottom,
		Shadow:   shadow,
	})

	brandStyle := ports.TextStyle{
		FontSize: float64(layout.BrandSize),
		Weight:   ports.WeightBold,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.AccentColor,
		Align:    ports.AlignLeft,
		Baseline: ports.BaselineBottom,
		Shadow:   shadow,
	}
	input.Canvas.DrawText(input.Brand.Lead, round(layout.StartX), layout.BrandY, brandStyle)

	brandStyle.Color = input.Theme.TextColor
	input.Canvas.DrawText(input.Brand.Tail, round(layout.StartX+layout.LeadWidth), layout.BrandY, brandStyle)

	s.logger.Debug("Watermark drawn, reserving %d px on the right", layout.ReservedRight)

	return pipeline.WatermarkResult{Layout: layout}, nil
}

func round(v float64) int {
	return int(math.Round(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
