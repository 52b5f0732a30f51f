// Package infocluster implements the left info cluster stage: the tall
// time readout, the amber divider, the date and weekday column next to
// it, and the two address lines underneath.
package infocluster

import (
	"context"
	"math"

	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
	"github.com/user/timemark/pkg/textfit"
)

const (
	// timeScaleY is the vertical stretch applied to the time glyphs.
	timeScaleY = 1.48

	// timeAscent and timeDescent bound the optical box of the stretched
	// time glyphs, as fractions of the font size. The divider spans that
	// box.
	timeAscent  = 0.78
	timeDescent = 0.12
)

// Stage draws the left info cluster.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new info cluster stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("cluster")}
}

// ComputeLayout computes the cluster geometry for a canvas. The cluster
// claims at most 58% of the photo width and never crosses into the span
// the watermark reserved on the right, except that a 140 px floor keeps
// the text legible on very small photos.
func ComputeLayout(measure pipeline.TextMeasurer, width, height, reservedRight int, fields pipeline.DisplayFields) pipeline.ClusterLayout {
	base := width
	if height < base {
		base = height
	}

	leftMaxWidth := round(float64(width) * 0.58)
	leftX := clampInt(round(float64(width)*0.025), 8, 40)
	bottomPad := clampInt(round(float64(height)*0.035), 8, 60)

	rightLimit := leftX + leftMaxWidth
	if limit := width - reservedRight; limit < rightLimit {
		rightLimit = limit
	}
	maxWidth := rightLimit - leftX
	if maxWidth < 140 {
		maxWidth = 140
	}

	shadowOffset := round(float64(base) * 0.003)
	if shadowOffset < 1 {
		shadowOffset = 1
	}

	// The first address line is the longer one and drives the fit; both
	// lines share the fitted size.
	addressSize := textfit.Fit(func(text string, size int) float64 {
		return measure(text, size, ports.WeightRegular)
	}, fields.AddressLine1, clampInt(round(float64(base)*0.038), 11, 32), 9, float64(maxWidth))
	addressLineH := round(float64(addressSize) * 1.2)
	addressBlockH := addressLineH * 2

	gapMetaToAddr := clampInt(round(float64(base)*0.028), 8, 32)

	// The time may take the cluster width minus a 32% share kept for the
	// meta column, but at least 70 px.
	maxTimeWidth := maxWidth - round(float64(maxWidth)*0.32)
	if maxTimeWidth < 70 {
		maxTimeWidth = 70
	}
	timeSize := textfit.Fit(func(text string, size int) float64 {
		return measure(text, size, ports.WeightBold)
	}, fields.Time, clampInt(round(float64(base)*0.082), 24, 78), 16, float64(maxTimeWidth))

	addressY := height - bottomPad
	timeBaselineY := addressY - addressBlockH - gapMetaToAddr
	timeWidth := measure(fields.Time, timeSize, ports.WeightBold)

	gapX := clampInt(round(float64(base)*0.016), 7, 20)
	dividerX := float64(leftX) + timeWidth + float64(gapX)
	dividerTop := timeBaselineY - round(float64(timeSize)*timeAscent*timeScaleY)
	dividerBottom := timeBaselineY + round(float64(timeSize)*timeDescent*timeScaleY)

	metaX := dividerX + float64(gapX)
	metaMaxWidth := float64(rightLimit) - metaX
	if metaMaxWidth < 70 {
		metaMaxWidth = 70
	}

	// The wider of date and weekday drives the meta fit; the date wins
	// ties.
	longer := fields.Date
	if len([]rune(fields.Weekday)) > len([]rune(fields.Date)) {
		longer = fields.Weekday
	}
	metaSize := textfit.Fit(func(text string, size int) float64 {
		return measure(text, size, ports.WeightMedium)
	}, longer, clampInt(round(float64(timeSize)*0.38), 9, 34), 9, metaMaxWidth)
	metaPad := round(float64(metaSize) * 0.1)

	dividerWidth := round(float64(base) * 0.0035)
	if dividerWidth < 2 {
		dividerWidth = 2
	}

	return pipeline.ClusterLayout{
		LeftX:      leftX,
		BottomPad:  bottomPad,
		RightLimit: rightLimit,
		MaxWidth:   maxWidth,

		AddressSize:  addressSize,
		AddressLineH: addressLineH,
		AddressY:     addressY,

		GapMetaToAddr: gapMetaToAddr,
		TimeSize:      timeSize,
		TimeWidth:     timeWidth,
		TimeBaselineY: timeBaselineY,
		TimeScaleY:    timeScaleY,

		GapX:          gapX,
		DividerX:      dividerX,
		DividerTop:    dividerTop,
		DividerBottom: dividerBottom,
		DividerWidth:  dividerWidth,

		MetaX:            metaX,
		MetaSize:         metaSize,
		MetaPad:          metaPad,
		DateBaselineY:    dividerTop + metaSize + metaPad,
		WeekdayBaselineY: dividerBottom - metaPad,

		ShadowOffset: shadowOffset,
	}
}

// Execute computes the layout and draws the cluster: the stretched time,
// the divider, the date and weekday, then the address lines.
func (s *Stage) Execute(ctx context.Context, input pipeline.ClusterInput) (pipeline.ClusterResult, error) {
	measure := func(text string, size int, weight ports.FontWeight) float64 {
		w, _ := input.Canvas.MeasureText(text, ports.TextStyle{
			FontSize: float64(size),
			Weight:   weight,
			FontPath: input.Theme.FontPath,
		})
		return w
	}

	layout := ComputeLayout(measure, input.Width, input.Height, input.ReservedRight, input.Fields)
	shadow := &ports.TextShadow{Color: input.Theme.ShadowColor, Offset: layout.ShadowOffset}

	input.Canvas.DrawText(input.Fields.Time, layout.LeftX, layout.TimeBaselineY, ports.TextStyle{
		FontSize: float64(layout.TimeSize),
		Weight:   ports.WeightBold,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.TextColor,
		Align:    ports.AlignLeft,
		Baseline: ports.BaselineAlphabetic,
		ScaleY:   layout.TimeScaleY,
		Shadow:   shadow,
	})

	// The divider is the one element drawn without a shadow.
	input.Canvas.DrawLine(round(layout.DividerX), layout.DividerTop,
		round(layout.DividerX), layout.DividerBottom,
		input.Theme.AccentColor, float64(layout.DividerWidth))

	metaStyle := ports.TextStyle{
		FontSize: float64(layout.MetaSize),
		Weight:   ports.WeightMedium,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.TextColor,
		Align:    ports.AlignLeft,
		Baseline: ports.BaselineAlphabetic,
		Shadow:   shadow,
	}
	input.Canvas.DrawText(input.Fields.Date, round(layout.MetaX), layout.DateBaselineY, metaStyle)
	input.Canvas.DrawText(input.Fields.Weekday, round(layout.MetaX), layout.WeekdayBaselineY, metaStyle)

	addressStyle := ports.TextStyle{
		FontSize: float64(layout.AddressSize),
		Weight:   ports.WeightRegular,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.TextColor,
		Align:    ports.AlignLeft,
		Baseline: ports.BaselineBottom,
		Shadow:   shadow,
	}
	input.Canvas.DrawText(input.Fields.AddressLine2, layout.LeftX, layout.AddressY, addressStyle)
	input.Canvas.DrawText(input.Fields.AddressLine1, layout.LeftX, layout.AddressY-layout.AddressLineH, addressStyle)

	s.logger.Debug("Info cluster drawn, time %d px, meta %d px", layout.TimeSize, layout.MetaSize)

	return pipeline.ClusterResult{Layout: layout}, nil
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
