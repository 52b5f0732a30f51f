package composer

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/user/timemark/pkg/adapters/logger"
	"github.com/user/timemark/pkg/mocks"
	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
	"github.com/user/timemark/pkg/session"
	"github.com/user/timemark/pkg/stages/infocluster"
	"github.com/user/timemark/pkg/stages/redact"
	"github.com/user/timemark/pkg/stages/watermark"
)

type stageCalls struct {
	redact    []pipeline.RedactInput
	watermark []pipeline.WatermarkInput
	cluster   []pipeline.ClusterInput
}

// newStubComposer wires a composer whose stages only record their inputs.
func newStubComposer(renderer *mocks.Renderer, sink *mocks.DebugSink, reserved int) (*Composer, *stageCalls) {
	calls := &stageCalls{}

	redactStage := pipeline.StageFunc[pipeline.RedactInput, pipeline.RedactResult](
		func(ctx context.Context, input pipeline.RedactInput) (pipeline.RedactResult, error) {
			calls.redact = append(calls.redact, input)
			return pipeline.RedactResult{BlurLayer: input.Source}, nil
		})
	watermarkStage := pipeline.StageFunc[pipeline.WatermarkInput, pipeline.WatermarkResult](
		func(ctx context.Context, input pipeline.WatermarkInput) (pipeline.WatermarkResult, error) {
			calls.watermark = append(calls.watermark, input)
			return pipeline.WatermarkResult{Layout: pipeline.WatermarkLayout{ReservedRight: reserved}}, nil
		})
	clusterStage := pipeline.StageFunc[pipeline.ClusterInput, pipeline.ClusterResult](
		func(ctx context.Context, input pipeline.ClusterInput) (pipeline.ClusterResult, error) {
			calls.cluster = append(calls.cluster, input)
			return pipeline.ClusterResult{}, nil
		})

	return New(redactStage, watermarkStage, clusterStage, renderer, sink, logger.NewNoop()), calls
}

func loadedSession(t *testing.T, renderer *mocks.Renderer, w, h int) *session.Session {
	t.Helper()
	sess := session.New(renderer, logger.NewNoop(), session.Config{})
	if err := sess.LoadDecoded(image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("LoadDecoded failed: %v", err)
	}
	return sess
}

func TestRedraw_NoImage(t *testing.T) {
	renderer := &mocks.Renderer{}
	c, _ := newStubComposer(renderer, mocks.NewDebugSink(false), 100)

	sess := session.New(renderer, logger.NewNoop(), session.Config{})
	_, err := c.Redraw(context.Background(), sess, DefaultConfig())
	if !errors.Is(err, session.ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if len(renderer.Canvases) != 0 {
		t.Error("expected no canvas without a photo")
	}
}

func TestRedraw_EmptyMaskSkipsRedaction(t *testing.T) {
	renderer := &mocks.Renderer{}
	c, calls := newStubComposer(renderer, mocks.NewDebugSink(false), 150)
	sess := loadedSession(t, renderer, 640, 480)

	layout, err := c.Redraw(context.Background(), sess, DefaultConfig())
	if err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	if len(calls.redact) != 0 {
		t.Error("expected the redact stage skipped for an empty mask")
	}
	if len(calls.watermark) != 1 || len(calls.cluster) != 1 {
		t.Fatalf("expected 1 watermark and 1 cluster call, got %d and %d",
			len(calls.watermark), len(calls.cluster))
	}

	// The cluster must honor the watermark's reservation.
	if calls.cluster[0].ReservedRight != 150 {
		t.Errorf("expected reserved right 150 forwarded, got %d", calls.cluster[0].ReservedRight)
	}
	if layout.Width != 640 || layout.Height != 480 {
		t.Errorf("expected 640x480 layout, got %dx%d", layout.Width, layout.Height)
	}

	// The base pass draws the pristine original at the origin.
	if len(renderer.Canvases) != 1 {
		t.Fatalf("expected 1 canvas, got %d", len(renderer.Canvases))
	}
	canvas := renderer.Canvases[0]
	if len(canvas.ImageDraws) != 1 {
		t.Fatalf("expected 1 base image draw, got %d", len(canvas.ImageDraws))
	}
	base := canvas.ImageDraws[0]
	if base.Image != sess.Original() || base.X != 0 || base.Y != 0 {
		t.Error("expected the original drawn at the origin")
	}
}

func TestRedraw_PaintedMaskRunsRedaction(t *testing.T) {
	renderer := &mocks.Renderer{}
	c, calls := newStubComposer(renderer, mocks.NewDebugSink(false), 100)
	sess := loadedSession(t, renderer, 320, 240)
	if err := sess.Paint(160, 120, 28); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}

	if _, err := c.Redraw(context.Background(), sess, DefaultConfig()); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	if len(calls.redact) != 1 {
		t.Fatalf("expected 1 redact call, got %d", len(calls.redact))
	}
	if calls.redact[0].Source != sess.Original() {
		t.Error("expected the blur derived from the pristine original")
	}
	if calls.redact[0].Stencil != sess.Mask().Alpha() {
		t.Error("expected the painted mask as stencil")
	}
}

func TestRedraw_FieldsResolvedForCluster(t *testing.T) {
	renderer := &mocks.Renderer{}
	c, calls := newStubComposer(renderer, mocks.NewDebugSink(false), 100)
	sess := loadedSession(t, renderer, 320, 240)

	fields := sess.Fields()
	fields.Time = ""
	fields.Date = "2026-01-10"
	fields.Weekday = "not a weekday"
	sess.SetFields(fields)

	if _, err := c.Redraw(context.Background(), sess, DefaultConfig()); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	got := calls.cluster[0].Fields
	if got.Time != pipeline.DefaultTime {
		t.Errorf("expected default time, got %q", got.Time)
	}
	if got.Date != "10/01/2026" {
		t.Errorf("expected 10/01/2026, got %q", got.Date)
	}
	if got.Weekday != pipeline.DefaultWeekday {
		t.Errorf("expected default weekday for an unknown label, got %q", got.Weekday)
	}
}

func TestRedraw_PublishesComposite(t *testing.T) {
	renderer := &mocks.Renderer{}
	composed := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for i := range composed.Pix {
		composed.Pix[i] = 0x7F
	}
	renderer.CreateCanvasFunc = func(width, height int, bg color.Color) ports.Canvas {
		return &mocks.Canvas{Width: width, Height: height, Background: bg, Img: composed}
	}

	c, _ := newStubComposer(renderer, mocks.NewDebugSink(false), 100)
	sess := loadedSession(t, renderer, 320, 240)

	if _, err := c.Redraw(context.Background(), sess, DefaultConfig()); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}
	if sess.Working().Pix[0] != 0x7F {
		t.Error("expected the composed frame published to the working surface")
	}
}

func TestRedraw_StageErrors(t *testing.T) {
	renderer := &mocks.Renderer{}
	boom := errors.New("boom")

	failRedact := pipeline.StageFunc[pipeline.RedactInput, pipeline.RedactResult](
		func(ctx context.Context, input pipeline.RedactInput) (pipeline.RedactResult, error) {
			return pipeline.RedactResult{}, boom
		})
	failWatermark := pipeline.StageFunc[pipeline.WatermarkInput, pipeline.WatermarkResult](
		func(ctx context.Context, input pipeline.WatermarkInput) (pipeline.WatermarkResult, error) {
			return pipeline.WatermarkResult{}, boom
		})
	okWatermark := pipeline.StageFunc[pipeline.WatermarkInput, pipeline.WatermarkResult](
		func(ctx context.Context, input pipeline.WatermarkInput) (pipeline.WatermarkResult, error) {
			return pipeline.WatermarkResult{}, nil
		})
	failCluster := pipeline.StageFunc[pipeline.ClusterInput, pipeline.ClusterResult](
		func(ctx context.Context, input pipeline.ClusterInput) (pipeline.ClusterResult, error) {
			return pipeline.ClusterResult{}, boom
		})
	okCluster := pipeline.StageFunc[pipeline.ClusterInput, pipeline.ClusterResult](
		func(ctx context.Context, input pipeline.ClusterInput) (pipeline.ClusterResult, error) {
			return pipeline.ClusterResult{}, nil
		})

	t.Run("watermark failure", func(t *testing.T) {
		c := New(failRedact, failWatermark, okCluster, renderer, mocks.NewDebugSink(false), logger.NewNoop())
		sess := loadedSession(t, renderer, 64, 64)
		_, err := c.Redraw(context.Background(), sess, DefaultConfig())
		if err == nil || !errors.Is(err, boom) {
			t.Fatalf("expected wrapped stage error, got %v", err)
		}
		if !strings.Contains(err.Error(), "watermark stage") {
			t.Errorf("expected watermark stage context, got %v", err)
		}
	})

	t.Run("cluster failure", func(t *testing.T) {
		c := New(failRedact, okWatermark, failCluster, renderer, mocks.NewDebugSink(false), logger.NewNoop())
		sess := loadedSession(t, renderer, 64, 64)
		_, err := c.Redraw(context.Background(), sess, DefaultConfig())
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped stage error, got %v", err)
		}
		if !strings.Contains(err.Error(), "info cluster stage") {
			t.Errorf("expected info cluster stage context, got %v", err)
		}
	})

	t.Run("redact failure", func(t *testing.T) {
		c := New(failRedact, okWatermark, okCluster, renderer, mocks.NewDebugSink(false), logger.NewNoop())
		sess := loadedSession(t, renderer, 64, 64)
		if err := sess.Paint(32, 32, 8); err != nil {
			t.Fatalf("Paint failed: %v", err)
		}
		_, err := c.Redraw(context.Background(), sess, DefaultConfig())
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped stage error, got %v", err)
		}
		if !strings.Contains(err.Error(), "redact stage") {
			t.Errorf("expected redact stage context, got %v", err)
		}
	})
}

func TestRedraw_DebugSinkCollectsArtifacts(t *testing.T) {
	renderer := &mocks.Renderer{}
	sink := mocks.NewDebugSink(true)
	c, _ := newStubComposer(renderer, sink, 100)
	sess := loadedSession(t, renderer, 320, 240)
	if err := sess.Paint(50, 50, 10); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}

	if _, err := c.Redraw(context.Background(), sess, DefaultConfig()); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	if sink.LayoutJSON == nil {
		t.Fatal("expected layout JSON saved")
	}
	var layout pipeline.FrameLayout
	if err := json.Unmarshal(sink.LayoutJSON, &layout); err != nil {
		t.Fatalf("layout JSON does not parse: %v", err)
	}
	if layout.Width != 320 || layout.Height != 240 {
		t.Errorf("expected 320x240 in the layout JSON, got %dx%d", layout.Width, layout.Height)
	}
	if sink.Mask == nil {
		t.Error("expected the mask saved")
	}
	if sink.BlurLayer == nil {
		t.Error("expected the blur layer saved")
	}
	if sink.ComposedFrame == nil {
		t.Error("expected the composed frame saved")
	}
}

func TestRedraw_RealStagesEndToEnd(t *testing.T) {
	renderer := &mocks.Renderer{}
	c := New(
		redact.NewStage(renderer, logger.NewNoop()),
		watermark.NewStage(logger.NewNoop()),
		infocluster.NewStage(logger.NewNoop()),
		renderer,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	sess := loadedSession(t, renderer, 1920, 1080)
	if err := sess.Paint(960, 540, 55); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}

	layout, err := c.Redraw(context.Background(), sess, DefaultConfig())
	if err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	// The mock measurer gives 0.5 px per rune and size step, which puts
	// the watermark reservation at 239 px and the cluster's right limit
	// at 1154 px.
	if layout.Watermark.ReservedRight != 239 {
		t.Errorf("expected reserved right 239, got %d", layout.Watermark.ReservedRight)
	}
	if layout.Cluster.RightLimit != 1154 {
		t.Errorf("expected right limit 1154, got %d", layout.Cluster.RightLimit)
	}
	if layout.Cluster.RightLimit+layout.Watermark.ReservedRight > 1920 {
		t.Error("cluster crosses into the watermark reservation")
	}

	canvas := renderer.Canvases[0]
	if len(canvas.MaskedDraws) != 1 {
		t.Errorf("expected 1 redaction draw, got %d", len(canvas.MaskedDraws))
	}
	// 3 watermark texts + time, date, weekday and 2 address lines.
	if len(canvas.TextDraws) != 8 {
		t.Errorf("expected 8 text draws, got %d", len(canvas.TextDraws))
	}
	if len(canvas.LineDraws) != 1 {
		t.Errorf("expected 1 divider draw, got %d", len(canvas.LineDraws))
	}
}
