// Package main is a test program for overlay geometry calibration.
// It stamps a synthetic scene at several photo sizes and writes the
// results to tmp/stamps for visual inspection.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/user/timemark/pkg/adapters/ggrenderer"
	"github.com/user/timemark/pkg/adapters/logger"
	"github.com/user/timemark/pkg/adapters/nullsink"
	"github.com/user/timemark/pkg/composer"
	"github.com/user/timemark/pkg/ports"
	"github.com/user/timemark/pkg/session"
	"github.com/user/timemark/pkg/stages/infocluster"
	"github.com/user/timemark/pkg/stages/redact"
	"github.com/user/timemark/pkg/stages/watermark"
)

const outDir = "tmp/stamps"

// sizes covers compact previews, both phone orientations and full HD.
var sizes = [][2]int{
	{320, 240},
	{720, 1280},
	{1280, 720},
	{1920, 1080},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Reset the output directory
	fmt.Printf("Cleaning up %s...\n", outDir)
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	// 2. Wire the real stages behind a debug-level console logger
	renderer := ggrenderer.New()
	log := logger.NewConsole(ports.LevelDebug)

	comp := composer.New(
		redact.NewStage(renderer, log),
		watermark.NewStage(log),
		infocluster.NewStage(log),
		renderer,
		nullsink.New(),
		log,
	)

	// 3. Stamp the scene at every size
	for _, size := range sizes {
		w, h := size[0], size[1]
		fmt.Printf("Stamping %dx%d...\n", w, h)

		sess := session.New(renderer, log, session.Config{})
		if err := sess.LoadDecoded(scene(w, h)); err != nil {
			return fmt.Errorf("load %dx%d: %w", w, h, err)
		}

		// One stroke over the busy band so the blur is visible
		if err := sess.Paint(w/2, h/3, w/12); err != nil {
			return fmt.Errorf("paint %dx%d: %w", w, h, err)
		}

		if _, err := comp.Redraw(context.Background(), sess, composer.DefaultConfig()); err != nil {
			return fmt.Errorf("redraw %dx%d: %w", w, h, err)
		}

		data, err := sess.ExportEncoded(ports.FormatJPEG, 92)
		if err != nil {
			return fmt.Errorf("export %dx%d: %w", w, h, err)
		}

		name := filepath.Join(outDir, fmt.Sprintf("stamp_%dx%d.jpg", w, h))
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Printf("Saved %s (%d bytes)\n", name, len(data))
	}

	fmt.Printf("Stamped %d sizes to %s\n", len(sizes), outDir)
	return nil
}

// scene paints a sky-to-ground gradient with a busy checker band across
// the upper third, standing in for on-image text that needs redacting.
func scene(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{
				R: uint8(40 + 80*y/height),
				G: uint8(90 + 100*y/height),
				B: uint8(160 - 60*y/height),
				A: 255,
			}
			if y > height/3-height/12 && y < height/3+height/12 && (x/6+y/6)%2 == 0 {
				c = color.RGBA{R: 245, G: 245, B: 245, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}
