package ggrenderer

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/timemark/pkg/ports"
)

// faceCache parses font sources once and caches sized faces. Every redraw
// requests the same handful of sizes, and face construction dominates the
// cost of text drawing.
type faceCache struct {
	mu     sync.Mutex
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

type faceKey struct {
	source string
	size   float64
}

func newFaceCache() *faceCache {
	return &faceCache{
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// face returns a sized face for the style. A FontPath overrides every
// weight with the same file; when it cannot be read the bundled face for
// the style's weight is used instead.
func (fc *faceCache) face(style ports.TextStyle) (font.Face, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	f, err := fc.faceLocked(style)
	if err != nil && style.FontPath != "" {
		fallback := style
		fallback.FontPath = ""
		return fc.faceLocked(fallback)
	}
	return f, err
}

func (fc *faceCache) faceLocked(style ports.TextStyle) (font.Face, error) {
	key := faceKey{source: sourceID(style), size: style.FontSize}
	if f, ok := fc.faces[key]; ok {
		return f, nil
	}

	ft, ok := fc.parsed[key.source]
	if !ok {
		data, err := fontData(style)
		if err != nil {
			return nil, err
		}
		ft, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", key.source, err)
		}
		fc.parsed[key.source] = ft
	}

	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    style.FontSize,
		DPI:     72, // font points equal canvas pixels
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	fc.faces[key] = f
	return f, nil
}

// measure returns the advance width and line height of text in pixels.
func (fc *faceCache) measure(text string, style ports.TextStyle) (float64, float64, error) {
	f, err := fc.face(style)
	if err != nil {
		return 0, 0, err
	}
	d := &font.Drawer{Face: f}
	adv := d.MeasureString(text)
	return float64(adv) / 64, float64(f.Metrics().Height) / 64, nil
}

// descentPixels converts the face descent to pixels for bottom-anchored
// baselines.
func descentPixels(f font.Face) float64 {
	return float64(f.Metrics().Descent) / 64
}

func sourceID(style ports.TextStyle) string {
	if style.FontPath != "" {
		return style.FontPath
	}
	switch style.Weight {
	case ports.WeightBold:
		return "go:bold"
	case ports.WeightMedium:
		return "go:medium"
	default:
		return "go:regular"
	}
}

func fontData(style ports.TextStyle) ([]byte, error) {
	if style.FontPath != "" {
		data, err := os.ReadFile(style.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", style.FontPath, err)
		}
		return data, nil
	}
	switch style.Weight {
	case ports.WeightBold:
		return gobold.TTF, nil
	case ports.WeightMedium:
		return gomedium.TTF, nil
	default:
		return goregular.TTF, nil
	}
}
