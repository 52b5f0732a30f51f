package textfit

import (
	"testing"
)

// glyphMeasure builds a MeasureFunc whose width grows linearly with the
// font size: width = size * perGlyph * runeCount. The overlay fonts behave
// this way closely enough that the fitting rule can be verified with exact
// integers.
func glyphMeasure(perGlyph float64) MeasureFunc {
	return func(text string, size int) float64 {
		return float64(size) * perGlyph * float64(len([]rune(text)))
	}
}

func TestFit_ScansDownToFirstFit(t *testing.T) {
	// "05:37" has 5 runes, so with perGlyph 0.6 the width is 3.0 * size.
	// maxWidth 120 first fits at size 40 (3.0 * 40 = 120).
	measure := glyphMeasure(0.6)

	tests := []struct {
		name      string
		text      string
		startSize int
		minSize   int
		maxWidth  float64
		want      int
	}{
		{
			name:      "shrinks until width budget is met",
			text:      "05:37",
			startSize: 78,
			minSize:   16,
			maxWidth:  120,
			want:      40,
		},
		{
			name:      "keeps start size when it already fits",
			text:      "05:37",
			startSize: 30, // 3.0 * 30 = 90 <= 120
			minSize:   16,
			maxWidth:  120,
			want:      30,
		},
		{
			name:      "floors at min size when nothing fits",
			text:      "05:37",
			startSize: 78,
			minSize:   16,
			maxWidth:  10, // even size 17 is 51 wide
			want:      16,
		},
		{
			name:      "start equal to min returns min",
			text:      "05:37",
			startSize: 16,
			minSize:   16,
			maxWidth:  1000,
			want:      16,
		},
		{
			name:      "start below min returns min",
			text:      "05:37",
			startSize: 9,
			minSize:   16,
			maxWidth:  1000,
			want:      16,
		},
		{
			name:      "multibyte runes measure per rune",
			text:      "Thứ Năm", // 7 runes, width = 4.2 * size
			startSize: 34,
			minSize:   9,
			maxWidth:  100, // first fit at size 23 (4.2 * 23 = 96.6)
			want:      23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(measure, tt.text, tt.startSize, tt.minSize, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Fit(%q, %d, %d, %.0f): expected %d, got %d",
					tt.text, tt.startSize, tt.minSize, tt.maxWidth, tt.want, got)
			}
		})
	}
}

// TestFit_MinSizeIsNotMeasured verifies the scan stops above the floor:
// the floor is returned as-is, never measured.
func TestFit_MinSizeIsNotMeasured(t *testing.T) {
	calls := []int{}
	measure := func(text string, size int) float64 {
		calls = append(calls, size)
		return 1e9 // nothing ever fits
	}

	got := Fit(measure, "x", 12, 9, 50)
	if got != 9 {
		t.Fatalf("expected floor 9, got %d", got)
	}
	// Sizes 12, 11, 10 are measured; 9 is returned without measuring.
	expected := []int{12, 11, 10}
	if len(calls) != len(expected) {
		t.Fatalf("expected %d measurements, got %d (%v)", len(expected), len(calls), calls)
	}
	for i, size := range expected {
		if calls[i] != size {
			t.Errorf("measurement %d: expected size %d, got %d", i, size, calls[i])
		}
	}
}

// TestFit_StartBelowMinSkipsMeasuring verifies no measurement happens when
// the start size is already at or under the floor.
func TestFit_StartBelowMinSkipsMeasuring(t *testing.T) {
	called := false
	measure := func(text string, size int) float64 {
		called = true
		return 0
	}

	if got := Fit(measure, "x", 9, 16, 1000); got != 16 {
		t.Fatalf("expected 16, got %d", got)
	}
	if called {
		t.Error("measure should not be called when startSize <= minSize")
	}
}

// TestFit_MonotonicInMaxWidth verifies that widening the budget never
// shrinks the fitted size. The clusters rely on this when the watermark
// reservation changes between redraws.
func TestFit_MonotonicInMaxWidth(t *testing.T) {
	measure := glyphMeasure(0.55)
	prev := 0
	for w := 0.0; w <= 400.0; w += 3.5 {
		size := Fit(measure, "268B Võ Nguyên Giáp", 32, 9, w)
		if size < prev {
			t.Fatalf("maxWidth %.1f: size %d dropped below previous %d", w, size, prev)
		}
		if size < 9 || size > 32 {
			t.Fatalf("maxWidth %.1f: size %d out of [9, 32]", w, size)
		}
		prev = size
	}
}
