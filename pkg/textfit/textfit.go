// Package textfit implements the font sizing rule shared by the overlay
// clusters: scan down from a starting size until the text fits its width
// budget.
package textfit

// MeasureFunc returns the advance width in pixels of text drawn at the
// given font size.
type MeasureFunc func(text string, size int) float64

// Fit returns the first size, scanning down from startSize in steps of
// one, at which measure reports a width within maxWidth. When no size
// above minSize fits, minSize is returned unmeasured. A startSize at or
// below minSize also returns minSize.
func Fit(measure MeasureFunc, text string, startSize, minSize int, maxWidth float64) int {
	size := startSize
	for size > minSize {
		if measure(text, size) <= maxWidth {
			return size
		}
		size--
	}
	return minSize
}
