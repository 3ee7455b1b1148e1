package fontkit

import "fmt"

// SizeOptions bound the candidate scan in FitSize.
type SizeOptions struct {
	Min      int // first candidate size, inclusive
	Max      int // scan limit, exclusive
	Fallback int // returned when no candidate reaches the target
}

// DefaultSizeOptions returns the standard 20..100 scan with a fallback
// of 32, tuned for Tesseract's preferred 30-33px glyph height.
func DefaultSizeOptions() SizeOptions {
	return SizeOptions{Min: 20, Max: 100, Fallback: 32}
}

// FitSize returns the smallest integer size whose rendered height for
// text meets or exceeds targetHeight.
//
// Candidates are scanned ascending from opts.Min, so the result is the
// minimum sufficient size, not the closest one: glyph height is
// monotonically non-decreasing in point size for outline fonts, but a
// font with coarse height jumps between adjacent sizes can overshoot
// the target noticeably. If no candidate below opts.Max reaches the
// target, opts.Fallback is returned.
func FitSize(m Measurer, text string, targetHeight int, opts SizeOptions) (int, error) {
	for size := opts.Min; size < opts.Max; size++ {
		box, err := m.Measure(text, size)
		if err != nil {
			return 0, fmt.Errorf("height measurement failed: %w", err)
		}
		if box.Height() >= targetHeight {
			return size, nil
		}
	}
	return opts.Fallback, nil
}
