// Package boxes derives per-character pixel bounding boxes for text
// laid out by a renderer that only exposes whole-run bounds.
//
// The renderer draws a string as one shaped run, so individual glyph
// positions are not observable directly. For right-to-left scripts the
// last logical character sits at the run's right edge and each
// preceding one extends further left; LayoutRTL exploits this by
// measuring right-anchored suffixes of growing length and treating the
// width delta between consecutive measurements as one character's
// horizontal cell. This is exact when shaping does not reorder or
// merge adjacent letterforms and a practical approximation otherwise;
// true shaped-glyph boundaries would need shaping introspection the
// measurement interface does not provide.
//
// Boxes are emitted in the annotation coordinate convention used by
// Tesseract box files: origin at the image's bottom-left corner with Y
// increasing upward, one line per character.
package boxes

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tessergen/tessergen/internal/fontkit"
)

// Box is one character's bounding box in annotation coordinates.
// Right > Left and Top > Bottom always hold; every coordinate is
// non-negative.
type Box struct {
	Char   rune
	Left   int
	Bottom int
	Right  int
	Top    int
}

// LayoutRTL computes one box per character of text, walking the string
// in reverse logical order from the run's right edge.
//
// xEnd is the rightmost pixel at which the rendered run terminates,
// yOffset the vertical offset the text was drawn at, and imageHeight
// the height of the rendered image. The result is in logical reading
// order, matching the ground-truth text character for character,
// including explicit boxes for spaces.
func LayoutRTL(m fontkit.Measurer, text string, size, xEnd, yOffset, imageHeight int) ([]Box, error) {
	runes := []rune(text)
	vert := newVerticalSource(m, runes, size)

	out := make([]Box, 0, len(runes))
	x := xEnd
	prevWidth := 0

	for i := len(runes) - 1; i >= 0; i-- {
		suffix, err := m.Measure(string(runes[i:]), size)
		if err != nil {
			return nil, fmt.Errorf("suffix measurement failed at character %d: %w", i, err)
		}
		cell := suffix.Width() - prevWidth
		prevWidth = suffix.Width()

		extent, err := vert.extent(runes[i])
		if err != nil {
			return nil, err
		}
		if unicode.IsSpace(runes[i]) && cell <= 0 {
			// Zero-width measurement artifact; substitute a quarter em.
			cell = size / 4
		}

		right := x
		left := right - cell
		x = left

		out = append(out, convert(runes[i], left, right, extent, yOffset, imageHeight))
	}

	reverse(out)
	return out, nil
}

// LayoutLTR is the left-to-right counterpart of LayoutRTL: it walks
// the string in logical order from xStart, measuring left-anchored
// prefixes of growing length.
func LayoutLTR(m fontkit.Measurer, text string, size, xStart, yOffset, imageHeight int) ([]Box, error) {
	runes := []rune(text)
	vert := newVerticalSource(m, runes, size)

	out := make([]Box, 0, len(runes))
	x := xStart
	prevWidth := 0

	for i := range runes {
		prefix, err := m.Measure(string(runes[:i+1]), size)
		if err != nil {
			return nil, fmt.Errorf("prefix measurement failed at character %d: %w", i, err)
		}
		cell := prefix.Width() - prevWidth
		prevWidth = prefix.Width()

		extent, err := vert.extent(runes[i])
		if err != nil {
			return nil, err
		}
		if unicode.IsSpace(runes[i]) && cell <= 0 {
			cell = size / 4
		}

		left := x
		right := left + cell
		x = right

		out = append(out, convert(runes[i], left, right, extent, yOffset, imageHeight))
	}

	return out, nil
}

// convert maps a character's horizontal cell and rendering-space
// vertical extent into a clamped annotation-space box. Rendering space
// has the origin top-left with Y down; annotation space has the origin
// bottom-left with Y up.
func convert(ch rune, left, right int, extent fontkit.BBox, yOffset, imageHeight int) Box {
	top := imageHeight - (yOffset + extent.Top)
	bottom := imageHeight - (yOffset + extent.Bottom)

	if left < 0 {
		left = 0
	}
	if bottom < 0 {
		bottom = 0
	}
	if right < left+1 {
		right = left + 1
	}
	if top < bottom+1 {
		top = bottom + 1
	}

	return Box{Char: ch, Left: left, Bottom: bottom, Right: right, Top: top}
}

// verticalSource measures a character's own vertical ink extent. Space
// glyphs have no ink, so their extent is borrowed from a reference
// character: the first non-space rune of the text, or a digit zero for
// degenerate all-space input.
type verticalSource struct {
	m    fontkit.Measurer
	size int

	ref      rune
	refBox   fontkit.BBox
	refValid bool
}

func newVerticalSource(m fontkit.Measurer, runes []rune, size int) *verticalSource {
	ref := '0'
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			ref = r
			break
		}
	}
	return &verticalSource{m: m, size: size, ref: ref}
}

func (v *verticalSource) extent(ch rune) (fontkit.BBox, error) {
	if unicode.IsSpace(ch) {
		if !v.refValid {
			box, err := v.m.Measure(string(v.ref), v.size)
			if err != nil {
				return fontkit.BBox{}, fmt.Errorf("reference character measurement failed: %w", err)
			}
			v.refBox = box
			v.refValid = true
		}
		return v.refBox, nil
	}
	box, err := v.m.Measure(string(ch), v.size)
	if err != nil {
		return fontkit.BBox{}, fmt.Errorf("character measurement failed: %w", err)
	}
	return box, nil
}

func reverse(boxes []Box) {
	for i, j := 0, len(boxes)-1; i < j; i, j = i+1, j-1 {
		boxes[i], boxes[j] = boxes[j], boxes[i]
	}
}

// Encode renders boxes in the Tesseract box-file format, one line per
// character: "<char> <left> <bottom> <right> <top> 0". The trailing
// zero is the page index consumed by downstream training tools.
func Encode(list []Box) string {
	var sb strings.Builder
	for _, b := range list {
		fmt.Fprintf(&sb, "%c %d %d %d %d 0\n", b.Char, b.Left, b.Bottom, b.Right, b.Top)
	}
	return sb.String()
}
