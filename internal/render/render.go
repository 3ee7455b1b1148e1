// Package render rasterizes one text chunk onto a clean white canvas.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tessergen/tessergen/internal/fontkit"
)

// Geometry records where the rendered run landed on the canvas. The
// box layouts need these values to anchor per-character cells.
type Geometry struct {
	XStart  int // leftmost ink pixel of the run
	XEnd    int // rightmost ink pixel of the run
	YOffset int // vertical draw offset used for the run
	Size    int // font size the run was drawn at
}

// Draw renders text in black on a white RGB canvas.
//
// The canvas width follows the measured run plus padding on both
// sides; the height is padded text height, but never less than
// targetHeight plus padding, so short glyphs still produce images of
// consistent height. Ink is centered vertically.
func Draw(f *fontkit.Font, size int, text string, padding, targetHeight int) (*image.RGBA, Geometry, error) {
	box, err := f.Measure(text, size)
	if err != nil {
		return nil, Geometry{}, err
	}

	textHeight := box.Height()
	width := box.Right + padding*2
	if width <= padding*2 {
		width = padding*2 + 1
	}
	height := textHeight + padding*2
	if min := targetHeight + padding*2; height < min {
		height = min
	}

	// Center the ink band: its top row lands at (height-textHeight)/2.
	yOffset := (height-textHeight)/2 - box.Top

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face, err := f.Face(size)
	if err != nil {
		return nil, Geometry{}, fmt.Errorf("failed to instantiate face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(padding),
			Y: fixed.I(yOffset) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)

	geo := Geometry{
		XStart:  padding + box.Left,
		XEnd:    padding + box.Right,
		YOffset: yOffset,
		Size:    size,
	}
	return img, geo, nil
}
