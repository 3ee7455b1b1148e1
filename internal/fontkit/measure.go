package fontkit

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// BBox is a tight pixel bounding box in rendering coordinates: the
// origin is the top-left corner of the drawing anchor, X increases
// rightward and Y increases downward. Top/Bottom are measured with the
// baseline placed at the face ascent, matching how Draw positions ink.
type BBox struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal ink extent.
func (b BBox) Width() int { return b.Right - b.Left }

// Height returns the vertical ink extent.
func (b BBox) Height() int { return b.Bottom - b.Top }

// Measurer is the measurement capability injected into the glyph
// sizer and the character box layouts. Implementations return the
// tight bounding box of text rendered at the given integer size.
//
// *Font satisfies Measurer; tests use a deterministic fake so the
// sizing and box algorithms can be verified without font files.
type Measurer interface {
	Measure(text string, size int) (BBox, error)
}

// Font is one discovered font file parsed into memory.
//
// Index is the stable 1-based position assigned at discovery time
// (fonts are sorted by path, so indices are reproducible across runs
// as long as the font directory does not change). The parsed font is
// immutable for the process lifetime; faces are instantiated per size.
type Font struct {
	Path  string
	Index int

	parsed *sfnt.Font
}

// Load reads and parses a font file. Index is recorded as-is.
func Load(path string, index int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &Font{Path: path, Index: index, parsed: parsed}, nil
}

// Name returns the font's file name without directory.
func (f *Font) Name() string { return filepath.Base(f.Path) }

// Face instantiates the font at the given size in pixels (72 DPI, no
// hinting). The returned face is not safe for concurrent use and
// should be closed when done.
func (f *Font) Face(size int) (font.Face, error) {
	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font %s at size %d: %w", f.Name(), size, err)
	}
	return face, nil
}

// Measure returns the tight bounding box of text at the given size.
func (f *Font) Measure(text string, size int) (BBox, error) {
	face, err := f.Face(size)
	if err != nil {
		return BBox{}, err
	}
	defer face.Close()
	return boundString(face, text), nil
}

// boundString converts the face's baseline-relative string bounds into
// the top-left-origin BBox convention.
func boundString(face font.Face, text string) BBox {
	bounds, _ := font.BoundString(face, text)
	ascent := face.Metrics().Ascent
	return BBox{
		Left:   bounds.Min.X.Floor(),
		Top:    (ascent + bounds.Min.Y).Floor(),
		Right:  bounds.Max.X.Ceil(),
		Bottom: (ascent + bounds.Max.Y).Ceil(),
	}
}
