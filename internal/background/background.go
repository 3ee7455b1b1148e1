// Package background replaces the flat white canvas of a rendered
// sample with a realistic scanned-paper background: tinted paper with
// grain, optional aging, scanner lines, uneven lighting, stains and
// corner shadows. The text ink is preserved by masking non-white
// source pixels over the generated paper.
package background

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/noise"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Intensity selects how strong the simulated wear is.
type Intensity string

const (
	Light  Intensity = "light"
	Medium Intensity = "medium"
	Heavy  Intensity = "heavy"
)

// Valid reports whether i is one of the recognized intensities.
func (i Intensity) Valid() bool {
	return i == Light || i == Medium || i == Heavy
}

// preset holds the per-intensity probability and strength table.
type preset struct {
	paperA, paperB colorful.Color
	agingProb      float64
	agingMin       float64
	agingMax       float64
	linesProb      float64
	gradientProb   float64
	gradientMin    float64
	gradientMax    float64
	stainsProb     float64
	shadowProb     float64
	shadowMin      float64
	shadowMax      float64
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func presetFor(i Intensity) preset {
	switch i {
	case Light:
		return preset{
			paperA: rgb(245, 243, 240), paperB: rgb(250, 248, 245),
			agingProb: 0.1, agingMin: 0.1, agingMax: 0.2,
			linesProb:    0.2,
			gradientProb: 0.3, gradientMin: 0.05, gradientMax: 0.1,
			stainsProb: 0.1,
			shadowProb: 0.2, shadowMin: 0.05, shadowMax: 0.1,
		}
	case Heavy:
		return preset{
			paperA: rgb(220, 215, 200), paperB: rgb(240, 235, 220),
			agingProb: 0.5, agingMin: 0.3, agingMax: 0.6,
			linesProb:    0.6,
			gradientProb: 0.7, gradientMin: 0.15, gradientMax: 0.3,
			stainsProb: 0.5,
			shadowProb: 0.5, shadowMin: 0.15, shadowMax: 0.25,
		}
	default: // medium
		return preset{
			paperA: rgb(235, 230, 220), paperB: rgb(245, 242, 235),
			agingProb: 0.3, agingMin: 0.2, agingMax: 0.4,
			linesProb:    0.4,
			gradientProb: 0.5, gradientMin: 0.1, gradientMax: 0.2,
			stainsProb: 0.3,
			shadowProb: 0.3, shadowMin: 0.1, shadowMax: 0.15,
		}
	}
}

// PaperTexture builds a paper background of the given size: a uniform
// base color with fine and coarse grain blended on top.
func PaperTexture(w, h int, base color.NRGBA) *image.NRGBA {
	paper := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(paper, paper.Bounds(), image.NewUniform(base), image.Point{}, draw.Src)

	fine := noise.Generate(w, h, &noise.Options{NoiseFn: noise.Gaussian, Monochrome: true})
	out := blend.Opacity(paper, fine, 0.05)

	// Coarse grain: low-resolution noise upscaled with nearest
	// neighbor so it forms visible 4px blocks.
	cw, ch := (w+3)/4, (h+3)/4
	coarse := noise.Generate(cw, ch, &noise.Options{NoiseFn: noise.Gaussian, Monochrome: true})
	scaled := imaging.Resize(coarse, w, h, imaging.NearestNeighbor)
	out = blend.Opacity(out, scaled, 0.04)

	return imaging.Clone(out)
}

// Aging yellows the paper by reducing the blue channel and burns a few
// small age spots into it. intensity is in [0, 1].
func Aging(rng *rand.Rand, img *image.NRGBA, intensity float64) {
	blueFactor := 1.0 - intensity*0.3
	b := img.Bounds()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+2] = clamp8(float64(img.Pix[i+2]) * blueFactor)
	}

	for n := 0; n < int(intensity*10); n++ {
		x := rng.Intn(b.Dx())
		y := rng.Intn(b.Dy())
		size := 2 + rng.Intn(7)
		darken := 10 + rng.Float64()*20
		stampCircle(img, x, y, size, func(px []uint8, _ float64) {
			for c := 0; c < 3; c++ {
				px[c] = clamp8(float64(px[c]) - darken)
			}
		})
	}
}

// ScannerLines darkens 1-3 random horizontal rows to mimic sensor
// streaks.
func ScannerLines(rng *rand.Rand, img *image.NRGBA) {
	const intensity = 15
	h := img.Bounds().Dy()
	w := img.Bounds().Dx()

	for n := 1 + rng.Intn(3); n > 0; n-- {
		y := rng.Intn(h)
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			for c := 0; c < 3; c++ {
				row[i+c] = clamp8(float64(row[i+c]) - intensity)
			}
		}
	}
}

// Gradient multiplies the image by a linear lighting ramp in a random
// direction, simulating uneven scanner illumination.
func Gradient(rng *rand.Rand, img *image.NRGBA, intensity float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	lo, hi := 1.0-intensity, 1.0+intensity

	var factor func(x, y int) float64
	switch rng.Intn(3) {
	case 0: // horizontal
		factor = func(x, _ int) float64 { return ramp(lo, hi, x, w) }
	case 1: // vertical
		factor = func(_, y int) float64 { return ramp(lo, hi, y, h) }
	default: // diagonal
		factor = func(x, y int) float64 {
			return ramp(lo, hi, x, w)*ramp(lo, hi, y, h)/2 + 0.5
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			f := factor(x, y)
			for c := 0; c < 3; c++ {
				img.Pix[i+c] = clamp8(float64(img.Pix[i+c]) * f)
			}
		}
	}
}

// Stains blends 0-3 light-brown irregular blotches into the paper,
// fading toward their edges.
func Stains(rng *rand.Rand, img *image.NRGBA) {
	b := img.Bounds()
	for n := rng.Intn(4); n > 0; n-- {
		x := rng.Intn(b.Dx())
		y := rng.Intn(b.Dy())
		radius := 5 + rng.Intn(16)
		stain := 180 + rng.Float64()*40

		stampCircle(img, x, y, radius, func(px []uint8, dist float64) {
			alpha := (1.0 - (dist/float64(radius))*0.7) * 0.3
			for c := 0; c < 3; c++ {
				px[c] = clamp8(float64(px[c])*(1-alpha) + stain*alpha)
			}
		})
	}
}

// Shadow darkens one random corner with a fading gradient, as if the
// page did not lie completely flat on the scanner glass.
func Shadow(rng *rand.Rand, img *image.NRGBA, intensity float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	corner := rng.Intn(4)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx := cornerRamp(x, w, corner == 0 || corner == 2, intensity)
			fy := cornerRamp(y, h, corner == 0 || corner == 1, intensity)
			mask := fx * fy / intensity
			if mask > intensity {
				mask = intensity
			}
			if mask <= 0 {
				continue
			}
			i := y*img.Stride + x*4
			for c := 0; c < 3; c++ {
				img.Pix[i+c] = clamp8(float64(img.Pix[i+c]) * (1 - mask))
			}
		}
	}
}

// Apply composites img's text ink onto a freshly generated paper
// background at the given intensity and returns the result.
func Apply(rng *rand.Rand, img image.Image, intensity Intensity) image.Image {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	p := presetFor(intensity)

	base := p.paperA.BlendRgb(p.paperB, rng.Float64())
	br, bg, bb := base.RGB255()
	paper := PaperTexture(w, h, color.NRGBA{R: br, G: bg, B: bb, A: 255})

	if rng.Float64() < p.agingProb {
		Aging(rng, paper, p.agingMin+rng.Float64()*(p.agingMax-p.agingMin))
	}
	if rng.Float64() < p.gradientProb {
		Gradient(rng, paper, p.gradientMin+rng.Float64()*(p.gradientMax-p.gradientMin))
	}
	if rng.Float64() < p.linesProb {
		ScannerLines(rng, paper)
	}
	if rng.Float64() < p.stainsProb {
		Stains(rng, paper)
	}
	if rng.Float64() < p.shadowProb {
		Shadow(rng, paper, p.shadowMin+rng.Float64()*(p.shadowMax-p.shadowMin))
	}

	// Keep every non-white source pixel (the ink); everything else
	// becomes paper.
	for i := 0; i < len(src.Pix); i += 4 {
		if src.Pix[i] < 250 || src.Pix[i+1] < 250 || src.Pix[i+2] < 250 {
			copy(paper.Pix[i:i+3], src.Pix[i:i+3])
		}
	}
	return paper
}

// stampCircle invokes fn on each pixel within radius of (cx, cy),
// passing the pixel slice and its distance from the center.
func stampCircle(img *image.NRGBA, cx, cy, radius int, fn func(px []uint8, dist float64)) {
	b := img.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist > float64(radius) {
				continue
			}
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
				continue
			}
			i := y*img.Stride + x*4
			fn(img.Pix[i:i+3], dist)
		}
	}
}

// ramp interpolates between lo and hi across n steps.
func ramp(lo, hi float64, i, n int) float64 {
	if n <= 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// cornerRamp fades from intensity at the chosen edge to zero at the
// midpoint.
func cornerRamp(i, n int, fromStart bool, intensity float64) float64 {
	half := n / 2
	if half == 0 {
		return 0
	}
	if fromStart {
		if i >= half {
			return 0
		}
		return intensity * float64(half-i) / float64(half)
	}
	if i < n-half {
		return 0
	}
	return intensity * float64(i-(n-half)) / float64(half)
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
