// Package augment applies scan-artifact distortions to rendered
// samples: slight rotation, additive noise, blur and tone shifts, the
// kind of variance that real scanned pages carry. Each distortion is
// applied independently with its own probability.
package augment

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"
)

// Rotate skews the image by a random angle in [-2, 2] degrees,
// filling the exposed corners with white. The canvas expands to hold
// the rotated content.
func Rotate(rng *rand.Rand, img image.Image) *image.NRGBA {
	angle := -2 + rng.Float64()*4
	return imaging.Rotate(img, angle, color.White)
}

// Noise adds Gaussian pixel noise with the given level, where level is
// the standard deviation as a fraction of the full 8-bit range.
func Noise(rng *rand.Rand, img image.Image, level float64) *image.NRGBA {
	out := imaging.Clone(img)
	sigma := level * 255

	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(out.Pix[i+c]) + rng.NormFloat64()*sigma
			out.Pix[i+c] = clamp8(v)
		}
	}
	return out
}

// Blur softens the image with a Gaussian kernel, sigma in [0.5, 0.8].
func Blur(rng *rand.Rand, img image.Image) *image.NRGBA {
	sigma := 0.5 + rng.Float64()*0.3
	return imaging.Blur(img, sigma)
}

// Brightness shifts brightness by a factor in [0.88, 1.12].
func Brightness(rng *rand.Rand, img image.Image) *image.NRGBA {
	factor := 0.88 + rng.Float64()*0.24
	return imaging.AdjustBrightness(img, (factor-1)*100)
}

// Contrast shifts contrast by a factor in [0.9, 1.1].
func Contrast(rng *rand.Rand, img image.Image) *image.NRGBA {
	factor := 0.9 + rng.Float64()*0.2
	return imaging.AdjustContrast(img, (factor-1)*100)
}

// Apply composes the augmentations with per-effect probabilities tuned
// for moderate scanned-paper simulation: rotation 70%, noise 50%,
// blur 50%, brightness 60%, contrast 40%.
func Apply(rng *rand.Rand, img image.Image) image.Image {
	out := img
	if rng.Float64() < 0.7 {
		out = Rotate(rng, out)
	}
	if rng.Float64() < 0.5 {
		out = Noise(rng, out, 0.01)
	}
	if rng.Float64() < 0.5 {
		out = Blur(rng, out)
	}
	if rng.Float64() < 0.6 {
		out = Brightness(rng, out)
	}
	if rng.Float64() < 0.4 {
		out = Contrast(rng, out)
	}
	return out
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
