package background

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"
)

func TestIntensityValid(t *testing.T) {
	for _, i := range []Intensity{Light, Medium, Heavy} {
		if !i.Valid() {
			t.Errorf("%q should be valid", i)
		}
	}
	for _, i := range []Intensity{"", "extreme", "LIGHT"} {
		if i.Valid() {
			t.Errorf("%q should be invalid", i)
		}
	}
}

func TestPaperTexture(t *testing.T) {
	base := color.NRGBA{R: 235, G: 230, B: 220, A: 255}
	paper := PaperTexture(37, 21, base)

	if paper.Bounds().Dx() != 37 || paper.Bounds().Dy() != 21 {
		t.Fatalf("paper bounds = %v, want 37x21", paper.Bounds())
	}
	for i := 0; i < len(paper.Pix); i += 4 {
		if paper.Pix[i+3] != 255 {
			t.Fatal("paper must be fully opaque")
		}
		// Grain is blended at low opacity, so pixels stay near the base.
		for c := 0; c < 3; c++ {
			base := [3]uint8{235, 230, 220}[c]
			diff := int(paper.Pix[i+c]) - int(base)
			if diff < -40 || diff > 40 {
				t.Fatalf("pixel channel drifted from base by %d", diff)
			}
		}
	}
}

func TestAging_ReducesBlueChannel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{240, 240, 240, 255}), image.Point{}, draw.Src)

	Aging(rand.New(rand.NewSource(1)), img, 0.4)

	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+2] >= 240 {
			t.Fatalf("blue channel %d not reduced", img.Pix[i+2])
		}
		if img.Pix[i+2] > img.Pix[i] {
			t.Fatal("aging should yellow the paper, keeping blue below red")
		}
	}
}

func TestScannerLines_DarkensRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{200, 200, 200, 255}), image.Point{}, draw.Src)

	ScannerLines(rand.New(rand.NewSource(2)), img)

	darkenedRows := 0
	for y := 0; y < 12; y++ {
		first := img.Pix[y*img.Stride]
		if first < 200 {
			darkenedRows++
			// The same row can be streaked more than once; the drop is
			// always a multiple of 15 and uniform across the row.
			if (200-int(first))%15 != 0 {
				t.Fatalf("row %d value %d is not a multiple-of-15 drop", y, first)
			}
			for x := 0; x < 12; x++ {
				if img.Pix[y*img.Stride+x*4] != first {
					t.Fatalf("row %d is not uniformly darkened", y)
				}
			}
		}
	}
	if darkenedRows < 1 || darkenedRows > 3 {
		t.Errorf("got %d darkened rows, want 1-3", darkenedRows)
	}
}

func TestGradient_AltersLighting(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{200, 200, 200, 255}), image.Point{}, draw.Src)

	Gradient(rand.New(rand.NewSource(3)), img, 0.2)

	var lighter, darker bool
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 200 {
			lighter = true
		}
		if img.Pix[i] < 200 {
			darker = true
		}
	}
	if !lighter || !darker {
		t.Errorf("a lighting ramp should both brighten and darken (lighter=%v darker=%v)", lighter, darker)
	}
}

func TestApply_PreservesInkAndDimensions(t *testing.T) {
	// White canvas with a black ink block in the middle.
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	ink := image.Rect(10, 5, 20, 15)
	draw.Draw(src, ink, image.NewUniform(color.NRGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	for _, intensity := range []Intensity{Light, Medium, Heavy} {
		out := Apply(rand.New(rand.NewSource(5)), src, intensity)

		if !out.Bounds().Eq(src.Bounds()) {
			t.Fatalf("%s: bounds changed to %v", intensity, out.Bounds())
		}
		nrgba, ok := out.(*image.NRGBA)
		if !ok {
			t.Fatalf("%s: expected *image.NRGBA, got %T", intensity, out)
		}
		for y := ink.Min.Y; y < ink.Max.Y; y++ {
			for x := ink.Min.X; x < ink.Max.X; x++ {
				i := y*nrgba.Stride + x*4
				if nrgba.Pix[i] != 0 || nrgba.Pix[i+1] != 0 || nrgba.Pix[i+2] != 0 {
					t.Fatalf("%s: ink pixel (%d,%d) was painted over", intensity, x, y)
				}
			}
		}
		// The white canvas must have become paper somewhere; lighting
		// effects can clamp individual pixels back to white, so scan the
		// whole top row.
		paperFound := false
		for x := 0; x < 40; x++ {
			i := x * 4
			if nrgba.Pix[i] != 255 || nrgba.Pix[i+1] != 255 || nrgba.Pix[i+2] != 255 {
				paperFound = true
				break
			}
		}
		if !paperFound {
			t.Errorf("%s: top row is still pure white", intensity)
		}
	}
}

func TestRamp(t *testing.T) {
	if got := ramp(0.8, 1.2, 0, 10); got != 0.8 {
		t.Errorf("ramp start = %g, want 0.8", got)
	}
	if got := ramp(0.8, 1.2, 9, 10); got != 1.2 {
		t.Errorf("ramp end = %g, want 1.2", got)
	}
	if got := ramp(0.8, 1.2, 5, 1); got != 0.8 {
		t.Errorf("degenerate ramp = %g, want lo", got)
	}
}

func TestCornerRamp(t *testing.T) {
	// Fades from full intensity at the chosen edge to zero at the
	// midpoint, and is zero on the far half.
	if got := cornerRamp(0, 100, true, 0.2); got != 0.2 {
		t.Errorf("edge value = %g, want 0.2", got)
	}
	if got := cornerRamp(50, 100, true, 0.2); got != 0 {
		t.Errorf("midpoint value = %g, want 0", got)
	}
	if got := cornerRamp(99, 100, true, 0.2); got != 0 {
		t.Errorf("far half value = %g, want 0", got)
	}
	if got := cornerRamp(99, 100, false, 0.2); got <= 0 {
		t.Errorf("opposite edge value = %g, want positive", got)
	}
}
