package generator

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/tessergen/tessergen/internal/augment"
	"github.com/tessergen/tessergen/internal/background"
	"github.com/tessergen/tessergen/internal/boxes"
	"github.com/tessergen/tessergen/internal/config"
	"github.com/tessergen/tessergen/internal/fontkit"
	"github.com/tessergen/tessergen/internal/render"
	"github.com/tessergen/tessergen/internal/textproc"
)

// pipeline is the production Renderer: glyph sizing, drawing, box
// derivation, then the probabilistic raster filters.
type pipeline struct {
	cfg  *config.Config
	mode Mode
	rng  *rand.Rand
}

func newPipeline(cfg *config.Config, mode Mode, rng *rand.Rand) *pipeline {
	return &pipeline{cfg: cfg, mode: mode, rng: rng}
}

func (p *pipeline) Render(chunk Chunk, font *fontkit.Font, counter int) (*Sample, error) {
	size, err := fontkit.FitSize(font, chunk.Text, p.cfg.TargetTextHeight, fontkit.DefaultSizeOptions())
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", font.Name(), err)
	}

	img, geo, err := render.Draw(font, size, chunk.Text, p.cfg.Padding, p.cfg.TargetTextHeight)
	if err != nil {
		return nil, fmt.Errorf("font %s at size %d: %w", font.Name(), size, err)
	}

	// Boxes are derived from the clean render geometry, before any
	// raster filter touches the image.
	imageHeight := img.Bounds().Dy()
	var charBoxes []boxes.Box
	if textproc.IsRTL(chunk.Text) {
		charBoxes, err = boxes.LayoutRTL(font, chunk.Text, size, geo.XEnd, geo.YOffset, imageHeight)
	} else {
		charBoxes, err = boxes.LayoutLTR(font, chunk.Text, size, geo.XStart, geo.YOffset, imageHeight)
	}
	if err != nil {
		return nil, fmt.Errorf("font %s at size %d: %w", font.Name(), size, err)
	}

	prefix := p.mode.prefix()
	var out image.Image = img
	if p.rng.Float64()*100 < p.cfg.AugmentPercentage {
		out = augment.Apply(p.rng, out)
		prefix = "a"
	}
	if p.rng.Float64()*100 < p.cfg.BackgroundPercentage {
		out = background.Apply(p.rng, out, p.cfg.BackgroundIntensity)
	}

	return &Sample{
		BaseName: fmt.Sprintf("%s%04dc%02df%02d", prefix, counter, chunk.Num, font.Index),
		Image:    out,
		Text:     chunk.Text,
		Boxes:    charBoxes,
	}, nil
}
