// Package generator drives sample production: it pairs text chunks
// with fonts, renders each accepted pair into a labeled sample and
// tracks run statistics under a bounded attempt budget.
package generator

import (
	"fmt"
	"image"
	"log"
	"math/rand"

	"github.com/tessergen/tessergen/internal/boxes"
	"github.com/tessergen/tessergen/internal/config"
	"github.com/tessergen/tessergen/internal/fontkit"
)

// Mode selects the input corpus flavor and the file-name prefix.
type Mode string

const (
	ModeText    Mode = "text"
	ModeSpecial Mode = "special"
)

func (m Mode) prefix() string {
	if m == ModeSpecial {
		return "s"
	}
	return "t"
}

// Chunk is one bounded-length piece of a source line, ready to render.
// Num is its 1-based position within the original line.
type Chunk struct {
	Text string
	Num  int
}

// Stats are the counters for one generation run. They are mutated only
// while Run executes and are read-only afterwards.
type Stats struct {
	Requested         int
	Successful        int
	SkippedDuplicates int
	Failed            int
}

func (s Stats) String() string {
	return fmt.Sprintf("requested=%d successful=%d skipped_duplicates=%d failed=%d",
		s.Requested, s.Successful, s.SkippedDuplicates, s.Failed)
}

// Sample is one finished unit of output: the rendered image, its
// verbatim ground-truth text and the per-character boxes. Never
// mutated after creation.
type Sample struct {
	BaseName string
	Image    image.Image
	Text     string
	Boxes    []boxes.Box
}

// Renderer turns one accepted (chunk, font) pair into a sample.
// The production implementation is the full sizing/drawing/boxing
// pipeline in pipeline.go; tests substitute a fake.
type Renderer interface {
	Render(chunk Chunk, font *fontkit.Font, counter int) (*Sample, error)
}

// SampleWriter persists a sample's artifacts and returns the path of
// the written image.
type SampleWriter interface {
	WriteSample(s *Sample) (string, error)
}

// Verifier optionally checks a written sample, e.g. by running OCR on
// it. Verification failures are logged, never counted as generation
// failures.
type Verifier interface {
	Verify(imagePath, want string) error
}

// Generator holds the read-only inputs of one or more runs. The
// duplicate set and counters live inside Run, so a Generator can be
// reused as long as its chunk and font collections stay fixed.
type Generator struct {
	mode     Mode
	fonts    []*fontkit.Font
	chunks   []Chunk
	renderer Renderer
	writer   SampleWriter
	rng      *rand.Rand
	verifier Verifier

	progressInterval int
}

// New assembles a generator running the standard render pipeline.
// rng is injected so runs can be seeded for reproducibility; verifier
// may be nil.
func New(cfg *config.Config, mode Mode, fonts []*fontkit.Font, chunks []Chunk, writer SampleWriter, rng *rand.Rand, verifier Verifier) (*Generator, error) {
	return newWithRenderer(mode, fonts, chunks, newPipeline(cfg, mode, rng), writer, rng, verifier, cfg.ProgressInterval)
}

func newWithRenderer(mode Mode, fonts []*fontkit.Font, chunks []Chunk, r Renderer, writer SampleWriter, rng *rand.Rand, verifier Verifier, progressInterval int) (*Generator, error) {
	if len(fonts) == 0 {
		return nil, fmt.Errorf("no fonts to generate with")
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text chunks to generate with")
	}
	return &Generator{
		mode:             mode,
		fonts:            fonts,
		chunks:           chunks,
		renderer:         r,
		writer:           writer,
		rng:              rng,
		verifier:         verifier,
		progressInterval: progressInterval,
	}, nil
}

// Run generates up to count samples and returns the final counters.
//
// Chunks are drawn from a pre-shuffled index cycle so repeated passes
// reuse them in a fixed order; fonts are drawn uniformly at random. A
// (chunk, font) pair is accepted at most once per run. The loop stops
// when count samples succeeded or after count*100 attempts, whichever
// comes first; budget exhaustion is a warning, not an error, and the
// stats are returned either way.
func (g *Generator) Run(count int) Stats {
	shuffled := g.rng.Perm(len(g.chunks))
	accepted := make(map[[2]int]bool)

	stats := Stats{Requested: count}
	maxAttempts := count * 100

	for attempts := 0; stats.Successful < count && attempts < maxAttempts; attempts++ {
		chunkIdx := shuffled[stats.Successful%len(g.chunks)]
		font := g.fonts[g.rng.Intn(len(g.fonts))]

		key := [2]int{chunkIdx, font.Index}
		if accepted[key] {
			stats.SkippedDuplicates++
			continue
		}

		sample, err := g.renderer.Render(g.chunks[chunkIdx], font, stats.Successful)
		if err != nil {
			log.Printf("failed to generate sample: %v", err)
			stats.Failed++
			continue
		}
		path, err := g.writer.WriteSample(sample)
		if err != nil {
			log.Printf("failed to write sample %s: %v", sample.BaseName, err)
			stats.Failed++
			continue
		}

		accepted[key] = true
		stats.Successful++

		if g.verifier != nil {
			if err := g.verifier.Verify(path, sample.Text); err != nil {
				log.Printf("verification of %s: %v", sample.BaseName, err)
			}
		}

		if g.progressInterval > 0 && stats.Successful%g.progressInterval == 0 {
			log.Printf("generated %d/%d %s images...", stats.Successful, count, g.mode)
		}
	}

	if stats.Successful < count {
		log.Printf("warning: only generated %d/%d %s images after %d attempts; consider adding more text samples or fonts",
			stats.Successful, count, g.mode, maxAttempts)
	}
	log.Printf("%s generation complete: %s", g.mode, stats)
	return stats
}
