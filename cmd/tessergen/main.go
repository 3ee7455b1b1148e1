package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/tessergen/tessergen/internal/config"
	"github.com/tessergen/tessergen/internal/fontkit"
	"github.com/tessergen/tessergen/internal/generator"
	"github.com/tessergen/tessergen/internal/ocr"
	"github.com/tessergen/tessergen/internal/preprocess"
	"github.com/tessergen/tessergen/internal/textproc"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("tessergen %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("tessergen - synthetic OCR training data generator")
			fmt.Println()
			fmt.Println("Usage: tessergen [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -env FILE        Load configuration from a .env file")
			fmt.Println("  -samples N       Override the total sample count")
			fmt.Println("  -preprocess      Chunk the raw corpus and exit")
			fmt.Println("  -overwrite       Regenerate preprocessed files even if present")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("All other settings come from TESSERGEN_* environment variables.")
			return
		}
	}

	envFile := flag.String("env", "", "path to a .env configuration file")
	samples := flag.Int("samples", 0, "override the total sample count")
	preprocessOnly := flag.Bool("preprocess", false, "chunk the raw corpus and exit")
	overwrite := flag.Bool("overwrite", false, "regenerate preprocessed files even if present")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if *samples > 0 {
		cfg.TotalSamples = *samples
	}

	if *preprocessOnly {
		if _, err := preprocess.Run(cfg.RawTextDir, cfg.ProcessedDir, cfg.MaxLineLengthText, *overwrite, textproc.SplitLongLines); err != nil {
			log.Fatalf("preprocessing failed: %v", err)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	cfg.Summary()

	rng := newRNG(cfg.RandomSeed)

	fonts, err := fontkit.Discover(cfg.FontDir)
	if err != nil {
		log.Fatalf("font discovery failed: %v", err)
	}
	log.Printf("loaded %d fonts from %s", len(fonts), cfg.FontDir)
	if err := fontkit.WriteIndex(cfg.FontDir, fonts); err != nil {
		log.Printf("warning: %v", err)
	}

	writer, err := generator.NewDiskWriter(cfg.OutputDir, cfg.Format)
	if err != nil {
		log.Fatalf("output setup failed: %v", err)
	}

	var verifier generator.Verifier
	if cfg.VerifyOCR {
		verifier = &ocr.Verifier{Language: cfg.OCRLanguage}
	}

	textCount := cfg.TextSamples()
	specialCount := cfg.TotalSamples - textCount

	if textCount > 0 {
		chunks, err := loadTextChunks(cfg)
		if err != nil {
			log.Fatalf("text corpus: %v", err)
		}
		gen, err := generator.New(cfg, generator.ModeText, fonts, chunks, writer, rng, verifier)
		if err != nil {
			log.Fatalf("text generator: %v", err)
		}
		gen.Run(textCount)
	}

	if specialCount > 0 {
		chunks, err := loadSpecialChunks(cfg)
		if err != nil {
			log.Fatalf("special corpus: %v", err)
		}
		gen, err := generator.New(cfg, generator.ModeSpecial, fonts, chunks, writer, rng, verifier)
		if err != nil {
			log.Fatalf("special generator: %v", err)
		}
		gen.Run(specialCount)
	}
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		log.Printf("random seed set to %d", seed)
	}
	return rand.New(rand.NewSource(seed))
}

// loadTextChunks assembles the text-mode chunk list, either from the
// preprocessed corpus (with real chunk positions) or by chunking the
// raw text file inline.
func loadTextChunks(cfg *config.Config) ([]generator.Chunk, error) {
	if cfg.UsePreprocessed {
		if _, err := os.Stat(filepath.Join(cfg.ProcessedDir, "text.txt")); err != nil {
			log.Printf("preprocessed corpus missing, running preprocessing")
			if _, err := preprocess.Run(cfg.RawTextDir, cfg.ProcessedDir, cfg.MaxLineLengthText, false, textproc.SplitLongLines); err != nil {
				return nil, err
			}
		}
		texts, metadata, err := preprocess.Load(cfg.ProcessedDir)
		if err != nil {
			return nil, err
		}
		chunks := make([]generator.Chunk, len(texts))
		for i, t := range texts {
			num := 1
			if metadata != nil && i < len(metadata) {
				num = metadata[i].ChunkNum
			}
			chunks[i] = generator.Chunk{Text: t, Num: num}
		}
		log.Printf("loaded %d preprocessed chunks", len(chunks))
		return chunks, nil
	}

	lines, err := preprocess.ReadLines(cfg.TextFile)
	if err != nil {
		return nil, err
	}
	chunks := expandLines(lines, cfg.MaxLineLengthText)
	log.Printf("loaded %d lines, expanded to %d chunks", len(lines), len(chunks))
	return chunks, nil
}

func loadSpecialChunks(cfg *config.Config) ([]generator.Chunk, error) {
	lines, err := preprocess.ReadLines(cfg.SpecialFile)
	if err != nil {
		return nil, err
	}
	chunks := expandLines(lines, cfg.MaxLineLengthSpecial)
	log.Printf("loaded %d special lines, expanded to %d chunks", len(lines), len(chunks))
	return chunks, nil
}

func expandLines(lines []string, maxLength int) []generator.Chunk {
	var chunks []generator.Chunk
	for _, line := range lines {
		for i, c := range textproc.SplitLongLines(line, maxLength) {
			chunks = append(chunks, generator.Chunk{Text: c, Num: i + 1})
		}
	}
	return chunks
}
