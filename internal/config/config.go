// Package config holds the typed generation settings.
//
// Every recognized option is an explicit struct field; there is no
// dynamic lookup and no process-wide singleton. Values come from the
// environment (optionally seeded from a .env file) and are validated
// once before any generation starts.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/tessergen/tessergen/internal/background"
)

// Config enumerates every generation option.
type Config struct {
	// Input / output locations.
	OutputDir    string `env:"TESSERGEN_OUTPUT_DIR" envDefault:"dataset"`
	FontDir      string `env:"TESSERGEN_FONT_DIR" envDefault:"fonts"`
	TextFile     string `env:"TESSERGEN_TEXT_FILE" envDefault:"input/raw_text/text.txt"`
	SpecialFile  string `env:"TESSERGEN_SPECIAL_FILE" envDefault:"input/raw_text/special.txt"`
	RawTextDir   string `env:"TESSERGEN_RAW_TEXT_DIR" envDefault:"input/raw_text"`
	ProcessedDir string `env:"TESSERGEN_PROCESSED_DIR" envDefault:"input/processed"`

	// UsePreprocessed switches the text run to consume pre-chunked
	// corpus files with per-chunk metadata instead of chunking inline.
	UsePreprocessed bool `env:"TESSERGEN_USE_PREPROCESSED" envDefault:"false"`

	// Dataset composition.
	TotalSamples   int `env:"TESSERGEN_TOTAL_SAMPLES" envDefault:"1000"`
	TextPercentage int `env:"TESSERGEN_TEXT_PERCENTAGE" envDefault:"80"`

	// Chunking budgets in runes.
	MaxLineLengthText    int `env:"TESSERGEN_MAX_LINE_LENGTH_TEXT" envDefault:"100"`
	MaxLineLengthSpecial int `env:"TESSERGEN_MAX_LINE_LENGTH_SPECIAL" envDefault:"20"`

	// Rendering. TargetTextHeight follows Tesseract LSTM guidance of
	// 30-33px glyph height.
	TargetTextHeight int `env:"TESSERGEN_TARGET_TEXT_HEIGHT" envDefault:"32"`
	Padding          int `env:"TESSERGEN_PADDING" envDefault:"10"`

	// Augmentation.
	AugmentPercentage    float64              `env:"TESSERGEN_AUGMENT_PERCENTAGE" envDefault:"30"`
	BackgroundPercentage float64              `env:"TESSERGEN_BACKGROUND_PERCENTAGE" envDefault:"70"`
	BackgroundIntensity  background.Intensity `env:"TESSERGEN_BACKGROUND_INTENSITY" envDefault:"medium"`

	// Output artifacts.
	Format           string `env:"TESSERGEN_FORMAT" envDefault:"tif"`
	DPI              int    `env:"TESSERGEN_DPI" envDefault:"300"`
	ProgressInterval int    `env:"TESSERGEN_PROGRESS_INTERVAL" envDefault:"50"`

	// RandomSeed of 0 means time-seeded; any other value makes the run
	// reproducible.
	RandomSeed int64 `env:"TESSERGEN_RANDOM_SEED" envDefault:"0"`

	// Optional OCR round-trip verification of written samples.
	VerifyOCR   bool   `env:"TESSERGEN_VERIFY_OCR" envDefault:"false"`
	OCRLanguage string `env:"TESSERGEN_OCR_LANGUAGE" envDefault:"eng"`
}

// Load reads the optional .env file and parses the environment into a
// Config. A missing .env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and required resources. Violations are
// configuration errors: fatal, reported before any generation starts.
func (c *Config) Validate() error {
	if c.TotalSamples <= 0 {
		return fmt.Errorf("total samples must be greater than 0, got %d", c.TotalSamples)
	}
	if c.TextPercentage < 0 || c.TextPercentage > 100 {
		return fmt.Errorf("text percentage must be between 0 and 100, got %d", c.TextPercentage)
	}
	if c.AugmentPercentage < 0 || c.AugmentPercentage > 100 {
		return fmt.Errorf("augment percentage must be between 0 and 100, got %g", c.AugmentPercentage)
	}
	if c.BackgroundPercentage < 0 || c.BackgroundPercentage > 100 {
		return fmt.Errorf("background percentage must be between 0 and 100, got %g", c.BackgroundPercentage)
	}
	if !c.BackgroundIntensity.Valid() {
		return fmt.Errorf("background intensity must be light, medium or heavy, got %q", c.BackgroundIntensity)
	}
	if c.TargetTextHeight <= 0 {
		return fmt.Errorf("target text height must be greater than 0, got %d", c.TargetTextHeight)
	}
	if c.MaxLineLengthText < 1 || c.MaxLineLengthSpecial < 1 {
		return fmt.Errorf("max line lengths must be at least 1")
	}
	if c.Format != "tif" && c.Format != "png" {
		return fmt.Errorf("output format must be tif or png, got %q", c.Format)
	}
	if _, err := os.Stat(c.FontDir); err != nil {
		return fmt.Errorf("font directory not found: %s", c.FontDir)
	}
	return nil
}

// TextSamples returns how many of the total samples are text samples;
// the remainder are special-character samples.
func (c *Config) TextSamples() int {
	return c.TotalSamples * c.TextPercentage / 100
}

// Summary logs the effective settings at run start.
func (c *Config) Summary() {
	text := c.TextSamples()
	log.Printf("total samples: %d (text %d, special %d)", c.TotalSamples, text, c.TotalSamples-text)
	log.Printf("augmentation: %.0f%%, background: %.0f%% (%s)",
		c.AugmentPercentage, c.BackgroundPercentage, c.BackgroundIntensity)
	log.Printf("output: %s/ (%s @ %d DPI), text height %dpx, padding %dpx",
		c.OutputDir, c.Format, c.DPI, c.TargetTextHeight, c.Padding)
}
