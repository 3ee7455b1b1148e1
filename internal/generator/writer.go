package generator

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"github.com/tessergen/tessergen/internal/boxes"
)

// DiskWriter writes the three artifacts of a sample next to each
// other: <base>.<format>, <base>.gt.txt and <base>.box.
type DiskWriter struct {
	Dir    string
	Format string // "tif" or "png"
}

// NewDiskWriter creates the output directory if needed.
func NewDiskWriter(dir, format string) (*DiskWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &DiskWriter{Dir: dir, Format: format}, nil
}

// WriteSample persists the image, ground-truth text and box file,
// returning the image path.
func (w *DiskWriter) WriteSample(s *Sample) (string, error) {
	imgPath := filepath.Join(w.Dir, s.BaseName+"."+w.Format)

	f, err := os.Create(imgPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", imgPath, err)
	}
	switch w.Format {
	case "png":
		err = png.Encode(f, s.Image)
	default:
		err = tiff.Encode(f, s.Image, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", imgPath, err)
	}

	gtPath := filepath.Join(w.Dir, s.BaseName+".gt.txt")
	if err := os.WriteFile(gtPath, []byte(s.Text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", gtPath, err)
	}

	boxPath := filepath.Join(w.Dir, s.BaseName+".box")
	if err := os.WriteFile(boxPath, []byte(boxes.Encode(s.Boxes)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", boxPath, err)
	}

	return imgPath, nil
}
