//go:build cgo && linux

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Verify recognizes the image at imagePath and returns an error when
// the result does not match want. Whitespace is normalized before
// comparison; recognition of freshly synthesized samples is not
// expected to be perfect, so callers treat a mismatch as a log-worthy
// signal, not a failure.
func (v *Verifier) Verify(imagePath, want string) error {
	client := gosseract.NewClient()
	defer client.Close()

	if v.Language != "" {
		if err := client.SetLanguage(v.Language); err != nil {
			return fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}

	got, err := client.Text()
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	if normalize(got) != normalize(want) {
		return fmt.Errorf("recognized text differs from ground truth: got %q, want %q", got, want)
	}
	return nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
