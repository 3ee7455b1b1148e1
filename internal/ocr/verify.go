// Package ocr optionally round-trips generated samples through the
// Tesseract OCR engine as a sanity check on label quality.
//
// The engine binding needs CGO and a native Tesseract installation, so
// the real implementation is gated behind the cgo && linux build tags;
// other builds get a stub that reports ErrUnavailable.
package ocr

import "errors"

// ErrUnavailable is returned when the binary was built without the
// native Tesseract binding.
var ErrUnavailable = errors.New("ocr verification requires cgo and a native tesseract installation")

// Verifier runs recognition over written sample images and compares
// the result against the ground truth.
type Verifier struct {
	// Language is the Tesseract language code, e.g. "eng" or "kur".
	// The corresponding traineddata must be installed.
	Language string
}
