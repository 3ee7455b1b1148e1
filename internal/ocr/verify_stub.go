//go:build !cgo || !linux

package ocr

// Verify reports ErrUnavailable on builds without the native
// Tesseract binding.
func (v *Verifier) Verify(imagePath, want string) error {
	return ErrUnavailable
}
