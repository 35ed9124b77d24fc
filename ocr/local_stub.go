//go:build !ocr

package ocr

import (
	"context"
	"errors"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

// ErrLocalOCRNotEnabled is returned when the local provider is used but
// Tesseract support was not compiled in. Rebuild with -tags ocr to
// enable it; this requires Tesseract on the system. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-chi-sim
var ErrLocalOCRNotEnabled = errors.New("local OCR support not enabled; rebuild with -tags ocr")

// LocalDefaultLanguages matches the OCR-enabled implementation.
const LocalDefaultLanguages = "chi_sim+eng"

// LocalProvider is the stub used without the "ocr" build tag. Recognize
// always returns ErrLocalOCRNotEnabled.
type LocalProvider struct{}

// NewLocal returns the stub provider. The languages argument is ignored.
func NewLocal(languages string) *LocalProvider { return &LocalProvider{} }

// Name implements Provider.
func (l *LocalProvider) Name() string { return "tesseract" }

// Authenticate implements Provider.
func (l *LocalProvider) Authenticate(ctx context.Context) error {
	return ErrLocalOCRNotEnabled
}

// ValidateCredentials implements Provider.
func (l *LocalProvider) ValidateCredentials() bool { return false }

// Constraints implements Provider.
func (l *LocalProvider) Constraints() imageprep.Constraints {
	return imageprep.Constraints{}
}

// Recognize implements Provider.
func (l *LocalProvider) Recognize(ctx context.Context, img *imageprep.Prepared) (string, error) {
	return "", ErrLocalOCRNotEnabled
}
