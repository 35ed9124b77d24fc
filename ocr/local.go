//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

// LocalDefaultLanguages is the Tesseract language set used when none is
// configured. Screenshots mix simplified Chinese with English.
const LocalDefaultLanguages = "chi_sim+eng"

// LocalProvider implements Provider on a local Tesseract install via
// gosseract. It requires Tesseract on the system. On macOS, install via:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-chi-sim
type LocalProvider struct {
	languages string
}

// NewLocal returns a provider recognizing the given "+"-separated
// Tesseract languages, or LocalDefaultLanguages when empty.
func NewLocal(languages string) *LocalProvider {
	if languages == "" {
		languages = LocalDefaultLanguages
	}
	return &LocalProvider{languages: languages}
}

// Name implements Provider.
func (l *LocalProvider) Name() string { return "tesseract" }

// Authenticate implements Provider. Local recognition needs none.
func (l *LocalProvider) Authenticate(ctx context.Context) error { return nil }

// ValidateCredentials implements Provider. Local recognition needs none.
func (l *LocalProvider) ValidateCredentials() bool { return true }

// Constraints implements Provider. Tesseract has no transfer limits;
// only the format set matters.
func (l *LocalProvider) Constraints() imageprep.Constraints {
	return imageprep.Constraints{
		Formats: map[string]bool{"jpeg": true, "png": true, "bmp": true, "gif": true, "webp": true},
	}
}

// Recognize implements Provider.
func (l *LocalProvider) Recognize(ctx context.Context, img *imageprep.Prepared) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(l.languages, "+")...); err != nil {
		return "", fmt.Errorf("%w: setting languages %q: %v", ErrProviderFailure, l.languages, err)
	}
	if err := client.SetImageFromBytes(img.Payload); err != nil {
		return "", fmt.Errorf("%w: setting image: %v", ErrProviderFailure, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: recognition: %v", ErrProviderFailure, err)
	}
	return strings.TrimSpace(text), nil
}
