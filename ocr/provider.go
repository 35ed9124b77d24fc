// Package ocr turns screenshot images into plain text through one of
// several recognition backends. Cloud providers for Baidu, Tencent and
// Aliyun are always available; a local Tesseract provider can be
// compiled in with the "ocr" build tag.
//
// Provider implementations return text exactly as the backend reports
// it, one recognized line per "\n". Classifying and cleaning that text
// is the caller's concern.
package ocr

import (
	"context"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

// Provider is a single OCR backend.
type Provider interface {
	// Name identifies the backend in logs and error messages.
	Name() string

	// Authenticate performs any token exchange the backend needs. It is
	// idempotent; providers that sign each request do nothing here.
	Authenticate(ctx context.Context) error

	// Recognize submits a prepared image and returns the recognized
	// text. An image with no recognizable text yields ("", nil).
	Recognize(ctx context.Context, img *imageprep.Prepared) (string, error)

	// ValidateCredentials reports whether the provider was configured
	// with non-empty credential material. It does not contact the
	// backend.
	ValidateCredentials() bool

	// Constraints describes the image limits the backend enforces.
	Constraints() imageprep.Constraints
}
