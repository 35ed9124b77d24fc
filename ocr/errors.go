package ocr

import (
	"errors"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

// Image-side failures are re-exported from imageprep so callers can
// match either package's sentinel with errors.Is.
var (
	ErrImageNotFound     = imageprep.ErrNotFound
	ErrNotAFile          = imageprep.ErrNotAFile
	ErrEmptyImage        = imageprep.ErrEmptyImage
	ErrImageTooLarge     = imageprep.ErrImageTooLarge
	ErrUnsupportedFormat = imageprep.ErrUnsupportedFormat
)

var (
	// ErrNoProvider is returned when recognition is attempted without a
	// configured provider.
	ErrNoProvider = errors.New("no OCR provider configured")

	// ErrAuthenticationFailed is returned when the provider rejects the
	// configured credentials.
	ErrAuthenticationFailed = errors.New("OCR authentication failed")

	// ErrQuotaExceeded is returned when the provider reports a request
	// rate, daily or balance limit.
	ErrQuotaExceeded = errors.New("OCR quota exceeded")

	// ErrNetworkFailure is returned when the provider could not be
	// reached or the response could not be read.
	ErrNetworkFailure = errors.New("OCR network failure")

	// ErrProviderFailure is returned for provider-side errors that are
	// neither auth nor quota problems.
	ErrProviderFailure = errors.New("OCR provider failure")
)
