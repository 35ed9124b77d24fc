package imageprep

import (
	"path/filepath"
	"strings"
)

// Constraints describes the limits an OCR provider places on submitted
// images. Zero fields mean "no limit" for sizes and "accept anything"
// for formats.
type Constraints struct {
	// MaxBytes caps the raw file size on disk.
	MaxBytes int64

	// Formats holds the accepted image format tags as registered with
	// the image package ("jpeg", "png", "bmp", "gif", "webp").
	Formats map[string]bool

	// MaxDimension caps both width and height in pixels.
	MaxDimension int

	// MaxEncodedBytes caps the size of the base64 payload sent over
	// the wire.
	MaxEncodedBytes int64
}

// Accepts reports whether the format tag is allowed.
func (c Constraints) Accepts(format string) bool {
	if len(c.Formats) == 0 {
		return true
	}
	return c.Formats[format]
}

// formatForExtension maps a filename to the format tag the image package
// would report for it, or "" when the extension is not a known image
// type.
func formatForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return ""
	}
}
