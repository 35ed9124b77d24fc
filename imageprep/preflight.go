// Package imageprep validates and normalizes screenshot files before they
// are submitted to an OCR provider. It enforces provider limits on size,
// format and dimensions, downscales oversized images, flattens color
// modes JPEG cannot carry, and produces the base64 payload the cloud
// APIs expect.
package imageprep

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotFound is returned when the image path does not exist.
	ErrNotFound = errors.New("image file not found")

	// ErrNotAFile is returned when the path names a directory or other
	// non-regular file.
	ErrNotAFile = errors.New("path is not a regular file")

	// ErrEmptyImage is returned for zero-byte files.
	ErrEmptyImage = errors.New("image file is empty")

	// ErrImageTooLarge is returned when the file exceeds the provider's
	// raw size limit.
	ErrImageTooLarge = errors.New("image file too large")

	// ErrUnsupportedFormat is returned when the file extension is not an
	// image type the provider accepts.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEncodedTooLarge is returned when the base64 payload exceeds the
	// provider's transfer limit even after downscaling. It matches
	// ErrImageTooLarge under errors.Is.
	ErrEncodedTooLarge = fmt.Errorf("%w after base64 encoding", ErrImageTooLarge)
)

// jpegQuality is used for every re-encode. Screenshots are mostly text
// on flat backgrounds and survive it without visible OCR degradation.
const jpegQuality = 95

// Prepared is a validated image ready for submission.
type Prepared struct {
	// SourcePath is the path the caller asked for.
	SourcePath string

	// Path is the file the payload was read from. It differs from
	// SourcePath when the image had to be re-encoded.
	Path string

	// TempPath names the re-encoded copy on disk, if one was written.
	TempPath string

	// Format is the image format tag of the payload ("jpeg", "png", ...).
	Format string

	// Width and Height are the payload's pixel dimensions, zero when
	// the image could not be sniffed.
	Width, Height int

	// Payload is the raw image bytes to submit.
	Payload []byte

	// Base64 is the standard-encoded payload.
	Base64 string

	// Resized reports whether the image was downscaled.
	Resized bool
}

// Prepare validates the image at path against c and returns the payload
// to submit. Oversized dimensions are fixed by downscaling; color modes
// JPEG cannot represent are flattened onto white. Both rewrites leave a
// temporary file next to the original so a failed OCR call can be
// retried without repeating the work.
//
// A file whose contents cannot be decoded is passed through untouched;
// the provider gives the authoritative verdict.
func Prepare(path string, c Constraints) (*Prepared, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, path)
	}
	if c.MaxBytes > 0 && info.Size() > c.MaxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrImageTooLarge, path, info.Size(), c.MaxBytes)
	}

	format := formatForExtension(path)
	if format == "" || !c.Accepts(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p := &Prepared{
		SourcePath: path,
		Path:       path,
		Format:     format,
		Payload:    payload,
	}

	cfg, sniffed, err := image.DecodeConfig(bytes.NewReader(payload))
	if err == nil {
		// The extension can lie; the sniffed content format is the one
		// the provider will see.
		if !c.Accepts(sniffed) {
			return nil, fmt.Errorf("%w: %s contains %s data", ErrUnsupportedFormat, path, sniffed)
		}
		p.Format = sniffed
		p.Width, p.Height = cfg.Width, cfg.Height

		if c.MaxDimension > 0 && (cfg.Width > c.MaxDimension || cfg.Height > c.MaxDimension) {
			if err := p.downscale(c.MaxDimension); err != nil {
				return nil, err
			}
		} else if needsFlatten(cfg.ColorModel) {
			if err := p.flatten(); err != nil {
				return nil, err
			}
		}
	}

	p.Base64 = base64.StdEncoding.EncodeToString(p.Payload)
	if c.MaxEncodedBytes > 0 && int64(len(p.Base64)) > c.MaxEncodedBytes {
		return nil, fmt.Errorf("%w: %s encodes to %d bytes, limit %d", ErrEncodedTooLarge, path, len(p.Base64), c.MaxEncodedBytes)
	}
	return p, nil
}

// needsFlatten reports whether the color model would be lost or
// mangled by a direct JPEG submission: palettes, alpha channels and
// print color spaces all are.
func needsFlatten(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model, color.CMYKModel:
		return true
	}
	_, paletted := m.(color.Palette)
	return paletted
}

// downscale shrinks the image so its longest side fits limit, keeping
// aspect ratio, and replaces the payload with a JPEG re-encode.
func (p *Prepared) downscale(limit int) error {
	img, _, err := image.Decode(bytes.NewReader(p.Payload))
	if err != nil {
		return fmt.Errorf("decoding %s for resize: %w", p.SourcePath, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := whiteCanvas(w, h)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)

	p.Width, p.Height = w, h
	p.Resized = true
	return p.reencode(dst, p.SourcePath+"_resized.jpg")
}

// flatten composites the image onto a white background and replaces the
// payload with a JPEG re-encode, discarding palette and alpha data.
func (p *Prepared) flatten() error {
	img, _, err := image.Decode(bytes.NewReader(p.Payload))
	if err != nil {
		return fmt.Errorf("decoding %s for conversion: %w", p.SourcePath, err)
	}

	b := img.Bounds()
	dst := whiteCanvas(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)

	return p.reencode(dst, p.SourcePath+"_temp.jpg")
}

// reencode writes img as JPEG into the payload and best-effort persists
// a copy at tempPath for retry runs. A failed write is ignored; the
// in-memory payload is what gets submitted.
func (p *Prepared) reencode(img image.Image, tempPath string) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encoding %s: %w", p.SourcePath, err)
	}
	p.Payload = buf.Bytes()
	p.Format = "jpeg"
	if os.WriteFile(tempPath, p.Payload, 0o644) == nil {
		p.TempPath = tempPath
		p.Path = tempPath
	}
	return nil
}

func whiteCanvas(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return dst
}
