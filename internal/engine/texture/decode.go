// Package texture fetches, decodes and thumbnails the subject image shown on the rig's image plane.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when data matches no supported image format.
var ErrUnknownFormat = errors.New("unknown image format")

type format struct {
	name         string
	match        func([]byte) bool
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

// TGA has no magic number and is tried last.
var formats = []format{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode, png.DecodeConfig},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode, jpeg.DecodeConfig},
	{"gif", prefix("GIF8"), gif.Decode, gif.DecodeConfig},
	{"bmp", prefix("BM"), bmp.Decode, bmp.DecodeConfig},
	{"webp", isWebP, webp.Decode, webp.DecodeConfig},
}

var tgaFormat = format{"tga", func([]byte) bool { return true }, tga.Decode, tga.DecodeConfig}

func prefix(magic string) func([]byte) bool {
	return func(b []byte) bool { return bytes.HasPrefix(b, []byte(magic)) }
}

func isWebP(b []byte) bool {
	return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP"
}

// Decode decodes image data with no pixel limit. See DecodeLimited.
func Decode(data []byte, hint string) (image.Image, string, error) {
	return DecodeLimited(data, hint, 0)
}

// DecodeLimited decodes image data and returns the format name. hint is a file
// extension or MIME type; a hint naming TGA skips sniffing. The header is read first
// and images over maxPixels pixels are rejected with ErrTooLarge before any pixel
// buffer is allocated. maxPixels <= 0 means no limit.
func DecodeLimited(data []byte, hint string, maxPixels int64) (image.Image, string, error) {
	f, err := sniff(data, hint)
	if err != nil {
		return nil, "", err
	}

	cfg, err := f.decodeConfig(bytes.NewReader(data))
	if err != nil {
		if f.name == "tga" && !isTGA(hint) {
			return nil, "", ErrUnknownFormat
		}
		return nil, "", fmt.Errorf("decode %s header: %w", f.name, err)
	}
	if err := checkPixels(cfg, maxPixels); err != nil {
		return nil, "", err
	}

	img, err := f.decode(bytes.NewReader(data))
	if err != nil {
		if f.name == "tga" && !isTGA(hint) {
			return nil, "", ErrUnknownFormat
		}
		return nil, "", fmt.Errorf("decode %s: %w", f.name, err)
	}
	return img, f.name, nil
}

func sniff(data []byte, hint string) (format, error) {
	if isTGA(hint) {
		return tgaFormat, nil
	}
	for _, f := range formats {
		if f.match(data) {
			return f, nil
		}
	}
	return tgaFormat, nil
}

func checkPixels(cfg image.Config, maxPixels int64) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}

func isTGA(hint string) bool {
	hint = strings.ToLower(hint)
	return strings.HasSuffix(hint, ".tga") || strings.HasSuffix(hint, "/tga") || strings.HasSuffix(hint, "/x-tga")
}
