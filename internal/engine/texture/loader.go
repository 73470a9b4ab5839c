package texture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedRef is returned for references that are not data URLs, http(s) URLs or files.
	ErrUnsupportedRef = errors.New("unsupported image reference")
	// ErrTooLarge is returned when the encoded image exceeds the loader's byte limit
	// or its header declares more pixels than the pixel limit.
	ErrTooLarge = errors.New("image exceeds size limit")
)

// Image is a decoded subject image.
type Image struct {
	Ref       string
	Format    string
	Width     int
	Height    int
	Thumbnail *image.NRGBA
}

// Aspect returns width / height, or 1 for an empty image.
func (i *Image) Aspect() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 1
	}
	return float64(i.Width) / float64(i.Height)
}

// Loader resolves image references into decoded images.
type Loader struct {
	Client        *http.Client
	MaxBytes      int64
	MaxPixels     int64
	ThumbnailSize int
}

// NewLoader creates a loader. maxBytes or maxPixels <= 0 means no limit.
func NewLoader(maxBytes, maxPixels int64, fetchTimeout time.Duration, thumbnailSize int) *Loader {
	return &Loader{
		Client:        &http.Client{Timeout: fetchTimeout},
		MaxBytes:      maxBytes,
		MaxPixels:     maxPixels,
		ThumbnailSize: thumbnailSize,
	}
}

// Load reads, decodes and thumbnails the image behind ref. ref may be a data URL,
// an http(s) URL, a file:// URL or a plain file path.
func (l *Loader) Load(ctx context.Context, ref string) (*Image, error) {
	data, hint, err := l.read(ctx, ref)
	if err != nil {
		return nil, err
	}

	img, format, err := DecodeLimited(data, hint, l.MaxPixels)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Image{
		Ref:       ref,
		Format:    format,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Thumbnail: Thumbnail(img, l.ThumbnailSize),
	}, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, "", ErrUnsupportedRef
	}

	switch {
	case strings.HasPrefix(ref, "data:"):
		return l.readDataURL(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.fetch(ctx, ref)
	case strings.HasPrefix(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, "", fmt.Errorf("parse file url: %w", err)
		}
		return l.readFile(u.Path)
	case !strings.Contains(ref, "://"):
		return l.readFile(ref)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	}
}

// readDataURL decodes "data:[<mediatype>][;base64],<data>".
func (l *Loader) readDataURL(ref string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: data url without payload", ErrUnsupportedRef)
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode data url: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode data url: %w", err)
		}
		data = []byte(unescaped)
	}

	if l.MaxBytes > 0 && int64(len(data)) > l.MaxBytes {
		return nil, "", ErrTooLarge
	}
	return data, mediaType, nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: HTTP %d", resp.StatusCode)
	}

	data, err := l.readLimited(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}

	hint := resp.Header.Get("Content-Type")
	if i := strings.Index(hint, ";"); i >= 0 {
		hint = hint[:i]
	}
	if hint == "" || hint == "application/octet-stream" {
		if u, err := url.Parse(ref); err == nil {
			hint = filepath.Ext(u.Path)
		}
	}
	return data, strings.TrimSpace(hint), nil
}

func (l *Loader) readFile(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := l.readLimited(f)
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", path, err)
	}
	return data, filepath.Ext(path), nil
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	if l.MaxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, l.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
