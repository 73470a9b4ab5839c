package texture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	gomath "math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Thumbnail scales src so its longer side is at most size pixels, keeping the aspect ratio.
// Images already small enough are copied unscaled. size <= 0 disables scaling.
func Thumbnail(src image.Image, size int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if size <= 0 || (w <= size && h <= size) {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
		return dst
	}

	scale := float64(size) / float64(max(w, h))
	tw := max(1, int(gomath.Round(float64(w)*scale)))
	th := max(1, int(gomath.Round(float64(h)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// EncodeDataURL encodes img as lossless WebP in a data URL the browser front end can show.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}
	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
