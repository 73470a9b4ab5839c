package angle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color.
type Color uint32

// White is the default light color.
const White Color = 0xFFFFFF

// ErrInvalidColor is returned for strings that are not #RGB or #RRGGBB hex.
var ErrInvalidColor = errors.New("invalid hex color")

// ParseColor parses "#RRGGBB" or "#RGB" (the leading # is optional, case-insensitive).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color(v), nil
}

// ParseColorOr parses s and returns def when s is empty or invalid.
func ParseColorOr(s string, def Color) Color {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

// String returns "#RRGGBB" in upper case.
func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// RGB returns the channels in the 0..1 range.
func (c Color) RGB() [3]float64 {
	return [3]float64{
		float64((c>>16)&0xFF) / 255,
		float64((c>>8)&0xFF) / 255,
		float64(c&0xFF) / 255,
	}
}
