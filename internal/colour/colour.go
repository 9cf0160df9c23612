// Package colour provides the float colour values used by the cluster colour
// selector, together with alpha compositing, HSV masking and terminal previews.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Neutral is the reserved gray used for clusters without a value. It matches
// the SVG "gray" so palette files can name it.
var Neutral = FromBytes(0x80, 0x80, 0x80)

// RGB represents a colour with components in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGBA is an RGB colour with an opacity channel, all components in [0, 1].
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// FromBytes builds an RGB colour from 8-bit components.
func FromBytes(r, g, b uint8) RGB {
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// FromColor converts any color.Color, dropping its alpha.
func FromColor(c color.Color) RGB {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent colours cannot be un-premultiplied.
		return RGB{}
	}
	return FromColorful(cf)
}

// FromColorful converts a go-colorful colour, clamping it into gamut.
func FromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{R: c.R, G: c.G, B: c.B}
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return FromBytes(c.RGB255()), nil
}

func expandShortHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// Colorful returns the colour as a go-colorful value.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Clamped returns the colour with every component clamped to [0, 1].
func (c RGB) Clamped() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Bytes returns the 8-bit components.
func (c RGB) Bytes() (r, g, b uint8) {
	c = c.Clamped()
	return to8(c.R), to8(c.G), to8(c.B)
}

// Hex returns the colour as a hex string (e.g., "#0892fc").
func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String returns the colour in the format "rgb(r, g, b)" with 8-bit components.
func (c RGB) String() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Slice returns the components as a 3-element slice.
func (c RGB) Slice() []float64 {
	return []float64{c.R, c.G, c.B}
}

// WithAlpha appends an opacity channel.
func (c RGB) WithAlpha(alpha float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// RGB drops the opacity channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Clamped returns the colour with every component clamped to [0, 1].
func (c RGBA) Clamped() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Slice returns the components as a 4-element slice.
func (c RGBA) Slice() []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

// Hex returns the colour as "#rrggbbaa".
func (c RGBA) Hex() string {
	return c.RGB().Hex() + fmt.Sprintf("%02x", to8(clamp01(c.A)))
}

// String returns the colour in the format "rgba(r, g, b, a)".
func (c RGBA) String() string {
	r, g, b := c.RGB().Bytes()
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, clamp01(c.A))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
