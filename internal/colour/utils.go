package colour

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	c = c.Clamped()
	return 0.2126*gammaCorrect(c.R) + 0.7152*gammaCorrect(c.G) + 0.0722*gammaCorrect(c.B)
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// IsBright reports whether the colour contrasts more with black than with white.
func IsBright(c RGB) bool {
	return ContrastRatio(c, RGB{}) > ContrastRatio(c, RGB{R: 1, G: 1, B: 1})
}

// randomColour draws a colour with hue in [0, 360), saturation and value in [0.5, 1).
func randomColour(rng *rand.Rand) RGB {
	h := rng.Float64() * 360
	s := 0.5 + rng.Float64()*0.5
	v := 0.5 + rng.Float64()*0.5
	return FromColorful(colorful.Hsv(h, s, v))
}

// RandomBright draws random colours until a bright one comes up.
func RandomBright(rng *rand.Rand) RGB {
	c := randomColour(rng)
	for !IsBright(c) {
		c = randomColour(rng)
	}
	return c
}

// Blend linearly interpolates between two colours in RGB space, t in [0, 1].
func Blend(a, b RGB, t float64) RGB {
	return FromColorful(a.Colorful().BlendRgb(b.Colorful(), clamp01(t)))
}
