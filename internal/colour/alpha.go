package colour

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultAlpha is the opacity used when the caller does not supply one.
const DefaultAlpha = 0.5

// ErrShape is matched by every *ShapeError.
var ErrShape = errors.New("shape error")

// ShapeError reports colour data whose dimensions do not line up.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error: %s has size %d, want %d", e.What, e.Got, e.Want)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// AddAlpha appends alpha to a single RGB triple.
func AddAlpha(c []float64, alpha float64) (RGBA, error) {
	if len(c) != 3 {
		return RGBA{}, &ShapeError{What: "colour", Got: len(c), Want: 3}
	}
	return RGBA{R: c[0], G: c[1], B: c[2], A: alpha}, nil
}

// AddAlphaBatch appends the same alpha to every row of an (N, 3) batch.
func AddAlphaBatch(rows [][]float64, alpha float64) ([]RGBA, error) {
	out := make([]RGBA, len(rows))
	for i, row := range rows {
		c, err := AddAlpha(row, alpha)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// AddAlphaEach appends a per-row alpha to an (N, 3) batch.
func AddAlphaEach(rows [][]float64, alphas []float64) ([]RGBA, error) {
	if len(alphas) != len(rows) {
		return nil, &ShapeError{What: "alpha vector", Got: len(alphas), Want: len(rows)}
	}
	out := make([]RGBA, len(rows))
	for i, row := range rows {
		c, err := AddAlpha(row, alphas[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// WithAlpha appends the same alpha to typed colours; it cannot fail.
func WithAlpha(colours []RGB, alpha float64) []RGBA {
	out := make([]RGBA, len(colours))
	for i, c := range colours {
		out[i] = c.WithAlpha(alpha)
	}
	return out
}

// ApplyMasks dims colours by a per-colour mask in [0, 1]: saturation is
// multiplied by the mask and value by (1+mask)/2. A nil mask leaves the
// colours unchanged. Alpha is appended afterwards.
func ApplyMasks(colours []RGB, masks []float64, alpha float64) ([]RGBA, error) {
	if masks != nil && len(masks) != len(colours) {
		return nil, &ShapeError{What: "mask vector", Got: len(masks), Want: len(colours)}
	}
	out := make([]RGBA, len(colours))
	for i, c := range colours {
		if masks != nil {
			h, s, v := c.Colorful().Hsv()
			m := clamp01(masks[i])
			c = FromColorful(colorful.Hsv(h, s*m, v*.5*(1+m)))
		}
		out[i] = c.WithAlpha(alpha)
	}
	return out, nil
}
