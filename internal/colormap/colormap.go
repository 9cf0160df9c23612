package colormap

import (
	"math"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colour"
	"github.com/jmylchreest/clustercolour/internal/palette"
)

// Map converts a batch of values into colours. The implementations are
// Continuous, Categorical and GroupFixed.
type Map interface {
	// Kind names the variant.
	Kind() palette.Kind
	// Colours returns one colour per value, in order.
	Colours(values []cluster.Value) []colour.RGB

	sealed()
}

// Continuous samples a gradient by fraction.
type Continuous struct {
	Anchors     []colour.RGB
	Interpolate bool
}

// Kind returns palette.KindContinuous.
func (Continuous) Kind() palette.Kind { return palette.KindContinuous }

// At returns the colour at fraction f, which is clamped to [0, 1]. Without
// interpolation the nearest anchor is used. NaN is neutral.
func (m Continuous) At(f float64) colour.RGB {
	n := len(m.Anchors)
	if n == 0 || math.IsNaN(f) {
		return colour.Neutral
	}
	f = math.Max(0, math.Min(1, f))
	pos := f * float64(n-1)
	if !m.Interpolate {
		return m.Anchors[int(math.RoundToEven(pos))]
	}
	lo := int(math.Floor(pos))
	hi := min(lo+1, n-1)
	return colour.Blend(m.Anchors[lo], m.Anchors[hi], pos-float64(lo))
}

// Colours scales the batch and samples the gradient. Missing is neutral.
func (m Continuous) Colours(values []cluster.Value) []colour.RGB {
	out := make([]colour.RGB, len(values))
	for i, n := range Fractions(values) {
		if n.Missing {
			out[i] = colour.Neutral
			continue
		}
		out[i] = m.At(n.Fraction)
	}
	return out
}

func (Continuous) sealed() {}

// Categorical indexes a discrete palette by rank, wrapping around.
type Categorical struct {
	Palette []colour.RGB
}

// Kind returns palette.KindCategorical.
func (Categorical) Kind() palette.Kind { return palette.KindCategorical }

// At returns palette[rank mod len].
func (m Categorical) At(rank int) colour.RGB {
	n := len(m.Palette)
	if n == 0 {
		return colour.Neutral
	}
	return m.Palette[((rank%n)+n)%n]
}

// Colours ranks the batch and indexes the palette. Missing values share
// rank 0 with the first present value, so they are drawn neutral instead.
func (m Categorical) Colours(values []cluster.Value) []colour.RGB {
	out := make([]colour.RGB, len(values))
	for i, n := range Ranks(values) {
		if n.Missing {
			out[i] = colour.Neutral
			continue
		}
		out[i] = m.At(n.Rank)
	}
	return out
}

func (Categorical) sealed() {}

// GroupFixed maps known labels to fixed colours. Missing values get the
// Missing colour; other values are coloured from Fallback by their first
// appearance among the unknown values of the batch.
type GroupFixed struct {
	Labels   map[string]colour.RGB
	Missing  colour.RGB
	Fallback []colour.RGB
}

// Kind returns palette.KindGroup.
func (GroupFixed) Kind() palette.Kind { return palette.KindGroup }

// At returns the colour of a known label or Missing, and false for values
// that need a fallback rank.
func (m GroupFixed) At(v cluster.Value) (colour.RGB, bool) {
	if v.IsMissing() {
		return m.Missing, true
	}
	if s, ok := v.Text(); ok {
		if c, ok := m.Labels[s]; ok {
			return c, true
		}
	}
	return colour.RGB{}, false
}

// Colours resolves each value against the label table.
func (m GroupFixed) Colours(values []cluster.Value) []colour.RGB {
	fallback := Categorical{Palette: m.Fallback}
	out := make([]colour.RGB, len(values))
	var unknown []cluster.Value
	var slots []int
	for i, v := range values {
		if c, ok := m.At(v); ok {
			out[i] = c
			continue
		}
		unknown = append(unknown, v)
		slots = append(slots, i)
	}
	for j, n := range rankByAppearance(unknown) {
		out[slots[j]] = fallback.At(n)
	}
	return out
}

func (GroupFixed) sealed() {}

func rankByAppearance(values []cluster.Value) []int {
	seen := make(map[cluster.Value]int)
	out := make([]int, len(values))
	for i, v := range values {
		r, ok := seen[v]
		if !ok {
			r = len(seen)
			seen[v] = r
		}
		out[i] = r
	}
	return out
}

// Select picks the variant for a palette. Continuous mode samples the
// palette as a gradient; categorical mode uses the label table when the
// field is the group field or the palette is a group palette, and plain
// indexing otherwise. group supplies the label table when p is not itself a
// group palette; it may be nil.
func Select(field string, p *palette.Palette, categorical bool, group *palette.Palette) Map {
	if !categorical {
		return Continuous{Anchors: coloursOf(p), Interpolate: p.Interpolate}
	}
	if p.Kind == palette.KindGroup {
		return GroupFixed{Labels: p.Labels, Missing: p.Missing, Fallback: p.Fallback}
	}
	if field == cluster.GroupField {
		g := GroupFixed{Missing: colour.Neutral, Fallback: p.Colours}
		if group != nil && group.Kind == palette.KindGroup {
			g.Labels, g.Missing = group.Labels, group.Missing
		}
		return g
	}
	return Categorical{Palette: p.Colours}
}

func coloursOf(p *palette.Palette) []colour.RGB {
	if len(p.Colours) == 0 {
		return p.Fallback
	}
	return p.Colours
}
