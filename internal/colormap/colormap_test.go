package colormap

import (
	"math"
	"testing"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colour"
	"github.com/jmylchreest/clustercolour/internal/palette"
)

var (
	red   = colour.RGB{R: 1}
	green = colour.RGB{G: 1}
	blue  = colour.RGB{B: 1}
	white = colour.RGB{R: 1, G: 1, B: 1}
)

func nums(fs ...float64) []cluster.Value {
	out := make([]cluster.Value, len(fs))
	for i, f := range fs {
		out[i] = cluster.Number(f)
	}
	return out
}

func TestRanks(t *testing.T) {
	tests := []struct {
		name   string
		values []cluster.Value
		want   []int
	}{
		{
			name:   "integers are their own rank",
			values: nums(3, 0, 7, 3),
			want:   []int{3, 0, 7, 3},
		},
		{
			name:   "labels rank by first appearance",
			values: []cluster.Value{cluster.Label("b"), cluster.Label("a"), cluster.Label("b"), cluster.Label("c")},
			want:   []int{0, 1, 0, 2},
		},
		{
			name:   "fractions rank by first appearance",
			values: nums(.5, .25, .5),
			want:   []int{0, 1, 0},
		},
		{
			name:   "missing is rank zero",
			values: []cluster.Value{cluster.Label("mua"), cluster.Missing(), cluster.Label("good")},
			want:   []int{0, 0, 1},
		},
		{
			name:   "missing among integers",
			values: []cluster.Value{cluster.Missing(), cluster.Number(4)},
			want:   []int{0, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ranks(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, n := range got {
				if n.Rank != tt.want[i] {
					t.Errorf("rank[%d] = %d, want %d", i, n.Rank, tt.want[i])
				}
				if n.Missing != tt.values[i].IsMissing() {
					t.Errorf("missing[%d] = %v", i, n.Missing)
				}
			}
		})
	}
}

func TestFractions(t *testing.T) {
	tests := []struct {
		name   string
		values []cluster.Value
		want   []float64
	}{
		{
			name:   "linear",
			values: nums(10, 20, 30),
			want:   []float64{0, .5, 1},
		},
		{
			name:   "missing ignored in range",
			values: []cluster.Value{cluster.Number(-1), cluster.Missing(), cluster.Number(3)},
			want:   []float64{0, Midpoint, 1},
		},
		{
			name:   "all equal",
			values: nums(4, 4, 4),
			want:   []float64{Midpoint, Midpoint, Midpoint},
		},
		{
			name:   "all missing",
			values: []cluster.Value{cluster.Missing(), cluster.Missing()},
			want:   []float64{Midpoint, Midpoint},
		},
		{
			name:   "labels scale by rank",
			values: []cluster.Value{cluster.Missing(), cluster.Label("x"), cluster.Label("y"), cluster.Label("z")},
			want:   []float64{0, 0, .5, 1},
		},
		{
			name:   "single value",
			values: nums(42),
			want:   []float64{Midpoint},
		},
		{
			name:   "positive infinity is the top",
			values: nums(1, math.Inf(1)),
			want:   []float64{0, 1},
		},
		{
			name:   "infinities bracket finite values",
			values: nums(math.Inf(-1), 0, 5, 10, math.Inf(1)),
			want:   []float64{0, 0, .5, 1, 1},
		},
		{
			name:   "only infinities",
			values: nums(math.Inf(1), math.Inf(1)),
			want:   []float64{Midpoint, Midpoint},
		},
		{
			name:   "span overflows",
			values: nums(-1e308, 0, 1e308),
			want:   []float64{0, .5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fractions(tt.values)
			for i, n := range got {
				if n.Fraction != tt.want[i] {
					t.Errorf("fraction[%d] = %v, want %v", i, n.Fraction, tt.want[i])
				}
				if n.Fraction < 0 || n.Fraction > 1 {
					t.Errorf("fraction[%d] = %v out of [0, 1]", i, n.Fraction)
				}
			}
		})
	}
}

func TestContinuousAt(t *testing.T) {
	m := Continuous{Anchors: []colour.RGB{red, green, blue}}
	tests := []struct {
		f    float64
		want colour.RGB
	}{
		{0, red},
		{.2, red},
		{.26, green},
		{.5, green},
		{.74, green},
		{.8, blue},
		{1, blue},
		{-3, red},
		{7, blue},
	}
	for _, tt := range tests {
		if got := m.At(tt.f); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}

	lerp := Continuous{Anchors: []colour.RGB{{}, white}, Interpolate: true}
	if got := lerp.At(.5); got.R < .49 || got.R > .51 || got.R != got.G || got.G != got.B {
		t.Errorf("interpolated At(.5) = %v, want mid gray", got)
	}
	if got := lerp.At(1); got != white {
		t.Errorf("interpolated At(1) = %v", got)
	}
	if got := m.At(math.NaN()); got != colour.Neutral {
		t.Errorf("At(NaN) = %v, want neutral", got)
	}
	if got := (Continuous{}).At(.5); got != colour.Neutral {
		t.Errorf("empty At() = %v", got)
	}
}

func TestContinuousColours(t *testing.T) {
	m := Continuous{Anchors: []colour.RGB{red, green, blue}}
	got := m.Colours([]cluster.Value{cluster.Number(0), cluster.Missing(), cluster.Number(10), cluster.Number(5)})
	want := []colour.RGB{red, colour.Neutral, blue, green}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("colour[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCategoricalWraparound(t *testing.T) {
	m := Categorical{Palette: []colour.RGB{red, green, blue}}
	for i := range 20 {
		if m.At(i) != m.At(i+3) {
			t.Errorf("At(%d) != At(%d)", i, i+3)
		}
	}
	if m.At(-1) != blue {
		t.Errorf("At(-1) = %v, want blue", m.At(-1))
	}

	got := m.Colours(nums(0, 4, 5, 300))
	want := []colour.RGB{red, green, blue, red}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("colour[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := m.Colours([]cluster.Value{cluster.Missing()}); got[0] != colour.Neutral {
		t.Errorf("missing = %v, want neutral", got[0])
	}
}

func TestGroupFixed(t *testing.T) {
	m := GroupFixed{
		Labels:   map[string]colour.RGB{"good": green, "noise": white},
		Missing:  colour.Neutral,
		Fallback: []colour.RGB{red, blue},
	}
	values := []cluster.Value{
		cluster.Missing(),
		cluster.Label("good"),
		cluster.Label("odd"),
		cluster.Label("noise"),
		cluster.Label("strange"),
		cluster.Label("odd"),
		cluster.Label("weird"),
	}
	got := m.Colours(values)
	want := []colour.RGB{colour.Neutral, green, red, white, blue, red, red}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("colour[%d] (%v) = %v, want %v", i, values[i], got[i], want[i])
		}
	}
}

func TestSelect(t *testing.T) {
	store := palette.Default()
	group, _ := store.Lookup(palette.GroupName)
	cat, _ := store.Lookup("categorical")
	rainbow, _ := store.Lookup("rainbow")

	tests := []struct {
		name        string
		field       string
		p           *palette.Palette
		categorical bool
		want        palette.Kind
	}{
		{"continuous", "quality", rainbow, false, palette.KindContinuous},
		{"categorical", "cluster", cat, true, palette.KindCategorical},
		{"continuous palette indexed", "nonexisting", rainbow, true, palette.KindCategorical},
		{"group field", cluster.GroupField, cat, true, palette.KindGroup},
		{"group palette", "label", group, true, palette.KindGroup},
		{"group palette as gradient", "label", group, false, palette.KindContinuous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Select(tt.field, tt.p, tt.categorical, group)
			if m.Kind() != tt.want {
				t.Errorf("Select() kind = %s, want %s", m.Kind(), tt.want)
			}
		})
	}

	g := Select(cluster.GroupField, cat, true, group).(GroupFixed)
	if g.Labels["good"] != group.Labels["good"] {
		t.Errorf("group field did not borrow the label table")
	}
	if g.Fallback[0] != cat.Colours[0] {
		t.Errorf("group field fallback should be the selected palette")
	}
	if c := Select("label", group, false, nil).(Continuous); len(c.Anchors) == 0 {
		t.Errorf("group palette as gradient has no anchors")
	}
}
