// Package colormap turns resolved cluster values into colours: values are
// normalised to ranks or fractions, then looked up in a palette.
package colormap

import (
	"math"

	"github.com/jmylchreest/clustercolour/internal/cluster"
)

// Midpoint is the fraction used when a batch has no spread.
const Midpoint = 0.5

// Norm is a normalised value.
type Norm struct {
	Rank     int
	Fraction float64
	Missing  bool
}

// Ranks assigns categorical ranks to a batch. When every present value is a
// non-negative integer the integer is the rank; otherwise values are ranked
// by first appearance starting at 0. Missing always ranks 0.
func Ranks(values []cluster.Value) []Norm {
	out := make([]Norm, len(values))
	if direct(values) {
		for i, v := range values {
			if v.IsMissing() {
				out[i] = Norm{Missing: true}
				continue
			}
			idx, _ := v.Index()
			out[i] = Norm{Rank: idx}
		}
		return out
	}

	seen := make(map[cluster.Value]int)
	for i, v := range values {
		if v.IsMissing() {
			out[i] = Norm{Missing: true}
			continue
		}
		r, ok := seen[v]
		if !ok {
			r = len(seen)
			seen[v] = r
		}
		out[i] = Norm{Rank: r}
	}
	return out
}

func direct(values []cluster.Value) bool {
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if _, ok := v.Index(); !ok {
			return false
		}
	}
	return true
}

// Fractions maps a batch linearly to [0, 1] between its minimum and maximum,
// ignoring Missing. A batch without spread maps to Midpoint. Infinite values
// sit at the ends of the range and finite values scale between the finite
// extremes. Batches holding labels have no natural scale: their categorical
// ranks are scaled instead, with Missing counted at rank 0.
func Fractions(values []cluster.Value) []Norm {
	nums := make([]float64, len(values))
	present := make([]bool, len(values))
	labelled := false
	for i, v := range values {
		if f, ok := v.Float(); ok {
			nums[i], present[i] = f, true
		} else if !v.IsMissing() {
			labelled = true
		}
	}
	if labelled {
		for i, r := range Ranks(values) {
			nums[i], present[i] = float64(r.Rank), true
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	flo, fhi := lo, hi
	for i, f := range nums {
		if !present[i] {
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
		if !math.IsInf(f, 0) {
			flo = math.Min(flo, f)
			fhi = math.Max(fhi, f)
		}
	}

	out := make([]Norm, len(values))
	for i, v := range values {
		n := Norm{Fraction: Midpoint, Missing: v.IsMissing()}
		if present[i] && hi > lo {
			n.Fraction = scale(nums[i], lo, hi, flo, fhi)
		}
		out[i] = n
	}
	return out
}

// scale places x within [lo, hi]. Values strictly inside are finite and are
// scaled between the finite extremes flo and fhi.
func scale(x, lo, hi, flo, fhi float64) float64 {
	switch {
	case x == lo:
		return 0
	case x == hi:
		return 1
	case fhi <= flo:
		return Midpoint
	}
	f := (x - flo) / (fhi - flo)
	if math.IsInf(fhi-flo, 0) {
		f = (x/2 - flo/2) / (fhi/2 - flo/2)
	}
	return math.Max(0, math.Min(1, f))
}
