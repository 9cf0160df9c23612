package selector

import (
	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colour"
)

// HighlightPalette colours selected clusters in selection order: blue, red,
// then the light glasbey set.
var HighlightPalette = []colour.RGB{
	colour.FromBytes(8, 146, 252),
	colour.FromBytes(255, 2, 2),
	colour.FromBytes(255, 218, 0),
	colour.FromBytes(0, 209, 165),
	colour.FromBytes(215, 109, 255),
	colour.FromBytes(140, 255, 142),
	colour.FromBytes(255, 159, 85),
	colour.FromBytes(0, 198, 255),
	colour.FromBytes(255, 126, 209),
	colour.FromBytes(185, 211, 106),
	colour.FromBytes(255, 179, 200),
	colour.FromBytes(135, 226, 255),
}

// SelectedColour returns the highlight colour of the i-th selected cluster.
func SelectedColour(i int) colour.RGB {
	n := len(HighlightPalette)
	return HighlightPalette[((i%n)+n)%n]
}

// Highlight replaces the colours of selected clusters. base is aligned with
// all; the k-th selected cluster met in all gets SelectedColour(k) and keeps
// its base alpha. Unselected colours pass through.
func Highlight(all, selected []cluster.ID, base []colour.RGBA) ([]colour.RGBA, error) {
	if len(base) != len(all) {
		return nil, &colour.ShapeError{What: "base colours", Got: len(base), Want: len(all)}
	}
	sel := make(map[cluster.ID]struct{}, len(selected))
	for _, id := range selected {
		sel[id] = struct{}{}
	}

	out := make([]colour.RGBA, len(base))
	copy(out, base)
	k := 0
	for i, id := range all {
		if _, ok := sel[id]; !ok {
			continue
		}
		out[i] = SelectedColour(k).WithAlpha(base[i].A)
		k++
	}
	return out, nil
}
