package layout

import (
	"math"
	"slices"

	"github.com/jmylchreest/clustercolour/internal/cluster"
)

// StaggeredPositions returns the positions of n channels zig-zagging along a
// probe shank, 10 units apart vertically. Channel 0 is at the top and the
// last channel at the origin.
func StaggeredPositions(n int) map[cluster.ID][2]float64 {
	out := make(map[cluster.ID][2]float64, n)
	if n <= 0 {
		return out
	}
	rows := make([][2]float64, 0, n)
	rows = append(rows, [2]float64{0, 0})
	for i := range n - 1 {
		x := float64(5 + i)
		if i%2 == 1 {
			x = -x
		}
		rows = append(rows, [2]float64{x, 10 * float64(i+1)})
	}
	slices.Reverse(rows)
	for i, p := range rows {
		out[cluster.ID(i)] = p
	}
	return out
}

// minDistance is the smallest distance between two distinct channels, or 0
// with fewer than two channels.
func minDistance(points [][2]float64) float64 {
	best := math.Inf(1)
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := math.Hypot(points[i][0]-points[j][0], points[i][1]-points[j][1])
			if d > 0 && d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}
