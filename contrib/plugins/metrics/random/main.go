// random - Random cluster metric (clustercolour metric plugin)
//
// Serves a "random" metric uniform in [0, 1). Each cluster's value depends
// only on the seed and the cluster id, so colours stay put while clusters are
// added or removed. Useful to check a colormap end to end.
//
// Build:
//   go build -o random-metrics
//
// Usage:
//   CLUSTERCOLOUR_RANDOM_SEED=42 \
//     clustercolour colours --ids 0-31 --metrics-plugin ./random-metrics --field random --colormap rainbow
//
// Environment:
//   CLUSTERCOLOUR_RANDOM_SEED: seed for reproducible values (default: random)

package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"os"
	"strconv"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/plugin/metrics"
)

const metricName = "random"

type randomProvider struct {
	seed uint64
}

func (p *randomProvider) Names() ([]string, error) {
	return []string{metricName}, nil
}

func (p *randomProvider) Compute(name string, ids []cluster.ID) ([]float64, error) {
	if name != metricName {
		return nil, fmt.Errorf("unknown metric %q", name)
	}
	out := make([]float64, len(ids))
	for i, id := range ids {
		// #nosec G404 -- deterministic values for display, not cryptography
		rng := mathrand.New(mathrand.NewPCG(p.seed, uint64(id))) // #nosec G115 -- id bits only seed the generator
		out[i] = rng.Float64()
	}
	return out, nil
}

func main() {
	seed := uint64(0)
	if s := os.Getenv("CLUSTERCOLOUR_RANDOM_SEED"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid seed %q: %v\n", s, err)
			os.Exit(1)
		}
		seed = v
	} else {
		var randomBytes [8]byte
		if _, err := rand.Read(randomBytes[:]); err == nil {
			seed = binary.LittleEndian.Uint64(randomBytes[:])
		}
	}
	metrics.Serve(&randomProvider{seed: seed})
}
