// table - Metric provider backed by a cluster table (clustercolour metric plugin)
//
// Serves every numeric column of a TSV, YAML or JSON cluster table as a
// metric. Labels and empty cells are reported as NaN, which colours the
// cluster as missing.
//
// Build:
//   go build -o table-metrics
//
// Usage:
//   CLUSTERCOLOUR_METRICS_FILE=metrics.tsv \
//     clustercolour colours --metrics-plugin ./table-metrics --field amplitude --colormap linear

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/plugin/metrics"
)

// fileEnv names the table the plugin serves.
const fileEnv = "CLUSTERCOLOUR_METRICS_FILE"

type tableProvider struct {
	table *cluster.Table
}

func (p *tableProvider) Names() ([]string, error) {
	return p.table.Fields(), nil
}

func (p *tableProvider) Compute(name string, ids []cluster.ID) ([]float64, error) {
	out := make([]float64, len(ids))
	for i, id := range ids {
		v, ok := p.table.Lookup(name, id).Float()
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out, nil
}

func main() {
	path := os.Getenv(fileEnv)
	if path == "" {
		fmt.Fprintf(os.Stderr, "%s is not set\n", fileEnv)
		os.Exit(1)
	}
	table, err := cluster.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading metrics: %v\n", err)
		os.Exit(1)
	}
	metrics.Serve(&tableProvider{table: table})
}
