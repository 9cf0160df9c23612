// clustercolour - colours spike-sorting clusters by their attributes
//
// clustercolour maps a cluster attribute (id, metadata label or metric) to
// display colours and renders probe diagrams with highlighted channel groups.
package main

import (
	"os"

	"github.com/jmylchreest/clustercolour/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
