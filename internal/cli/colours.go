package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colour"
	"github.com/jmylchreest/clustercolour/internal/plugin/metrics"
	"github.com/jmylchreest/clustercolour/internal/selector"
)

// Output formats of the colours command.
const (
	formatHex  = "hex"
	formatRGBA = "rgba"
	formatJSON = "json"
)

type coloursOptions struct {
	field         string
	colormap      string
	meta          []string
	ids           []cluster.ID
	selected      []cluster.ID
	dimmed        []cluster.ID
	alpha         float64
	dimAlpha      float64
	format        string
	preview       bool
	metricsPlugin string
	saveState     bool
}

func newColoursCmd(global *globalOptions) *cobra.Command {
	opts := &coloursOptions{
		alpha:    selector.DefaultOpacity,
		dimAlpha: colour.DefaultAlpha,
		format:   formatHex,
	}

	cmd := &cobra.Command{
		Use:   "colours",
		Short: "Print the colour of each cluster",
		Long: `Print the colour of each cluster for a field and colormap.

The field is the cluster id ("cluster"), a column of the metadata files, or
a metric served by a metrics plugin. Without --field and --colormap the state
stored in the session file is used, if any.

Examples:
  # Colour clusters by id with the default categorical palette
  clustercolour colours --ids 0-9

  # Colour by manual sorting group
  clustercolour colours --meta cluster_group.tsv --field group --colormap cluster_group

  # Colour by a numeric column and highlight two clusters
  clustercolour colours --meta cluster_info.tsv --field amplitude --colormap linear --select 4,2

  # Colour by a plugin metric and remember the choice
  clustercolour colours --metrics-plugin ./table-metrics --field firing_rate --colormap rainbow --save-state`,
		Aliases: []string{"colors"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runColours(cmd, global, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.field, "field", "", "field to colour by (default: session state or cluster)")
	f.StringVarP(&opts.colormap, "colormap", "c", "", "colormap name (default: session state or categorical)")
	f.StringSliceVarP(&opts.meta, "meta", "m", nil, "cluster metadata files (TSV, YAML or JSON)")
	f.Var(newIDListValue(&opts.ids), "ids", "clusters to colour, e.g. 1,2,5-7 (default: clusters in metadata)")
	f.Var(newIDListValue(&opts.selected), "select", "selected clusters, highlighted in order")
	f.Var(newIDListValue(&opts.dimmed), "dim", "clusters drawn desaturated and darker")
	f.Var(&alphaValue{alpha: &opts.alpha}, "alpha", "opacity of the colours")
	f.Var(&alphaValue{alpha: &opts.dimAlpha}, "dim-alpha", "opacity of dimmed clusters")
	f.VarP(&choiceValue{value: &opts.format, choices: []string{formatHex, formatRGBA, formatJSON}}, "format", "f", "output format (hex, rgba, json)")
	f.BoolVar(&opts.preview, "preview", false, "show colour swatches")
	f.StringVar(&opts.metricsPlugin, "metrics-plugin", "", "plugin binary providing cluster metrics")
	f.BoolVar(&opts.saveState, "save-state", false, "store the field and colormap in the session file")

	return cmd
}

func runColours(cmd *cobra.Command, global *globalOptions, opts *coloursOptions) error {
	logger := global.logger(cmd)

	store, err := global.paletteStore(logger)
	if err != nil {
		return err
	}

	table := cluster.NewTable()
	for _, path := range opts.meta {
		t, err := cluster.LoadFile(path)
		if err != nil {
			return err
		}
		table.Merge(t)
		logger.Debug("loaded metadata", "path", path, "fields", t.Fields())
	}

	ids := opts.ids
	universe := table.IDs()
	if len(ids) == 0 {
		ids = universe
	}
	if len(ids) == 0 {
		return errors.New("no clusters to colour: give --ids or --meta")
	}
	if len(universe) == 0 {
		universe = ids
	}

	var m cluster.Metrics
	if opts.metricsPlugin != "" {
		client, err := metrics.Launch(opts.metricsPlugin, logger)
		if err != nil {
			return fmt.Errorf("failed to start metrics plugin: %w", err)
		}
		defer client.Close()

		m, err = client.Metrics(sortedUnion(universe, ids))
		if err != nil {
			return err
		}
	}

	sel, err := selector.New(selector.Config{
		Metadata:   table,
		Metrics:    m,
		Palettes:   store,
		Logger:     logger.Named("selector"),
		ClusterIDs: universe,
		Alpha:      &opts.alpha,
	})
	if err != nil {
		return err
	}

	sessionPath, err := global.sessionPath()
	if err != nil {
		return err
	}
	if err := restoreState(sel, sessionPath, logger); err != nil {
		return err
	}
	if opts.field != "" || opts.colormap != "" {
		if err := sel.SetColorMapping(opts.field, opts.colormap); err != nil {
			return err
		}
	}

	colours := sel.GetColors(ids)
	if len(opts.dimmed) > 0 {
		if colours, err = dim(ids, opts.dimmed, colours, opts.dimAlpha); err != nil {
			return err
		}
	}
	if len(opts.selected) > 0 {
		if colours, err = selector.Highlight(ids, opts.selected, colours); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if err := writeColours(out, opts, ids, sel.Values(ids), colours); err != nil {
		return err
	}

	if opts.saveState {
		if err := selector.SaveSession(sessionPath, sel.State()); err != nil {
			return err
		}
		global.printf(cmd, "saved colour state to %s\n", sessionPath)
	}
	return nil
}

// dim desaturates and darkens the dimmed clusters and draws them at
// dimAlpha. Other clusters keep their colour and opacity.
func dim(ids, dimmed []cluster.ID, colours []colour.RGBA, dimAlpha float64) ([]colour.RGBA, error) {
	rgb := make([]colour.RGB, len(colours))
	masks := make([]float64, len(colours))
	alphas := make([]float64, len(colours))
	for i, c := range colours {
		rgb[i] = c.RGB()
		masks[i], alphas[i] = 1, c.A
		if slices.Contains(dimmed, ids[i]) {
			masks[i], alphas[i] = 0, dimAlpha
		}
	}
	masked, err := colour.ApplyMasks(rgb, masks, 0)
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, len(masked))
	for i, c := range masked {
		rows[i] = c.RGB().Slice()
	}
	return colour.AddAlphaEach(rows, alphas)
}

// restoreState applies the session state, if any. A stale state naming a
// palette that no longer exists is ignored.
func restoreState(sel *selector.Selector, path string, logger hclog.Logger) error {
	st, ok, err := selector.LoadSession(path)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := sel.SetState(st); err != nil {
		logger.Warn("ignoring stored colour state", "path", path, "error", err)
		return nil
	}
	logger.Debug("restored colour state", "path", path, "field", st.ColorField, "colormap", st.Colormap.String())
	return nil
}

type colourRecord struct {
	Cluster  cluster.ID `json:"cluster"`
	Value    any        `json:"value"`
	Hex      string     `json:"hex"`
	RGBA     []float64  `json:"rgba"`
	Selected bool       `json:"selected,omitempty"`
}

func writeColours(w io.Writer, opts *coloursOptions, ids []cluster.ID, values []cluster.Value, colours []colour.RGBA) error {
	if opts.format == formatJSON {
		records := make([]colourRecord, len(ids))
		for i, id := range ids {
			records[i] = colourRecord{
				Cluster:  id,
				Value:    jsonValue(values[i]),
				Hex:      colours[i].Hex(),
				RGBA:     colours[i].Slice(),
				Selected: slices.Contains(opts.selected, id),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for i, id := range ids {
		c := colours[i]
		text := c.Hex()
		if opts.format == formatRGBA {
			text = c.String()
		}
		if opts.preview {
			fmt.Fprintf(w, "%s  ", colour.SwatchWithText(c.RGB(), strconv.Itoa(int(id)), 6))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", id, values[i], text)
	}
	return nil
}

func jsonValue(v cluster.Value) any {
	if f, ok := v.Float(); ok {
		return f
	}
	if s, ok := v.Text(); ok {
		return s
	}
	return nil
}

func sortedUnion(a, b []cluster.ID) []cluster.ID {
	out := slices.Concat(a, b)
	slices.Sort(out)
	return slices.Compact(out)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
