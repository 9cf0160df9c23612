package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clustercolour/internal/colour"
	"github.com/jmylchreest/clustercolour/internal/palette"
)

const maxSwatches = 12

type palettesOptions struct {
	format  string
	preview bool
	random  int
	seed    uint64
	name    string
}

func newPalettesCmd(global *globalOptions) *cobra.Command {
	opts := &palettesOptions{format: "table", name: "random"}

	cmd := &cobra.Command{
		Use:   "palettes [name...]",
		Short: "List available colormaps",
		Long: `List the builtin colormaps and those loaded with --palettes.

Swatches are shown when writing to a terminal or with --preview. The json
format prints the palette definitions in the palette file layout, ready to be
edited and loaded back with --palettes.

With --random a categorical palette of bright random colours is generated and
listed instead. The seed is reported unless given with --seed.

Examples:
  # Save a reproducible random palette and colour clusters with it
  clustercolour palettes --random 16 --seed 7 --format json > random.json
  clustercolour colours --palettes random.json --ids 0-15 --colormap random`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalettes(cmd, global, opts, args)
		},
	}

	cmd.Flags().VarP(&choiceValue{value: &opts.format, choices: []string{"table", formatJSON}}, "format", "f", "output format (table, json)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "always show colour swatches")
	cmd.Flags().IntVar(&opts.random, "random", 0, "generate a palette of N random bright colours")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for --random (default: random)")
	cmd.Flags().StringVar(&opts.name, "name", opts.name, "name of the --random palette")

	return cmd
}

func runPalettes(cmd *cobra.Command, global *globalOptions, opts *palettesOptions, names []string) error {
	store, err := global.paletteStore(global.logger(cmd))
	if err != nil {
		return err
	}
	if opts.random != 0 {
		if !cmd.Flags().Changed("seed") {
			opts.seed = rand.Uint64() // #nosec G404 -- palette colours, not cryptography
			global.printf(cmd, "random palette seed %d\n", opts.seed)
		}
		p, err := randomPalette(opts.name, opts.random, opts.seed)
		if err != nil {
			return err
		}
		store = store.Clone()
		if err := store.Register(p); err != nil {
			return err
		}
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		names = store.Names()
	}

	palettes := make([]*palette.Palette, len(names))
	for i, name := range names {
		p, err := store.Lookup(name)
		if err != nil {
			return err
		}
		palettes[i] = p
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		doc := make(map[string]*palette.Palette, len(palettes))
		for _, p := range palettes {
			doc[p.Name] = p
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"palettes": doc})
	}

	preview := opts.preview || isTerminal(out)
	headers := []string{"NAME", "KIND", "COLOURS"}
	if preview {
		headers = append(headers, "PREVIEW")
	}
	table := NewTable(headers)
	for _, p := range palettes {
		colours := p.Colours
		size := strconv.Itoa(p.Len())
		if p.Kind == palette.KindGroup {
			colours = groupColours(p)
			size = fmt.Sprintf("%d labels", len(p.Labels))
		}
		row := []string{p.Name, string(p.Kind), size}
		if preview {
			row = append(row, swatches(colours))
		}
		table.AddRow(row)
	}
	fmt.Fprint(out, table.Render())
	return nil
}

// randomPalette builds a categorical palette of n bright colours. The same
// seed always yields the same palette.
func randomPalette(name string, n int, seed uint64) (*palette.Palette, error) {
	if n < 0 {
		return nil, fmt.Errorf("--random must be positive, got %d", n)
	}
	rng := rand.New(rand.NewPCG(seed, seed)) // #nosec G404 -- palette colours, not cryptography
	colours := make([]colour.RGB, n)
	for i := range colours {
		colours[i] = colour.RandomBright(rng)
	}
	p := palette.Categorical(colours...)
	p.Name = name
	return p, nil
}

// groupColours returns the label colours in label order, then the missing
// colour.
func groupColours(p *palette.Palette) []colour.RGB {
	var out []colour.RGB
	for _, label := range slices.Sorted(maps.Keys(p.Labels)) {
		out = append(out, p.Labels[label])
	}
	return append(out, p.Missing)
}

func swatches(colours []colour.RGB) string {
	var b strings.Builder
	for i, c := range colours {
		if i == maxSwatches {
			b.WriteString(" …")
			break
		}
		b.WriteString(colour.Swatch(c, 2))
	}
	return b.String()
}
