package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clustercolour/internal/layout"
)

type layoutOptions struct {
	channels int
	groups   *groupsValue
	width    float64
	output   string
}

func newLayoutCmd(global *globalOptions) *cobra.Command {
	opts := &layoutOptions{channels: 32, groups: newGroupsValue()}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Draw a probe diagram as SVG",
		Long: `Draw the channels of a staggered probe as an SVG diagram, filling the
channels of each group with the highlight colour of that group.

Examples:
  clustercolour layout --channels 32 --group 0=1,3,5,7,9 --group 1=7-13 > probe.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayout(cmd, global, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.channels, "channels", "n", opts.channels, "number of probe channels")
	cmd.Flags().Var(opts.groups, "group", "channel group as id=channels, repeatable")
	cmd.Flags().Float64Var(&opts.width, "width", layout.DefaultOptions().Width, "image width in pixels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runLayout(cmd *cobra.Command, global *globalOptions, opts *layoutOptions) error {
	if opts.channels < 0 {
		return fmt.Errorf("channels must not be negative, got %d", opts.channels)
	}
	logger := global.logger(cmd)

	layoutOpts := layout.DefaultOptions()
	layoutOpts.Width = opts.width
	svg, err := layoutOpts.Render(layout.StaggeredPositions(opts.channels), opts.groups.groups)
	if err != nil {
		return err
	}
	logger.Debug("rendered layout", "channels", opts.channels, "groups", len(opts.groups.groups))

	if opts.output == "" {
		fmt.Fprint(cmd.OutOrStdout(), svg)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(svg), 0o600); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	global.printf(cmd, "wrote %s\n", opts.output)
	return nil
}
