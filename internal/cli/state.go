package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/clustercolour/internal/selector"
)

type stateOptions struct {
	reset bool
}

func newStateCmd(global *globalOptions) *cobra.Command {
	opts := &stateOptions{}

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the stored colour state",
		Long: `Print the colour state stored in the session file as JSON.

With --reset the state is replaced by the default: clusters coloured by id
with the categorical palette.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runState(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.reset, "reset", false, "store the default state")

	return cmd
}

func runState(cmd *cobra.Command, global *globalOptions, opts *stateOptions) error {
	path, err := global.sessionPath()
	if err != nil {
		return err
	}

	if opts.reset {
		sel, err := selector.New(selector.Config{Logger: global.logger(cmd)})
		if err != nil {
			return err
		}
		if err := selector.SaveSession(path, sel.State()); err != nil {
			return err
		}
		global.printf(cmd, "reset colour state in %s\n", path)
	}

	st, ok, err := selector.LoadSession(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no colour state in %s", path)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
