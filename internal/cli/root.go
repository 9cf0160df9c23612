// Package cli provides the command-line interface for clustercolour.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/clustercolour/internal/palette"
	"github.com/jmylchreest/clustercolour/internal/version"
)

// Environment fallbacks for the global flags.
const (
	EnvPalettes = "CLUSTERCOLOUR_PALETTES"
	EnvSession  = "CLUSTERCOLOUR_SESSION"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose  bool
	quiet    bool
	palettes []string
	session  string
}

// NewRootCmd builds the command tree. Each call returns independent commands
// and flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "clustercolour",
		Short: "Colour spike-sorting clusters by their attributes",
		Long: `clustercolour assigns display colours to clusters from a chosen attribute:
the cluster id, a label from cluster metadata, or a numeric metric.

Labels are coloured from discrete palettes, numbers are scaled across the
batch and sampled from continuous gradients, and the manual sorting group
uses fixed colours. Selected clusters are highlighted in selection order.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringSliceVar(&opts.palettes, "palettes", nil,
		"palette files or directories to load (env "+EnvPalettes+")")
	rootCmd.PersistentFlags().StringVar(&opts.session, "session", "",
		"session file holding the selector state (env "+EnvSession+")")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newColoursCmd(opts))
	rootCmd.AddCommand(newPalettesCmd(opts))
	rootCmd.AddCommand(newLayoutCmd(opts))
	rootCmd.AddCommand(newStateCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// logger returns a Debug logger on stderr when verbose and a silent one
// otherwise.
func (o *globalOptions) logger(cmd *cobra.Command) hclog.Logger {
	if o.verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "clustercolour",
			Output: cmd.ErrOrStderr(),
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "clustercolour",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// paletteStore returns the builtin palettes plus any user palette files.
func (o *globalOptions) paletteStore(logger hclog.Logger) (*palette.Store, error) {
	store := palette.Default().WithLogger(logger)

	paths := o.palettes
	if len(paths) == 0 {
		if env := os.Getenv(EnvPalettes); env != "" {
			paths = filepath.SplitList(env)
		}
	}
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := store.LoadPath(path); err != nil {
			return nil, fmt.Errorf("failed to load palettes: %w", err)
		}
	}
	return store, nil
}

// sessionPath returns the session file, falling back to the environment and
// then to the user config directory.
func (o *globalOptions) sessionPath() (string, error) {
	if o.session != "" {
		return o.session, nil
	}
	if env := os.Getenv(EnvSession); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("no session file given and no config directory: %w", err)
	}
	return filepath.Join(dir, "clustercolour", "session.json"), nil
}

// printf writes informational output unless quiet.
func (o *globalOptions) printf(cmd *cobra.Command, format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
