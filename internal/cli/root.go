// Package cli wires configuration, the search service and the terminal
// UI together behind the qsearch commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// options are the flags shared by every command
type options struct {
	configPath string
}

// NewRootCmd builds the qsearch command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "qsearch [query]",
		Short: "Search a question index from the terminal",
		Long: `qsearch is an interactive search box for a remote question index.

Results update as you type, pages are fetched on demand and cached for
the session. An optional query starts the search right away.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")

	rootCmd.AddCommand(newQueryCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qsearch %s (commit: %s)\n", version, commit)
		},
	})

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo records build metadata for the version command
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}
