// Package cli provides the Cobra command structure for csvtool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Fati1996i/commons-csv/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds flags shared by every subcommand.
type globalFlags struct {
	debug   bool
	color   string
	dialect dialectFlags
}

// NewRootCommand creates the root csvtool command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "csvtool",
		Short: "Inspect, validate and convert CSV files",
		Long: `csvtool reads CSV from files, URLs or standard input using a
configurable dialect: custom delimiters, quoting, escapes, comment
lines, header resolution and null markers.

Records keep their one-based numbers together with character and byte
offsets, so large inputs can be sampled, checked and converted without
losing track of where each record came from.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if global.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", "auto",
		"colorize output: auto, always, never")
	addDialectFlags(rootCmd, &global.dialect)

	// Add subcommands.
	rootCmd.AddCommand(newHeadCommand(global))
	rootCmd.AddCommand(newHeadersCommand(global))
	rootCmd.AddCommand(newStatsCommand(global))
	rootCmd.AddCommand(newConvertCommand(global))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
