// Package cli provides the Cobra command structure for codewatch.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/codewatch/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root codewatch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "codewatch",
		Short: "Turn scanner violations into live, fixable editor diagnostics",
		Long: `codewatch orchestrates static-analysis findings on the client side.

It converts violation reports from scanning engines into position-accurate
diagnostics, keeps them consistent as files are edited, and can offer
automated fixes (rule suppressions or engine-proposed rewrites) that are
never applied to code that changed since analysis.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "codewatch.yaml",
		"path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newEnginesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
