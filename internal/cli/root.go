// Package cli provides the Cobra command structure for jrewrite.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root jrewrite command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "jrewrite",
		Short: "Script-driven, layout-preserving rewrites of Java sources",
		Long: `jrewrite applies change scripts to Java compilation units.

A change script matches syntax nodes and records replacements, insertions,
removals, moves and copies on them. jrewrite turns those changes into
minimal text edits: everything the script did not touch keeps its original
formatting and comments, and new code is indented to fit its position.
Files are only written with --write, atomically and with optional backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newKindsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
