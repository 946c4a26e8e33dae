package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jrewrite/internal/configloader"
	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new jrewrite configuration file",
		Long: `Create a new .jrewrite.yml configuration file in the current directory.
The file controls the layout of inserted code, the syntax check of rewritten
output, backups and ignored paths.

Examples:
  jrewrite init                      Create minimal .jrewrite.yml
  jrewrite init --full               Write every setting with its default
  jrewrite init --format toml        Create .jrewrite.toml instead
  jrewrite init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .jrewrite.yml or .jrewrite.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWriter(cmd.ErrOrStderr(), "info")
	if configloader.IsInteractive() {
		logger = logging.NewInteractive()
	}

	if flags.format != "yaml" && flags.format != "toml" {
		return withCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".jrewrite.yml"
		if flags.format == "toml" {
			outputPath = ".jrewrite.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return withCode(ExitIOError, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'jrewrite kinds' to see the node kinds scripts can match")

	return nil
}
