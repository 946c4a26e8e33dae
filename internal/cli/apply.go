package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/jrewrite/internal/configloader"
	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/config"
	"github.com/yaklabco/jrewrite/pkg/fsutil"
	"github.com/yaklabco/jrewrite/pkg/pipeline"
	"github.com/yaklabco/jrewrite/pkg/reporter"
	"github.com/yaklabco/jrewrite/pkg/runner"
	"github.com/yaklabco/jrewrite/pkg/script"
)

// stdinArg selects a single unit read from standard input.
const stdinArg = "-"

type applyFlags struct {
	format        string
	ignore        []string
	include       []string
	checkSyntax   bool
	spaces        bool
	tabWidth      int
	indentWidth   int
	lineDelimiter string
	blankLines    int
	clipboard     bool
	failOnChange  bool
	showUnchanged bool
	compact       bool
}

func newApplyCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Apply a change script to Java sources",
		Long:  applyLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, cfg, flags)
		},
	}

	addApplyFlags(cmd, cfg, flags)

	return cmd
}

const applyLongDescription = `Apply a change script to Java sources.

By default, processes all .java files in the current directory and its
subdirectories and reports what would change. Use --write to replace the
files. A single "-" argument reads one unit from standard input and prints
the rewritten unit.

Examples:
  jrewrite apply --script rename.yml              # Report changes
  jrewrite apply --script rename.yml src/         # Limit to src/
  jrewrite apply --script rename.yml --write      # Rewrite files in place
  jrewrite apply --script rename.yml --format diff
  jrewrite apply --script rename.yml --check-syntax --write
  jrewrite apply --script rename.yml - < A.java   # Filter stdin`

func addApplyFlags(cmd *cobra.Command, cfg *config.Config, flags *applyFlags) {
	cmd.Flags().StringVarP(&cfg.Script, "script", "s", "", "change script to apply")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write rewritten files back to disk")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing, even with --write")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only process paths matching these globs")
	cmd.Flags().BoolVar(&flags.checkSyntax, "check-syntax", false, "skip files whose rewritten output does not parse")
	cmd.Flags().BoolVar(&flags.spaces, "spaces", false, "indent inserted code with spaces")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "display width of a tab")
	cmd.Flags().IntVar(&flags.indentWidth, "indent-width", 0, "width of one indentation unit")
	cmd.Flags().StringVar(&flags.lineDelimiter, "line-delimiter", "", "line delimiter of inserted code: lf, crlf (default: per file)")
	cmd.Flags().IntVar(&flags.blankLines, "blank-lines", 0, "blank lines between inserted members")
	cmd.Flags().BoolVar(&flags.clipboard, "clipboard", false, "also copy the output to the clipboard")
	cmd.Flags().BoolVar(&flags.failOnChange, "fail-on-change", false, "exit with status 2 when changes are not written")
	cmd.Flags().BoolVar(&flags.showUnchanged, "show-unchanged", false, "list files the script left unchanged")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}

// applyCLIFlags copies explicitly set flags into cfg so that unset flags
// keep the values of config files and environment.
func applyCLIFlags(cmd *cobra.Command, cfg *config.Config, flags *applyFlags) {
	changed := cmd.Flags().Changed

	cfg.Ignore = flags.ignore
	if changed("format") {
		cfg.Output = config.OutputFormat(flags.format)
	}
	if changed("check-syntax") {
		cfg.Rewrite.CheckSyntax = &flags.checkSyntax
	}
	if changed("spaces") {
		useTabs := !flags.spaces
		cfg.Format.UseTabs = &useTabs
	}
	if changed("tab-width") {
		cfg.Format.TabWidth = flags.tabWidth
	}
	if changed("indent-width") {
		cfg.Format.IndentWidth = flags.indentWidth
	}
	if changed("line-delimiter") {
		cfg.Format.LineDelimiter = flags.lineDelimiter
	}
	if changed("blank-lines") {
		cfg.Format.BlankLinesBetweenMembers = &flags.blankLines
	}
}

func loadConfig(ctx context.Context, cmd *cobra.Command, cli *config.Config) (*config.Config, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", withCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	logger := logging.FromContext(ctx)
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	return loadResult.Config, workDir, nil
}

func runApply(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *applyFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	applyCLIFlags(cmd, cliCfg, flags)
	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug && cfg.Rewrite.LogLevel != "" {
		logging.SetLevel(cfg.Rewrite.LogLevel)
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	logger.Debug("configuration loaded",
		logging.FieldScript, cfg.Script,
		logging.FieldWrite, cfg.Write,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	if cfg.Script == "" {
		return withCode(ExitInvalidUsage, errors.New("no change script: use --script or set JREWRITE_SCRIPT"))
	}
	s, err := script.Load(cfg.Script)
	if err != nil {
		return withCode(ExitConfigError, fmt.Errorf("load script: %w", err))
	}

	format, err := reporter.ParseFormat(string(cfg.Output))
	if err != nil {
		return withCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	var copied bytes.Buffer
	out := cmd.OutOrStdout()
	if flags.clipboard {
		out = io.MultiWriter(out, &copied)
	}
	defer func() {
		if flags.clipboard && copied.Len() > 0 {
			copyToClipboard(logger, copied.String())
		}
	}()

	p := pipeline.New(s)
	if len(args) == 1 && args[0] == stdinArg {
		return runStdin(ctx, cmd, p, cfg, format, out)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		IncludeGlobs: flags.include,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
	logger.Debug("starting rewrite run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(p).Run(ctx, runOpts)
	if err != nil {
		return withCode(ExitIOError, errors.Join(errors.New("rewrite run failed"), err))
	}
	logger.Debug("rewrite run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldEditsTotal, result.Stats.EditsTotal,
	)

	written := cfg.Write && !cfg.DryRun
	rep, err := reporter.New(reporter.Options{
		Writer:        out,
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         colorMode,
		ShowChanges:   true,
		ShowUnchanged: flags.showUnchanged,
		ShowSummary:   true,
		Compact:       flags.compact,
		Write:         written,
		WorkingDir:    workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return withCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	switch ExitCodeFromResult(result, written, flags.failOnChange) {
	case ExitRewriteFailed:
		return ErrRewriteFailed
	case ExitChangesPending:
		return ErrChangesPending
	}
	return nil
}

// runStdin rewrites one unit from standard input. The text format prints
// the rewritten unit, or the original when nothing changed; the diff
// format prints its diff.
func runStdin(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, cfg *config.Config, format reporter.Format, out io.Writer) error {
	content, err := fsutil.ReadAll(ctx, cmd.InOrStdin())
	if err != nil {
		return withCode(ExitIOError, fmt.Errorf("read standard input: %w", err))
	}

	opts := pipeline.OptionsFromConfig(cfg)
	opts.Write = false
	res, err := p.ProcessContent(ctx, "", content, opts)
	if err != nil {
		return withCode(ExitRewriteFailed, err)
	}
	if res.Skipped {
		return withCode(ExitRewriteFailed, errors.New(res.SkipReason))
	}

	switch format {
	case reporter.FormatText:
		if res.Modified {
			content = res.Content
		}
		_, err = out.Write(content)
	case reporter.FormatDiff:
		if res.Diff.HasChanges() {
			_, err = io.WriteString(out, res.Diff.String())
		}
	default:
		return withCode(ExitInvalidUsage, fmt.Errorf("format %s is not supported for standard input", format))
	}
	if err != nil {
		return withCode(ExitIOError, fmt.Errorf("write output: %w", err))
	}
	return nil
}

func copyToClipboard(logger *log.Logger, text string) {
	if clipboard.Unsupported {
		logger.Warn("clipboard is not available on this system")
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warn("copy to clipboard failed", logging.FieldError, err)
	}
}
