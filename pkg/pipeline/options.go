package pipeline

import (
	"github.com/yaklabco/jrewrite/pkg/config"
	"github.com/yaklabco/jrewrite/pkg/format"
	"github.com/yaklabco/jrewrite/pkg/fsutil"
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/rewrite"
)

// FormatOptions creates the layout of inserted code from cfg. An unset
// line delimiter keeps the delimiter of each source.
func FormatOptions(cfg *config.Config) format.Options {
	opts := format.DefaultOptions()
	opts.LineDelimiter = ""
	if cfg == nil {
		return opts
	}
	f := cfg.Format
	if f.TabWidth > 0 {
		opts.Indent.TabWidth = f.TabWidth
	}
	if f.IndentWidth > 0 {
		opts.Indent.IndentWidth = f.IndentWidth
	}
	opts.Indent = indent.Options{
		TabWidth:    opts.Indent.TabWidth,
		IndentWidth: opts.Indent.IndentWidth,
		UseTabs:     f.UsesTabs(),
	}
	opts.LineDelimiter = f.Delimiter()
	opts.BlankLinesBetweenMembers = f.MemberSpacing()
	return opts
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// OptionsFromConfig creates Options from config.Config.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		Write:       cfg.Write,
		DryRun:      cfg.DryRun,
		Backup:      BackupConfigFromConfig(cfg),
		CheckSyntax: cfg.Rewrite.ChecksSyntax(),
		Rewrite:     rewrite.Options{Format: FormatOptions(cfg)},
	}
}
