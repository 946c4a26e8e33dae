package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	cfg := result.Config
	assert.Equal(t, config.DefaultTabWidth, cfg.Format.TabWidth)
	assert.True(t, cfg.Format.UsesTabs())
	assert.False(t, cfg.Rewrite.ChecksSyntax())
	assert.Equal(t, config.FormatText, cfg.Output)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jrewrite.yml"), `
format:
  indent_width: 2
  use_tabs: false
rewrite:
  check_syntax: true
ignore:
  - "**/generated/**"
`)

	// Search starts in a subdirectory and walks upward.
	sub := filepath.Join(tmpDir, "src", "main")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 2, cfg.Format.IndentWidth)
	assert.Equal(t, config.DefaultTabWidth, cfg.Format.TabWidth, "unset fields keep defaults")
	assert.False(t, cfg.Format.UsesTabs())
	assert.True(t, cfg.Rewrite.ChecksSyntax())
	assert.Equal(t, []string{"**/generated/**"}, cfg.Ignore)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".jrewrite.yml")}, result.LoadedFrom)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jrewrite.yml"), "format:\n  indent_width: 2\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.DefaultIndentWidth, result.Config.Format.IndentWidth)
}

func TestLoad_TOMLConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jrewrite.toml"), `
[format]
tab_width = 8
line_delimiter = "crlf"

[backups]
enabled = true
mode = "none"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, 8, result.Config.Format.TabWidth)
	assert.Equal(t, "\r\n", result.Config.Format.Delimiter())
	assert.Equal(t, "none", result.Config.Backups.Mode)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jrewrite.yml"), "format:\n  indent_width: 2\n  tab_width: 2\n")
	explicit := filepath.Join(tmpDir, "custom", "rewrite.yaml")
	writeFile(t, explicit, "format:\n  indent_width: 3\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Config.Format.IndentWidth, "explicit wins over project")
	assert.Equal(t, 2, result.Config.Format.TabWidth, "project still applies below explicit")
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jrewrite.yml"), "format:\n  use_tabs: true\n")

	useTabs := false
	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Format: config.FormatConfig{UseTabs: &useTabs},
		Script: "rename.yml",
		Write:  true,
		Jobs:   3,
		Output: config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.False(t, cfg.Format.UsesTabs())
	assert.Equal(t, "rename.yml", cfg.Script)
	assert.True(t, cfg.Write)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, config.FormatJSON, cfg.Output)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		field   string
	}{
		{name: "negative width", file: ".jrewrite.yml", content: "format:\n  tab_width: -1\n", field: "format.tab_width"},
		{name: "delimiter", file: ".jrewrite.yml", content: "format:\n  line_delimiter: cr\n", field: "format.line_delimiter"},
		{name: "log level", file: ".jrewrite.yml", content: "rewrite:\n  log_level: loud\n", field: "rewrite.log_level"},
		{name: "backup mode", file: ".jrewrite.toml", content: "[backups]\nmode = \"copy\"\n", field: "backups.mode"},
		{name: "ignore glob", file: ".jrewrite.yml", content: "ignore: [\"[\"]\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, tt.file)
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jrewrite.yml"), "format: [unclosed\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JREWRITE_INDENT_WIDTH", "2")
	t.Setenv("JREWRITE_USE_TABS", "false")
	t.Setenv("JREWRITE_IGNORE", "a/**, b/**")
	t.Setenv("JREWRITE_OUTPUT", "diff")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 2, cfg.Format.IndentWidth)
	assert.False(t, cfg.Format.UsesTabs())
	assert.Equal(t, []string{"a/**", "b/**"}, cfg.Ignore)
	assert.Equal(t, config.FormatDiff, cfg.Output)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("JREWRITE_WRITE", "maybe")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JREWRITE_WRITE")
}

func TestListEnvVars_CoversMappings(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for suffix, mapping := range envMappings {
		assert.Contains(t, vars, envVarPrefix+suffix)
		assert.Equal(t, envVarPrefix+suffix, GetEnvVarName(mapping.field))
	}
	assert.Len(t, vars, len(envMappings))
}

func TestMerge_Pointers(t *testing.T) {
	t.Parallel()

	on, off := true, false
	zero := 0

	base := config.NewConfig()
	base.Rewrite.CheckSyntax = &on

	override := &config.Config{
		Format:  config.FormatConfig{UseTabs: &off, BlankLinesBetweenMembers: &zero},
		Rewrite: config.RewriteConfig{LogLevel: "debug"},
	}

	got := MergeAll(base, override, nil)
	assert.False(t, got.Format.UsesTabs())
	assert.Zero(t, got.Format.MemberSpacing())
	assert.True(t, got.Rewrite.ChecksSyntax(), "nil pointer keeps base")
	assert.Equal(t, "debug", got.Rewrite.LogLevel)
	assert.Equal(t, config.DefaultTabWidth, got.Format.TabWidth)
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	many := 9
	cfg := config.NewConfig()
	cfg.Format.BlankLinesBetweenMembers = &many
	cfg.Write = true
	cfg.DryRun = true

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.True(t, result.HasWarnings())
	assert.Len(t, result.Warnings, 2)
	assert.Len(t, result.AllMessages(), 2)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".jrewrite.yml")
	require.NoError(t, WriteConfig(path, []byte("format: {}\n"), false))
	require.Error(t, WriteConfig(path, []byte("x"), false))
	require.NoError(t, WriteConfig(path, []byte("rewrite: {}\n"), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rewrite: {}\n", string(data))
}

func TestConfigKind(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTOMLConfig("a/.jrewrite.toml"))
	assert.False(t, IsTOMLConfig("a/.jrewrite.yml"))
	assert.True(t, IsYAMLConfig("config.yaml"))
	assert.True(t, IsYAMLConfig(".jrewrite.yml"))
}
