package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies pointers and slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"build/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original.Format.UseTabs, clone.Format.UseTabs)
		assert.Equal(t, *original.Format.UseTabs, *clone.Format.UseTabs)

		clone.Ignore[0] = "changed"
		*clone.Format.UseTabs = false
		assert.Equal(t, "build/**", original.Ignore[0])
		assert.True(t, *original.Format.UseTabs)
	})

	t.Run("copies CLI fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{Script: "s.yml", Write: true, Jobs: 3, Output: config.FormatDiff}
		clone := original.Clone()
		assert.Equal(t, "s.yml", clone.Script)
		assert.True(t, clone.Write)
		assert.Equal(t, 3, clone.Jobs)
		assert.Equal(t, config.FormatDiff, clone.Output)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Format.LineDelimiter = config.DelimiterLF
	cfg.Script = "not serialized"

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "not serialized")

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Format, back.Format)
	assert.Equal(t, cfg.Backups, back.Backups)
	assert.Empty(t, back.Script)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("format: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromTOML([]byte("[format]\ntab_width = 8\nuse_tabs = false\n\n[backups]\nenabled = false\nmode = \"none\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Format.TabWidth)
	assert.False(t, cfg.Format.UsesTabs())
	assert.Equal(t, "none", cfg.Backups.Mode)

	_, err = config.FromTOML([]byte("[format]\ntabs = 2\n"))
	require.Error(t, err)

	data, err := config.NewConfig().ToTOML()
	require.NoError(t, err)
	back, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultIndentWidth, back.Format.IndentWidth)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, opts := range []config.TemplateOptions{
		{}, {Full: true}, {Format: "toml"},
	} {
		data, err := config.GenerateTemplate(opts)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# jrewrite configuration")
	}

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Format.TabWidth)

	_, err = config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
	require.Error(t, err)
}

func TestFromYAML_Strict(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("format:\n  tabs: 2\n"))
	require.Error(t, err, "unknown key")

	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
}
