package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, render := range []func(...string) string{
		styles.Bold.Render,
		styles.Error.Render,
		styles.Rewritten.Render,
		styles.DiffAdd.Render,
		styles.Group.Render,
	} {
		assert.Equal(t, "test", render("test"))
	}
}

func TestStyles_Status(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, status := range []string{"rewritten", "pending", "skipped", "unchanged", "error", "other"} {
		assert.Equal(t, status, styles.Status(status))
	}

	colored := pretty.NewStyles(true)
	assert.Contains(t, colored.Status("rewritten"), "rewritten")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, os.Stdout))

	t.Setenv("NO_COLOR", "")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
}
