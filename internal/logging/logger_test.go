package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{level: "debug", want: log.DebugLevel},
		{level: "info", want: log.InfoLevel},
		{level: "warn", want: log.WarnLevel},
		{level: "warning", want: log.WarnLevel},
		{level: "ERROR", want: log.ErrorLevel},
		{level: "bogus", want: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(tt.level)
			require.NotNil(t, logger)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.ValidLevel("Debug"))
	assert.True(t, logging.ValidLevel("warning"))
	assert.False(t, logging.ValidLevel("trace"))
	assert.False(t, logging.ValidLevel(""))
}

func TestNewWriter_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "debug")
	logger.Debug("generated edits", logging.FieldEdits, 3, logging.FieldKind, "Block")

	assert.Contains(t, buf.String(), "generated edits")
	assert.Contains(t, buf.String(), "edits=3")
	assert.Contains(t, buf.String(), "kind=Block")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "info")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))

	logging.ForFile(ctx, "A.java").Info("rewritten")
	assert.Contains(t, buf.String(), "path=A.java")
}

//nolint:paralleltest // mutates the package default
func TestSetDefault(t *testing.T) {
	old := logging.Default()
	t.Cleanup(func() { logging.SetDefault(old) })

	replacement := logging.New("error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
}
