package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/config"
	"github.com/yaklabco/jrewrite/pkg/pipeline"
	"github.com/yaklabco/jrewrite/pkg/runner"
	"github.com/yaklabco/jrewrite/pkg/script"
)

const rename = "steps:\n  - match: {kind: MethodInvocation, name: oldName}\n    replace: {slot: Name, text: newName}\n"

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	s, err := script.Parse([]byte(rename))
	require.NoError(t, err)
	return runner.New(pipeline.New(s))
}

func source(calls bool) string {
	if calls {
		return "class A {\n    void m() {\n        oldName();\n    }\n}\n"
	}
	return "class A {\n    void m() {\n    }\n}\n"
}

func project(t *testing.T, n int) string {
	t.Helper()
	root := t.TempDir()
	for i := range n {
		p := filepath.Join(root, fmt.Sprintf("F%02d.java", i))
		// Every third file has nothing to rename and fails the script.
		require.NoError(t, os.WriteFile(p, []byte(source(i%3 != 0)), 0o644))
	}
	return root
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasChanges())
	assert.False(t, res.HasFailures())
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	root := project(t, 9)
	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: root, Config: config.NewConfig()})
	require.NoError(t, err)

	require.Len(t, res.Files, 9)
	assert.Equal(t, 9, res.Stats.FilesDiscovered)
	assert.Equal(t, 6, res.Stats.FilesProcessed)
	assert.Equal(t, 6, res.Stats.FilesChanged)
	assert.Equal(t, 3, res.Stats.FilesErrored)
	assert.Equal(t, 6, res.Stats.EditsTotal)
	assert.Zero(t, res.Stats.FilesWritten)
	assert.True(t, res.HasChanges())
	assert.True(t, res.HasFailures())

	for i, f := range res.Files {
		assert.Equal(t, fmt.Sprintf("F%02d.java", i), filepath.Base(f.Path), "outcomes are ordered by path")
		if i%3 == 0 {
			require.ErrorIs(t, f.Error, pipeline.ErrRewriteFailure)
		} else {
			require.NoError(t, f.Error)
		}
	}
}

func TestRunner_Run_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	root := project(t, 12)
	serial, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 1})
	require.NoError(t, err)
	parallel, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Stats, parallel.Stats)
	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		if serial.Files[i].Result != nil {
			assert.Equal(t, serial.Files[i].Result.Content, parallel.Files[i].Result.Content)
		}
	}
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	root := project(t, 2)
	cfg := config.NewConfig()
	cfg.Write = true
	cfg.NoBackups = true

	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.FilesWritten)

	got, err := os.ReadFile(filepath.Join(root, "F01.java"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "newName();")
	assert.NoFileExists(t, filepath.Join(root, "F01.java.jrewrite.bak"))
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	root := project(t, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t).Run(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}
