package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/fsutil"
)

const unit = "class A {\n    void m() {}\n}\n"

func javaFile(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "A.java")
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := javaFile(t, unit, 0o640)
	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, unit, string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(len(unit)), info.Size)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o640), info.Mode.Perm())
	}
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "Missing.java"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(ctx, t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(cancelled, javaFile(t, unit, 0o644))
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	got, err := fsutil.ReadAll(context.Background(), strings.NewReader(unit))
	require.NoError(t, err)
	assert.Equal(t, unit, string(got))
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name   string
		change func(t *testing.T, path string)
		strict bool
		want   bool
	}{
		{name: "unchanged", change: func(*testing.T, string) {}, strict: true, want: false},
		{name: "unchanged quick", change: func(*testing.T, string) {}, want: false},
		{
			name: "rewritten",
			change: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte(unit+"// more\n"), 0o644))
			},
			strict: true,
			want:   true,
		},
		{
			name: "deleted",
			change: func(t *testing.T, path string) {
				require.NoError(t, os.Remove(path))
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := javaFile(t, unit, 0o644)
			_, info, err := fsutil.ReadFile(ctx, path)
			require.NoError(t, err)

			tt.change(t, path)
			got, err := fsutil.CheckModified(ctx, info, tt.strict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := fsutil.CheckModified(ctx, nil, true)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := javaFile(t, unit, 0o600)

	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("class B {}\n"), 0o600))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class B {}\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")

	err = fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "missing", "A.java"), nil, 0)
	require.Error(t, err)
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/A.java.jrewrite.bak", fsutil.BackupPath("src/A.java", fsutil.BackupModeSidecar))
	assert.Equal(t, "src/A.java.jrewrite.bak", fsutil.BackupPath("src/A.java", "unknown"))
	assert.Empty(t, fsutil.BackupPath("src/A.java", fsutil.BackupModeNone))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := javaFile(t, unit, 0o644)
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	// A second backup keeps the first original.
	require.NoError(t, os.WriteFile(path, []byte("class B {}\n"), 0o644))
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.True(t, restored)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unit, string(got))

	created, err = fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
	require.NoError(t, err)
	assert.False(t, created, "disabled by default")
}

func TestCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backup := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes", func(t *testing.T) {
		t.Parallel()

		path := javaFile(t, unit, 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		res, err := fsutil.Commit(ctx, info, []byte("class B {}\n"), backup)
		require.NoError(t, err)
		assert.True(t, res.Written)
		assert.True(t, res.BackupCreated)
		assert.False(t, res.Conflict)
		assert.FileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		path := javaFile(t, unit, 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("class Edited {}\n"), 0o644))

		res, err := fsutil.Commit(ctx, info, []byte("class B {}\n"), backup)
		require.NoError(t, err)
		assert.True(t, res.Conflict)
		assert.False(t, res.Written)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "class Edited {}\n", string(got))
	})
}
