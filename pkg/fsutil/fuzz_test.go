package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/jrewrite/pkg/fsutil"
)

// FuzzCommit checks that any content survives a read, commit and re-read
// without being reported as a concurrent change.
func FuzzCommit(f *testing.F) {
	f.Add([]byte(""), []byte(unit))
	f.Add([]byte(unit), []byte("class B {}\r\n"))
	f.Add([]byte("\x00\x01\x02"), make([]byte, 1024))

	f.Fuzz(func(t *testing.T, original, rewritten []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "A.java")
		if err := os.WriteFile(path, original, 0o644); err != nil {
			t.Fatal(err)
		}

		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		res, err := fsutil.Commit(ctx, info, rewritten, fsutil.DefaultBackupConfig())
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		if res.Conflict || !res.Written {
			t.Fatalf("unexpected result %+v", res)
		}

		got, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("re-read: %v", err)
		}
		if !bytes.Equal(got, rewritten) {
			t.Fatalf("content mismatch: got %q, want %q", got, rewritten)
		}
	})
}
