package fsutil

import (
	"context"
	"fmt"
)

// CommitResult reports what Commit did.
type CommitResult struct {
	// Conflict is true when the file changed after it was read; nothing
	// was written.
	Conflict bool

	BackupCreated bool
	Written       bool
}

// Commit replaces the file described by info with content. It refuses to
// write when the file changed since it was read, backs up the original
// when enabled and then writes atomically, keeping the original mode.
func Commit(ctx context.Context, info *FileInfo, content []byte, backup BackupConfig) (CommitResult, error) {
	var res CommitResult

	modified, err := CheckModified(ctx, info, true)
	if err != nil {
		return res, err
	}
	if modified {
		res.Conflict = true
		return res, nil
	}

	res.BackupCreated, err = CreateBackup(ctx, info.Path, backup)
	if err != nil {
		return res, err
	}
	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return res, fmt.Errorf("write %s: %w", info.Path, err)
	}
	res.Written = true
	return res, nil
}
