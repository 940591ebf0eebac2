package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// ErrModifiedExternally is returned by Save when the file changed on disk
// after it was read.
var ErrModifiedExternally = errors.New("file modified since it was read")

// SaveResult reports what Save did.
type SaveResult struct {
	// Written is false when the new content equals the file content.
	Written bool

	// BackupPath is set when a backup was created by this save.
	BackupPath string
}

// Save writes content over the file described by info. It refuses to
// overwrite a file that changed since info was taken, backs the original
// up according to backups, and writes atomically with the original mode.
func Save(ctx context.Context, info *FileInfo, content []byte, backups BackupConfig) (SaveResult, error) {
	var result SaveResult

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return result, fmt.Errorf("save: %w", err)
	}
	if modified {
		return result, fmt.Errorf("save %s: %w", info.Path, ErrModifiedExternally)
	}

	if info.Hash == hashOf(content) {
		return result, nil
	}

	created, err := CreateBackup(ctx, info.Path, backups)
	if err != nil {
		return result, fmt.Errorf("save %s: %w", info.Path, err)
	}
	if created {
		result.BackupPath = BackupPath(info.Path, backups.Mode)
	}

	written, err := WriteAtomicIfChanged(ctx, info.Path, content, info.Mode.Perm())
	if err != nil {
		return result, fmt.Errorf("save %s: %w", info.Path, err)
	}
	result.Written = written
	return result, nil
}
