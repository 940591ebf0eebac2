package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode given to documents that did not exist before.
const DefaultFileMode os.FileMode = 0644

// tempPattern names the staging file beside the document. It is hidden so
// editors and globs watching the directory skip it.
const tempPattern = ".%s.mdedit-*"

// WriteAtomic replaces path with content. The bytes are staged in a hidden
// file next to the document, synced, then renamed over it, so readers see
// either the old document or the new one.
//
// A zero mode keeps the mode of the document already at path, falling back
// to DefaultFileMode for a new one. The staging file is removed on failure.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if mode == 0 {
		mode = currentMode(path)
	}

	staged, err := stage(path, content, mode)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("write %s: replace: %w", path, err)
	}
	return nil
}

// WriteAtomicIfChanged calls WriteAtomic unless path already holds content.
// It reports whether the document was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, fmt.Errorf("read %s: %w", path, err)
	case hashOf(existing) == hashOf(content):
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// stage writes content to a new hidden file in path's directory and
// returns its name.
func stage(path string, content []byte, mode os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), fmt.Sprintf(tempPattern, filepath.Base(path)))
	if err != nil {
		return "", fmt.Errorf("stage: %w", err)
	}
	name := tmp.Name()

	err = func() error {
		defer tmp.Close()
		if _, err := tmp.Write(content); err != nil {
			return err
		}
		if err := tmp.Sync(); err != nil {
			return err
		}
		return tmp.Chmod(mode)
	}()
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("stage: %w", err)
	}
	return name, nil
}

func currentMode(path string) os.FileMode {
	stat, err := os.Stat(path)
	if err != nil || !stat.Mode().IsRegular() {
		return DefaultFileMode
	}
	return stat.Mode().Perm()
}
