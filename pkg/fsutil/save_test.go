package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomdedit/pkg/fsutil"
)

func TestSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backups := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes with backup and keeps mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "* a\n")
		if err := os.Chmod(path, 0o600); err != nil {
			t.Fatalf("chmod: %v", err)
		}
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		result, err := fsutil.Save(ctx, info, []byte("- a\n"), backups)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if !result.Written || result.BackupPath != path+fsutil.BackupSuffix {
			t.Errorf("Save() = %+v", result)
		}
		if got := readBack(t, path); got != "- a\n" {
			t.Errorf("content = %q", got)
		}
		if got := readBack(t, result.BackupPath); got != "* a\n" {
			t.Errorf("backup = %q", got)
		}
		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != 0o600 {
			t.Errorf("mode = %o, want 600", stat.Mode().Perm())
		}
	})

	t.Run("unchanged content is not written", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "- a\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		result, err := fsutil.Save(ctx, info, []byte("- a\n"), backups)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if result.Written || result.BackupPath != "" {
			t.Errorf("Save() = %+v, want no write and no backup", result)
		}
	})

	t.Run("refuses external modification", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "- a\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		writeFile(t, path, "- a\n- someone else\n")

		_, err = fsutil.Save(ctx, info, []byte("- b\n"), backups)
		if !errors.Is(err, fsutil.ErrModifiedExternally) {
			t.Fatalf("Save() error = %v, want ErrModifiedExternally", err)
		}
		if got := readBack(t, path); got != "- a\n- someone else\n" {
			t.Errorf("content was overwritten: %q", got)
		}
	})
}
