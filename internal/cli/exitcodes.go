package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomdedit/internal/configloader"
	"github.com/yaklabco/gomdedit/internal/script"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
)

// Exit codes for mdedit.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitIssuesFound indicates a check failed: fmt --check found unformatted
	// content, or validate found errors (or warnings with --strict).
	ExitIssuesFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates an edit or script that cannot be applied.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrIssuesFound signals ExitIssuesFound. It is not logged.
	ErrIssuesFound = errors.New("issues found")

	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that cannot be loaded.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var (
		validationErr *configloader.ValidationError
		editErr       *editerr.Error
		pathErr       *fs.PathError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssuesFound
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.As(err, &editErr), errors.Is(err, script.ErrInvalidScript):
		return ExitDataError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModifiedExternally),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
