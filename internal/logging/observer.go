package logging

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/editerr"
)

// CommandObserver returns a command.Observer that logs every history step.
// Starts are logged at debug level. Failures caused by the command's own
// preconditions are logged at warn level, anything else at error level.
func CommandObserver(logger *log.Logger) command.Observer {
	if logger == nil {
		logger = Default()
	}
	return func(ev command.Event) {
		if ev.Phase == command.PhaseBefore {
			logger.Debug("command starting",
				FieldAction, ev.Action.String(),
				FieldCommand, ev.Command,
				FieldVersion, ev.Before.Metadata.Version,
			)
			return
		}

		if ev.Err != nil {
			level := log.ErrorLevel
			if isUserError(ev.Err) {
				level = log.WarnLevel
			}
			logger.Log(level, "command failed",
				FieldAction, ev.Action.String(),
				FieldCommand, ev.Command,
				FieldError, ev.Err,
			)
			return
		}

		logger.Debug("command finished",
			FieldAction, ev.Action.String(),
			FieldCommand, ev.Command,
			FieldVersion, ev.After.Metadata.Version,
			FieldCursor, ev.After.Cursor().String(),
			FieldBlock, ev.After.CurrentBlockType.String(),
			FieldChanged, ev.After.Content != ev.Before.Content,
			FieldDuration, ev.Duration,
		)
	}
}

// isUserError reports whether err is a domain rejection rather than a fault.
func isUserError(err error) bool {
	var editErr *editerr.Error
	if !errors.As(err, &editErr) {
		return false
	}
	return !errors.Is(err, editerr.ErrEditorStateCorrupted)
}
