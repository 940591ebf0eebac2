// Package editerr defines the typed errors returned by the markdown domain layer.
//
// Every service and command entry point reports failure through an *Error
// carrying one of a fixed set of kinds. Callers match on kind with errors.Is
// against the package sentinels, which works through fmt.Errorf wrapping.
package editerr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind uint8

// Error kinds.
const (
	KindInvalidPosition Kind = iota + 1
	KindInvalidRange
	KindMultiBlockNotSupported
	KindUnsupportedOperation
	KindIncompatibleFormatting
	KindSerializationFailed
	KindEditorStateCorrupted
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidPosition:
		return "invalid position"
	case KindInvalidRange:
		return "invalid range"
	case KindMultiBlockNotSupported:
		return "multi-block not supported"
	case KindUnsupportedOperation:
		return "unsupported operation"
	case KindIncompatibleFormatting:
		return "incompatible formatting"
	case KindSerializationFailed:
		return "serialization failed"
	case KindEditorStateCorrupted:
		return "editor state corrupted"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching. They compare by kind only.
//
//nolint:gochecknoglobals // Sentinel errors are idiomatic package-level values.
var (
	ErrInvalidPosition        = &Error{Kind: KindInvalidPosition}
	ErrInvalidRange           = &Error{Kind: KindInvalidRange}
	ErrMultiBlockNotSupported = &Error{Kind: KindMultiBlockNotSupported}
	ErrUnsupportedOperation   = &Error{Kind: KindUnsupportedOperation}
	ErrIncompatibleFormatting = &Error{Kind: KindIncompatibleFormatting}
	ErrSerializationFailed    = &Error{Kind: KindSerializationFailed}
	ErrEditorStateCorrupted   = &Error{Kind: KindEditorStateCorrupted}
)

// Error is a domain error with a kind and an optional human-readable reason.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Reason
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// InvalidPosition reports a position outside the parsed document.
func InvalidPosition(format string, args ...any) *Error {
	return New(KindInvalidPosition, format, args...)
}

// InvalidRange reports a malformed or out-of-bounds range.
func InvalidRange(format string, args ...any) *Error {
	return New(KindInvalidRange, format, args...)
}

// MultiBlockNotSupported reports a range spanning blocks where one block is required.
func MultiBlockNotSupported(format string, args ...any) *Error {
	return New(KindMultiBlockNotSupported, format, args...)
}

// Unsupported reports an operation the domain layer deliberately refuses.
func Unsupported(format string, args ...any) *Error {
	return New(KindUnsupportedOperation, format, args...)
}

// Incompatible reports a formatting combination rejected by the rules table.
func Incompatible(format string, args ...any) *Error {
	return New(KindIncompatibleFormatting, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
