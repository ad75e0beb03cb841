// Package errs implements the flat error taxonomy from spec.md §7: one
// error type carrying a Kind and a diagnostic string, matching in shape
// (though not in content) the teacher's package-level sentinel errors in
// hdf5/errors.go. It lives in its own internal package, rather than the
// root package, purely to avoid an import cycle: the root package needs to
// return these errors, and the internal packages that detect the failures
// (npyheader, planner, patchio) need to construct them.
package errs

import "fmt"

// Kind identifies one of the error categories in spec.md §7.
type Kind int

const (
	BadMagic Kind = iota
	UnsupportedVersion
	BadHeader
	MissingKey
	BadDtype
	FortranOrderUnsupported
	InvalidShape
	InvalidPadding
	PatchIndexOutOfRange
	QIndexOutOfRange
	IoError
)

func (k Kind) String() string {
	switch k {
	case BadMagic:
		return "BadMagic"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case BadHeader:
		return "BadHeader"
	case MissingKey:
		return "MissingKey"
	case BadDtype:
		return "BadDtype"
	case FortranOrderUnsupported:
		return "FortranOrderUnsupported"
	case InvalidShape:
		return "InvalidShape"
	case InvalidPadding:
		return "InvalidPadding"
	case PatchIndexOutOfRange:
		return "PatchIndexOutOfRange"
	case QIndexOutOfRange:
		return "QIndexOutOfRange"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error is the single error type used throughout npypatch. Two Errors
// compare equal under errors.Is iff they share a Kind, regardless of Msg,
// so callers can match on the kind of failure without string comparison.
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

// New builds an Error, formatting Msg like fmt.Sprintf.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error from an underlying error, preserving it so
// errors.Unwrap still reaches the original cause (e.g. an *os.PathError).
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Msg: err.Error(), cause: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("npypatch: %s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the cause passed to Wrap, if any, so errors.Is/As can see
// through an Error to the underlying failure.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes errors.Is(err, &Error{Kind: X}) match any Error of kind X,
// independent of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
