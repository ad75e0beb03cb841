package npypatch

import "github.com/robert-malhotra/npypatch/internal/errs"

// Error is the flat error type returned by every operation on an Engine.
// Two Errors compare equal under errors.Is iff they share a Kind.
type Error = errs.Error

// ErrorKind classifies an Error; see the Err* sentinels below for use with
// errors.Is.
type ErrorKind = errs.Kind

// Sentinel errors for errors.Is matching. Each carries no message of its
// own; construct with errs.New/errs.Wrap for a real diagnostic and compare
// against these with errors.Is.
var (
	ErrBadMagic                = &Error{Kind: errs.BadMagic}
	ErrUnsupportedVersion      = &Error{Kind: errs.UnsupportedVersion}
	ErrBadHeader               = &Error{Kind: errs.BadHeader}
	ErrMissingKey              = &Error{Kind: errs.MissingKey}
	ErrBadDtype                = &Error{Kind: errs.BadDtype}
	ErrFortranOrderUnsupported = &Error{Kind: errs.FortranOrderUnsupported}
	ErrInvalidShape            = &Error{Kind: errs.InvalidShape}
	ErrInvalidPadding          = &Error{Kind: errs.InvalidPadding}
	ErrPatchIndexOutOfRange    = &Error{Kind: errs.PatchIndexOutOfRange}
	ErrQIndexOutOfRange        = &Error{Kind: errs.QIndexOutOfRange}
	ErrIoError                 = &Error{Kind: errs.IoError}
)
