package core

import "errors"

// Common errors.
var (
	// ErrMalformedVersion marks version text that does not contain exactly
	// one well-formed "major.minor.patch" occurrence.
	ErrMalformedVersion = errors.New("malformed version string")

	// ErrRemoteUnavailable marks a failed fetch of a canonical reference
	// file. Fatal to the check that needed it, not to other checks.
	ErrRemoteUnavailable = errors.New("remote unavailable")
)
