package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrMissingSection = errors.New("missing record section")
	ErrUnknownPathway = errors.New("unknown pathway")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
