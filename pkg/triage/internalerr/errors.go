package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrBadSourceData = errors.New("unusable source data")
)
