package connurl

import "errors"

var (
	// ErrInvalidArgument is returned when the protocol or the host name is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEncodingFailure marks an encoder error. Form encoding accepts any string, so
	// Build itself never returns it.
	ErrEncodingFailure = errors.New("encoding failure")
)
