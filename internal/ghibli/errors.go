package ghibli

import "errors"

var (
	// ErrUpstreamUnavailable indicates the API could not be reached or returned
	// something that could not be decoded.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrResolution indicates a single film reference could not be dereferenced.
	// Errors carrying it also match ErrUpstreamUnavailable.
	ErrResolution = errors.New("film reference resolution failed")
)
