package domain

import "errors"

var (
	// ErrInvalidArgument is returned before any I/O for malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is what stores return for a missing record.
	ErrNotFound = errors.New("not found")

	// ErrSubjectNotFound means the player a request is about does not exist.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrUpstreamUnavailable covers store I/O failures; callers may retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
