package ruleset

import "errors"

var (
	// ErrConfigLoad is returned when a table file is missing, malformed or
	// lacks a required key. No partial value accompanies it.
	ErrConfigLoad = errors.New("failed to load correction tables")

	// ErrMissingKey is returned when a required key is absent from a table.
	ErrMissingKey = errors.New("missing required key")
)
