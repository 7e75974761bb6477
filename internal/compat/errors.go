package compat

import (
	"errors"
	"fmt"
)

// Error taxonomy for the correction pipeline. Callers distinguish the cases
// with errors.Is:
//  1. ErrIncompatible: the entry was computed under settings the scheme cannot
//     correct. Batch processing drops such entries.
//  2. ErrMissingMetadata / ErrMalformedMetadata: the entry lacks data a rule
//     needs. This is caller misuse and always propagates.
//  3. ErrInvalidCompatType / ErrMissingTable: a correction could not be
//     constructed from the supplied tables.
var (
	// ErrIncompatible matches every IncompatibilityError.
	ErrIncompatible = errors.New("incompatible entry")

	// ErrMissingMetadata is returned when an entry lacks metadata a rule requires.
	ErrMissingMetadata = errors.New("missing entry metadata")

	// ErrMalformedMetadata is returned when entry metadata cannot be interpreted.
	ErrMalformedMetadata = errors.New("malformed entry metadata")

	// ErrInvalidCompatType is returned for a compat type other than GGA or Advanced.
	ErrInvalidCompatType = errors.New("invalid compat type")

	// ErrMissingTable is returned when a correction needs a table the
	// configuration does not provide.
	ErrMissingTable = errors.New("missing correction table")
)

// IncompatibilityError reports why an entry cannot be corrected by a rule.
type IncompatibilityError struct {
	Correction string
	Reason     string
}

func (e *IncompatibilityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Correction, e.Reason)
}

// Is makes errors.Is(err, ErrIncompatible) hold for every IncompatibilityError.
func (e *IncompatibilityError) Is(target error) bool {
	return target == ErrIncompatible
}

func incompatible(c fmt.Stringer, format string, args ...any) error {
	return &IncompatibilityError{Correction: c.String(), Reason: fmt.Sprintf(format, args...)}
}
