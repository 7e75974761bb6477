// Package domain defines the core records and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain record fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownElement is returned when a symbol is not in the periodic table.
	ErrUnknownElement = errors.New("unknown element")

	// ErrEmptyComposition is returned when a composition holds no atoms.
	ErrEmptyComposition = errors.New("composition cannot be empty")

	// ErrInvalidFormula is returned when a formula string cannot be parsed.
	ErrInvalidFormula = errors.New("invalid formula")

	// ErrInvalidAmount is returned when a composition amount is negative or not finite.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidEnergy is returned when an entry energy is NaN or infinite.
	ErrInvalidEnergy = errors.New("invalid energy")

	// ErrInvalidStructure is returned when a structure has no sites or a
	// degenerate lattice.
	ErrInvalidStructure = errors.New("invalid structure")
)
