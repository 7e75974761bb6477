package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// DefaultRunType is assumed when an entry does not declare one.
const DefaultRunType = "GGA"

// OxideTypeKey is the auxiliary data key holding a precomputed oxide
// classification.
const OxideTypeKey = "oxide_type"

// Parameters records the calculation settings an entry was produced with.
type Parameters struct {
	// PotcarSymbols lists the pseudopotentials used, e.g. "PAW_PBE Fe_pv 06Sep2000".
	// A nil slice means the run did not record them.
	PotcarSymbols []string `json:"potcar_symbols,omitempty"`

	// Hubbards holds the non-zero U values used. Nil means a plain GGA run.
	Hubbards map[string]float64 `json:"hubbards,omitempty"`

	RunType string `json:"run_type,omitempty"`
}

// HubbardU returns the U value used for an element, 0 when none was applied.
func (p Parameters) HubbardU(symbol string) float64 {
	return p.Hubbards[symbol]
}

// EffectiveRunType returns the declared run type or DefaultRunType.
func (p Parameters) EffectiveRunType() string {
	if p.RunType == "" {
		return DefaultRunType
	}
	return p.RunType
}

// ComputedEntry is one calculation result: a composition, its raw energy and
// the metadata describing how it was computed. Correction is the only field
// the correction pipeline writes.
type ComputedEntry struct {
	EntryID           uuid.UUID      `json:"entry_id"`
	Composition       Composition    `json:"composition" validate:"required"`
	UncorrectedEnergy float64        `json:"energy"`
	Correction        float64        `json:"correction"`
	Parameters        Parameters     `json:"parameters"`
	Data              map[string]any `json:"data,omitempty"`
	Structure         *Structure     `json:"structure,omitempty"`
}

// NewComputedEntry creates an entry with a fresh ID and no correction.
// Returns an error if validation fails.
func NewComputedEntry(comp Composition, energy float64, params Parameters) (*ComputedEntry, error) {
	entry := &ComputedEntry{
		EntryID:           uuid.New(),
		Composition:       comp,
		UncorrectedEnergy: energy,
		Parameters:        params,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the entry has a usable composition, finite energies and,
// when present, a usable structure.
func (e *ComputedEntry) Validate() error {
	if err := e.Composition.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if math.IsNaN(e.UncorrectedEnergy) || math.IsInf(e.UncorrectedEnergy, 0) ||
		math.IsNaN(e.Correction) || math.IsInf(e.Correction, 0) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidEnergy)
	}
	if e.Structure != nil {
		if err := e.Structure.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// Energy returns the corrected energy.
func (e *ComputedEntry) Energy() float64 {
	return e.UncorrectedEnergy + e.Correction
}

// EnergyPerAtom returns the corrected energy divided by the atom count.
func (e *ComputedEntry) EnergyPerAtom() float64 {
	return e.Energy() / e.Composition.NumAtoms()
}

// OxideType returns the precomputed oxide classification from the auxiliary
// data, if one is recorded.
func (e *ComputedEntry) OxideType() (string, bool) {
	raw, ok := e.Data[OxideTypeKey]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Sprint(raw), true
	}
	return s, true
}
