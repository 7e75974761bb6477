package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/entry-compat/internal/domain"
)

// Global validator instance for reuse
var validate = validator.New()

// DecodeEntries reads a JSON array of computed entries. Every entry is
// validated; entries without an id are assigned a new one.
func DecodeEntries(r io.Reader) ([]*domain.ComputedEntry, error) {
	var entries []*domain.ComputedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	for i, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrDecode, i)
		}
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w: %w", ErrDecode, i, domain.ErrValidation, err)
		}
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrDecode, i, err)
		}
		if entry.EntryID == uuid.Nil {
			entry.EntryID = uuid.New()
		}
	}
	return entries, nil
}

// entryView is the encoded form of an accepted entry.
type entryView struct {
	EntryID           uuid.UUID          `json:"entry_id"`
	Formula           string             `json:"formula"`
	Composition       string             `json:"composition"`
	UncorrectedEnergy float64            `json:"uncorrected_energy"`
	Correction        float64            `json:"correction"`
	Energy            float64            `json:"energy"`
	EnergyPerAtom     float64            `json:"energy_per_atom"`
	Breakdown         map[string]float64 `json:"breakdown,omitempty"`
}

type resultView struct {
	Accepted []entryView `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
}

// EncodeResult writes the batch result as indented JSON, including the
// corrected energy of every accepted entry.
func EncodeResult(w io.Writer, result *BatchResult) error {
	view := resultView{
		Accepted: make([]entryView, 0, len(result.Accepted)),
		Rejected: append([]Rejection{}, result.Rejected...),
	}
	for i, entry := range result.Accepted {
		var breakdown map[string]float64
		if i < len(result.Breakdowns) {
			breakdown = result.Breakdowns[i]
		}
		view.Accepted = append(view.Accepted, entryView{
			EntryID:           entry.EntryID,
			Formula:           entry.Composition.ReducedFormula(),
			Composition:       entry.Composition.Formula(),
			UncorrectedEnergy: entry.UncorrectedEnergy,
			Correction:        entry.Correction,
			Energy:            entry.Energy(),
			EnergyPerAtom:     entry.EnergyPerAtom(),
			Breakdown:         breakdown,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
