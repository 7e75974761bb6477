package compat

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/entry-compat/internal/domain"
)

// Compatibility applies an ordered list of corrections to entries.
//
// Some corrections depend on each other: PotcarCorrection should come first
// so entries from a different input set are rejected before anything else,
// and AqueousCorrection must come after the rules whose corrections it
// compensates for. Corrections built from one family's tables must not be
// mixed with another family's input set; the scheme package binds them.
type Compatibility struct {
	corrections []Correction
	logger      *slog.Logger
}

// New creates a Compatibility that applies the corrections in order.
func New(corrections ...Correction) *Compatibility {
	return &Compatibility{
		corrections: append([]Correction(nil), corrections...),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger returns a copy of the Compatibility that logs to logger.
func (c *Compatibility) WithLogger(logger *slog.Logger) *Compatibility {
	clone := *c
	if logger != nil {
		clone.logger = logger
	}
	return &clone
}

// Corrections returns the corrections in application order.
func (c *Compatibility) Corrections() []Correction {
	return append([]Correction(nil), c.corrections...)
}

// CorrectionsBreakdown returns the non-zero correction of each rule, keyed by
// the rule's name. Rules run in order on a scratch copy of the entry whose
// correction starts at zero and accumulates each rule's result, so a rule
// sees exactly the corrections applied before it in this chain. The entry
// itself is never modified.
//
// Incompatibility and malformed-input errors are returned unchanged.
func (c *Compatibility) CorrectionsBreakdown(entry *domain.ComputedEntry) (map[string]float64, error) {
	breakdown, _, err := c.evaluate(entry)
	return breakdown, err
}

// ProcessEntry applies every correction to the entry. It reports false and
// leaves the entry untouched when any rule finds it incompatible. Otherwise
// the entry's correction is set to the sum of all rule results.
//
// An error is returned only for entries that are invalid or lack required
// metadata.
func (c *Compatibility) ProcessEntry(entry *domain.ComputedEntry) (bool, error) {
	if entry == nil {
		return false, fmt.Errorf("%w: nil entry", domain.ErrValidation)
	}
	if err := entry.Validate(); err != nil {
		return false, err
	}

	_, total, err := c.evaluate(entry)
	if errors.Is(err, ErrIncompatible) {
		c.logger.Debug("entry rejected",
			"entry_id", entry.EntryID,
			"formula", entry.Composition.ReducedFormula(),
			"reason", err.Error())
		return false, nil
	}
	if err != nil {
		return false, err
	}

	entry.Correction = total
	return true, nil
}

// ProcessEntries processes each entry in order and returns the compatible
// ones. Incompatible entries are dropped silently; an invalid entry aborts
// the batch with its error.
func (c *Compatibility) ProcessEntries(entries []*domain.ComputedEntry) ([]*domain.ComputedEntry, error) {
	processed := make([]*domain.ComputedEntry, 0, len(entries))
	for _, entry := range entries {
		ok, err := c.ProcessEntry(entry)
		if err != nil {
			return nil, err
		}
		if ok {
			processed = append(processed, entry)
		}
	}

	c.logger.Debug("entries processed",
		"input", len(entries),
		"compatible", len(processed))
	return processed, nil
}

// evaluate runs the chain and returns the named non-zero results together
// with the sum of every result.
func (c *Compatibility) evaluate(entry *domain.ComputedEntry) (map[string]float64, float64, error) {
	if entry == nil {
		return nil, 0, fmt.Errorf("%w: nil entry", domain.ErrValidation)
	}
	scratch := *entry
	scratch.Correction = 0

	breakdown := make(map[string]float64, len(c.corrections))
	for _, correction := range c.corrections {
		value, err := correction.Correction(&scratch)
		if err != nil {
			return nil, 0, err
		}
		scratch.Correction += value
		if value != 0 {
			breakdown[correction.String()] += value
		}
	}
	// Rules sharing a name may cancel out.
	for name, value := range breakdown {
		if value == 0 {
			delete(breakdown, name)
		}
	}
	return breakdown, scratch.Correction, nil
}
