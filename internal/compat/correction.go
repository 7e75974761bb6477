package compat

import (
	"fmt"

	"github.com/phrazzld/entry-compat/internal/domain"
)

// Correction is one rule of a compatibility scheme.
type Correction interface {
	// Correction returns the energy adjustment for the entry. It must not
	// modify the entry. It returns an error matching ErrIncompatible when the
	// entry cannot be corrected under this rule.
	Correction(entry *domain.ComputedEntry) (float64, error)

	// String names the rule in correction breakdowns.
	fmt.Stringer
}

// CorrectEntry applies a single correction to the entry, adding its result to
// the accumulated correction.
func CorrectEntry(c Correction, entry *domain.ComputedEntry) (*domain.ComputedEntry, error) {
	value, err := c.Correction(entry)
	if err != nil {
		return nil, err
	}
	entry.Correction += value
	return entry, nil
}

func copyRates(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyNested(src map[string]map[string]float64) map[string]map[string]float64 {
	dst := make(map[string]map[string]float64, len(src))
	for k, v := range src {
		dst[k] = copyRates(v)
	}
	return dst
}
