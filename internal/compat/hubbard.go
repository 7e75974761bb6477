package compat

import (
	"fmt"

	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// CompatType selects how a UCorrection treats GGA+U runs.
type CompatType string

const (
	// CompatTypeGGA excludes every GGA+U entry and applies no U corrections.
	// No U values are expected in this mode, so the U check still runs: an
	// entry run with any non-zero U is incompatible, while plain GGA entries
	// never fail it.
	CompatTypeGGA CompatType = "GGA"

	// CompatTypeAdvanced mixes GGA and GGA+U entries. Entries that should
	// have been run with U under the input set but were not are excluded.
	CompatTypeAdvanced CompatType = "Advanced"
)

// ParseCompatType validates a compat type name.
func ParseCompatType(s string) (CompatType, error) {
	switch CompatType(s) {
	case CompatTypeGGA, CompatTypeAdvanced:
		return CompatType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCompatType, s)
	}
}

// disallowedRunTypes cannot be mixed with GGA(+U) energies at all.
var disallowedRunTypes = setOf("HF")

// UCorrection implements the GGA/GGA+U mixing scheme. The U settings and
// rates are keyed by the most electronegative element of the entry.
type UCorrection struct {
	name       string
	compatType CompatType
	uSettings  map[string]map[string]float64
	uRates     map[string]map[string]float64
}

// NewUCorrection builds the mixing correction. Under CompatTypeGGA no U is
// expected and no rates apply.
func NewUCorrection(cfg *ruleset.CorrectionConfig, inputSet *ruleset.InputSet, compatType CompatType) (*UCorrection, error) {
	if _, err := ParseCompatType(string(compatType)); err != nil {
		return nil, err
	}
	c := &UCorrection{
		name:       cfg.Name,
		compatType: compatType,
		uSettings:  map[string]map[string]float64{},
		uRates:     map[string]map[string]float64{},
	}
	if compatType == CompatTypeAdvanced {
		c.uSettings = copyNested(inputSet.LDAUU)
		c.uRates = copyNested(cfg.Advanced.UCorrections)
	}
	return c, nil
}

// Correction validates the U values the entry was run with and returns the
// summed per-element U corrections.
func (c *UCorrection) Correction(entry *domain.ComputedEntry) (float64, error) {
	runType := entry.Parameters.EffectiveRunType()
	if contains(disallowedRunTypes, runType) {
		return 0, incompatible(c, "invalid run type %s", runType)
	}

	comp := entry.Composition
	elements := comp.Elements()
	if len(elements) == 0 {
		return 0, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyComposition)
	}
	mostElectroneg := elements[len(elements)-1]
	rates := c.uRates[mostElectroneg]
	settings := c.uSettings[mostElectroneg]

	correction := 0.0
	for _, sym := range elements {
		used, expected := entry.Parameters.HubbardU(sym), settings[sym]
		if used != expected {
			return 0, incompatible(c, "invalid U value of %v on %s, expected %v", used, sym, expected)
		}
		if rate, ok := rates[sym]; ok {
			correction += rate * comp.Amount(sym)
		}
	}
	return correction, nil
}

func (c *UCorrection) String() string {
	return fmt.Sprintf("%s %s Correction", c.name, c.compatType)
}
