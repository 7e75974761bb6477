package compat

import (
	"fmt"
	"math"

	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// hydrationEnergy is the per-H2O hydration term in eV, applied at half
// weight for each formula unit of water the composition could form.
const hydrationEnergy = 2.46

// AqueousCorrection aligns elemental and water energies with their aqueous
// references.
type AqueousCorrection struct {
	name             string
	compoundEnergies map[string]float64
}

// NewAqueousCorrection builds the correction. The configuration must carry
// an aqueous compound table.
func NewAqueousCorrection(cfg *ruleset.CorrectionConfig) (*AqueousCorrection, error) {
	if cfg.AqueousCompoundEnergies == nil {
		return nil, fmt.Errorf("%w: %s has no AqueousCompoundEnergies", ErrMissingTable, cfg.Name)
	}
	return &AqueousCorrection{
		name:             cfg.Name,
		compoundEnergies: copyRates(cfg.AqueousCompoundEnergies),
	}, nil
}

// Correction returns the aqueous adjustment. For H2 and H2O the result sets
// the corrected energy to the reference, net of the correction the entry
// already carries, so it must run after the rules it compensates for.
func (c *AqueousCorrection) Correction(entry *domain.ComputedEntry) (float64, error) {
	comp := entry.Composition
	rform := comp.ReducedFormula()

	correction := 0.0
	if ref, ok := c.compoundEnergies[rform]; ok {
		if rform == "H2" || rform == "H2O" {
			correction = ref*comp.NumAtoms() - entry.UncorrectedEnergy - entry.Correction
		} else {
			correction += ref * comp.NumAtoms()
		}
	}
	if rform != "H2O" {
		correction += 0.5 * hydrationEnergy * math.Min(comp.Amount("H")/2, comp.Amount("O"))
	}
	return correction, nil
}

func (c *AqueousCorrection) String() string {
	return fmt.Sprintf("%s Aqueous Correction", c.name)
}
