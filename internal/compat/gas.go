package compat

import (
	"fmt"

	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/domain/oxide"
	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// Reduced formulas of well-known peroxides, superoxides and ozonides, used
// when an entry carries neither a classification nor a structure.
var (
	commonPeroxides   = setOf("Li2O2", "Na2O2", "K2O2", "Cs2O2", "Rb2O2", "BeO2", "MgO2", "CaO2", "SrO2", "BaO2")
	commonSuperoxides = setOf("LiO2", "NaO2", "KO2", "RbO2", "CsO2")
	commonOzonides    = setOf("LiO3", "NaO3", "KO3", "NaO5")
)

// GasCorrection replaces the energies of gaseous reference compounds and
// applies oxide, peroxide, superoxide and ozonide corrections.
type GasCorrection struct {
	name             string
	compoundEnergies map[string]float64
	oxideRates       map[string]float64
	correctPeroxide  bool
}

// NewGasCorrection builds the correction from a scheme's tables. With
// correctPeroxide false every oxygen is corrected at the plain oxide rate.
func NewGasCorrection(cfg *ruleset.CorrectionConfig, correctPeroxide bool) *GasCorrection {
	return &GasCorrection{
		name:             cfg.Name,
		compoundEnergies: copyRates(cfg.Advanced.CompoundEnergies),
		oxideRates:       copyRates(cfg.OxideCorrections),
		correctPeroxide:  correctPeroxide,
	}
}

// Correction returns the gas-phase or oxide adjustment for the entry.
func (c *GasCorrection) Correction(entry *domain.ComputedEntry) (float64, error) {
	comp := entry.Composition
	rform := comp.ReducedFormula()

	if ref, ok := c.compoundEnergies[rform]; ok {
		return ref*comp.NumAtoms() - entry.UncorrectedEnergy, nil
	}

	oxygen := comp.Amount("O")
	if !c.correctPeroxide {
		return c.oxideRates["oxide"] * oxygen, nil
	}
	if comp.Len() < 2 || !comp.Contains("O") {
		return 0, nil
	}

	correction := 0.0
	if oxType, ok := entry.OxideType(); ok {
		if rate, ok := c.oxideRates[oxType]; ok {
			correction += rate * oxygen
		}
		if oxType == string(oxide.TypeHydroxide) {
			correction += c.oxideRates["oxide"] * oxygen
		}
		return correction, nil
	}

	if entry.Structure != nil {
		oxType, nbonds := oxide.Classify(entry.Structure, oxide.DefaultRelativeCutoff)
		if rate, ok := c.oxideRates[string(oxType)]; ok {
			correction += rate * nbonds
		} else if oxType == oxide.TypeHydroxide {
			correction += c.oxideRates["oxide"] * oxygen
		}
		return correction, nil
	}

	switch {
	case contains(commonPeroxides, rform):
		correction += c.oxideRates["peroxide"] * oxygen
	case contains(commonSuperoxides, rform):
		correction += c.oxideRates["superoxide"] * oxygen
	case contains(commonOzonides, rform):
		correction += c.oxideRates["ozonide"] * oxygen
	default:
		correction += c.oxideRates["oxide"] * oxygen
	}
	return correction, nil
}

func (c *GasCorrection) String() string {
	return fmt.Sprintf("%s Gas Correction", c.name)
}

func setOf(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func contains(set map[string]struct{}, item string) bool {
	_, ok := set[item]
	return ok
}
