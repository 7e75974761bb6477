package compat

import (
	"fmt"
	"strings"

	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// PotcarCorrection checks that an entry was computed with pseudopotentials
// from the bound input set. It never adjusts the energy.
type PotcarCorrection struct {
	inputSetName string
	valid        map[string]struct{}
}

// NewPotcarCorrection builds the check from an input set.
func NewPotcarCorrection(inputSet *ruleset.InputSet) *PotcarCorrection {
	valid := make(map[string]struct{}, len(inputSet.PotcarSettings))
	for _, label := range inputSet.ValidPotcars() {
		valid[label] = struct{}{}
	}
	return &PotcarCorrection{inputSetName: inputSet.Name, valid: valid}
}

// Correction returns 0 when every POTCAR label of the entry belongs to the
// input set. Symbols look like "PAW_PBE Fe_pv 06Sep2000"; the label is the
// second field.
func (c *PotcarCorrection) Correction(entry *domain.ComputedEntry) (float64, error) {
	symbols := entry.Parameters.PotcarSymbols
	if symbols == nil {
		return 0, fmt.Errorf("%w: %s can only be checked for entries with potcar_symbols in parameters",
			ErrMissingMetadata, c)
	}
	for _, sym := range symbols {
		fields := strings.Fields(sym)
		if len(fields) < 2 {
			return 0, fmt.Errorf("%w: potcar symbol %q has no label", ErrMalformedMetadata, sym)
		}
		if _, ok := c.valid[fields[1]]; !ok {
			return 0, incompatible(c, "incompatible potcar %s", fields[1])
		}
	}
	return 0, nil
}

func (c *PotcarCorrection) String() string {
	return fmt.Sprintf("%s Potcar Correction", c.inputSetName)
}
