package compat

import (
	"testing"

	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// testConfig returns in-memory tables so the rules can be tested without
// touching the embedded files.
func testConfig() *ruleset.CorrectionConfig {
	return &ruleset.CorrectionConfig{
		Name: "Test",
		OxideCorrections: map[string]float64{
			"oxide":      -0.7,
			"peroxide":   -0.4,
			"superoxide": -0.1,
			"ozonide":    0,
		},
		Advanced: ruleset.AdvancedTables{
			UCorrections: map[string]map[string]float64{
				"O": {"Fe": -2.7, "Mn": -1.7},
				"F": {"Fe": -2.7},
			},
			CompoundEnergies: map[string]float64{
				"O2": -4.9,
			},
		},
		AqueousCompoundEnergies: map[string]float64{
			"H2O": -5.0,
			"H2":  -3.4,
			"O2":  -4.9,
		},
	}
}

func testInputSet() *ruleset.InputSet {
	return &ruleset.InputSet{
		Name: "TestSet",
		PotcarSettings: map[string]string{
			"Fe": "Fe_pv",
			"Mn": "Mn_pv",
			"O":  "O",
			"Li": "Li_sv",
			"H":  "H",
			"Na": "Na_pv",
			"Cl": "Cl",
			"S":  "S",
			"K":  "K_sv",
		},
		LDAUU: map[string]map[string]float64{
			"O": {"Fe": 5.3, "Mn": 3.9},
			"F": {"Fe": 5.3},
		},
	}
}

// potcarsFor returns well-formed POTCAR symbols for the composition using the
// test input set.
func potcarsFor(comp domain.Composition) []string {
	settings := testInputSet().PotcarSettings
	symbols := make([]string, 0, len(comp))
	for _, sym := range comp.Elements() {
		symbols = append(symbols, "PAW_PBE "+settings[sym]+" 06Sep2000")
	}
	return symbols
}

// newEntry builds a valid entry for formula with the test POTCARs and the
// given Hubbard U values.
func newEntry(t *testing.T, formula string, energy float64, hubbards map[string]float64) *domain.ComputedEntry {
	t.Helper()
	comp := domain.MustParseFormula(formula)
	entry, err := domain.NewComputedEntry(comp, energy, domain.Parameters{
		PotcarSymbols: potcarsFor(comp),
		Hubbards:      hubbards,
	})
	if err != nil {
		t.Fatalf("failed to build entry %s: %v", formula, err)
	}
	return entry
}

func testCompatibility(t *testing.T, aqueous bool) *Compatibility {
	t.Helper()
	u, err := NewUCorrection(testConfig(), testInputSet(), CompatTypeAdvanced)
	if err != nil {
		t.Fatalf("failed to build U correction: %v", err)
	}
	corrections := []Correction{
		NewPotcarCorrection(testInputSet()),
		NewGasCorrection(testConfig(), true),
		u,
	}
	if aqueous {
		aq, err := NewAqueousCorrection(testConfig())
		if err != nil {
			t.Fatalf("failed to build aqueous correction: %v", err)
		}
		corrections = append(corrections, aq)
	}
	return New(corrections...)
}
