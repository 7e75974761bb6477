package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestReducedFormula(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		comp     Composition
		expected string
		factor   float64
	}{
		{"Simple oxide", Composition{"Fe": 2, "O": 3}, "Fe2O3", 1},
		{"Multiple of formula unit", Composition{"Fe": 4, "O": 6}, "Fe2O3", 2},
		{"Water", Composition{"H": 2, "O": 1}, "H2O", 1},
		{"Hydrogen gas", Composition{"H": 2}, "H2", 1},
		{"Oxygen gas", Composition{"O": 4}, "O2", 2},
		{"Lithium peroxide", Composition{"Li": 4, "O": 4}, "Li2O2", 2},
		{"Potassium superoxide", Composition{"K": 1, "O": 2}, "KO2", 1},
		{"Polyanion", Composition{"Li": 1, "Fe": 1, "P": 1, "O": 4}, "LiFePO4", 1},
		{"Polyanion with multiplier", Composition{"Fe": 3, "P": 2, "O": 8}, "Fe3(PO4)2", 1},
		{"Fractional amounts are not reduced", Composition{"Li": 0.5, "O": 1}, "Li0.5O", 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			formula, factor := tc.comp.ReducedFormulaAndFactor()
			if formula != tc.expected {
				t.Errorf("Expected reduced formula %s, got %s", tc.expected, formula)
			}
			if factor != tc.factor {
				t.Errorf("Expected factor %v, got %v", tc.factor, factor)
			}
		})
	}
}

func TestParseFormula(t *testing.T) {
	t.Parallel() // Enable parallel execution

	comp, err := ParseFormula("Ca3(PO4)2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if comp.Amount("Ca") != 3 || comp.Amount("P") != 2 || comp.Amount("O") != 8 {
		t.Errorf("Unexpected composition %v", comp)
	}

	comp, err = ParseFormula("Li0.5CoO2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if comp.Amount("Li") != 0.5 {
		t.Errorf("Expected 0.5 Li, got %v", comp.Amount("Li"))
	}

	invalid := []string{"", "Xx2", "Fe2(O3", "Fe2O3)", "fe2o3", "Fe2..3"}
	for _, formula := range invalid {
		if _, err := ParseFormula(formula); err == nil {
			t.Errorf("Expected error for %q", formula)
		}
	}

	if _, err := ParseFormula("Qq"); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Expected ErrUnknownElement, got %v", err)
	}
}

func TestCompositionAccessors(t *testing.T) {
	t.Parallel() // Enable parallel execution
	comp := MustParseFormula("Fe2O3")

	if comp.NumAtoms() != 5 {
		t.Errorf("Expected 5 atoms, got %v", comp.NumAtoms())
	}
	if comp.Len() != 2 {
		t.Errorf("Expected 2 elements, got %d", comp.Len())
	}
	if !comp.Contains("O") || comp.Contains("H") {
		t.Error("Contains reported the wrong elements")
	}
	if comp.Amount("H") != 0 {
		t.Errorf("Expected 0 for absent element, got %v", comp.Amount("H"))
	}

	elements := comp.Elements()
	if len(elements) != 2 || elements[0] != "Fe" || elements[1] != "O" {
		t.Errorf("Expected [Fe O], got %v", elements)
	}
}

func TestElementsTieBreak(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// C and Se share an electronegativity of 2.55.
	comp := Composition{"Se": 1, "C": 1}
	elements := comp.Elements()
	if elements[len(elements)-1] != "Se" {
		t.Errorf("Expected Se to sort last on a tie, got %v", elements)
	}
}

func TestCompositionValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	if err := (Composition{}).Validate(); !errors.Is(err, ErrEmptyComposition) {
		t.Errorf("Expected ErrEmptyComposition, got %v", err)
	}
	if err := (Composition{"Fe": -1, "O": 1}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
	if err := (Composition{"Zz": 1}).Validate(); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Expected ErrUnknownElement, got %v", err)
	}
}

func TestCompositionUnmarshalJSON(t *testing.T) {
	t.Parallel() // Enable parallel execution

	var fromFormula Composition
	if err := json.Unmarshal([]byte(`"Fe2O3"`), &fromFormula); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromFormula.Amount("O") != 3 {
		t.Errorf("Expected 3 O, got %v", fromFormula.Amount("O"))
	}

	var fromMap Composition
	if err := json.Unmarshal([]byte(`{"Fe": 2, "O": 3}`), &fromMap); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromMap.ReducedFormula() != "Fe2O3" {
		t.Errorf("Expected Fe2O3, got %s", fromMap.ReducedFormula())
	}

	var bad Composition
	if err := json.Unmarshal([]byte(`42`), &bad); !errors.Is(err, ErrInvalidFormula) {
		t.Errorf("Expected ErrInvalidFormula, got %v", err)
	}
}
