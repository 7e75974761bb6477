package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUCorrectionRejectsUnknownCompatType(t *testing.T) {
	t.Parallel()
	_, err := NewUCorrection(testConfig(), testInputSet(), CompatType("Basic"))
	assert.ErrorIs(t, err, ErrInvalidCompatType)

	_, err = ParseCompatType("gga")
	assert.ErrorIs(t, err, ErrInvalidCompatType)

	ct, err := ParseCompatType("Advanced")
	require.NoError(t, err)
	assert.Equal(t, CompatTypeAdvanced, ct)
}

func TestUCorrectionAdvanced(t *testing.T) {
	t.Parallel()
	c, err := NewUCorrection(testConfig(), testInputSet(), CompatTypeAdvanced)
	require.NoError(t, err)
	assert.Equal(t, "Test Advanced Correction", c.String())

	testCases := []struct {
		name         string
		formula      string
		hubbards     map[string]float64
		runType      string
		expected     float64
		incompatible bool
	}{
		{
			name:     "Expected U applied",
			formula:  "Fe2O3",
			hubbards: map[string]float64{"Fe": 5.3},
			expected: -2.7 * 2,
		},
		{
			name:     "Rates sum over all corrected elements",
			formula:  "FeMnO3",
			hubbards: map[string]float64{"Fe": 5.3, "Mn": 3.9},
			expected: -2.7 - 1.7,
		},
		{
			name:         "U expected but not applied",
			formula:      "Fe2O3",
			incompatible: true,
		},
		{
			name:         "Wrong U value",
			formula:      "Fe2O3",
			hubbards:     map[string]float64{"Fe": 4.0},
			incompatible: true,
		},
		{
			name:         "U applied but not expected for sulfides",
			formula:      "FeS",
			hubbards:     map[string]float64{"Fe": 5.3},
			incompatible: true,
		},
		{
			name:     "Plain GGA sulfide",
			formula:  "FeS",
			expected: 0,
		},
		{
			name:     "Extra U on an absent element is ignored",
			formula:  "NaCl",
			hubbards: map[string]float64{"Fe": 5.3},
			expected: 0,
		},
		{
			name:         "Hartree-Fock is never compatible",
			formula:      "Fe2O3",
			hubbards:     map[string]float64{"Fe": 5.3},
			runType:      "HF",
			incompatible: true,
		},
		{
			name:     "Explicit GGA run type",
			formula:  "NaCl",
			runType:  "GGA",
			expected: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			entry := newEntry(t, tc.formula, -10, tc.hubbards)
			entry.Parameters.RunType = tc.runType

			value, err := c.Correction(entry)
			if tc.incompatible {
				assert.ErrorIs(t, err, ErrIncompatible)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, value, 1e-9)
		})
	}
}

func TestUCorrectionGGA(t *testing.T) {
	t.Parallel()
	c, err := NewUCorrection(testConfig(), testInputSet(), CompatTypeGGA)
	require.NoError(t, err)
	assert.Equal(t, "Test GGA Correction", c.String())

	// A GGA Fe oxide is rejected by the Advanced scheme but accepted here.
	value, err := c.Correction(newEntry(t, "Fe2O3", -40, nil))
	require.NoError(t, err)
	assert.Zero(t, value)

	// Any GGA+U run is excluded.
	_, err = c.Correction(newEntry(t, "Fe2O3", -40, map[string]float64{"Fe": 5.3}))
	assert.ErrorIs(t, err, ErrIncompatible)

	hf := newEntry(t, "NaCl", -7, nil)
	hf.Parameters.RunType = "HF"
	_, err = c.Correction(hf)
	assert.ErrorIs(t, err, ErrIncompatible)
}
