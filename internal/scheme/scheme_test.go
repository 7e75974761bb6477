package scheme

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/phrazzld/entry-compat/internal/compat"
	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryWith(t *testing.T, formula string, energy float64, potcars []string, hubbards map[string]float64) *domain.ComputedEntry {
	t.Helper()
	entry, err := domain.NewComputedEntry(domain.MustParseFormula(formula), energy, domain.Parameters{
		PotcarSymbols: potcars,
		Hubbards:      hubbards,
	})
	require.NoError(t, err)
	return entry
}

func TestParseFamily(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input   string
		want    Family
		wantErr bool
	}{
		{input: "MaterialsProject", want: FamilyMaterialsProject},
		{input: "mp", want: FamilyMaterialsProject},
		{input: " MIT ", want: FamilyMIT},
		{input: "mit", want: FamilyMIT},
		{input: "OQMD", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFamily(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFamily)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOptionsName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MaterialsProject (Advanced)", DefaultOptions(FamilyMaterialsProject).Name())

	opts := DefaultOptions(FamilyMIT)
	opts.Aqueous = true
	opts.CompatType = compat.CompatTypeGGA
	assert.Equal(t, "MITAqueous (GGA)", opts.Name())
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(nil, nil)

	for _, family := range Families() {
		for _, aqueous := range []bool{false, true} {
			opts := DefaultOptions(family)
			opts.Aqueous = aqueous

			c, err := registry.Get(opts)
			require.NoError(t, err, opts.Name())

			names := make([]string, 0, len(c.Corrections()))
			for _, correction := range c.Corrections() {
				names = append(names, correction.String())
			}
			if aqueous {
				assert.Len(t, names, 4, opts.Name())
			} else {
				assert.Len(t, names, 3, opts.Name())
			}
			assert.Contains(t, names[0], "Potcar Correction", "potcar check runs first")
		}
	}
}

func TestRegistryMemoizes(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(nil, nil)
	opts := DefaultOptions(FamilyMaterialsProject)

	first, err := registry.Get(opts)
	require.NoError(t, err)
	second, err := registry.Get(opts)
	require.NoError(t, err)
	assert.Same(t, first, second)

	opts.CorrectPeroxide = false
	third, err := registry.Get(opts)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestRegistryConcurrentGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(nil, nil)
	opts := DefaultOptions(FamilyMIT)

	const workers = 16
	results := make([]*compat.Compatibility, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := registry.Get(opts)
			assert.NoError(t, err)
			results[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range results {
		assert.Same(t, results[0], c)
	}
}

func TestRegistryErrors(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(nil, nil)

	_, err := registry.Get(Options{Family: "OQMD", CompatType: compat.CompatTypeAdvanced})
	assert.ErrorIs(t, err, ErrUnknownFamily)

	_, err = registry.Get(Options{Family: FamilyMIT, CompatType: "GGA+U"})
	assert.ErrorIs(t, err, compat.ErrInvalidCompatType)

	empty := NewRegistry(fstest.MapFS{}, nil)
	_, err = empty.Get(DefaultOptions(FamilyMaterialsProject))
	assert.ErrorIs(t, err, ruleset.ErrConfigLoad)
}

func TestRegistryAqueousNeedsTable(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		ruleset.MPCompatibilityFile: {Data: []byte(`
Name: Dry
OxideCorrections: {oxide: -0.7, peroxide: -0.4, superoxide: -0.1, ozonide: 0}
Advanced:
  UCorrections: {O: {Fe: -2.7}}
  CompoundEnergies: {O2: -4.9}
`)},
		ruleset.MPInputSetFile: {Data: []byte(`
Name: Dry
POTCAR: {Fe: Fe_pv, O: O}
LDAUU: {O: {Fe: 5.3}}
`)},
	}
	registry := NewRegistry(fsys, nil)

	_, err := registry.Get(DefaultOptions(FamilyMaterialsProject))
	require.NoError(t, err)

	opts := DefaultOptions(FamilyMaterialsProject)
	opts.Aqueous = true
	_, err = registry.Get(opts)
	assert.ErrorIs(t, err, compat.ErrMissingTable)
}

func TestMaterialsProjectFe2O3(t *testing.T) {
	t.Parallel()

	c, err := MaterialsProject(compat.CompatTypeAdvanced, true)
	require.NoError(t, err)

	potcars := []string{"PAW_PBE Fe_pv 06Sep2000", "PAW_PBE O 08Apr2002"}
	entry := entryWith(t, "Fe2O3", -39.0, potcars, map[string]float64{"Fe": 5.3})

	breakdown, err := c.CorrectionsBreakdown(entry)
	require.NoError(t, err)
	assert.InDelta(t, -0.702*3, breakdown["MP Gas Correction"], 1e-9)
	assert.InDelta(t, -2.733*2, breakdown["MP Advanced Correction"], 1e-9)
	assert.NotContains(t, breakdown, "MaterialsProject Potcar Correction", "zero results are omitted")

	ok, err := c.ProcessEntry(entry)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -0.702*3-2.733*2, entry.Correction, 1e-9)

	// Without U the Advanced scheme rejects the entry.
	plain := entryWith(t, "Fe2O3", -39.0, potcars, nil)
	ok, err = c.ProcessEntry(plain)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGGASchemeRejectsGGAU(t *testing.T) {
	t.Parallel()

	c, err := MaterialsProject(compat.CompatTypeGGA, true)
	require.NoError(t, err)

	potcars := []string{"PAW_PBE Fe_pv 06Sep2000", "PAW_PBE O 08Apr2002"}

	withU := entryWith(t, "Fe2O3", -39.0, potcars, map[string]float64{"Fe": 5.3})
	ok, err := c.ProcessEntry(withU)
	require.NoError(t, err)
	assert.False(t, ok)

	plain := entryWith(t, "Fe2O3", -39.0, potcars, nil)
	ok, err = c.ProcessEntry(plain)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, -0.702*3, plain.Correction, 1e-9)
}

func TestFamiliesAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	mp, err := MaterialsProject(compat.CompatTypeAdvanced, true)
	require.NoError(t, err)
	mit, err := MIT(compat.CompatTypeAdvanced, true)
	require.NoError(t, err)

	// MIT runs use the plain Fe pseudopotential and U=4.0.
	mitEntry := entryWith(t, "Fe2O3", -39.0,
		[]string{"PAW_PBE Fe 06Sep2000", "PAW_PBE O 08Apr2002"},
		map[string]float64{"Fe": 4.0})

	ok, err := mp.ProcessEntry(mitEntry)
	require.NoError(t, err)
	assert.False(t, ok, "MP scheme must reject MIT pseudopotentials")

	ok, err = mit.ProcessEntry(mitEntry)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -0.708*3-1.910*2, mitEntry.Correction, 1e-9)
}

func TestMITSulfideU(t *testing.T) {
	t.Parallel()

	c, err := MIT(compat.CompatTypeAdvanced, true)
	require.NoError(t, err)

	entry := entryWith(t, "FeS2", -20.0,
		[]string{"PAW_PBE Fe 06Sep2000", "PAW_PBE S 06Sep2000"},
		map[string]float64{"Fe": 1.9})

	ok, err := c.ProcessEntry(entry)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -1.100, entry.Correction, 1e-9)
}

func TestAqueousPresets(t *testing.T) {
	t.Parallel()

	c, err := MaterialsProjectAqueous(compat.CompatTypeAdvanced, true)
	require.NoError(t, err)

	water := entryWith(t, "H2O", -14.0,
		[]string{"PAW_PBE H 15Jun2001", "PAW_PBE O 08Apr2002"}, nil)
	ok, err := c.ProcessEntry(water)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -4.9368*3, water.Energy(), 1e-9)

	mitAq, err := MITAqueous(compat.CompatTypeAdvanced, true)
	require.NoError(t, err)
	assert.Len(t, mitAq.Corrections(), 4)
}

func TestPresetsShareDefaultRegistry(t *testing.T) {
	t.Parallel()

	a, err := MIT(compat.CompatTypeAdvanced, false)
	require.NoError(t, err)
	b, err := Default().Get(Options{Family: FamilyMIT, CompatType: compat.CompatTypeAdvanced})
	require.NoError(t, err)
	assert.Same(t, a, b)
}
