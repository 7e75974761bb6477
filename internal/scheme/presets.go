package scheme

import (
	"sync"

	"github.com/phrazzld/entry-compat/internal/compat"
)

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// Default returns the process-wide registry backed by the embedded tables.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(nil, nil)
	})
	return defaultRegistry
}

// MaterialsProject returns the scheme for runs using the Materials Project
// input set.
func MaterialsProject(compatType compat.CompatType, correctPeroxide bool) (*compat.Compatibility, error) {
	return Default().Get(Options{Family: FamilyMaterialsProject, CompatType: compatType, CorrectPeroxide: correctPeroxide})
}

// MaterialsProjectAqueous is MaterialsProject plus the aqueous correction.
func MaterialsProjectAqueous(compatType compat.CompatType, correctPeroxide bool) (*compat.Compatibility, error) {
	return Default().Get(Options{Family: FamilyMaterialsProject, CompatType: compatType, CorrectPeroxide: correctPeroxide, Aqueous: true})
}

// MIT returns the scheme for runs using the MIT input set.
func MIT(compatType compat.CompatType, correctPeroxide bool) (*compat.Compatibility, error) {
	return Default().Get(Options{Family: FamilyMIT, CompatType: compatType, CorrectPeroxide: correctPeroxide})
}

// MITAqueous is MIT plus the aqueous correction.
func MITAqueous(compatType compat.CompatType, correctPeroxide bool) (*compat.Compatibility, error) {
	return Default().Get(Options{Family: FamilyMIT, CompatType: compatType, CorrectPeroxide: correctPeroxide, Aqueous: true})
}
