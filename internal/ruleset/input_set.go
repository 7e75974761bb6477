package ruleset

import (
	"fmt"
	"io/fs"
	"sort"
)

// InputSet describes the calculation parameters of one input-set family:
// which pseudopotentials it uses and which Hubbard U values it applies.
type InputSet struct {
	Name string `yaml:"Name" validate:"required"`

	// PotcarSettings maps an element to its POTCAR label, e.g. Fe -> Fe_pv.
	PotcarSettings map[string]string `yaml:"POTCAR" validate:"required,min=1"`

	// LDAUU maps the most electronegative element to per-element U values.
	LDAUU map[string]map[string]float64 `yaml:"LDAUU" validate:"required"`
}

// ParseInputSet parses and validates an input-set document.
func ParseInputSet(data []byte) (*InputSet, error) {
	var is InputSet
	if err := decodeYAML(data, &is); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	if err := validate.Struct(&is); err != nil {
		return nil, fmt.Errorf("%w: validation failed: %w", ErrConfigLoad, err)
	}
	return &is, nil
}

// LoadInputSet reads and parses an input set from fsys.
func LoadInputSet(fsys fs.FS, name string) (*InputSet, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	is, err := ParseInputSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return is, nil
}

// ValidPotcars returns the distinct POTCAR labels of the input set, sorted.
func (s *InputSet) ValidPotcars() []string {
	seen := make(map[string]struct{}, len(s.PotcarSettings))
	labels := make([]string, 0, len(s.PotcarSettings))
	for _, label := range s.PotcarSettings {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
