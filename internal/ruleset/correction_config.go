package ruleset

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Global validator instance for reuse
var validate = validator.New()

// requiredOxideKeys must all be present in OxideCorrections.
var requiredOxideKeys = []string{"oxide", "peroxide", "superoxide", "ozonide"}

// CorrectionConfig holds the numeric tables of one compatibility scheme.
// Values are read-only once parsed; corrections copy what they use.
type CorrectionConfig struct {
	// Name is the short scheme label used in correction names, e.g. "MP".
	Name string `yaml:"Name" validate:"required"`

	// OxideCorrections maps an oxide type to its per-oxygen (or per-bond) rate.
	OxideCorrections map[string]float64 `yaml:"OxideCorrections" validate:"required"`

	Advanced AdvancedTables `yaml:"Advanced"`

	// AqueousCompoundEnergies maps reduced formulas to aqueous reference
	// energies per atom. Only the aqueous correction needs it.
	AqueousCompoundEnergies map[string]float64 `yaml:"AqueousCompoundEnergies"`
}

// AdvancedTables holds the tables used by the GGA/GGA+U mixing scheme.
type AdvancedTables struct {
	// UCorrections maps the most electronegative element to per-element rates.
	UCorrections map[string]map[string]float64 `yaml:"UCorrections" validate:"required"`

	// CompoundEnergies maps reduced formulas to reference energies per atom.
	CompoundEnergies map[string]float64 `yaml:"CompoundEnergies" validate:"required"`
}

// ParseCorrectionConfig parses and validates a correction table document.
func ParseCorrectionConfig(data []byte) (*CorrectionConfig, error) {
	var cfg CorrectionConfig
	if err := decodeYAML(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	return &cfg, nil
}

// LoadCorrectionConfig reads and parses a correction table from fsys.
func LoadCorrectionConfig(fsys fs.FS, name string) (*CorrectionConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	cfg, err := ParseCorrectionConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks that every table the corrections rely on is present.
func (c *CorrectionConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	for _, key := range requiredOxideKeys {
		if _, ok := c.OxideCorrections[key]; !ok {
			return fmt.Errorf("%w: OxideCorrections.%s", ErrMissingKey, key)
		}
	}
	return nil
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed document: %w", err)
	}
	return nil
}
