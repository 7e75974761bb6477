package scheme

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/phrazzld/entry-compat/internal/compat"
	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// Options selects a preset. The zero values of CompatType and
// CorrectPeroxide are not the defaults; use DefaultOptions.
type Options struct {
	Family          Family
	CompatType      compat.CompatType
	CorrectPeroxide bool
	Aqueous         bool
}

// DefaultOptions returns the Advanced, peroxide-correcting, non-aqueous
// preset of a family.
func DefaultOptions(family Family) Options {
	return Options{
		Family:          family,
		CompatType:      compat.CompatTypeAdvanced,
		CorrectPeroxide: true,
	}
}

// Name describes the preset, e.g. "MaterialsProjectAqueous (Advanced)".
func (o Options) Name() string {
	name := string(o.Family)
	if o.Aqueous {
		name += "Aqueous"
	}
	return fmt.Sprintf("%s (%s)", name, o.CompatType)
}

// Registry builds presets from table files and memoizes the results. It is
// safe for concurrent use; the schemes it returns are read-only.
type Registry struct {
	fsys   fs.FS
	logger *slog.Logger

	mu        sync.Mutex
	schemes   map[Options]*compat.Compatibility
	configs   map[string]*ruleset.CorrectionConfig
	inputSets map[string]*ruleset.InputSet
}

// NewRegistry creates a registry reading tables from fsys. A nil fsys uses
// the embedded tables.
func NewRegistry(fsys fs.FS, logger *slog.Logger) *Registry {
	if fsys == nil {
		fsys = ruleset.DefaultFS()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		fsys:      fsys,
		logger:    logger,
		schemes:   make(map[Options]*compat.Compatibility),
		configs:   make(map[string]*ruleset.CorrectionConfig),
		inputSets: make(map[string]*ruleset.InputSet),
	}
}

// Get returns the preset for opts, building it on first use. Identical
// options return the same *compat.Compatibility.
func (r *Registry) Get(opts Options) (*compat.Compatibility, error) {
	files, ok := families[opts.Family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, opts.Family)
	}
	if _, err := compat.ParseCompatType(string(opts.CompatType)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.schemes[opts]; ok {
		return c, nil
	}

	cfg, err := r.correctionConfig(files.correctionConfig)
	if err != nil {
		return nil, err
	}
	inputSet, err := r.inputSet(files.inputSet)
	if err != nil {
		return nil, err
	}

	u, err := compat.NewUCorrection(cfg, inputSet, opts.CompatType)
	if err != nil {
		return nil, err
	}
	corrections := []compat.Correction{
		compat.NewPotcarCorrection(inputSet),
		compat.NewGasCorrection(cfg, opts.CorrectPeroxide),
		u,
	}
	if opts.Aqueous {
		aq, err := compat.NewAqueousCorrection(cfg)
		if err != nil {
			return nil, err
		}
		corrections = append(corrections, aq)
	}

	c := compat.New(corrections...).WithLogger(r.logger)
	r.schemes[opts] = c
	r.logger.Debug("compatibility scheme built",
		"scheme", opts.Name(),
		"correct_peroxide", opts.CorrectPeroxide,
		"corrections", len(corrections))
	return c, nil
}

// correctionConfig returns the parsed table, loading it once. Callers hold r.mu.
func (r *Registry) correctionConfig(name string) (*ruleset.CorrectionConfig, error) {
	if cfg, ok := r.configs[name]; ok {
		return cfg, nil
	}
	cfg, err := ruleset.LoadCorrectionConfig(r.fsys, name)
	if err != nil {
		return nil, err
	}
	r.configs[name] = cfg
	return cfg, nil
}

// inputSet returns the parsed input set, loading it once. Callers hold r.mu.
func (r *Registry) inputSet(name string) (*ruleset.InputSet, error) {
	if is, ok := r.inputSets[name]; ok {
		return is, nil
	}
	is, err := ruleset.LoadInputSet(r.fsys, name)
	if err != nil {
		return nil, err
	}
	r.inputSets[name] = is
	return is, nil
}
