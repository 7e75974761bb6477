package scheme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/entry-compat/internal/ruleset"
)

// ErrUnknownFamily is returned for a family name that has no preset.
var ErrUnknownFamily = errors.New("unknown scheme family")

// Family identifies an input-set family and the tables fitted to it.
type Family string

// Supported families.
const (
	FamilyMaterialsProject Family = "MaterialsProject"
	FamilyMIT              Family = "MIT"
)

type familyFiles struct {
	correctionConfig string
	inputSet         string
}

var families = map[Family]familyFiles{
	FamilyMaterialsProject: {ruleset.MPCompatibilityFile, ruleset.MPInputSetFile},
	FamilyMIT:              {ruleset.MITCompatibilityFile, ruleset.MITInputSetFile},
}

// Families lists the supported families.
func Families() []Family {
	return []Family{FamilyMaterialsProject, FamilyMIT}
}

// ParseFamily resolves a family name case-insensitively. "MP" is accepted
// for MaterialsProject.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "materialsproject", "mp":
		return FamilyMaterialsProject, nil
	case "mit":
		return FamilyMIT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}
