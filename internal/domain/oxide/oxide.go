// Package oxide classifies oxygen-bearing structures by their O–O and O–H
// bond geometry.
package oxide

import (
	"github.com/phrazzld/entry-compat/internal/domain"
)

// Type is an oxide classification label.
type Type string

// Oxide classifications.
const (
	TypeNone       Type = "None"
	TypeOxide      Type = "oxide"
	TypePeroxide   Type = "peroxide"
	TypeSuperoxide Type = "superoxide"
	TypeOzonide    Type = "ozonide"
	TypeHydroxide  Type = "hydroxide"
)

// Bond length thresholds in Angstrom, scaled by the relative cutoff.
const (
	hydroxideBond  = 0.93
	superoxideBond = 1.35
	peroxideBond   = 1.49
)

// DefaultRelativeCutoff is the tolerance the gas correction classifies with.
const DefaultRelativeCutoff = 1.05

// Classify determines the oxide type of a structure and the number of bonds
// the correction should scale by. For plain oxides the bond count is the
// oxygen amount.
func Classify(s *domain.Structure, relativeCutoff float64) (Type, float64) {
	comp := s.Composition()
	if !comp.Contains("O") || comp.Len() < 2 {
		return TypeNone, 0
	}

	var oxygens, hydrogens [][3]float64
	for _, site := range s.Sites {
		switch site.Species {
		case "O":
			oxygens = append(oxygens, site.Coords)
		case "H":
			hydrogens = append(hydrogens, site.Coords)
		}
	}

	if len(hydrogens) > 0 {
		bonded := 0
		for _, o := range oxygens {
			for _, h := range hydrogens {
				if s.Lattice.Distance(o, h) < relativeCutoff*hydroxideBond {
					bonded++
				}
			}
		}
		if bonded > 0 {
			return TypeHydroxide, float64(bonded) / 2
		}
	}

	// Row indices of O–O pairs under each threshold; an oxygen appearing
	// more than once is bonded to several oxygens.
	var superRows, peroxRows []int
	for i, a := range oxygens {
		for j, b := range oxygens {
			if i == j {
				continue
			}
			d := s.Lattice.Distance(a, b)
			if d < relativeCutoff*superoxideBond {
				superRows = append(superRows, i)
			}
			if d < relativeCutoff*peroxideBond {
				peroxRows = append(peroxRows, i)
			}
		}
	}

	switch {
	case len(superRows) > 0:
		distinct := countDistinct(superRows)
		if len(superRows) > distinct {
			return TypeOzonide, float64(distinct)
		}
		return TypeSuperoxide, float64(distinct)
	case len(peroxRows) > 0:
		return TypePeroxide, float64(countDistinct(peroxRows))
	default:
		return TypeOxide, comp.Amount("O")
	}
}

func countDistinct(rows []int) int {
	seen := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		seen[r] = struct{}{}
	}
	return len(seen)
}
