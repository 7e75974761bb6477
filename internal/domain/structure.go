package domain

import (
	"fmt"
	"math"
)

// Lattice holds the three lattice vectors as rows, in Angstrom.
type Lattice [3][3]float64

// Site is a single atom position in fractional coordinates.
type Site struct {
	Species string     `json:"species"`
	Coords  [3]float64 `json:"abc"`
}

// Structure is the periodic geometry of an entry. Only the pieces the oxide
// classifier needs are modelled.
type Structure struct {
	Lattice Lattice `json:"lattice"`
	Sites   []Site  `json:"sites"`
}

// Validate checks that the structure has sites with known species and a
// lattice with non-zero volume.
func (s *Structure) Validate() error {
	if len(s.Sites) == 0 {
		return fmt.Errorf("%w: no sites", ErrInvalidStructure)
	}
	if math.Abs(s.Lattice.Volume()) < 1e-8 {
		return fmt.Errorf("%w: degenerate lattice", ErrInvalidStructure)
	}
	for _, site := range s.Sites {
		if _, err := LookupElement(site.Species); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidStructure, err)
		}
	}
	return nil
}

// Volume returns the cell volume.
func (l Lattice) Volume() float64 {
	a, b, c := l[0], l[1], l[2]
	return a[0]*(b[1]*c[2]-b[2]*c[1]) -
		a[1]*(b[0]*c[2]-b[2]*c[0]) +
		a[2]*(b[0]*c[1]-b[1]*c[0])
}

// Cartesian converts fractional coordinates to Cartesian ones.
func (l Lattice) Cartesian(frac [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j] += frac[i] * l[i][j]
		}
	}
	return out
}

// Distance returns the shortest distance between two fractional positions
// over the neighbouring periodic images.
func (l Lattice) Distance(a, b [3]float64) float64 {
	var d [3]float64
	for i := range d {
		delta := b[i] - a[i]
		d[i] = delta - math.Round(delta)
	}
	best := math.Inf(1)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				v := l.Cartesian([3]float64{d[0] + float64(i), d[1] + float64(j), d[2] + float64(k)})
				dist := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
				if dist < best {
					best = dist
				}
			}
		}
	}
	return best
}

// Composition counts the species of all sites.
func (s *Structure) Composition() Composition {
	comp := Composition{}
	for _, site := range s.Sites {
		comp[site.Species]++
	}
	return comp
}
