package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// amountTolerance is the smallest amount treated as present.
const amountTolerance = 1e-8

// polyanionThreshold is the electronegativity gap below which the two most
// electronegative elements of a 3+ element formula are grouped.
const polyanionThreshold = 1.65

// specialFormulas maps reduced formulas that are conventionally written as
// dimers to their usual form. The reduction factor is halved for these.
var specialFormulas = map[string]string{
	"LiO": "Li2O2",
	"NaO": "Na2O2",
	"KO":  "K2O2",
	"HO":  "H2O2",
	"CsO": "Cs2O2",
	"RbO": "Rb2O2",
	"O":   "O2",
	"N":   "N2",
	"F":   "F2",
	"Cl":  "Cl2",
	"H":   "H2",
}

// Composition maps element symbols to amounts.
type Composition map[string]float64

// ParseFormula builds a Composition from a formula such as "Fe2O3" or
// "Ca3(PO4)2". Amounts may be fractional.
func ParseFormula(formula string) (Composition, error) {
	p := &formulaParser{src: strings.TrimSpace(formula)}
	comp, err := p.parseGroup(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFormula, p.src[p.pos], formula)
	}
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	return comp, nil
}

// MustParseFormula is ParseFormula for literals known to be valid.
func MustParseFormula(formula string) Composition {
	comp, err := ParseFormula(formula)
	if err != nil {
		panic(err)
	}
	return comp
}

// Validate checks that the composition is non-empty, uses known symbols and
// holds finite, non-negative amounts.
func (c Composition) Validate() error {
	if c.Len() == 0 {
		return ErrEmptyComposition
	}
	for sym, amt := range c {
		if _, err := LookupElement(sym); err != nil {
			return err
		}
		if amt < 0 || math.IsNaN(amt) || math.IsInf(amt, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidAmount, sym, amt)
		}
	}
	return nil
}

// Amount returns the amount of an element, 0 when absent.
func (c Composition) Amount(symbol string) float64 {
	return c[symbol]
}

// Contains reports whether the element is present in a non-negligible amount.
func (c Composition) Contains(symbol string) bool {
	return math.Abs(c[symbol]) > amountTolerance
}

// Len returns the number of elements present.
func (c Composition) Len() int {
	n := 0
	for _, amt := range c {
		if math.Abs(amt) > amountTolerance {
			n++
		}
	}
	return n
}

// NumAtoms returns the total number of atoms.
func (c Composition) NumAtoms() float64 {
	total := 0.0
	for _, amt := range c {
		total += math.Abs(amt)
	}
	return total
}

// Elements returns the present symbols sorted by ascending electronegativity.
// The most electronegative element is last.
func (c Composition) Elements() []string {
	syms := make([]string, 0, len(c))
	for sym, amt := range c {
		if math.Abs(amt) > amountTolerance {
			syms = append(syms, sym)
		}
	}
	sortByElectronegativity(syms)
	return syms
}

// Formula renders the full formula in electronegativity order, e.g. "Fe4O6".
func (c Composition) Formula() string {
	var b strings.Builder
	for _, sym := range c.Elements() {
		b.WriteString(sym)
		b.WriteString(formatAmount(c[sym]))
	}
	return b.String()
}

// ReducedFormula returns the formula reduced to the smallest integer ratios.
func (c Composition) ReducedFormula() string {
	formula, _ := c.ReducedFormulaAndFactor()
	return formula
}

// ReducedFormulaAndFactor returns the reduced formula and the factor by which
// the composition was divided. Compositions with fractional amounts are not
// reduced and report a factor of 1.
func (c Composition) ReducedFormulaAndFactor() (string, float64) {
	amounts := make(map[string]float64, len(c))
	for sym, amt := range c {
		if math.Abs(amt) > amountTolerance {
			amounts[sym] = amt
		}
	}
	for _, amt := range amounts {
		if amt != math.Trunc(amt) {
			return c.Formula(), 1
		}
	}
	formula, factor := reduceFormula(amounts)
	if special, ok := specialFormulas[formula]; ok {
		formula = special
		factor /= 2
	}
	return formula, factor
}

// UnmarshalJSON accepts either a formula string or an object of amounts.
func (c *Composition) UnmarshalJSON(data []byte) error {
	var formula string
	if err := json.Unmarshal(data, &formula); err == nil {
		comp, err := ParseFormula(formula)
		if err != nil {
			return err
		}
		*c = comp
		return nil
	}
	var amounts map[string]float64
	if err := json.Unmarshal(data, &amounts); err != nil {
		return fmt.Errorf("%w: composition must be a formula or an object of amounts", ErrInvalidFormula)
	}
	*c = Composition(amounts)
	return nil
}

func reduceFormula(amounts map[string]float64) (string, float64) {
	syms := make([]string, 0, len(amounts))
	for sym := range amounts {
		syms = append(syms, sym)
	}
	sortByElectronegativity(syms)

	numEl := len(syms)
	if numEl == 0 {
		return "", 1
	}
	containsPolyanion := numEl >= 3 &&
		electronegativity(syms[numEl-1])-electronegativity(syms[numEl-2]) < polyanionThreshold

	factor := 0
	for _, amt := range amounts {
		factor = gcd(factor, int(math.Abs(amt)))
	}
	if factor == 0 {
		factor = 1
	}

	n := numEl
	if containsPolyanion {
		n = numEl - 2
	}

	var b strings.Builder
	for _, sym := range syms[:n] {
		b.WriteString(sym)
		b.WriteString(formatAmount(amounts[sym] / float64(factor)))
	}
	if containsPolyanion {
		poly := make(map[string]float64, 2)
		for _, sym := range syms[n:] {
			poly[sym] = amounts[sym] / float64(factor)
		}
		polyFormula, polyFactor := reduceFormula(poly)
		if polyFactor != 1 {
			fmt.Fprintf(&b, "(%s)%d", polyFormula, int(polyFactor))
		} else {
			b.WriteString(polyFormula)
		}
	}
	return b.String(), float64(factor)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// formatAmount renders 1 as empty, integers without decimals and everything
// else rounded to 8 places.
func formatAmount(amt float64) string {
	if amt == 1 {
		return ""
	}
	if math.Abs(amt-math.Trunc(amt)) < amountTolerance {
		return strconv.Itoa(int(math.Trunc(amt)))
	}
	rounded := math.Round(amt*1e8) / 1e8
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

type formulaParser struct {
	src string
	pos int
}

func (p *formulaParser) parseGroup(depth int) (Composition, error) {
	comp := Composition{}
	for p.pos < len(p.src) {
		ch := rune(p.src[p.pos])
		switch {
		case ch == '(':
			p.pos++
			inner, err := p.parseGroup(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) || p.src[p.pos] != ')' {
				return nil, fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidFormula, p.src)
			}
			p.pos++
			mult, err := p.parseAmount()
			if err != nil {
				return nil, err
			}
			for sym, amt := range inner {
				comp[sym] += amt * mult
			}
		case ch == ')':
			if depth == 0 {
				return nil, fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidFormula, p.src)
			}
			return comp, nil
		case unicode.IsUpper(ch):
			start := p.pos
			p.pos++
			for p.pos < len(p.src) && unicode.IsLower(rune(p.src[p.pos])) {
				p.pos++
			}
			sym := p.src[start:p.pos]
			if _, err := LookupElement(sym); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidFormula, err)
			}
			amt, err := p.parseAmount()
			if err != nil {
				return nil, err
			}
			comp[sym] += amt
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFormula, ch, p.src)
		}
	}
	if depth > 0 {
		return nil, fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidFormula, p.src)
	}
	return comp, nil
}

func (p *formulaParser) parseAmount() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsDigit(rune(p.src[p.pos])) || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}
	amt, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad amount %q", ErrInvalidFormula, p.src[start:p.pos])
	}
	return amt, nil
}
