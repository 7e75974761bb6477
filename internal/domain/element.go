package domain

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed elements.yaml
var elementsYAML []byte

// Element holds the periodic data the correction rules rely on.
type Element struct {
	Symbol string  `yaml:"symbol"`
	Z      int     `yaml:"z"`
	X      float64 `yaml:"x"` // Pauling electronegativity, 0 when undefined
}

var (
	periodicOnce  sync.Once
	periodicTable map[string]Element
	periodicErr   error
)

func loadPeriodicTable() {
	var doc struct {
		Elements []Element `yaml:"elements"`
	}
	if err := yaml.Unmarshal(elementsYAML, &doc); err != nil {
		periodicErr = fmt.Errorf("failed to parse periodic table: %w", err)
		return
	}
	periodicTable = make(map[string]Element, len(doc.Elements))
	for _, el := range doc.Elements {
		periodicTable[el.Symbol] = el
	}
}

// LookupElement returns the periodic data for a symbol.
func LookupElement(symbol string) (Element, error) {
	periodicOnce.Do(loadPeriodicTable)
	if periodicErr != nil {
		return Element{}, periodicErr
	}
	el, ok := periodicTable[symbol]
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}
	return el, nil
}

// electronegativity returns X for a symbol, or 0 for symbols that are not in
// the table. Callers that need to reject unknown symbols validate first.
func electronegativity(symbol string) float64 {
	el, err := LookupElement(symbol)
	if err != nil {
		return 0
	}
	return el.X
}

// sortByElectronegativity orders symbols by ascending X. Equal values fall
// back to the symbol so the order never depends on map iteration.
func sortByElectronegativity(symbols []string) {
	sort.Slice(symbols, func(i, j int) bool {
		xi, xj := electronegativity(symbols[i]), electronegativity(symbols[j])
		if xi != xj {
			return xi < xj
		}
		return symbols[i] < symbols[j]
	})
}
