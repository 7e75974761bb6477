// Package compat applies energy-correction schemes to computed entries so
// that results from different calculation settings share one energy scale.
//
// A Correction computes the adjustment of one rule for one entry, or reports
// that the entry cannot be corrected under that rule. A Compatibility chains
// corrections, sums their results onto each entry and drops entries any rule
// rejects.
package compat
