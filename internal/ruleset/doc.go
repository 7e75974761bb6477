// Package ruleset loads the numeric tables that drive the energy corrections
// and the input-set expectations entries are validated against. Both are
// parsed once into read-only values; nothing in this package touches an
// entry.
package ruleset
