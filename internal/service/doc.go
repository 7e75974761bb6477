// Package service runs batches of computed entries through a compatibility
// scheme and reports which entries were accepted, with their corrected
// energies, and which were rejected and why. It also decodes entries from
// JSON and encodes batch results.
package service
