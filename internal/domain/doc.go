// Package domain contains the core records the correction pipeline works on:
// computed entries, their compositions and structures, and the periodic data
// needed to order elements. It has no knowledge of correction schemes or of
// how entries are read and written.
package domain
