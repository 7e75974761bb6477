// Package scheme provides the named compatibility schemes. Each family binds
// a correction table to the input set it was fitted for, so the two can never
// be mixed. Built schemes and parsed tables are memoized per Registry.
package scheme
