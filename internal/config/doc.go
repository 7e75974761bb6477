// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the scheme selection and logging settings while keeping
// configuration details separate from the correction logic.
package config
