package ruleset

import (
	"embed"
	"io/fs"
)

// Table files shipped with the module.
const (
	MPCompatibilityFile  = "MPCompatibility.yaml"
	MITCompatibilityFile = "MITCompatibility.yaml"
	MPInputSetFile       = "MPVaspInputSet.yaml"
	MITInputSetFile      = "MITVaspInputSet.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// DefaultFS returns the tables embedded in the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// fs.Sub only fails for invalid paths, and "data" is a literal.
		panic(err)
	}
	return sub
}
