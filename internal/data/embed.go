package data

import (
	_ "embed"
	"fmt"
)

//go:embed default_encounter.yaml
var defaultEncounter []byte

// DefaultEncounter returns the raw embedded definitions.
func DefaultEncounter() []byte {
	return defaultEncounter
}

// LoadDefault parses the embedded definitions.
func LoadDefault() (*Registry, error) {
	r, err := Parse(defaultEncounter)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded definitions: %w", err)
	}
	return r, nil
}
