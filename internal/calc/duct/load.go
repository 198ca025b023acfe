package duct

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a YAML document listing ducts to evaluate. Keys under defaults
// override the fallback for every duct that leaves the field out.
type File struct {
	Defaults Defaults `yaml:"defaults"`
	Ducts    []Input  `yaml:"ducts"`
}

// LoadFile reads a duct file from disk.
func LoadFile(path string, fallback Defaults) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading duct file: %w", err)
	}
	return ParseFile(data, fallback)
}

func ParseFile(data []byte, fallback Defaults) (*File, error) {
	f := File{Defaults: fallback}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing duct YAML: %w", err)
	}
	if len(f.Ducts) == 0 {
		return nil, fmt.Errorf("duct file lists no ducts")
	}
	return &f, nil
}

// Inputs returns the ducts with the file defaults applied.
func (f *File) Inputs() []Input {
	out := make([]Input, len(f.Ducts))
	for i, in := range f.Ducts {
		out[i] = in.WithDefaults(f.Defaults)
	}
	return out
}
