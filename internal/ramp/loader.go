package ramp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrImportCycle is returned when ramp files import each other.
var ErrImportCycle = errors.New("ramp import cycle")

// LoadRamp loads a ramp file relative to baseDir, resolving imports. Imported
// sequences come first, in import order.
func LoadRamp(baseDir, relPath string) (*File, error) {
	seen := map[string]bool{}
	return loadRecursive(baseDir, relPath, seen)
}

func loadRecursive(baseDir, relPath string, seen map[string]bool) (*File, error) {
	normalized := filepath.Clean(relPath)
	if seen[normalized] {
		return nil, fmt.Errorf("%w at %s", ErrImportCycle, normalized)
	}
	seen[normalized] = true

	fullPath := filepath.Join(baseDir, normalized)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", relPath, err)
	}

	// Resolve imports depth-first.
	var sequence []Step
	for _, imp := range file.Imports {
		child, err := loadRecursive(baseDir, imp, seen)
		if err != nil {
			return nil, err
		}
		sequence = append(sequence, child.Sequence...)
	}
	sequence = append(sequence, file.Sequence...)
	file.Sequence = sequence

	seen[normalized] = false
	return &file, nil
}
