package ramp

import (
	"fmt"
	"strings"

	"disc-ramp-sim/internal/spells"
)

// Resolver reports whether an ability exists. Both *spells.Registry and
// *spells.Spellbook satisfy it.
type Resolver interface {
	Has(name spells.AbilityName) bool
}

// Compile flattens a ramp into the cast sequence the simulator consumes. Every
// name must resolve.
func Compile(file *File, book Resolver) ([]spells.AbilityName, error) {
	var out []spells.AbilityName
	if err := compileSteps(file.Sequence, book, "sequence", &out); err != nil {
		return nil, fmt.Errorf("ramp '%s': %w", file.Name, err)
	}
	return out, nil
}

func compileSteps(steps []Step, book Resolver, path string, out *[]spells.AbilityName) error {
	for i, step := range steps {
		where := fmt.Sprintf("%s[%d]", path, i)
		if len(step.Steps) > 0 {
			for n := 0; n < step.times(); n++ {
				if err := compileSteps(step.Steps, book, where, out); err != nil {
					return err
				}
			}
			continue
		}
		name := spells.AbilityName(strings.TrimSpace(step.Cast))
		if !book.Has(name) {
			return fmt.Errorf("%s: %w: '%s'", where, spells.ErrUnknownAbility, step.Cast)
		}
		for n := 0; n < step.times(); n++ {
			*out = append(*out, name)
		}
	}
	return nil
}

// Load reads and compiles a ramp in one call.
func Load(baseDir, relPath string, book Resolver) (*File, []spells.AbilityName, error) {
	file, err := LoadRamp(baseDir, relPath)
	if err != nil {
		return nil, nil, err
	}
	seq, err := Compile(file, book)
	if err != nil {
		return nil, nil, err
	}
	return file, seq, nil
}

// Set holds the compiled ramps of one planning window.
type Set struct {
	Boon   []spells.AbilityName
	Fiend  []spells.AbilityName
	Filler []spells.AbilityName
}

// LoadSet loads and compiles the three ramps of a planning window from dir.
// An empty file name leaves that ramp empty.
func LoadSet(dir, boon, fiend, filler string, book Resolver) (Set, error) {
	var set Set
	for _, part := range []struct {
		file string
		dst  *[]spells.AbilityName
	}{
		{boon, &set.Boon},
		{fiend, &set.Fiend},
		{filler, &set.Filler},
	} {
		if part.file == "" {
			continue
		}
		_, seq, err := Load(dir, part.file, book)
		if err != nil {
			return Set{}, fmt.Errorf("load %s: %w", part.file, err)
		}
		*part.dst = seq
	}
	return set, nil
}
