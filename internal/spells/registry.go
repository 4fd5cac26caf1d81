package spells

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownAbility is returned when a name is not in the registry.
	ErrUnknownAbility = errors.New("unknown ability")
	// ErrMalformedEffect is returned when spell data misses a field its type requires.
	ErrMalformedEffect = errors.New("malformed effect")
)

//go:embed data/disc_spells.yaml
var defaultSpellData []byte

// Registry is the read-only ability table. Slices returned by Lookup must not be
// modified; derive changes through a Spellbook instead.
type Registry struct {
	abilities map[AbilityName][]Effect
}

type registryFile struct {
	Abilities map[AbilityName][]Effect `yaml:"abilities"`
}

// Load parses and validates a registry document.
func Load(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse spell data: %w", err)
	}
	reg := &Registry{abilities: make(map[AbilityName][]Effect, len(file.Abilities))}
	for name, list := range file.Abilities {
		reg.abilities[AbilityName(normalizeName(string(name)))] = list
	}
	if err := reg.validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Load(defaultSpellData)
})

// Default returns the registry built from the embedded spell data. It is parsed
// once per process and shared; callers never mutate it.
func Default() (*Registry, error) {
	return loadDefault()
}

func (r *Registry) validate() error {
	for _, name := range r.Names() {
		list := r.abilities[name]
		if len(list) == 0 {
			return fmt.Errorf("%w: %s has no effects", ErrMalformedEffect, name)
		}
		for i := range list {
			if err := validateEffect(name, i, &list[i], r.Has); err != nil {
				return err
			}
		}
	}
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name AbilityName) bool {
	_, ok := r.abilities[name]
	return ok
}

// Lookup returns the effects of an ability.
func (r *Registry) Lookup(name AbilityName) ([]Effect, error) {
	list, ok := r.abilities[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownAbility, name)
	}
	return list, nil
}

// Names returns every registered ability in sorted order.
func (r *Registry) Names() []AbilityName {
	names := make([]AbilityName, 0, len(r.abilities))
	for name := range r.abilities {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseSequence converts raw tokens into ability names, failing on the first
// token the registry does not know.
func (r *Registry) ParseSequence(tokens []string) ([]AbilityName, error) {
	return parseSequence(tokens, r.Has)
}

func parseSequence(tokens []string, known func(AbilityName) bool) ([]AbilityName, error) {
	out := make([]AbilityName, 0, len(tokens))
	for i, tok := range tokens {
		name := AbilityName(normalizeName(tok))
		if !known(name) {
			return nil, fmt.Errorf("%w: '%s' at position %d", ErrUnknownAbility, tok, i)
		}
		out = append(out, name)
	}
	return out, nil
}
