package spells

import (
	"fmt"
	"sort"

	"github.com/tiendc/go-deepcopy"
)

// Spellbook is a registry view with per-ability overrides. Untouched abilities
// resolve to the shared base; the first Edit of an ability copies its effects.
type Spellbook struct {
	base      *Registry
	overrides map[AbilityName][]Effect
}

// NewSpellbook starts an empty overlay over base.
func NewSpellbook(base *Registry) *Spellbook {
	return &Spellbook{base: base, overrides: make(map[AbilityName][]Effect)}
}

// Base returns the registry the overlay reads through to.
func (b *Spellbook) Base() *Registry {
	return b.base
}

// Has reports whether name resolves in the overlay.
func (b *Spellbook) Has(name AbilityName) bool {
	if _, ok := b.overrides[name]; ok {
		return true
	}
	return b.base.Has(name)
}

// Lookup returns the effects of an ability, preferring overridden copies.
func (b *Spellbook) Lookup(name AbilityName) ([]Effect, error) {
	if list, ok := b.overrides[name]; ok {
		return list, nil
	}
	return b.base.Lookup(name)
}

// Edit returns a private, mutable copy of an ability's effects. Changes made
// through the returned slice's elements stay in this Spellbook.
func (b *Spellbook) Edit(name AbilityName) ([]Effect, error) {
	if list, ok := b.overrides[name]; ok {
		return list, nil
	}
	src, err := b.base.Lookup(name)
	if err != nil {
		return nil, err
	}
	var cloned []Effect
	if err := deepcopy.Copy(&cloned, src); err != nil {
		return nil, fmt.Errorf("copy %s: %w", name, err)
	}
	b.overrides[name] = cloned
	return cloned, nil
}

// Append adds an effect to an ability. The effect is validated like registry data.
func (b *Spellbook) Append(name AbilityName, e Effect) error {
	list, err := b.Edit(name)
	if err != nil {
		return err
	}
	if err := validateEffect(name, len(list), &e, b.Has); err != nil {
		return err
	}
	b.overrides[name] = append(list, e)
	return nil
}

// Overridden lists the abilities this overlay has copied, sorted.
func (b *Spellbook) Overridden() []AbilityName {
	names := make([]AbilityName, 0, len(b.overrides))
	for name := range b.overrides {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseSequence is Registry.ParseSequence against the overlay.
func (b *Spellbook) ParseSequence(tokens []string) ([]AbilityName, error) {
	return parseSequence(tokens, b.Has)
}
