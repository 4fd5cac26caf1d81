package ramp

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File represents one ramp YAML file.
type File struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Imports     []string `yaml:"imports"`
	Sequence    []Step   `yaml:"sequence"`
}

// Step is one entry of a ramp: a single cast or a repeated group of steps.
type Step struct {
	Cast   string `yaml:"cast,omitempty"`
	Repeat int    `yaml:"repeat,omitempty"`
	Steps  []Step `yaml:"steps,omitempty"`
	Note   string `yaml:"note,omitempty"`
}

// UnmarshalYAML also accepts a bare ability name as shorthand for {cast: name}.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		*s = Step{Cast: name}
		return nil
	}
	type plain Step
	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Cast != "" && len(raw.Steps) > 0 {
		return fmt.Errorf("line %d: step has both cast and steps", value.Line)
	}
	if raw.Cast == "" && len(raw.Steps) == 0 {
		return fmt.Errorf("line %d: step needs cast or steps", value.Line)
	}
	if raw.Repeat < 0 {
		return fmt.Errorf("line %d: negative repeat %d", value.Line, raw.Repeat)
	}
	*s = Step(raw)
	return nil
}

func (s Step) times() int {
	if s.Repeat == 0 {
		return 1
	}
	return s.Repeat
}
