package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/loadout"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a config file parses but fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Ramps names the ramp files of one planning window.
type Ramps struct {
	Dir    string `yaml:"dir"`
	Boon   string `yaml:"boon"`
	Fiend  string `yaml:"fiend"`
	Filler string `yaml:"filler"`
}

// Simulation holds run parameters
type Simulation struct {
	HorizonSeconds float64 `yaml:"horizon_seconds"`
	StepMillis     int     `yaml:"step_ms"`
	Log            bool    `yaml:"log"`
}

// Horizon returns the simulated length of one ramp.
func (s Simulation) Horizon() time.Duration {
	return time.Duration(s.HorizonSeconds * float64(time.Second))
}

// Step returns the fixed time increment.
func (s Simulation) Step() time.Duration {
	return time.Duration(s.StepMillis) * time.Millisecond
}

// Player holds player character configuration
type Player struct {
	Name       string          `yaml:"name"`
	Stats      character.Stats `yaml:"stats"`
	Loadout    loadout.Loadout `yaml:"loadout"`
	Ramps      Ramps           `yaml:"ramps"`
	Simulation Simulation      `yaml:"simulation"`
}

// Config holds all configuration
type Config struct {
	Dir    string
	Player Player
}

// RampDir returns the directory ramp files are resolved against.
func (c *Config) RampDir() string {
	dir := c.Player.Ramps.Dir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Dir, dir)
}

// LoadConfig loads player.yaml from configDir
func LoadConfig(configDir string) (*Config, error) {
	cfg := &Config{Dir: configDir}

	data, err := os.ReadFile(filepath.Join(configDir, "player.yaml"))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg.Player); err != nil {
		return nil, fmt.Errorf("parse player.yaml: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLoadout reads a standalone loadout file.
func LoadLoadout(path string) (loadout.Loadout, error) {
	var l loadout.Loadout
	data, err := os.ReadFile(path)
	if err != nil {
		return l, err
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return l, nil
}
