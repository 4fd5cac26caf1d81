package config

import "fmt"

const (
	defaultHorizonSeconds = 45
	defaultStepMillis     = 10
	defaultRampDir        = "ramps"
)

func (cfg *Config) validate() error {
	if err := cfg.Player.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (p *Player) validate() error {
	if p.Stats.Intellect <= 0 {
		return fmt.Errorf("stats: intellect must be > 0")
	}
	for name, v := range map[string]float64{
		"haste":       p.Stats.Haste,
		"crit":        p.Stats.Crit,
		"mastery":     p.Stats.Mastery,
		"versatility": p.Stats.Versatility,
	} {
		if v < 0 {
			return fmt.Errorf("stats: %s must not be negative", name)
		}
	}
	if err := p.Loadout.Validate(); err != nil {
		return err
	}
	if p.Ramps.Dir == "" {
		p.Ramps.Dir = defaultRampDir
	}
	if p.Ramps.Boon == "" && p.Ramps.Fiend == "" && p.Ramps.Filler == "" {
		return fmt.Errorf("ramps: at least one of boon, fiend, filler is required")
	}
	return p.Simulation.validate()
}

func (s *Simulation) validate() error {
	if s.HorizonSeconds == 0 {
		s.HorizonSeconds = defaultHorizonSeconds
	}
	if s.StepMillis == 0 {
		s.StepMillis = defaultStepMillis
	}
	if s.HorizonSeconds < 0 {
		return fmt.Errorf("simulation: horizon_seconds must be > 0")
	}
	if s.StepMillis < 0 {
		return fmt.Errorf("simulation: step_ms must be > 0")
	}
	if s.Step() > s.Horizon() {
		return fmt.Errorf("simulation: step_ms %d exceeds horizon", s.StepMillis)
	}
	return nil
}
