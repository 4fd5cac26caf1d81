package engine

import (
	"path/filepath"
	"testing"

	"disc-ramp-sim/internal/config"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/ramp"
	"disc-ramp-sim/internal/spells"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedConfigsEvaluate(t *testing.T) {
	configDir := filepath.Join("..", "..", "configs")
	cfg, err := config.LoadConfig(configDir)
	require.NoError(t, err)

	reg, err := spells.Default()
	require.NoError(t, err)

	loadouts := []loadout.Loadout{cfg.Player.Loadout}
	paths, err := filepath.Glob(filepath.Join(configDir, "loadouts", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		l, err := config.LoadLoadout(path)
		require.NoError(t, err, path)
		loadouts = append(loadouts, l)
	}

	r := cfg.Player.Ramps
	simCfg := SimulationConfig{Horizon: cfg.Player.Simulation.Horizon(), Step: cfg.Player.Simulation.Step()}
	for _, l := range loadouts {
		kit, err := loadout.Derive(reg, l)
		require.NoError(t, err)
		set, err := ramp.LoadSet(cfg.RampDir(), r.Boon, r.Fiend, r.Filler, kit.Spells)
		require.NoError(t, err)

		res, err := NewSimulator(kit, simCfg, false, nil).Evaluate(RampSet(set), cfg.Player.Stats)
		require.NoError(t, err)
		assert.Greater(t, res.Total, 0.0)
		assert.Zero(t, res.Boon.Dropped)
		assert.Zero(t, res.Fiend.Dropped)
	}
}
