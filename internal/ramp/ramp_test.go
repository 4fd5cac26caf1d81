package ramp

import (
	"os"
	"path/filepath"
	"testing"

	"disc-ramp-sim/internal/spells"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRamp(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadRampResolvesImports(t *testing.T) {
	dir := t.TempDir()
	writeRamp(t, dir, "setup.yaml", `
name: setup
sequence:
  - Purge the Wicked
  - cast: "Power Word: Shield"
`)
	writeRamp(t, dir, "boon.yaml", `
name: boon
imports: [setup.yaml]
sequence:
  - cast: "Power Word: Radiance"
    repeat: 2
  - Evangelism
  - steps:
      - Ascended Blast
      - Ascended Nova
    repeat: 2
`)

	reg, err := spells.Default()
	require.NoError(t, err)

	file, seq, err := Load(dir, "boon.yaml", reg)
	require.NoError(t, err)
	assert.Equal(t, "boon", file.Name)
	assert.Equal(t, []spells.AbilityName{
		spells.PurgeTheWicked, spells.PowerWordShield,
		spells.PowerWordRadiance, spells.PowerWordRadiance,
		spells.Evangelism,
		spells.AscendedBlast, spells.AscendedNova,
		spells.AscendedBlast, spells.AscendedNova,
	}, seq)
}

func TestLoadRampDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeRamp(t, dir, "a.yaml", "name: a\nimports: [b.yaml]\nsequence: [Smite]\n")
	writeRamp(t, dir, "b.yaml", "name: b\nimports: [a.yaml]\nsequence: [Smite]\n")

	_, err := LoadRamp(dir, "a.yaml")
	assert.ErrorIs(t, err, ErrImportCycle)
}

func TestLoadRampAllowsDiamondImports(t *testing.T) {
	dir := t.TempDir()
	writeRamp(t, dir, "base.yaml", "name: base\nsequence: [Smite]\n")
	writeRamp(t, dir, "left.yaml", "name: left\nimports: [base.yaml]\nsequence: [Penance]\n")
	writeRamp(t, dir, "top.yaml", "name: top\nimports: [left.yaml, base.yaml]\nsequence: [Schism]\n")

	file, err := LoadRamp(dir, "top.yaml")
	require.NoError(t, err)
	assert.Len(t, file.Sequence, 4)
}

func TestCompileRejectsUnknownAbility(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	file := &File{Name: "typo", Sequence: []Step{{Cast: "Smite"}, {Cast: "Mind Blats"}}}
	_, err = Compile(file, reg)
	assert.ErrorIs(t, err, spells.ErrUnknownAbility)
	assert.Contains(t, err.Error(), "sequence[1]")
}

func TestStepValidation(t *testing.T) {
	dir := t.TempDir()
	writeRamp(t, dir, "bad.yaml", "name: bad\nsequence:\n  - cast: Smite\n    steps: [Penance]\n")
	_, err := LoadRamp(dir, "bad.yaml")
	assert.Error(t, err)

	writeRamp(t, dir, "empty.yaml", "name: empty\nsequence:\n  - repeat: 2\n")
	_, err = LoadRamp(dir, "empty.yaml")
	assert.Error(t, err)
}

func TestCompileEmpty(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	seq, err := Compile(&File{Name: "empty"}, reg)
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	writeRamp(t, dir, "boon.yaml", "name: boon\nsequence: [Boon of the Ascended, Ascended Blast]\n")
	writeRamp(t, dir, "mini.yaml", "name: mini\nsequence: [Smite]\n")

	reg, err := spells.Default()
	require.NoError(t, err)

	set, err := LoadSet(dir, "boon.yaml", "", "mini.yaml", reg)
	require.NoError(t, err)
	assert.Equal(t, []spells.AbilityName{spells.BoonOfTheAscended, spells.AscendedBlast}, set.Boon)
	assert.Empty(t, set.Fiend)
	assert.Equal(t, []spells.AbilityName{spells.Smite}, set.Filler)

	_, err = LoadSet(dir, "missing.yaml", "", "", reg)
	assert.Error(t, err)
}
