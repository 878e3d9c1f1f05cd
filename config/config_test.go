package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, 0, cfg.TargetScore)
	assert.False(t, cfg.Exhaustive)
	assert.Equal(t, 0.5, cfg.Phase1Fraction)
	assert.Equal(t, uint64(50_000_000), cfg.RestartThreshold)
	assert.Equal(t, "tessera.db", cfg.DBPath)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := []byte(`
seed: 99
target_score: 420
phase1_fraction: 0.4
slip_schedule: [200, 240, 250]
db_path: ""
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 420, cfg.TargetScore)
	assert.Equal(t, 0.4, cfg.Phase1Fraction)
	assert.Equal(t, []int{200, 240, 250}, cfg.SlipSchedule)
	assert.Equal(t, "", cfg.DBPath)
	// Unset keys keep their defaults.
	assert.Equal(t, 0.6, cfg.PriorityFraction)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.TargetScore = 100

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	dir := t.TempDir()
	path := filepath.Join(dir, "rt.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
