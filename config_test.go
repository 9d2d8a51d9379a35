package simbal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.validate())
	assert.Equal(t, DEFAULT_THRESHOLD, cfg.Threshold)
	assert.Equal(t, DEFAULT_REBALANCE_EVERY, cfg.RebalanceEvery)
	assert.Equal(t, DEFAULT_HISTORY_CAP, cfg.HistoryCap)
}

func TestConfigRejectsBadValues(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.NProcessors = 0 },
		func(c *Config) { c.Threshold = -1 },
		func(c *Config) { c.Policy = "shortest-job-first" },
		func(c *Config) { c.RebalanceEvery = 0 },
		func(c *Config) { c.HistoryCap = 0 },
		func(c *Config) { c.QueueWeight = -1 },
		func(c *Config) { c.Lambda = 0 },
		func(c *Config) { c.MinBurst = 0 },
		func(c *Config) { c.MaxBurst = 0 },
		func(c *Config) { c.Ticks = -5 },
		func(c *Config) { c.Workload = []WorkloadEntry{{Arrival: -1, Burst: 1}} },
		func(c *Config) { c.Workload = []WorkloadEntry{{Arrival: 0, Burst: 0}} },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.NotNil(t, cfg.validate(), "case %d should have failed", i)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	pn := filepath.Join(dir, "scenario.yaml")
	content := `processors: 3
policy: adaptive
threshold: 12
ticks: 40
seed: 9
workload:
  - arrival: 0
    burst: 10
    priority: 1
  - arrival: 4
    burst: 2
`
	require.Nil(t, os.WriteFile(pn, []byte(content), 0666))

	cfg, err := ReadConfig(pn)
	require.Nil(t, err)
	assert.Equal(t, 3, cfg.NProcessors)
	assert.Equal(t, POLICY_ADAPTIVE, cfg.Policy)
	assert.Equal(t, 12, cfg.Threshold)
	assert.Equal(t, 40, cfg.Ticks)
	assert.Equal(t, uint64(9), cfg.Seed)
	// knobs the file doesn't mention keep their defaults
	assert.Equal(t, DEFAULT_REBALANCE_EVERY, cfg.RebalanceEvery)
	assert.Equal(t, DEFAULT_HISTORY_CAP, cfg.HistoryCap)
	require.Equal(t, 2, len(cfg.Workload))
	assert.Equal(t, 10, cfg.Workload[0].Burst)
	assert.Equal(t, 1, cfg.Workload[0].Priority)
	assert.Equal(t, 4, cfg.Workload[1].Arrival)
	assert.Nil(t, cfg.validate())
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestWorkloadSpecs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workload = []WorkloadEntry{
		{Arrival: 0, Burst: 3, Priority: 1},
		{Arrival: 2, Burst: 5},
	}
	specs := cfg.workloadSpecs()
	require.Equal(t, 2, len(specs))
	assert.Equal(t, ProcSpec{arrival: 0, burst: 3, priority: 1}, specs[0])
	assert.Equal(t, ProcSpec{arrival: 2, burst: 5, priority: 0}, specs[1])
}
