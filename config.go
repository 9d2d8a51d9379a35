package simbal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaults for the knobs a scenario file can override
const (
	DEFAULT_N_PROCESSORS    = 4
	DEFAULT_POLICY          = POLICY_DYNAMIC
	DEFAULT_THRESHOLD       = 30 // max-min load spread above which work migrates
	DEFAULT_REBALANCE_EVERY = 5  // ticks between balance passes
	DEFAULT_HISTORY_CAP     = 50 // metrics observations kept before eviction
	DEFAULT_QUEUE_WEIGHT    = 5  // per-resident penalty the adaptive policy charges
)

// Config is everything one run needs. Explicit Workload entries, when
// present, replace the random generator; the generator still backs procs
// added mid-run without a burst.
type Config struct {
	NProcessors    int             `yaml:"processors"`
	Policy         string          `yaml:"policy"`
	Threshold      int             `yaml:"threshold"`
	RebalanceEvery int             `yaml:"rebalanceEvery"`
	HistoryCap     int             `yaml:"historyCap"`
	QueueWeight    int             `yaml:"queueWeight"`
	Ticks          int             `yaml:"ticks"`
	Seed           uint64          `yaml:"seed"`
	Lambda         float64         `yaml:"lambda"`
	MinBurst       int             `yaml:"minBurst"`
	MaxBurst       int             `yaml:"maxBurst"`
	TraceDir       string          `yaml:"traceDir"`
	Workload       []WorkloadEntry `yaml:"workload"`
}

// WorkloadEntry pins one proc in a scenario file instead of drawing it.
type WorkloadEntry struct {
	Arrival  int `yaml:"arrival"`
	Burst    int `yaml:"burst"`
	Priority int `yaml:"priority"`
}

func DefaultConfig() Config {
	return Config{
		NProcessors:    DEFAULT_N_PROCESSORS,
		Policy:         DEFAULT_POLICY,
		Threshold:      DEFAULT_THRESHOLD,
		RebalanceEvery: DEFAULT_REBALANCE_EVERY,
		HistoryCap:     DEFAULT_HISTORY_CAP,
		QueueWeight:    DEFAULT_QUEUE_WEIGHT,
		Ticks:          100,
		Seed:           1,
		Lambda:         DEFAULT_LAMBDA,
		MinBurst:       MIN_BURST,
		MaxBurst:       MAX_BURST,
	}
}

// ReadConfig overlays a scenario file onto the defaults. Validation happens
// at world construction, after the caller has applied its own overrides.
func ReadConfig(pn string) (Config, error) {
	cfg := DefaultConfig()
	file, err := os.Open(pn)
	if err != nil {
		return cfg, err
	}
	defer file.Close()
	d := yaml.NewDecoder(file)
	if err := d.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config %s: %w", pn, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.NProcessors <= 0 {
		return fmt.Errorf("need at least one processor, got %d", c.NProcessors)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("imbalance threshold must be positive, got %d", c.Threshold)
	}
	if c.RebalanceEvery <= 0 {
		return fmt.Errorf("rebalance interval must be positive, got %d", c.RebalanceEvery)
	}
	if c.HistoryCap <= 0 {
		return fmt.Errorf("history capacity must be positive, got %d", c.HistoryCap)
	}
	if c.QueueWeight < 0 {
		return fmt.Errorf("queue weight must not be negative, got %d", c.QueueWeight)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("tick count must not be negative, got %d", c.Ticks)
	}
	if _, err := policyByName(c.Policy, Twork(c.QueueWeight)); err != nil {
		return err
	}
	// the generator backs AddProc draws even when the workload is pinned
	if c.Lambda <= 0 {
		return fmt.Errorf("arrival rate must be positive, got %v", c.Lambda)
	}
	if c.MinBurst < 1 || c.MaxBurst < c.MinBurst {
		return fmt.Errorf("burst range [%d, %d] is not usable", c.MinBurst, c.MaxBurst)
	}
	for i, e := range c.Workload {
		if e.Arrival < 0 {
			return fmt.Errorf("workload entry %d: arrival must not be negative, got %d", i, e.Arrival)
		}
		if e.Burst <= 0 {
			return fmt.Errorf("workload entry %d: burst must be positive, got %d", i, e.Burst)
		}
	}
	return nil
}

func (c *Config) workloadSpecs() []ProcSpec {
	specs := make([]ProcSpec, len(c.Workload))
	for i, e := range c.Workload {
		specs[i] = ProcSpec{
			arrival:  Ttick(e.Arrival),
			burst:    Twork(e.Burst),
			priority: e.Priority,
		}
	}
	return specs
}
