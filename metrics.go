package simbal

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Metrics is one observation of the pool, taken after a tick completes.
//
// Variance actually carries the population standard deviation of the loads;
// the name is kept so existing traces and exports keep their column meaning.
type Metrics struct {
	Tick       Ttick
	AvgLoad    float64
	Variance   float64
	Migrations int
}

func (m Metrics) String() string {
	return fmt.Sprintf("tick %v: avg load %.2f, variance %.2f, %d migrations",
		m.Tick, roundToHundredth(m.AvgLoad), roundToHundredth(m.Variance), m.Migrations)
}

// takeMetrics computes the observation for the given loads at full precision.
// Rounding happens at the export edge, never here.
func takeMetrics(tick Ttick, loads []Twork, migrations int) Metrics {
	if len(loads) == 0 {
		return Metrics{Tick: tick, Migrations: migrations}
	}
	fls := make([]float64, len(loads))
	for i, l := range loads {
		fls[i] = float64(l)
	}
	avgLoad, err := stats.Mean(fls)
	if err != nil {
		return Metrics{Tick: tick, Migrations: migrations}
	}
	stdev, err := stats.StandardDeviationPopulation(fls)
	if err != nil {
		return Metrics{Tick: tick, AvgLoad: avgLoad, Migrations: migrations}
	}
	return Metrics{
		Tick:       tick,
		AvgLoad:    avgLoad,
		Variance:   stdev,
		Migrations: migrations,
	}
}

// metricsHistory keeps the most recent observations, oldest evicted first.
type metricsHistory struct {
	entries  []Metrics
	capacity int
}

func newMetricsHistory(capacity int) *metricsHistory {
	return &metricsHistory{
		entries:  make([]Metrics, 0, capacity),
		capacity: capacity,
	}
}

func (h *metricsHistory) add(m Metrics) {
	if len(h.entries) == h.capacity {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, m)
}

func (h *metricsHistory) len() int {
	return len(h.entries)
}

// all returns the retained observations oldest first, copied so callers
// cannot reach back into the history.
func (h *metricsHistory) all() []Metrics {
	out := make([]Metrics, len(h.entries))
	copy(out, h.entries)
	return out
}

func roundToHundredth(f float64) float64 {
	return math.Round(f*100.0) / 100.0
}
