package simbal

import (
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// constants characterizing the generated workload
const (
	N_PRIORITIES   = 5   // priorities are drawn uniformly from [0, N_PRIORITIES)
	DEFAULT_LAMBDA = 1.5 // expected arrivals per tick
	MIN_BURST      = 1
	MAX_BURST      = 20
)

// ProcSpec is the shape of a proc before the world admits it: when it shows
// up, how much work it brings, and its (inert) priority.
type ProcSpec struct {
	arrival  Ttick
	burst    Twork
	priority int
}

type LoadGen interface {
	genProcs(horizon Ttick) []ProcSpec
	genOne(arrival Ttick) ProcSpec
}

// RandomLoadGen draws poisson arrival counts per tick and uniform bursts and
// priorities, all off one seeded stream so a run can be replayed exactly.
type RandomLoadGen struct {
	poisson *distuv.Poisson
	burst   distuv.Uniform
	prio    distuv.Uniform
}

func newRandomLoadGen(lambda float64, minBurst, maxBurst Twork, seed uint64) *RandomLoadGen {
	rng := exprand.New(exprand.NewSource(seed))
	return &RandomLoadGen{
		poisson: &distuv.Poisson{Lambda: lambda, Src: rng},
		burst:   distuv.Uniform{Min: float64(minBurst), Max: float64(maxBurst) + 1, Src: rng},
		prio:    distuv.Uniform{Min: 0, Max: N_PRIORITIES, Src: rng},
	}
}

// genProcs rolls the whole run's workload up front. Specs come out ordered by
// arrival tick, which is also the id order the world will assign.
func (lg *RandomLoadGen) genProcs(horizon Ttick) []ProcSpec {
	specs := make([]ProcSpec, 0)
	for t := Ttick(0); t < horizon; t++ {
		n := int(lg.poisson.Rand())
		for i := 0; i < n; i++ {
			specs = append(specs, lg.genOne(t))
		}
	}
	return specs
}

func (lg *RandomLoadGen) genOne(arrival Ttick) ProcSpec {
	return ProcSpec{
		arrival:  arrival,
		burst:    Twork(lg.burst.Rand()),
		priority: int(lg.prio.Rand()),
	}
}
