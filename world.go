package simbal

import (
	"fmt"

	"github.com/markphelps/optional"
)

// World is the whole simulation: the clock, the proc roster, the balancer
// with its processor pool, and the metrics history. All state lives here;
// nothing is global. The world never paces itself, callers decide when Tick
// runs.
type World struct {
	currTick  Ttick // starts at -1; the first Tick executes tick 0
	cfg       Config
	balancer  *Balancer
	loadgen   LoadGen
	pending   []*Proc // admitted but not yet arrived, ascending id
	all       []*Proc // every proc ever admitted, ascending id
	completed []*Proc // in completion order
	history   *metricsHistory
	nextId    Tid
	tr        *tracer
}

// NewWorld builds a world from a validated config, with the whole workload
// already rolled (or pinned) and nothing arrived yet.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	tr, err := newTracer(cfg.TraceDir)
	if err != nil {
		return nil, err
	}
	w := &World{cfg: cfg, tr: tr}
	if err := w.init(); err != nil {
		return nil, err
	}
	return w, nil
}

// init (re)builds all simulation state from the stored config. Reset leans on
// the seeded generator here: the same seed redraws the same roster.
func (w *World) init() error {
	b, err := newBalancer(w.cfg.Policy, w.cfg.NProcessors, Twork(w.cfg.Threshold), Twork(w.cfg.QueueWeight), w.tr)
	if err != nil {
		return err
	}
	w.balancer = b
	w.loadgen = newRandomLoadGen(w.cfg.Lambda, Twork(w.cfg.MinBurst), Twork(w.cfg.MaxBurst), w.cfg.Seed)
	w.currTick = -1
	w.nextId = 0
	w.pending = make([]*Proc, 0)
	w.all = make([]*Proc, 0)
	w.completed = make([]*Proc, 0)
	w.history = newMetricsHistory(w.cfg.HistoryCap)

	var specs []ProcSpec
	if len(w.cfg.Workload) > 0 {
		specs = w.cfg.workloadSpecs()
	} else {
		specs = w.loadgen.genProcs(Ttick(w.cfg.Ticks))
	}
	for _, spec := range specs {
		w.admit(spec)
	}
	return nil
}

func (w *World) String() string {
	str := fmt.Sprintf("tick %v, policy %v, %d migrations\nprocessors: [\n",
		w.currTick, w.balancer.policy.Name(), w.balancer.migrationCount)
	for _, pr := range w.balancer.processors {
		str += "  " + pr.String() + ",\n"
	}
	str += "]"
	return str
}

func (w *World) admit(spec ProcSpec) *Proc {
	p := newProc(w.nextId, spec.arrival, spec.burst, spec.priority)
	w.nextId += 1
	w.pending = append(w.pending, p)
	w.all = append(w.all, p)
	w.tr.logWrite(CREATED_PROCS, fmt.Sprintf("%v, %v, %v, %v, %v\n",
		w.currTick, p.procId, p.arrivalTime, p.burstTime, p.priority))
	return p
}

// Tick advances the world one step: arrivals, then one unit of execution per
// processor, then (on the cadence) a balance pass, then this tick's metrics
// observation.
func (w *World) Tick() {
	w.currTick += 1
	w.admitArrivals()
	w.compute()
	if w.currTick > 0 && int(w.currTick)%w.cfg.RebalanceEvery == 0 {
		w.balancer.balance(w.currTick)
	}
	w.observe()
}

func (w *World) Run(nTick int) {
	for i := 0; i < nTick; i++ {
		w.Tick()
	}
}

// hands every proc whose arrival is due to the balancer, in id order
func (w *World) admitArrivals() {
	kept := make([]*Proc, 0)
	for _, p := range w.pending {
		if p.arrivalTime <= w.currTick {
			w.balancer.assign(p, w.currTick)
		} else {
			kept = append(kept, p)
		}
	}
	w.pending = kept
}

// runs each processor's head for one unit, evicting whoever finished
func (w *World) compute() {
	for _, pr := range w.balancer.processors {
		head, done := pr.runHead(w.currTick)
		if head != nil && done {
			w.evict(pr, head)
		}
	}
}

func (w *World) evict(pr *Processor, p *Proc) {
	pr.remove(p.procId)
	p.state = TERMINATED
	p.completionTime.Set(int(w.currTick))
	w.completed = append(w.completed, p)
	turnaround, _ := p.turnaroundTime()
	waiting, _ := p.waitingTime()
	w.tr.logWrite(DONE_PROCS, fmt.Sprintf("%v, %v, %v, %v, %v, %v\n",
		w.currTick, p.procId, p.arrivalTime, p.burstTime, turnaround, waiting))
	dprintf("WORLD", "proc %v done at %v, turnaround %v", p.procId, w.currTick, turnaround)
}

func (w *World) observe() {
	m := takeMetrics(w.currTick, w.balancer.loads(), w.balancer.migrationCount)
	w.history.add(m)
	for _, pr := range w.balancer.processors {
		w.tr.logWrite(USAGE, fmt.Sprintf("%v, %v, %v, %v, %v\n",
			w.currTick, pr.id, pr.currentLoad, pr.residentCount(), pr.busyTicks))
	}
	dprintf("WORLD", "%v", m)
}

// AddProc admits one proc mid-run. A burst of zero or less means "draw one
// for me". The proc comes in through the normal arrival phase on the next
// tick.
func (w *World) AddProc(burst Twork, priority int) Tid {
	arrival := w.currTick
	if arrival < 0 {
		arrival = 0
	}
	if burst <= 0 {
		burst = w.loadgen.genOne(arrival).burst
	}
	p := w.admit(ProcSpec{arrival: arrival, burst: burst, priority: priority})
	return p.procId
}

// SetPolicy swaps the placement policy mid-run. Every resident proc is pulled
// off its processor and re-placed through the new policy in id order; procs
// that have not arrived or already finished are untouched. The migration
// counter starts over with the fresh balancer.
func (w *World) SetPolicy(name string) error {
	fresh, err := newBalancer(name, w.cfg.NProcessors, Twork(w.cfg.Threshold), Twork(w.cfg.QueueWeight), w.tr)
	if err != nil {
		return err
	}
	for _, p := range w.all {
		if p.state != READY && p.state != RUNNING {
			continue
		}
		idx, err := p.assignedProc.Get()
		if err != nil {
			continue
		}
		w.balancer.processors[idx].remove(p.procId)
		p.state = READY
	}
	w.balancer = fresh
	w.cfg.Policy = name
	for _, p := range w.all {
		if p.state == READY {
			fresh.assign(p, w.currTick)
		}
	}
	dprintf("WORLD", "policy now %v at tick %v", name, w.currTick)
	return nil
}

// Reset throws the run away and rebuilds it from the config. The generator
// reseeds, so a reset world replays the original run exactly.
func (w *World) Reset() error {
	return w.init()
}

// Close flushes and closes the trace files, if tracing was on.
func (w *World) Close() {
	w.tr.close()
}

func (w *World) CurrTick() Ttick {
	return w.currTick
}

func (w *World) PolicyName() string {
	return w.balancer.policy.Name()
}

// Metrics computes the observation for right now, at full precision.
func (w *World) Metrics() Metrics {
	return takeMetrics(w.currTick, w.balancer.loads(), w.balancer.migrationCount)
}

// History returns the retained per-tick observations, oldest first.
func (w *World) History() []Metrics {
	return w.history.all()
}

// ProcessorSnapshot is a read-only copy of one processor's visible state.
type ProcessorSnapshot struct {
	Id          Tid
	Load        Twork
	Residents   []Tid
	BusyTicks   Ttick
	Utilization float64
}

// ProcSnapshot is a read-only copy of one proc's visible state.
type ProcSnapshot struct {
	Id         Tid
	Arrival    Ttick
	Burst      Twork
	Remaining  Twork
	Priority   int
	State      Tstate
	Processor  optional.Int
	Start      optional.Int
	Completion optional.Int
}

func (w *World) ProcessorSnapshots() []ProcessorSnapshot {
	snaps := make([]ProcessorSnapshot, len(w.balancer.processors))
	for i, pr := range w.balancer.processors {
		residents := make([]Tid, 0, pr.residentCount())
		for _, p := range pr.q.getQ() {
			residents = append(residents, p.procId)
		}
		util := float64(0)
		if w.currTick >= 0 {
			util = float64(pr.busyTicks) / float64(w.currTick+1)
		}
		snaps[i] = ProcessorSnapshot{
			Id:          pr.id,
			Load:        pr.currentLoad,
			Residents:   residents,
			BusyTicks:   pr.busyTicks,
			Utilization: util,
		}
	}
	return snaps
}

func (w *World) ProcSnapshots() []ProcSnapshot {
	snaps := make([]ProcSnapshot, len(w.all))
	for i, p := range w.all {
		snaps[i] = ProcSnapshot{
			Id:         p.procId,
			Arrival:    p.arrivalTime,
			Burst:      p.burstTime,
			Remaining:  p.remainingTime,
			Priority:   p.priority,
			State:      p.state,
			Processor:  p.assignedProc,
			Start:      p.startTime,
			Completion: p.completionTime,
		}
	}
	return snaps
}
