package simbal

import "fmt"

const (
	POLICY_STATIC   = "static"
	POLICY_DYNAMIC  = "dynamic"
	POLICY_ADAPTIVE = "adaptive"
)

// PlacementPolicy decides which processor admits an arriving proc. Selection
// never fails: every policy returns a valid index for a non-empty pool.
type PlacementPolicy interface {
	Name() string
	selectProcessor(p *Proc, processors []*Processor) int
}

// StaticPolicy spreads procs by id alone, ignoring load entirely.
type StaticPolicy struct{}

func (StaticPolicy) Name() string {
	return POLICY_STATIC
}

func (StaticPolicy) selectProcessor(p *Proc, processors []*Processor) int {
	return int(p.procId) % len(processors)
}

// DynamicPolicy picks the processor with the least outstanding work,
// the lowest index winning ties.
type DynamicPolicy struct{}

func (DynamicPolicy) Name() string {
	return POLICY_DYNAMIC
}

func (DynamicPolicy) selectProcessor(p *Proc, processors []*Processor) int {
	loads := make([]Twork, len(processors))
	for i, pr := range processors {
		loads[i] = pr.currentLoad
	}
	return findMinIndex(loads)
}

// AdaptivePolicy scores each processor by outstanding work plus a penalty per
// resident proc, so a long queue of short procs still repels new work.
type AdaptivePolicy struct {
	queueWeight Twork
}

func (ap AdaptivePolicy) Name() string {
	return POLICY_ADAPTIVE
}

func (ap AdaptivePolicy) selectProcessor(p *Proc, processors []*Processor) int {
	scores := make([]Twork, len(processors))
	for i, pr := range processors {
		scores[i] = pr.currentLoad + ap.queueWeight*Twork(pr.residentCount())
	}
	return findMinIndex(scores)
}

func policyByName(name string, queueWeight Twork) (PlacementPolicy, error) {
	switch name {
	case POLICY_STATIC:
		return StaticPolicy{}, nil
	case POLICY_DYNAMIC:
		return DynamicPolicy{}, nil
	case POLICY_ADAPTIVE:
		return AdaptivePolicy{queueWeight: queueWeight}, nil
	default:
		return nil, fmt.Errorf("unknown placement policy %q", name)
	}
}
