package simbal

import "fmt"

// Balancer owns the processor pool. It places every arriving proc according
// to the active policy and, when asked, migrates work off the busiest
// processor onto the least busy one.
type Balancer struct {
	processors     []*Processor
	policy         PlacementPolicy
	threshold      Twork
	migrationCount int
	tr             *tracer
}

func newBalancer(policyName string, nProcessors int, threshold Twork, queueWeight Twork, tr *tracer) (*Balancer, error) {
	if nProcessors <= 0 {
		return nil, fmt.Errorf("need at least one processor, got %d", nProcessors)
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("imbalance threshold must be positive, got %d", threshold)
	}
	policy, err := policyByName(policyName, queueWeight)
	if err != nil {
		return nil, err
	}
	b := &Balancer{
		processors: make([]*Processor, nProcessors),
		policy:     policy,
		threshold:  threshold,
		tr:         tr,
	}
	for i := range b.processors {
		b.processors[i] = newProcessor(Tid(i))
	}
	return b, nil
}

// assign hands p to the processor the active policy picks. Placement always
// succeeds; the pool is non-empty by construction.
func (b *Balancer) assign(p *Proc, currTick Ttick) *Processor {
	chosen := b.processors[b.policy.selectProcessor(p, b.processors)]
	chosen.add(p)
	b.tr.logWrite(PLACED_PROCS, fmt.Sprintf("%v, %v, %v, %v, %v\n",
		currTick, p.procId, chosen.id, b.policy.Name(), p.remainingTime))
	return chosen
}

// balance moves at most one proc per call, from the first most loaded
// processor to the first least loaded one. While the spread sits within the
// threshold nothing moves. The candidate is the resident with the least work
// left, earliest-queued winning ties.
func (b *Balancer) balance(currTick Ttick) bool {
	loads := b.loads()
	maxIdx := findMaxIndex(loads)
	minIdx := findMinIndex(loads)
	if loads[maxIdx]-loads[minIdx] <= b.threshold {
		return false
	}

	overloaded := b.processors[maxIdx]
	candidate := overloaded.q.minRemaining()
	if candidate == nil {
		// shouldn't happen while the spread is positive, but don't crash on it
		return false
	}
	moved, _ := overloaded.remove(candidate.procId)
	b.processors[minIdx].add(moved)
	b.migrationCount += 1
	b.tr.logWrite(MIGRATED_PROCS, fmt.Sprintf("%v, %v, %v, %v, %v\n",
		currTick, moved.procId, overloaded.id, b.processors[minIdx].id, moved.remainingTime))
	return true
}

func (b *Balancer) loads() []Twork {
	loads := make([]Twork, len(b.processors))
	for i, pr := range b.processors {
		loads[i] = pr.currentLoad
	}
	return loads
}
