package simbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func poolWithLoads(loads ...Twork) []*Processor {
	pool := make([]*Processor, len(loads))
	for i, l := range loads {
		pool[i] = newProcessor(Tid(i))
		if l > 0 {
			pool[i].add(newProc(Tid(100+i), 0, l, 0))
		}
	}
	return pool
}

func TestStaticPolicy(t *testing.T) {
	pool := poolWithLoads(0, 0, 0)
	pol := StaticPolicy{}
	assert.Equal(t, 0, pol.selectProcessor(newProc(0, 0, 1, 0), pool))
	assert.Equal(t, 1, pol.selectProcessor(newProc(1, 0, 1, 0), pool))
	assert.Equal(t, 2, pol.selectProcessor(newProc(2, 0, 1, 0), pool))
	assert.Equal(t, 0, pol.selectProcessor(newProc(3, 0, 1, 0), pool))

	// load plays no part
	pool[0].add(newProc(50, 0, 99, 0))
	assert.Equal(t, 0, pol.selectProcessor(newProc(6, 0, 1, 0), pool))
}

func TestDynamicPolicy(t *testing.T) {
	pool := poolWithLoads(5, 3, 9)
	pol := DynamicPolicy{}
	assert.Equal(t, 1, pol.selectProcessor(newProc(0, 0, 1, 0), pool))
}

func TestDynamicPolicyTieBreak(t *testing.T) {
	pool := poolWithLoads(4, 2, 2)
	pol := DynamicPolicy{}
	// first of the tied minimums wins
	assert.Equal(t, 1, pol.selectProcessor(newProc(0, 0, 1, 0), pool))
}

func TestAdaptivePolicy(t *testing.T) {
	pool := poolWithLoads(0, 0)
	for i := 0; i < 3; i++ {
		pool[0].add(newProc(Tid(10+i), 0, 1, 0))
	}
	pool[1].add(newProc(20, 0, 10, 0))

	// 3 + 5*3 = 18 against 10 + 5*1 = 15
	adaptive := AdaptivePolicy{queueWeight: 5}
	assert.Equal(t, 1, adaptive.selectProcessor(newProc(0, 0, 1, 0), pool))

	// raw load alone would have said otherwise
	dynamic := DynamicPolicy{}
	assert.Equal(t, 0, dynamic.selectProcessor(newProc(0, 0, 1, 0), pool))
}

func TestAdaptivePolicyTieBreak(t *testing.T) {
	pool := poolWithLoads(3, 3)
	adaptive := AdaptivePolicy{queueWeight: 5}
	assert.Equal(t, 0, adaptive.selectProcessor(newProc(0, 0, 1, 0), pool))
}

// whatever dynamic picks, no other processor can be strictly lighter at that
// moment
func TestDynamicPickIsNeverBeaten(t *testing.T) {
	lg := newRandomLoadGen(2.0, 1, 20, 7)
	pool := poolWithLoads(0, 0, 0, 0)
	pol := DynamicPolicy{}
	for i := 0; i < 200; i++ {
		spec := lg.genOne(0)
		p := newProc(Tid(i), 0, spec.burst, spec.priority)
		idx := pol.selectProcessor(p, pool)
		for j := range pool {
			assert.True(t, pool[idx].currentLoad <= pool[j].currentLoad,
				"pick %d (load %v) beaten by %d (load %v)", idx, pool[idx].currentLoad, j, pool[j].currentLoad)
		}
		pool[idx].add(p)
	}
}

// same property for adaptive, over its combined score
func TestAdaptivePickIsNeverBeaten(t *testing.T) {
	lg := newRandomLoadGen(2.0, 1, 20, 13)
	pool := poolWithLoads(0, 0, 0, 0)
	pol := AdaptivePolicy{queueWeight: DEFAULT_QUEUE_WEIGHT}
	score := func(pr *Processor) Twork {
		return pr.currentLoad + pol.queueWeight*Twork(pr.residentCount())
	}
	for i := 0; i < 200; i++ {
		spec := lg.genOne(0)
		p := newProc(Tid(i), 0, spec.burst, spec.priority)
		idx := pol.selectProcessor(p, pool)
		for j := range pool {
			assert.True(t, score(pool[idx]) <= score(pool[j]),
				"pick %d (score %v) beaten by %d (score %v)", idx, score(pool[idx]), j, score(pool[j]))
		}
		pool[idx].add(p)
	}
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{POLICY_STATIC, POLICY_DYNAMIC, POLICY_ADAPTIVE} {
		pol, err := policyByName(name, DEFAULT_QUEUE_WEIGHT)
		assert.Nil(t, err)
		assert.Equal(t, name, pol.Name())
	}
	_, err := policyByName("round-robin", DEFAULT_QUEUE_WEIGHT)
	assert.NotNil(t, err)
}
