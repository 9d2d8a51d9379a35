package simbal

// Queue holds the procs resident on a processor, in arrival order. The head
// is the proc that executes next tick.
type Queue struct {
	q []*Proc
}

func newQueue() *Queue {
	q := &Queue{q: make([]*Proc, 0)}
	return q
}

func (q *Queue) String() string {
	str := ""
	for _, p := range q.q {
		str += p.String() + " "
	}
	return str
}

func (q *Queue) enq(p *Proc) {
	q.q = append(q.q, p)
}

func (q *Queue) deq() *Proc {
	if len(q.q) == 0 {
		return nil
	}
	procSelected := q.q[0]
	q.q = q.q[1:]
	return procSelected
}

func (q *Queue) qlen() int {
	return len(q.q)
}

func (q *Queue) peek() *Proc {
	if len(q.q) == 0 {
		return nil
	}
	return q.q[0]
}

func (q *Queue) getQ() []*Proc {
	return q.q
}

// removes the proc with the given id, keeping the order of everyone else
func (q *Queue) removeById(id Tid) (*Proc, bool) {
	for i, p := range q.q {
		if p.procId == id {
			q.q = append(q.q[:i], q.q[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

// the proc with the least work left, earliest-queued winning ties
func (q *Queue) minRemaining() *Proc {
	if len(q.q) == 0 {
		return nil
	}
	remaining := make([]Twork, len(q.q))
	for i, p := range q.q {
		remaining[i] = p.remainingTime
	}
	return q.q[findMinIndex(remaining)]
}

// sum of work left across all queued procs; this is the processor's load
func (q *Queue) totalRemaining() Twork {
	var sum Twork
	for _, p := range q.q {
		sum += p.remainingTime
	}
	return sum
}
