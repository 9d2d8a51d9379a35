package simbal

import (
	"fmt"

	"github.com/markphelps/optional"
)

// Processor is one CPU in the pool. Each tick it gives a single unit of work
// to the head of its queue; everything behind the head waits its turn.
type Processor struct {
	id          Tid
	q           *Queue
	currentLoad Twork
	busyTicks   Ttick
}

func newProcessor(id Tid) *Processor {
	return &Processor{
		id: id,
		q:  newQueue(),
	}
}

func (pr *Processor) String() string {
	str := fmt.Sprintf("{processor %d: load %d, q: \n", pr.id, pr.currentLoad)
	for _, p := range pr.q.getQ() {
		str += "    " + p.String() + "\n"
	}
	str += "}"
	return str
}

// add appends p to the tail of the run queue and takes ownership of it. The
// proc's back-reference and state are fixed up here, at the mutation site, so
// the two sides can never disagree.
func (pr *Processor) add(p *Proc) {
	pr.q.enq(p)
	p.assignedProc.Set(int(pr.id))
	p.state = READY
	pr.recomputeLoad()
}

// remove detaches the proc with the given id and clears its back-reference.
// Removing an id that is not resident here is a no-op and reports false.
func (pr *Processor) remove(id Tid) (*Proc, bool) {
	p, found := pr.q.removeById(id)
	if !found {
		return nil, false
	}
	p.assignedProc = optional.Int{}
	pr.recomputeLoad()
	return p, true
}

// runHead hands this tick's unit of work to the head of the queue. Returns
// the proc that ran (nil if the queue is empty) and whether it finished.
func (pr *Processor) runHead(currTick Ttick) (*Proc, bool) {
	head := pr.q.peek()
	if head == nil {
		return nil, false
	}
	if !head.startTime.Present() {
		head.startTime.Set(int(currTick))
	}
	head.state = RUNNING
	ran, done := head.runOneTick()
	if ran > 0 {
		pr.busyTicks += 1
	}
	pr.recomputeLoad()
	return head, done
}

func (pr *Processor) residentCount() int {
	return pr.q.qlen()
}

func (pr *Processor) recomputeLoad() {
	pr.currentLoad = pr.q.totalRemaining()
}
