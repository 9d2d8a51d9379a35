package simbal

import (
	"strconv"

	"github.com/markphelps/optional"
)

// Proc is one simulated process. The world owns every proc it has admitted;
// a proc additionally sits on exactly one processor's queue from placement
// until it terminates.
type Proc struct {
	procId         Tid
	arrivalTime    Ttick
	burstTime      Twork
	remainingTime  Twork
	priority       int // carried through the run, read by no policy yet
	state          Tstate
	assignedProc   optional.Int
	startTime      optional.Int
	completionTime optional.Int
}

func newProc(procId Tid, arrivalTime Ttick, burstTime Twork, priority int) *Proc {
	return &Proc{
		procId:        procId,
		arrivalTime:   arrivalTime,
		burstTime:     burstTime,
		remainingTime: burstTime,
		priority:      priority,
		state:         NEW,
	}
}

func (p *Proc) String() string {
	return strconv.Itoa(int(p.procId)) + ": " +
		"arrived: " + p.arrivalTime.String() +
		", state: " + p.state.String() +
		", burst: " + strconv.Itoa(int(p.burstTime)) +
		", left: " + strconv.Itoa(int(p.remainingTime)) +
		", on: " + strconv.Itoa(p.assignedProc.OrElse(-1)) +
		", prio: " + strconv.Itoa(p.priority)
}

// runOneTick burns one unit of work. Returns how much actually ran (0 for an
// already-finished proc) and whether the proc is now out of work.
func (p *Proc) runOneTick() (Twork, bool) {
	if p.remainingTime <= 0 {
		return 0, true
	}
	p.remainingTime -= 1
	return 1, p.remainingTime == 0
}

func (p *Proc) terminated() bool {
	return p.state == TERMINATED
}

// turnaroundTime counts the ticks from arrival through the tick the proc
// finished, inclusive of the finishing tick. Only meaningful once terminated.
func (p *Proc) turnaroundTime() (Ttick, bool) {
	done, err := p.completionTime.Get()
	if err != nil {
		return 0, false
	}
	return Ttick(done) + 1 - p.arrivalTime, true
}

func (p *Proc) waitingTime() (Ttick, bool) {
	turnaround, ok := p.turnaroundTime()
	if !ok {
		return 0, false
	}
	return turnaround - Ttick(p.burstTime), true
}
