package simbal

import "fmt"

type Tid int

type Ttick int

// Twork counts work units; a proc's remaining burst and a processor's load
// are both sums of these
type Twork int

func (t Ttick) String() string {
	return fmt.Sprintf("%dT", int(t))
}

// lifecycle states of a proc; a proc only ever moves forward through these,
// except READY<->RUNNING while it is resident on a processor
type Tstate int

const (
	NEW Tstate = iota
	READY
	RUNNING
	TERMINATED
)

func (s Tstate) String() string {
	return []string{"NEW", "READY", "RUNNING", "TERMINATED"}[s]
}
