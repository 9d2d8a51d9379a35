package simbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcStartsNew(t *testing.T) {
	p := newProc(0, 0, 3, 1)
	assert.Equal(t, NEW, p.state)
	assert.Equal(t, Twork(3), p.remainingTime)
	assert.Equal(t, Twork(3), p.burstTime)
	assert.False(t, p.assignedProc.Present())
	assert.False(t, p.startTime.Present())
	assert.False(t, p.completionTime.Present())
}

func TestProcRunOneTick(t *testing.T) {
	p := newProc(0, 0, 2, 0)

	ran, done := p.runOneTick()
	assert.Equal(t, Twork(1), ran)
	assert.False(t, done)
	assert.Equal(t, Twork(1), p.remainingTime)

	ran, done = p.runOneTick()
	assert.Equal(t, Twork(1), ran)
	assert.True(t, done)
	assert.Equal(t, Twork(0), p.remainingTime)

	// out of work; running again does nothing
	ran, done = p.runOneTick()
	assert.Equal(t, Twork(0), ran)
	assert.True(t, done)
	assert.Equal(t, Twork(0), p.remainingTime)
}

func TestProcTurnaround(t *testing.T) {
	p := newProc(4, 2, 3, 0)

	_, ok := p.turnaroundTime()
	assert.False(t, ok)
	_, ok = p.waitingTime()
	assert.False(t, ok)

	// finished on tick 6 means it spanned ticks 2..6
	p.completionTime.Set(6)
	turnaround, ok := p.turnaroundTime()
	assert.True(t, ok)
	assert.Equal(t, Ttick(5), turnaround)

	waiting, ok := p.waitingTime()
	assert.True(t, ok)
	assert.Equal(t, Ttick(2), waiting)
}

func TestProcString(t *testing.T) {
	p := newProc(7, 1, 5, 3)
	str := p.String()
	assert.Contains(t, str, "7:")
	assert.Contains(t, str, "NEW")
	assert.Contains(t, str, "on: -1")
}
