package mcts

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Search invoked with no budget, both budgets, or a non-positive value
var ErrBudgetInvalid = errors.New("mcts: invalid search budget")

const (
	DefaultMovetimeLimit int = -1
	DefaultCyclesLimit   int = -1
)

// Search budget: either a wall-clock time in milliseconds, or a number of
// full selection-simulation-backpropagation cycles. Exactly one must be set.
type Limits struct {
	Movetime int
	Cycles   int
}

func DefaultLimits() *Limits {
	return &Limits{
		Movetime: DefaultMovetimeLimit,
		Cycles:   DefaultCyclesLimit,
	}
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

// Set the maximum time for the engine to think
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	return l
}

// Set the number of search cycles
func (l *Limits) SetCycles(cycles int) *Limits {
	l.Cycles = cycles
	return l
}

// Exactly one budget kind, with a positive value
func (l *Limits) validate() error {
	timeSet := l.Movetime != DefaultMovetimeLimit
	cyclesSet := l.Cycles != DefaultCyclesLimit

	switch {
	case timeSet == cyclesSet:
		return errors.Wrap(ErrBudgetInvalid, "exactly one of movetime and cycles must be set")
	case timeSet && l.Movetime <= 0:
		return errors.Wrapf(ErrBudgetInvalid, "movetime %dms", l.Movetime)
	case cyclesSet && l.Cycles <= 0:
		return errors.Wrapf(ErrBudgetInvalid, "cycles %d", l.Cycles)
	}
	return nil
}

// Wheter the search should stop, checked after each completed cycle
func (l *Limits) exhausted(timer *_Timer, cycles int) bool {
	if l.Cycles != DefaultCyclesLimit {
		return cycles >= l.Cycles
	}
	return timer.IsEnd()
}
