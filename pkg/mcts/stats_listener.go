package mcts

import "github.com/IlikeChooros/go-connect4/pkg/connect4"

// Current search statistics handed to listener callbacks
type ListenerStats struct {
	Cycles     int
	TimeMs     int
	Cps        uint32
	MaxDepth   int
	BestColumn connect4.Column
	BestVisits int
}

// Listener function callback, receives current search statistics
type ListenerFunc func(ListenerStats)

type StatsListener struct {
	// called every N cycles, see SetCycleInterval
	onCycle ListenerFunc

	// called once, when the search stops
	onStop ListenerFunc

	nCycles int
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on cycle callback, called every N full cycles, failing to set
// the interval will make the listener call on every cycle
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

// Attach 'on search end' callback, called once when the budget is exhausted
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

// Call the OnCycle listener every n cycles
func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	listener.nCycles = max(1, n)
	return listener
}
