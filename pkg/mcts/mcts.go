// Package mcts computes a Connect Four move with a Monte Carlo tree search:
// UCT selection over a zipper-focused tree, uniform-random playouts driven
// through a game session, and reward backpropagation that credits each node
// to Yellow when its move prefix has odd length and to Red otherwise.
package mcts

import (
	"math/rand"

	"github.com/IlikeChooros/go-connect4/pkg/connect4"
	"github.com/IlikeChooros/go-connect4/pkg/tree"
	"github.com/pkg/errors"
)

type searchNode = tree.Node[connect4.Column]

// Engine runs searches one at a time. It owns the session used as the
// playout simulator and the random source; concurrent searches need
// independent engines, no state is shared between them.
type Engine struct {
	session  *connect4.Session
	random   *rand.Rand
	listener StatsListener
	timer    *_Timer
	root     *searchNode
	cycles   int
	maxdepth int
}

// Create a new engine, seeded through SeedGeneratorFn
func NewEngine() *Engine {
	return &Engine{
		session:  connect4.NewSession(),
		random:   rand.New(rand.NewSource(SeedGeneratorFn())),
		listener: NewStatsListener(),
		timer:    _NewTimer(),
	}
}

// Set a custom stats listener
func (e *Engine) SetListener(listener StatsListener) {
	listener.nCycles = max(1, listener.nCycles)
	e.listener = listener
}

// Get the stats listener
func (e *Engine) StatsListener() *StatsListener {
	return &e.listener
}

// Total number of cycles ran during the last search
func (e *Engine) Cycles() int {
	return e.cycles
}

// Maximum depth reached during the last search
func (e *Engine) MaxDepth() int {
	return e.maxdepth
}

// Milliseconds elapsed since the last search began
func (e *Engine) Elapsed() int {
	return e.timer.Deltatime()
}

// Get cycles per second statistic
func (e *Engine) Cps() uint32 {
	return uint32(e.cycles * 1000 / e.timer.Deltatime())
}

// Root of the last search's tree, valid until the next Search call
func (e *Engine) Root() *searchNode {
	return e.root
}

// Search runs the MCTS from the position reached by 'history' and returns
// the most-visited root child's column. The history must be a legal,
// non-terminal move sequence; the budget must name exactly one of movetime
// and cycles. A fresh tree is grown per call and kept only for inspection,
// never reused across calls.
func (e *Engine) Search(history []connect4.Column, limits *Limits) (connect4.Column, error) {
	if limits == nil {
		return 0, errors.Wrap(ErrBudgetInvalid, "nil limits")
	}
	if err := limits.validate(); err != nil {
		return 0, err
	}

	state := make([]connect4.Column, len(history))
	copy(state, history)

	e.root = &searchNode{State: state}
	e.cycles = 0
	e.maxdepth = 0
	e.timer.Movetime(limits.Movetime)
	e.timer.Reset()

	focus := tree.NewFocus(e.root)
	for {
		e.iterate(focus)
		e.cycles++

		if e.listener.onCycle != nil && e.cycles%e.listener.nCycles == 0 {
			e.listener.onCycle(e.listenerStats())
		}
		if limits.exhausted(e.timer, e.cycles) {
			break
		}
	}

	if e.listener.onStop != nil {
		e.listener.onStop(e.listenerStats())
	}

	best, _ := bestChild(e.root)
	return lastMove(best), nil
}

// One full cycle: reset-and-replay, selection, expansion with simulation,
// backpropagation. The focus starts and ends at the root.
func (e *Engine) iterate(focus *tree.Focus[connect4.Column]) {
	// Synchronize the session with the root position
	e.session.Reset()
	if _, err := e.session.MoveMany(focus.Node().State); err != nil {
		panic(errors.Wrap(err, "mcts: root history rejected by session"))
	}

	// Selection: follow the UCT argmax while the focus is expanded,
	// exiting early if the session reports a terminal result
	result := connect4.ResultNone
	for focus.Node().Expanded {
		e.down(focus, uctSelect(focus.Node()))

		snapshot, err := e.session.Move(lastMove(focus.Node()))
		if err != nil {
			panic(errors.Wrap(err, "mcts: selection move rejected"))
		}

		result = snapshot.Result
		if result.Terminal() {
			break
		}
	}

	// Expansion + simulation: attach children to fresh nodes, then walk
	// uniformly-random unvisited children until the game ends
	for !result.Terminal() {
		if len(focus.Node().Children) == 0 {
			e.expand(focus)
		}

		e.down(focus, e.pickUnvisited(focus.Node()))

		snapshot, err := e.session.Move(lastMove(focus.Node()))
		if err != nil {
			panic(errors.Wrap(err, "mcts: simulation move rejected"))
		}
		result = snapshot.Result
	}

	e.maxdepth = max(e.maxdepth, focus.Depth())

	// Backpropagation, up to and including the root
	for {
		focus.UpdateFocus(func(n *searchNode) {
			n.Visits++
			n.Reward += rewardFor(n.State, result)
			n.Expanded = allChildrenVisited(n)
		})

		if focus.AtRoot() {
			break
		}
		focus.Up()
	}
}

func (e *Engine) down(focus *tree.Focus[connect4.Column], i int) {
	if err := focus.Down(i); err != nil {
		panic(errors.Wrap(err, "mcts: focus descent failed"))
	}
}

// Attach one child per legal move of the session's current position, each
// a fresh node extending the focus's move prefix. Called at most once per
// node, only before its first descent.
func (e *Engine) expand(focus *tree.Focus[connect4.Column]) {
	parent := focus.Node()
	legal := e.session.LegalMoves()

	children := make([]*searchNode, legal.Size())
	for i, c := range legal.Slice() {
		state := make([]connect4.Column, len(parent.State)+1)
		copy(state, parent.State)
		state[len(parent.State)] = c
		children[i] = &searchNode{State: state}
	}

	focus.ReplaceChildren(children)
}

// Index of a uniformly-random unvisited child
func (e *Engine) pickUnvisited(node *searchNode) int {
	unvisited := make([]int, 0, len(node.Children))
	for i, child := range node.Children {
		if child.Visits == 0 {
			unvisited = append(unvisited, i)
		}
	}

	if len(unvisited) == 0 {
		panic("mcts: simulation reached a node with no unvisited children")
	}
	return unvisited[e.random.Intn(len(unvisited))]
}

func (e *Engine) listenerStats() ListenerStats {
	stats := ListenerStats{
		Cycles:   e.cycles,
		TimeMs:   e.timer.Deltatime(),
		Cps:      e.Cps(),
		MaxDepth: e.maxdepth,
	}
	if best, _ := bestChild(e.root); best != nil {
		stats.BestColumn = lastMove(best)
		stats.BestVisits = best.Visits
	}
	return stats
}

// Reward contribution of 'result' for the node identified by 'state'. The
// reward goes to Yellow when the prefix length is odd, to Red otherwise,
// and a draw is worth 0.5 to both.
func rewardFor(state []connect4.Column, result connect4.Result) float64 {
	perspective := connect4.Red
	if len(state)%2 == 1 {
		perspective = connect4.Yellow
	}

	switch result {
	case connect4.ResultYellowWins:
		if perspective == connect4.Yellow {
			return 1
		}
		return 0
	case connect4.ResultRedWins:
		if perspective == connect4.Red {
			return 1
		}
		return 0
	case connect4.ResultDraw:
		return 0.5
	}

	panic("mcts: backpropagation without a terminal result")
}

func allChildrenVisited(node *searchNode) bool {
	if len(node.Children) == 0 {
		return false
	}
	for _, child := range node.Children {
		if child.Visits == 0 {
			return false
		}
	}
	return true
}

// Most-visited child, ties broken by child index. Returns nil on a
// childless node.
func bestChild(node *searchNode) (*searchNode, int) {
	var best *searchNode
	index := -1
	for i, child := range node.Children {
		if best == nil || child.Visits > best.Visits {
			best = child
			index = i
		}
	}
	return best, index
}

func lastMove(node *searchNode) connect4.Column {
	return node.State[len(node.State)-1]
}
