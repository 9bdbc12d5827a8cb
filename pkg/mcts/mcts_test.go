package mcts

import (
	"fmt"
	"os"
	"testing"

	"github.com/IlikeChooros/go-connect4/pkg/connect4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetSeedGeneratorFn(func() int64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", SeedGeneratorFn())

	os.Exit(m.Run())
}

func legalColumns(t *testing.T, history []connect4.Column) []connect4.Column {
	t.Helper()
	session, err := connect4.NewSessionWithHistory(history)
	require.NoError(t, err)
	return session.LegalMoves().Slice()
}

func TestSearchReturnsLegalColumn(t *testing.T) {
	histories := [][]connect4.Column{
		{},
		{3, 3, 4, 2, 2, 4, 5},
		{0, 0, 0, 0, 0, 0}, // column 0 full
	}

	for _, history := range histories {
		t.Run(fmt.Sprintf("history=%v", history), func(t *testing.T) {
			engine := NewEngine()
			column, err := engine.Search(history, DefaultLimits().SetCycles(100))
			require.NoError(t, err)
			assert.Contains(t, legalColumns(t, history), column)
		})
	}
}

func TestSearchTinyBudget(t *testing.T) {
	engine := NewEngine()
	column, err := engine.Search([]connect4.Column{3, 3, 4, 2, 2, 4, 5}, DefaultLimits().SetCycles(5))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int(column), 0)
	assert.Less(t, int(column), connect4.NumColumns)
	assert.Equal(t, 5, engine.Cycles())
}

func TestVisitAccounting(t *testing.T) {
	const cycles = 250

	engine := NewEngine()
	_, err := engine.Search(nil, DefaultLimits().SetCycles(cycles))
	require.NoError(t, err)

	root := engine.Root()
	require.NotNil(t, root)
	assert.Equal(t, cycles, root.Visits, "each cycle increments the root once")

	// Every playout descends through exactly one root child
	childVisits := 0
	for _, child := range root.Children {
		childVisits += child.Visits
	}
	assert.Equal(t, root.Visits, childVisits)
}

func TestRewardsBounded(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Search(nil, DefaultLimits().SetCycles(300))
	require.NoError(t, err)

	var walk func(n *searchNode)
	walk = func(n *searchNode) {
		if n.Reward < 0 || n.Reward > float64(n.Visits) {
			t.Fatalf("reward %f out of bounds for %d visits (state %v)", n.Reward, n.Visits, n.State)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(engine.Root())
}

func TestExpansionMatchesLegalMoves(t *testing.T) {
	history := []connect4.Column{0, 0, 0, 0, 0, 0}

	engine := NewEngine()
	_, err := engine.Search(history, DefaultLimits().SetCycles(50))
	require.NoError(t, err)

	root := engine.Root()
	require.Len(t, root.Children, 6, "one child per legal move, full column omitted")
	for i, child := range root.Children {
		assert.Equal(t, connect4.Column(i+1), child.State[len(child.State)-1])
		assert.Equal(t, history, child.State[:len(history)])
	}
}

func TestExpandedFlag(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Search(nil, DefaultLimits().SetCycles(100))
	require.NoError(t, err)

	root := engine.Root()
	assert.True(t, root.Expanded, "root fully expanded after 100 cycles over 7 children")
	for _, child := range root.Children {
		assert.Positive(t, child.Visits)
	}
}

func TestBudgetValidation(t *testing.T) {
	cases := []struct {
		name   string
		limits *Limits
	}{
		{"nil", nil},
		{"unset", DefaultLimits()},
		{"both set", DefaultLimits().SetMovetime(100).SetCycles(100)},
		{"zero cycles", DefaultLimits().SetCycles(0)},
		{"negative movetime", DefaultLimits().SetMovetime(-5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine()
			_, err := engine.Search(nil, tc.limits)
			assert.ErrorIs(t, err, ErrBudgetInvalid)
		})
	}
}

func TestMovetimeBudget(t *testing.T) {
	engine := NewEngine()
	column, err := engine.Search(nil, DefaultLimits().SetMovetime(50))
	require.NoError(t, err)

	assert.Contains(t, legalColumns(t, nil), column)
	assert.Positive(t, engine.Cycles())
	assert.GreaterOrEqual(t, engine.Elapsed(), 50)
}

func TestSearchDeterministicWithSeed(t *testing.T) {
	history := []connect4.Column{3, 3, 4, 2, 2, 4, 5}

	first, err := NewEngine().Search(history, DefaultLimits().SetCycles(200))
	require.NoError(t, err)

	second, err := NewEngine().Search(history, DefaultLimits().SetCycles(200))
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed, same budget, same column")
}

func TestSearchManySeeds(t *testing.T) {
	defer SetSeedGeneratorFn(func() int64 { return 42 })

	legal := legalColumns(t, nil)
	for seed := int64(1); seed <= 20; seed++ {
		seed := seed
		SetSeedGeneratorFn(func() int64 { return seed })

		column, err := NewEngine().Search(nil, DefaultLimits().SetCycles(50))
		require.NoError(t, err)
		assert.Contains(t, legal, column, "seed %d", seed)
	}
}

func TestSearchTreeDiscardedBetweenCalls(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Search(nil, DefaultLimits().SetCycles(50))
	require.NoError(t, err)
	firstRoot := engine.Root()

	_, err = engine.Search([]connect4.Column{3}, DefaultLimits().SetCycles(50))
	require.NoError(t, err)

	assert.NotSame(t, firstRoot, engine.Root())
	assert.Equal(t, []connect4.Column{3}, engine.Root().State)
	assert.Equal(t, 50, engine.Root().Visits)
}

func TestListener(t *testing.T) {
	const cycles = 40

	onCycle := 0
	onStop := 0

	listener := NewStatsListener()
	listener.
		OnCycle(func(stats ListenerStats) {
			onCycle++
			assert.Positive(t, stats.Cycles)
		}).
		OnStop(func(stats ListenerStats) {
			onStop++
			assert.Equal(t, cycles, stats.Cycles)
			assert.Positive(t, stats.BestVisits)
		}).
		SetCycleInterval(10)

	engine := NewEngine()
	engine.SetListener(listener)

	_, err := engine.Search(nil, DefaultLimits().SetCycles(cycles))
	require.NoError(t, err)

	assert.Equal(t, 4, onCycle)
	assert.Equal(t, 1, onStop)
}

func TestRewardFor(t *testing.T) {
	cases := []struct {
		plies  int
		result connect4.Result
		want   float64
	}{
		{0, connect4.ResultRedWins, 1},
		{0, connect4.ResultYellowWins, 0},
		{1, connect4.ResultYellowWins, 1},
		{1, connect4.ResultRedWins, 0},
		{2, connect4.ResultRedWins, 1},
		{3, connect4.ResultDraw, 0.5},
		{4, connect4.ResultDraw, 0.5},
	}

	for _, tc := range cases {
		state := make([]connect4.Column, tc.plies)
		assert.Equal(t, tc.want, rewardFor(state, tc.result),
			"plies=%d result=%v", tc.plies, tc.result)
	}
}

func TestMaxDepthGrows(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Search(nil, DefaultLimits().SetCycles(100))
	require.NoError(t, err)

	// Every playout runs to a terminal position, so the deepest path is
	// at least a few plies long even with a small budget
	assert.GreaterOrEqual(t, engine.MaxDepth(), 4)
	assert.LessOrEqual(t, engine.MaxDepth(), connect4.MaxPlies)
}

func BenchmarkSearch(b *testing.B) {
	engine := NewEngine()
	limits := DefaultLimits().SetCycles(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Search(nil, limits); err != nil {
			b.Fatal(err)
		}
	}
}
