package mcts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDOT(t *testing.T) {
	engine := NewEngine()

	var empty strings.Builder
	assert.Error(t, engine.WriteDOT(&empty, 0), "no tree before the first search")

	_, err := engine.Search(nil, DefaultLimits().SetCycles(30))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, engine.WriteDOT(&out, 1))

	dot := out.String()
	assert.Contains(t, dot, "digraph mcts")
	assert.Contains(t, dot, "root")

	// Depth 1 keeps the root and its 7 children only
	assert.Equal(t, 7, strings.Count(dot, "->"))
}
