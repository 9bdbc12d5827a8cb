package mcts

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const dotGraphName = "mcts"

// WriteDOT renders the last search's tree as a Graphviz digraph, down to
// 'maxDepth' levels below the root (0 means the whole tree). Nodes are
// labeled with the column played, visit count and mean reward.
func (e *Engine) WriteDOT(w io.Writer, maxDepth int) error {
	if e.root == nil {
		return errors.New("mcts: no search tree to render, run Search first")
	}

	graph := gographviz.NewGraph()
	if err := graph.SetName(dotGraphName); err != nil {
		return err
	}
	if err := graph.SetDir(true); err != nil {
		return err
	}

	next := 0
	if err := addDotNode(graph, e.root, &next, maxDepth, 0, -1); err != nil {
		return err
	}

	_, err := io.WriteString(w, graph.String())
	return err
}

func addDotNode(graph *gographviz.Graph, node *searchNode, next *int, maxDepth, depth, parent int) error {
	id := *next
	*next++

	label := "root"
	if len(node.State) > 0 {
		label = fmt.Sprintf("col %d", lastMove(node))
	}
	mean := 0.0
	if node.Visits > 0 {
		mean = node.Reward / float64(node.Visits)
	}

	attrs := map[string]string{
		"label": fmt.Sprintf("\"%s\\nn=%d q=%.2f\"", label, node.Visits, mean),
		"shape": "box",
	}
	if err := graph.AddNode(dotGraphName, dotNodeName(id), attrs); err != nil {
		return err
	}
	if parent >= 0 {
		if err := graph.AddEdge(dotNodeName(parent), dotNodeName(id), true, nil); err != nil {
			return err
		}
	}

	if maxDepth > 0 && depth >= maxDepth {
		return nil
	}
	for _, child := range node.Children {
		if err := addDotNode(graph, child, next, maxDepth, depth+1, id); err != nil {
			return err
		}
	}
	return nil
}

func dotNodeName(id int) string {
	return fmt.Sprintf("n%d", id)
}
