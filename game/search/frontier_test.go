package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costNodes(costs ...int) []*Node {
	nodes := make([]*Node, len(costs))
	for i, c := range costs {
		nodes[i] = &Node{PathCost: c, Depth: i}
	}
	return nodes
}

func drain(f Frontier) []*Node {
	var out []*Node
	for f.Len() > 0 {
		out = append(out, f.RemoveFront())
	}
	return out
}

func TestFIFO(t *testing.T) {
	q := NewFIFO()
	nodes := costNodes(0, 1, 2, 3)

	q.Enqueue(nodes[0], nodes[1])
	require.Same(t, nodes[0], q.RemoveFront())
	q.Enqueue(nodes[2], nodes[3])

	assert.Equal(t, []*Node{nodes[1], nodes[2], nodes[3]}, drain(q))
	assert.Nil(t, q.RemoveFront())
	assert.Zero(t, q.Len())
}

func TestFIFO_Compaction(t *testing.T) {
	q := NewFIFO()
	for i := 0; i < 5000; i++ {
		q.Enqueue(&Node{Depth: i})
	}
	for i := 0; i < 5000; i++ {
		n := q.RemoveFront()
		require.NotNil(t, n)
		require.Equal(t, i, n.Depth)
		if i%2 == 0 {
			q.Enqueue(&Node{Depth: 5000 + i/2})
		}
	}
	assert.Equal(t, 2500, q.Len())
	assert.Equal(t, 5000, q.RemoveFront().Depth)
}

func TestLIFO_BatchOrder(t *testing.T) {
	s := NewLIFO()
	nodes := costNodes(0, 1, 2, 3, 4)

	// the first node of a batch comes out first
	s.Enqueue(nodes[0], nodes[1], nodes[2])
	require.Same(t, nodes[0], s.RemoveFront())

	// a newer batch is explored before older siblings
	s.Enqueue(nodes[3], nodes[4])
	assert.Equal(t, []*Node{nodes[3], nodes[4], nodes[1], nodes[2]}, drain(s))
	assert.Nil(t, s.RemoveFront())
}

func TestPriority_StableTies(t *testing.T) {
	p := NewPriority(func(n *Node) int { return n.PathCost })
	nodes := costNodes(2, 1, 2, 1, 0)

	p.Enqueue(nodes[:4]...)
	p.Enqueue(nodes[4])

	assert.Equal(t, []*Node{nodes[4], nodes[1], nodes[3], nodes[0], nodes[2]}, drain(p))
	assert.Nil(t, p.RemoveFront())
}

func TestPriority_Deterministic(t *testing.T) {
	run := func() []int {
		p := NewPriority(func(n *Node) int { return n.PathCost % 3 })
		for i := 0; i < 50; i++ {
			p.Enqueue(&Node{PathCost: i, Depth: i})
		}
		var order []int
		for _, n := range drain(p) {
			order = append(order, n.Depth)
		}
		return order
	}

	first := run()
	require.Len(t, first, 50)
	assert.Equal(t, []int{0, 3, 6}, first[:3])
	assert.Equal(t, first, run())
}

func TestAStarOrdersByEstimatePlusCost(t *testing.T) {
	a := NewAStar(MinPartSize{})
	g := NewGreedy(MinPartSize{})

	cheap := &Node{State: triad(), PathCost: 1}
	pricey := &Node{State: triad(), PathCost: 5}
	done := &Node{State: assembledPair(), PathCost: 9}

	a.Enqueue(pricey, done, cheap)
	assert.Equal(t, []*Node{cheap, pricey, done}, drain(a))

	g.Enqueue(pricey, done, cheap)
	assert.Equal(t, []*Node{done, pricey, cheap}, drain(g))
}
