package search

import "container/heap"

// Frontier orders the nodes waiting to be expanded
type Frontier interface {
	// Enqueue adds a batch of nodes, typically the children of one node
	Enqueue(nodes ...*Node)
	// RemoveFront removes and returns the next node, or nil when empty
	RemoveFront() *Node
	Len() int
}

// FIFO is the breadth-first frontier
type FIFO struct {
	nodes []*Node
	head  int
}

// NewFIFO creates an empty queue
func NewFIFO() *FIFO {
	return &FIFO{}
}

func (q *FIFO) Enqueue(nodes ...*Node) {
	q.nodes = append(q.nodes, nodes...)
}

func (q *FIFO) RemoveFront() *Node {
	if q.head == len(q.nodes) {
		return nil
	}
	n := q.nodes[q.head]
	q.nodes[q.head] = nil
	q.head++
	// reclaim the consumed prefix once it dominates the buffer
	if q.head > 1024 && q.head*2 > len(q.nodes) {
		q.nodes = append([]*Node(nil), q.nodes[q.head:]...)
		q.head = 0
	}
	return n
}

func (q *FIFO) Len() int {
	return len(q.nodes) - q.head
}

// LIFO is the depth-first frontier. A batch is pushed so that its first
// node is removed first.
type LIFO struct {
	nodes []*Node
}

// NewLIFO creates an empty stack
func NewLIFO() *LIFO {
	return &LIFO{}
}

func (s *LIFO) Enqueue(nodes ...*Node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		s.nodes = append(s.nodes, nodes[i])
	}
}

func (s *LIFO) RemoveFront() *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	last := len(s.nodes) - 1
	n := s.nodes[last]
	s.nodes[last] = nil
	s.nodes = s.nodes[:last]
	return n
}

func (s *LIFO) Len() int {
	return len(s.nodes)
}

// PriorityFunc scores a node; lower scores are removed first
type PriorityFunc func(n *Node) int

// Priority is a min-heap frontier. Equal scores are removed in insertion
// order.
type Priority struct {
	items    priorityQueue
	priority PriorityFunc
	seq      uint64
}

// NewPriority creates a frontier ordered by fn
func NewPriority(fn PriorityFunc) *Priority {
	return &Priority{priority: fn}
}

// NewGreedy orders nodes by the heuristic estimate of their state
func NewGreedy(h Heuristic) *Priority {
	return NewPriority(func(n *Node) int {
		return h.Estimate(n.State)
	})
}

// NewAStar orders nodes by estimate plus accumulated path cost
func NewAStar(h Heuristic) *Priority {
	return NewPriority(func(n *Node) int {
		return h.Estimate(n.State) + n.PathCost
	})
}

func (p *Priority) Enqueue(nodes ...*Node) {
	for _, n := range nodes {
		heap.Push(&p.items, &priorityItem{node: n, score: p.priority(n), seq: p.seq})
		p.seq++
	}
}

func (p *Priority) RemoveFront() *Node {
	if p.items.Len() == 0 {
		return nil
	}
	return heap.Pop(&p.items).(*priorityItem).node
}

func (p *Priority) Len() int {
	return p.items.Len()
}

type priorityItem struct {
	node  *Node
	score int
	seq   uint64
}

// priorityQueue implements heap.Interface over score, then seq
type priorityQueue []*priorityItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].score != pq[j].score {
		return pq[i].score < pq[j].score
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(*priorityItem)) }

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
