package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/wricardo/robot-assembly/game/engine"
)

// Strategy names a frontier discipline
type Strategy string

const (
	BFS      Strategy = "BFS"
	DFS      Strategy = "DFS"
	ID       Strategy = "ID"
	GreedyH1 Strategy = "GREEDY_H1"
	GreedyH2 Strategy = "GREEDY_H2"
	AStarH1  Strategy = "ASTAR_H1"
	AStarH2  Strategy = "ASTAR_H2"
)

// Strategies lists every supported strategy
var Strategies = []Strategy{BFS, DFS, ID, GreedyH1, GreedyH2, AStarH1, AStarH2}

// ParseStrategy resolves a strategy name, ignoring case and surrounding space
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
}

// Heuristic returns the estimate used by greedy and A* strategies, or nil
func (s Strategy) Heuristic() Heuristic {
	switch s {
	case GreedyH1:
		return PartCount{}
	case GreedyH2:
		return TotalGap{}
	case AStarH1:
		return MinPartSize{}
	case AStarH2:
		return PairGap{}
	}
	return nil
}

// NewFrontier returns an empty frontier for s. ID uses a LIFO frontier that
// is recreated on every restart.
func (s Strategy) NewFrontier() Frontier {
	switch s {
	case BFS:
		return NewFIFO()
	case DFS, ID:
		return NewLIFO()
	case GreedyH1, GreedyH2:
		return NewGreedy(s.Heuristic())
	case AStarH1, AStarH2:
		return NewAStar(s.Heuristic())
	}
	return nil
}

// Progress is reported periodically while a run expands nodes
type Progress struct {
	Expanded    int `json:"expanded"`
	FrontierLen int `json:"frontier_len"`
	Depth       int `json:"depth"`
	PathCost    int `json:"path_cost"`
	DepthLimit  int `json:"depth_limit,omitempty"`
}

// ProgressFunc receives progress reports; it runs on the search goroutine
type ProgressFunc func(Progress)

// Options configures a run
type Options struct {
	// Dedupe skips a child whose grid was already enqueued with a path cost
	// at most the child's.
	Dedupe bool

	// Progress, if set, is called every ProgressInterval expansions.
	Progress         ProgressFunc
	ProgressInterval int

	// MaxExpansions, if > 0, stops the run with ErrBudgetExceeded.
	MaxExpansions int
}

// Option configures a run via functional arguments
type Option func(*Options)

// DefaultOptions returns options without dedupe, progress or budget
func DefaultOptions() Options {
	return Options{ProgressInterval: 1000}
}

// WithDedupe toggles repeated-state pruning
func WithDedupe(on bool) Option {
	return func(o *Options) { o.Dedupe = on }
}

// WithProgress installs a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithProgressInterval sets how many expansions separate progress reports
func WithProgressInterval(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.ProgressInterval = n
		}
	}
}

// WithMaxExpansions bounds the number of expanded nodes; 0 disables the bound
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxExpansions = n
		}
	}
}

// Result is the outcome of a run
type Result struct {
	Strategy Strategy `json:"strategy"`
	Found    bool     `json:"found"`

	// Path renders the solution from the root; empty when not found.
	Path      string            `json:"path,omitempty"`
	PathCost  int               `json:"path_cost"`
	Expanded  int               `json:"expanded"`
	Operators []engine.Operator `json:"operators,omitempty"`

	// DepthLimit is the final bound of an iterative deepening run.
	DepthLimit int `json:"depth_limit,omitempty"`

	// Solution is the goal node, LastNode the last node removed from the
	// frontier. Both are nil when nothing was removed.
	Solution *Node `json:"-"`
	LastNode *Node `json:"-"`
}

// Search runs the named strategy from g. A non-nil Result is returned along
// with ErrBudgetExceeded or a context error so callers can inspect how far
// the run got.
func Search(ctx context.Context, g *engine.Grid, strategy string, opts ...Option) (*Result, error) {
	s, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	problem := NewProblem(g)
	if s == ID {
		return IterativeDeepening(ctx, problem, opts...)
	}
	res, err := GeneralSearch(ctx, problem, s.NewFrontier(), opts...)
	if res != nil {
		res.Strategy = s
	}
	return res, err
}

// GeneralSearch expands nodes in the order given by frontier until a goal is
// removed or the frontier runs empty.
func GeneralSearch(ctx context.Context, problem *Problem, frontier Frontier, opts ...Option) (*Result, error) {
	r := newRunner(problem, opts)
	r.reset()
	frontier.Enqueue(NewRoot(problem.Initial))

	goal, _, err := r.loop(ctx, frontier, 0)
	return r.result(goal, 0), err
}

// IterativeDeepening runs depth-bounded DFS with bounds 1, 2, ... Nodes at
// the bound are removed but not expanded. The run reports no solution once a
// pass completes without any node reaching the bound, since a deeper bound
// cannot reveal new states then.
//
// That stopping rule is deliberate: a bare restart loop would raise the bound
// forever on a grid that cannot be assembled. While some node is still cut
// off at the bound the loop keeps going, so a cyclic state graph without a
// goal needs WithMaxExpansions or a context deadline to stop.
func IterativeDeepening(ctx context.Context, problem *Problem, opts ...Option) (*Result, error) {
	r := newRunner(problem, opts)
	for limit := 1; ; limit++ {
		r.reset()
		frontier := NewLIFO()
		frontier.Enqueue(NewRoot(problem.Initial))

		goal, cutoff, err := r.loop(ctx, frontier, limit)
		if err != nil || goal != nil || !cutoff {
			res := r.result(goal, limit)
			res.Strategy = ID
			return res, err
		}
	}
}

type runner struct {
	problem  *Problem
	opts     Options
	expanded int
	last     *Node
	seen     map[string]int
}

func newRunner(problem *Problem, opts []Option) *runner {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &runner{problem: problem, opts: o}
}

// reset starts a fresh pass; the expansion count survives restarts
func (r *runner) reset() {
	if r.opts.Dedupe {
		r.seen = map[string]int{r.problem.Initial.Key(): 0}
	}
}

// loop drains frontier. limit > 0 bounds the depth of expanded nodes and
// cutoff reports whether any node was left unexpanded at the bound.
func (r *runner) loop(ctx context.Context, frontier Frontier, limit int) (goal *Node, cutoff bool, err error) {
	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, cutoff, err
		}

		node := frontier.RemoveFront()
		r.last = node
		if r.problem.GoalTest(node.State) {
			return node, cutoff, nil
		}
		if limit > 0 && node.Depth >= limit {
			cutoff = true
			continue
		}
		if r.opts.MaxExpansions > 0 && r.expanded >= r.opts.MaxExpansions {
			return nil, cutoff, fmt.Errorf("%w: %d nodes", ErrBudgetExceeded, r.expanded)
		}

		r.expanded++
		children := r.problem.ExpandNode(node)
		if r.opts.Dedupe {
			children = r.filterSeen(children)
		}
		frontier.Enqueue(children...)

		if r.opts.Progress != nil && r.expanded%r.opts.ProgressInterval == 0 {
			r.opts.Progress(Progress{
				Expanded:    r.expanded,
				FrontierLen: frontier.Len(),
				Depth:       node.Depth,
				PathCost:    node.PathCost,
				DepthLimit:  limit,
			})
		}
	}
	return nil, cutoff, nil
}

func (r *runner) filterSeen(children []*Node) []*Node {
	kept := children[:0]
	for _, c := range children {
		key := c.State.Key()
		if best, ok := r.seen[key]; ok && best <= c.PathCost {
			continue
		}
		r.seen[key] = c.PathCost
		kept = append(kept, c)
	}
	return kept
}

func (r *runner) result(goal *Node, limit int) *Result {
	res := &Result{
		Expanded:   r.expanded,
		LastNode:   r.last,
		DepthLimit: limit,
	}
	if goal != nil {
		res.Found = true
		res.Solution = goal
		res.Path = goal.PathRepr()
		res.PathCost = goal.PathCost
		res.Operators = goal.Operators()
	}
	return res
}
