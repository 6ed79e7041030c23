// Package search explores the assembly state space of an engine.Grid.
//
// A single expansion loop is shared by every strategy; strategies differ
// only in the Frontier that orders pending nodes:
//   - BFS: FIFO queue
//   - DFS: LIFO stack, children of a node are explored before its siblings
//   - ID: LIFO stack under a depth bound that grows by one per restart
//   - GREEDY_H1, GREEDY_H2: lowest heuristic estimate first
//   - ASTAR_H1, ASTAR_H2: lowest estimate plus path cost first
//
// Ties in the priority frontiers are broken by insertion order, so runs are
// reproducible for a given grid.
//
// The search tree is not pruned for repeated states unless WithDedupe is
// set. Without a budget (WithMaxExpansions) or a cancelable context, DFS can
// run forever on grids whose state graph has cycles.
//
// ID reports no plan once a pass drains without cutting off any node at the
// depth bound; until then the bound keeps growing.
//
// Usage:
//
//	res, err := search.Search(ctx, engine.Example2(), "ASTAR_H2",
//		search.WithDedupe(true),
//		search.WithMaxExpansions(100000),
//	)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Found, res.PathCost, res.Expanded)
package search
