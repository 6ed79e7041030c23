// Package engine provides the state transition model for the robot assembly
// puzzle.
//
// The engine package implements:
//   - Grid snapshots over a flat cell buffer (empty, obstacle, robot)
//   - Part detection by closing unit cells under orthogonal adjacency
//   - Rigid multi-cell part movement with collision feedback
//   - Interactive puzzle sessions with move history
//   - Configuration loading (JSON or YAML) and validation
//   - Random grid generation
//
// Core Types:
//
// Grid is an immutable value: ApplyOperator returns a Transition holding a
// new Grid whenever the part moved at least one step, and the receiver
// otherwise. Parts are re-derived from scratch for every new Grid because a
// move can join previously disjoint parts.
//
// Usage:
//
//	grid := engine.MustParseGrid(
//		"R_R",
//	)
//
//	t, err := grid.ApplyOperator(engine.Operator{Part: 0, Direction: engine.East})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(t.Feedback, t.Steps, t.Cost, t.Grid.Assembled())
//
// Movement Rules:
//
// A part slides one step per iteration until any of its cells is blocked.
// A cell is blocked by a foreign robot cell (robot), an obstacle (obstacle)
// or the edge of the grid (damage). Cells of the moving part never block
// each other. The cost of a move is the number of steps times the part size.
package engine
