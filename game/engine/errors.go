package engine

import "errors"

var (
	// ErrInvalidMove is raised by the low-level mover when a destination cell is
	// not empty. ApplyOperator checks feasibility first, so seeing it means a bug.
	ErrInvalidMove = errors.New("engine: inapplicable move")
	// ErrUnassemblable is returned when merging two parts that are not adjacent.
	ErrUnassemblable = errors.New("engine: un-assemblable parts")
	// ErrInvalidGrid indicates a malformed layout.
	ErrInvalidGrid = errors.New("engine: invalid grid")
	// ErrInvalidConfig indicates a grid configuration that failed validation.
	ErrInvalidConfig = errors.New("engine: invalid configuration")
	// ErrPartIndex indicates an operator naming a part the grid does not have.
	ErrPartIndex = errors.New("engine: part index out of range")
)
