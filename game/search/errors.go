package search

import "errors"

var (
	// ErrUnsupportedStrategy is returned by Search for an unknown strategy name.
	ErrUnsupportedStrategy = errors.New("search: unsupported strategy")

	// ErrDeprecatedOperation is returned by Problem.PathCost; edge costs are
	// computed by the transition model and carried by nodes.
	ErrDeprecatedOperation = errors.New("search: deprecated operation")

	// ErrBudgetExceeded is returned when WithMaxExpansions stops a run.
	ErrBudgetExceeded = errors.New("search: expansion budget exceeded")
)
