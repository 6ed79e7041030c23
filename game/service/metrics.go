package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solveRuns counts solver runs.
	// Labels: strategy, outcome (found, not_found, budget, canceled, error)
	solveRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robot_assembly",
		Subsystem: "solver",
		Name:      "runs_total",
		Help:      "Total solver runs by strategy and outcome",
	}, []string{"strategy", "outcome"})

	// solveExpanded tracks how many nodes a run expanded.
	// Labels: strategy
	solveExpanded = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "robot_assembly",
		Subsystem: "solver",
		Name:      "expanded_nodes",
		Help:      "Nodes expanded per solver run",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"strategy"})

	// solveDuration measures wall time per run.
	// Labels: strategy
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "robot_assembly",
		Subsystem: "solver",
		Name:      "duration_seconds",
		Help:      "Solver run duration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
	}, []string{"strategy"})

	// solvePathCost tracks the cost of found solutions.
	// Labels: strategy
	solvePathCost = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "robot_assembly",
		Subsystem: "solver",
		Name:      "path_cost",
		Help:      "Path cost of solutions found",
		Buckets:   prometheus.LinearBuckets(0, 5, 12),
	}, []string{"strategy"})

	// manualMoves counts moves made through Move.
	// Labels: outcome (accepted, rejected)
	manualMoves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robot_assembly",
		Subsystem: "session",
		Name:      "moves_total",
		Help:      "Total manual moves by outcome",
	}, []string{"outcome"})

	// sessionsCreated counts created sessions.
	// Labels: source (config, random)
	sessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robot_assembly",
		Subsystem: "session",
		Name:      "created_total",
		Help:      "Total sessions created by grid source",
	}, []string{"source"})
)
