package engine

import (
	"fmt"
	"math/rand"
)

// GeneratorOptions controls random grid generation. Rows and Cols, when
// non-zero, fix the size instead of drawing it from [MinSide, MaxSide].
type GeneratorOptions struct {
	Rows            int     `json:"rows,omitempty"`
	Cols            int     `json:"cols,omitempty"`
	MinSide         int     `json:"min_side"`
	MaxSide         int     `json:"max_side"`
	RobotDensity    float64 `json:"robot_density"`
	ObstacleDensity float64 `json:"obstacle_density"`
}

// DefaultGeneratorOptions returns sides between 4 and 8, about 20% robot
// cells and 10% obstacles.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		MinSide:         4,
		MaxSide:         8,
		RobotDensity:    0.2,
		ObstacleDensity: 0.1,
	}
}

func (o GeneratorOptions) validate() error {
	if o.MinSide < MinGridSize || o.MaxSide > MaxGridSize || o.MinSide > o.MaxSide {
		return fmt.Errorf("%w: sides must satisfy %d <= min <= max <= %d", ErrInvalidGrid, MinGridSize, MaxGridSize)
	}
	for _, side := range []int{o.Rows, o.Cols} {
		if side < 0 || side > MaxGridSize {
			return fmt.Errorf("%w: fixed sides must be between %d and %d", ErrInvalidGrid, MinGridSize, MaxGridSize)
		}
	}
	if o.RobotDensity < 0 || o.ObstacleDensity < 0 || o.RobotDensity+o.ObstacleDensity > 1 {
		return fmt.Errorf("%w: densities must be non-negative and sum to at most 1", ErrInvalidGrid)
	}
	return nil
}

// Generate draws a random grid. Each cell is a robot with probability
// RobotDensity, an obstacle with probability ObstacleDensity, else empty.
// A draw without any robot cell is retried so the result has a part.
func Generate(rng *rand.Rand, opts GeneratorOptions) (*Grid, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.RobotDensity == 0 {
		return nil, fmt.Errorf("%w: robot density must be positive", ErrInvalidGrid)
	}

	for {
		rows, cols := opts.Rows, opts.Cols
		if rows == 0 {
			rows = opts.MinSide + rng.Intn(opts.MaxSide-opts.MinSide+1)
		}
		if cols == 0 {
			cols = opts.MinSide + rng.Intn(opts.MaxSide-opts.MinSide+1)
		}
		cells := make([]Cell, rows*cols)
		robots := 0
		for i := range cells {
			x := rng.Float64()
			switch {
			case x < opts.RobotDensity:
				cells[i] = Robot
				robots++
			case x < opts.RobotDensity+opts.ObstacleDensity:
				cells[i] = Obstacle
			default:
				cells[i] = Empty
			}
		}
		if robots > 0 {
			return newGridFromBuffer(rows, cols, cells), nil
		}
	}
}
