package engine

import (
	"fmt"
	"strings"
)

// Cell is the content of a single grid coordinate
type Cell byte

const (
	Empty    Cell = '_'
	Obstacle Cell = 'X'
	Robot    Cell = 'R'

	// Validation constants
	MinGridSize = 1
	MaxGridSize = 32
)

// String returns the layout character for the cell
func (c Cell) String() string {
	return string(rune(c))
}

// Valid reports whether c is one of the three known symbols
func (c Cell) Valid() bool {
	return c == Empty || c == Obstacle || c == Robot
}

// Position represents (row, col) coordinates; rows grow downward
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns p shifted by d
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders positions row-major
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Direction is one of the four orthogonal motions
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in operator order
var Directions = [4]Direction{North, East, South, West}

// Delta returns the unit step for the direction
func (d Direction) Delta() Position {
	switch d {
	case North:
		return Position{Row: -1}
	case East:
		return Position{Col: 1}
	case South:
		return Position{Row: 1}
	case West:
		return Position{Col: -1}
	}
	return Position{}
}

// Leading reports whether cells must be visited in reverse sorted order so
// that the leading edge of the motion is checked first.
func (d Direction) Leading() bool {
	return d == East || d == South
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "?"
}

// MarshalText encodes the direction as its single-letter name
func (d Direction) MarshalText() ([]byte, error) {
	if d < North || d > West {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts the forms understood by ParseDirection
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses N/E/S/W (any case) and the up/right/down/left aliases
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north", "up":
		return North, nil
	case "e", "east", "right":
		return East, nil
	case "s", "south", "down":
		return South, nil
	case "w", "west", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Feedback is the outcome of probing one cell one step in a direction
type Feedback int

const (
	Smooth Feedback = iota
	RobotCollision
	ObstacleCollision
	Damage
)

func (f Feedback) String() string {
	switch f {
	case Smooth:
		return "smooth"
	case RobotCollision:
		return "robot"
	case ObstacleCollision:
		return "obstacle"
	case Damage:
		return "damage"
	}
	return "unknown"
}

// MarshalText encodes the feedback by name
func (f Feedback) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a feedback name
func (f *Feedback) UnmarshalText(text []byte) error {
	switch string(text) {
	case "smooth":
		*f = Smooth
	case "robot":
		*f = RobotCollision
	case "obstacle":
		*f = ObstacleCollision
	case "damage":
		*f = Damage
	default:
		return fmt.Errorf("unknown feedback %q", string(text))
	}
	return nil
}

// Operator selects a part of a specific grid and a direction to push it.
// Part indices are only meaningful for the grid the operator was built from.
type Operator struct {
	Part      int       `json:"part"`
	Direction Direction `json:"direction"`
}

func (o Operator) String() string {
	return fmt.Sprintf("(%d,%s)", o.Part, o.Direction)
}

// MoveHistoryEntry represents a single manual move in a puzzle session
type MoveHistoryEntry struct {
	Operator   Operator `json:"operator"`
	Feedback   Feedback `json:"feedback"`
	Steps      int      `json:"steps"`
	Cost       int      `json:"cost"`
	PartsAfter int      `json:"parts_after"`
	Timestamp  int64    `json:"timestamp"`
	Success    bool     `json:"success"`
	MoveNumber int      `json:"move_number"`
}

// PuzzleState is the serializable snapshot of a puzzle session
type PuzzleState struct {
	Grid        *Grid              `json:"grid"`
	PartCount   int                `json:"part_count"`
	Assembled   bool               `json:"assembled"`
	TotalCost   int                `json:"total_cost"`
	Message     string             `json:"message"`
	ConfigName  string             `json:"config_name"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. MoveHistory
	// stays cumulative across resets.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}
