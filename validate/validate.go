// Command validate provides a small CLI that validates grid configuration
// files (JSON or YAML) in the ../configs directory. It checks:
//   - file syntax and required fields
//   - grid consistency and allowed characters (_, X, R)
//   - legend, default strategy and expansion budget
//   - connectivity: every robot cell shares one obstacle-free region, since
//     parts never cross obstacles and could not otherwise meet
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	config, err := engine.DecodeGridConfig(data, filepath.Ext(filePath))
	if err != nil {
		if errors.Is(err, engine.ErrInvalidConfig) {
			result.fail("Invalid config: %v", err)
		} else {
			result.fail("Invalid syntax: %v", err)
		}
		return result
	}

	if config.DefaultStrategy != "" {
		if _, err := search.ParseStrategy(config.DefaultStrategy); err != nil {
			result.fail("Invalid default_strategy: %v", err)
		}
	}

	grid, err := engine.InitGridFromConfig(config)
	if err != nil {
		result.fail("Invalid grid: %v", err)
		return result
	}

	// Connectivity validation - robots must share one free region
	reachability := validateConnectivity(config.Layout)
	if !reachability.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, reachability.Errors...)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", grid.Rows(), grid.Cols()))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Robot cells: %d", engine.CountCellType(grid, engine.Robot)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Parts: %d", grid.PartCount()))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Obstacles: %d", engine.CountCellType(grid, engine.Obstacle)))
		if config.DefaultStrategy != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Default strategy: %s", config.DefaultStrategy))
		}
	}

	return result
}

// validateConnectivity flood-fills the obstacle-free cells reachable from
// the first robot and reports every robot cell outside that region.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.fail("Cannot validate connectivity: empty layout")
		return result
	}

	var robots []engine.Position
	for r, row := range layout {
		for c := 0; c < len(row); c++ {
			if engine.Cell(row[c]) == engine.Robot {
				robots = append(robots, engine.Position{Row: r, Col: c})
			}
		}
	}
	if len(robots) == 0 {
		result.fail("No robots found for connectivity test")
		return result
	}

	passable := func(p engine.Position) bool {
		if p.Row < 0 || p.Row >= len(layout) || p.Col < 0 || p.Col >= len(layout[p.Row]) {
			return false
		}
		return engine.Cell(layout[p.Row][p.Col]) != engine.Obstacle
	}

	// Flood fill from the first robot
	visited := map[engine.Position]bool{robots[0]: true}
	queue := []engine.Position{robots[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range engine.Directions {
			next := current.Add(d.Delta())
			if !visited[next] && passable(next) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for _, robot := range robots {
		if !visited[robot] {
			unreachable = append(unreachable, fmt.Sprintf("Robot at %s", robot))
		}
	}

	if len(unreachable) > 0 {
		result.fail("Connectivity failure: %d/%d robot cells are walled off from the rest", len(unreachable), len(robots))
		for _, robot := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", robot))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d robot cells share one region", len(robots)))
	}

	return result
}

// main scans ../configs for config files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(configDir, pattern))
		if err != nil {
			fmt.Printf("Error finding config files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
