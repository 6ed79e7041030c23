// Package config provides configuration management for robot assembly grids.
//
// The config package handles:
//   - Loading grid configurations from JSON or YAML files
//   - Configuration validation through engine.ValidateGridConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Grid configurations are stored in the configs directory as .json, .yaml
// or .yml files. Each configuration defines:
//   - A rectangular layout using '_' (empty), 'X' (obstacle) and 'R' (robot)
//   - An optional legend that must agree with those symbols
//   - An optional default solver strategy and expansion budget
//
// Example:
//
//	name: Example 2
//	description: 7x6 grid with seven single-cell parts
//	layout:
//	  - "X__R_X"
//	  - "______"
//	  - "____RX"
//	default_strategy: ASTAR_H2
//	max_expansions: 200000
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration, with or without extension
//	gridConfig, err := manager.LoadConfig("example2")
//
//	// Get default configuration (example1, else the first valid file,
//	// else the built-in example)
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
