package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GridConfig represents a puzzle configuration loaded from JSON or YAML
type GridConfig struct {
	Name            string            `json:"name" yaml:"name"`
	Description     string            `json:"description" yaml:"description"`
	Layout          []string          `json:"layout" yaml:"layout"`
	Legend          map[string]string `json:"legend,omitempty" yaml:"legend,omitempty"`
	DefaultStrategy string            `json:"default_strategy,omitempty" yaml:"default_strategy,omitempty"`
	MaxExpansions   int               `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
}

// requiredLegend is the symbol table a config legend must agree with
var requiredLegend = map[string]string{
	"_": "empty",
	"X": "obstacle",
	"R": "robot",
}

// ValidateGridConfig validates a configuration for structural correctness
func ValidateGridConfig(config *GridConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	if len(config.Layout) < MinGridSize || len(config.Layout) > MaxGridSize {
		return fmt.Errorf("%w: layout must have between %d and %d rows, got %d",
			ErrInvalidConfig, MinGridSize, MaxGridSize, len(config.Layout))
	}

	width := len(config.Layout[0])
	robots := 0
	for i, row := range config.Layout {
		if len(row) != width {
			return fmt.Errorf("%w: row %d must have %d characters, got %d", ErrInvalidConfig, i+1, width, len(row))
		}
		for j, char := range row {
			switch Cell(char) {
			case Empty, Obstacle:
			case Robot:
				robots++
			default:
				return fmt.Errorf("%w: invalid character '%c' at row %d, col %d", ErrInvalidConfig, char, i+1, j+1)
			}
		}
	}
	if width < MinGridSize || width > MaxGridSize {
		return fmt.Errorf("%w: layout must have between %d and %d columns, got %d",
			ErrInvalidConfig, MinGridSize, MaxGridSize, width)
	}
	if robots == 0 {
		return fmt.Errorf("%w: layout must contain at least one robot (R) cell", ErrInvalidConfig)
	}

	// The legend is optional, but when present it must agree with the symbols
	for key, value := range config.Legend {
		if expected, ok := requiredLegend[key]; !ok || value != expected {
			return fmt.Errorf("%w: legend['%s'] must be '%s', got '%s'", ErrInvalidConfig, key, expected, value)
		}
	}

	if config.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DecodeGridConfig parses config data; ext selects YAML (".yaml", ".yml")
// or JSON (anything else).
func DecodeGridConfig(data []byte, ext string) (*GridConfig, error) {
	var config GridConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json config: %w", err)
		}
	}
	if err := ValidateGridConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadGridConfig loads and validates a configuration file
func LoadGridConfig(filename string) (*GridConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return DecodeGridConfig(data, filepath.Ext(filename))
}

// InitGridFromConfig builds the initial grid described by config
func InitGridFromConfig(config *GridConfig) (*Grid, error) {
	if err := ValidateGridConfig(config); err != nil {
		return nil, err
	}
	return ParseGrid(config.Layout)
}
