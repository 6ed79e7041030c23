package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes content to a file named name in a temporary directory
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `{
		"name": "Test Config",
		"description": "Test configuration",
		"layout": [
			"R___R",
			"_X___",
			"__R__"
		],
		"legend": {
			"_": "empty",
			"X": "obstacle",
			"R": "robot"
		},
		"default_strategy": "ASTAR_H2",
		"max_expansions": 1000
	}`

	path := writeConfig(t, "test_config.json", validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "test_config.json" {
		t.Errorf("Expected file name test_config.json, got %s", result.File)
	}

	for _, info := range []string{"✓ Name: Test Config", "✓ Grid: 3x5", "✓ Parts: 3", "✓ Obstacles: 1", "✓ Connectivity"} {
		if !containsAny(result.Errors, info) {
			t.Errorf("Expected %q in %v", info, result.Errors)
		}
	}
}

func TestValidateConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "pair.yaml", "name: pair\ndescription: two robots\nlayout:\n  - R_R\n")

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected string
	}{
		{"bad json", "bad.json", `{"name": "test", invalid json}`, "Invalid syntax"},
		{"bad yaml", "bad.yaml", "name: [unclosed", "Invalid syntax"},
		{"empty layout", "empty.json", `{"name":"a","description":"b","layout":[]}`, "Invalid config"},
		{"no robots", "none.json", `{"name":"a","description":"b","layout":["___","_X_"]}`, "at least one robot"},
		{"bad character", "char.json", `{"name":"a","description":"b","layout":["R_B"]}`, "invalid character"},
		{"ragged rows", "ragged.json", `{"name":"a","description":"b","layout":["R__","R_"]}`, "Invalid config"},
		{"unknown strategy", "strategy.json", `{"name":"a","description":"b","layout":["R_R"],"default_strategy":"UCS"}`, "Invalid default_strategy"},
		{"walled off", "walled.json", `{"name":"a","description":"b","layout":["R_X_R"]}`, "Connectivity failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateConfig(writeConfig(t, tt.file, tt.content))
			if result.Valid {
				t.Fatalf("Expected invalid config, got %v", result.Errors)
			}
			if !containsAny(result.Errors, tt.expected) {
				t.Errorf("Expected %q error, got %v", tt.expected, result.Errors)
			}
		})
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !containsAny(result.Errors, "Failed to read file") {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateConnectivity(t *testing.T) {
	tests := []struct {
		name        string
		layout      []string
		valid       bool
		unreachable int
	}{
		{"open grid", []string{"R___", "____", "___R"}, true, 0},
		{"route around obstacles", []string{"R_X_", "_XX_", "___R"}, true, 0},
		{"obstacle column", []string{"R_X_R", "__X__"}, false, 1},
		{"boxed in robot", []string{"RX__", "X__R"}, false, 1},
		{"no robots", []string{"___"}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateConnectivity(tt.layout)
			if result.Valid != tt.valid {
				t.Errorf("Expected valid=%v, got %v (%v)", tt.valid, result.Valid, result.Errors)
			}
			count := 0
			for _, e := range result.Errors {
				if strings.HasPrefix(e, "Unreachable: ") {
					count++
				}
			}
			if count != tt.unreachable {
				t.Errorf("Expected %d unreachable robots, got %d", tt.unreachable, count)
			}
		})
	}
}

func TestValidateConnectivity_EmptyLayout(t *testing.T) {
	result := validateConnectivity([]string{})
	if result.Valid {
		t.Error("Expected invalid result for empty layout")
	}
	if !containsAny(result.Errors, "Cannot validate connectivity: empty layout") {
		t.Error("Expected 'Cannot validate connectivity: empty layout' error")
	}
}

func TestValidateBundledConfigs(t *testing.T) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join("..", "configs", pattern))
		if err != nil {
			t.Fatalf("glob failed: %v", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		t.Skip("no bundled configs")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			if result := validateConfig(file); !result.Valid {
				t.Errorf("Expected bundled config to be valid: %v", result.Errors)
			}
		})
	}
}

// containsAny reports whether any message contains substr
func containsAny(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
