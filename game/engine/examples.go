package engine

// Example1Layout is an 8x8 grid with six parts
var Example1Layout = []string{
	"________",
	"X____RR_",
	"X__RR___",
	"__X_____",
	"R____RX_",
	"_____RR_",
	"_R_R_R__",
	"_R______",
}

// Example2Layout is a 7x6 grid with seven single-cell parts
var Example2Layout = []string{
	"X__R_X",
	"______",
	"____RX",
	"______",
	"_R__R_",
	"__R___",
	"RX___R",
}

// Example1 returns the grid for Example1Layout
func Example1() *Grid {
	return MustParseGrid(Example1Layout...)
}

// Example2 returns the grid for Example2Layout
func Example2() *Grid {
	return MustParseGrid(Example2Layout...)
}

// Example1Config wraps Example1Layout in a configuration
func Example1Config() *GridConfig {
	return &GridConfig{
		Name:            "Example 1",
		Description:     "8x8 grid with six parts and three obstacles",
		Layout:          append([]string(nil), Example1Layout...),
		DefaultStrategy: "ASTAR_H2",
	}
}

// Example2Config wraps Example2Layout in a configuration
func Example2Config() *GridConfig {
	return &GridConfig{
		Name:            "Example 2",
		Description:     "7x6 grid with seven single-cell parts",
		Layout:          append([]string(nil), Example2Layout...),
		DefaultStrategy: "ASTAR_H2",
	}
}
