// Command solve runs the search strategies against a grid from the command
// line, without a server. Grids come from a config file, a config ID in the
// config directory, or a random seed.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/robot-assembly/game/config"
	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
	"github.com/wricardo/robot-assembly/game/service"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "solve",
		Usage:   "assemble robot parts with uninformed and heuristic search",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory searched for config IDs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run one strategy and print the plan",
				Flags: append(gridFlags(), append(searchFlags(),
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "one of " + strategyList() + " (defaults to the config's strategy)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the result as JSON",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "log progress while searching",
					},
				)...),
				Action: runSolve,
			},
			{
				Name:  "compare",
				Usage: "run several strategies concurrently and compare them",
				Flags: append(gridFlags(), append(searchFlags(),
					&cli.StringSliceFlag{
						Name:  "strategies",
						Usage: "strategies to compare (defaults to all)",
					},
					&cli.IntFlag{
						Name:  "parallel",
						Value: 4,
						Usage: "strategies run at the same time",
					},
				)...),
				Action: runCompare,
			},
			{
				Name:  "generate",
				Usage: "print a random grid as a config file",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Usage: "random seed (0 uses the current time)"},
					&cli.IntFlag{Name: "rows", Usage: "grid rows (0 picks a random size)"},
					&cli.IntFlag{Name: "cols", Usage: "grid columns (0 picks a random size)"},
					&cli.StringFlag{Name: "name", Usage: "config name"},
					&cli.StringFlag{Name: "format", Value: "yaml", Usage: "yaml or json"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to a file instead of stdout"},
				},
				Action: runGenerate,
			},
		},
	}
}

func gridFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file or config ID",
		},
		&cli.BoolFlag{Name: "random", Usage: "use a random grid instead of a config"},
		&cli.Int64Flag{Name: "seed", Usage: "seed for --random (0 uses the current time)"},
		&cli.IntFlag{Name: "rows", Usage: "rows for --random"},
		&cli.IntFlag{Name: "cols", Usage: "columns for --random"},
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "dedupe", Aliases: []string{"d"}, Usage: "prune grids already reached at no higher cost"},
		&cli.IntFlag{Name: "max-expansions", Usage: "stop after this many expanded nodes (0 uses the config's budget)"},
		&cli.DurationFlag{Name: "timeout", Usage: "stop the search after this long"},
	}
}

func strategyList() string {
	names := make([]string, len(search.Strategies))
	for i, s := range search.Strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// loadGridConfig resolves --random, a config file path or a config ID
func loadGridConfig(cmd *cli.Command) (*engine.GridConfig, error) {
	if cmd.Bool("random") {
		gridConfig, seed, err := service.RandomConfig(service.CreateSessionRequest{
			Random: true,
			Seed:   cmd.Int64("seed"),
			Rows:   cmd.Int("rows"),
			Cols:   cmd.Int("cols"),
		})
		if err != nil {
			return nil, err
		}
		log.Printf("Generated random grid with seed %d", seed)
		return gridConfig, nil
	}

	name := cmd.String("config")
	if name == "" {
		return nil, errors.New("either --config or --random is required")
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return engine.LoadGridConfig(name)
	}

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, err
	}
	return manager.LoadConfig(name)
}

type searchSetup struct {
	grid       *engine.Grid
	gridConfig *engine.GridConfig
	opts       []search.Option
}

func prepare(ctx context.Context, cmd *cli.Command) (context.Context, context.CancelFunc, *searchSetup, error) {
	gridConfig, err := loadGridConfig(cmd)
	if err != nil {
		return ctx, func() {}, nil, err
	}
	grid, err := engine.InitGridFromConfig(gridConfig)
	if err != nil {
		return ctx, func() {}, nil, err
	}

	budget := cmd.Int("max-expansions")
	if budget < 0 {
		return ctx, func() {}, nil, errors.New("--max-expansions must not be negative")
	}
	if budget == 0 {
		budget = gridConfig.MaxExpansions
	}

	cancel := context.CancelFunc(func() {})
	if timeout := cmd.Duration("timeout"); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	return ctx, cancel, &searchSetup{
		grid:       grid,
		gridConfig: gridConfig,
		opts: []search.Option{
			search.WithDedupe(cmd.Bool("dedupe")),
			search.WithMaxExpansions(budget),
		},
	}, nil
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	ctx, cancel, setup, err := prepare(ctx, cmd)
	defer cancel()
	if err != nil {
		return err
	}

	strategy := cmd.String("strategy")
	if strategy == "" {
		strategy = setup.gridConfig.DefaultStrategy
	}
	if strategy == "" {
		strategy = string(service.DefaultStrategy)
	}

	opts := setup.opts
	if cmd.Bool("verbose") {
		opts = append(opts, search.WithProgress(func(p search.Progress) {
			log.Printf("[%s] expanded=%d frontier=%d depth=%d cost=%d", strategy, p.Expanded, p.FrontierLen, p.Depth, p.PathCost)
		}))
	}

	start := time.Now()
	res, err := search.Search(ctx, setup.grid, strategy, opts...)
	if res == nil {
		return err
	}
	elapsed := time.Since(start)

	if cmd.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
		return err
	}

	fmt.Fprintf(w, "Grid: %s (%dx%d, %d parts)\n%s\n\n", setup.gridConfig.Name, setup.grid.Rows(), setup.grid.Cols(), setup.grid.PartCount(), setup.grid)
	printResult(w, res, cmd.Bool("dedupe"), elapsed)
	if res.Found && res.Solution != nil {
		fmt.Fprintf(w, "\nAssembled grid:\n%s\n", res.Solution.State)
	}
	if err != nil {
		fmt.Fprintf(w, "Stopped: %v\n", err)
	}
	return err
}

func printResult(w io.Writer, res *search.Result, dedupe bool, elapsed time.Duration) {
	suffix := ""
	if dedupe {
		suffix = " (dedupe)"
	}
	fmt.Fprintf(w, "Strategy: %s%s\n", res.Strategy, suffix)
	if res.Found {
		fmt.Fprintf(w, "Found: cost %d in %d move(s)\n", res.PathCost, len(res.Operators))
	} else {
		fmt.Fprintln(w, "Found: no plan")
	}
	fmt.Fprintf(w, "Expanded: %d nodes in %s\n", res.Expanded, elapsed.Round(time.Millisecond))
	if res.DepthLimit > 0 {
		fmt.Fprintf(w, "Depth limit: %d\n", res.DepthLimit)
	}
	if len(res.Operators) > 0 {
		ops := make([]string, len(res.Operators))
		for i, op := range res.Operators {
			ops[i] = op.String()
		}
		fmt.Fprintf(w, "Plan: %s\n", strings.Join(ops, " "))
	}
}

type comparison struct {
	strategy search.Strategy
	res      *search.Result
	err      error
	elapsed  time.Duration
}

func runCompare(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	ctx, cancel, setup, err := prepare(ctx, cmd)
	defer cancel()
	if err != nil {
		return err
	}

	strategies := search.Strategies
	if names := cmd.StringSlice("strategies"); len(names) > 0 {
		strategies = make([]search.Strategy, 0, len(names))
		for _, name := range names {
			s, err := search.ParseStrategy(name)
			if err != nil {
				return err
			}
			strategies = append(strategies, s)
		}
	}

	results := make([]comparison, len(strategies))
	g, gCtx := errgroup.WithContext(ctx)
	if n := cmd.Int("parallel"); n > 0 {
		g.SetLimit(n)
	}
	for i, s := range strategies {
		g.Go(func() error {
			start := time.Now()
			res, err := search.Search(gCtx, setup.grid, string(s), setup.opts...)
			// budget and timeout errors belong to the run, not the comparison
			results[i] = comparison{strategy: s, res: res, err: err, elapsed: time.Since(start)}
			return nil
		})
	}
	g.Wait()

	fmt.Fprintf(w, "Grid: %s (%dx%d, %d parts)\n\n", setup.gridConfig.Name, setup.grid.Rows(), setup.grid.Cols(), setup.grid.PartCount())
	fmt.Fprintf(w, "%-10s %-6s %8s %10s %10s  %s\n", "STRATEGY", "FOUND", "COST", "EXPANDED", "TIME", "NOTE")

	var best *comparison
	for i := range results {
		c := &results[i]
		found, cost, expanded, note := false, "-", 0, ""
		if c.res != nil {
			found, expanded = c.res.Found, c.res.Expanded
			if found {
				cost = fmt.Sprint(c.res.PathCost)
				if best == nil || c.res.PathCost < best.res.PathCost ||
					(c.res.PathCost == best.res.PathCost && c.res.Expanded < best.res.Expanded) {
					best = c
				}
			}
		}
		if c.err != nil {
			note = c.err.Error()
		}
		fmt.Fprintf(w, "%-10s %-6v %8s %10d %10s  %s\n", c.strategy, found, cost, expanded, c.elapsed.Round(time.Millisecond), note)
	}

	if best == nil {
		fmt.Fprintln(w, "\nNo strategy found a plan")
		return nil
	}
	fmt.Fprintf(w, "\nBest: %s with cost %d (%d expanded)\n", best.strategy, best.res.PathCost, best.res.Expanded)
	return nil
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	gridConfig, seed, err := service.RandomConfig(service.CreateSessionRequest{
		Random: true,
		Seed:   cmd.Int64("seed"),
		Rows:   cmd.Int("rows"),
		Cols:   cmd.Int("cols"),
	})
	if err != nil {
		return err
	}
	if name := cmd.String("name"); name != "" {
		gridConfig.Name = name
	}

	var data []byte
	switch strings.ToLower(cmd.String("format")) {
	case "yaml", "yml":
		data, err = yaml.Marshal(gridConfig)
	case "json":
		data, err = json.MarshalIndent(gridConfig, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q, use yaml or json", cmd.String("format"))
	}
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		_, err = cmd.Root().Writer.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	log.Printf("Wrote grid from seed %d to %s", seed, out)
	return nil
}
