package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"strider/internal/evo"
	"strider/internal/scape"
	"strider/internal/storage"
	"strider/internal/workspace"
	striderapi "strider/pkg/strider"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "seed":
		return runSeed(ctx, args[1:])
	case "results":
		return runResults(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: striderctl <run|seed|results|history> [flags]", msg)
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML run config")
	runID := fs.String("run-id", "", "run id for result artifacts (random when empty)")
	resume := fs.Bool("resume", false, "resume from the most recent checkpoint")
	seedPool := fs.Int("seed-pool", 0, "seed the initial population from a random pool of this size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}

	summary, err := striderapi.Run(ctx, striderapi.Options{
		WorkspaceRoot: cfg.Workspace,
		StoreKind:     cfg.Store,
		SQLitePath:    cfg.SQLitePath,
		RunID:         *runID,
		Resume:        *resume,
		SeedPoolSize:  *seedPool,
		SeedTimeLimit: time.Duration(cfg.Seeding.TimeLimitMS) * time.Millisecond,
		Checkpoint:    true,
	}, cfg.engineConfig(), cfg.gaitStrategy(), scape.NewTreadmill())
	if err != nil {
		return err
	}

	return printSummary(summary)
}

// printSummary writes a human-readable report on a terminal and JSON when
// output is redirected.
func printSummary(summary striderapi.RunSummary) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return json.NewEncoder(os.Stdout).Encode(summary)
	}

	fmt.Printf("run %s finished in %s\n", summary.RunID, summary.Elapsed.Round(time.Millisecond))
	if summary.Resumed {
		fmt.Println("resumed from checkpoint")
	}
	fmt.Printf("generations: %s\n", humanize.Comma(int64(summary.Generation)))
	fmt.Printf("evaluations: %s\n", humanize.Comma(int64(summary.TotalEvaluations)))
	fmt.Printf("best fitness: %.4f\n", summary.BestFitness)
	fmt.Printf("results: %s\n", summary.ResultsPath)
	fmt.Printf("figure: %s\n", summary.FigurePath)
	return nil
}

func runSeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML run config")
	poolSize := fs.Int("pool", 50, "random pool size to rank")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}

	ws, err := workspace.New(cfg.Workspace)
	if err != nil {
		return err
	}
	store, err := storage.NewStore(cfg.Store, ws, cfg.SQLitePath)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	engine, err := evo.New(cfg.engineConfig(), cfg.gaitStrategy(), scape.NewTreadmill(), store)
	if err != nil {
		return err
	}
	limit := time.Duration(cfg.Seeding.TimeLimitMS) * time.Millisecond
	if err := engine.SeedPopulation(ctx, *poolSize, limit); err != nil {
		return err
	}

	fmt.Printf("seed pool cached for %s (pop %s, ranked from %s candidates)\n",
		engine.Name(),
		humanize.Comma(int64(cfg.Engine.PopSize)),
		humanize.Comma(int64(*poolSize)))
	return nil
}

func runResults(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("results", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML run config")
	strategy := fs.String("strategy", "gait", "strategy name to read results for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	ws, err := workspace.New(cfg.Workspace)
	if err != nil {
		return err
	}
	dir, err := ws.Resolve(*strategy, workspace.CategoryResults)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "results.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no results recorded for strategy %s", *strategy)
		}
		return err
	}
	fmt.Printf("%s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	_, err = os.Stdout.Write(data)
	return err
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML run config")
	strategy := fs.String("strategy", "gait", "strategy name to read history for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	ws, err := workspace.New(cfg.Workspace)
	if err != nil {
		return err
	}
	store, err := storage.NewStore(cfg.Store, ws, cfg.SQLitePath)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	cp, ok, err := store.GetCheckpoint(ctx, *strategy)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no checkpoint recorded for strategy %s", *strategy)
	}

	fmt.Printf("strategy %s: generation %d, %s evaluations\n",
		cp.Name, cp.Generation, humanize.Comma(int64(cp.TotalEvaluations)))
	for _, entry := range cp.History {
		fmt.Printf("gen %4d  best %10.4f  avg %10.4f\n", entry.Generation, entry.BestFitness, entry.MeanFitness)
	}
	return nil
}
