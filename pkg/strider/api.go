// Package strider composes the workspace, store, engine, and artifact
// writer into a single entry point for running an evolutionary search.
package strider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"strider/internal/evo"
	"strider/internal/model"
	"strider/internal/scape"
	"strider/internal/stats"
	"strider/internal/storage"
	"strider/internal/workspace"
)

const defaultWorkspaceRoot = "strider_data"

type Options struct {
	WorkspaceRoot string
	StoreKind     string // file, memory, or sqlite
	SQLitePath    string
	RunID         string
	Resume        bool
	SeedPoolSize  int
	SeedTimeLimit time.Duration
	Checkpoint    bool
}

type RunSummary struct {
	RunID            string
	Resumed          bool
	Elapsed          time.Duration
	Generation       int
	TotalEvaluations int
	BestFitness      float64
	ResultsPath      string
	FigurePath       string
}

// Run executes one full run: optional resume from checkpoint, optional
// population seeding, the evolutionary loop, a final checkpoint, and the
// results artifacts.
func Run[G any](ctx context.Context, opts Options, cfg evo.Config, strategy evo.Strategy[G], sc scape.Scape) (RunSummary, error) {
	root := opts.WorkspaceRoot
	if root == "" {
		root = defaultWorkspaceRoot
	}
	ws, err := workspace.New(root)
	if err != nil {
		return RunSummary{}, err
	}
	store, err := storage.NewStore(opts.StoreKind, ws, opts.SQLitePath)
	if err != nil {
		return RunSummary{}, err
	}
	if err := store.Init(ctx); err != nil {
		return RunSummary{}, err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	engine, err := evo.New(cfg, strategy, sc, store)
	if err != nil {
		return RunSummary{}, err
	}

	resumed := false
	if opts.Resume {
		resumed, err = engine.LoadCheckpoint(ctx)
		if err != nil {
			return RunSummary{}, fmt.Errorf("load checkpoint: %w", err)
		}
	}
	if !resumed && opts.SeedPoolSize > 0 {
		if err := engine.SeedPopulation(ctx, opts.SeedPoolSize, opts.SeedTimeLimit); err != nil {
			return RunSummary{}, fmt.Errorf("seed population: %w", err)
		}
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	if opts.Checkpoint {
		if err := engine.SaveCheckpoint(ctx); err != nil {
			return RunSummary{}, fmt.Errorf("save checkpoint: %w", err)
		}
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	resultsPath, figurePath, err := writeArtifacts(ws, runID, engine, result)
	if err != nil {
		return RunSummary{}, fmt.Errorf("write artifacts: %w", err)
	}

	return RunSummary{
		RunID:            runID,
		Resumed:          resumed,
		Elapsed:          result.Elapsed,
		Generation:       result.Generation,
		TotalEvaluations: result.TotalEvaluations,
		BestFitness:      result.BestFitness,
		ResultsPath:      resultsPath,
		FigurePath:       figurePath,
	}, nil
}

func writeArtifacts[G any](ws *workspace.Workspace, runID string, engine *evo.Engine[G], result evo.Result) (string, string, error) {
	bestGenome, err := json.Marshal(engine.Best().Genome)
	if err != nil {
		return "", "", fmt.Errorf("encode best genome: %w", err)
	}

	population := engine.Population()
	average := 0.0
	for _, indv := range population {
		if indv.Fitness != nil {
			average += *indv.Fitness
		}
	}
	if len(population) > 0 {
		average /= float64(len(population))
	}

	cfg := engine.Config()
	return stats.WriteRunArtifacts(ws, stats.RunArtifacts{
		RunID: runID,
		Name:  engine.Name(),
		Config: model.RunConfig{
			MaxEvaluations:  engine.MaxEvaluations(),
			EvalTimeLimitMS: cfg.EvalTimeLimit.Milliseconds(),
			PopulationSize:  cfg.PopulationSize,
			CrossoverProb:   cfg.CrossoverProb,
			MutationProb:    cfg.MutationProb,
			SteadyState:     cfg.SteadyState,
			Seed:            cfg.Seed,
		},
		BestGenome:     bestGenome,
		BestFitness:    result.BestFitness,
		AverageFitness: average,
		History:        engine.History(),
	})
}
