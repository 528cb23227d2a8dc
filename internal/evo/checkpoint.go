package evo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"strider/internal/model"
	"strider/internal/storage"
)

// SaveCheckpoint snapshots the full mutable state of the run under the
// strategy's name.
func (e *Engine[G]) SaveCheckpoint(ctx context.Context) error {
	population, err := encodePopulation(e.population)
	if err != nil {
		return fmt.Errorf("encode population: %w", err)
	}
	best, err := encodeIndividual(e.best)
	if err != nil {
		return fmt.Errorf("encode best individual: %w", err)
	}

	cp := model.Checkpoint{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		Name:             e.strategy.Name(),
		Population:       population,
		Generation:       e.generation,
		TotalEvaluations: e.totalEvals,
		History:          append([]model.GenerationStats(nil), e.history...),
		Config:           e.runConfig(),
		Best:             best,
	}
	return e.store.SaveCheckpoint(ctx, cp)
}

// LoadCheckpoint restores the run to its most recent snapshot. A missing
// snapshot returns (false, nil) and leaves the in-memory state untouched; a
// corrupt or version-incompatible snapshot is an error. On success the
// population, generation, evaluation counter, history, and best individual
// are replaced wholesale, the RNG is reseeded from the stored seed, and the
// budget becomes the stored total plus the max configured at construction
// (additive, not an absolute cap).
func (e *Engine[G]) LoadCheckpoint(ctx context.Context) (bool, error) {
	cp, ok, err := e.store.GetCheckpoint(ctx, e.strategy.Name())
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if len(cp.Population) == 0 {
		return false, fmt.Errorf("checkpoint %s has an empty population", cp.Name)
	}

	population, err := decodePopulation[G](cp.Population)
	if err != nil {
		return false, fmt.Errorf("decode checkpoint population: %w", err)
	}
	best, err := decodeIndividual[G](cp.Best)
	if err != nil {
		return false, fmt.Errorf("decode checkpoint best individual: %w", err)
	}

	e.population = population
	e.generation = cp.Generation
	e.totalEvals = cp.TotalEvaluations
	e.history = append([]model.GenerationStats(nil), cp.History...)
	e.best = best
	e.maxEvals = cp.TotalEvaluations + e.cfg.MaxEvaluations

	e.cfg.EvalTimeLimit = time.Duration(cp.Config.EvalTimeLimitMS) * time.Millisecond
	e.cfg.PopulationSize = cp.Config.PopulationSize
	e.cfg.CrossoverProb = cp.Config.CrossoverProb
	e.cfg.MutationProb = cp.Config.MutationProb
	e.cfg.SteadyState = cp.Config.SteadyState
	e.cfg.Seed = cp.Config.Seed
	e.rng = rand.New(rand.NewSource(cp.Config.Seed))

	return true, nil
}
