package evo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"strider/internal/model"
	"strider/internal/storage"
)

// SeedPopulation replaces the population with the strongest members of an
// oversized random pool. The pool is ranked by raw distance under a
// shortened time limit, not by ComputeFitness, and the ranked result is
// cached per (strategy, population size) so repeated calls skip the
// expensive evaluation pass. Fitness is reset to unset on adoption either
// way: the run's own fitness function may rank differently than the raw
// distances used here. Seeding evaluations never touch the run budget.
func (e *Engine[G]) SeedPopulation(ctx context.Context, poolSize int, timeLimit time.Duration) error {
	if poolSize < e.cfg.PopulationSize {
		return fmt.Errorf("pool size %d must be >= population size %d", poolSize, e.cfg.PopulationSize)
	}

	name := e.strategy.Name()
	pool, ok, err := e.store.GetSeedPool(ctx, name, e.cfg.PopulationSize)
	if err != nil {
		return err
	}
	if !ok {
		pool, err = e.buildSeedPool(ctx, poolSize, timeLimit)
		if err != nil {
			return err
		}
		if err := e.store.SaveSeedPool(ctx, pool); err != nil {
			return fmt.Errorf("save seed pool: %w", err)
		}
	}

	if len(pool.Pool) != e.cfg.PopulationSize {
		return fmt.Errorf("seed pool %s/%d holds %d individuals, want %d",
			name, e.cfg.PopulationSize, len(pool.Pool), e.cfg.PopulationSize)
	}

	population, err := decodePopulation[G](pool.Pool)
	if err != nil {
		return fmt.Errorf("decode seed pool: %w", err)
	}
	for i := range population {
		population[i].Fitness = nil
	}
	e.population = population
	e.best = population[0]
	return nil
}

func (e *Engine[G]) buildSeedPool(ctx context.Context, poolSize int, timeLimit time.Duration) (model.SeedPool, error) {
	records := make([]model.Individual, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		if err := ctx.Err(); err != nil {
			return model.SeedPool{}, err
		}

		genome, err := e.strategy.RandomGenome(e.rng)
		if err != nil {
			return model.SeedPool{}, fmt.Errorf("generate random genome: %w", err)
		}
		phenotype, err := e.strategy.Phenotype(genome)
		if err != nil {
			return model.SeedPool{}, fmt.Errorf("build phenotype: %w", err)
		}
		measurements, err := e.scape.Evaluate(ctx, phenotype, timeLimit)
		if err != nil {
			return model.SeedPool{}, fmt.Errorf("evaluate seed candidate on scape %s: %w", e.scape.Name(), err)
		}
		if len(measurements) == 0 {
			return model.SeedPool{}, fmt.Errorf("scape %s returned no measurements", e.scape.Name())
		}

		rec, err := encodeIndividual(Individual[G]{Genome: genome})
		if err != nil {
			return model.SeedPool{}, err
		}
		distance := measurements[0].Distance
		rec.Fitness = &distance
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return *records[i].Fitness > *records[j].Fitness
	})

	return model.SeedPool{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		Strategy: e.strategy.Name(),
		PopSize:  e.cfg.PopulationSize,
		Pool:     records[:e.cfg.PopulationSize],
	}, nil
}
