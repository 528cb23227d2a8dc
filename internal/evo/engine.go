package evo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"strider/internal/model"
	"strider/internal/scape"
	"strider/internal/storage"
)

// Config holds the knobs of one evolutionary run. It is immutable for the
// duration of the run; LoadCheckpoint adopts the stored knobs but keeps
// MaxEvaluations as the construction value, because the budget is additive
// across resumes.
type Config struct {
	MaxEvaluations int
	EvalTimeLimit  time.Duration
	PopulationSize int
	CrossoverProb  float64
	MutationProb   float64
	SteadyState    bool
	Seed           int64
}

// Result summarizes a completed run.
type Result struct {
	Elapsed          time.Duration
	Generation       int
	TotalEvaluations int
	BestFitness      float64
}

// Engine drives a population of candidate genomes through selection,
// crossover, mutation, repair, and evaluation until the evaluation budget
// is exhausted. All state is owned by the engine; there is exactly one
// writer and no concurrent readers during a run.
type Engine[G any] struct {
	cfg      Config
	strategy Strategy[G]
	scape    scape.Scape
	store    storage.Store
	rng      *rand.Rand

	population []Individual[G]
	generation int
	totalEvals int
	maxEvals   int
	best       Individual[G]
	history    []model.GenerationStats
}

// New builds an engine with a fresh random population. Fitness is left
// unset; the best individual is provisionally the first member until the
// warming pass at the start of Run corrects it.
func New[G any](cfg Config, strategy Strategy[G], sc scape.Scape, store storage.Store) (*Engine[G], error) {
	if strategy == nil {
		return nil, fmt.Errorf("strategy is required")
	}
	if strategy.Name() == "" {
		return nil, fmt.Errorf("strategy name is required")
	}
	if sc == nil {
		return nil, fmt.Errorf("scape is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0")
	}
	if cfg.MaxEvaluations <= 0 {
		return nil, fmt.Errorf("max evaluations must be > 0")
	}
	if cfg.CrossoverProb < 0 || cfg.CrossoverProb > 1 {
		return nil, fmt.Errorf("crossover probability must be in [0, 1]")
	}
	if cfg.MutationProb < 0 || cfg.MutationProb > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1]")
	}
	if cfg.EvalTimeLimit < 0 {
		return nil, fmt.Errorf("eval time limit must be >= 0")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	population := make([]Individual[G], cfg.PopulationSize)
	for i := range population {
		genome, err := strategy.RandomGenome(rng)
		if err != nil {
			return nil, fmt.Errorf("generate random genome: %w", err)
		}
		population[i] = Individual[G]{Genome: genome}
	}

	return &Engine[G]{
		cfg:        cfg,
		strategy:   strategy,
		scape:      sc,
		store:      store,
		rng:        rng,
		population: population,
		generation: 1,
		maxEvals:   cfg.MaxEvaluations,
		best:       population[0],
	}, nil
}

// Run executes the evolutionary loop until totalEvaluations reaches the
// budget. The warming pass first evaluates every individual with unset
// fitness and recomputes the best individual, so the loop entry invariant
// holds whether the population came from construction, seeding, or a
// checkpoint. Termination is checked only between iterations; an
// in-progress iteration always completes.
func (e *Engine[G]) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	for i := range e.population {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if e.population[i].Fitness == nil {
			if err := e.evaluate(ctx, &e.population[i]); err != nil {
				return Result{}, err
			}
		}
		if e.best.Fitness == nil || *e.population[i].Fitness > *e.best.Fitness {
			e.best = e.population[i]
		}
	}

	for e.totalEvals < e.maxEvals {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := e.iterate(ctx); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Elapsed:          time.Since(start),
		Generation:       e.generation,
		TotalEvaluations: e.totalEvals,
		BestFitness:      *e.best.Fitness,
	}, nil
}

// iterate performs one generation: parent selection, consecutive pairing,
// probabilistic crossover and mutation, unconditional repair, evaluation,
// replacement, and one history entry. An iteration may legitimately produce
// zero offspring and consume no budget when no crossover coin fires.
func (e *Engine[G]) iterate(ctx context.Context) error {
	n := 2
	if !e.cfg.SteadyState {
		n = e.cfg.PopulationSize
	}

	parents, err := e.strategy.SelectParents(e.rng, e.population, n)
	if err != nil {
		return fmt.Errorf("select parents: %w", err)
	}
	if len(parents) != n {
		return fmt.Errorf("select parents returned %d individuals, want %d", len(parents), n)
	}

	// A trailing unpaired parent is dropped.
	offspring := make([]G, 0, len(parents))
	for i := 0; i+1 < len(parents); i += 2 {
		if e.rng.Float64() >= e.cfg.CrossoverProb {
			continue
		}
		childA, childB, err := e.strategy.Crossover(e.rng, parents[i].Genome, parents[i+1].Genome)
		if err != nil {
			return fmt.Errorf("crossover: %w", err)
		}
		offspring = append(offspring, childA, childB)
	}

	for _, genome := range offspring {
		if e.rng.Float64() < e.cfg.MutationProb {
			genome, err = e.strategy.Mutate(e.rng, genome)
			if err != nil {
				return fmt.Errorf("mutate: %w", err)
			}
		}
		// Repair runs whether or not mutation fired.
		genome, err = e.strategy.Repair(genome)
		if err != nil {
			return fmt.Errorf("repair: %w", err)
		}

		child := Individual[G]{Genome: genome}
		if err := e.evaluate(ctx, &child); err != nil {
			return err
		}

		// Ties keep the earlier best; fitness never decreases.
		if *child.Fitness > *e.best.Fitness {
			e.best = child
		}

		idx, err := e.strategy.Replace(e.rng, e.population, child)
		if err != nil {
			return fmt.Errorf("replace: %w", err)
		}
		if idx == Discard {
			continue
		}
		if idx < 0 || idx >= len(e.population) {
			return fmt.Errorf("replace index %d out of range [0, %d)", idx, len(e.population))
		}
		e.population[idx] = child
	}

	e.history = append(e.history, model.GenerationStats{
		Generation:  e.generation,
		BestFitness: *e.best.Fitness,
		MeanFitness: e.meanFitness(),
	})
	e.generation++
	return nil
}

// evaluate is the only path that sets fitness and the only path that
// advances the evaluation counter.
func (e *Engine[G]) evaluate(ctx context.Context, indv *Individual[G]) error {
	phenotype, err := e.strategy.Phenotype(indv.Genome)
	if err != nil {
		return fmt.Errorf("build phenotype: %w", err)
	}
	measurements, err := e.scape.Evaluate(ctx, phenotype, e.cfg.EvalTimeLimit)
	if err != nil {
		return fmt.Errorf("evaluate on scape %s: %w", e.scape.Name(), err)
	}
	if len(measurements) == 0 {
		return fmt.Errorf("scape %s returned no measurements", e.scape.Name())
	}

	fitness := e.strategy.ComputeFitness(measurements[0].Distance, measurements[0].RunTime)
	indv.Fitness = &fitness
	e.totalEvals++
	return nil
}

// meanFitness averages over the entire current population, including slots
// untouched by the iteration's offspring.
func (e *Engine[G]) meanFitness() float64 {
	total := 0.0
	for _, indv := range e.population {
		total += *indv.Fitness
	}
	return total / float64(len(e.population))
}

// Name returns the strategy name the run is scoped under.
func (e *Engine[G]) Name() string { return e.strategy.Name() }

// Best returns the best individual found so far.
func (e *Engine[G]) Best() Individual[G] { return e.best }

// Population returns a copy of the current population slice.
func (e *Engine[G]) Population() []Individual[G] {
	return append([]Individual[G](nil), e.population...)
}

// History returns a copy of the per-generation stats recorded so far.
func (e *Engine[G]) History() []model.GenerationStats {
	return append([]model.GenerationStats(nil), e.history...)
}

func (e *Engine[G]) Generation() int       { return e.generation }
func (e *Engine[G]) TotalEvaluations() int { return e.totalEvals }
func (e *Engine[G]) MaxEvaluations() int   { return e.maxEvals }
func (e *Engine[G]) Config() Config        { return e.cfg }

func (e *Engine[G]) runConfig() model.RunConfig {
	return model.RunConfig{
		MaxEvaluations:  e.maxEvals,
		EvalTimeLimitMS: e.cfg.EvalTimeLimit.Milliseconds(),
		PopulationSize:  e.cfg.PopulationSize,
		CrossoverProb:   e.cfg.CrossoverProb,
		MutationProb:    e.cfg.MutationProb,
		SteadyState:     e.cfg.SteadyState,
		Seed:            e.cfg.Seed,
	}
}
