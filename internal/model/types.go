package model

import "encoding/json"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Individual is the persisted form of one population member. The genome is
// opaque to the engine; it is stored as the strategy's own JSON encoding.
// A nil Fitness means the individual has not been evaluated yet.
type Individual struct {
	Genome  json.RawMessage `json:"genome"`
	Fitness *float64        `json:"fitness,omitempty"`
}

// RunConfig mirrors the engine configuration inside persistent records.
type RunConfig struct {
	MaxEvaluations  int     `json:"max_evaluations"`
	EvalTimeLimitMS int64   `json:"eval_time_limit_ms"`
	PopulationSize  int     `json:"population_size"`
	CrossoverProb   float64 `json:"crossover_prob"`
	MutationProb    float64 `json:"mutation_prob"`
	SteadyState     bool    `json:"steady_state"`
	Seed            int64   `json:"seed"`
}

// GenerationStats is one append-only history entry per completed generation.
type GenerationStats struct {
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
	MeanFitness float64 `json:"mean_fitness"`
}

// Checkpoint is the whole-state snapshot of a run. Load replaces the run's
// in-memory state wholesale; there is no partial or incremental format.
type Checkpoint struct {
	VersionedRecord
	Name             string            `json:"name"`
	Population       []Individual      `json:"population"`
	Generation       int               `json:"generation"`
	TotalEvaluations int               `json:"total_evaluations"`
	History          []GenerationStats `json:"history"`
	Config           RunConfig         `json:"config"`
	Best             Individual        `json:"best_individual"`
}

// SeedPool is the cached result of the population-seeding procedure, keyed
// by (strategy, population size). Fitness values in the pool hold the raw
// distances used for ranking, not ComputeFitness output.
type SeedPool struct {
	VersionedRecord
	Strategy string       `json:"strategy"`
	PopSize  int          `json:"pop_size"`
	Pool     []Individual `json:"pool"`
}
