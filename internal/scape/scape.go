package scape

import (
	"context"
	"time"
)

// Measurement is one observation returned by an evaluation backend: how far
// the phenotype ran and how long it took.
type Measurement struct {
	Distance float64 `json:"distance"`
	RunTime  float64 `json:"run_time"`
}

// Phenotype is the executable behavior derived from a genome. Each scape
// documents the concrete types it accepts and rejects anything else.
type Phenotype any

// Scape is an external evaluation backend. Evaluate executes a phenotype
// under the given wall-clock limit and returns at least one measurement.
// Execution and timeout mechanics belong to the scape, not the caller.
type Scape interface {
	Name() string
	Evaluate(ctx context.Context, p Phenotype, limit time.Duration) ([]Measurement, error)
}
